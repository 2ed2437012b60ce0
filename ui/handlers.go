package ui

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"probcalc/app"
	"probcalc/domain/core"
	"probcalc/domain/distribution"
	"probcalc/internal/errors"
	"probcalc/internal/render"
	"probcalc/models"

	"github.com/go-chi/chi/v5"
)

// formField is one labelled input of a distribution form
type formField struct {
	Name  string
	Label string
	Value string
	// Step is the HTML input step: "1" for counts, "any" otherwise
	Step    string
	Invalid bool
}

type kindTab struct {
	Kind   distribution.Kind
	Title  string
	Active bool
}

type modeOption struct {
	Mode     distribution.NormalMode
	Label    string
	Selected bool
}

// resultView is the success banner and everything below it
type resultView struct {
	Headline    string
	Probability float64
	Moments     distribution.Moments
	Steps       template.HTML
	Plot        template.HTML
}

type pageData struct {
	Title     string
	Kind      distribution.Kind
	Tabs      []kindTab
	Fields    []formField
	Modes     []modeOption
	ShowSteps bool
	Result    *resultView
	Error     string
}

var fieldLabels = map[string]string{
	"n":          "Number of trials (n)",
	"x":          "Number of successes (x)",
	"p":          "Probability of success (p)",
	"lambda":     "Average rate (λ)",
	"population": "Population size (N)",
	"successes":  "Successes in population (K)",
	"draws":      "Sample size (n)",
	"mu":         "Mean (μ)",
	"sigma":      "Standard deviation (σ)",
	"a":          "Lower bound (a)",
	"b":          "Upper bound (b)",
}

// fieldNames lists the inputs a form shows, in display order
func fieldNames(kind distribution.Kind, mode distribution.NormalMode) []string {
	switch kind {
	case distribution.KindBinomial:
		return []string{"n", "x", "p"}
	case distribution.KindPoisson:
		return []string{"lambda", "x"}
	case distribution.KindHypergeometric:
		return []string{"population", "successes", "draws", "x"}
	}
	switch mode {
	case distribution.ModeAtLeast:
		return []string{"mu", "sigma", "b"}
	case distribution.ModeBetween:
		return []string{"mu", "sigma", "a", "b"}
	default:
		return []string{"mu", "sigma", "a"}
	}
}

func integral(name string) bool {
	switch name {
	case "n", "x", "population", "successes", "draws":
		return true
	}
	return false
}

func (a *App) handleForm(w http.ResponseWriter, r *http.Request) {
	kind, err := distribution.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	mode := distribution.ModeAtMost
	if raw := r.URL.Query().Get("mode"); raw != "" && kind == distribution.KindNormal {
		if parsed, err := distribution.ParseNormalMode(raw); err == nil {
			mode = parsed
		}
	}

	req := distribution.Defaults(kind)
	if kind == distribution.KindNormal {
		req = distribution.NormalDefaults(mode)
	}

	data := a.page(kind, mode, a.config.ShowSteps)
	data.Fields = fieldsFrom(kind, mode, formatParams(req.Params()), "")
	a.renderTemplate(w, http.StatusOK, "index.html", data)
}

func (a *App) handleCalculate(w http.ResponseWriter, r *http.Request) {
	kind, err := distribution.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Malformed form", http.StatusBadRequest)
		return
	}

	mode := distribution.ModeAtMost
	if kind == distribution.KindNormal {
		if raw := r.PostForm.Get("mode"); raw != "" {
			if mode, err = distribution.ParseNormalMode(raw); err != nil {
				mode = distribution.ModeAtMost
			}
		}
	}
	showSteps := r.PostForm.Get("steps") != ""

	raw := make(map[string]string)
	for _, name := range fieldNames(kind, mode) {
		raw[name] = strings.TrimSpace(r.PostForm.Get(name))
	}

	data := a.page(kind, mode, showSteps)

	params, err := parseParams(fieldNames(kind, mode), raw)
	var calc *app.Calculation
	if err == nil {
		calc, err = a.service.Calculate(r.Context(), app.CalculationInput{
			Kind:   string(kind),
			Mode:   string(mode),
			Params: params,
			Steps:  showSteps,
			Sample: true,
		})
	}
	if err != nil {
		data.Fields = fieldsFrom(kind, mode, raw, core.ParameterField(err))
		data.Error = bannerMessage(err)
		a.renderTemplate(w, errors.HTTPStatus(err), "index.html", data)
		return
	}

	data.Fields = fieldsFrom(kind, mode, formatParams(calc.Request.Params()), "")
	data.Result = &resultView{
		Headline:    calc.Headline,
		Probability: calc.Result.Probability,
		Moments:     calc.Moments,
		Plot:        template.HTML(PlotSVG(kind, calc.Samples)),
	}
	if showSteps {
		data.Result.Steps = template.HTML(render.HTML(calc.Result.Steps))
	}
	a.renderTemplate(w, http.StatusOK, "index.html", data)
}

type historyData struct {
	Title   string
	Tabs    []kindTab
	Records []*models.EvaluationRecord
}

func (a *App) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := a.service.History(r.Context(), a.config.HistoryLimit)
	if err != nil {
		a.logger.Error("failed to load history: %v", err)
		http.Error(w, "History unavailable", errors.HTTPStatus(err))
		return
	}
	a.renderTemplate(w, http.StatusOK, "history.html", historyData{
		Title:   "Recent evaluations",
		Tabs:    tabs(""),
		Records: records,
	})
}

func (a *App) page(kind distribution.Kind, mode distribution.NormalMode, showSteps bool) pageData {
	data := pageData{
		Title:     kind.Title() + " distribution",
		Kind:      kind,
		Tabs:      tabs(kind),
		ShowSteps: showSteps,
	}
	if kind == distribution.KindNormal {
		for _, m := range distribution.NormalModes {
			data.Modes = append(data.Modes, modeOption{Mode: m, Label: m.Label(), Selected: m == mode})
		}
	}
	return data
}

func tabs(active distribution.Kind) []kindTab {
	out := make([]kindTab, len(distribution.Kinds))
	for i, k := range distribution.Kinds {
		out[i] = kindTab{Kind: k, Title: k.Title(), Active: k == active}
	}
	return out
}

func fieldsFrom(kind distribution.Kind, mode distribution.NormalMode, values map[string]string, invalid string) []formField {
	names := fieldNames(kind, mode)
	fields := make([]formField, len(names))
	for i, name := range names {
		label := fieldLabels[name]
		if kind == distribution.KindHypergeometric && name == "x" {
			label = "Successes in sample (x)"
		}
		if mode == distribution.ModeAtZ && name == "a" {
			label = "Value (x)"
		}
		step := "any"
		if integral(name) {
			step = "1"
		}
		fields[i] = formField{
			Name:    name,
			Label:   label,
			Value:   values[name],
			Step:    step,
			Invalid: name == invalid,
		}
	}
	return fields
}

func formatParams(params map[string]float64) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = distribution.FormatValue(v, -1)
	}
	return out
}

// parseParams converts submitted values; blank inputs fall back to defaults
func parseParams(names []string, raw map[string]string) (map[string]float64, error) {
	params := make(map[string]float64, len(names))
	for _, name := range names {
		value := raw[name]
		if value == "" {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, core.NewParameterError(name, "%s must be a number, got %q", name, value)
		}
		params[name] = v
	}
	return params, nil
}

func bannerMessage(err error) string {
	if core.IsInvalidParameter(err) {
		return strings.TrimPrefix(err.Error(), "invalid parameter: ")
	}
	return "The calculation could not be completed."
}
