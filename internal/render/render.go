// Package render turns evaluation results into text, LaTeX, Markdown and HTML
// for the CLI, the form pages and exported reports.
package render

import (
	"fmt"
	"io"
	"strings"

	"probcalc/domain/distribution"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Format selects a step rendering
type Format string

const (
	FormatText     Format = "text"
	FormatLaTeX    Format = "latex"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat resolves a format name, defaulting to text
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatLaTeX, "tex":
		return FormatLaTeX, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format %q (use text, latex, markdown or json)", s)
}

// Headline states the evaluated probability the way the result banner shows it,
// e.g. "P(X = 3) = 0.11719"
func Headline(req distribution.Request, prob float64) string {
	return fmt.Sprintf("%s = %s", Event(req), distribution.FormatValue(prob, 5))
}

// Event is the probability notation of what req asks for
func Event(req distribution.Request) string {
	g := func(v float64) string { return distribution.FormatValue(v, -1) }

	switch r := req.(type) {
	case distribution.Binomial:
		return fmt.Sprintf("P(X = %d)", r.X)
	case distribution.Poisson:
		return fmt.Sprintf("P(X = %d)", r.X)
	case distribution.Hypergeometric:
		return fmt.Sprintf("P(X = %d)", r.X)
	case distribution.Normal:
		switch r.Mode {
		case distribution.ModeAtLeast:
			return fmt.Sprintf("P(X ≥ %s)", g(r.B))
		case distribution.ModeBetween:
			return fmt.Sprintf("P(%s ≤ X ≤ %s)", g(r.A), g(r.B))
		case distribution.ModeAtZ:
			return fmt.Sprintf("Φ((%s − %s) / %s)", g(r.A), g(r.Mu), g(r.Sigma))
		default:
			return fmt.Sprintf("P(X ≤ %s)", g(r.A))
		}
	}
	return "P"
}

// Text writes one labelled line per step
func Text(w io.Writer, steps []distribution.FormulaStep) error {
	width := 0
	for _, s := range steps {
		if len([]rune(s.Label)) > width {
			width = len([]rune(s.Label))
		}
	}
	for _, s := range steps {
		pad := strings.Repeat(" ", width-len([]rune(s.Label)))
		if _, err := fmt.Fprintf(w, "  %s%s  %s\n", s.Label, pad, s.Text()); err != nil {
			return err
		}
	}
	return nil
}

// LaTeX writes the steps as an align* block
func LaTeX(w io.Writer, steps []distribution.FormulaStep) error {
	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = "  & " + s.TeX()
	}
	_, err := fmt.Fprintf(w, "\\begin{align*}\n%s\n\\end{align*}\n", strings.Join(lines, " \\\\\n"))
	return err
}

// Markdown returns the steps as a numbered Markdown list
func Markdown(steps []distribution.FormulaStep) string {
	var b strings.Builder
	for i, s := range steps {
		fmt.Fprintf(&b, "%d. **%s**: `%s`\n", i+1, s.Label, s.Text())
	}
	return b.String()
}

// HTML renders the Markdown step list to an HTML fragment
func HTML(steps []distribution.FormulaStep) string {
	if len(steps) == 0 {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(Markdown(steps)))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.Render(doc, renderer))
}

// Report is a complete Markdown document for one evaluation
func Report(req distribution.Request, result *distribution.Result, moments distribution.Moments) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s distribution\n\n", req.Kind().Title())
	fmt.Fprintf(&b, "`%s`\n\n", req.String())
	fmt.Fprintf(&b, "**%s**\n\n", Headline(req, result.Probability))
	fmt.Fprintf(&b, "Mean %s, variance %s, standard deviation %s\n\n",
		distribution.FormatValue(moments.Mean, 5),
		distribution.FormatValue(moments.Variance, 5),
		distribution.FormatValue(moments.StdDev, 5))
	if len(result.Steps) > 0 {
		b.WriteString("## Steps\n\n")
		b.WriteString(Markdown(result.Steps))
	}
	return b.String()
}
