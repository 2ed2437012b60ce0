package api

import (
	"net/http"
	"strconv"

	"probcalc/app"
	"probcalc/domain/core"
	"probcalc/domain/distribution"
	"probcalc/internal"
	"probcalc/internal/errors"

	"github.com/gin-gonic/gin"
)

// CalculatorHandler serves the JSON evaluation API
type CalculatorHandler struct {
	service      *app.CalculatorService
	logger       *internal.Logger
	showSteps    bool
	historyLimit int
}

// EvaluateRequest is the body of POST /api/evaluate and POST /api/sample
type EvaluateRequest struct {
	Kind   string             `json:"kind" binding:"required"`
	Mode   string             `json:"mode"`
	Params map[string]float64 `json:"params"`
	// Steps defaults to the configured SHOW_STEPS_DEFAULT when omitted
	Steps  *bool `json:"steps"`
	Sample bool  `json:"sample"`
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(service *app.CalculatorService, logger *internal.Logger, showSteps bool, historyLimit int) *CalculatorHandler {
	return &CalculatorHandler{
		service:      service,
		logger:       logger,
		showSteps:    showSteps,
		historyLimit: historyLimit,
	}
}

// Evaluate computes one probability
func (h *CalculatorHandler) Evaluate(c *gin.Context) {
	input, ok := h.bind(c)
	if !ok {
		return
	}

	calc, err := h.service.Calculate(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	body := gin.H{
		"request_id":  requestID(c),
		"id":          calc.ID,
		"kind":        calc.Request.Kind(),
		"params":      calc.Request.Params(),
		"probability": calc.Result.Probability,
		"headline":    calc.Headline,
		"moments":     calc.Moments,
	}
	if n, ok := calc.Request.(distribution.Normal); ok {
		body["mode"] = n.Mode
	}
	if input.Steps {
		body["steps"] = stepViews(calc.Result.Steps)
	}
	if input.Sample {
		body["samples"] = calc.Samples
		body["summary"] = calc.Summary
	}
	c.JSON(http.StatusOK, body)
}

// Sample returns the plotting points of a request
func (h *CalculatorHandler) Sample(c *gin.Context) {
	input, ok := h.bind(c)
	if !ok {
		return
	}

	points, summary, err := h.service.Sample(input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id": requestID(c),
		"kind":       input.Kind,
		"points":     points,
		"summary":    summary,
	})
}

// Defaults lists the canonical parameters of every distribution
func (h *CalculatorHandler) Defaults(c *gin.Context) {
	defaults := make(map[distribution.Kind]gin.H, len(distribution.Kinds))
	for _, kind := range distribution.Kinds {
		defaults[kind] = gin.H{
			"title":  kind.Title(),
			"params": distribution.Defaults(kind).Params(),
		}
	}

	modes := make([]gin.H, 0, len(distribution.NormalModes))
	for _, mode := range distribution.NormalModes {
		modes = append(modes, gin.H{
			"mode":   mode,
			"label":  mode.Label(),
			"params": distribution.NormalDefaults(mode).Params(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id":   requestID(c),
		"defaults":     defaults,
		"normal_modes": modes,
		"steps":        h.showSteps,
	})
}

// History lists recent evaluations, newest first
func (h *CalculatorHandler) History(c *gin.Context) {
	limit := h.historyLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.respondError(c, errors.InvalidInput("limit must be a positive integer"))
			return
		}
		if n < limit {
			limit = n
		}
	}

	records, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id":  requestID(c),
		"evaluations": records,
		"count":       len(records),
	})
}

// GetEvaluation returns one recorded evaluation
func (h *CalculatorHandler) GetEvaluation(c *gin.Context) {
	record, err := h.service.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Health reports liveness
func (h *CalculatorHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *CalculatorHandler) bind(c *gin.Context) (app.CalculationInput, bool) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.InvalidInput("request body must be JSON with a kind: "+err.Error()))
		return app.CalculationInput{}, false
	}

	steps := h.showSteps
	if req.Steps != nil {
		steps = *req.Steps
	}
	return app.CalculationInput{
		Kind:   req.Kind,
		Mode:   req.Mode,
		Params: req.Params,
		Steps:  steps,
		Sample: req.Sample,
	}, true
}

// respondError answers with the status and code the error maps to. Internal
// errors are logged and reported without detail.
func (h *CalculatorHandler) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	body := gin.H{
		"request_id": requestID(c),
		"code":       errors.GetCode(err),
		"error":      err.Error(),
	}
	if field := core.ParameterField(err); field != "" {
		body["field"] = field
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request %s failed: %v", requestID(c), err)
		body["error"] = "internal error"
	}
	c.JSON(status, body)
}

type stepView struct {
	Label      string             `json:"label"`
	Text       string             `json:"text"`
	LaTeX      string             `json:"latex"`
	Expression string             `json:"expression"`
	Values     map[string]float64 `json:"values,omitempty"`
	Terms      map[string]string  `json:"terms,omitempty"`
}

func stepViews(steps []distribution.FormulaStep) []stepView {
	views := make([]stepView, len(steps))
	for i, s := range steps {
		views[i] = stepView{
			Label:      s.Label,
			Text:       s.Text(),
			LaTeX:      s.TeX(),
			Expression: s.Expression,
			Values:     s.Values,
			Terms:      s.Terms,
		}
	}
	return views
}
