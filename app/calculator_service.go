package app

import (
	"context"
	"time"

	"probcalc/domain/core"
	"probcalc/domain/distribution"
	"probcalc/internal"
	"probcalc/internal/errors"
	"probcalc/internal/evaluator"
	"probcalc/internal/render"
	"probcalc/internal/sampler"
	"probcalc/models"
	"probcalc/ports"

	"github.com/google/uuid"
)

// CalculatorService evaluates distribution requests for every shell and keeps
// the evaluation history
type CalculatorService struct {
	evaluator *evaluator.Evaluator
	history   ports.HistoryRepository
	logger    *internal.Logger
}

// CalculationInput is a request as the shells receive it: a kind name, an
// optional Normal mode and named parameters
type CalculationInput struct {
	Kind   string             `json:"kind"`
	Mode   string             `json:"mode,omitempty"`
	Params map[string]float64 `json:"params,omitempty"`
	Steps  bool               `json:"steps"`
	Sample bool               `json:"sample"`
}

// Calculation is the complete answer to one request
type Calculation struct {
	ID       core.EvaluationID          `json:"id"`
	Request  distribution.Request       `json:"request"`
	Result   *distribution.Result       `json:"result"`
	Headline string                     `json:"headline"`
	Moments  distribution.Moments       `json:"moments"`
	Samples  []distribution.SamplePoint `json:"samples,omitempty"`
	Summary  *sampler.Summary           `json:"summary,omitempty"`
}

// NewCalculatorService creates a calculator service. history may be nil, in
// which case nothing is recorded.
func NewCalculatorService(history ports.HistoryRepository, logger *internal.Logger) *CalculatorService {
	return &CalculatorService{
		evaluator: evaluator.New(),
		history:   history,
		logger:    logger,
	}
}

// WithLimits bounds the requests the service accepts
func (s *CalculatorService) WithLimits(limits evaluator.Limits) *CalculatorService {
	s.evaluator = evaluator.NewWithLimits(limits)
	return s
}

// Resolve turns shell input into a validated request within the limits
func (s *CalculatorService) Resolve(input CalculationInput) (distribution.Request, error) {
	kind, err := distribution.ParseKind(input.Kind)
	if err != nil {
		return nil, err
	}
	var mode distribution.NormalMode
	if kind == distribution.KindNormal && input.Mode != "" {
		if mode, err = distribution.ParseNormalMode(input.Mode); err != nil {
			return nil, err
		}
	}
	req, err := distribution.FromParams(kind, mode, input.Params)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Calculate resolves input, evaluates it and records the outcome
func (s *CalculatorService) Calculate(ctx context.Context, input CalculationInput) (*Calculation, error) {
	req, err := s.Resolve(input)
	if err != nil {
		s.logger.Debug("rejected %s request: %v", input.Kind, err)
		return nil, err
	}
	return s.Evaluate(ctx, req, input.Steps, input.Sample)
}

// Evaluate runs an already built request
func (s *CalculatorService) Evaluate(ctx context.Context, req distribution.Request, steps, sample bool) (*Calculation, error) {
	start := time.Now()

	result, err := s.evaluator.Evaluate(req, steps)
	if err != nil {
		return nil, err
	}
	moments, err := s.evaluator.Moments(req)
	if err != nil {
		return nil, err
	}

	calc := &Calculation{
		ID:       core.NewEvaluationID(),
		Request:  req,
		Result:   result,
		Headline: render.Headline(req, result.Probability),
		Moments:  moments,
	}

	if sample {
		points, err := sampler.Sample(req)
		if err != nil {
			return nil, err
		}
		summary, err := sampler.Summarize(req.Kind(), points)
		if err != nil {
			return nil, errors.Wrap(err, "failed to summarize samples")
		}
		calc.Samples = points
		calc.Summary = &summary
	}

	s.logger.Debug("evaluated %s in %s: %s", req, time.Since(start), calc.Headline)

	if err := s.record(ctx, calc); err != nil {
		// history is best effort; the caller still gets its answer
		s.logger.Warn("failed to record evaluation %s: %v", calc.ID, err)
	}
	return calc, nil
}

// Sample returns the plotting points of input together with their summary
func (s *CalculatorService) Sample(input CalculationInput) ([]distribution.SamplePoint, sampler.Summary, error) {
	req, err := s.Resolve(input)
	if err != nil {
		return nil, sampler.Summary{}, err
	}
	points, err := sampler.Sample(req)
	if err != nil {
		return nil, sampler.Summary{}, err
	}
	summary, err := sampler.Summarize(req.Kind(), points)
	return points, summary, err
}

// History returns the most recent evaluations, newest first
func (s *CalculatorService) History(ctx context.Context, limit int) ([]*models.EvaluationRecord, error) {
	if s.history == nil {
		return []*models.EvaluationRecord{}, nil
	}
	records, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load history")
	}
	return records, nil
}

// Lookup returns one recorded evaluation
func (s *CalculatorService) Lookup(ctx context.Context, id string) (*models.EvaluationRecord, error) {
	parsed, err := core.ParseEvaluationID(id)
	if err != nil {
		return nil, errors.InvalidInput("malformed evaluation id")
	}
	if s.history == nil {
		return nil, errors.Wrapf(core.ErrNotFound, "evaluation %s", id)
	}
	return s.history.Get(ctx, uuid.MustParse(parsed.String()))
}

func (s *CalculatorService) record(ctx context.Context, calc *Calculation) error {
	if s.history == nil {
		return nil
	}
	id, err := uuid.Parse(calc.ID.String())
	if err != nil {
		return err
	}

	record := &models.EvaluationRecord{
		ID:          id,
		Kind:        string(calc.Request.Kind()),
		Params:      models.ParamMap(calc.Request.Params()),
		Probability: calc.Result.Probability,
		Headline:    calc.Headline,
		CreatedAt:   time.Now().UTC(),
	}
	if n, ok := calc.Request.(distribution.Normal); ok {
		record.Mode = string(n.Mode)
	}
	return s.history.Record(ctx, record)
}
