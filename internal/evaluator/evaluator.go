// Package evaluator computes point, tail and interval probabilities for the
// supported distributions and narrates the textbook derivation as structured
// formula steps. Evaluation is pure: identical requests give identical results.
package evaluator

import (
	"fmt"
	"math"

	"probcalc/domain/core"
	"probcalc/domain/distribution"
)

// Limits bounds the size of the requests an evaluator accepts
type Limits struct {
	// MaxCount caps binomial n, hypergeometric N and the Poisson outcome x
	MaxCount int
	// MaxLambda caps the Poisson rate
	MaxLambda float64
}

// DefaultLimits are applied when no limits are configured
var DefaultLimits = Limits{MaxCount: 10000, MaxLambda: 10000}

// Evaluator dispatches a distribution request to the matching formula
type Evaluator struct {
	limits Limits
}

// New creates an evaluator bounded by DefaultLimits
func New() *Evaluator {
	return NewWithLimits(DefaultLimits)
}

// NewWithLimits creates an evaluator bounded by limits. Unset fields fall
// back to DefaultLimits.
func NewWithLimits(limits Limits) *Evaluator {
	if limits.MaxCount < 1 {
		limits.MaxCount = DefaultLimits.MaxCount
	}
	if limits.MaxLambda <= 0 || math.IsNaN(limits.MaxLambda) {
		limits.MaxLambda = DefaultLimits.MaxLambda
	}
	return &Evaluator{limits: limits}
}

// Limits returns the bounds requests are checked against
func (e *Evaluator) Limits() Limits {
	return e.limits
}

// Check validates req and enforces the evaluator's limits
func (e *Evaluator) Check(req distribution.Request) error {
	_, err := e.normalize(req)
	return err
}

// Evaluate validates req and computes its probability. When wantSteps is set
// the result carries the derivation; its last step holds the same value as
// Probability. Any parameter violation fails with core.ErrInvalidParameter
// before computation starts.
func (e *Evaluator) Evaluate(req distribution.Request, wantSteps bool) (*distribution.Result, error) {
	req, err := e.normalize(req)
	if err != nil {
		return nil, err
	}

	var (
		prob  float64
		steps func(float64) []distribution.FormulaStep
	)

	switch r := req.(type) {
	case distribution.Binomial:
		prob = BinomialPMF(r.N, r.X, r.P)
		steps = func(p float64) []distribution.FormulaStep { return binomialSteps(r, p) }
	case distribution.Poisson:
		prob = PoissonPMF(r.Lambda, r.X)
		steps = func(p float64) []distribution.FormulaStep { return poissonSteps(r, p) }
	case distribution.Hypergeometric:
		prob = HypergeometricPMF(r.Population, r.Successes, r.Draws, r.X)
		steps = func(p float64) []distribution.FormulaStep { return hypergeometricSteps(r, p) }
	case distribution.Normal:
		prob = normalProbability(r)
		steps = func(p float64) []distribution.FormulaStep { return normalSteps(r, p) }
	}

	result := &distribution.Result{
		Kind:        req.Kind(),
		Probability: prob,
	}
	if wantSteps {
		result.Steps = steps(prob)
	}
	return result, nil
}

// Moments returns the closed-form mean, variance and standard deviation of
// the distribution req is drawn from
func (e *Evaluator) Moments(req distribution.Request) (distribution.Moments, error) {
	req, err := e.normalize(req)
	if err != nil {
		return distribution.Moments{}, err
	}

	switch r := req.(type) {
	case distribution.Binomial:
		return binomialMoments(r), nil
	case distribution.Poisson:
		return poissonMoments(r), nil
	case distribution.Hypergeometric:
		return hypergeometricMoments(r), nil
	default:
		return normalMoments(req.(distribution.Normal)), nil
	}
}

// normalize dereferences pointer variants, validates the request and
// enforces the limits
func (e *Evaluator) normalize(req distribution.Request) (distribution.Request, error) {
	switch r := req.(type) {
	case nil:
		return nil, core.NewParameterError("kind", "a distribution request is required")
	case *distribution.Binomial:
		req = *r
	case *distribution.Poisson:
		req = *r
	case *distribution.Hypergeometric:
		req = *r
	case *distribution.Normal:
		req = *r
	case distribution.Binomial, distribution.Poisson, distribution.Hypergeometric, distribution.Normal:
	default:
		return nil, fmt.Errorf("%w: %T", core.ErrUnknownKind, req)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := e.limits.check(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (l Limits) check(req distribution.Request) error {
	switch r := req.(type) {
	case distribution.Binomial:
		if r.N > l.MaxCount {
			return core.NewParameterError("n", "n exceeds the limit of %d, got %d", l.MaxCount, r.N)
		}
	case distribution.Poisson:
		if r.Lambda > l.MaxLambda {
			return core.NewParameterError("lambda", "lambda exceeds the limit of %g, got %g", l.MaxLambda, r.Lambda)
		}
		if r.X > l.MaxCount {
			return core.NewParameterError("x", "x exceeds the limit of %d, got %d", l.MaxCount, r.X)
		}
	case distribution.Hypergeometric:
		if r.Population > l.MaxCount {
			return core.NewParameterError("population", "N exceeds the limit of %d, got %d", l.MaxCount, r.Population)
		}
	}
	return nil
}

func resultStep(prob float64) distribution.FormulaStep {
	return distribution.FormulaStep{
		Label:      "Result",
		Expression: "= [result:5]",
		LaTeX:      `=[result:5]`,
		Values:     map[string]float64{"result": prob},
	}
}

// pick copies the named symbols out of terms
func pick(terms map[string]float64, symbols ...string) map[string]float64 {
	out := make(map[string]float64, len(symbols))
	for _, s := range symbols {
		if v, ok := terms[s]; ok {
			out[s] = v
		}
	}
	return out
}

// with extends base with alternating symbol/value pairs
func with(base map[string]float64, pairs ...interface{}) map[string]float64 {
	out := make(map[string]float64, len(base)+len(pairs)/2)
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i].(string)] = pairs[i+1].(float64)
	}
	return out
}

func moments(mean, variance float64) distribution.Moments {
	return distribution.Moments{
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}
}
