package distribution

import (
	"math"

	"probcalc/domain/core"
)

// Defaults returns the canonical default request for a distribution, the
// values the form pages and CLI flags start from.
func Defaults(kind Kind) Request {
	switch kind {
	case KindBinomial:
		return Binomial{N: 10, X: 3, P: 0.5}
	case KindPoisson:
		return Poisson{Lambda: 4, X: 3}
	case KindHypergeometric:
		return Hypergeometric{Population: 50, Successes: 20, Draws: 10, X: 3}
	case KindNormal:
		return NormalDefaults(ModeAtMost)
	default:
		return nil
	}
}

// NormalDefaults returns the default Normal request for a mode. Tail bounds
// start at the mean; intervals span one standard deviation on either side.
func NormalDefaults(mode NormalMode) Normal {
	const mu, sigma = 70.0, 5.0
	n := Normal{Mu: mu, Sigma: sigma, Mode: mode, A: mu, B: mu}
	if mode == ModeBetween {
		n.A = mu - sigma
		n.B = mu + sigma
	}
	return n
}

// FromParams builds a request from named numeric parameters, the shape form
// posts and JSON bodies arrive in. Missing parameters fall back to Defaults.
// Integer parameters must be integral. The result is not yet validated.
func FromParams(kind Kind, mode NormalMode, params map[string]float64) (Request, error) {
	switch kind {
	case KindBinomial:
		d := Defaults(kind).(Binomial)
		n, err := intParam(params, "n", d.N)
		if err != nil {
			return nil, err
		}
		x, err := intParam(params, "x", d.X)
		if err != nil {
			return nil, err
		}
		return Binomial{N: n, X: x, P: floatParam(params, "p", d.P)}, nil

	case KindPoisson:
		d := Defaults(kind).(Poisson)
		x, err := intParam(params, "x", d.X)
		if err != nil {
			return nil, err
		}
		return Poisson{Lambda: floatParam(params, "lambda", d.Lambda), X: x}, nil

	case KindHypergeometric:
		d := Defaults(kind).(Hypergeometric)
		population, err := intParam(params, "population", d.Population)
		if err != nil {
			return nil, err
		}
		successes, err := intParam(params, "successes", d.Successes)
		if err != nil {
			return nil, err
		}
		draws, err := intParam(params, "draws", d.Draws)
		if err != nil {
			return nil, err
		}
		x, err := intParam(params, "x", d.X)
		if err != nil {
			return nil, err
		}
		return Hypergeometric{Population: population, Successes: successes, Draws: draws, X: x}, nil

	case KindNormal:
		if mode == "" {
			mode = ModeAtMost
		}
		d := NormalDefaults(mode)
		mu := floatParam(params, "mu", d.Mu)
		sigma := floatParam(params, "sigma", d.Sigma)
		// bounds default relative to the supplied mean and deviation
		a, b := mu, mu
		if mode == ModeBetween {
			a, b = mu-sigma, mu+sigma
		}
		return Normal{
			Mu:    mu,
			Sigma: sigma,
			Mode:  mode,
			A:     floatParam(params, "a", a),
			B:     floatParam(params, "b", b),
		}, nil
	}
	return nil, core.ErrUnknownKind
}

func floatParam(params map[string]float64, name string, fallback float64) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return fallback
}

func intParam(params map[string]float64, name string, fallback int) (int, error) {
	v, ok := params[name]
	if !ok {
		return fallback, nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, core.NewParameterError(name, "%s must be an integer, got %g", name, v)
	}
	if math.Abs(v) > math.MaxInt32 {
		return 0, core.NewParameterError(name, "%s is out of range, got %g", name, v)
	}
	return int(v), nil
}
