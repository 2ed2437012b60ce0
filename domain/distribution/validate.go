package distribution

import (
	"math"

	"probcalc/domain/core"
)

// Validate checks n ≥ 1, 0 ≤ x ≤ n and p ∈ [0,1]
func (b Binomial) Validate() error {
	if b.N < 1 {
		return core.NewParameterError("n", "n must be at least 1, got %d", b.N)
	}
	if b.X < 0 {
		return core.NewParameterError("x", "x must be non-negative, got %d", b.X)
	}
	if b.X > b.N {
		return core.NewParameterError("x", "x exceeds n (%d > %d)", b.X, b.N)
	}
	if math.IsNaN(b.P) || b.P < 0 || b.P > 1 {
		return core.NewParameterError("p", "p must be within [0,1], got %g", b.P)
	}
	return nil
}

// Validate checks λ > 0 and x ≥ 0
func (p Poisson) Validate() error {
	if math.IsNaN(p.Lambda) || math.IsInf(p.Lambda, 0) || p.Lambda <= 0 {
		return core.NewParameterError("lambda", "lambda must be positive, got %g", p.Lambda)
	}
	if p.X < 0 {
		return core.NewParameterError("x", "x must be non-negative, got %d", p.X)
	}
	return nil
}

// Validate checks N ≥ 1, 0 ≤ K ≤ N, 1 ≤ n ≤ N and 0 ≤ x ≤ n
func (h Hypergeometric) Validate() error {
	if h.Population < 1 {
		return core.NewParameterError("population", "N must be at least 1, got %d", h.Population)
	}
	if h.Successes < 0 {
		return core.NewParameterError("successes", "K must be non-negative, got %d", h.Successes)
	}
	if h.Successes > h.Population {
		return core.NewParameterError("successes", "K exceeds N (%d > %d)", h.Successes, h.Population)
	}
	if h.Draws < 1 {
		return core.NewParameterError("draws", "n must be at least 1, got %d", h.Draws)
	}
	if h.Draws > h.Population {
		return core.NewParameterError("draws", "n exceeds N (%d > %d)", h.Draws, h.Population)
	}
	if h.X < 0 {
		return core.NewParameterError("x", "x must be non-negative, got %d", h.X)
	}
	if h.X > h.Draws {
		return core.NewParameterError("x", "x exceeds n (%d > %d)", h.X, h.Draws)
	}
	return nil
}

// Validate checks σ > 0, finite bounds and a ≤ b for intervals
func (n Normal) Validate() error {
	if !finite(n.Mu) {
		return core.NewParameterError("mu", "mu must be finite, got %g", n.Mu)
	}
	if math.IsNaN(n.Sigma) || math.IsInf(n.Sigma, 0) || n.Sigma <= 0 {
		return core.NewParameterError("sigma", "sigma must be positive, got %g", n.Sigma)
	}

	switch n.Mode {
	case ModeAtMost, ModeAtZ:
		if !finite(n.A) {
			return core.NewParameterError("a", "a must be finite, got %g", n.A)
		}
	case ModeAtLeast:
		if !finite(n.B) {
			return core.NewParameterError("b", "b must be finite, got %g", n.B)
		}
	case ModeBetween:
		if !finite(n.A) {
			return core.NewParameterError("a", "a must be finite, got %g", n.A)
		}
		if !finite(n.B) {
			return core.NewParameterError("b", "b must be finite, got %g", n.B)
		}
		if n.A > n.B {
			return core.NewParameterError("a", "a exceeds b (%g > %g)", n.A, n.B)
		}
	default:
		return core.NewParameterError("mode", "unknown normal mode %q", n.Mode)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
