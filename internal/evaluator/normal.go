package evaluator

import (
	"probcalc/domain/distribution"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZScore standardizes value against N(mu, sigma²)
func ZScore(value, mu, sigma float64) float64 {
	return (value - mu) / sigma
}

// NormalCDF is the standard normal cumulative distribution Φ(z)
func NormalCDF(z float64) float64 {
	return distuv.UnitNormal.CDF(z)
}

// NormalPDF is the density of N(mu, sigma²) at x
func NormalPDF(x, mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma}.Prob(x)
}

func normalProbability(r distribution.Normal) float64 {
	switch r.Mode {
	case distribution.ModeAtLeast:
		return 1 - NormalCDF(ZScore(r.B, r.Mu, r.Sigma))
	case distribution.ModeBetween:
		return NormalCDF(ZScore(r.B, r.Mu, r.Sigma)) - NormalCDF(ZScore(r.A, r.Mu, r.Sigma))
	default:
		// ModeAtMost and ModeAtZ both read Φ at the z-score of A
		return NormalCDF(ZScore(r.A, r.Mu, r.Sigma))
	}
}

func normalSteps(r distribution.Normal, prob float64) []distribution.FormulaStep {
	base := map[string]float64{"mu": r.Mu, "sigma": r.Sigma, "result": prob}

	switch r.Mode {
	case distribution.ModeAtLeast:
		values := with(base, "b", r.B, "z", ZScore(r.B, r.Mu, r.Sigma))
		return []distribution.FormulaStep{
			{
				Label:      "Complement",
				Expression: "P(X ≥ [b]) = 1 − P(X ≤ [b])",
				LaTeX:      `P(X\ge [b])=1-P(X\le [b])`,
				Values:     pick(values, "b"),
			},
			zFormulaStep("b"),
			{
				Label:      "Standard score",
				Expression: "Z = ([b] − [mu]) / [sigma] = [z:2]",
				LaTeX:      `Z=\frac{[b]-[mu]}{[sigma]}=[z:2]`,
				Values:     pick(values, "b", "mu", "sigma", "z"),
			},
			{
				Label:      "Result",
				Expression: "P(X ≥ [b]) = 1 − Φ([z:2]) = [result:5]",
				LaTeX:      `P(X\ge [b])=1-\Phi([z:2])=[result:5]`,
				Values:     pick(values, "b", "z", "result"),
			},
		}

	case distribution.ModeBetween:
		values := with(base,
			"a", r.A, "b", r.B,
			"z1", ZScore(r.A, r.Mu, r.Sigma),
			"z2", ZScore(r.B, r.Mu, r.Sigma),
		)
		return []distribution.FormulaStep{
			{
				Label:      "Interval",
				Expression: "P([a] ≤ X ≤ [b]) = P(X ≤ [b]) − P(X ≤ [a])",
				LaTeX:      `P([a]\le X\le [b])=P(X\le [b])-P(X\le [a])`,
				Values:     pick(values, "a", "b"),
			},
			zFormulaStep("x"),
			{
				Label:      "Lower standard score",
				Expression: "Z₁ = ([a] − [mu]) / [sigma] = [z1:2]",
				LaTeX:      `Z_1=\frac{[a]-[mu]}{[sigma]}=[z1:2]`,
				Values:     pick(values, "a", "mu", "sigma", "z1"),
			},
			{
				Label:      "Upper standard score",
				Expression: "Z₂ = ([b] − [mu]) / [sigma] = [z2:2]",
				LaTeX:      `Z_2=\frac{[b]-[mu]}{[sigma]}=[z2:2]`,
				Values:     pick(values, "b", "mu", "sigma", "z2"),
			},
			{
				Label:      "Result",
				Expression: "P([a] ≤ X ≤ [b]) = Φ([z2:2]) − Φ([z1:2]) = [result:5]",
				LaTeX:      `P([a]\le X\le [b])=\Phi([z2:2])-\Phi([z1:2])=[result:5]`,
				Values:     pick(values, "a", "b", "z1", "z2", "result"),
			},
		}

	case distribution.ModeAtZ:
		values := with(base, "a", r.A, "z", ZScore(r.A, r.Mu, r.Sigma))
		return []distribution.FormulaStep{
			zFormulaStep("x"),
			{
				Label:      "Standard score",
				Expression: "Z = ([a] − [mu]) / [sigma] = [z:2]",
				LaTeX:      `Z=\frac{[a]-[mu]}{[sigma]}=[z:2]`,
				Values:     pick(values, "a", "mu", "sigma", "z"),
			},
			{
				Label:      "Result",
				Expression: "Φ([z:2]) = [result:5]",
				LaTeX:      `\Phi([z:2])=[result:5]`,
				Values:     pick(values, "z", "result"),
			},
		}

	default:
		values := with(base, "a", r.A, "z", ZScore(r.A, r.Mu, r.Sigma))
		return []distribution.FormulaStep{
			zFormulaStep("a"),
			{
				Label:      "Standard score",
				Expression: "Z = ([a] − [mu]) / [sigma] = [z:2]",
				LaTeX:      `Z=\frac{[a]-[mu]}{[sigma]}=[z:2]`,
				Values:     pick(values, "a", "mu", "sigma", "z"),
			},
			{
				Label:      "Result",
				Expression: "P(X ≤ [a]) = P(Z ≤ [z:2]) = [result:5]",
				LaTeX:      `P(X\le [a])=P(Z\le [z:2])=[result:5]`,
				Values:     pick(values, "a", "z", "result"),
			},
		}
	}
}

// zFormulaStep is the general z-score formula for the named bound
func zFormulaStep(bound string) distribution.FormulaStep {
	return distribution.FormulaStep{
		Label:      "Z-score formula",
		Expression: "Z = (" + bound + " − μ) / σ",
		LaTeX:      `Z=\frac{` + bound + `-\mu}{\sigma}`,
	}
}

func normalMoments(r distribution.Normal) distribution.Moments {
	d := distuv.Normal{Mu: r.Mu, Sigma: r.Sigma}
	return moments(d.Mean(), d.Variance())
}
