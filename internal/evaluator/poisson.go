package evaluator

import (
	"math"

	"probcalc/domain/distribution"

	"gonum.org/v1/gonum/stat/distuv"
)

// PoissonPMF returns e^(-λ)·λ^x / x!
func PoissonPMF(lambda float64, x int) float64 {
	if x < 0 {
		return 0
	}
	return distuv.Poisson{Lambda: lambda}.Prob(float64(x))
}

func poissonSteps(r distribution.Poisson, prob float64) []distribution.FormulaStep {
	terms := newBindings()
	terms.set("lambda", r.Lambda)
	terms.set("x", float64(r.X))
	terms.set("expneg", math.Exp(-r.Lambda))
	terms.setBig("pow", pow(r.Lambda, r.X))
	terms.setInt("fact", factorial(r.X))

	return []distribution.FormulaStep{
		{
			Label:      "Formula",
			Expression: "P(X = x) = e^(−λ) · λ^x / x!",
			LaTeX:      `P(X=x)=\frac{e^{-\lambda}\lambda^x}{x!}`,
		},
		terms.step("Substitution",
			"P(X = [x]) = e^(−[lambda]) · [lambda]^[x] / [x]!",
			`P(X=[x])=\frac{e^{-[lambda]}\cdot [lambda]^{[x]}}{[x]!}`,
			"lambda", "x"),
		terms.step("Terms",
			"e^(−[lambda]) = [expneg:5], [lambda]^[x] = [pow:5], [x]! = [fact]",
			`e^{-[lambda]}=[expneg:5],\quad [lambda]^{[x]}=[pow:5],\quad [x]!=[fact]`,
			"lambda", "x", "expneg", "pow", "fact"),
		terms.step("Quotient",
			"= [expneg:5] · [pow:5] / [fact]",
			`=\frac{[expneg:5]\cdot [pow:5]}{[fact]}`,
			"expneg", "pow", "fact"),
		resultStep(prob),
	}
}

func poissonMoments(r distribution.Poisson) distribution.Moments {
	d := distuv.Poisson{Lambda: r.Lambda}
	return moments(d.Mean(), d.Variance())
}
