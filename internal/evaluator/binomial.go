package evaluator

import (
	"math/big"

	"probcalc/domain/distribution"

	"gonum.org/v1/gonum/stat/distuv"
)

// BinomialPMF returns C(n,x)·p^x·(1-p)^(n-x). The coefficient is exact and
// the product is formed in extended precision, so large n neither overflows
// nor underflows before the final conversion.
func BinomialPMF(n, x int, p float64) float64 {
	if x < 0 || x > n {
		return 0
	}
	prob := new(big.Float).SetPrec(precision).SetInt(binomialCoefficient(n, x))
	prob.Mul(prob, pow(p, x))
	prob.Mul(prob, pow(1-p, n-x))
	f, _ := prob.Float64()
	return f
}

func binomialSteps(r distribution.Binomial, prob float64) []distribution.FormulaStep {
	nx := r.N - r.X
	terms := newBindings()
	terms.set("n", float64(r.N))
	terms.set("x", float64(r.X))
	terms.set("p", r.P)
	terms.set("nx", float64(nx))
	terms.setInt("comb", binomialCoefficient(r.N, r.X))
	terms.setBig("px", pow(r.P, r.X))
	terms.setBig("qnx", pow(1-r.P, nx))

	return []distribution.FormulaStep{
		{
			Label:      "Formula",
			Expression: "P(X = x) = C(n, x) · p^x · (1 − p)^(n − x)",
			LaTeX:      `P(X=x)=\binom{n}{x}p^x(1-p)^{n-x}`,
		},
		terms.step("Substitution",
			"P(X = [x]) = C([n], [x]) · [p]^[x] · (1 − [p])^[nx]",
			`P(X=[x])=\binom{[n]}{[x]}([p])^{[x]}(1-[p])^{[nx]}`,
			"n", "x", "p", "nx"),
		terms.step("Factorial expansion",
			"= [n]! / ([x]! · [nx]!) × [px:5] × [qnx:5]",
			`=\frac{[n]!}{[x]!([nx])!} \times [px:5] \times [qnx:5]`,
			"n", "x", "nx", "px", "qnx"),
		terms.step("Combinations",
			"= [comb] × [px:5] × [qnx:5]",
			`=[comb] \times [px:5] \times [qnx:5]`,
			"comb", "px", "qnx"),
		resultStep(prob),
	}
}

func binomialMoments(r distribution.Binomial) distribution.Moments {
	d := distuv.Binomial{N: float64(r.N), P: r.P}
	return moments(d.Mean(), d.Variance())
}
