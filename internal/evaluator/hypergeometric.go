package evaluator

import (
	"math/big"

	"probcalc/domain/distribution"
)

// HypergeometricPMF returns C(K,x)·C(N-K,n-x) / C(N,n), computed as an exact
// ratio. Outcomes outside the support have probability zero.
func HypergeometricPMF(population, successes, draws, x int) float64 {
	den := binomialCoefficient(population, draws)
	if den.Sign() == 0 {
		return 0
	}
	num := new(big.Int).Mul(
		binomialCoefficient(successes, x),
		binomialCoefficient(population-successes, draws-x),
	)
	f, _ := new(big.Rat).SetFrac(num, den).Float64()
	return f
}

func hypergeometricSteps(r distribution.Hypergeometric, prob float64) []distribution.FormulaStep {
	nk := r.Population - r.Successes
	nx := r.Draws - r.X
	terms := newBindings()
	terms.set("N", float64(r.Population))
	terms.set("K", float64(r.Successes))
	terms.set("n", float64(r.Draws))
	terms.set("x", float64(r.X))
	terms.set("NK", float64(nk))
	terms.set("nx", float64(nx))
	terms.setInt("cK", binomialCoefficient(r.Successes, r.X))
	terms.setInt("cNK", binomialCoefficient(nk, nx))
	terms.setInt("cN", binomialCoefficient(r.Population, r.Draws))

	return []distribution.FormulaStep{
		{
			Label:      "Formula",
			Expression: "P(X = x) = C(K, x) · C(N − K, n − x) / C(N, n)",
			LaTeX:      `P(X=x)=\frac{\binom{K}{x}\binom{N-K}{n-x}}{\binom{N}{n}}`,
		},
		terms.step("Substitution",
			"P(X = [x]) = C([K], [x]) · C([NK], [nx]) / C([N], [n])",
			`P(X=[x])=\frac{\binom{[K]}{[x]}\binom{[NK]}{[nx]}}{\binom{[N]}{[n]}}`,
			"N", "K", "n", "x", "NK", "nx"),
		terms.step("Combinations",
			"C([K], [x]) = [cK], C([NK], [nx]) = [cNK], C([N], [n]) = [cN]",
			`\binom{[K]}{[x]}=[cK],\quad \binom{[NK]}{[nx]}=[cNK],\quad \binom{[N]}{[n]}=[cN]`,
			"N", "K", "n", "x", "NK", "nx", "cK", "cNK", "cN"),
		terms.step("Quotient",
			"= [cK] · [cNK] / [cN]",
			`=\frac{[cK]\cdot [cNK]}{[cN]}`,
			"cK", "cNK", "cN"),
		resultStep(prob),
	}
}

func hypergeometricMoments(r distribution.Hypergeometric) distribution.Moments {
	total := float64(r.Population)
	share := float64(r.Successes) / total
	n := float64(r.Draws)

	mean := n * share
	variance := 0.0
	if r.Population > 1 {
		variance = n * share * (1 - share) * (total - n) / (total - 1)
	}
	return moments(mean, variance)
}
