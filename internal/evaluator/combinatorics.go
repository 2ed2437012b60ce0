package evaluator

import (
	"math"
	"math/big"

	"probcalc/domain/distribution"
)

const (
	// precision of intermediate big.Float products, in mantissa bits
	precision = 256
	// exactLimit is the magnitude below which every integer is a float64
	exactLimit = 1 << 53
)

// binomialCoefficient returns the exact C(n, k), zero outside 0 ≤ k ≤ n
func binomialCoefficient(n, k int) *big.Int {
	if k < 0 || n < 0 || k > n {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

// factorial returns the exact n!
func factorial(n int) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, int64(n))
}

// pow returns base^k for k ≥ 0 by repeated squaring in extended precision.
// pow(0, 0) is 1.
func pow(base float64, k int) *big.Float {
	result := new(big.Float).SetPrec(precision).SetInt64(1)
	b := new(big.Float).SetPrec(precision).SetFloat64(base)
	for k > 0 {
		if k&1 == 1 {
			result.Mul(result, b)
		}
		b.Mul(b, b)
		k >>= 1
	}
	return result
}

// bindings holds the symbols a derivation substitutes. Terms at or beyond
// exactLimit are kept as scientific notation so every bound value is finite.
type bindings struct {
	values map[string]float64
	text   map[string]string
}

func newBindings() bindings {
	return bindings{values: map[string]float64{}, text: map[string]string{}}
}

func (b bindings) set(symbol string, v float64) {
	b.values[symbol] = v
}

func (b bindings) setInt(symbol string, i *big.Int) {
	b.setBig(symbol, new(big.Float).SetPrec(precision).SetInt(i))
}

func (b bindings) setBig(symbol string, f *big.Float) {
	if v, _ := f.Float64(); math.Abs(v) < exactLimit {
		b.values[symbol] = v
		return
	}
	b.text[symbol] = f.Text('e', 6)
}

// step builds a formula step bound to the named symbols
func (b bindings) step(label, expression, latex string, symbols ...string) distribution.FormulaStep {
	step := distribution.FormulaStep{
		Label:      label,
		Expression: expression,
		LaTeX:      latex,
		Values:     make(map[string]float64, len(symbols)),
	}
	for _, s := range symbols {
		if v, ok := b.values[s]; ok {
			step.Values[s] = v
		} else if t, ok := b.text[s]; ok {
			if step.Terms == nil {
				step.Terms = map[string]string{}
			}
			step.Terms[s] = t
		}
	}
	return step
}
