package evaluator

import (
	"encoding/json"
	"math"
	"testing"

	"probcalc/domain/core"
	"probcalc/domain/distribution"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_ReferenceValues(t *testing.T) {
	e := New()

	testCases := []struct {
		name     string
		req      distribution.Request
		expected float64
	}{
		{"binomial n=10 x=3 p=0.5", distribution.Binomial{N: 10, X: 3, P: 0.5}, 0.1171875},
		{"poisson lambda=3 x=2", distribution.Poisson{Lambda: 3, X: 2}, 0.22404180765538775},
		{"poisson lambda=4 x=3", distribution.Poisson{Lambda: 4, X: 3}, 0.19536681481316456},
		// C(20,3)·C(30,7)/C(50,10) = 2320812000/10272278170
		{"hypergeometric 50/20/10/3", distribution.Hypergeometric{Population: 50, Successes: 20, Draws: 10, X: 3}, 0.2259296293959298},
		{"normal at most", distribution.Normal{Mu: 50, Sigma: 10, Mode: distribution.ModeAtMost, A: 60}, 0.8413447460685429},
		{"normal at z", distribution.Normal{Mu: 50, Sigma: 10, Mode: distribution.ModeAtZ, A: 60}, 0.8413447460685429},
		{"normal at least", distribution.Normal{Mu: 50, Sigma: 10, Mode: distribution.ModeAtLeast, B: 60}, 0.15865525393145707},
		{"normal between one sigma", distribution.Normal{Mu: 70, Sigma: 5, Mode: distribution.ModeBetween, A: 65, B: 75}, 0.6826894921370859},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := e.Evaluate(tc.req, false)
			require.NoError(t, err)
			assert.Equal(t, tc.req.Kind(), result.Kind)
			assert.InDelta(t, tc.expected, result.Probability, 1e-12)
			assert.Empty(t, result.Steps)
		})
	}
}

func TestEvaluate_FiveDecimalReferences(t *testing.T) {
	e := New()
	round5 := func(v float64) float64 { return math.Round(v*1e5) / 1e5 }

	binom, err := e.Evaluate(distribution.Binomial{N: 10, X: 3, P: 0.5}, false)
	require.NoError(t, err)
	assert.Equal(t, 0.11719, round5(binom.Probability))

	poisson, err := e.Evaluate(distribution.Poisson{Lambda: 3.0, X: 2}, false)
	require.NoError(t, err)
	assert.Equal(t, 0.22404, round5(poisson.Probability))

	normal, err := e.Evaluate(distribution.Normal{Mu: 50, Sigma: 10, Mode: distribution.ModeAtMost, A: 60}, true)
	require.NoError(t, err)
	assert.Equal(t, 0.84134, round5(normal.Probability))

	z, ok := normal.Steps[1].Value("z")
	require.True(t, ok)
	assert.Equal(t, "1.00", distribution.FormatValue(z, 2))
}

func TestBinomialPMF_SumsToOne(t *testing.T) {
	for _, n := range []int{1, 10, 57, 300} {
		for _, p := range []float64{0, 0.01, 0.3, 0.5, 0.97, 1} {
			sum := 0.0
			for x := 0; x <= n; x++ {
				prob := BinomialPMF(n, x, p)
				assert.GreaterOrEqual(t, prob, 0.0)
				assert.LessOrEqual(t, prob, 1.0+1e-12)
				sum += prob
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "n=%d p=%g", n, p)
		}
	}
}

func TestBinomialPMF_ZeroToTheZero(t *testing.T) {
	// 0^0 resolves to 1 at both degenerate ends
	assert.Equal(t, 1.0, BinomialPMF(5, 0, 0))
	assert.Equal(t, 0.0, BinomialPMF(5, 1, 0))
	assert.Equal(t, 1.0, BinomialPMF(5, 5, 1))
	assert.Equal(t, 0.0, BinomialPMF(5, 4, 1))
}

func TestBinomialPMF_LargeN(t *testing.T) {
	// C(2000, 1000) overflows float64 on its own
	prob := BinomialPMF(2000, 1000, 0.5)
	assert.False(t, math.IsNaN(prob))
	assert.InDelta(t, 0.01783901, prob, 1e-7)
}

func TestHypergeometricPMF_OutsideSupport(t *testing.T) {
	// x > K cannot occur
	assert.Equal(t, 0.0, HypergeometricPMF(10, 2, 5, 3))
	// n - x > N - K cannot occur
	assert.Equal(t, 0.0, HypergeometricPMF(10, 8, 5, 2))

	sum := 0.0
	for x := 0; x <= 10; x++ {
		sum += HypergeometricPMF(50, 20, 10, x)
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestNormal_ComplementAndIntervalIdentities(t *testing.T) {
	e := New()
	cases := []struct{ mu, sigma, a, b float64 }{
		{0, 1, -1.5, 0.3},
		{70, 5, 61, 83},
		{-20, 0.5, -21, -19.9},
		{1e3, 250, 400, 400},
	}

	for _, c := range cases {
		atMostA, err := e.Evaluate(distribution.Normal{Mu: c.mu, Sigma: c.sigma, Mode: distribution.ModeAtMost, A: c.a}, false)
		require.NoError(t, err)
		atMostB, err := e.Evaluate(distribution.Normal{Mu: c.mu, Sigma: c.sigma, Mode: distribution.ModeAtMost, A: c.b}, false)
		require.NoError(t, err)
		atLeastB, err := e.Evaluate(distribution.Normal{Mu: c.mu, Sigma: c.sigma, Mode: distribution.ModeAtLeast, B: c.b}, false)
		require.NoError(t, err)
		between, err := e.Evaluate(distribution.Normal{Mu: c.mu, Sigma: c.sigma, Mode: distribution.ModeBetween, A: c.a, B: c.b}, false)
		require.NoError(t, err)

		assert.InDelta(t, 1-atMostB.Probability, atLeastB.Probability, 1e-15)
		assert.InDelta(t, atMostB.Probability-atMostA.Probability, between.Probability, 1e-15)
		assert.GreaterOrEqual(t, between.Probability, 0.0)
	}
}

func TestEvaluate_InvalidParameters(t *testing.T) {
	e := New()
	invalid := []distribution.Request{
		distribution.Binomial{N: 10, X: 11, P: 0.5},
		distribution.Binomial{N: 10, X: 3, P: 1.5},
		distribution.Binomial{N: 10, X: 3, P: math.NaN()},
		distribution.Poisson{Lambda: -1, X: 2},
		distribution.Hypergeometric{Population: 10, Successes: 12, Draws: 5, X: 1},
		distribution.Normal{Mu: 0, Sigma: 0, Mode: distribution.ModeAtMost},
		distribution.Normal{Mu: 0, Sigma: -2, Mode: distribution.ModeBetween, A: -1, B: 1},
		nil,
	}

	for _, req := range invalid {
		result, err := e.Evaluate(req, true)
		require.Error(t, err)
		assert.True(t, core.IsInvalidParameter(err), "%v", err)
		assert.Nil(t, result)

		_, err = e.Moments(req)
		assert.True(t, core.IsInvalidParameter(err))
	}
}

func TestEvaluate_PointerVariants(t *testing.T) {
	e := New()
	result, err := e.Evaluate(&distribution.Poisson{Lambda: 3, X: 2}, false)
	require.NoError(t, err)
	assert.Equal(t, distribution.KindPoisson, result.Kind)
	assert.InDelta(t, 0.22404, result.Probability, 1e-5)
}

func TestEvaluate_StepsEndWithReturnedProbability(t *testing.T) {
	e := New()
	requests := []distribution.Request{
		distribution.Binomial{N: 10, X: 3, P: 0.5},
		distribution.Poisson{Lambda: 4, X: 3},
		distribution.Hypergeometric{Population: 50, Successes: 20, Draws: 10, X: 3},
	}
	for _, mode := range distribution.NormalModes {
		requests = append(requests, distribution.NormalDefaults(mode))
	}

	for _, req := range requests {
		result, err := e.Evaluate(req, true)
		require.NoError(t, err)
		require.NotEmpty(t, result.Steps, req.String())

		last := result.Steps[len(result.Steps)-1]
		value, ok := last.Value("result")
		require.True(t, ok, req.String())
		assert.Equal(t, result.Probability, value, req.String())
		assert.Contains(t, last.Text(), distribution.FormatValue(result.Probability, 5))

		for _, step := range result.Steps {
			assert.NotEmpty(t, step.Label)
			assert.NotContains(t, step.Text(), "[", "unfilled placeholder in %q", step.Text())
			assert.NotContains(t, step.TeX(), "[", "unfilled placeholder in %q", step.TeX())
		}
	}
}

func TestEvaluate_BinomialNarration(t *testing.T) {
	result, err := New().Evaluate(distribution.Binomial{N: 10, X: 3, P: 0.5}, true)
	require.NoError(t, err)
	require.Len(t, result.Steps, 5)

	assert.Equal(t, "P(X = 3) = C(10, 3) · 0.5^3 · (1 − 0.5)^7", result.Steps[1].Text())
	assert.Equal(t, "= 10! / (3! · 7!) × 0.12500 × 0.00781", result.Steps[2].Text())
	assert.Equal(t, "= 120 × 0.12500 × 0.00781", result.Steps[3].Text())
	assert.Equal(t, "= 0.11719", result.Steps[4].Text())
}

func TestEvaluate_PoissonNarration(t *testing.T) {
	result, err := New().Evaluate(distribution.Poisson{Lambda: 3, X: 2}, true)
	require.NoError(t, err)
	require.Len(t, result.Steps, 5)

	assert.Equal(t, "e^(−3) = 0.04979, 3^2 = 9.00000, 2! = 2", result.Steps[2].Text())
	assert.Equal(t, "= 0.22404", result.Steps[4].Text())
}

func TestEvaluate_HypergeometricNarration(t *testing.T) {
	result, err := New().Evaluate(distribution.Hypergeometric{Population: 50, Successes: 20, Draws: 10, X: 3}, true)
	require.NoError(t, err)

	assert.Equal(t, "P(X = 3) = C(20, 3) · C(30, 7) / C(50, 10)", result.Steps[1].Text())
	assert.Equal(t, "C(20, 3) = 1140, C(30, 7) = 2035800, C(50, 10) = 10272278170", result.Steps[2].Text())
}

func TestEvaluate_NormalIntervalNarration(t *testing.T) {
	result, err := New().Evaluate(distribution.NormalDefaults(distribution.ModeBetween), true)
	require.NoError(t, err)

	texts := make([]string, len(result.Steps))
	for i, s := range result.Steps {
		texts[i] = s.Text()
	}
	assert.Contains(t, texts, "Z₁ = (65 − 70) / 5 = -1.00")
	assert.Contains(t, texts, "Z₂ = (75 − 70) / 5 = 1.00")
	assert.Contains(t, texts, "P(65 ≤ X ≤ 75) = Φ(1.00) − Φ(-1.00) = 0.68269")
}

func TestEvaluate_OversizedTermsStayFinite(t *testing.T) {
	e := New()
	requests := []distribution.Request{
		distribution.Poisson{Lambda: 150, X: 175},
		distribution.Binomial{N: 1100, X: 550, P: 0.5},
		distribution.Hypergeometric{Population: 2000, Successes: 1000, Draws: 1000, X: 500},
	}

	for _, req := range requests {
		result, err := e.Evaluate(req, true)
		require.NoError(t, err, req.String())
		assert.False(t, math.IsNaN(result.Probability) || math.IsInf(result.Probability, 0), req.String())

		for _, step := range result.Steps {
			for symbol, v := range step.Values {
				assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "%s: %s = %v", req, symbol, v)
			}
			assert.NotContains(t, step.Text(), "Inf", req.String())
			assert.NotContains(t, step.TeX(), "Inf", req.String())
			assert.NotContains(t, step.Text(), "[", req.String())
		}

		_, err = json.Marshal(result)
		assert.NoError(t, err, req.String())
	}
}

func TestEvaluate_PoissonLargeTermsInScientificNotation(t *testing.T) {
	result, err := New().Evaluate(distribution.Poisson{Lambda: 150, X: 175}, true)
	require.NoError(t, err)

	terms := result.Steps[2]
	_, ok := terms.Value("fact")
	assert.False(t, ok)
	assert.Regexp(t, `^\d\.\d{6}e\+318$`, terms.Terms["fact"])
	assert.Contains(t, terms.Text(), "175! = "+terms.Terms["fact"])
	assert.InDelta(t, 0.004176938655243024, result.Probability, 1e-12)
}

func TestEvaluate_ExactTermsBelowFloatPrecision(t *testing.T) {
	result, err := New().Evaluate(distribution.Binomial{N: 50, X: 25, P: 0.5}, true)
	require.NoError(t, err)

	comb, ok := result.Steps[3].Value("comb")
	require.True(t, ok)
	assert.Equal(t, 126410606437752.0, comb)
	assert.Empty(t, result.Steps[3].Terms)
}

func TestEvaluate_Limits(t *testing.T) {
	e := New()
	testCases := []struct {
		req   distribution.Request
		field string
	}{
		{distribution.Binomial{N: 2000000, X: 1000000, P: 0.5}, "n"},
		{distribution.Poisson{Lambda: 1e6, X: 2}, "lambda"},
		{distribution.Poisson{Lambda: 3, X: 50000}, "x"},
		{distribution.Hypergeometric{Population: 20000, Successes: 10, Draws: 5, X: 1}, "population"},
	}

	for _, tc := range testCases {
		_, err := e.Evaluate(tc.req, false)
		require.Error(t, err, tc.req.String())
		assert.True(t, core.IsInvalidParameter(err))
		assert.Equal(t, tc.field, core.ParameterField(err))
		assert.Contains(t, err.Error(), "exceeds the limit")

		assert.Error(t, e.Check(tc.req))
	}

	_, err := e.Evaluate(distribution.Binomial{N: DefaultLimits.MaxCount, X: 10, P: 0.5}, false)
	assert.NoError(t, err)
}

func TestNewWithLimits(t *testing.T) {
	e := NewWithLimits(Limits{MaxCount: 20})
	assert.Equal(t, 20, e.Limits().MaxCount)
	assert.Equal(t, DefaultLimits.MaxLambda, e.Limits().MaxLambda)

	err := e.Check(distribution.Binomial{N: 21, X: 3, P: 0.5})
	assert.Equal(t, "n", core.ParameterField(err))
	assert.NoError(t, e.Check(distribution.Binomial{N: 20, X: 3, P: 0.5}))
	assert.NoError(t, e.Check(&distribution.Poisson{Lambda: 5, X: 20}))
}

func TestMoments(t *testing.T) {
	e := New()

	m, err := e.Moments(distribution.Binomial{N: 10, X: 3, P: 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, m.Mean, 1e-12)
	assert.InDelta(t, 2.5, m.Variance, 1e-12)

	m, err = e.Moments(distribution.Poisson{Lambda: 4, X: 3})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, m.Mean, 1e-12)
	assert.InDelta(t, 2.0, m.StdDev, 1e-12)

	m, err = e.Moments(distribution.Hypergeometric{Population: 50, Successes: 20, Draws: 10, X: 3})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, m.Mean, 1e-12)
	assert.InDelta(t, 10*0.4*0.6*40.0/49.0, m.Variance, 1e-12)

	m, err = e.Moments(distribution.Hypergeometric{Population: 1, Successes: 1, Draws: 1, X: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Variance)

	m, err = e.Moments(distribution.NormalDefaults(distribution.ModeAtMost))
	require.NoError(t, err)
	assert.InDelta(t, 70.0, m.Mean, 1e-12)
	assert.InDelta(t, 25.0, m.Variance, 1e-12)
}
