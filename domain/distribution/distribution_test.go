package distribution

import (
	"testing"

	"probcalc/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RejectsOutOfRange(t *testing.T) {
	testCases := []struct {
		name  string
		req   Request
		field string
	}{
		{"binomial n zero", Binomial{N: 0, X: 0, P: 0.5}, "n"},
		{"binomial x exceeds n", Binomial{N: 10, X: 11, P: 0.5}, "x"},
		{"binomial negative x", Binomial{N: 10, X: -1, P: 0.5}, "x"},
		{"binomial p above one", Binomial{N: 10, X: 3, P: 1.2}, "p"},
		{"binomial p below zero", Binomial{N: 10, X: 3, P: -0.1}, "p"},
		{"poisson zero lambda", Poisson{Lambda: 0, X: 1}, "lambda"},
		{"poisson negative x", Poisson{Lambda: 2, X: -1}, "x"},
		{"hypergeometric K exceeds N", Hypergeometric{Population: 10, Successes: 11, Draws: 5, X: 1}, "successes"},
		{"hypergeometric n exceeds N", Hypergeometric{Population: 10, Successes: 5, Draws: 11, X: 1}, "draws"},
		{"hypergeometric zero draws", Hypergeometric{Population: 10, Successes: 5, Draws: 0, X: 0}, "draws"},
		{"hypergeometric x exceeds n", Hypergeometric{Population: 10, Successes: 5, Draws: 3, X: 4}, "x"},
		{"normal zero sigma", Normal{Mu: 0, Sigma: 0, Mode: ModeAtMost}, "sigma"},
		{"normal negative sigma", Normal{Mu: 0, Sigma: -1, Mode: ModeAtLeast}, "sigma"},
		{"normal reversed interval", Normal{Mu: 0, Sigma: 1, Mode: ModeBetween, A: 2, B: 1}, "a"},
		{"normal unknown mode", Normal{Mu: 0, Sigma: 1, Mode: "sideways"}, "mode"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			require.Error(t, err)
			assert.True(t, core.IsInvalidParameter(err))
			assert.Equal(t, tc.field, core.ParameterField(err))
		})
	}
}

func TestValidate_AcceptsBoundaryValues(t *testing.T) {
	valid := []Request{
		Binomial{N: 1, X: 0, P: 0},
		Binomial{N: 1, X: 1, P: 1},
		Poisson{Lambda: 0.1, X: 0},
		Hypergeometric{Population: 1, Successes: 0, Draws: 1, X: 0},
		Hypergeometric{Population: 50, Successes: 50, Draws: 50, X: 50},
		Normal{Mu: -3, Sigma: 0.1, Mode: ModeAtZ, A: -3},
		Normal{Mu: 0, Sigma: 1, Mode: ModeBetween, A: 1, B: 1},
	}
	for _, req := range valid {
		assert.NoError(t, req.Validate(), req.String())
	}
}

func TestDefaults_AreValid(t *testing.T) {
	for _, kind := range Kinds {
		req := Defaults(kind)
		require.NotNil(t, req, kind)
		assert.Equal(t, kind, req.Kind())
		assert.NoError(t, req.Validate())
	}
	for _, mode := range NormalModes {
		assert.NoError(t, NormalDefaults(mode).Validate(), mode)
	}

	between := NormalDefaults(ModeBetween)
	assert.Equal(t, 65.0, between.A)
	assert.Equal(t, 75.0, between.B)
}

func TestFromParams(t *testing.T) {
	req, err := FromParams(KindBinomial, "", map[string]float64{"n": 20, "p": 0.25})
	require.NoError(t, err)
	assert.Equal(t, Binomial{N: 20, X: 3, P: 0.25}, req)

	req, err = FromParams(KindNormal, ModeBetween, map[string]float64{"mu": 10, "sigma": 2})
	require.NoError(t, err)
	assert.Equal(t, Normal{Mu: 10, Sigma: 2, Mode: ModeBetween, A: 8, B: 12}, req)

	_, err = FromParams(KindPoisson, "", map[string]float64{"x": 2.5})
	require.Error(t, err)
	assert.True(t, core.IsInvalidParameter(err))
	assert.Equal(t, "x", core.ParameterField(err))

	_, err = FromParams(Kind("cauchy"), "", nil)
	assert.ErrorIs(t, err, core.ErrUnknownKind)
}

func TestParseKindAndMode(t *testing.T) {
	kind, err := ParseKind(" Hipergeometrik ")
	require.NoError(t, err)
	assert.Equal(t, KindHypergeometric, kind)

	_, err = ParseKind("weibull")
	assert.ErrorIs(t, err, core.ErrUnknownKind)

	mode, err := ParseNormalMode("P(X ≥ b)")
	require.NoError(t, err)
	assert.Equal(t, ModeAtLeast, mode)

	mode, err = ParseNormalMode("P(a ≤ X ≤ b)")
	require.NoError(t, err)
	assert.Equal(t, ModeBetween, mode)

	_, err = ParseNormalMode("above")
	assert.ErrorIs(t, err, core.ErrUnknownMode)
}

func TestNormalParams_FollowMode(t *testing.T) {
	atLeast := Normal{Mu: 1, Sigma: 2, Mode: ModeAtLeast, A: 5, B: 6}.Params()
	assert.Equal(t, map[string]float64{"mu": 1, "sigma": 2, "b": 6}, atLeast)

	between := Normal{Mu: 1, Sigma: 2, Mode: ModeBetween, A: 5, B: 6}.Params()
	assert.Len(t, between, 4)
}
