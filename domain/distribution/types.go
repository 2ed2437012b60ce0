package distribution

import (
	"fmt"
	"strings"

	"probcalc/domain/core"
)

// Kind identifies one of the supported distributions
type Kind string

const (
	KindBinomial       Kind = "binomial"
	KindPoisson        Kind = "poisson"
	KindHypergeometric Kind = "hypergeometric"
	KindNormal         Kind = "normal"
)

// Kinds lists the supported distributions in display order
var Kinds = []Kind{KindBinomial, KindPoisson, KindHypergeometric, KindNormal}

// Title returns the human-readable distribution name
func (k Kind) Title() string {
	switch k {
	case KindBinomial:
		return "Binomial"
	case KindPoisson:
		return "Poisson"
	case KindHypergeometric:
		return "Hypergeometric"
	case KindNormal:
		return "Normal"
	default:
		return string(k)
	}
}

// Discrete reports whether the distribution has a probability mass function
func (k Kind) Discrete() bool {
	return k != KindNormal
}

// ParseKind resolves a user-facing distribution name
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binomial", "binom":
		return KindBinomial, nil
	case "poisson":
		return KindPoisson, nil
	case "hypergeometric", "hipergeometrik", "hypergeom":
		return KindHypergeometric, nil
	case "normal", "gaussian", "norm":
		return KindNormal, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownKind, s)
}

// NormalMode selects which probability a Normal request asks for
type NormalMode string

const (
	// ModeAtMost is P(X ≤ a)
	ModeAtMost NormalMode = "at_most"
	// ModeAtLeast is P(X ≥ b)
	ModeAtLeast NormalMode = "at_least"
	// ModeBetween is P(a ≤ X ≤ b)
	ModeBetween NormalMode = "between"
	// ModeAtZ is Φ at the plain z-score of a single point
	ModeAtZ NormalMode = "at_z"
)

// NormalModes lists the modes in display order
var NormalModes = []NormalMode{ModeAtMost, ModeAtLeast, ModeBetween, ModeAtZ}

// Label returns the probability notation for the mode
func (m NormalMode) Label() string {
	switch m {
	case ModeAtMost:
		return "P(X ≤ a)"
	case ModeAtLeast:
		return "P(X ≥ b)"
	case ModeBetween:
		return "P(a ≤ X ≤ b)"
	case ModeAtZ:
		return "Φ(z)"
	default:
		return string(m)
	}
}

// ParseNormalMode resolves a mode by identifier or by its probability notation
func ParseNormalMode(s string) (NormalMode, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), "")) {
	case "at_most", "le", "<=", "p(x≤a)", "p(x<=a)":
		return ModeAtMost, nil
	case "at_least", "ge", ">=", "p(x≥b)", "p(x>=b)":
		return ModeAtLeast, nil
	case "between", "interval", "p(a≤x≤b)", "p(a<=x<=b)":
		return ModeBetween, nil
	case "at_z", "z", "φ(z)", "point":
		return ModeAtZ, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownMode, s)
}

// Request is the tagged union over the four distribution variants.
// Every variant validates its own parameter ranges.
type Request interface {
	Kind() Kind
	Validate() error
	// Params returns the named parameters, used for export and history
	Params() map[string]float64
	String() string
}

// Binomial is the number of successes X in N independent trials with success probability P
type Binomial struct {
	N int     `json:"n"`
	X int     `json:"x"`
	P float64 `json:"p"`
}

// Poisson is the count X of events occurring at average rate Lambda
type Poisson struct {
	Lambda float64 `json:"lambda"`
	X      int     `json:"x"`
}

// Hypergeometric is X successes in Draws draws without replacement from a
// population of Population items containing Successes successes
type Hypergeometric struct {
	Population int `json:"population"`
	Successes  int `json:"successes"`
	Draws      int `json:"draws"`
	X          int `json:"x"`
}

// Normal asks for a cumulative, tail or interval probability of N(Mu, Sigma²).
// A is the upper bound for ModeAtMost, the lower bound for ModeBetween and the
// point for ModeAtZ; B is the lower bound for ModeAtLeast and the upper bound
// for ModeBetween.
type Normal struct {
	Mu    float64    `json:"mu"`
	Sigma float64    `json:"sigma"`
	Mode  NormalMode `json:"mode"`
	A     float64    `json:"a"`
	B     float64    `json:"b"`
}

func (Binomial) Kind() Kind       { return KindBinomial }
func (Poisson) Kind() Kind        { return KindPoisson }
func (Hypergeometric) Kind() Kind { return KindHypergeometric }
func (Normal) Kind() Kind         { return KindNormal }

func (b Binomial) Params() map[string]float64 {
	return map[string]float64{"n": float64(b.N), "x": float64(b.X), "p": b.P}
}

func (p Poisson) Params() map[string]float64 {
	return map[string]float64{"lambda": p.Lambda, "x": float64(p.X)}
}

func (h Hypergeometric) Params() map[string]float64 {
	return map[string]float64{
		"population": float64(h.Population),
		"successes":  float64(h.Successes),
		"draws":      float64(h.Draws),
		"x":          float64(h.X),
	}
}

func (n Normal) Params() map[string]float64 {
	params := map[string]float64{"mu": n.Mu, "sigma": n.Sigma}
	switch n.Mode {
	case ModeAtMost, ModeAtZ:
		params["a"] = n.A
	case ModeAtLeast:
		params["b"] = n.B
	default:
		params["a"] = n.A
		params["b"] = n.B
	}
	return params
}

func (b Binomial) String() string {
	return fmt.Sprintf("Binomial(n=%d, x=%d, p=%g)", b.N, b.X, b.P)
}

func (p Poisson) String() string {
	return fmt.Sprintf("Poisson(λ=%g, x=%d)", p.Lambda, p.X)
}

func (h Hypergeometric) String() string {
	return fmt.Sprintf("Hypergeometric(N=%d, K=%d, n=%d, x=%d)", h.Population, h.Successes, h.Draws, h.X)
}

func (n Normal) String() string {
	switch n.Mode {
	case ModeAtMost:
		return fmt.Sprintf("Normal(μ=%g, σ=%g) P(X ≤ %g)", n.Mu, n.Sigma, n.A)
	case ModeAtLeast:
		return fmt.Sprintf("Normal(μ=%g, σ=%g) P(X ≥ %g)", n.Mu, n.Sigma, n.B)
	case ModeBetween:
		return fmt.Sprintf("Normal(μ=%g, σ=%g) P(%g ≤ X ≤ %g)", n.Mu, n.Sigma, n.A, n.B)
	default:
		return fmt.Sprintf("Normal(μ=%g, σ=%g) Φ(z) at %g", n.Mu, n.Sigma, n.A)
	}
}

// Result is the outcome of a single evaluation
type Result struct {
	Kind        Kind          `json:"kind"`
	Probability float64       `json:"probability"`
	Steps       []FormulaStep `json:"steps,omitempty"`
}

// FormulaStep is one line of a narrated derivation. Expression and LaTeX are
// templates whose [symbol] or [symbol:decimals] placeholders are filled from
// Values; a placeholder without decimals prints the shortest exact form.
// Terms holds preformatted symbols whose magnitude a float64 cannot carry
// exactly, such as 200! or C(2000, 1000); they print as given.
type FormulaStep struct {
	Label      string             `json:"label"`
	Expression string             `json:"expression"`
	LaTeX      string             `json:"latex"`
	Values     map[string]float64 `json:"values,omitempty"`
	Terms      map[string]string  `json:"terms,omitempty"`
}

// SamplePoint is one point of the plotted mass or density function
type SamplePoint struct {
	X       float64 `json:"x"`
	Density float64 `json:"density"`
	// Shaded marks the region the evaluated probability refers to
	Shaded bool `json:"shaded"`
}

// Moments are the closed-form summary moments of a distribution
type Moments struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
}
