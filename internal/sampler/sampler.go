// Package sampler evaluates a distribution over its plotting range, producing
// the points a chart of the mass or density function is drawn from.
package sampler

import (
	"math"

	"probcalc/domain/core"
	"probcalc/domain/distribution"
	"probcalc/internal/evaluator"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

const (
	// PoissonSpan is the multiple of λ the Poisson plot extends to
	PoissonSpan = 4
	// NormalPoints is the number of evenly spaced density evaluations
	NormalPoints = 1000
	// NormalWidth is the half-width of the Normal plot in standard deviations
	NormalWidth = 4
)

// Sample returns the ordered plotting points for req. Discrete distributions
// mark the evaluated outcome as shaded; the Normal marks the points inside the
// requested tail or interval.
func Sample(req distribution.Request) ([]distribution.SamplePoint, error) {
	if req == nil {
		return nil, core.NewParameterError("kind", "a distribution request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch r := req.(type) {
	case distribution.Binomial:
		return discrete(r.N, r.X, func(x int) float64 {
			return evaluator.BinomialPMF(r.N, x, r.P)
		}), nil
	case *distribution.Binomial:
		return Sample(*r)
	case distribution.Poisson:
		upper := int(math.Ceil(PoissonSpan * r.Lambda))
		if r.X > upper {
			upper = r.X
		}
		return discrete(upper, r.X, func(x int) float64 {
			return evaluator.PoissonPMF(r.Lambda, x)
		}), nil
	case *distribution.Poisson:
		return Sample(*r)
	case distribution.Hypergeometric:
		return discrete(r.Draws, r.X, func(x int) float64 {
			return evaluator.HypergeometricPMF(r.Population, r.Successes, r.Draws, x)
		}), nil
	case *distribution.Hypergeometric:
		return Sample(*r)
	case distribution.Normal:
		return normal(r), nil
	case *distribution.Normal:
		return Sample(*r)
	}
	return nil, core.ErrUnknownKind
}

func discrete(upper, highlight int, pmf func(int) float64) []distribution.SamplePoint {
	points := make([]distribution.SamplePoint, 0, upper+1)
	for x := 0; x <= upper; x++ {
		points = append(points, distribution.SamplePoint{
			X:       float64(x),
			Density: pmf(x),
			Shaded:  x == highlight,
		})
	}
	return points
}

func normal(r distribution.Normal) []distribution.SamplePoint {
	xs := floats.Span(make([]float64, NormalPoints), r.Mu-NormalWidth*r.Sigma, r.Mu+NormalWidth*r.Sigma)

	points := make([]distribution.SamplePoint, len(xs))
	for i, x := range xs {
		points[i] = distribution.SamplePoint{
			X:       x,
			Density: evaluator.NormalPDF(x, r.Mu, r.Sigma),
			Shaded:  inRegion(r, x),
		}
	}
	return points
}

// inRegion reports whether x lies in the region whose probability r asks for
func inRegion(r distribution.Normal, x float64) bool {
	switch r.Mode {
	case distribution.ModeAtLeast:
		return x >= r.B
	case distribution.ModeBetween:
		return x >= r.A && x <= r.B
	default:
		return x <= r.A
	}
}

// Summary describes a sampled curve
type Summary struct {
	Points int `json:"points"`
	// Mass is the plotted probability: the sum of masses for discrete
	// distributions, the trapezoid area under the density otherwise
	Mass float64 `json:"mass"`
	// ShadedMass is the part of Mass in shaded points
	ShadedMass float64                  `json:"shaded_mass"`
	Peak       distribution.SamplePoint `json:"peak"`
}

// Summarize reports the size, plotted mass and peak of a sample
func Summarize(kind distribution.Kind, points []distribution.SamplePoint) (Summary, error) {
	summary := Summary{Points: len(points)}
	if len(points) == 0 {
		return summary, nil
	}

	densities := make([]float64, len(points))
	var shaded []float64
	for i, p := range points {
		densities[i] = p.Density
		if p.Shaded {
			shaded = append(shaded, p.Density)
		}
		if p.Density > summary.Peak.Density || i == 0 {
			summary.Peak = p
		}
	}

	if kind.Discrete() {
		mass, err := stats.Sum(densities)
		if err != nil {
			return summary, err
		}
		summary.Mass = mass
		if len(shaded) > 0 {
			if summary.ShadedMass, err = stats.Sum(shaded); err != nil {
				return summary, err
			}
		}
		return summary, nil
	}

	summary.Mass = trapezoid(points, func(distribution.SamplePoint) bool { return true })
	summary.ShadedMass = trapezoid(points, func(p distribution.SamplePoint) bool { return p.Shaded })
	return summary, nil
}

// trapezoid integrates the density over consecutive points that both satisfy keep
func trapezoid(points []distribution.SamplePoint, keep func(distribution.SamplePoint) bool) float64 {
	area := 0.0
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if !keep(prev) || !keep(cur) {
			continue
		}
		area += (cur.X - prev.X) * (prev.Density + cur.Density) / 2
	}
	return area
}
