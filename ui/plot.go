package ui

import (
	"fmt"
	"math"
	"strings"

	"probcalc/domain/distribution"
)

const (
	plotWidth   = 640
	plotHeight  = 320
	plotMargin  = 36
	shadedFill  = "#e4572e"
	defaultFill = "#4c72b0"
)

// PlotSVG draws sampled points as an inline SVG chart: bars for a mass
// function, a curve with the shaded region filled for a density
func PlotSVG(kind distribution.Kind, points []distribution.SamplePoint) string {
	if len(points) == 0 {
		return ""
	}

	minX, maxX := points[0].X, points[len(points)-1].X
	maxY := 0.0
	for _, p := range points {
		maxY = math.Max(maxY, p.Density)
	}
	if maxY == 0 {
		maxY = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" class="plot" role="img" aria-label="%s">`,
		plotWidth, plotHeight, kind.Title())
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333"/>`,
		plotMargin, plotHeight-plotMargin, plotWidth-plotMargin, plotHeight-plotMargin)

	if kind.Discrete() {
		plotBars(&b, points, minX, maxX, maxY)
	} else {
		plotCurve(&b, points, minX, maxX, maxY)
	}

	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12">%s</text>`,
		plotMargin, plotHeight-plotMargin/3, distribution.FormatValue(minX, 2))
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" text-anchor="end">%s</text>`,
		plotWidth-plotMargin, plotHeight-plotMargin/3, distribution.FormatValue(maxX, 2))
	b.WriteString(`</svg>`)
	return b.String()
}

func plotBars(b *strings.Builder, points []distribution.SamplePoint, minX, maxX, maxY float64) {
	slots := maxX - minX + 1
	inner := float64(plotWidth - 2*plotMargin)
	width := inner / slots

	for _, p := range points {
		x := float64(plotMargin) + (p.X-minX)*width
		h := p.Density / maxY * float64(plotHeight-2*plotMargin)
		fill := defaultFill
		if p.Shaded {
			fill = shadedFill
		}
		fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"><title>P(X = %s) = %s</title></rect>`,
			x+width*0.1, float64(plotHeight-plotMargin)-h, width*0.8, h, fill,
			distribution.FormatValue(p.X, 0), distribution.FormatValue(p.Density, 5))
	}
}

func plotCurve(b *strings.Builder, points []distribution.SamplePoint, minX, maxX, maxY float64) {
	span := maxX - minX
	if span == 0 {
		span = 1
	}
	px := func(x float64) float64 {
		return float64(plotMargin) + (x-minX)/span*float64(plotWidth-2*plotMargin)
	}
	py := func(y float64) float64 {
		return float64(plotHeight-plotMargin) - y/maxY*float64(plotHeight-2*plotMargin)
	}
	base := float64(plotHeight - plotMargin)

	// each contiguous shaded run becomes one filled polygon
	for i := 0; i < len(points); {
		if !points[i].Shaded {
			i++
			continue
		}
		j := i
		var poly strings.Builder
		fmt.Fprintf(&poly, "%.2f,%.2f", px(points[i].X), base)
		for ; j < len(points) && points[j].Shaded; j++ {
			fmt.Fprintf(&poly, " %.2f,%.2f", px(points[j].X), py(points[j].Density))
		}
		fmt.Fprintf(&poly, " %.2f,%.2f", px(points[j-1].X), base)
		fmt.Fprintf(b, `<polygon points="%s" fill="%s" fill-opacity="0.5"/>`, poly.String(), shadedFill)
		i = j
	}

	var line strings.Builder
	for i, p := range points {
		if i > 0 {
			line.WriteByte(' ')
		}
		fmt.Fprintf(&line, "%.2f,%.2f", px(p.X), py(p.Density))
	}
	fmt.Fprintf(b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`, line.String(), defaultFill)
}
