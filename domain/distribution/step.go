package distribution

import (
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\[([A-Za-z_][A-Za-z0-9_]*)(?::(\d+))?\]`)

// Text renders the plain-text expression with values substituted
func (s FormulaStep) Text() string {
	return s.substitute(s.Expression)
}

// TeX renders the LaTeX expression with values substituted
func (s FormulaStep) TeX() string {
	return s.substitute(s.LaTeX)
}

// Value returns the value bound to symbol
func (s FormulaStep) Value(symbol string) (float64, bool) {
	v, ok := s.Values[symbol]
	return v, ok
}

func (s FormulaStep) substitute(tmpl string) string {
	if len(s.Values) == 0 && len(s.Terms) == 0 {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		groups := placeholder.FindStringSubmatch(match)
		if term, ok := s.Terms[groups[1]]; ok {
			return term
		}
		v, ok := s.Values[groups[1]]
		if !ok {
			return match
		}
		decimals := -1
		if groups[2] != "" {
			decimals, _ = strconv.Atoi(groups[2])
		}
		return FormatValue(v, decimals)
	})
}

// FormatValue prints v with the given number of decimals, or in its shortest
// exact form when decimals is negative. Negative zero prints as zero.
func FormatValue(v float64, decimals int) string {
	out := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.HasPrefix(out, "-") && strings.Trim(out, "-0.") == "" {
		return out[1:]
	}
	return out
}
