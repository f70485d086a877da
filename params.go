package tequila

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// paramPattern matches a single parameter expression: numbers, pi expressions,
// or (optionally scaled) variable names.
// Examples: "1.5707", "pi", "pi/2", "3*pi/4", "-pi", "3.14e-2", "theta", "-2*theta"
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?|\d*\.?\d*\*?[a-zA-Z_]\w*)`

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// symExprRegex matches (optionally scaled) variable references: theta, -theta, 2*theta, 0.5*a
var symExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*([a-zA-Z_]\w*)$`)

// ParseParameter parses a single parameter expression.
// Returns the parsed Parameter and true on success, or nil and false.
//
// Supported formats:
//   - Plain numbers: "1.5707", "3.14", "-0.5"
//   - Pi constant and fractions: "pi", "pi/2", "3*pi/4", "-pi", "2pi"
//   - Variable references: "theta", "-theta", "2*theta", "0.5*a"
func ParseParameter(s string) (Parameter, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	// Try plain number first
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return Fixed(val), true
	}

	// Try pi expression
	if matches := piExprRegex.FindStringSubmatch(strings.ToLower(s)); matches != nil {
		negative := matches[1] == "-"
		coeffStr := matches[2]
		denomStr := matches[3]

		coeff := 1.0
		if coeffStr != "" {
			var err error
			coeff, err = strconv.ParseFloat(coeffStr, 64)
			if err != nil {
				return nil, false
			}
		}

		result := coeff * math.Pi

		if denomStr != "" {
			denom, err := strconv.ParseFloat(denomStr, 64)
			if err != nil || denom == 0 {
				return nil, false
			}
			result /= denom
		}

		if negative {
			result = -result
		}
		return Fixed(result), true
	}

	// Try symbolic variable reference
	if matches := symExprRegex.FindStringSubmatch(s); matches != nil {
		coeff := 1.0
		if matches[2] != "" {
			var err error
			coeff, err = strconv.ParseFloat(matches[2], 64)
			if err != nil {
				return nil, false
			}
		}
		if matches[1] == "-" {
			coeff = -coeff
		}
		return Symbolic{Coeff: coeff, Var: Variable(matches[3])}, true
	}

	return nil, false
}

// FormatValue formats a numeric value, using pi notation when possible.
// Recognizes common pi fractions: pi, pi/2, pi/4, pi/3, pi/6, pi/8, 2pi, 3pi/4, etc.
func FormatValue(val float64) string {
	type piForm struct {
		value   float64
		display string
	}
	piForms := []piForm{
		{2 * math.Pi, "2*pi"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3*pi/4"},
		{3 * math.Pi / 2, "3*pi/2"},
		{2 * math.Pi / 3, "2*pi/3"},
	}

	for _, pf := range piForms {
		if math.Abs(val-pf.value) < paramEps {
			return pf.display
		}
		if math.Abs(val+pf.value) < paramEps {
			return "-" + pf.display
		}
	}

	return fmt.Sprintf("%g", val)
}
