package tequila

import (
	"fmt"
	"math"
)

// Variable is the identity of a named symbolic quantity a gate parameter may
// depend on. Variables compare by value and are usable as map keys, so two
// gates referring to "theta" share one parameter-map slot regardless of where
// the gates were built.
type Variable string

// Name returns the variable's name.
func (v Variable) Name() string { return string(v) }

func (v Variable) String() string { return string(v) }

// Parameter is a gate parameter expression. It is a closed set: Fixed carries
// a plain numeric value with no free variables, Symbolic scales a single free
// variable. HasVariables distinguishes the two for the canonical-moment split
// and the parametrization predicates.
type Parameter interface {
	// HasVariables reports whether the expression depends on at least one
	// free variable.
	HasVariables() bool
	// Variables lists the free variables of the expression.
	Variables() []Variable
	// Value evaluates the expression under the given binding.
	Value(binding map[Variable]float64) (float64, error)
	// Neg returns the negated expression (used by gate adjoints).
	Neg() Parameter
	// Equal reports structural equality.
	Equal(other Parameter) bool

	String() string
}

const paramEps = 1e-10

// Fixed is a parameter holding a plain numeric value.
type Fixed float64

func (f Fixed) HasVariables() bool    { return false }
func (f Fixed) Variables() []Variable { return nil }

func (f Fixed) Value(map[Variable]float64) (float64, error) { return float64(f), nil }

func (f Fixed) Neg() Parameter { return -f }

func (f Fixed) Equal(other Parameter) bool {
	o, ok := other.(Fixed)
	return ok && math.Abs(float64(f)-float64(o)) < paramEps
}

func (f Fixed) String() string { return FormatValue(float64(f)) }

// Symbolic is a parameter of the form coeff*variable.
type Symbolic struct {
	Coeff float64
	Var   Variable
}

// Sym returns the symbolic parameter 1*name.
func Sym(name Variable) Symbolic { return Symbolic{Coeff: 1, Var: name} }

func (s Symbolic) HasVariables() bool    { return true }
func (s Symbolic) Variables() []Variable { return []Variable{s.Var} }

func (s Symbolic) Value(binding map[Variable]float64) (float64, error) {
	v, ok := binding[s.Var]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnboundVariable, s.Var)
	}
	return s.Coeff * v, nil
}

func (s Symbolic) Neg() Parameter { return Symbolic{Coeff: -s.Coeff, Var: s.Var} }

func (s Symbolic) Equal(other Parameter) bool {
	o, ok := other.(Symbolic)
	return ok && o.Var == s.Var && math.Abs(s.Coeff-o.Coeff) < paramEps
}

func (s Symbolic) String() string {
	switch {
	case math.Abs(s.Coeff-1) < paramEps:
		return string(s.Var)
	case math.Abs(s.Coeff+1) < paramEps:
		return "-" + string(s.Var)
	}
	return fmt.Sprintf("%s*%s", FormatValue(s.Coeff), s.Var)
}
