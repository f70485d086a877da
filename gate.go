package tequila

import (
	"fmt"
	"slices"
	"strings"
)

// Gate is the capability surface the circuit layer requires from gate
// implementations. Gates are immutable values: mutation happens by
// replacement, never in place.
type Gate interface {
	// Name returns the gate's operation name (e.g. "H", "CX", "RX").
	Name() string
	// Qubits returns the qubit indices the gate touches, targets first,
	// then controls.
	Qubits() []int
	// MaxQubit returns the highest qubit index the gate touches.
	MaxQubit() int
	// IsParametrized reports whether the gate carries a parameter.
	IsParametrized() bool
	// Parameter returns the gate's parameter, or nil when unparametrized.
	Parameter() Parameter
	// ExtractVariables lists the free variables the parameter depends on.
	ExtractVariables() []Variable
	// Dagger returns the adjoint gate, or ErrNoAdjoint.
	Dagger() (Gate, error)
	// Copy returns an independent copy of the gate.
	Copy() Gate
	// Equal reports structural equality: same operation, qubits and parameter.
	Equal(other Gate) bool

	String() string
}

// QGate is the standard gate implementation: an operation name, target and
// control qubits, an adjoint marker for the S/T/√X family, and an optional
// parameter.
type QGate struct {
	name     string
	targets  []int
	controls []int
	param    Parameter
	adjoint  bool
}

// Single-qubit gates.
func H(target int) QGate { return QGate{name: "H", targets: []int{target}} }
func X(target int) QGate { return QGate{name: "X", targets: []int{target}} }
func Y(target int) QGate { return QGate{name: "Y", targets: []int{target}} }
func Z(target int) QGate { return QGate{name: "Z", targets: []int{target}} }
func I(target int) QGate { return QGate{name: "I", targets: []int{target}} }
func S(target int) QGate { return QGate{name: "S", targets: []int{target}} }
func T(target int) QGate { return QGate{name: "T", targets: []int{target}} }

// SX is the square-root-of-X gate.
func SX(target int) QGate { return QGate{name: "SX", targets: []int{target}} }

// SY is the square-root-of-Y gate.
func SY(target int) QGate { return QGate{name: "SY", targets: []int{target}} }

// Sdg, Tdg, SXdg and SYdg are the adjoint variants of S, T, SX and SY.
func Sdg(target int) QGate  { return QGate{name: "S", targets: []int{target}, adjoint: true} }
func Tdg(target int) QGate  { return QGate{name: "T", targets: []int{target}, adjoint: true} }
func SXdg(target int) QGate { return QGate{name: "SX", targets: []int{target}, adjoint: true} }
func SYdg(target int) QGate { return QGate{name: "SY", targets: []int{target}, adjoint: true} }

// Rotation and phase gates. Optional controls turn Rx(p, t, c) into a
// controlled rotation.
func Rx(angle Parameter, target int, controls ...int) QGate {
	return rotation("RX", angle, target, controls)
}

func Ry(angle Parameter, target int, controls ...int) QGate {
	return rotation("RY", angle, target, controls)
}

func Rz(angle Parameter, target int, controls ...int) QGate {
	return rotation("RZ", angle, target, controls)
}

// Phase is the phase-shift gate (QASM "p"/"u1"); with controls it becomes CU1.
func Phase(angle Parameter, target int, controls ...int) QGate {
	if len(controls) > 0 {
		return QGate{name: "CU1", targets: []int{target}, controls: slices.Clone(controls), param: angle}
	}
	return QGate{name: "P", targets: []int{target}, param: angle}
}

func rotation(name string, angle Parameter, target int, controls []int) QGate {
	if len(controls) > 0 {
		return QGate{name: "C" + name, targets: []int{target}, controls: slices.Clone(controls), param: angle}
	}
	return QGate{name: name, targets: []int{target}, param: angle}
}

// Two-qubit gates.
func CX(control, target int) QGate {
	return QGate{name: "CX", targets: []int{target}, controls: []int{control}}
}

func CZ(control, target int) QGate {
	return QGate{name: "CZ", targets: []int{target}, controls: []int{control}}
}

func CH(control, target int) QGate {
	return QGate{name: "CH", targets: []int{target}, controls: []int{control}}
}

func SWAP(q1, q2 int) QGate {
	return QGate{name: "SWAP", targets: []int{q1, q2}}
}

// CCX is the Toffoli gate.
func CCX(control1, control2, target int) QGate {
	return QGate{name: "CCX", targets: []int{target}, controls: []int{control1, control2}}
}

// Measure measures the target qubit into the classical bit of the same index.
// It has no adjoint.
func Measure(target int) QGate { return QGate{name: "MEASURE", targets: []int{target}} }

func (g QGate) Name() string { return g.name }

func (g QGate) Qubits() []int {
	qs := make([]int, 0, len(g.targets)+len(g.controls))
	qs = append(qs, g.targets...)
	qs = append(qs, g.controls...)
	return qs
}

func (g QGate) MaxQubit() int {
	qmax := 0
	for _, q := range g.Qubits() {
		if q > qmax {
			qmax = q
		}
	}
	return qmax
}

// Targets returns the gate's target qubits.
func (g QGate) Targets() []int { return slices.Clone(g.targets) }

// Controls returns the gate's control qubits.
func (g QGate) Controls() []int { return slices.Clone(g.controls) }

// IsAdjoint reports whether the gate carries the adjoint marker (S†, T†, √X†).
func (g QGate) IsAdjoint() bool { return g.adjoint }

func (g QGate) IsParametrized() bool { return g.param != nil }

func (g QGate) Parameter() Parameter { return g.param }

func (g QGate) ExtractVariables() []Variable {
	if g.param == nil {
		return nil
	}
	return g.param.Variables()
}

func (g QGate) clone() QGate {
	out := g
	out.targets = slices.Clone(g.targets)
	out.controls = slices.Clone(g.controls)
	return out
}

func (g QGate) Copy() Gate { return g.clone() }

func (g QGate) Dagger() (Gate, error) {
	switch g.name {
	case "H", "X", "Y", "Z", "I", "CX", "CZ", "CH", "SWAP", "CCX":
		// self-inverse
		return g.clone(), nil
	case "S", "T", "SX", "SY":
		out := g.clone()
		out.adjoint = !g.adjoint
		return out, nil
	case "RX", "RY", "RZ", "P", "CRX", "CRY", "CRZ", "CU1":
		out := g.clone()
		out.param = g.param.Neg()
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoAdjoint, g.name)
}

func (g QGate) Equal(other Gate) bool {
	o, ok := other.(QGate)
	if !ok {
		return false
	}
	if g.name != o.name || g.adjoint != o.adjoint {
		return false
	}
	if !slices.Equal(g.targets, o.targets) || !slices.Equal(g.controls, o.controls) {
		return false
	}
	if (g.param == nil) != (o.param == nil) {
		return false
	}
	return g.param == nil || g.param.Equal(o.param)
}

// qasmName returns the lowercase QASM mnemonic, with a "dg" suffix for
// adjoint-marked gates.
func (g QGate) qasmName() string {
	name := strings.ToLower(g.name)
	if g.adjoint {
		name += "dg"
	}
	return name
}

// String renders the gate as a single QASM-style statement (no semicolon),
// e.g. "rx(theta) q[0]" or "cx q[1], q[0]".
func (g QGate) String() string {
	if g.name == "MEASURE" {
		return fmt.Sprintf("measure q[%d] -> c[%d]", g.targets[0], g.targets[0])
	}

	var sb strings.Builder
	sb.WriteString(g.qasmName())
	if g.param != nil {
		fmt.Fprintf(&sb, "(%s)", g.param)
	}
	sb.WriteByte(' ')
	// QASM operand order: controls first, then targets
	first := true
	for _, q := range g.controls {
		if !first {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "q[%d]", q)
		first = false
	}
	for _, q := range g.targets {
		if !first {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "q[%d]", q)
		first = false
	}
	return sb.String()
}
