package tequila

import (
	"fmt"
	"slices"
	"sort"
)

// Operand is the closed set of values the algebraic operators accept: a gate,
// a gate list, a circuit, or a moment. Constructors normalize every variant
// into a circuit view up front, so the concatenation and splicing algorithms
// run on a single representation. The zero Operand is invalid and fails with
// ErrOperandType.
type Operand struct {
	circ *Circuit
}

// GateOp wraps a single gate.
func GateOp(g Gate) Operand {
	if g == nil {
		return Operand{}
	}
	return Operand{circ: NewCircuit(g)}
}

// GatesOp wraps a gate list.
func GatesOp(gates ...Gate) Operand {
	return Operand{circ: NewCircuit(gates...)}
}

// CircuitOp wraps a circuit.
func CircuitOp(c *Circuit) Operand {
	return Operand{circ: c}
}

// MomentOp wraps a moment, dropping its disjointness guarantee.
func MomentOp(m *Moment) Operand {
	if m == nil {
		return Operand{}
	}
	return Operand{circ: m.AsCircuit()}
}

// wrap returns the operand's circuit view.
func (o Operand) wrap() (*Circuit, error) {
	if o.circ == nil {
		return nil, fmt.Errorf("%w: empty operand", ErrOperandType)
	}
	return o.circ, nil
}

// Add appends gates in place, extending the parameter map for each new
// position.
func (c *Circuit) Add(gates ...Gate) {
	if c.paramMap == nil {
		c.paramMap = make(map[Variable][]ParamEntry)
	}
	for _, g := range gates {
		pos := len(c.gates)
		c.gates = append(c.gates, g)
		if !g.IsParametrized() {
			continue
		}
		for _, v := range g.ExtractVariables() {
			c.paramMap[v] = append(c.paramMap[v], ParamEntry{Position: pos, Gate: g})
		}
	}
}

// Append concatenates the operand's gates onto c in place. The operand's
// parameter-map entries merge in with every position offset by c's gate count
// at merge time, and the qubit-count lower bound becomes the max of both.
func (c *Circuit) Append(op Operand) error {
	other, err := op.wrap()
	if err != nil {
		return err
	}
	c.appendCircuit(other)
	return nil
}

func (c *Circuit) appendCircuit(other *Circuit) {
	if c.paramMap == nil {
		c.paramMap = make(map[Variable][]ParamEntry)
	}
	offset := len(c.gates)
	for v, entries := range other.paramMap {
		for _, e := range entries {
			c.paramMap[v] = append(c.paramMap[v], ParamEntry{Position: e.Position + offset, Gate: e.Gate})
		}
	}
	c.gates = append(c.gates, other.gates...)
	if other.minNQubits > c.minNQubits {
		c.minNQubits = other.minNQubits
	}
}

// Concat returns a new circuit holding copies of a's gates followed by copies
// of b's; neither operand is mutated and no gate is aliased across the
// result. The bound is the elementwise max.
func Concat(a, b *Circuit) *Circuit {
	gates := make([]Gate, 0, len(a.gates)+len(b.gates))
	for _, g := range a.gates {
		gates = append(gates, g.Copy())
	}
	for _, g := range b.gates {
		gates = append(gates, g.Copy())
	}
	out := NewCircuit(gates...)
	out.minNQubits = max(a.minNQubits, b.minNQubits)
	return out
}

// Dagger returns the adjoint circuit: gates in reversed order, each replaced
// by its own adjoint. Fails if any gate has no adjoint.
func (c *Circuit) Dagger() (*Circuit, error) {
	out := NewCircuit()
	for i := len(c.gates) - 1; i >= 0; i-- {
		dg, err := c.gates[i].Dagger()
		if err != nil {
			return nil, err
		}
		out.Add(dg)
	}
	return out, nil
}

// splice returns gates with deleteCount elements at start replaced by ins.
func splice(gates []Gate, start, deleteCount int, ins []Gate) []Gate {
	out := make([]Gate, 0, len(gates)-deleteCount+len(ins))
	out = append(out, gates[:start]...)
	out = append(out, ins...)
	out = append(out, gates[start+deleteCount:]...)
	return out
}

// ReplaceGates returns a new circuit with the payloads spliced in at the
// given positions. Positions always refer to the original gate sequence;
// edits are applied in ascending position order with a running offset so
// simultaneous edits compose. replace[i] true removes the gate originally at
// positions[i] before splicing payloads[i] there; false inserts the payload
// immediately before it. A nil replace defaults to all true. The result's
// qubit bound is the max of the original's and the new usage, and its
// parameter map is rebuilt from scratch.
func (c *Circuit) ReplaceGates(positions []int, payloads []Operand, replace []bool) (*Circuit, error) {
	if len(positions) != len(payloads) {
		return nil, fmt.Errorf("%w: %d positions, %d payloads", ErrLengthMismatch, len(positions), len(payloads))
	}
	if replace == nil {
		replace = make([]bool, len(positions))
		for i := range replace {
			replace[i] = true
		}
	} else if len(replace) != len(positions) {
		return nil, fmt.Errorf("%w: %d positions, %d replace flags", ErrLengthMismatch, len(positions), len(replace))
	}

	type edit struct {
		pos     int
		gates   []Gate
		replace bool
	}
	edits := make([]edit, 0, len(positions))
	for i, pos := range positions {
		sub, err := payloads[i].wrap()
		if err != nil {
			return nil, err
		}
		if pos < 0 || pos >= len(c.gates) {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrPosition, pos, len(c.gates))
		}
		edits = append(edits, edit{pos: pos, gates: sub.gates, replace: replace[i]})
	}
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].pos < edits[j].pos })

	gates := slices.Clone(c.gates)
	offset := 0
	for _, e := range edits {
		pos := e.pos + offset
		if e.replace {
			gates = splice(gates, pos, 1, e.gates)
			offset += len(e.gates) - 1
		} else {
			gates = splice(gates, pos, 0, e.gates)
			offset += len(e.gates)
		}
	}

	out := NewCircuit(gates...)
	if n := c.NQubits(); n > out.NQubits() {
		out.minNQubits = n
	}
	return out, nil
}

// InsertGates is ReplaceGates with every flag forced to insert-only: each
// payload lands immediately before the gate originally at its position.
func (c *Circuit) InsertGates(positions []int, payloads []Operand) (*Circuit, error) {
	return c.ReplaceGates(positions, payloads, make([]bool, len(positions)))
}
