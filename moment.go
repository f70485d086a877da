package tequila

import (
	"fmt"
	"sort"
	"strings"
)

// Moment is a circuit whose gates touch pairwise-disjoint qubit sets: one
// layer of parallel execution. The disjointness invariant is enforced at
// construction and insertion.
type Moment struct {
	Circuit
}

// overlappingQubit returns the first qubit occupied by more than one gate,
// if any.
func overlappingQubit(gates []Gate) (int, bool) {
	occ := make(map[int]bool)
	for _, g := range gates {
		for _, q := range g.Qubits() {
			if occ[q] {
				return q, true
			}
			occ[q] = true
		}
	}
	return 0, false
}

// NewMoment builds a moment from the given gates, failing with
// ErrQubitConflict if any qubit is doubly occupied.
func NewMoment(gates ...Gate) (*Moment, error) {
	if q, ok := overlappingQubit(gates); ok {
		return nil, fmt.Errorf("%w: qubit %d doubly occupied", ErrQubitConflict, q)
	}
	return newMomentUnchecked(gates...), nil
}

// newMomentUnchecked builds a moment without the disjointness check; callers
// guarantee the invariant.
func newMomentUnchecked(gates ...Gate) *Moment {
	return &Moment{Circuit: *NewCircuit(gates...)}
}

// sortGates orders the moment's gates by ascending minimum qubit index and
// rebuilds the parameter map for the new positions. Disjointness makes the
// order total.
func (m *Moment) sortGates() {
	sort.Slice(m.gates, func(i, j int) bool {
		return minQubit(m.gates[i]) < minQubit(m.gates[j])
	})
	m.paramMap = m.makeParameterMap()
}

// Moments returns the moment itself as its own decomposition.
func (m *Moment) Moments() []*Moment { return []*Moment{m} }

// CanonicalMoments splits the moment into its (non-differentiable,
// differentiable) pair.
func (m *Moment) CanonicalMoments() []*Moment {
	u := newMomentUnchecked()
	p := newMomentUnchecked()
	for _, g := range m.gates {
		if differentiable(g) {
			p.Add(g)
		} else {
			u.Add(g)
		}
	}
	u.sortGates()
	p.sortGates()
	return []*Moment{u, p}
}

// Depth of a moment is always 1.
func (m *Moment) Depth() int { return 1 }

// CanonicalDepth of a moment is always 2.
func (m *Moment) CanonicalDepth() int { return 2 }

// AddGate adds a gate in place if its qubits are disjoint from every gate in
// the moment; otherwise it fails with ErrQubitConflict naming the occupied
// qubit.
func (m *Moment) AddGate(g Gate) error {
	occ := make(map[int]bool)
	for _, q := range m.Qubits() {
		occ[q] = true
	}
	for _, q := range g.Qubits() {
		if occ[q] {
			return fmt.Errorf("%w: cannot add %s, qubit %d already occupied", ErrQubitConflict, g, q)
		}
	}
	m.Add(g)
	m.sortGates()
	return nil
}

// WithGate returns a new moment containing g: any existing gates overlapping
// g's qubits are dropped first (overwrite semantics), the rest are copied.
func (m *Moment) WithGate(g Gate) *Moment {
	overlap := make(map[int]bool)
	for _, q := range g.Qubits() {
		overlap[q] = true
	}

	gates := make([]Gate, 0, len(m.gates)+1)
	for _, old := range m.gates {
		keep := true
		for _, q := range old.Qubits() {
			if overlap[q] {
				keep = false
				break
			}
		}
		if keep {
			gates = append(gates, old.Copy())
		}
	}
	gates = append(gates, g)
	return newMomentUnchecked(gates...)
}

// WithGates folds a batch of gates through WithGate after verifying no two
// incoming gates share a qubit, then restores deterministic sort order.
func (m *Moment) WithGates(gates ...Gate) (*Moment, error) {
	if q, ok := overlappingQubit(gates); ok {
		return nil, fmt.Errorf("%w: multiple incoming gates act on qubit %d", ErrQubitConflict, q)
	}
	if len(gates) == 0 {
		return m, nil
	}
	out := m
	for _, g := range gates {
		out = out.WithGate(g)
	}
	out.sortGates()
	return out, nil
}

// SpliceResult is the outcome of a moment splice: a Moment when the
// disjointness invariant survived, otherwise a plain Circuit.
type SpliceResult struct {
	moment *Moment
	circ   *Circuit
}

// IsMoment reports whether the splice preserved the moment invariant.
func (r SpliceResult) IsMoment() bool { return r.moment != nil }

// Moment returns the result as a moment, if the invariant survived.
func (r SpliceResult) Moment() (*Moment, bool) { return r.moment, r.moment != nil }

// AsCircuit returns the result as a plain circuit in either case.
func (r SpliceResult) AsCircuit() *Circuit {
	if r.moment != nil {
		return r.moment.AsCircuit()
	}
	return r.circ
}

// ReplaceGate splices the payload's gates in place of the gate at position.
// If the replacement keeps all qubit sets disjoint the result stays a
// Moment; otherwise it degrades to a plain Circuit (documented fallback, not
// a failure).
func (m *Moment) ReplaceGate(position int, op Operand) (SpliceResult, error) {
	sub, err := op.wrap()
	if err != nil {
		return SpliceResult{}, err
	}
	if position < 0 || position >= len(m.gates) {
		return SpliceResult{}, fmt.Errorf("%w: %d not in [0,%d)", ErrPosition, position, len(m.gates))
	}

	gates := splice(m.gates, position, 1, sub.gates)
	if _, overlap := overlappingQubit(gates); overlap {
		return SpliceResult{circ: NewCircuit(gates...)}, nil
	}
	return SpliceResult{moment: newMomentUnchecked(gates...)}, nil
}

// AsCircuit converts the moment to a plain circuit, dropping the disjointness
// guarantee but preserving gate order.
func (m *Moment) AsCircuit() *Circuit {
	out := NewCircuit(m.gates...)
	out.minNQubits = m.minNQubits
	return out
}

// AsMoment views the circuit as a single moment. Fails with ErrNotMoment when
// any qubit is touched twice (depth exceeds 1).
func (c *Circuit) AsMoment() (*Moment, error) {
	if q, ok := overlappingQubit(c.gates); ok {
		return nil, fmt.Errorf("%w: qubit %d is touched more than once", ErrNotMoment, q)
	}
	m := newMomentUnchecked(c.gates...)
	m.minNQubits = c.minNQubits
	return m, nil
}

// FromMoments concatenates moments back into a circuit in order.
func FromMoments(moments ...*Moment) *Circuit {
	c := NewCircuit()
	for _, m := range moments {
		c.appendCircuit(m.AsCircuit())
	}
	return c
}

// FullyParametrized reports whether every gate in the moment depends on a
// free variable.
func (m *Moment) FullyParametrized() bool {
	for _, g := range m.gates {
		if !differentiable(g) {
			return false
		}
	}
	return true
}

func (m *Moment) String() string {
	parts := make([]string, len(m.gates))
	for i, g := range m.gates {
		parts[i] = g.String()
	}
	return "moment: " + strings.Join(parts, ", ")
}
