// Package tequila implements the circuit construction and scheduling layer of
// a variational-quantum-algorithm toolkit: ordered gate sequences, their
// decomposition into moments of concurrently executable gates, a parameter
// index for gradient assembly, and the algebraic operators (concatenation,
// adjoint, splicing) that combine circuits while preserving those structures.
package tequila

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ParamEntry records one gate referencing a variable: the gate's position in
// the circuit's gate sequence and the gate itself.
type ParamEntry struct {
	Position int
	Gate     Gate
}

// Circuit is an ordered sequence of gates; insertion order is execution
// order, earliest first. The empty circuit is the identity.
//
// A Circuit is not safe for concurrent mutation; callers serialize access to
// a single instance.
type Circuit struct {
	gates      []Gate
	minNQubits int
	paramMap   map[Variable][]ParamEntry
}

// NewCircuit builds a circuit from the given gates and derives its parameter
// map.
func NewCircuit(gates ...Gate) *Circuit {
	c := &Circuit{gates: slices.Clone(gates)}
	c.paramMap = c.makeParameterMap()
	return c
}

// makeParameterMap scans the gate sequence and indexes, per variable, every
// (position, gate) pair referencing it, preserving first-seen order.
func (c *Circuit) makeParameterMap() map[Variable][]ParamEntry {
	pm := make(map[Variable][]ParamEntry)
	for idx, g := range c.gates {
		if !g.IsParametrized() {
			continue
		}
		for _, v := range g.ExtractVariables() {
			pm[v] = append(pm[v], ParamEntry{Position: idx, Gate: g})
		}
	}
	return pm
}

// Gates returns the circuit's gate sequence. The slice is shared; callers
// must not mutate it.
func (c *Circuit) Gates() []Gate { return c.gates }

// Len returns the number of gates.
func (c *Circuit) Len() int { return len(c.gates) }

// IsPrimitive reports whether the circuit wraps a single gate.
func (c *Circuit) IsPrimitive() bool { return len(c.gates) == 1 }

// Qubits returns the sorted set of qubit indices touched by any gate.
func (c *Circuit) Qubits() []int {
	seen := make(map[int]bool)
	var qs []int
	for _, g := range c.gates {
		for _, q := range g.Qubits() {
			if !seen[q] {
				seen[q] = true
				qs = append(qs, q)
			}
		}
	}
	sort.Ints(qs)
	return qs
}

// MaxQubit returns the highest qubit index the circuit touches (0 when empty).
func (c *Circuit) MaxQubit() int {
	qmax := 0
	for _, g := range c.gates {
		if m := g.MaxQubit(); m > qmax {
			qmax = m
		}
	}
	return qmax
}

// NQubits returns the circuit's qubit count: the larger of the actual usage
// and the explicitly set lower bound.
func (c *Circuit) NQubits() int {
	return max(c.MaxQubit()+1, c.minNQubits)
}

// SetNQubits raises the circuit's qubit-count lower bound. Setting it below
// the actual usage fails with ErrQubitBound.
func (c *Circuit) SetNQubits(n int) error {
	if need := c.MaxQubit() + 1; n < need {
		return fmt.Errorf("%w: requested %d but circuit needs at least %d", ErrQubitBound, n, need)
	}
	c.minNQubits = n
	return nil
}

// differentiable reports whether the gate carries a parameter that still
// depends on a free variable. Gates parametrized by a fixed numeric value do
// not count.
func differentiable(g Gate) bool {
	if !g.IsParametrized() {
		return false
	}
	p := g.Parameter()
	return p != nil && p.HasVariables()
}

func minQubit(g Gate) int {
	qs := g.Qubits()
	m := qs[0]
	for _, q := range qs[1:] {
		if q < m {
			m = q
		}
	}
	return m
}

// Moments decomposes the circuit into time-ordered layers of gates with
// pairwise-disjoint qubits, using a greedy earliest-fit over the original
// gate order: each gate lands in the first layer whose per-qubit slots are
// all free. Per-qubit causal order is preserved. Gates inside each moment are
// sorted by their minimum qubit index.
func (c *Circuit) Moments() []*Moment {
	slot := make(map[int]int)
	var moms []*Moment
	for _, g := range c.gates {
		s := 0
		for _, q := range g.Qubits() {
			if slot[q] > s {
				s = slot[q]
			}
		}
		if s == len(moms) {
			moms = append(moms, newMomentUnchecked(g))
		} else {
			moms[s].Add(g)
		}
		for _, q := range g.Qubits() {
			slot[q] = s + 1
		}
	}
	for _, m := range moms {
		m.sortGates()
	}
	return moms
}

// CanonicalMoments decomposes the circuit like Moments, but splits every
// layer into an (unparametrized-or-fixed, differentiable-parametrized) pair,
// flattened u,p,u,p,... so the result length is always even. Two per-qubit
// slot tables are kept; a differentiable gate on qubit q may share the layer
// of the prior unparametrized occupancy (uSlot[q]-1) while an unparametrized
// gate must clear both tables. The update rule fixes the layer assignment
// downstream differentiation depends on; do not re-derive it.
func (c *Circuit) CanonicalMoments() []*Moment {
	uSlot := make(map[int]int)
	pSlot := make(map[int]int)

	type layer struct {
		u, p *Moment
	}
	var layers []layer

	for _, g := range c.gates {
		if differentiable(g) {
			s := 0
			for _, q := range g.Qubits() {
				if v := pSlot[q]; v > s {
					s = v
				}
				if v := uSlot[q] - 1; v > s {
					s = v
				}
			}
			if s == len(layers) {
				layers = append(layers, layer{u: newMomentUnchecked(), p: newMomentUnchecked(g)})
			} else {
				layers[s].p.Add(g)
			}
			for _, q := range g.Qubits() {
				uSlot[q] = s + 1
				pSlot[q] = s + 1
			}
		} else {
			s := 0
			for _, q := range g.Qubits() {
				if v := uSlot[q]; v > s {
					s = v
				}
				if v := pSlot[q]; v > s {
					s = v
				}
			}
			if s == len(layers) {
				layers = append(layers, layer{u: newMomentUnchecked(g), p: newMomentUnchecked()})
			} else {
				layers[s].u.Add(g)
			}
			for _, q := range g.Qubits() {
				uSlot[q] = s + 1
				pSlot[q] = s
			}
		}
	}

	moms := make([]*Moment, 0, 2*len(layers))
	for _, l := range layers {
		moms = append(moms, l.u, l.p)
	}
	for _, m := range moms {
		m.sortGates()
	}
	return moms
}

// Depth returns the number of moments.
func (c *Circuit) Depth() int { return len(c.Moments()) }

// CanonicalDepth returns the number of canonical moments.
func (c *Circuit) CanonicalDepth() int { return len(c.CanonicalMoments()) }

// ExtractVariables returns the sorted set of free variables referenced by any
// gate in the circuit.
func (c *Circuit) ExtractVariables() []Variable {
	seen := make(map[Variable]bool)
	var vars []Variable
	for _, g := range c.gates {
		if !g.IsParametrized() {
			continue
		}
		for _, v := range g.ExtractVariables() {
			if !seen[v] {
				seen[v] = true
				vars = append(vars, v)
			}
		}
	}
	slices.Sort(vars)
	return vars
}

// IsFullyParametrized reports whether every gate carries a parameter that
// still depends on a free variable.
func (c *Circuit) IsFullyParametrized() bool {
	for _, g := range c.gates {
		if !differentiable(g) {
			return false
		}
	}
	return true
}

// IsFullyUnparametrized reports whether no gate depends on a free variable.
// Gates parametrized by fixed numeric values still count as unparametrized.
func (c *Circuit) IsFullyUnparametrized() bool {
	for _, g := range c.gates {
		if differentiable(g) {
			return false
		}
	}
	return true
}

// IsMixed reports whether the circuit contains both differentiable and
// non-differentiable gates.
func (c *Circuit) IsMixed() bool {
	return !(c.IsFullyParametrized() || c.IsFullyUnparametrized())
}

// ParameterMap returns the variable index: for each variable, the ordered
// (position, gate) pairs referencing it. The map is shared; callers must not
// mutate it.
func (c *Circuit) ParameterMap() map[Variable][]ParamEntry { return c.paramMap }

// Verify cross-checks the parameter map against the live gate sequence: every
// indexed entry must point at the gate actually occupying that position, and
// that gate must reference the indexing variable.
func (c *Circuit) Verify() bool {
	for v, entries := range c.paramMap {
		for _, e := range entries {
			if e.Position < 0 || e.Position >= len(c.gates) {
				return false
			}
			g := c.gates[e.Position]
			if !g.Equal(e.Gate) {
				return false
			}
			if !slices.Contains(g.ExtractVariables(), v) {
				return false
			}
		}
	}
	return true
}

// sortedGateOrder returns the gates in moment order, without mutating the
// circuit.
func (c *Circuit) sortedGateOrder() []Gate {
	out := make([]Gate, 0, len(c.gates))
	for _, m := range c.Moments() {
		out = append(out, m.gates...)
	}
	return out
}

// SortGates reorders the gate sequence into moment order (each moment's gates
// by ascending minimum qubit) and rebuilds the parameter map for the new
// positions.
func (c *Circuit) SortGates() {
	c.gates = c.sortedGateOrder()
	c.paramMap = c.makeParameterMap()
}

// Equal reports whether both circuits contain equal gates in the same moment
// order. Neither operand is mutated.
func (c *Circuit) Equal(other *Circuit) bool {
	if other == nil || len(c.gates) != len(other.gates) {
		return false
	}
	a := c.sortedGateOrder()
	b := other.sortedGateOrder()
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy: every gate copied, bound and parameter map
// rebuilt.
func (c *Circuit) Copy() *Circuit {
	gates := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		gates[i] = g.Copy()
	}
	out := NewCircuit(gates...)
	out.minNQubits = c.minNQubits
	return out
}

func (c *Circuit) String() string {
	var sb strings.Builder
	sb.WriteString("circuit:\n")
	for _, g := range c.gates {
		sb.WriteString(g.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
