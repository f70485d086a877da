package tequila

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMomentsPartitionAllGates(t *testing.T) {
	c := NewCircuit(
		H(0),
		CX(0, 1),
		Rx(Sym("a"), 2),
		CZ(1, 2),
		X(0),
		SWAP(0, 3),
		Rz(Fixed(math.Pi/2), 1),
	)

	total := 0
	for _, m := range c.Moments() {
		total += m.Len()
	}
	assert.Equal(t, c.Len(), total, "moment decomposition must partition all gates")
}

func TestMomentsPreserveCausalOrder(t *testing.T) {
	c := NewCircuit(
		H(0),
		CX(0, 1),
		X(1),
		CX(1, 2),
		Ry(Sym("b"), 0),
		CCX(0, 1, 2),
	)

	var flat []Gate
	for _, m := range c.Moments() {
		flat = append(flat, m.Gates()...)
	}

	for q := 0; q <= c.MaxQubit(); q++ {
		var orig, sched []Gate
		for _, g := range c.Gates() {
			for _, gq := range g.Qubits() {
				if gq == q {
					orig = append(orig, g)
					break
				}
			}
		}
		for _, g := range flat {
			for _, gq := range g.Qubits() {
				if gq == q {
					sched = append(sched, g)
					break
				}
			}
		}
		require.Equal(t, len(orig), len(sched), "qubit %d", q)
		for i := range orig {
			assert.True(t, orig[i].Equal(sched[i]), "qubit %d: gate order changed at %d", q, i)
		}
	}
}

func TestMomentsScenario(t *testing.T) {
	// Ry needs q2, which moment 0 already occupies with X.
	c := NewCircuit(
		Rz(Fixed(0.5), 0),
		X(2),
		Ry(Fixed(1.0), 1, 2),
	)

	moms := c.Moments()
	require.Len(t, moms, 2)
	require.Equal(t, 2, moms[0].Len())
	require.Equal(t, 1, moms[1].Len())

	assert.True(t, moms[0].Gates()[0].Equal(Rz(Fixed(0.5), 0)))
	assert.True(t, moms[0].Gates()[1].Equal(X(2)))
	assert.True(t, moms[1].Gates()[0].Equal(Ry(Fixed(1.0), 1, 2)))
	assert.Equal(t, 2, c.Depth())
}

func TestMomentsEmptyCircuit(t *testing.T) {
	c := NewCircuit()
	assert.Empty(t, c.Moments())
	assert.Equal(t, 0, c.Depth())
	assert.Empty(t, c.CanonicalMoments())
}

func TestCanonicalMomentsAlwaysEven(t *testing.T) {
	circuits := []*Circuit{
		NewCircuit(H(0)),
		NewCircuit(Rx(Sym("a"), 0)),
		NewCircuit(H(0), Rx(Sym("a"), 0), CX(0, 1), Ry(Sym("b"), 1)),
		NewCircuit(X(0), X(0), X(0)),
	}
	for _, c := range circuits {
		assert.Zero(t, len(c.CanonicalMoments())%2)
	}
}

func TestCanonicalMomentsSharesLayerWithPriorUnparametrized(t *testing.T) {
	// A differentiable gate may share the layer of the unparametrized gate
	// that precedes it on the same qubit.
	c := NewCircuit(X(0), Rx(Sym("a"), 0))

	moms := c.CanonicalMoments()
	require.Len(t, moms, 2)
	require.Equal(t, 1, moms[0].Len())
	require.Equal(t, 1, moms[1].Len())
	assert.True(t, moms[0].Gates()[0].Equal(X(0)))
	assert.True(t, moms[1].Gates()[0].Equal(Rx(Sym("a"), 0)))
}

func TestCanonicalMomentsBarrier(t *testing.T) {
	// An unparametrized gate never moves before a differentiable gate that
	// causally precedes it on a shared qubit.
	c := NewCircuit(Rx(Sym("a"), 0), X(0), Rx(Sym("b"), 0))

	moms := c.CanonicalMoments()
	require.Len(t, moms, 4)
	assert.Equal(t, 0, moms[0].Len())
	require.Equal(t, 1, moms[1].Len())
	assert.True(t, moms[1].Gates()[0].Equal(Rx(Sym("a"), 0)))
	require.Equal(t, 1, moms[2].Len())
	assert.True(t, moms[2].Gates()[0].Equal(X(0)))
	require.Equal(t, 1, moms[3].Len())
	assert.True(t, moms[3].Gates()[0].Equal(Rx(Sym("b"), 0)))
	assert.Equal(t, 4, c.CanonicalDepth())
}

func TestCanonicalMomentsFixedParameterIsNotDifferentiable(t *testing.T) {
	// Rx with a fixed numeric angle carries no free variable and lands in the
	// unparametrized track.
	c := NewCircuit(Rx(Fixed(0.3), 0))

	moms := c.CanonicalMoments()
	require.Len(t, moms, 2)
	assert.Equal(t, 1, moms[0].Len())
	assert.Equal(t, 0, moms[1].Len())
}

func TestConcatIsSequenceConcatenation(t *testing.T) {
	a := NewCircuit(H(0), Rx(Sym("a"), 1))
	b := NewCircuit(CX(0, 1), Ry(Sym("b"), 0))

	out := Concat(a, b)
	require.Equal(t, 4, out.Len())
	want := append(append([]Gate{}, a.Gates()...), b.Gates()...)
	for i, g := range out.Gates() {
		assert.True(t, g.Equal(want[i]), "gate %d", i)
	}

	// operands untouched
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, b.Len())
	assert.True(t, out.Verify())
}

func TestConcatTakesMaxQubitBound(t *testing.T) {
	a := NewCircuit(H(0))
	require.NoError(t, a.SetNQubits(5))
	b := NewCircuit(X(1))
	require.NoError(t, b.SetNQubits(3))

	out := Concat(a, b)
	assert.Equal(t, 5, out.NQubits())
}

func TestAppendMergesParameterMapWithOffset(t *testing.T) {
	a := NewCircuit(Rx(Sym("a"), 0), H(0))
	b := NewCircuit(Ry(Sym("a"), 1), Rz(Sym("b"), 0))

	require.NoError(t, a.Append(CircuitOp(b)))
	require.Equal(t, 4, a.Len())
	require.True(t, a.Verify())

	entries := a.ParameterMap()[Variable("a")]
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Position)
	assert.Equal(t, 2, entries[1].Position)

	entries = a.ParameterMap()[Variable("b")]
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Position)
}

func TestAppendOperandForms(t *testing.T) {
	c := NewCircuit(H(0))
	require.NoError(t, c.Append(GateOp(X(1))))
	require.NoError(t, c.Append(GatesOp(Y(0), Z(1))))

	m, err := NewMoment(H(2), H(3))
	require.NoError(t, err)
	require.NoError(t, c.Append(MomentOp(m)))

	assert.Equal(t, 6, c.Len())
	assert.True(t, c.Verify())
}

func TestAppendRejectsInvalidOperand(t *testing.T) {
	c := NewCircuit(H(0))
	err := c.Append(Operand{})
	require.ErrorIs(t, err, ErrOperandType)

	err = c.Append(GateOp(nil))
	require.ErrorIs(t, err, ErrOperandType)
}

func TestDaggerReversesAndAdjoints(t *testing.T) {
	c := NewCircuit(H(0), S(0), Rx(Fixed(math.Pi/2), 1))

	d, err := c.Dagger()
	require.NoError(t, err)
	require.Equal(t, 3, d.Len())

	assert.True(t, d.Gates()[0].Equal(Rx(Fixed(-math.Pi/2), 1)))
	assert.True(t, d.Gates()[1].Equal(Sdg(0)))
	assert.True(t, d.Gates()[2].Equal(H(0)))
}

func TestDaggerRoundTrip(t *testing.T) {
	c := NewCircuit(H(0), CX(0, 1), Rx(Sym("a"), 1), Tdg(0), SWAP(1, 2))

	d, err := c.Dagger()
	require.NoError(t, err)
	dd, err := d.Dagger()
	require.NoError(t, err)
	assert.True(t, dd.Equal(c))
}

func TestDaggerFailsWithoutAdjoint(t *testing.T) {
	c := NewCircuit(H(0), Measure(0))
	_, err := c.Dagger()
	require.ErrorIs(t, err, ErrNoAdjoint)
}

func TestReplaceGatesScenario(t *testing.T) {
	// Replacing the middle gate of a 3-gate circuit with two gates yields a
	// 4-gate circuit with the tail shifted right.
	c := NewCircuit(H(0), X(1), Y(2))
	g1, g2 := Z(1), S(1)

	out, err := c.ReplaceGates([]int{1}, []Operand{GatesOp(g1, g2)}, []bool{true})
	require.NoError(t, err)
	require.Equal(t, 4, out.Len())

	assert.True(t, out.Gates()[0].Equal(H(0)))
	assert.True(t, out.Gates()[1].Equal(g1))
	assert.True(t, out.Gates()[2].Equal(g2))
	assert.True(t, out.Gates()[3].Equal(Y(2)))
	assert.True(t, out.Verify())
}

func TestReplaceGatesInsertOnly(t *testing.T) {
	c := NewCircuit(H(0), X(1), Y(2))

	out, err := c.ReplaceGates([]int{1}, []Operand{GateOp(Z(3))}, []bool{false})
	require.NoError(t, err)
	require.Equal(t, 4, out.Len())

	assert.True(t, out.Gates()[1].Equal(Z(3)))
	assert.True(t, out.Gates()[2].Equal(X(1)))
}

func TestReplaceGatesMultipleEditsCompose(t *testing.T) {
	c := NewCircuit(H(0), X(1), Y(2), Z(3))

	// Positions refer to the original sequence even when earlier edits grow
	// the gate list.
	out, err := c.ReplaceGates(
		[]int{0, 2},
		[]Operand{GatesOp(S(0), T(0)), GateOp(SX(2))},
		[]bool{true, true},
	)
	require.NoError(t, err)
	require.Equal(t, 5, out.Len())

	assert.True(t, out.Gates()[0].Equal(S(0)))
	assert.True(t, out.Gates()[1].Equal(T(0)))
	assert.True(t, out.Gates()[2].Equal(X(1)))
	assert.True(t, out.Gates()[3].Equal(SX(2)))
	assert.True(t, out.Gates()[4].Equal(Z(3)))
}

func TestReplaceGatesDefaultsToReplace(t *testing.T) {
	c := NewCircuit(H(0), X(1))
	out, err := c.ReplaceGates([]int{0}, []Operand{GateOp(Y(0))}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.True(t, out.Gates()[0].Equal(Y(0)))
}

func TestReplaceGatesLengthMismatch(t *testing.T) {
	c := NewCircuit(H(0), X(1))

	_, err := c.ReplaceGates([]int{0, 1}, []Operand{GateOp(Y(0))}, nil)
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = c.ReplaceGates([]int{0}, []Operand{GateOp(Y(0))}, []bool{true, false})
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestReplaceGatesPositionOutOfRange(t *testing.T) {
	c := NewCircuit(H(0))
	_, err := c.ReplaceGates([]int{3}, []Operand{GateOp(Y(0))}, nil)
	require.ErrorIs(t, err, ErrPosition)
}

func TestReplaceGatesKeepsQubitBound(t *testing.T) {
	c := NewCircuit(H(0), X(1))
	require.NoError(t, c.SetNQubits(8))

	out, err := c.ReplaceGates([]int{0}, []Operand{GateOp(Y(0))}, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, out.NQubits())
}

func TestInsertGates(t *testing.T) {
	c := NewCircuit(H(0), Y(2))

	out, err := c.InsertGates([]int{1}, []Operand{GatesOp(X(1), Z(1))})
	require.NoError(t, err)
	require.Equal(t, 4, out.Len())

	assert.True(t, out.Gates()[0].Equal(H(0)))
	assert.True(t, out.Gates()[1].Equal(X(1)))
	assert.True(t, out.Gates()[2].Equal(Z(1)))
	assert.True(t, out.Gates()[3].Equal(Y(2)))
	assert.True(t, out.Verify())
}

func TestSetNQubits(t *testing.T) {
	c := NewCircuit(H(0), CX(0, 2))

	err := c.SetNQubits(1)
	require.ErrorIs(t, err, ErrQubitBound)
	assert.Equal(t, 3, c.NQubits(), "failed set must not change the bound")

	require.NoError(t, c.SetNQubits(3))
	assert.Equal(t, 3, c.NQubits())

	require.NoError(t, c.SetNQubits(6))
	assert.Equal(t, 6, c.NQubits())
}

func TestQubitsAndMaxQubit(t *testing.T) {
	c := NewCircuit(CX(4, 1), H(2))
	assert.Equal(t, []int{1, 2, 4}, c.Qubits())
	assert.Equal(t, 4, c.MaxQubit())
	assert.Equal(t, 5, c.NQubits())
}

func TestExtractVariables(t *testing.T) {
	c := NewCircuit(
		Rx(Sym("b"), 0),
		Ry(Sym("a"), 1),
		Rz(Sym("b"), 2),
		Rx(Fixed(0.1), 3),
	)
	assert.Equal(t, []Variable{"a", "b"}, c.ExtractVariables())
}

func TestParametrizationPredicates(t *testing.T) {
	free := NewCircuit(Rx(Sym("a"), 0), Ry(Sym("b"), 1))
	assert.True(t, free.IsFullyParametrized())
	assert.False(t, free.IsFullyUnparametrized())
	assert.False(t, free.IsMixed())

	// Fixed-angle rotations count as unparametrized for layering purposes.
	fixed := NewCircuit(H(0), Rx(Fixed(0.5), 1))
	assert.False(t, fixed.IsFullyParametrized())
	assert.True(t, fixed.IsFullyUnparametrized())
	assert.False(t, fixed.IsMixed())

	mixed := NewCircuit(H(0), Rx(Sym("a"), 1))
	assert.True(t, mixed.IsMixed())
}

func TestVerifyDetectsTampering(t *testing.T) {
	c := NewCircuit(Rx(Sym("a"), 0), H(1))
	require.True(t, c.Verify())

	// Corrupt the index: point the entry at the wrong position.
	c.paramMap[Variable("a")][0].Position = 1
	assert.False(t, c.Verify())
}

func TestEqualIgnoresOrderWithinMoment(t *testing.T) {
	a := NewCircuit(H(0), X(1))
	b := NewCircuit(X(1), H(0))

	assert.True(t, a.Equal(b))

	// equality must not reorder the operands
	assert.True(t, a.Gates()[0].Equal(H(0)))
	assert.True(t, b.Gates()[0].Equal(X(1)))
}

func TestEqualDistinguishesCircuits(t *testing.T) {
	a := NewCircuit(H(0), X(1))
	assert.False(t, a.Equal(NewCircuit(H(0))))
	assert.False(t, a.Equal(NewCircuit(H(0), Y(1))))
	assert.False(t, a.Equal(nil))
}

func TestSortGatesKeepsVerify(t *testing.T) {
	c := NewCircuit(Rx(Sym("a"), 1), H(0), Ry(Sym("a"), 0))
	c.SortGates()
	assert.True(t, c.Verify())
	// moment order: {H(0)? ...}
	assert.Equal(t, 3, c.Len())
}

func TestFromMomentsRebuildsCircuit(t *testing.T) {
	c := NewCircuit(H(0), CX(0, 1), Rx(Sym("a"), 0), X(1))
	rebuilt := FromMoments(c.Moments()...)
	assert.True(t, rebuilt.Equal(c))
	assert.True(t, rebuilt.Verify())
}

func TestIsPrimitive(t *testing.T) {
	assert.True(t, NewCircuit(H(0)).IsPrimitive())
	assert.False(t, NewCircuit().IsPrimitive())
	assert.False(t, NewCircuit(H(0), X(1)).IsPrimitive())
}

func TestCopyIsIndependent(t *testing.T) {
	c := NewCircuit(Rx(Sym("a"), 0))
	require.NoError(t, c.SetNQubits(4))

	cp := c.Copy()
	assert.True(t, cp.Equal(c))
	assert.Equal(t, 4, cp.NQubits())

	cp.Add(H(1))
	assert.Equal(t, 1, c.Len())
}
