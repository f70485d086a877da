package tequila

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCircuitLayout(t *testing.T) {
	c := NewCircuit(H(0), CX(0, 1), Rx(Sym("theta"), 0))

	out := RenderCircuit(c)

	// header plus three text rows per qubit, newline-terminated
	assert.Equal(t, 1+3*c.NQubits(), strings.Count(out, "\n"))

	assert.Contains(t, out, "q[0]")
	assert.Contains(t, out, "q[1]")
	assert.Contains(t, out, "H")
	assert.Contains(t, out, "RX(theta)")
	assert.Contains(t, out, "●", "control dot")
	assert.Contains(t, out, "⊕", "CX target")
}

func TestRenderCircuitSymbols(t *testing.T) {
	swp := RenderCircuit(NewCircuit(SWAP(0, 1)))
	assert.Equal(t, 2, strings.Count(swp, "×"))

	cz := RenderCircuit(NewCircuit(CZ(0, 1)))
	assert.Equal(t, 2, strings.Count(cz, "●"))

	adj := RenderCircuit(NewCircuit(Sdg(0)))
	assert.Contains(t, adj, "S†")

	meas := RenderCircuit(NewCircuit(Measure(0)))
	assert.Contains(t, meas, "┤M├")
}

func TestRenderCircuitControlledRotationKeepsBox(t *testing.T) {
	out := RenderCircuit(NewCircuit(Rz(Sym("a"), 1, 0)))
	assert.Contains(t, out, "CRZ(a)")
	assert.Contains(t, out, "●")
}

func TestRenderCircuitSpansInterveningWire(t *testing.T) {
	// CX(0, 2) passes through qubit 1's wire
	out := RenderCircuit(NewCircuit(CX(0, 2)))
	assert.Contains(t, out, "┼")
}

func TestRenderCircuitEmpty(t *testing.T) {
	out := RenderCircuit(NewCircuit())
	require.NotEmpty(t, out)
	assert.Contains(t, out, "q[0]")
}
