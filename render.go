package tequila

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	total := width - n
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// boxName returns the display name shown inside a gate box.
func boxName(g Gate) string {
	qg, ok := g.(QGate)
	if !ok {
		if g.IsParametrized() {
			return fmt.Sprintf("%s(%s)", g.Name(), g.Parameter())
		}
		return g.Name()
	}
	if qg.name == "MEASURE" {
		return "M"
	}
	name := qg.name
	if qg.adjoint {
		name += "†"
	}
	if qg.param != nil {
		name = fmt.Sprintf("%s(%s)", name, qg.param)
	}
	return name
}

// controlSymbol returns the wire symbol for a control qubit.
func controlSymbol(Gate) string { return "●" }

// targetSymbol returns the wire symbol for the target qubit of a multi-qubit
// gate.
func targetSymbol(g Gate) string {
	switch g.Name() {
	case "CZ":
		return "●"
	case "SWAP":
		return "×"
	default:
		return "⊕"
	}
}

// symbolFor reports whether the gate renders as a wire symbol rather than a
// boxed name on the given qubit, and returns the symbol.
func symbolFor(g Gate, qubit int) (string, bool) {
	qg, ok := g.(QGate)
	if !ok {
		return "", false
	}
	if qg.name == "SWAP" {
		return "×", true
	}
	if len(qg.controls) == 0 {
		return "", false
	}
	for _, q := range qg.controls {
		if q == qubit {
			return controlSymbol(g), true
		}
	}
	// CRX/CRY/CRZ targets keep their box so the angle stays visible
	switch qg.name {
	case "CX", "CZ", "CH":
		return targetSymbol(g), true
	}
	return "", false
}

// gateAt returns the moment's gate touching the qubit, or nil. Disjointness
// makes the answer unique.
func gateAt(m *Moment, qubit int) Gate {
	for _, g := range m.Gates() {
		for _, q := range g.Qubits() {
			if q == qubit {
				return g
			}
		}
	}
	return nil
}

// spanFlags reports vertical-connector state at (moment, qubit): a connector
// entering from above, leaving below, and whether a multi-qubit gate's span
// passes through an otherwise empty wire.
func spanFlags(m *Moment, qubit int) (above, below, through bool) {
	occupied := gateAt(m, qubit) != nil
	for _, g := range m.Gates() {
		qs := g.Qubits()
		if len(qs) < 2 {
			continue
		}
		minQ, maxQ := qs[0], qs[0]
		for _, q := range qs[1:] {
			minQ = min(minQ, q)
			maxQ = max(maxQ, q)
		}
		if qubit < minQ || qubit > maxQ {
			continue
		}
		if qubit > minQ {
			above = true
		}
		if qubit < maxQ {
			below = true
		}
		if qubit > minQ && qubit < maxQ && !occupied {
			through = true
		}
	}
	return above, below, through
}

// momentWidth returns the cell width needed to draw the moment's widest gate.
func momentWidth(m *Moment) int {
	w := 5
	for _, g := range m.Gates() {
		if _, sym := symbolFor(g, g.Qubits()[0]); sym && len(g.Qubits()) > 1 {
			continue
		}
		if bw := utf8.RuneCountInString(boxName(g)) + 4; bw > w {
			w = bw
		}
	}
	return w
}

// renderCell returns the 3 lines (top, mid, bot) for one qubit in one moment.
// Each line is exactly w visible characters wide.
func renderCell(m *Moment, qubit, w int) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", w)
	half := w / 2
	vertRow := strings.Repeat(" ", half) + "│" + strings.Repeat(" ", w-half-1)
	dashL := (w - 1) / 2
	dashR := w - dashL - 1

	g := gateAt(m, qubit)
	above, below, through := spanFlags(m, qubit)

	if g == nil {
		if through {
			return vertRow,
				strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR),
				vertRow
		}
		top, bot = emptyRow, emptyRow
		if above {
			top = vertRow
		}
		if below {
			bot = vertRow
		}
		return top, strings.Repeat("─", w), bot
	}

	if sym, ok := symbolFor(g, qubit); ok {
		top, bot = emptyRow, emptyRow
		if above {
			top = vertRow
		}
		if below {
			bot = vertRow
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)
		return top, mid, bot
	}

	// Boxed gate name
	name := boxName(g)
	nameW := utf8.RuneCountInString(name)
	boxW := nameW + 2
	margin := (w - boxW) / 2
	rightMargin := w - margin - boxW

	top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", nameW)+"┐") + strings.Repeat(" ", rightMargin)
	mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
	bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", nameW)+"┘") + strings.Repeat(" ", rightMargin)
	if above {
		top = vertRow
	}
	if below {
		bot = vertRow
	}
	return top, mid, bot
}

// RenderCircuit draws the circuit as a box diagram, one column per moment and
// three text rows per qubit, with control dots and vertical connectors for
// multi-qubit gates. Output order is deterministic (moment order, min-qubit
// sort inside each moment).
func RenderCircuit(c *Circuit) string {
	return RenderMoments(c.Moments(), max(c.NQubits(), 1))
}

// RenderMoments draws an explicit moment list, one column per moment. Use
// with CanonicalMoments to visualize the gradient layering.
func RenderMoments(moms []*Moment, numQubits int) string {
	numQubits = max(numQubits, 1)

	widths := make([]int, len(moms))
	for i, m := range moms {
		widths[i] = momentWidth(m)
	}

	var sb strings.Builder

	// Moment index header
	header := strings.Repeat(" ", labelVisualW)
	for i, w := range widths {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", i), w))
	}
	sb.WriteString(header + "\n")

	for qubit := 0; qubit < numQubits; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for i, m := range moms {
			top, mid, bot := renderCell(m, qubit, widths[i])
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	return sb.String()
}
