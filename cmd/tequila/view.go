package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tymcr/tequila"
)

// View renders the UI: circuit diagram on the left, QASM editor and a
// context-dependent side panel (info, gate picker, or selection prompt) on
// the right, controls bar at the bottom.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideWidth := m.width / 3
	circuitWidth := m.width - sideWidth - 4
	controlsHeight := 4
	mainHeight := max(m.height-controlsHeight-2, 8)

	circuitPanel := m.renderCircuitPanel(circuitWidth, mainHeight)

	var side string
	switch m.focus {
	case focusMenu:
		side = m.renderMenu()
	case focusInputParam:
		side = m.renderParamInput()
	default:
		side = m.renderInfoPanel()
	}
	qasmH := mainHeight / 2
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		m.renderQASMPanel(sideWidth, qasmH),
		lipgloss.NewStyle().Width(sideWidth).Height(mainHeight-qasmH).Render(side),
	)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, rightCol)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, m.renderControlsPanel(m.width-4, controlsHeight-2))
}

// renderCircuitPanel renders the circuit diagram with a cursor marker and a
// status line.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	title := "Quantum Circuit"
	diagram := tequila.RenderCircuit(m.circuit)
	if m.showCanonical {
		title += " (canonical layering)"
		diagram = tequila.RenderMoments(m.circuit.CanonicalMoments(), m.circuit.NQubits())
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	for i, line := range strings.Split(strings.TrimRight(diagram, "\n"), "\n") {
		// the mid row of the cursor qubit is line 2+3*q (one header line,
		// three rows per qubit)
		marker := "  "
		if i == 2+3*m.cursorQubit {
			switch m.focus {
			case focusSelectTarget, focusSelectControl:
				marker = cursorBoxStyle.Render("▸") + " "
			case focusCircuit, focusMenu, focusInputParam:
				marker = cursorBoxStyle.Render("▶") + " "
			}
		}
		if i == 2+3*m.targetQubit && (m.focus == focusSelectTarget || m.focus == focusSelectControl) {
			marker = targetSelectStyle.Render("▶") + " "
		}
		sb.WriteString(marker + line + "\n")
	}

	switch m.focus {
	case focusSelectTarget:
		fmt.Fprintf(&sb, "\n  %s  Select target qubit: %s",
			activeGateStyle.Render(m.pending.name),
			targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  ⏎ Confirm  Esc ✕"))
	case focusSelectControl:
		fmt.Fprintf(&sb, "\n  %s  Select second control: %s",
			activeGateStyle.Render(m.pending.name),
			targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  ⏎ Confirm  Esc ✕"))
	default:
		fmt.Fprintf(&sb, "\n  Qubit %d", m.cursorQubit)
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderInfoPanel summarizes the circuit's scheduling and parameter structure.
func (m Model) renderInfoPanel() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Circuit Info"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Gates:           %d\n", m.circuit.Len())
	fmt.Fprintf(&sb, "Qubits:          %d\n", m.circuit.NQubits())
	fmt.Fprintf(&sb, "Depth:           %d\n", m.circuit.Depth())
	fmt.Fprintf(&sb, "Canonical depth: %d\n", m.circuit.CanonicalDepth())

	vars := m.circuit.ExtractVariables()
	if len(vars) > 0 {
		sb.WriteString("\n")
		sb.WriteString(titleStyle.Render("Variables"))
		sb.WriteString("\n")
		pm := m.circuit.ParameterMap()
		for _, v := range vars {
			positions := make([]string, 0, len(pm[v]))
			for _, e := range pm[v] {
				positions = append(positions, fmt.Sprintf("%d", e.Position))
			}
			fmt.Fprintf(&sb, "%s%s\n",
				gateStyle.Render(fmt.Sprintf("%-8s", v)),
				dimStyle.Render("gates "+strings.Join(positions, ", ")))
		}
	}

	return infoStyle.Render(sb.String())
}

// renderParamInput renders the parameter prompt.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter Parameter"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s: %s_", m.pending.name, m.paramInput)
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Numbers, pi expressions or variable\nnames: pi/2, 3*pi/4, theta, 2*a"))
	return menuBorderStyle.Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Move qubit  +/- Qubits    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add gate  ")
	sb.WriteString(activeGateStyle.Render("d"))
	sb.WriteString(" Delete  ")
	sb.WriteString(activeGateStyle.Render("c"))
	sb.WriteString(" Canonical view\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Switch focus  ^D Adjoint  ^R Reset  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}
