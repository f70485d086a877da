package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tymcr/tequila"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectTarget
	focusSelectControl
	focusInputParam
)

// Model holds the TUI state. The circuit is the single source of truth; the
// QASM editor and the info panel are views derived from it.
type Model struct {
	circuit *tequila.Circuit

	cursorQubit int
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string

	// showCanonical switches the diagram to the canonical (u,p) layering.
	showCanonical bool

	// Menu state
	menuCat  int
	menuItem int

	// Pending-gate state for parameterized and multi-qubit gates
	pending      menuEntry
	targetQubit  int
	extraControl int
	paramInput   string
}

func initialModel(circ *tequila.Circuit) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		circuit:    circ,
		qasmEditor: ta,
		focus:      focusCircuit,
	}
	m.syncQASM()
	return m
}

// syncQASM refreshes the editor from the circuit.
func (m *Model) syncQASM() {
	qasm := m.circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
}

// parseQASMInput rebuilds the circuit from the editor after an edit.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	c, err := tequila.ParseQASM(qasm)
	if err != nil {
		m.statusMsg = fmt.Sprintf("QASM error: %v", err)
		return
	}
	m.circuit = c
	m.lastQASM = qasm
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if n := m.circuit.NQubits(); m.cursorQubit >= n {
		m.cursorQubit = n - 1
	}
}

// buildPendingGate assembles the gate described by the pending menu entry and
// the selection state (cursor qubit as control, chosen target, parameter).
func (m *Model) buildPendingGate() (tequila.Gate, error) {
	var param tequila.Parameter
	if m.pending.needsParam {
		p, ok := tequila.ParseParameter(m.paramInput)
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q", m.paramInput)
		}
		param = p
	}

	q, tgt := m.cursorQubit, m.targetQubit
	switch m.pending.gateType {
	case "H":
		return tequila.H(q), nil
	case "X":
		return tequila.X(q), nil
	case "Y":
		return tequila.Y(q), nil
	case "Z":
		return tequila.Z(q), nil
	case "I":
		return tequila.I(q), nil
	case "S":
		return tequila.S(q), nil
	case "SDG":
		return tequila.Sdg(q), nil
	case "T":
		return tequila.T(q), nil
	case "TDG":
		return tequila.Tdg(q), nil
	case "SX":
		return tequila.SX(q), nil
	case "SXDG":
		return tequila.SXdg(q), nil
	case "SY":
		return tequila.SY(q), nil
	case "SYDG":
		return tequila.SYdg(q), nil
	case "RX":
		return tequila.Rx(param, q), nil
	case "RY":
		return tequila.Ry(param, q), nil
	case "RZ":
		return tequila.Rz(param, q), nil
	case "P":
		return tequila.Phase(param, q), nil
	case "CRX":
		return tequila.Rx(param, tgt, q), nil
	case "CRY":
		return tequila.Ry(param, tgt, q), nil
	case "CRZ":
		return tequila.Rz(param, tgt, q), nil
	case "CU1":
		return tequila.Phase(param, tgt, q), nil
	case "CX":
		return tequila.CX(q, tgt), nil
	case "CZ":
		return tequila.CZ(q, tgt), nil
	case "CH":
		return tequila.CH(q, tgt), nil
	case "SWAP":
		return tequila.SWAP(q, tgt), nil
	case "CCX":
		return tequila.CCX(q, m.extraControl, tgt), nil
	case "MEASURE":
		return tequila.Measure(q), nil
	}
	return nil, fmt.Errorf("unknown gate %q", m.pending.gateType)
}

// placeGate appends the pending gate to the circuit and clears the
// selection state.
func (m *Model) placeGate() bool {
	g, err := m.buildPendingGate()
	if err != nil {
		m.statusMsg = err.Error()
		m.resetPending()
		return false
	}
	m.circuit.Add(g)
	m.resetPending()
	m.syncQASM()
	return true
}

func (m *Model) resetPending() {
	m.pending = menuEntry{}
	m.paramInput = ""
	m.extraControl = -1
}

// deleteLastGateOn removes the most recent gate touching the given qubit.
func (m *Model) deleteLastGateOn(qubit int) {
	gates := m.circuit.Gates()
	for i := len(gates) - 1; i >= 0; i-- {
		for _, q := range gates[i].Qubits() {
			if q != qubit {
				continue
			}
			out, err := m.circuit.ReplaceGates([]int{i}, []tequila.Operand{tequila.GatesOp()}, nil)
			if err != nil {
				m.statusMsg = err.Error()
				return
			}
			m.circuit = out
			m.syncQASM()
			return
		}
	}
	m.statusMsg = fmt.Sprintf("No gate on q[%d]", qubit)
}

// nextFreeQubit finds the first qubit usable as a target, skipping the cursor
// qubit and any already-chosen extra control.
func (m *Model) nextFreeQubit() int {
	for q := 0; q < m.circuit.NQubits(); q++ {
		if q != m.cursorQubit && q != m.extraControl {
			return q
		}
	}
	return m.cursorQubit
}

// moveSelection walks the target selection up (dir -1) or down (dir +1),
// skipping occupied roles.
func (m *Model) moveSelection(dir int) {
	for next := m.targetQubit + dir; next >= 0 && next < m.circuit.NQubits(); next += dir {
		if next != m.cursorQubit && next != m.extraControl {
			m.targetQubit = next
			return
		}
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		m.qasmEditor.SetHeight(max(msg.Height/2-6, 4))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.circuit = tequila.NewCircuit()
				m.cursorQubit = 0
				m.syncQASM()
			case "ctrl+s":
				if err := os.WriteFile("circuit.qasm", []byte(m.circuit.ToQASM()), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			case "ctrl+d":
				adj, err := m.circuit.Dagger()
				if err != nil {
					m.statusMsg = fmt.Sprintf("No adjoint: %v", err)
				} else {
					m.circuit = adj
					m.syncQASM()
				}
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.circuit.NQubits()-1 {
					m.cursorQubit++
				}
			case "+", "=":
				if err := m.circuit.SetNQubits(m.circuit.NQubits() + 1); err != nil {
					m.statusMsg = err.Error()
				} else {
					m.syncQASM()
				}
			case "-":
				if err := m.circuit.SetNQubits(m.circuit.NQubits() - 1); err != nil {
					m.statusMsg = "Cannot shrink: top qubit is in use"
				} else {
					m.clampCursor()
					m.syncQASM()
				}
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "c":
				m.showCanonical = !m.showCanonical
			case "backspace", "delete", "d":
				m.deleteLastGateOn(m.cursorQubit)
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				m.pending = gateMenu[m.menuCat].items[m.menuItem]
				m.extraControl = -1

				if m.pending.needsTarget && m.circuit.NQubits() < 2 {
					m.statusMsg = "Need at least 2 qubits"
					m.resetPending()
					m.focus = focusCircuit
					break
				}
				if m.pending.gateType == "CCX" && m.circuit.NQubits() < 3 {
					m.statusMsg = "Toffoli needs at least 3 qubits"
					m.resetPending()
					m.focus = focusCircuit
					break
				}

				switch {
				case m.pending.needsParam:
					m.paramInput = ""
					m.focus = focusInputParam
				case m.pending.gateType == "CCX":
					m.targetQubit = m.nextFreeQubit()
					m.focus = focusSelectControl
				case m.pending.needsTarget:
					m.targetQubit = m.nextFreeQubit()
					m.focus = focusSelectTarget
				default:
					m.placeGate()
					m.focus = focusCircuit
				}
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.resetPending()
				m.focus = focusCircuit
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				if _, ok := tequila.ParseParameter(m.paramInput); !ok {
					m.statusMsg = "Invalid parameter — numbers, pi expressions or variable names (pi/2, theta, 2*a)"
					break
				}
				switch {
				case m.pending.gateType == "CCX":
					m.targetQubit = m.nextFreeQubit()
					m.focus = focusSelectControl
				case m.pending.needsTarget:
					m.targetQubit = m.nextFreeQubit()
					m.focus = focusSelectTarget
				default:
					m.placeGate()
					m.focus = focusCircuit
				}
			default:
				if len(key) == 1 {
					m.paramInput += key
				}
			}

		case focusSelectControl:
			switch key {
			case "esc":
				m.resetPending()
				m.focus = focusCircuit
			case "up", "k":
				m.moveSelection(-1)
			case "down", "j":
				m.moveSelection(1)
			case "enter":
				m.extraControl = m.targetQubit
				m.targetQubit = m.nextFreeQubit()
				m.focus = focusSelectTarget
			}

		case focusSelectTarget:
			switch key {
			case "esc":
				m.resetPending()
				m.focus = focusCircuit
			case "up", "k":
				m.moveSelection(-1)
			case "down", "j":
				m.moveSelection(1)
			case "enter":
				m.placeGate()
				m.focus = focusCircuit
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
				m.parseQASMInput()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}
