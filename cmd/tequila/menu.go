package main

import (
	"fmt"
	"strings"
)

// menuEntry is a single gate choice in the picker. The cursor qubit acts as
// the (first) control for gates that need a target.
type menuEntry struct {
	name        string
	gateType    string
	symbol      string
	needsTarget bool
	needsParam  bool
	paramHint   string
}

// menuCategory groups related entries under a tab.
type menuCategory struct {
	name  string
	items []menuEntry
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuEntry{
			{name: "Hadamard", gateType: "H", symbol: "H"},
			{name: "Pauli-X (NOT)", gateType: "X", symbol: "X"},
			{name: "Pauli-Y", gateType: "Y", symbol: "Y"},
			{name: "Pauli-Z", gateType: "Z", symbol: "Z"},
			{name: "Identity", gateType: "I", symbol: "I"},
			{name: "Phase (S)", gateType: "S", symbol: "S"},
			{name: "Phase Dagger (S†)", gateType: "SDG", symbol: "S†"},
			{name: "T Gate", gateType: "T", symbol: "T"},
			{name: "T Dagger (T†)", gateType: "TDG", symbol: "T†"},
			{name: "√X (SX)", gateType: "SX", symbol: "√X"},
			{name: "√X Dagger", gateType: "SXDG", symbol: "√X†"},
			{name: "√Y (SY)", gateType: "SY", symbol: "√Y"},
			{name: "√Y Dagger", gateType: "SYDG", symbol: "√Y†"},
		},
	},
	{
		name: "Rotation",
		items: []menuEntry{
			{name: "Rotate X", gateType: "RX", symbol: "RX", needsParam: true, paramHint: "pi/2 or theta"},
			{name: "Rotate Y", gateType: "RY", symbol: "RY", needsParam: true, paramHint: "pi/2 or theta"},
			{name: "Rotate Z", gateType: "RZ", symbol: "RZ", needsParam: true, paramHint: "pi/2 or theta"},
			{name: "Phase Shift", gateType: "P", symbol: "P", needsParam: true, paramHint: "pi/4 or lambda"},
		},
	},
	{
		name: "Multi Qubit",
		items: []menuEntry{
			{name: "CNOT", gateType: "CX", symbol: "●─⊕", needsTarget: true},
			{name: "Controlled-Z", gateType: "CZ", symbol: "●─●", needsTarget: true},
			{name: "Controlled-H", gateType: "CH", symbol: "●─H", needsTarget: true},
			{name: "SWAP", gateType: "SWAP", symbol: "×─×", needsTarget: true},
			{name: "Toffoli (CCX)", gateType: "CCX", symbol: "●─●─⊕", needsTarget: true},
			{name: "C-Rotate X", gateType: "CRX", symbol: "●─RX", needsTarget: true, needsParam: true, paramHint: "pi/2 or theta"},
			{name: "C-Rotate Y", gateType: "CRY", symbol: "●─RY", needsTarget: true, needsParam: true, paramHint: "pi/2 or theta"},
			{name: "C-Rotate Z", gateType: "CRZ", symbol: "●─RZ", needsTarget: true, needsParam: true, paramHint: "pi/2 or theta"},
			{name: "C-Phase (CU1)", gateType: "CU1", symbol: "●─U1", needsTarget: true, needsParam: true, paramHint: "lambda"},
		},
	},
	{
		name: "Measurement",
		items: []menuEntry{
			{name: "Measure", gateType: "MEASURE", symbol: "M"},
		},
	},
}

// renderMenu renders the gate picker.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParam {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
