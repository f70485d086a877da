package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tymcr/tequila"
)

// exampleAnsatz is the demo circuit shown on startup when no QASM file is
// given: a small hardware-efficient ansatz with free angles.
func exampleAnsatz() *tequila.Circuit {
	c := tequila.NewCircuit(
		tequila.Ry(tequila.Sym("a"), 0),
		tequila.Ry(tequila.Sym("b"), 1),
		tequila.CX(0, 1),
		tequila.Ry(tequila.Sym("c"), 0),
		tequila.Ry(tequila.Sym("d"), 1),
		tequila.CX(1, 2),
		tequila.Measure(2),
	)
	return c
}

func main() {
	circ := exampleAnsatz()
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		circ, err = tequila.ParseQASM(string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse %s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(initialModel(circ), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
