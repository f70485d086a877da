package tequila

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*(\w+)\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
)

// ToQASM renders the circuit as OPENQASM 2.0, one statement per gate in
// moment order. Symbolic rotation parameters are emitted as their variable
// expression text (an extension over strict QASM 2.0; ParseQASM reads them
// back).
func (c *Circuit) ToQASM() string {
	numQubits := max(c.NQubits(), 1)

	// creg must hold the highest measured bit index
	numCbits := 1
	for _, g := range c.gates {
		if g.Name() == "MEASURE" {
			numCbits = max(numCbits, g.MaxQubit()+1)
		}
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numCbits)

	for _, m := range c.Moments() {
		for _, g := range m.Gates() {
			sb.WriteString(g.String())
			sb.WriteString(";\n")
		}
	}

	return sb.String()
}

// singleGateByName maps parsed single-qubit mnemonics (dg suffix already
// stripped) to constructors.
func singleGateByName(name string, adjoint bool, target int) (QGate, bool) {
	switch name {
	case "H":
		return H(target), !adjoint
	case "X":
		return X(target), !adjoint
	case "Y":
		return Y(target), !adjoint
	case "Z":
		return Z(target), !adjoint
	case "I", "ID":
		return I(target), !adjoint
	case "S":
		if adjoint {
			return Sdg(target), true
		}
		return S(target), true
	case "T":
		if adjoint {
			return Tdg(target), true
		}
		return T(target), true
	case "SX":
		if adjoint {
			return SXdg(target), true
		}
		return SX(target), true
	case "SY":
		if adjoint {
			return SYdg(target), true
		}
		return SY(target), true
	}
	return QGate{}, false
}

// ParseQASM parses QASM text into a circuit. Statements outside the supported
// gate set (and headers, comments, creg declarations, barriers) are skipped,
// matching the tolerant line parser this replaces. The declared qreg size
// becomes the circuit's qubit-count lower bound when it exceeds actual usage.
func ParseQASM(src string) (*Circuit, error) {
	c := NewCircuit()
	declared := 0

	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") || strings.HasPrefix(line, "barrier") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if matches := qregRegex.FindStringSubmatch(line); len(matches) > 2 {
				declared, _ = strconv.Atoi(matches[2])
			}
			continue
		}

		// Measurement: "measure q[0] -> c[0];"
		if matches := measureRegex.FindStringSubmatch(line); matches != nil {
			source, _ := strconv.Atoi(matches[1])
			c.Add(Measure(source))
			continue
		}

		// Three-qubit gates (Toffoli/CCX)
		if matches := threeQubitRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			qubit1, _ := strconv.Atoi(matches[2])
			qubit2, _ := strconv.Atoi(matches[3])
			qubit3, _ := strconv.Atoi(matches[4])
			if gateType == "CCX" || gateType == "TOFFOLI" {
				c.Add(CCX(qubit1, qubit2, qubit3))
			}
			continue
		}

		// Two-qubit parameterized gates (CRX, CRY, CRZ, CU1/CP)
		if matches := twoQubitParamRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			param, ok := ParseParameter(matches[2])
			qubit1, _ := strconv.Atoi(matches[3])
			qubit2, _ := strconv.Atoi(matches[4])
			if !ok {
				continue
			}
			switch gateType {
			case "CRX":
				c.Add(Rx(param, qubit2, qubit1))
			case "CRY":
				c.Add(Ry(param, qubit2, qubit1))
			case "CRZ":
				c.Add(Rz(param, qubit2, qubit1))
			case "CU1", "CP":
				c.Add(Phase(param, qubit2, qubit1))
			}
			continue
		}

		// Two-qubit gates: cx, cz, ch, swap
		if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			qubit1, _ := strconv.Atoi(matches[2])
			qubit2, _ := strconv.Atoi(matches[3])
			switch gateType {
			case "CX", "CNOT":
				c.Add(CX(qubit1, qubit2))
			case "CZ":
				c.Add(CZ(qubit1, qubit2))
			case "CH":
				c.Add(CH(qubit1, qubit2))
			case "SWAP":
				c.Add(SWAP(qubit1, qubit2))
			}
			continue
		}

		// Single-qubit parameterized gates (RX, RY, RZ, P, U1)
		if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			param, ok := ParseParameter(matches[2])
			target, _ := strconv.Atoi(matches[3])
			if !ok {
				continue
			}
			switch gateType {
			case "RX":
				c.Add(Rx(param, target))
			case "RY":
				c.Add(Ry(param, target))
			case "RZ":
				c.Add(Rz(param, target))
			case "P", "U1":
				c.Add(Phase(param, target))
			}
			continue
		}

		// Single-qubit gates (including dagger variants)
		if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			target, _ := strconv.Atoi(matches[2])

			adjoint := false
			if strings.HasSuffix(gateType, "DG") {
				adjoint = true
				gateType = strings.TrimSuffix(gateType, "DG")
			}

			if g, ok := singleGateByName(gateType, adjoint, target); ok {
				c.Add(g)
			}
			continue
		}
	}

	if declared >= c.MaxQubit()+1 {
		if err := c.SetNQubits(declared); err != nil {
			return nil, err
		}
	}

	return c, nil
}
