package tequila

import "errors"

// Sentinel errors for the circuit layer. Callers branch with errors.Is;
// call sites attach context (gate, qubit, position) via %w wrapping.

// ErrQubitConflict indicates an operation would place two gates with
// overlapping qubits into the same moment.
var ErrQubitConflict = errors.New("tequila: qubit conflict in moment")

// ErrLengthMismatch indicates parallel-list arguments (positions, payloads,
// replace flags) disagree in length.
var ErrLengthMismatch = errors.New("tequila: argument lengths disagree")

// ErrQubitBound indicates an explicit qubit-count lower bound was set below
// the circuit's actual qubit usage.
var ErrQubitBound = errors.New("tequila: qubit bound below circuit usage")

// ErrOperandType indicates an algebraic operator received an operand outside
// its accepted set (not a gate, gate list, circuit, or moment).
var ErrOperandType = errors.New("tequila: invalid operand")

// ErrNoAdjoint indicates a gate has no adjoint definition (e.g. measurement).
var ErrNoAdjoint = errors.New("tequila: gate has no adjoint")

// ErrNotMoment indicates a circuit cannot be viewed as a single moment
// because its depth exceeds one.
var ErrNotMoment = errors.New("tequila: circuit is not a single moment")

// ErrUnboundVariable indicates a symbolic parameter was evaluated without a
// binding for its variable.
var ErrUnboundVariable = errors.New("tequila: unbound variable")

// ErrPosition indicates a gate position outside the circuit's gate sequence.
var ErrPosition = errors.New("tequila: gate position out of range")
