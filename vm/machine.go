// Package vm implements the SBrain virtual machine: a tape-and-register
// Turing machine hardened for genetic programming. Any byte sequence is a
// runnable program; the machine never panics, never reads outside its
// tapes, and can always be cut off by a cycle budget.
package vm

import "errors"

const (
	// TapeSize is the length of both the instruction tape and the data
	// tape. Pointers are 16-bit, so index wraparound is a plain uint16
	// overflow.
	TapeSize = 1 << 16

	// stackReserve is the capacity guaranteed for the data and jump
	// stacks. Both grow past it without faulting.
	stackReserve = 256
)

// Construction errors. These are the only failures the machine can
// report; everything at runtime has a defined, non-faulting result.
var (
	ErrProgramTooLong = errors.New("sbrain: program exceeds instruction tape capacity")
	ErrDataTooLong    = errors.New("sbrain: data exceeds data tape capacity")
)

// flowAction is the directive an instruction returns to the run loop.
type flowAction int

const (
	flowContinue flowAction = iota // advance to the next instruction
	flowSkipLoop                   // skip forward past the matching loop close
	flowJump                       // instruction pointer already repositioned
	flowHalt                       // program finished
)

// Machine is a single SBrain VM instance. It exclusively owns all of its
// tapes, stacks, and registers; a host evaluating many genomes in
// parallel gives each one a fresh Machine and needs no synchronization.
type Machine struct {
	dataTape  []uint32 // TapeSize cells, wrapping 32-bit arithmetic
	execTape  []Opcode // TapeSize opcodes, read-only during execution
	dataStack *wordStack
	jumpStack *addrStack
	aux       uint32

	dataP uint16
	instP uint16

	input    []uint32
	inputPos int
	output   []uint32
}

// NewMachine returns a Machine with zeroed tapes and the given input
// sequence. Input is consumed front-to-back; reads past the end yield 0.
func NewMachine(input []uint32) *Machine {
	m := &Machine{
		dataTape:  make([]uint32, TapeSize),
		execTape:  make([]Opcode, TapeSize),
		dataStack: newWordStack(),
		jumpStack: newAddrStack(),
	}
	if len(input) > 0 {
		m.input = make([]uint32, len(input))
		copy(m.input, input)
	}
	return m
}

// LoadProgram copies a program onto the instruction tape, starting at
// address zero. The rest of the tape stays zero (the no-op opcode).
func (m *Machine) LoadProgram(program []Opcode) error {
	if len(program) > TapeSize {
		return ErrProgramTooLong
	}
	copy(m.execTape, program)
	return nil
}

// LoadData seeds a prefix of the data tape, starting at address zero.
func (m *Machine) LoadData(data []uint32) error {
	if len(data) > TapeSize {
		return ErrDataTooLong
	}
	copy(m.dataTape, data)
	return nil
}

// Output returns a snapshot of the output sequence produced so far. The
// snapshot stays valid while the machine keeps running.
func (m *Machine) Output() []uint32 {
	out := make([]uint32, len(m.output))
	copy(out, m.output)
	return out
}

// ExitCode returns the aux register, which holds the exit code once the
// machine has halted.
func (m *Machine) ExitCode() uint32 {
	return m.aux
}

// readInput consumes the next input value, or 0 once the sequence is
// exhausted.
func (m *Machine) readInput() uint32 {
	if m.inputPos >= len(m.input) {
		return 0
	}
	v := m.input[m.inputPos]
	m.inputPos++
	return v
}

// step executes the instruction at the instruction pointer and returns
// the resulting flow directive. Every data-tape access goes through the
// wrapped 16-bit data pointer, so no index can leave the tape.
func (m *Machine) step() flowAction {
	switch op := m.execTape[m.instP]; op {
	case OpPrev:
		m.dataP--
	case OpNext:
		m.dataP++
	case OpDec:
		m.dataTape[m.dataP]--
	case OpInc:
		m.dataTape[m.dataP]++

	case OpLoopOpen:
		// Push only when entering the body; a skipped loop leaves no
		// frame behind.
		if m.dataTape[m.dataP] == 0 {
			return flowSkipLoop
		}
		m.jumpStack.Push(m.instP)

	case OpLoopClose:
		open, ok := m.jumpStack.Pop()
		if !ok {
			// Unmatched close: no-op.
			break
		}
		if m.dataTape[m.dataP] != 0 {
			// Re-enter at the open so it re-evaluates the zero test
			// and re-pushes its frame.
			m.instP = open
			return flowJump
		}

	case OpWrite:
		m.output = append(m.output, m.dataTape[m.dataP])
	case OpRead:
		m.dataTape[m.dataP] = m.readInput()

	case OpPush:
		m.dataStack.Push(m.dataTape[m.dataP])
	case OpPop:
		m.dataTape[m.dataP] = m.dataStack.Pop()

	case OpGetAux:
		m.aux = m.dataTape[m.dataP]
	case OpPutAux:
		m.dataTape[m.dataP] = m.aux
	case OpZeroAux:
		m.aux = 0
	case OpNotAux:
		m.aux = ^m.aux
	case OpShl:
		m.aux <<= 1
	case OpShr:
		m.aux >>= 1

	case OpOr:
		m.dataTape[m.dataP] |= m.aux
	case OpAnd:
		m.dataTape[m.dataP] &= m.aux
	case OpXor:
		m.dataTape[m.dataP] ^= m.aux
	case OpNor:
		m.dataTape[m.dataP] = ^(m.dataTape[m.dataP] | m.aux)
	case OpNand:
		m.dataTape[m.dataP] = ^(m.dataTape[m.dataP] & m.aux)
	case OpAdd:
		m.dataTape[m.dataP] += m.aux
	case OpSub:
		m.dataTape[m.dataP] -= m.aux
	case OpDiv:
		if m.aux == 0 {
			m.dataTape[m.dataP] = 0
		} else {
			m.dataTape[m.dataP] /= m.aux
		}
	case OpMod:
		if m.aux == 0 {
			m.dataTape[m.dataP] = 0
		} else {
			m.dataTape[m.dataP] %= m.aux
		}
	case OpMul:
		m.dataTape[m.dataP] *= m.aux

	case OpHalt:
		return flowHalt

	default:
		// Unrecognized opcodes are no-ops.
	}
	return flowContinue
}

// skipLoopBody resolves a loop open whose test failed: scan forward with
// a nesting counter (starting at 1 for the open just seen) and resume one
// past the matching close. A linear scan for the next close would pair
// the open with an inner close in nested loops; the counter is mandatory.
//
// The scan is bounded by the end of the tape. If no matching close
// exists, the skip consumes the rest of the tape and execution resumes at
// address zero via pointer wrap.
func (m *Machine) skipLoopBody() {
	depth := 1
	for i := int(m.instP) + 1; i < TapeSize; i++ {
		switch m.execTape[i] {
		case OpLoopOpen:
			depth++
		case OpLoopClose:
			depth--
			if depth == 0 {
				m.instP = uint16(i) + 1
				return
			}
		}
	}
	m.instP = 0
}

// Run drives the machine until it halts or, when limit is nonzero, until
// limit instructions have executed. It returns the number of cycles
// executed and whether the machine halted on its own (false means the
// budget ran out first). The output accumulated so far is valid either
// way; a non-terminating genome still yields its partial results.
func (m *Machine) Run(limit uint64) (cycles uint64, halted bool) {
	for {
		switch m.step() {
		case flowHalt:
			return cycles, true
		case flowSkipLoop:
			m.skipLoopBody()
		case flowJump:
			// step already repositioned the instruction pointer.
		case flowContinue:
			m.instP++
		}

		cycles++
		if limit != 0 && cycles >= limit {
			return cycles, false
		}
	}
}
