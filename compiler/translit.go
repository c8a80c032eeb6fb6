// Package compiler transliterates SBrain source text into the
// instruction and data tapes the VM consumes.
//
// Transliteration is total: unrecognized characters are dropped, comments
// are stripped, and no input can make it fail. The only structure in the
// format is the `#...#` comment and the `@` halt metacharacter, which
// doubles as the switch into the trailing data segment.
package compiler

import "github.com/NoraCodes/sbrain/vm"

// parserState tracks the transliterator's mode.
type parserState int

const (
	stateCode    parserState = iota // mapping characters to opcodes
	stateComment                    // inside #...#, discarding everything
	stateArmed                      // a halt was seen; another @ switches to data
	stateData                       // remainder of the source is data
)

// charToOpcode is the fixed one-to-one mapping from the 27 significant
// characters to opcodes.
var charToOpcode = map[rune]vm.Opcode{
	'<': vm.OpPrev,
	'>': vm.OpNext,
	'-': vm.OpDec,
	'+': vm.OpInc,
	'[': vm.OpLoopOpen,
	']': vm.OpLoopClose,
	'.': vm.OpWrite,
	',': vm.OpRead,
	'{': vm.OpPush,
	'}': vm.OpPop,
	'(': vm.OpGetAux,
	')': vm.OpPutAux,
	'z': vm.OpZeroAux,
	'!': vm.OpNotAux,
	's': vm.OpShl,
	'S': vm.OpShr,
	'|': vm.OpOr,
	'&': vm.OpAnd,
	'*': vm.OpXor,
	'^': vm.OpNor,
	'$': vm.OpNand,
	'a': vm.OpAdd,
	'd': vm.OpSub,
	'q': vm.OpDiv,
	'm': vm.OpMod,
	'p': vm.OpMul,
	'@': vm.OpHalt,
}

// Transliterate converts source text into a program and an initial data
// sequence.
//
// A `@` in code mode emits the halt opcode and arms the data sentinel.
// While the sentinel is armed, every later character still maps through
// the opcode table, so the second `@` need not be adjacent to the first:
// any later `@` switches permanently to data mode, where each character's
// codepoint is appended to the data sequence. The sentinel is only
// disarmed by the end of the source. One consequence: `#` does not open a
// comment while the sentinel is armed; it is just an unmapped character.
func Transliterate(source string) (program []vm.Opcode, data []uint32) {
	state := stateCode

	for _, ch := range source {
		switch state {
		case stateCode:
			if ch == '#' {
				state = stateComment
				continue
			}
			if ch == '@' {
				state = stateArmed
			}
			if op, ok := charToOpcode[ch]; ok {
				program = append(program, op)
			}

		case stateComment:
			if ch == '#' {
				state = stateCode
			}

		case stateArmed:
			if ch == '@' {
				// The sentinel fires: the @ emits nothing, and all
				// further characters are data.
				state = stateData
				continue
			}
			if op, ok := charToOpcode[ch]; ok {
				program = append(program, op)
			}

		case stateData:
			data = append(data, uint32(ch))
		}
	}

	return program, data
}
