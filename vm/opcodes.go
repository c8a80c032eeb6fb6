package vm

// Opcode is a single instruction on the instruction tape.
// The transliterator emits values in [0, 31]; the dispatcher recognizes
// 27 of them (0-25 and 31) and treats everything else as a no-op.
type Opcode byte

const (
	// ========================================================================
	// Pointer and cell movement (0-3)
	// ========================================================================

	OpPrev Opcode = 0 // < Decrement the data pointer (wraps)
	OpNext Opcode = 1 // > Increment the data pointer (wraps)
	OpDec  Opcode = 2 // - Decrement the current cell (wraps)
	OpInc  Opcode = 3 // + Increment the current cell (wraps)

	// ========================================================================
	// Loops (4-5)
	// ========================================================================

	OpLoopOpen  Opcode = 4 // [ Enter loop body if cell nonzero, else skip past the matching close
	OpLoopClose Opcode = 5 // ] Jump back to the matching open if cell nonzero

	// ========================================================================
	// I/O (6-7)
	// ========================================================================

	OpWrite Opcode = 6 // . Append the current cell to the output sequence
	OpRead  Opcode = 7 // , Read the next input value into the current cell (0 when exhausted)

	// ========================================================================
	// Data stack (8-9)
	// ========================================================================

	OpPush Opcode = 8 // { Push the current cell onto the data stack
	OpPop  Opcode = 9 // } Pop the data stack into the current cell (0 when empty)

	// ========================================================================
	// Aux register (10-15)
	// ========================================================================

	OpGetAux  Opcode = 10 // ( aux <- cell
	OpPutAux  Opcode = 11 // ) cell <- aux
	OpZeroAux Opcode = 12 // z aux <- 0
	OpNotAux  Opcode = 13 // ! aux <- bitwise NOT aux
	OpShl     Opcode = 14 // s aux <- aux << 1 (zero shifted in)
	OpShr     Opcode = 15 // S aux <- aux >> 1 (zero shifted in)

	// ========================================================================
	// Binary ALU: cell <- cell OP aux (16-25)
	// ========================================================================

	OpOr   Opcode = 16 // | bitwise OR
	OpAnd  Opcode = 17 // & bitwise AND
	OpXor  Opcode = 18 // * bitwise XOR
	OpNor  Opcode = 19 // ^ bitwise NOR
	OpNand Opcode = 20 // $ bitwise NAND
	OpAdd  Opcode = 21 // a sum (wraps)
	OpSub  Opcode = 22 // d difference (wraps)
	OpDiv  Opcode = 23 // q quotient (0 when aux is 0)
	OpMod  Opcode = 24 // m remainder (0 when aux is 0)
	OpMul  Opcode = 25 // p product (wraps)

	// ========================================================================
	// Halt (31)
	// ========================================================================

	OpHalt Opcode = 31 // @ Stop; the aux register is the exit code
)

// OpcodeInfo provides metadata about each recognized opcode for
// disassembly and tooling.
type OpcodeInfo struct {
	Name string // Mnemonic
	Char byte   // Source character the transliterator maps to this opcode
}

// opcodeInfoTable maps recognized opcodes to their metadata.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpPrev:      {"PREV", '<'},
	OpNext:      {"NEXT", '>'},
	OpDec:       {"DEC", '-'},
	OpInc:       {"INC", '+'},
	OpLoopOpen:  {"LOOP_OPEN", '['},
	OpLoopClose: {"LOOP_CLOSE", ']'},
	OpWrite:     {"WRITE", '.'},
	OpRead:      {"READ", ','},
	OpPush:      {"PUSH", '{'},
	OpPop:       {"POP", '}'},
	OpGetAux:    {"GET_AUX", '('},
	OpPutAux:    {"PUT_AUX", ')'},
	OpZeroAux:   {"ZERO_AUX", 'z'},
	OpNotAux:    {"NOT_AUX", '!'},
	OpShl:       {"SHL", 's'},
	OpShr:       {"SHR", 'S'},
	OpOr:        {"OR", '|'},
	OpAnd:       {"AND", '&'},
	OpXor:       {"XOR", '*'},
	OpNor:       {"NOR", '^'},
	OpNand:      {"NAND", '$'},
	OpAdd:       {"ADD", 'a'},
	OpSub:       {"SUB", 'd'},
	OpDiv:       {"DIV", 'q'},
	OpMod:       {"MOD", 'm'},
	OpMul:       {"MUL", 'p'},
	OpHalt:      {"HALT", '@'},
}

// GetOpcodeInfo returns metadata for an opcode. Unrecognized opcodes
// report as NOP with no source character.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: "NOP"}
}

// Recognized reports whether the dispatcher assigns op a meaning beyond
// the universal no-op.
func Recognized(op Opcode) bool {
	_, ok := opcodeInfoTable[op]
	return ok
}
