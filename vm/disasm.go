package vm

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of a program.
// Unrecognized opcodes print as NOP with their numeric value.
func Disassemble(program []Opcode) string {
	return DisassembleWithName(program, "")
}

// DisassembleWithName returns a listing with a name header.
func DisassembleWithName(program []Opcode, name string) string {
	var sb strings.Builder

	if name != "" {
		sb.WriteString(fmt.Sprintf("; === %s ===\n", name))
	}
	sb.WriteString(fmt.Sprintf("; %d instructions\n", len(program)))

	for addr, op := range program {
		info := GetOpcodeInfo(op)
		if info.Char != 0 {
			sb.WriteString(fmt.Sprintf("[%04x] %-12s %c\n", addr, info.Name, info.Char))
		} else {
			sb.WriteString(fmt.Sprintf("[%04x] %-12s (op %d)\n", addr, info.Name, op))
		}
	}

	return sb.String()
}
