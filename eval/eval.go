// Package eval wraps the transliterator and the VM into one-shot
// evaluation calls, and provides a batch evaluator for genome
// populations.
package eval

import (
	"strings"

	"github.com/NoraCodes/sbrain/compiler"
	"github.com/NoraCodes/sbrain/vm"
)

// Result is the outcome of evaluating one genome.
type Result struct {
	// Output is the sequence of cells the program wrote.
	Output []uint32
	// Cycles is the number of instructions executed.
	Cycles uint64
	// Halted is true if the program stopped on its own; false means the
	// cycle limit cut it off.
	Halted bool
	// ExitCode is the aux register at halt.
	ExitCode uint32
}

// Evaluate transliterates and runs source on a fresh VM with no input.
// A limit of 0 runs without a cycle budget and may never return; callers
// evaluating untrusted genomes should always pass a limit.
func Evaluate(source string, limit uint64) (*Result, error) {
	return EvaluateWithInput(source, nil, limit)
}

// EvaluateWithInput is Evaluate with an input sequence. The only possible
// errors are construction errors: a program or data segment longer than
// the VM's tapes.
func EvaluateWithInput(source string, input []uint32, limit uint64) (*Result, error) {
	program, data := compiler.Transliterate(source)

	m := vm.NewMachine(input)
	if err := m.LoadProgram(program); err != nil {
		return nil, err
	}
	if err := m.LoadData(data); err != nil {
		return nil, err
	}

	cycles, halted := m.Run(limit)
	return &Result{
		Output:   m.Output(),
		Cycles:   cycles,
		Halted:   halted,
		ExitCode: m.ExitCode(),
	}, nil
}

// OutputString renders output cells as text, one rune per cell. Cells
// that are not valid codepoints render as the Unicode replacement
// character.
func OutputString(cells []uint32) string {
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
