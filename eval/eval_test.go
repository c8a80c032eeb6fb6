package eval

import (
	"errors"
	"strings"
	"testing"

	"github.com/NoraCodes/sbrain/vm"
)

func TestEvaluateHelloWorld(t *testing.T) {
	result, err := Evaluate("[.>]@@Hello, World!", 0)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !result.Halted {
		t.Fatal("program did not halt")
	}
	if got := OutputString(result.Output); got != "Hello, World!" {
		t.Fatalf("output = %q, want %q", got, "Hello, World!")
	}
}

func TestEvaluateCycleLimit(t *testing.T) {
	result, err := Evaluate("[.>]@@Hello", 3)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if result.Halted {
		t.Fatal("program reported voluntary halt under a 3-cycle budget")
	}
	if result.Cycles != 3 {
		t.Fatalf("cycles = %d, want 3", result.Cycles)
	}
	full := "Hello"
	if got := OutputString(result.Output); len(got) >= len(full) || !strings.HasPrefix(full, got) {
		t.Fatalf("output %q is not a strict prefix of %q", got, full)
	}
}

func TestEvaluateWithInput(t *testing.T) {
	result, err := EvaluateWithInput(",[.-]@", []uint32{5}, 0)
	if err != nil {
		t.Fatalf("EvaluateWithInput: %v", err)
	}
	if !result.Halted {
		t.Fatal("program did not halt")
	}
	want := []uint32{5, 4, 3, 2, 1}
	if len(result.Output) != len(want) {
		t.Fatalf("output = %v, want %v", result.Output, want)
	}
	for i := range want {
		if result.Output[i] != want[i] {
			t.Fatalf("output = %v, want %v", result.Output, want)
		}
	}
}

func TestEvaluateExitCode(t *testing.T) {
	result, err := Evaluate("+++(@", 0)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !result.Halted {
		t.Fatal("program did not halt")
	}
	if result.ExitCode != 3 {
		t.Fatalf("exit code = %d, want 3", result.ExitCode)
	}
}

func TestEvaluateOversizedProgram(t *testing.T) {
	_, err := Evaluate(strings.Repeat("+", vm.TapeSize+1), 10)
	if !errors.Is(err, vm.ErrProgramTooLong) {
		t.Fatalf("error = %v, want ErrProgramTooLong", err)
	}
}

func TestOutputString(t *testing.T) {
	if got := OutputString([]uint32{72, 105}); got != "Hi" {
		t.Fatalf("OutputString = %q, want %q", got, "Hi")
	}
	if got := OutputString(nil); got != "" {
		t.Fatalf("OutputString(nil) = %q, want empty", got)
	}
}
