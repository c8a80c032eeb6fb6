// SBrain CLI - transliterate and evaluate SBrain programs
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/NoraCodes/sbrain/compiler"
	"github.com/NoraCodes/sbrain/dist"
	"github.com/NoraCodes/sbrain/eval"
	"github.com/NoraCodes/sbrain/manifest"
	"github.com/NoraCodes/sbrain/store"
	"github.com/NoraCodes/sbrain/vm"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	limit := flag.Uint64("limit", 0, "Cycle limit (0 = run until halt; may never return)")
	inputFlag := flag.String("input", "", "Comma-separated input values")
	text := flag.Bool("text", false, "Render output cells as text instead of numbers")
	dump := flag.Bool("dump", false, "Disassemble the program instead of running it")
	dbPath := flag.String("db", "", "Record the evaluation in this SQLite database")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sbrain [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Evaluates an SBrain program from a file, stdin (-), or the sbrain.toml manifest.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sbrain hello.sb                  # Run hello.sb until it halts\n")
		fmt.Fprintf(os.Stderr, "  sbrain -limit 100000 genome.sb   # Budgeted run for untrusted genomes\n")
		fmt.Fprintf(os.Stderr, "  sbrain -text hello.sb            # Decode output cells as text\n")
		fmt.Fprintf(os.Stderr, "  sbrain -dump genome.sb           # Show the instruction listing\n")
		fmt.Fprintf(os.Stderr, "  echo '[.>]@@Hi' | sbrain -text - # Run from stdin\n")
		fmt.Fprintf(os.Stderr, "  sbrain                           # Run per sbrain.toml in this tree\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	name, source, m := resolveSource(flag.Args())

	// Manifest settings apply where no flag was given.
	if m != nil {
		if *limit == 0 {
			*limit = m.Run.CycleLimit
		}
		if *inputFlag == "" && len(m.Run.Input) > 0 {
			*inputFlag = joinInput(m.Run.Input)
		}
		if !*text {
			*text = m.Run.Text
		}
		if *dbPath == "" {
			*dbPath = m.DatabasePath()
		}
	}

	input, err := parseInput(*inputFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing input: %v\n", err)
		os.Exit(1)
	}

	if *dump {
		program, data := compiler.Transliterate(source)
		fmt.Print(vm.DisassembleWithName(program, name))
		if len(data) > 0 {
			fmt.Printf("; %d data cells\n", len(data))
		}
		return
	}

	result, err := eval.EvaluateWithInput(source, input, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *text {
		fmt.Println(eval.OutputString(result.Output))
	} else {
		fmt.Println(formatCells(result.Output))
	}

	if *verbose {
		fmt.Printf("cycles: %d\n", result.Cycles)
		fmt.Printf("halted: %v\n", result.Halted)
		if result.Halted {
			fmt.Printf("exit code: %d\n", result.ExitCode)
		}
	}

	if *dbPath != "" {
		if err := record(*dbPath, source, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording evaluation: %v\n", err)
			os.Exit(1)
		}
	}

	if !result.Halted && *limit != 0 {
		// Distinguish a cut-off run for scripts.
		os.Exit(2)
	}
}

// resolveSource finds the program text: an explicit file argument, stdin
// when the argument is "-", or the nearest sbrain.toml manifest.
func resolveSource(args []string) (name, source string, m *manifest.Manifest) {
	if len(args) > 0 {
		path := args[0]
		if path == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
				os.Exit(1)
			}
			return "stdin", string(data), nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		return path, string(data), nil
	}

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
		os.Exit(1)
	}
	if m == nil {
		flag.Usage()
		os.Exit(1)
	}
	data, err := os.ReadFile(m.SourcePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", m.SourcePath(), err)
		os.Exit(1)
	}
	return m.SourcePath(), string(data), m
}

// record hashes the genome and saves the evaluation record.
func record(dbPath, source string, result *eval.Result) error {
	program, data := compiler.Transliterate(source)
	hash, err := dist.HashGenome(&dist.Genome{Program: program, Data: data})
	if err != nil {
		return err
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.SaveRecord(&dist.EvalRecord{
		GenomeHash: hash,
		Output:     result.Output,
		Cycles:     result.Cycles,
		Halted:     result.Halted,
		ExitCode:   result.ExitCode,
	})
	return err
}

func parseInput(s string) ([]uint32, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	input := make([]uint32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad input value %q: %w", p, err)
		}
		input = append(input, uint32(v))
	}
	return input, nil
}

func joinInput(input []uint32) string {
	parts := make([]string, len(input))
	for i, v := range input {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, ",")
}

func formatCells(cells []uint32) string {
	return "[" + joinInput(cells) + "]"
}
