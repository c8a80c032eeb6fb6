// Package dist defines the wire format for exchanging genomes and
// evaluation records between evaluator hosts. Encoding is canonical-mode
// CBOR so that equal values always produce identical bytes, which makes
// the SHA-256 content hash of a genome stable across hosts.
package dist

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/NoraCodes/sbrain/vm"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("dist: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Genome is a candidate program together with its initial data segment.
type Genome struct {
	Name    string
	Program []vm.Opcode
	Data    []uint32
}

// EvalRecord is the outcome of evaluating one genome.
type EvalRecord struct {
	GenomeHash [32]byte
	Output     []uint32
	Cycles     uint64
	Halted     bool
	ExitCode   uint32
}

// MarshalGenome serializes a Genome to CBOR bytes.
func MarshalGenome(g *Genome) ([]byte, error) {
	return cborEncMode.Marshal(g)
}

// UnmarshalGenome deserializes a Genome from CBOR bytes.
func UnmarshalGenome(data []byte) (*Genome, error) {
	var g Genome
	if err := cbor.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("dist: unmarshal genome: %w", err)
	}
	return &g, nil
}

// MarshalRecord serializes an EvalRecord to CBOR bytes.
func MarshalRecord(r *EvalRecord) ([]byte, error) {
	return cborEncMode.Marshal(r)
}

// UnmarshalRecord deserializes an EvalRecord from CBOR bytes.
func UnmarshalRecord(data []byte) (*EvalRecord, error) {
	var r EvalRecord
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("dist: unmarshal record: %w", err)
	}
	return &r, nil
}

// MarshalCells serializes a cell sequence (an output or data segment) to
// CBOR bytes.
func MarshalCells(cells []uint32) ([]byte, error) {
	return cborEncMode.Marshal(cells)
}

// UnmarshalCells deserializes a cell sequence from CBOR bytes.
func UnmarshalCells(data []byte) ([]uint32, error) {
	var cells []uint32
	if err := cbor.Unmarshal(data, &cells); err != nil {
		return nil, fmt.Errorf("dist: unmarshal cells: %w", err)
	}
	return cells, nil
}

// HashGenome returns the SHA-256 of the genome's canonical encoding.
// The Name field is excluded: two genomes with the same tapes are the
// same genome.
func HashGenome(g *Genome) ([32]byte, error) {
	anon := Genome{Program: g.Program, Data: g.Data}
	enc, err := cborEncMode.Marshal(&anon)
	if err != nil {
		return [32]byte{}, fmt.Errorf("dist: hash genome: %w", err)
	}
	return sha256.Sum256(enc), nil
}
