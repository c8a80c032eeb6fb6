// Package store persists evaluation records to SQLite so a genetic
// programming host can compare candidate fitness across runs.
package store

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/NoraCodes/sbrain/dist"
)

// ErrRecordNotFound indicates the requested record doesn't exist.
var ErrRecordNotFound = errors.New("store: record not found")

// Record is one persisted evaluation.
type Record struct {
	ID         string
	GenomeHash string // hex-encoded SHA-256 of the genome
	Cycles     uint64
	Halted     bool
	ExitCode   uint32
	Output     []uint32
}

// Store is a SQLite-backed evaluation record store.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if necessary) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		genome_hash TEXT NOT NULL,
		cycles INTEGER NOT NULL,
		halted INTEGER NOT NULL,
		exit_code INTEGER NOT NULL,
		output BLOB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_evaluations_genome
		ON evaluations (genome_hash)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRecord persists an evaluation record and returns its generated ID.
// The output sequence is stored as canonical CBOR.
func (s *Store) SaveRecord(rec *dist.EvalRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := dist.MarshalCells(rec.Output)
	if err != nil {
		return "", fmt.Errorf("encoding output: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO evaluations (id, genome_hash, cycles, halted, exit_code, output)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		hex.EncodeToString(rec.GenomeHash[:]),
		int64(rec.Cycles),
		boolToInt(rec.Halted),
		int64(rec.ExitCode),
		blob,
	)
	if err != nil {
		return "", fmt.Errorf("inserting record: %w", err)
	}
	return id, nil
}

// GetRecord loads one record by ID.
func (s *Store) GetRecord(id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(
		`SELECT id, genome_hash, cycles, halted, exit_code, output
		 FROM evaluations WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	return rec, err
}

// ListByGenome returns all records for a genome hash (hex-encoded),
// cheapest evaluation first.
func (s *Store) ListByGenome(genomeHash string) ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, genome_hash, cycles, halted, exit_code, output
		 FROM evaluations WHERE genome_hash = ? ORDER BY cycles ASC`, genomeHash)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		rec      Record
		cycles   int64
		halted   int64
		exitCode int64
		blob     []byte
	)
	if err := row.Scan(&rec.ID, &rec.GenomeHash, &cycles, &halted, &exitCode, &blob); err != nil {
		return nil, err
	}
	rec.Cycles = uint64(cycles)
	rec.Halted = halted != 0
	rec.ExitCode = uint32(exitCode)

	if len(blob) > 0 {
		output, err := dist.UnmarshalCells(blob)
		if err != nil {
			return nil, fmt.Errorf("decoding output: %w", err)
		}
		rec.Output = output
	}
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
