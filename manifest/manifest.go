// Package manifest handles sbrain.toml run configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents an sbrain.toml run configuration.
type Manifest struct {
	Program Program `toml:"program"`
	Run     Run     `toml:"run"`
	Results Results `toml:"results"`

	// Dir is the directory containing the sbrain.toml file (set at load time).
	Dir string `toml:"-"`
}

// Program locates the genome source.
type Program struct {
	Source string `toml:"source"`
}

// Run configures one evaluation.
type Run struct {
	CycleLimit uint64   `toml:"cycle-limit"`
	Input      []uint32 `toml:"input"`
	Text       bool     `toml:"text"`
}

// Results configures optional persistence of evaluation records.
type Results struct {
	Database string `toml:"database"`
}

// Load parses an sbrain.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "sbrain.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Program.Source == "" {
		m.Program.Source = "main.sb"
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find an sbrain.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "sbrain.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// SourcePath returns the absolute path of the genome source file.
func (m *Manifest) SourcePath() string {
	if filepath.IsAbs(m.Program.Source) {
		return m.Program.Source
	}
	return filepath.Join(m.Dir, m.Program.Source)
}

// DatabasePath returns the absolute path of the results database, or ""
// when persistence is not configured.
func (m *Manifest) DatabasePath() string {
	if m.Results.Database == "" {
		return ""
	}
	if filepath.IsAbs(m.Results.Database) {
		return m.Results.Database
	}
	return filepath.Join(m.Dir, m.Results.Database)
}
