package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "sbrain.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
}

func TestLoadFullManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
source = "genome.sb"

[run]
cycle-limit = 5000
input = [72, 105]
text = true

[results]
database = "evals.db"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Program.Source != "genome.sb" {
		t.Errorf("Source = %q, want %q", m.Program.Source, "genome.sb")
	}
	if m.Run.CycleLimit != 5000 {
		t.Errorf("CycleLimit = %d, want 5000", m.Run.CycleLimit)
	}
	if len(m.Run.Input) != 2 || m.Run.Input[0] != 72 || m.Run.Input[1] != 105 {
		t.Errorf("Input = %v, want [72 105]", m.Run.Input)
	}
	if !m.Run.Text {
		t.Error("Text = false, want true")
	}
	if m.Results.Database != "evals.db" {
		t.Errorf("Database = %q, want %q", m.Results.Database, "evals.db")
	}
	if !filepath.IsAbs(m.Dir) {
		t.Errorf("Dir = %q, want absolute", m.Dir)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Program.Source != "main.sb" {
		t.Errorf("default Source = %q, want %q", m.Program.Source, "main.sb")
	}
	if m.Run.CycleLimit != 0 {
		t.Errorf("default CycleLimit = %d, want 0", m.Run.CycleLimit)
	}
	if m.Results.Database != "" {
		t.Errorf("default Database = %q, want empty", m.Results.Database)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("Load succeeded without an sbrain.toml")
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[program\nsource =")
	if _, err := Load(dir); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `[program]
source = "main.sb"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad found nothing")
	}

	wantDir, _ := filepath.Abs(root)
	if resolved, err := filepath.EvalSymlinks(m.Dir); err == nil {
		m.Dir = resolved
	}
	if resolved, err := filepath.EvalSymlinks(wantDir); err == nil {
		wantDir = resolved
	}
	if m.Dir != wantDir {
		t.Errorf("Dir = %q, want %q", m.Dir, wantDir)
	}
}

func TestFindAndLoadNoManifest(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m != nil {
		t.Fatalf("found unexpected manifest in %q", m.Dir)
	}
}

func TestSourcePath(t *testing.T) {
	m := &Manifest{Dir: "/work/proj"}
	m.Program.Source = "genome.sb"
	if got := m.SourcePath(); got != filepath.Join("/work/proj", "genome.sb") {
		t.Errorf("SourcePath = %q", got)
	}

	m.Program.Source = "/abs/genome.sb"
	if got := m.SourcePath(); got != "/abs/genome.sb" {
		t.Errorf("SourcePath = %q, want /abs/genome.sb", got)
	}
}

func TestDatabasePath(t *testing.T) {
	m := &Manifest{Dir: "/work/proj"}
	if got := m.DatabasePath(); got != "" {
		t.Errorf("DatabasePath = %q, want empty", got)
	}

	m.Results.Database = "evals.db"
	if got := m.DatabasePath(); got != filepath.Join("/work/proj", "evals.db") {
		t.Errorf("DatabasePath = %q", got)
	}
}
