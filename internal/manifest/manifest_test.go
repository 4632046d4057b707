package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validManifest = `
name: traffic
output: traffic.xlsx
sources:
  - path: Speed_Limits.csv
    sheet: Limits
  - path: Traffic_Volumes.csv
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if m.Name != "traffic" || m.Output != "traffic.xlsx" {
		t.Errorf("unexpected manifest: %+v", m)
	}
	if len(m.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(m.Sources))
	}
	if m.Sources[0].Sheet != "Limits" {
		t.Errorf("expected sheet override, got %q", m.Sources[0].Sheet)
	}
	if m.Sources[1].Sheet != "" {
		t.Errorf("expected empty sheet for second source, got %q", m.Sources[1].Sheet)
	}
}

func TestParseMissingOutput(t *testing.T) {
	_, err := Parse([]byte("name: x\nsources:\n  - path: a.csv\n"))
	if err == nil || !strings.Contains(err.Error(), "output") {
		t.Errorf("expected missing-output error, got %v", err)
	}
}

func TestParseNoSources(t *testing.T) {
	_, err := Parse([]byte("name: x\noutput: out.xlsx\n"))
	if err == nil || !strings.Contains(err.Error(), "no sources") {
		t.Errorf("expected no-sources error, got %v", err)
	}
}

func TestParseMissingPath(t *testing.T) {
	_, err := Parse([]byte("output: out.xlsx\nsources:\n  - sheet: A\n"))
	if err == nil || !strings.Contains(err.Error(), "path") {
		t.Errorf("expected missing-path error, got %v", err)
	}
}

func TestParseDuplicateSheet(t *testing.T) {
	data := `
output: out.xlsx
sources:
  - path: a.csv
    sheet: Data
  - path: b.csv
    sheet: Data
`
	_, err := Parse([]byte(data))
	if err == nil || !strings.Contains(err.Error(), "duplicate sheet name") {
		t.Errorf("expected duplicate-sheet error, got %v", err)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("output: [unclosed"))
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.yaml")
	if err := os.WriteFile(path, []byte(validManifest), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Output != "traffic.xlsx" {
		t.Errorf("unexpected output: %q", m.Output)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}
