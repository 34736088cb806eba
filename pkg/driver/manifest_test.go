package driver

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mint.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadManifestParsesEntryAndOptions(t *testing.T) {
	path := writeManifest(t, "entry: main.mint\ntrace: true\noutput: out.txt\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Entry != "main.mint" || !m.Trace || m.Output != "out.txt" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}

func TestLoadManifestMissingEntryIsAValidationError(t *testing.T) {
	path := writeManifest(t, "trace: true\n")
	_, err := LoadManifest(path)
	if err == nil {
		t.Fatalf("expected a validation error for a missing entry")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, "entry: main.mint\nbogus: true\n")
	_, err := LoadManifest(path)
	if err == nil {
		t.Fatalf("expected an error for an unknown field")
	}
}

func TestLoadManifestEmptyFileIsAnError(t *testing.T) {
	path := writeManifest(t, "")
	_, err := LoadManifest(path)
	if err == nil {
		t.Fatalf("expected an error for an empty manifest")
	}
}
