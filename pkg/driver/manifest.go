// Package driver supplies CLI-facing support: an optional project
// manifest (mint.yml) and git-backed remote script retrieval. Neither
// adds a module system to the Mint language itself.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest represents the parsed contents of mint.yml: a pinned entry
// script and default run options.
type Manifest struct {
	Path    string
	Entry   string
	Trace   bool
	Output  string // "" means stdout
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type manifestFile struct {
	Entry  string `yaml:"entry"`
	Trace  bool   `yaml:"trace"`
	Output string `yaml:"output"`
}

// LoadManifest parses mint.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := &Manifest{
		Path:   absPath,
		Entry:  strings.TrimSpace(raw.Entry),
		Trace:  raw.Trace,
		Output: strings.TrimSpace(raw.Output),
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Entry == "" {
		errs.Issues = append(errs.Issues, "entry must be provided")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
