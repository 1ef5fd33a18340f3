package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional YAML batch file. It exists so headless runs can
// supply per-file passwords instead of answering interactive prompts.
type Manifest struct {
	Statements []Statement `yaml:"statements"`
}

// Statement is a single entry in the manifest.
type Statement struct {
	FilePath string `yaml:"file"`
	Password string `yaml:"password"`
}

// File returns the absolute path to the statement file, expanding ~.
func (s *Statement) File() (string, error) {
	if strings.HasPrefix(s.FilePath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, s.FilePath[2:]), nil
	}
	return filepath.Abs(s.FilePath)
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error parsing manifest: %w", err)
	}
	return &m, nil
}

// PasswordFor looks up a password by statement file name (base name match,
// case insensitive). Empty string means no password is known.
func (m *Manifest) PasswordFor(filename string) string {
	if m == nil {
		return ""
	}
	target := strings.ToLower(filepath.Base(filename))
	for _, s := range m.Statements {
		if strings.ToLower(filepath.Base(s.FilePath)) == target {
			return s.Password
		}
	}
	return ""
}
