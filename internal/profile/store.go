// Package profile loads, saves, and validates the master profile document.
// The profile lives in a single YAML file owned by the user; tailoring
// reads it and never writes back.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-mate/internal/types"
)

// DefaultFilename is the conventional profile file name in a workspace.
const DefaultFilename = "master_profile.yaml"

// NotFoundError indicates the profile file does not exist yet.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile file not found: %s (run init to create one)", e.Path)
}

// ParseError indicates the profile file exists but is not valid YAML.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse profile %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Load reads and parses the master profile from path.
func Load(path string) (*types.MasterProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var profile types.MasterProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}

	return &profile, nil
}

// Save writes the profile to path as YAML, creating parent directories as
// needed. The write goes through a temp file and rename so a crash cannot
// leave a half-written profile.
func Save(path string, profile *types.MasterProfile) error {
	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".profile-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp profile file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write profile: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace profile %s: %w", path, err)
	}
	return nil
}

// EnsureIDs assigns a stable identifier to every entry and highlight that
// lacks one and returns how many were assigned. Existing IDs are never
// changed; rewriting and provenance depend on them staying stable.
func EnsureIDs(profile *types.MasterProfile) int {
	assigned := 0

	ensure := func(id *string, prefix string) {
		if strings.TrimSpace(*id) == "" {
			*id = prefix + "-" + uuid.NewString()[:8]
			assigned++
		}
	}

	for i := range profile.Work {
		ensure(&profile.Work[i].ID, "work")
		for j := range profile.Work[i].Highlights {
			ensure(&profile.Work[i].Highlights[j].ID, "h")
		}
	}
	for i := range profile.Projects {
		ensure(&profile.Projects[i].ID, "proj")
		for j := range profile.Projects[i].Highlights {
			ensure(&profile.Projects[i].Highlights[j].ID, "h")
		}
	}
	for i := range profile.Education {
		ensure(&profile.Education[i].ID, "edu")
	}

	return assigned
}
