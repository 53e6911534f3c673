// Package project handles persistence of projects, templates, and
// application configuration as JSON files on disk.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cutlistpro/cutlist/internal/model"
)

// FileExtension is the project file extension.
const FileExtension = ".cutlist"

// Save persists a project to the given path as indented JSON. It creates
// any missing parent directories automatically.
func Save(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads a project from the given path.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	// Ensure slices are never nil after a round-trip
	if p.Parts == nil {
		p.Parts = []model.Part{}
	}
	if p.Materials == nil {
		p.Materials = []model.Material{}
	}
	return p, nil
}
