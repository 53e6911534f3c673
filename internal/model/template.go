package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate is a reusable project snapshot: parts, materials, and
// settings, but never optimization results.
type ProjectTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Parts       []Part      `json:"parts"`
	Materials   []Material  `json:"materials"`
	Settings    CutSettings `json:"settings"`
}

// NewProjectTemplate snapshots the given project data into a template.
func NewProjectTemplate(name, description string, parts []Part, materials []Material, settings CutSettings) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Parts:       copyParts(parts),
		Materials:   copyMaterials(materials),
		Settings:    settings,
	}
}

// ToProject instantiates a fresh project from the template. Parts get new
// IDs so they are independent of the template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	parts := make([]Part, len(t.Parts))
	for i, p := range t.Parts {
		np := NewPart(p.Name, p.Length, p.Width, p.Thickness, p.Quantity)
		np.MaterialRef = p.MaterialRef
		np.Rotatable = p.Rotatable
		np.Priority = p.Priority
		np.EdgeBanding = p.EdgeBanding
		np.Description = p.Description
		parts[i] = np
	}

	return Project{
		Name:      projectName,
		Parts:     parts,
		Materials: copyMaterials(t.Materials),
		Settings:  t.Settings,
	}
}

// TemplateStore is the persisted collection of templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// Add appends a template to the store.
func (s *TemplateStore) Add(t ProjectTemplate) {
	s.Templates = append(s.Templates, t)
}

// Remove deletes the template with the given ID. Returns false when absent.
func (s *TemplateStore) Remove(id string) bool {
	for i, t := range s.Templates {
		if t.ID == id {
			s.Templates = append(s.Templates[:i], s.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// ByID finds a template by ID.
func (s TemplateStore) ByID(id string) (ProjectTemplate, bool) {
	for _, t := range s.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return ProjectTemplate{}, false
}

func copyParts(parts []Part) []Part {
	out := make([]Part, len(parts))
	copy(out, parts)
	return out
}

func copyMaterials(materials []Material) []Material {
	out := make([]Material, len(materials))
	copy(out, materials)
	return out
}
