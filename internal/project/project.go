// Package project persists complete design runs as JSON documents so a
// run can be reloaded, re-exported or compared later.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/shelfforge/internal/costing"
	"github.com/piwi3910/shelfforge/internal/engine"
	"github.com/piwi3910/shelfforge/internal/manufacturability"
	"github.com/piwi3910/shelfforge/internal/model"
)

// Project is one saved design run: the resolved request, the geometry it
// produced and everything derived from it.
type Project struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	CreatedAt    time.Time                   `json:"created_at"`
	Requirements model.Requirements          `json:"requirements"`
	Model        model.Model                 `json:"model"`
	Breakdown    costing.Breakdown           `json:"breakdown"`
	Warnings     []manufacturability.Warning `json:"warnings"`
	Report       *engine.Report              `json:"report,omitempty"`
}

// New stamps a project with a fresh ID and timestamp.
func New(name string, req model.Requirements, m model.Model, b costing.Breakdown, warnings []manufacturability.Warning, report *engine.Report) Project {
	return Project{
		ID:           uuid.New().String()[:8],
		Name:         name,
		CreatedAt:    time.Now().UTC(),
		Requirements: req,
		Model:        m,
		Breakdown:    b,
		Warnings:     warnings,
		Report:       report,
	}
}

// DefaultProjectsDir returns the default directory for saved projects.
func DefaultProjectsDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "shelfforge", "projects"), nil
}

// Save writes the project to a JSON file.
func Save(path string, p Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveToDefault writes the project under the default projects directory,
// named <id>.json, and returns the path written.
func SaveToDefault(p Project) (string, error) {
	dir, err := DefaultProjectsDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, p.ID+".json")
	if err := Save(path, p); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a project from a JSON file.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("parsing project %s: %w", path, err)
	}
	if p.ID == "" {
		return Project{}, errors.New("project has no id")
	}
	return p, nil
}

// List loads every project in the default directory. A missing directory
// yields an empty slice.
func List() ([]Project, error) {
	dir, err := DefaultProjectsDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Project{}, nil
		}
		return nil, err
	}

	var projects []Project
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		p, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}
