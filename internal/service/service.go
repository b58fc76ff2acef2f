// Package service implements the per-invocation orchestrator that wires
// together settings, the store document, and the resolution engine. One
// Service performs at most one read-resolve-mutate-write cycle.
package service

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/go-ports/taco/internal/config"
	"github.com/go-ports/taco/internal/resolver"
	"github.com/go-ports/taco/internal/store"
)

// Service orchestrates all taco operations.
type Service struct {
	StorePath string
	Settings  *config.Settings

	doc *store.Document
}

// New initialises a Service. storePath comes from the root --config flag and
// may be empty, in which case resolution falls through to the TACO_CONFIG env
// var, the settings file, and finally ~/.config/taco/taco.json.
func New(storePath string) (*Service, error) {
	settingsPath, err := config.SettingsPath()
	if err != nil {
		return nil, fmt.Errorf("service.New: locate settings: %w", err)
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("service.New: load settings: %w", err)
	}

	resolved, source, err := config.ResolveStorePath(storePath, settings)
	if err != nil {
		return nil, fmt.Errorf("service.New: resolve store path: %w", err)
	}
	if source == "env" {
		slog.Debug("store path taken from TACO_CONFIG", "path", resolved)
	}

	doc, err := store.Load(resolved)
	if err != nil {
		return nil, fmt.Errorf("service.New: %w", err)
	}

	return &Service{
		StorePath: resolved,
		Settings:  settings,
		doc:       doc,
	}, nil
}

// Document exposes the loaded store document, read-only by convention.
func (s *Service) Document() *store.Document { return s.doc }

// Shell returns the shell binary commands are dispatched to.
func (s *Service) Shell() string {
	return config.ResolveShell(s.Settings)
}

// Resolve returns the merged command map visible from dir.
func (s *Service) Resolve(dir string) (map[string]string, error) {
	return resolver.Resolve(s.doc, dir)
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// AddResult reports the outcome of Add.
type AddResult struct {
	Dir      string // canonical project directory
	Conflict bool   // name already bound and overwrite was false
	Existing string // current value when Conflict
}

// Add binds name to command in the project at dir, creating the project entry
// if absent. When name is already bound and overwrite is false, nothing is
// written and the existing value is surfaced so the caller can confirm.
// The command string is accepted verbatim.
func (s *Service) Add(dir, name, command string, overwrite bool) (*AddResult, error) {
	canon, err := resolver.Canonicalize(dir)
	if err != nil {
		return nil, err
	}

	project, ok := s.doc.Projects[canon]
	if !ok {
		project = make(map[string]string)
		s.doc.Projects[canon] = project
	}

	if existing, bound := project[name]; bound && !overwrite {
		return &AddResult{Dir: canon, Conflict: true, Existing: existing}, nil
	}

	project[name] = command
	if err := s.save(); err != nil {
		return nil, err
	}
	return &AddResult{Dir: canon}, nil
}

// RemoveOutcome distinguishes the three results of Remove.
type RemoveOutcome int

const (
	// Removed means the alias existed and was deleted.
	Removed RemoveOutcome = iota
	// AliasMissing means the project exists but does not bind the name.
	AliasMissing
	// ProjectMissing means no project is registered at the directory.
	ProjectMissing
)

// RemoveResult reports the outcome of Remove. Remaining holds the project's
// direct command map for display when the alias was not found.
type RemoveResult struct {
	Dir       string
	Outcome   RemoveOutcome
	Remaining map[string]string
}

// Remove deletes name from the project at dir. The not-found cases are
// reported, not errors: the caller shows the available commands instead.
// Nothing is written unless an alias was actually deleted.
func (s *Service) Remove(dir, name string) (*RemoveResult, error) {
	canon, err := resolver.Canonicalize(dir)
	if err != nil {
		return nil, err
	}

	project, ok := s.doc.Projects[canon]
	if !ok {
		return &RemoveResult{Dir: canon, Outcome: ProjectMissing}, nil
	}
	if _, bound := project[name]; !bound {
		return &RemoveResult{Dir: canon, Outcome: AliasMissing, Remaining: maps.Clone(project)}, nil
	}

	delete(project, name)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &RemoveResult{Dir: canon, Outcome: Removed, Remaining: maps.Clone(project)}, nil
}

// LinkResult reports the outcome of Link.
type LinkResult struct {
	Dir     string
	Already bool // label was already registered; no write happened
}

// Link registers the project at dir under label, creating the label list if
// absent. Registration is idempotent: a duplicate label is a reported no-op.
func (s *Service) Link(dir, label string) (*LinkResult, error) {
	canon, err := resolver.Canonicalize(dir)
	if err != nil {
		return nil, err
	}

	for _, existing := range s.doc.Aliases[canon] {
		if existing == label {
			return &LinkResult{Dir: canon, Already: true}, nil
		}
	}

	s.doc.Aliases[canon] = append(s.doc.Aliases[canon], label)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &LinkResult{Dir: canon}, nil
}

// save rewrites the whole store file.
func (s *Service) save() error {
	return store.Save(s.StorePath, s.doc)
}
