// Package store persists the taco document: every project's direct command
// map plus the label links between projects. The whole document is loaded per
// invocation and rewritten in full on every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorrupt is returned when the store file exists but cannot be parsed.
// A missing file is not an error; Load auto-initializes an empty document.
var ErrCorrupt = errors.New("store file is corrupt")

// Document is the full persisted state.
//
// Projects maps a canonical directory path to that project's direct
// alias → command map. Aliases maps a canonical directory path to the ordered
// list of labels it is registered under.
type Document struct {
	Projects map[string]map[string]string `json:"projects"`
	Aliases  map[string][]string          `json:"aliases"`
}

// NewDocument returns an empty, non-nil document.
func NewDocument() *Document {
	return &Document{
		Projects: make(map[string]map[string]string),
		Aliases:  make(map[string][]string),
	}
}

// Load reads the document at path. A missing file yields an empty document;
// a file that exists but fails to parse yields ErrCorrupt — it is never
// silently replaced with an empty configuration.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.Load: read %s: %w", path, err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("store.Load: %w: %s: %v", ErrCorrupt, path, err)
	}

	// Older files may omit either top-level key.
	if doc.Projects == nil {
		doc.Projects = make(map[string]map[string]string)
	}
	if doc.Aliases == nil {
		doc.Aliases = make(map[string][]string)
	}
	return doc, nil
}

// Save writes the document to path as pretty-printed JSON. The write goes
// through a temp file in the same directory followed by a rename, so a
// concurrent reader never observes a partial document.
func Save(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store.Save: marshal: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store.Save: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".taco-*.json")
	if err != nil {
		return fmt.Errorf("store.Save: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store.Save: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store.Save: close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store.Save: chmod: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store.Save: rename: %w", err)
	}
	return nil
}
