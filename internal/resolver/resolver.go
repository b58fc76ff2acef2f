// Package resolver computes the effective command set for a directory by
// merging the direct command maps of its ancestor projects with the projects
// linked to it through labels.
//
// Precedence, from weakest to strongest: commands inherited through a label,
// then direct commands of ancestor projects, then direct commands of deeper
// directories. A direct entry at any depth beats every linked entry.
package resolver

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/go-ports/taco/internal/store"
)

// ErrProjectNotFound is returned by Project when no project is registered at
// the requested directory.
var ErrProjectNotFound = errors.New("project not registered")

// Canonicalize turns path into its canonical absolute form: symlinks
// resolved, trailing separators dropped. Distinct spellings of the same
// directory collide on the same key. The path must exist; a failure here is
// the caller's user-facing path error.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolver.Canonicalize: %w", err)
	}
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolver.Canonicalize: %w", err)
	}
	return canon, nil
}

// Prefixes decomposes a canonical path into its ancestor chain, root first:
// /a/b/c yields /, /a, /a/b, /a/b/c.
func Prefixes(canonical string) []string {
	chain := []string{canonical}
	for p := canonical; ; {
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		chain = append(chain, parent)
		p = parent
	}
	slices.Reverse(chain)
	return chain
}

// Resolve computes the merged command map visible from dir. It walks the
// ancestor chain root to leaf; at each prefix, commands of label-linked
// projects fill gaps only, then the prefix's own commands overwrite. The
// document is never mutated; the returned map is freshly built on every call.
// An empty map is a valid result.
func Resolve(doc *store.Document, dir string) (map[string]string, error) {
	canon, err := Canonicalize(dir)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]string)
	for _, prefix := range Prefixes(canon) {
		for _, label := range doc.Aliases[prefix] {
			for _, member := range labelMembers(doc, label) {
				if member == prefix {
					continue
				}
				for name, command := range doc.Projects[member] {
					if _, ok := merged[name]; !ok {
						merged[name] = command
					}
				}
			}
		}
		for name, command := range doc.Projects[prefix] {
			merged[name] = command
		}
	}
	return merged, nil
}

// Project returns the direct, unmerged command map registered exactly at dir,
// or ErrProjectNotFound. Mutations operate on this view so parent-inherited
// entries never leak into a project's own map.
func Project(doc *store.Document, dir string) (map[string]string, error) {
	canon, err := Canonicalize(dir)
	if err != nil {
		return nil, err
	}
	commands, ok := doc.Projects[canon]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, canon)
	}
	return commands, nil
}

// labelMembers returns the paths registered under label, sorted. The sort
// makes the first-writer-wins merge across a label's members deterministic
// regardless of map iteration order.
func labelMembers(doc *store.Document, label string) []string {
	var members []string
	for path, labels := range doc.Aliases {
		if slices.Contains(labels, label) {
			members = append(members, path)
		}
	}
	slices.Sort(members)
	return members
}
