// Package editor composes a command string in the user's $EDITOR via a
// temporary file.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNoEditor is returned when the EDITOR environment variable is unset.
var ErrNoEditor = errors.New("EDITOR is not set")

// Compose writes contents to a temp file, opens it in $EDITOR with inherited
// stdio, and returns the edited text. The temp file is removed afterwards.
func Compose(contents string) (string, error) {
	editorBin := os.Getenv("EDITOR")
	if editorBin == "" {
		return "", ErrNoEditor
	}

	path := filepath.Join(os.TempDir(), uuid.NewString()+".sh")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		return "", fmt.Errorf("editor.Compose: write temp file: %w", err)
	}
	defer os.Remove(path)

	cmd := exec.Command(editorBin, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor.Compose: run %s: %w", editorBin, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("editor.Compose: read back: %w", err)
	}
	return string(edited), nil
}
