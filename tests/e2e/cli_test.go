// Package e2e_test contains end-to-end tests that exercise the full taco CLI
// by importing the root command and running it in-process with a temporary
// store. Output is captured via cobra's SetOut so tests do not touch
// os.Stdout.
package e2e_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	rootcmd "github.com/go-ports/taco/cmd/taco/root"
	"github.com/go-ports/taco/internal/runner"
)

// runCmd executes the root command with the provided args and returns the
// captured stdout output along with any execution error. stdin defaults to
// an empty reader so confirmation prompts decline instead of blocking.
func runCmd(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	if stdin == nil {
		stdin = strings.NewReader("")
	}

	var buf bytes.Buffer
	root := rootcmd.New()
	root.SetOut(&buf)
	root.SetIn(stdin)
	root.SetArgs(args)
	execErr := root.ExecuteContext(context.Background())

	return buf.String(), execErr
}

// testStore isolates HOME and returns a fresh store file path for --config.
func testStore(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TACO_CONFIG", "")
	t.Setenv("TACO_SHELL", "sh")
	return filepath.Join(t.TempDir(), "taco.json")
}

// ---------------------------------------------------------------------------
// Help
// ---------------------------------------------------------------------------

func TestHelp_HappyPath(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)

	out, err := runCmd(t, nil, "--config", store, "--help")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Taco")
	c.Assert(out, qt.Contains, "add")

	c.Run("no arguments also shows help", func(c *qt.C) {
		out, err := runCmd(t, nil, "--config", store)
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "Usage:")
	})
}

// ---------------------------------------------------------------------------
// Add + print
// ---------------------------------------------------------------------------

func TestAddAndPrint_HappyPath(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	dir := t.TempDir()

	out, err := runCmd(t, nil, "--config", store, "add", "--pwd", dir, "build", "cargo", "build")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Aliased")
	c.Assert(out, qt.Contains, "cargo build")

	out, err = runCmd(t, nil, "--config", store, "print", "--pwd", dir)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "build")
	c.Assert(out, qt.Contains, "cargo build")
	c.Assert(out, qt.Contains, "1 command")
}

func TestAdd_SubdirectoryInherits(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	c.Assert(os.MkdirAll(sub, 0o755), qt.IsNil)

	_, err := runCmd(t, nil, "--config", store, "add", "--pwd", dir, "build", "cargo", "build")
	c.Assert(err, qt.IsNil)

	out, err := runCmd(t, nil, "--config", store, "--pwd", sub, "--print", "build")
	c.Assert(err, qt.IsNil)
	c.Assert(strings.TrimSpace(out), qt.Equals, "cargo build")

	c.Run("deeper definition overrides, parent unaffected", func(c *qt.C) {
		_, err := runCmd(t, nil, "--config", store, "add", "--pwd", sub, "build", "make")
		c.Assert(err, qt.IsNil)

		out, err := runCmd(t, nil, "--config", store, "--pwd", sub, "--print", "build")
		c.Assert(err, qt.IsNil)
		c.Assert(strings.TrimSpace(out), qt.Equals, "make")

		out, err = runCmd(t, nil, "--config", store, "--pwd", dir, "--print", "build")
		c.Assert(err, qt.IsNil)
		c.Assert(strings.TrimSpace(out), qt.Equals, "cargo build")
	})
}

func TestAdd_OverwriteConfirmation(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	dir := t.TempDir()

	_, err := runCmd(t, nil, "--config", store, "add", "--pwd", dir, "build", "make")
	c.Assert(err, qt.IsNil)

	c.Run("declining keeps the old value", func(c *qt.C) {
		out, err := runCmd(t, strings.NewReader("n\n"), "--config", store, "add", "--pwd", dir, "build", "ninja")
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "already exists")
		c.Assert(out, qt.Contains, "Aborted!")

		printed, err := runCmd(t, nil, "--config", store, "--pwd", dir, "--print", "build")
		c.Assert(err, qt.IsNil)
		c.Assert(strings.TrimSpace(printed), qt.Equals, "make")
	})

	c.Run("confirming replaces it", func(c *qt.C) {
		out, err := runCmd(t, strings.NewReader("y\n"), "--config", store, "add", "--pwd", dir, "build", "ninja")
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "Aliased")

		printed, err := runCmd(t, nil, "--config", store, "--pwd", dir, "--print", "build")
		c.Assert(err, qt.IsNil)
		c.Assert(strings.TrimSpace(printed), qt.Equals, "ninja")
	})
}

// ---------------------------------------------------------------------------
// Execution
// ---------------------------------------------------------------------------

func TestExecute_HappyPath(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	dir := t.TempDir()

	_, err := runCmd(t, nil, "--config", store, "add", "--pwd", dir, "touchit", "touch marker.txt")
	c.Assert(err, qt.IsNil)

	_, err = runCmd(t, nil, "--config", store, "--pwd", dir, "touchit")
	c.Assert(err, qt.IsNil)

	// The command ran with the project directory as its working directory.
	_, statErr := os.Stat(filepath.Join(dir, "marker.txt"))
	c.Assert(statErr, qt.IsNil)
}

func TestExecute_ExitCodePropagated(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	dir := t.TempDir()

	_, err := runCmd(t, nil, "--config", store, "add", "--pwd", dir, "fail", "exit 4")
	c.Assert(err, qt.IsNil)

	_, err = runCmd(t, nil, "--config", store, "--pwd", dir, "fail")
	var exit *runner.ExitError
	c.Assert(errors.As(err, &exit), qt.IsTrue)
	c.Assert(exit.Code, qt.Equals, 4)
}

func TestExecute_PassthroughArguments(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	dir := t.TempDir()

	_, err := runCmd(t, nil, "--config", store, "add", "--pwd", dir, "put", "touch")
	c.Assert(err, qt.IsNil)

	_, err = runCmd(t, nil, "--config", store, "--pwd", dir, "put", "a.txt", "b.txt")
	c.Assert(err, qt.IsNil)

	for _, name := range []string{"a.txt", "b.txt"} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		c.Assert(statErr, qt.IsNil)
	}

	c.Run("--print emits the raw command without the arguments", func(c *qt.C) {
		out, err := runCmd(t, nil, "--config", store, "--pwd", dir, "--print", "put", "c.txt")
		c.Assert(err, qt.IsNil)
		c.Assert(strings.TrimSpace(out), qt.Equals, "touch")
	})
}

func TestExecute_UnknownAliasListsCommands(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	dir := t.TempDir()

	_, err := runCmd(t, nil, "--config", store, "add", "--pwd", dir, "build", "make")
	c.Assert(err, qt.IsNil)

	out, err := runCmd(t, nil, "--config", store, "--pwd", dir, "deploy")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "does not exist")
	c.Assert(out, qt.Contains, "Available commands:")
	c.Assert(out, qt.Contains, "build")
}

// ---------------------------------------------------------------------------
// Remove
// ---------------------------------------------------------------------------

func TestRm_HappyPath(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	dir := t.TempDir()

	_, err := runCmd(t, nil, "--config", store, "add", "--pwd", dir, "build", "make")
	c.Assert(err, qt.IsNil)

	out, err := runCmd(t, nil, "--config", store, "rm", "build", "--pwd", dir)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Removed alias")
}

func TestRm_NotFound(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	dir := t.TempDir()

	_, err := runCmd(t, nil, "--config", store, "add", "--pwd", dir, "build", "make")
	c.Assert(err, qt.IsNil)

	c.Run("missing alias lists what remains", func(c *qt.C) {
		out, err := runCmd(t, nil, "--config", store, "rm", "deploy", "--pwd", dir)
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "does not exist")
		c.Assert(out, qt.Contains, "build")
	})

	c.Run("missing project is reported distinctly", func(c *qt.C) {
		out, err := runCmd(t, nil, "--config", store, "rm", "build", "--pwd", t.TempDir())
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "No project is registered")
	})
}

// ---------------------------------------------------------------------------
// Alias links
// ---------------------------------------------------------------------------

func TestAlias_HappyPath(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	web := t.TempDir()
	api := t.TempDir()

	_, err := runCmd(t, nil, "--config", store, "add", "--pwd", api, "serve", "go run ./cmd/api")
	c.Assert(err, qt.IsNil)

	for _, dir := range []string{web, api} {
		out, err := runCmd(t, nil, "--config", store, "alias", "webdev", "--pwd", dir)
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "Registered")
	}

	out, err := runCmd(t, nil, "--config", store, "--pwd", web, "--print", "serve")
	c.Assert(err, qt.IsNil)
	c.Assert(strings.TrimSpace(out), qt.Equals, "go run ./cmd/api")

	c.Run("duplicate registration is a no-op", func(c *qt.C) {
		out, err := runCmd(t, nil, "--config", store, "alias", "webdev", "--pwd", web)
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "already registered")
	})

	c.Run("local definition beats the linked one", func(c *qt.C) {
		_, err := runCmd(t, nil, "--config", store, "add", "--pwd", web, "serve", "npm start")
		c.Assert(err, qt.IsNil)

		out, err := runCmd(t, nil, "--config", store, "--pwd", web, "--print", "serve")
		c.Assert(err, qt.IsNil)
		c.Assert(strings.TrimSpace(out), qt.Equals, "npm start")
	})
}

// ---------------------------------------------------------------------------
// Print --json
// ---------------------------------------------------------------------------

func TestPrintJSON_HappyPath(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	dir := t.TempDir()

	_, err := runCmd(t, nil, "--config", store, "add", "--pwd", dir, "build", "cargo build")
	c.Assert(err, qt.IsNil)

	out, err := runCmd(t, nil, "--config", store, "print", "--json", "--pwd", dir)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, `"build": "cargo build"`)

	c.Run("query extracts a single command", func(c *qt.C) {
		out, err := runCmd(t, nil, "--config", store, "print", "--pwd", dir, "--query", "$.build")
		c.Assert(err, qt.IsNil)
		c.Assert(strings.TrimSpace(out), qt.Equals, `"cargo build"`)
	})

	c.Run("empty directory prints an empty object", func(c *qt.C) {
		out, err := runCmd(t, nil, "--config", store, "print", "--json", "--pwd", t.TempDir())
		c.Assert(err, qt.IsNil)
		c.Assert(strings.TrimSpace(out), qt.Equals, "{}")
	})
}

// ---------------------------------------------------------------------------
// Failure paths
// ---------------------------------------------------------------------------

func TestCorruptStore_FailurePath(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)
	c.Assert(os.WriteFile(store, []byte("{not json"), 0o600), qt.IsNil)

	_, err := runCmd(t, nil, "--config", store, "print", "--pwd", t.TempDir())
	c.Assert(err, qt.IsNotNil)
	c.Assert(err.Error(), qt.Contains, "corrupt")
}

func TestBadPwd_FailurePath(t *testing.T) {
	c := qt.New(t)
	store := testStore(t)

	_, err := runCmd(t, nil, "--config", store, "print", "--pwd", filepath.Join(t.TempDir(), "missing"))
	c.Assert(err, qt.IsNotNil)
}
