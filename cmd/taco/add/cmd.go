// Package addcmd implements the `taco add` command.
package addcmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-ports/taco/cmd/taco/shared"
	"github.com/go-ports/taco/internal/editor"
	"github.com/go-ports/taco/internal/service"
	"github.com/go-ports/taco/internal/ui"
)

// Command implements `taco add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	pwd string
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add <name> [command words...]",
		Short: "Bind an alias to a shell command in this directory",
		Long:  "Bind an alias to a shell command in this directory.\nWith no command words the command is composed in $EDITOR.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.run,
	}

	// Command words may carry their own flags (taco add build go build -v).
	c.cmd.Flags().SetInterspersed(false)
	c.cmd.Flags().StringVar(&c.pwd, "pwd", "", "Directory to register the alias in (default: current directory)")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	command := strings.Join(args[1:], " ")
	if command == "" {
		composed, err := editor.Compose("")
		if errors.Is(err, editor.ErrNoEditor) {
			fmt.Fprintln(out, "No command provided and EDITOR is not set.")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Usage:\n  taco add %s %s\n", ui.Alias("name"), ui.Alias("command"))
			fmt.Fprintf(out, "\nExample:\n  taco add %s %s\n", ui.Alias("publish"), ui.Alias("npm publish"))
			return nil
		}
		if err != nil {
			return err
		}
		command = strings.TrimSpace(composed)
	}
	if command == "" {
		fmt.Fprintln(out, "Aborted: empty command.")
		return nil
	}

	svc, err := service.New(c.ctx.ConfigPath)
	if err != nil {
		return err
	}

	dir, err := shared.WorkingDir(c.pwd)
	if err != nil {
		return err
	}

	res, err := svc.Add(dir, name, command, false)
	if err != nil {
		return err
	}
	if res.Conflict {
		fmt.Fprintf(out, "Command %s already exists with value %q\n", ui.Alias(name), res.Existing)
		if !ui.Confirm(cmd.InOrStdin(), out, fmt.Sprintf("Do you want to override it with %q?", command)) {
			fmt.Fprintln(out, "Aborted!")
			return nil
		}
		res, err = svc.Add(dir, name, command, true)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Aliased %s to %q in %s\n", ui.Alias(name), command, res.Dir)
	return nil
}
