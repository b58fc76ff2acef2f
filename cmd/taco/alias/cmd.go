// Package aliascmd implements the `taco alias` command.
package aliascmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/taco/cmd/taco/shared"
	"github.com/go-ports/taco/internal/service"
	"github.com/go-ports/taco/internal/ui"
)

// Command implements `taco alias`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	pwd string
}

// New creates the alias command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "alias <label>",
		Aliases: []string{"link"},
		Short:   "Register this directory under a shared project label",
		Long:    "Register this directory under a shared project label.\nDirectories registered under the same label inherit each other's\ncommands; local definitions always win over inherited ones.",
		Args:    cobra.ExactArgs(1),
		RunE:    c.run,
	}
	c.cmd.Flags().StringVar(&c.pwd, "pwd", "", "Directory to register (default: current directory)")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	label := args[0]

	svc, err := service.New(c.ctx.ConfigPath)
	if err != nil {
		return err
	}

	dir, err := shared.WorkingDir(c.pwd)
	if err != nil {
		return err
	}

	res, err := svc.Link(dir, label)
	if err != nil {
		return err
	}

	if res.Already {
		fmt.Fprintf(out, "%s is already registered under %s\n", res.Dir, ui.Alias(label))
		return nil
	}
	fmt.Fprintf(out, "Registered %s under %s\n", res.Dir, ui.Alias(label))
	return nil
}
