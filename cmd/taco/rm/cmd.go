// Package rmcmd implements the `taco rm` command.
package rmcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/taco/cmd/taco/shared"
	"github.com/go-ports/taco/internal/service"
	"github.com/go-ports/taco/internal/ui"
)

// Command implements `taco rm`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	pwd string
}

// New creates the rm command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Delete an alias from this directory's project",
		Args:    cobra.ExactArgs(1),
		RunE:    c.run,
	}
	c.cmd.Flags().StringVar(&c.pwd, "pwd", "", "Directory whose project to remove from (default: current directory)")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	svc, err := service.New(c.ctx.ConfigPath)
	if err != nil {
		return err
	}

	dir, err := shared.WorkingDir(c.pwd)
	if err != nil {
		return err
	}

	res, err := svc.Remove(dir, name)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case service.Removed:
		fmt.Fprintf(out, "Removed alias %s\n", ui.Alias(name))
	case service.AliasMissing:
		fmt.Fprintf(out, "Alias %s does not exist.\n\n", ui.Alias(name))
		ui.PrintCommands(out, res.Remaining)
	case service.ProjectMissing:
		fmt.Fprintf(out, "No project is registered at %s\n", res.Dir)
	}
	return nil
}
