// Package printcmd implements the `taco print` command.
package printcmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yalp/jsonpath"

	"github.com/go-ports/taco/cmd/taco/shared"
	"github.com/go-ports/taco/internal/service"
	"github.com/go-ports/taco/internal/ui"
)

// Command implements `taco print`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	pwd    string
	asJSON bool
	query  string
}

// New creates the print command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "print",
		Short: "Print the commands visible from this directory",
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.pwd, "pwd", "", "Directory to resolve commands for (default: current directory)")
	f.BoolVar(&c.asJSON, "json", false, "Print commands as JSON")
	f.StringVar(&c.query, "query", "", "JSONPath filter applied to the JSON output (implies --json)")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	svc, err := service.New(c.ctx.ConfigPath)
	if err != nil {
		return err
	}

	dir, err := shared.WorkingDir(c.pwd)
	if err != nil {
		return err
	}

	commands, err := svc.Resolve(dir)
	if err != nil {
		return err
	}

	if !c.asJSON && c.query == "" {
		ui.PrintCommands(out, commands)
		return nil
	}

	// jsonpath operates on generic JSON containers.
	document := make(map[string]any, len(commands))
	for name, command := range commands {
		document[name] = command
	}

	var payload any = document
	if c.query != "" {
		payload, err = jsonpath.Read(document, c.query)
		if err != nil {
			return fmt.Errorf("printcmd: apply query %q: %w", c.query, err)
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}
