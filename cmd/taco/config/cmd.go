// Package configcmd implements the `taco config` command group.
package configcmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/taco/cmd/taco/shared"
	"github.com/go-ports/taco/internal/config"
)

// settingKeys are the keys accepted by `taco config set` / `unset`.
var settingKeys = []string{"shell", "store"}

// Command implements `taco config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage taco settings",
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newSet(),
		newUnset(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	settingsPath, err := config.SettingsPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}

	storePath, source, err := config.ResolveStorePath(c.ctx.ConfigPath, settings)
	if err != nil {
		return err
	}

	data := map[string]any{
		"shell":        config.ResolveShell(settings),
		"store":        storePath,
		"store_source": source,
		"settings":     settingsPath,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

func newSet() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a setting (keys: shell, store)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !slices.Contains(settingKeys, key) {
				return fmt.Errorf("unknown setting %q (known: shell, store)", key)
			}
			if err := config.Set(key, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	}
}

func newUnset() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a setting, restoring its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !slices.Contains(settingKeys, key) {
				return fmt.Errorf("unknown setting %q (known: shell, store)", key)
			}
			changed, err := config.Unset(key)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if changed {
				fmt.Fprintf(out, "Unset %s\n", key)
			} else {
				fmt.Fprintf(out, "%s was not set\n", key)
			}
			return nil
		},
	}
}
