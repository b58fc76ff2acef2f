// Package rootcmd wires the root cobra.Command for the taco CLI binary.
package rootcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/taco/cmd/taco/add"
	aliascmd "github.com/go-ports/taco/cmd/taco/alias"
	configcmd "github.com/go-ports/taco/cmd/taco/config"
	mcpcmd "github.com/go-ports/taco/cmd/taco/mcp"
	printcmd "github.com/go-ports/taco/cmd/taco/print"
	rmcmd "github.com/go-ports/taco/cmd/taco/rm"
	"github.com/go-ports/taco/cmd/taco/shared"
	"github.com/go-ports/taco/internal/buildinfo"
	"github.com/go-ports/taco/internal/resolver"
	"github.com/go-ports/taco/internal/runner"
	"github.com/go-ports/taco/internal/service"
	"github.com/go-ports/taco/internal/ui"
)

// New creates and returns the root cobra.Command for the taco CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	var (
		pwd       string
		printOnly bool
	)

	root := &cobra.Command{
		Use:           "taco [alias] [arguments...]",
		Short:         "Taco — per-directory shell command aliases",
		Long:          "Taco binds short aliases to shell commands per directory.\nSubdirectories inherit the aliases of their ancestors, and directories\nlinked under a shared label inherit each other's aliases.",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return execute(cmd, ctx, pwd, printOnly, args[0], args[1:])
		},
	}

	// Everything after the alias name is passthrough, including flags.
	root.Flags().SetInterspersed(false)

	root.PersistentFlags().StringVarP(
		&ctx.ConfigPath, "config", "c", "",
		"Override store file location (default: $TACO_CONFIG env → settings → ~/.config/taco/taco.json)",
	)
	root.Flags().StringVar(&pwd, "pwd", "", "Directory to resolve commands for (default: current directory)")
	root.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the resolved command instead of executing it")

	root.AddCommand(
		addcmd.New(ctx).Cmd(),
		rmcmd.New(ctx).Cmd(),
		printcmd.New(ctx).Cmd(),
		aliascmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
	)

	return root
}

// execute resolves alias in pwd and either prints the bound command or hands
// it to the shell with the passthrough arguments appended.
func execute(cmd *cobra.Command, ctx *shared.Context, pwd string, printOnly bool, alias string, passthrough []string) error {
	out := cmd.OutOrStdout()

	svc, err := service.New(ctx.ConfigPath)
	if err != nil {
		return err
	}

	dir, err := shared.WorkingDir(pwd)
	if err != nil {
		return err
	}
	canon, err := resolver.Canonicalize(dir)
	if err != nil {
		return err
	}

	commands, err := svc.Resolve(canon)
	if err != nil {
		return err
	}

	command, ok := commands[alias]
	if !ok {
		fmt.Fprintf(out, "Command %s does not exist.\n\n", ui.Alias(alias))
		ui.PrintCommands(out, commands)
		return nil
	}

	if printOnly {
		// Raw command, no passthrough arguments appended.
		fmt.Fprintln(out, command)
		return nil
	}

	line := runner.CommandLine(command, passthrough)
	return runner.Run(cmd.Context(), svc.Shell(), line, canon)
}
