package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	rootcmd "github.com/go-ports/taco/cmd/taco/root"
	"github.com/go-ports/taco/internal/runner"
)

func main() {
	if err := run(); err != nil {
		// A child process's exit code is a normal result: propagate it
		// silently, its output already went to the inherited stdio.
		var exit *runner.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return rootcmd.New().ExecuteContext(ctx)
}
