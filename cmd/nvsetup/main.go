// Package main is the entry point for the nvsetup CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thoreinstein/nvsetup/cmd/nvsetup/commands"
	"github.com/thoreinstein/nvsetup/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Execute(ctx)
	stop()

	if err != nil {
		exitErr := errors.Resolve(err)
		commands.PrintError(os.Stderr, exitErr)
		os.Exit(exitErr.Code)
	}
}
