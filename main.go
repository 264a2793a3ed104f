package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"

	"github.com/carvetools/appcarve/internal/cmd"
)

func main() {
	// Interrupt requests a graceful drain: the scanner stops discovering,
	// workers finish their current directory, and the archive is finalized.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := fang.Execute(ctx, cmd.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
