package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/calcrst/cli"
	"github.com/ardnew/calcrst/log"
)

// exitMissing is the exit code when a required file or folder is missing.
const exitMissing = 2

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()

		if errors.Is(err, cli.ErrMissingResource) {
			os.Exit(exitMissing)
		}

		os.Exit(1)
	}
}
