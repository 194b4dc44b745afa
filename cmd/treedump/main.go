package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/treedump/internal/cli"
	tderrors "github.com/matzehuels/treedump/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		os.Exit(130) // shell convention for SIGINT
	}
	cli.ReportError(os.Stderr, err)
	os.Exit(exitCode(err))
}

// exitCode is 2 for usage mistakes and 1 for everything else.
func exitCode(err error) int {
	switch tderrors.GetCode(err) {
	case tderrors.ErrCodeInvalidInput, tderrors.ErrCodeInvalidFormat, tderrors.ErrCodeInvalidPath:
		return 2
	}
	return 1
}
