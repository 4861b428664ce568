package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/jsonscope/internal/cli"
	jserrors "github.com/matzehuels/jsonscope/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // SIGINT
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps input problems to 2 and everything else to 1.
func exitCode(err error) int {
	switch jserrors.GetCode(err) {
	case jserrors.ErrCodeParse, jserrors.ErrCodeQuery, jserrors.ErrCodeInvalidInput,
		jserrors.ErrCodeInvalidPath, jserrors.ErrCodeInvalidFormat, jserrors.ErrCodeInvalidSearch,
		jserrors.ErrCodeTooLarge, jserrors.ErrCodeFileNotFound:
		return 2
	}
	return 1
}
