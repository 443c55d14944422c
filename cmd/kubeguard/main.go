package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gzhole/kubeguard/internal/cli"
	"github.com/gzhole/kubeguard/internal/runner"
)

func main() {
	err := cli.Execute(context.Background(), os.Args[1:])
	if err == nil {
		return
	}

	// kubectl already reported its own failure.
	var exitErr *runner.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "kubeguard: %v\n", err)
	}
	os.Exit(runner.ExitCode(err))
}
