package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultDeps())
	stop()
	os.Exit(code)
}

// runMain parses args, runs the generator and returns the exit code.
func runMain(ctx context.Context, args []string, deps *Dependencies) int {
	flags, positional, err := parseFlags(args, deps.Stderr)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\nRun 'md2slides --help' for usage.\n", err)
		return ExitUsage
	}

	switch {
	case flags.help:
		printUsage(deps.Stdout)
		return ExitSuccess
	case flags.version:
		fmt.Fprintf(deps.Stdout, "md2slides %s\n", Version)
		return ExitSuccess
	}

	logger := newLogger(deps.Stderr, flags.output)
	if err := run(ctx, flags, positional, deps, logger); err != nil {
		fmt.Fprintln(deps.Stderr, formatError(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
