package main

import (
	"errors"
	"fmt"
	"os"
)

// errNoAction marks invocations that never reached a real subcommand; they
// exit with the usage status instead of the generic failure status.
var errNoAction = errors.New("no action specified")

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errNoAction) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, errNoAction) {
		return 2
	}
	return 1
}
