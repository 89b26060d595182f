package main

import (
	"errors"
	"fmt"
	"os"

	"herdscore/internal/services"
)

// Exit codes distinguish caller mistakes (bad image, unknown animal) from
// operational failures, so shell wrappers around the CLI can retry the
// latter without re-prompting the user.
const (
	exitFailure  = 1
	exitInput    = 2
	exitNotFound = 3
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		switch {
		case errors.Is(err, services.ErrInput):
			os.Exit(exitInput)
		case errors.Is(err, services.ErrNotFound):
			os.Exit(exitNotFound)
		}
		os.Exit(exitFailure)
	}
}
