package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/taskpilot/taskpilot/internal/taskerr"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Command completed
	ExitBadRequest = 1 // Invalid input from the user
	ExitError      = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var validationErr *taskerr.ValidationError
		if errors.As(err, &validationErr) {
			os.Exit(ExitBadRequest)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
