package cli

import (
	"errors"

	"github.com/tyemirov/runbook/internal/tasks"
)

const fallbackExitCodeConstant = 1

// ExitCode derives the process exit code from an execution error.
//
// Step failures propagate the failing command's exit code; every other error
// maps to 1. A nil error maps to 0.
func ExitCode(executionError error) int {
	if executionError == nil {
		return 0
	}

	var stepError tasks.StepExecutionError
	if errors.As(executionError, &stepError) && stepError.ExitCode > 0 {
		return stepError.ExitCode
	}

	return fallbackExitCodeConstant
}
