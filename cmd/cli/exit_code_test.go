package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/runbook/cmd/cli"
	"github.com/tyemirov/runbook/internal/tasks"
)

const (
	exitCodeSuccessCaseNameConstant        = "NilError"
	exitCodeStepFailureCaseNameConstant    = "StepFailureExitCode"
	exitCodeWrappedFailureCaseNameConstant = "WrappedStepFailure"
	exitCodeSignalFailureCaseNameConstant  = "StepFailureWithoutExitCode"
	exitCodeGenericFailureCaseNameConstant = "GenericError"
	exitCodeGenericFailureMessageConstant  = "configuration invalid"
	exitCodeWrapTemplateConstant           = "task halted: %w"
)

func TestExitCode(testInstance *testing.T) {
	testCases := []struct {
		name             string
		executionError   error
		expectedExitCode int
	}{
		{
			name:             exitCodeSuccessCaseNameConstant,
			executionError:   nil,
			expectedExitCode: 0,
		},
		{
			name:             exitCodeStepFailureCaseNameConstant,
			executionError:   tasks.StepExecutionError{ExitCode: 101},
			expectedExitCode: 101,
		},
		{
			name:             exitCodeWrappedFailureCaseNameConstant,
			executionError:   fmt.Errorf(exitCodeWrapTemplateConstant, tasks.StepExecutionError{ExitCode: 2}),
			expectedExitCode: 2,
		},
		{
			name:             exitCodeSignalFailureCaseNameConstant,
			executionError:   tasks.StepExecutionError{ExitCode: -1},
			expectedExitCode: 1,
		},
		{
			name:             exitCodeGenericFailureCaseNameConstant,
			executionError:   errors.New(exitCodeGenericFailureMessageConstant),
			expectedExitCode: 1,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedExitCode, cli.ExitCode(testCase.executionError))
		})
	}
}
