package execshell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// OSCommandRunner executes shell commands against the host operating system.
type OSCommandRunner struct {
	standardOutput io.Writer
	standardError  io.Writer
}

// NewOSCommandRunner constructs a runner that forwards command output to the process streams.
func NewOSCommandRunner() OSCommandRunner {
	return OSCommandRunner{standardOutput: os.Stdout, standardError: os.Stderr}
}

// NewOSCommandRunnerWithStreams constructs a runner forwarding output to the provided writers.
func NewOSCommandRunnerWithStreams(standardOutput io.Writer, standardError io.Writer) OSCommandRunner {
	return OSCommandRunner{standardOutput: standardOutput, standardError: standardError}
}

// Run executes the command, streaming output while capturing it for reporting.
func (runner OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executableCommand := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executableCommand.Dir = command.Details.WorkingDirectory
	executableCommand.Env = overlayEnvironment(os.Environ(), command.Details.EnvironmentVariables)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executableCommand.Stdout = teeWriter(&standardOutputBuffer, runner.standardOutput)
	executableCommand.Stderr = teeWriter(&standardErrorBuffer, runner.standardError)

	runError := executableCommand.Run()

	executionResult := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}

	if runError != nil {
		var exitError *exec.ExitError
		if errors.As(runError, &exitError) {
			executionResult.ExitCode = exitError.ExitCode()
			if executionResult.ExitCode < 0 {
				// Signal termination reports -1; normalize so callers observe a failing status.
				executionResult.ExitCode = 1
			}
			return executionResult, nil
		}
		return ExecutionResult{}, runError
	}

	executionResult.ExitCode = 0
	return executionResult, nil
}

func teeWriter(capture io.Writer, passthrough io.Writer) io.Writer {
	if passthrough == nil {
		return capture
	}
	return io.MultiWriter(capture, passthrough)
}

func overlayEnvironment(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	merged := make([]string, len(base), len(base)+len(overrides))
	copy(merged, base)
	for key, value := range overrides {
		merged = append(merged, key+"="+value)
	}
	return merged
}
