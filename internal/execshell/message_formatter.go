package execshell

import (
	"fmt"
	"strings"
)

const (
	startedMessageTemplateConstant          = "Running %s"
	successMessageTemplateConstant          = "Completed %s"
	failureMessageTemplateConstant          = "%s failed with exit code %d"
	executionFailureMessageTemplateConstant = "%s failed: %v"
	directorySuffixTemplateConstant         = "%s (in %s)"
	failureDetailTemplateConstant           = "%s: %s"
)

// CommandMessageFormatter renders human-readable command lifecycle messages.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command that is about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return fmt.Sprintf(startedMessageTemplateConstant, formatter.describeCommand(command))
}

// BuildSuccessMessage describes a command that exited successfully.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return fmt.Sprintf(successMessageTemplateConstant, formatter.describeCommand(command))
}

// BuildFailureMessage describes a command that exited with a non-zero code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	message := fmt.Sprintf(failureMessageTemplateConstant, formatter.describeCommand(command), result.ExitCode)
	detail := strings.TrimSpace(result.StandardError)
	if len(detail) == 0 {
		detail = strings.TrimSpace(result.StandardOutput)
	}
	if len(detail) > 0 {
		message = fmt.Sprintf(failureDetailTemplateConstant, message, firstLine(detail))
	}
	return message
}

// BuildExecutionFailureMessage describes a command the runner could not execute.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, cause error) string {
	return fmt.Sprintf(executionFailureMessageTemplateConstant, formatter.describeCommand(command), cause)
}

func (formatter CommandMessageFormatter) describeCommand(command ShellCommand) string {
	description := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		description = description + " " + strings.Join(command.Details.Arguments, " ")
	}
	workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(workingDirectory) > 0 {
		description = fmt.Sprintf(directorySuffixTemplateConstant, description, workingDirectory)
	}
	return description
}

func firstLine(text string) string {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 0 {
			return trimmed
		}
	}
	return ""
}
