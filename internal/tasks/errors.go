package tasks

import (
	"errors"
	"fmt"
	"strings"
)

const (
	taskNameMissingMessageConstant             = "task name not provided"
	registryNotConfiguredMessageConstant       = "task registry not configured"
	shellExecutorNotConfiguredMessageConstant  = "task executor shell executor not configured"
	duplicateTaskErrorTemplateConstant         = "task %q is already registered"
	unknownTaskErrorTemplateConstant           = "unknown task %q"
	unknownTaskReferenceErrorTemplateConstant  = "task %q references unknown task %q"
	cyclicDependencyErrorTemplateConstant      = "task reference cycle: %s"
	cyclicDependencyCycleSeparatorConstant     = " -> "
	stepExecutionErrorTemplateConstant         = "task %q step %d (%s) failed with exit code %d"
	workingDirectoryErrorTemplateConstant      = "task %q working directory %q is not usable: %v"
	workingDirectoryNotADirectoryErrorConstant = "not a directory"
)

var (
	// ErrTaskNameMissing indicates a definition without a name was registered or requested.
	ErrTaskNameMissing = errors.New(taskNameMissingMessageConstant)
	// ErrRegistryNotConfigured indicates the registry dependency was missing.
	ErrRegistryNotConfigured = errors.New(registryNotConfiguredMessageConstant)
	// ErrShellExecutorNotConfigured indicates the shell executor dependency was missing.
	ErrShellExecutorNotConfigured = errors.New(shellExecutorNotConfiguredMessageConstant)
)

// DuplicateTaskError reports a registration against an already used task name.
type DuplicateTaskError struct {
	Task TaskName
}

// Error implements the error interface.
func (duplicateError DuplicateTaskError) Error() string {
	return fmt.Sprintf(duplicateTaskErrorTemplateConstant, string(duplicateError.Task))
}

// UnknownTaskError reports a lookup or reference against an unregistered task name.
type UnknownTaskError struct {
	Task TaskName
	// ReferencedBy names the task whose element produced the failing reference.
	// It is empty for top-level lookups.
	ReferencedBy TaskName
}

// Error implements the error interface.
func (unknownError UnknownTaskError) Error() string {
	if len(unknownError.ReferencedBy) > 0 {
		return fmt.Sprintf(unknownTaskReferenceErrorTemplateConstant, string(unknownError.ReferencedBy), string(unknownError.Task))
	}
	return fmt.Sprintf(unknownTaskErrorTemplateConstant, string(unknownError.Task))
}

// CyclicDependencyError reports a task that transitively references itself.
type CyclicDependencyError struct {
	Cycle []TaskName
}

// Error implements the error interface.
func (cycleError CyclicDependencyError) Error() string {
	names := make([]string, 0, len(cycleError.Cycle))
	for _, cycleEntry := range cycleError.Cycle {
		names = append(names, string(cycleEntry))
	}
	return fmt.Sprintf(cyclicDependencyErrorTemplateConstant, strings.Join(names, cyclicDependencyCycleSeparatorConstant))
}

// StepExecutionError reports the first failing step of an execution plan.
type StepExecutionError struct {
	Step      PlannedStep
	StepIndex int
	ExitCode  int
	Cause     error
}

// Error implements the error interface.
func (stepError StepExecutionError) Error() string {
	return fmt.Sprintf(
		stepExecutionErrorTemplateConstant,
		string(stepError.Step.Task),
		stepError.StepIndex+1,
		stepError.Step.Step.Command,
		stepError.ExitCode,
	)
}

// Unwrap exposes the underlying execution failure.
func (stepError StepExecutionError) Unwrap() error {
	return stepError.Cause
}

// WorkingDirectoryResolutionError reports a step directory that does not resolve to an existing directory.
type WorkingDirectoryResolutionError struct {
	Task      TaskName
	Directory string
	Cause     error
}

// Error implements the error interface.
func (directoryError WorkingDirectoryResolutionError) Error() string {
	cause := directoryError.Cause
	if cause == nil {
		cause = errors.New(workingDirectoryNotADirectoryErrorConstant)
	}
	return fmt.Sprintf(workingDirectoryErrorTemplateConstant, string(directoryError.Task), directoryError.Directory, cause)
}

// Unwrap exposes the underlying filesystem failure.
func (directoryError WorkingDirectoryResolutionError) Unwrap() error {
	return directoryError.Cause
}
