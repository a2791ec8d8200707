package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tyemirov/runbook/internal/execshell"
)

const (
	taskStartMessageConstant       = "task execution starting"
	taskCompletedMessageConstant   = "task execution completed"
	taskFieldNameConstant          = "task"
	planSizeFieldNameConstant      = "planned_steps"
	executedStepsFieldNameConstant = "executed_steps"
)

// RunOptions configures one executor run.
type RunOptions struct {
	// ProjectRoot anchors relative step directories. Defaults to the current directory.
	ProjectRoot string
	// InitialDirectory seeds the directory scope of the requested task,
	// carrying a positional subpackage argument into the expansion.
	InitialDirectory string
}

// RunOutcome summarizes a completed or halted plan execution.
type RunOutcome struct {
	Task              TaskName
	PlannedStepCount  int
	ExecutedStepCount int
}

// StepRunner executes a single resolved shell command.
type StepRunner interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// Executor expands task definitions and runs the resulting plan sequentially.
type Executor struct {
	registry      *Registry
	shellExecutor StepRunner
	logger        *zap.Logger
}

// NewExecutor constructs an Executor over the provided registry and shell executor.
func NewExecutor(registry *Registry, shellExecutor StepRunner, logger *zap.Logger) (*Executor, error) {
	if registry == nil {
		return nil, ErrRegistryNotConfigured
	}
	if shellExecutor == nil {
		return nil, ErrShellExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		registry:      registry,
		shellExecutor: shellExecutor,
		logger:        logger,
	}, nil
}

// Run expands the named task and executes its plan in order, halting at the first failure.
//
// Steps run strictly sequentially; each step's working directory applies to
// that invocation only and is never carried into subsequent steps. Context
// cancellation terminates the running step's process and surfaces as a
// StepExecutionError.
func (executor *Executor) Run(executionContext context.Context, name TaskName, options RunOptions) (RunOutcome, error) {
	plannedSteps, planError := BuildExecutionPlan(executor.registry, name, options.InitialDirectory)
	if planError != nil {
		return RunOutcome{Task: name}, planError
	}

	outcome := RunOutcome{Task: name, PlannedStepCount: len(plannedSteps)}

	executor.logger.Info(taskStartMessageConstant,
		zap.String(taskFieldNameConstant, string(name)),
		zap.Int(planSizeFieldNameConstant, len(plannedSteps)),
	)

	for stepIndex := range plannedSteps {
		plannedStep := plannedSteps[stepIndex]

		workingDirectory, directoryError := resolveWorkingDirectory(options.ProjectRoot, plannedStep)
		if directoryError != nil {
			return outcome, directoryError
		}

		command := execshell.ShellCommand{
			Name: execshell.CommandName(plannedStep.Step.Command),
			Details: execshell.CommandDetails{
				Arguments:            plannedStep.Step.Arguments,
				WorkingDirectory:     workingDirectory,
				EnvironmentVariables: plannedStep.Step.EnvironmentVariables,
			},
		}

		_, executionError := executor.shellExecutor.Execute(executionContext, command)
		outcome.ExecutedStepCount++
		if executionError != nil {
			return outcome, StepExecutionError{
				Step:      plannedStep,
				StepIndex: stepIndex,
				ExitCode:  resolveExitCode(executionError),
				Cause:     executionError,
			}
		}
	}

	executor.logger.Info(taskCompletedMessageConstant,
		zap.String(taskFieldNameConstant, string(name)),
		zap.Int(executedStepsFieldNameConstant, outcome.ExecutedStepCount),
	)
	return outcome, nil
}

func resolveWorkingDirectory(projectRoot string, plannedStep PlannedStep) (string, error) {
	resolvedRoot := strings.TrimSpace(projectRoot)
	if len(resolvedRoot) == 0 {
		resolvedRoot = "."
	}

	stepDirectory := strings.TrimSpace(plannedStep.Step.Directory)
	if len(stepDirectory) == 0 {
		return resolvedRoot, nil
	}

	resolvedDirectory := stepDirectory
	if !filepath.IsAbs(resolvedDirectory) {
		resolvedDirectory = filepath.Join(resolvedRoot, resolvedDirectory)
	}

	directoryInformation, statError := os.Stat(resolvedDirectory)
	if statError != nil {
		return "", WorkingDirectoryResolutionError{
			Task:      plannedStep.Task,
			Directory: resolvedDirectory,
			Cause:     statError,
		}
	}
	if !directoryInformation.IsDir() {
		return "", WorkingDirectoryResolutionError{
			Task:      plannedStep.Task,
			Directory: resolvedDirectory,
		}
	}

	return resolvedDirectory, nil
}

func resolveExitCode(executionError error) int {
	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) {
		return commandFailure.Result.ExitCode
	}
	return 1
}
