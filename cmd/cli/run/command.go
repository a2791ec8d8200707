// Package run builds the command that executes a registered task.
package run

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/runbook/cmd/cli/tasklist"
	"github.com/tyemirov/runbook/internal/tasks"
	"github.com/tyemirov/runbook/pkg/taskrunner"
)

const (
	commandUseConstant                     = "run <task> [subpackage]"
	commandShortDescriptionConstant        = "Run a registered task"
	commandLongDescriptionConstant         = "run expands the named task into its ordered steps and executes them sequentially, halting at the first failure. An optional subpackage argument scopes the task's steps to that directory. The default task lists registered tasks without executing anything."
	taskFileFlagNameConstant               = "tasks"
	taskFileFlagUsageConstant              = "Path to a standalone task file (YAML) replacing the configured tasks."
	registryProviderMissingMessageConstant = "run command registry provider not configured"
	defaultTaskNameConstant                = "default"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// RegistryProvider yields the active task registry.
type RegistryProvider func() (*tasks.Registry, error)

// CommandBuilder assembles the run command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	RegistryProvider             RegistryProvider
	ProjectRootProvider          func() string
	TaskRunnerFactory            taskrunner.Factory
}

// Build constructs the run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	if builder.RegistryProvider == nil {
		return nil, errors.New(registryProviderMissingMessageConstant)
	}

	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.run,
	}

	command.Flags().String(taskFileFlagNameConstant, "", taskFileFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	requestedTask := tasks.TaskName(strings.TrimSpace(arguments[0]))

	initialDirectory := ""
	if len(arguments) > 1 {
		initialDirectory = strings.TrimSpace(arguments[1])
	}

	registry, registryError := builder.resolveRegistry(command)
	if registryError != nil {
		return registryError
	}

	if string(requestedTask) == defaultTaskNameConstant {
		return tasklist.Render(command.OutOrStdout(), registry)
	}

	dependencies, dependenciesError := taskrunner.BuildDependencies(
		taskrunner.DependenciesConfig{
			LoggerProvider:               builder.resolveLogger,
			HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
			Registry:                     registry,
		},
		taskrunner.DependenciesOptions{Command: command},
	)
	if dependenciesError != nil {
		return dependenciesError
	}

	executor, resolveError := taskrunner.Resolve(builder.TaskRunnerFactory, dependencies)
	if resolveError != nil {
		return resolveError
	}

	_, runError := executor.Run(command.Context(), requestedTask, tasks.RunOptions{
		ProjectRoot:      builder.resolveProjectRoot(),
		InitialDirectory: initialDirectory,
	})
	return runError
}

func (builder *CommandBuilder) resolveRegistry(command *cobra.Command) (*tasks.Registry, error) {
	if command != nil && command.Flags().Changed(taskFileFlagNameConstant) {
		taskFilePath, flagError := command.Flags().GetString(taskFileFlagNameConstant)
		if flagError != nil {
			return nil, flagError
		}

		configuredTasks, loadError := tasks.LoadTaskFile(taskFilePath)
		if loadError != nil {
			return nil, loadError
		}
		return tasks.BuildRegistry(configuredTasks)
	}

	return builder.RegistryProvider()
}

func (builder *CommandBuilder) resolveProjectRoot() string {
	if builder.ProjectRootProvider == nil {
		return ""
	}
	return strings.TrimSpace(builder.ProjectRootProvider())
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
