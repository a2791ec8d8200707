package taskrunner

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/runbook/internal/execshell"
	"github.com/tyemirov/runbook/internal/tasks"
)

const (
	shellExecutorResolutionErrorTemplateConstant = "taskrunner.dependencies.shell_executor: %w"
	registryMissingErrorTemplateConstant         = "taskrunner.dependencies.registry: %w"
	executorConstructionErrorTemplateConstant    = "taskrunner.dependencies.executor: %w"
)

// DependenciesConfig captures providers required to build task execution dependencies.
type DependenciesConfig struct {
	LoggerProvider               func() *zap.Logger
	HumanReadableLoggingProvider func() bool
	Registry                     *tasks.Registry
	StepRunner                   tasks.StepRunner
}

// DependenciesOptions allows per-command overrides when resolving dependencies.
type DependenciesOptions struct {
	Command *cobra.Command
	Output  io.Writer
	Errors  io.Writer
}

// Dependencies bundles the resolved collaborators for task execution.
type Dependencies struct {
	Logger               *zap.Logger
	Registry             *tasks.Registry
	StepRunner           tasks.StepRunner
	Output               io.Writer
	Errors               io.Writer
	HumanReadableLogging bool
}

// BuildDependencies resolves the logger, shell executor, and output writers for task execution.
func BuildDependencies(config DependenciesConfig, options DependenciesOptions) (Dependencies, error) {
	logger := resolveLogger(config.LoggerProvider)
	humanReadable := false
	if config.HumanReadableLoggingProvider != nil {
		humanReadable = config.HumanReadableLoggingProvider()
	}

	if config.Registry == nil {
		return Dependencies{}, fmt.Errorf(registryMissingErrorTemplateConstant, tasks.ErrRegistryNotConfigured)
	}

	stepRunner := config.StepRunner
	if stepRunner == nil {
		outputWriter := resolveWriter(options.Output, options.Command, true)
		errorWriter := resolveWriter(options.Errors, options.Command, false)
		shellExecutor, executorError := execshell.NewShellExecutor(
			logger,
			execshell.NewOSCommandRunnerWithStreams(outputWriter, errorWriter),
			humanReadable,
		)
		if executorError != nil {
			return Dependencies{}, fmt.Errorf(shellExecutorResolutionErrorTemplateConstant, executorError)
		}
		stepRunner = shellExecutor
	}

	return Dependencies{
		Logger:               logger,
		Registry:             config.Registry,
		StepRunner:           stepRunner,
		Output:               resolveWriter(options.Output, options.Command, true),
		Errors:               resolveWriter(options.Errors, options.Command, false),
		HumanReadableLogging: humanReadable,
	}, nil
}

func resolveLogger(provider func() *zap.Logger) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveWriter(provided io.Writer, command *cobra.Command, useStdout bool) io.Writer {
	if provided != nil {
		return provided
	}
	if command != nil {
		if useStdout {
			if writer := command.OutOrStdout(); writer != nil && writer != io.Discard {
				return writer
			}
		} else {
			if writer := command.ErrOrStderr(); writer != nil && writer != io.Discard {
				return writer
			}
		}
	}
	if useStdout {
		return os.Stdout
	}
	return os.Stderr
}
