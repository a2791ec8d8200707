package taskrunner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tyemirov/runbook/internal/tasks"
)

func TestBuildDependenciesRequiresRegistry(testInstance *testing.T) {
	_, buildError := BuildDependencies(DependenciesConfig{}, DependenciesOptions{})
	require.ErrorIs(testInstance, buildError, tasks.ErrRegistryNotConfigured)
}

func TestBuildDependenciesResolvesDefaults(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}

	dependencies, buildError := BuildDependencies(
		DependenciesConfig{Registry: singleStepRegistry(testInstance)},
		DependenciesOptions{Output: outputBuffer, Errors: errorBuffer},
	)
	require.NoError(testInstance, buildError)
	require.NotNil(testInstance, dependencies.Logger)
	require.NotNil(testInstance, dependencies.StepRunner)
	require.Same(testInstance, outputBuffer, dependencies.Output.(*bytes.Buffer))
	require.Same(testInstance, errorBuffer, dependencies.Errors.(*bytes.Buffer))
	require.False(testInstance, dependencies.HumanReadableLogging)
}

func TestBuildDependenciesKeepsProvidedCollaborators(testInstance *testing.T) {
	logger := zap.NewNop()
	stepRunner := successfulStepRunner{}

	dependencies, buildError := BuildDependencies(
		DependenciesConfig{
			LoggerProvider:               func() *zap.Logger { return logger },
			HumanReadableLoggingProvider: func() bool { return true },
			Registry:                     singleStepRegistry(testInstance),
			StepRunner:                   stepRunner,
		},
		DependenciesOptions{Output: &bytes.Buffer{}, Errors: &bytes.Buffer{}},
	)
	require.NoError(testInstance, buildError)
	require.Same(testInstance, logger, dependencies.Logger)
	require.Equal(testInstance, stepRunner, dependencies.StepRunner)
	require.True(testInstance, dependencies.HumanReadableLogging)
}

func TestRenderSummaryLineOmitsUnnamedRuns(testInstance *testing.T) {
	require.Empty(testInstance, RenderSummaryLine(tasks.RunOutcome{}, nil, 0))
}
