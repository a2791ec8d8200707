package tasks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/runbook/internal/tasks"
)

const (
	testLintTaskNameConstant          = "lint"
	testTestTaskNameConstant          = "test"
	testCheckTaskNameConstant         = "check-pr"
	testLintDescriptionConstant       = "Check formatting and lint every subpackage"
	testFormatCommandNameConstant     = "cargo"
	testMissingTaskNameConstant       = "release"
	testEmptyNameCaseNameConstant     = "empty_name"
	testRoundTripCaseNameConstant     = "round_trip"
	testUnknownLookupCaseConstant     = "unknown_lookup"
	testDuplicateRegisterCaseConstant = "duplicate_registration"
)

func lintDefinitionFixture() tasks.TaskDefinition {
	return tasks.TaskDefinition{
		Name:        testLintTaskNameConstant,
		Description: testLintDescriptionConstant,
		Elements: []tasks.TaskElement{
			{
				Step: &tasks.StepDefinition{
					Command:   testFormatCommandNameConstant,
					Arguments: []string{"fmt", "--all", "--", "--check"},
				},
			},
		},
	}
}

func TestRegistryRoundTrip(testInstance *testing.T) {
	testInstance.Run(testRoundTripCaseNameConstant, func(testInstance *testing.T) {
		registry := tasks.NewRegistry()
		registeredDefinition := lintDefinitionFixture()
		require.NoError(testInstance, registry.Register(registeredDefinition))

		resolvedDefinition, lookupError := registry.Lookup(testLintTaskNameConstant)
		require.NoError(testInstance, lookupError)
		require.Equal(testInstance, registeredDefinition, resolvedDefinition)
	})
}

func TestRegistryRejectsEmptyNames(testInstance *testing.T) {
	testInstance.Run(testEmptyNameCaseNameConstant, func(testInstance *testing.T) {
		registry := tasks.NewRegistry()
		registrationError := registry.Register(tasks.TaskDefinition{Name: "   "})
		require.ErrorIs(testInstance, registrationError, tasks.ErrTaskNameMissing)

		_, lookupError := registry.Lookup("")
		require.ErrorIs(testInstance, lookupError, tasks.ErrTaskNameMissing)
	})
}

func TestRegistryLookupUnknownTask(testInstance *testing.T) {
	testInstance.Run(testUnknownLookupCaseConstant, func(testInstance *testing.T) {
		registry := tasks.NewRegistry()
		require.NoError(testInstance, registry.Register(lintDefinitionFixture()))

		_, lookupError := registry.Lookup(testMissingTaskNameConstant)
		require.Error(testInstance, lookupError)

		var unknownError tasks.UnknownTaskError
		require.ErrorAs(testInstance, lookupError, &unknownError)
		require.Equal(testInstance, tasks.TaskName(testMissingTaskNameConstant), unknownError.Task)
		require.Empty(testInstance, unknownError.ReferencedBy)
	})
}

func TestRegistryRejectsDuplicateRegistration(testInstance *testing.T) {
	testInstance.Run(testDuplicateRegisterCaseConstant, func(testInstance *testing.T) {
		registry := tasks.NewRegistry()
		originalDefinition := lintDefinitionFixture()
		require.NoError(testInstance, registry.Register(originalDefinition))

		conflictingDefinition := lintDefinitionFixture()
		conflictingDefinition.Description = "replacement attempt"
		registrationError := registry.Register(conflictingDefinition)

		var duplicateError tasks.DuplicateTaskError
		require.ErrorAs(testInstance, registrationError, &duplicateError)
		require.Equal(testInstance, tasks.TaskName(testLintTaskNameConstant), duplicateError.Task)

		resolvedDefinition, lookupError := registry.Lookup(testLintTaskNameConstant)
		require.NoError(testInstance, lookupError)
		require.Equal(testInstance, originalDefinition, resolvedDefinition)
		require.Len(testInstance, registry.List(), 1)
	})
}

func TestRegistryListPreservesRegistrationOrder(testInstance *testing.T) {
	registry := tasks.NewRegistry()
	registeredNames := []tasks.TaskName{testLintTaskNameConstant, testTestTaskNameConstant, testCheckTaskNameConstant}
	for _, registeredName := range registeredNames {
		require.NoError(testInstance, registry.Register(tasks.TaskDefinition{Name: registeredName}))
	}

	listedDefinitions := registry.List()
	require.Len(testInstance, listedDefinitions, len(registeredNames))
	for listIndex := range listedDefinitions {
		require.Equal(testInstance, registeredNames[listIndex], listedDefinitions[listIndex].Name)
	}
}
