package tests

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const (
	integrationCommandFailureFormatConstant     = "command failed: %v\n%s"
	integrationUnexpectedSuccessMessageConstant = "command succeeded unexpectedly"
	integrationUnexpectedSuccessFormatConstant  = "%s\n%s"
	integrationBinaryFileNameConstant           = "runbook-integration"
	configurationSearchPathEnvironmentName      = "RUNBOOK_CONFIG_SEARCH_PATH"
	environmentAssignmentSeparatorConstant      = "="
	parentDirectoryReferenceConstant            = ".."
)

type integrationCommandOptions struct {
	WorkingDirectory     string
	EnvironmentOverrides map[string]string
}

func resolveRepositoryRoot(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		testInstance.Fatalf(integrationCommandFailureFormatConstant, workingDirectoryError, "")
	}

	return filepath.Join(workingDirectory, parentDirectoryReferenceConstant)
}

func buildIntegrationBinary(testInstance *testing.T) string {
	testInstance.Helper()

	binaryDirectory := testInstance.TempDir()
	binaryPath := filepath.Join(binaryDirectory, integrationBinaryFileNameConstant)

	command := exec.Command("go", "build", "-o", binaryPath, ".")
	command.Dir = resolveRepositoryRoot(testInstance)
	command.Env = os.Environ()

	outputBytes, runError := command.CombinedOutput()
	if runError != nil {
		testInstance.Fatalf(integrationCommandFailureFormatConstant, runError, string(outputBytes))
	}

	return binaryPath
}

func runIntegrationCommand(testInstance *testing.T, binaryPath string, options integrationCommandOptions, arguments []string) string {
	testInstance.Helper()

	outputText, commandError := executeIntegrationCommand(testInstance, binaryPath, options, arguments)
	if commandError != nil {
		testInstance.Fatalf(integrationCommandFailureFormatConstant, commandError, outputText)
	}
	return outputText
}

func runFailingIntegrationCommand(testInstance *testing.T, binaryPath string, options integrationCommandOptions, arguments []string) (string, int) {
	testInstance.Helper()

	outputText, commandError := executeIntegrationCommand(testInstance, binaryPath, options, arguments)
	if commandError == nil {
		testInstance.Fatalf(integrationUnexpectedSuccessFormatConstant, integrationUnexpectedSuccessMessageConstant, outputText)
	}

	exitError, isExitError := commandError.(*exec.ExitError)
	if !isExitError {
		testInstance.Fatalf(integrationCommandFailureFormatConstant, commandError, outputText)
	}

	return outputText, exitError.ExitCode()
}

func executeIntegrationCommand(testInstance *testing.T, binaryPath string, options integrationCommandOptions, arguments []string) (string, error) {
	testInstance.Helper()

	command := exec.Command(binaryPath, arguments...)
	if len(options.WorkingDirectory) > 0 {
		command.Dir = options.WorkingDirectory
	}
	command.Env = buildCommandEnvironment(testInstance, options)

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func buildCommandEnvironment(testInstance *testing.T, options integrationCommandOptions) []string {
	testInstance.Helper()

	environmentValues := make(map[string]string)
	for _, assignment := range os.Environ() {
		separatorIndex := strings.Index(assignment, environmentAssignmentSeparatorConstant)
		if separatorIndex <= 0 {
			continue
		}
		environmentValues[assignment[:separatorIndex]] = assignment[separatorIndex+len(environmentAssignmentSeparatorConstant):]
	}

	if _, exists := options.EnvironmentOverrides[configurationSearchPathEnvironmentName]; !exists {
		environmentValues[configurationSearchPathEnvironmentName] = testInstance.TempDir()
	}

	for variableName, variableValue := range options.EnvironmentOverrides {
		environmentValues[variableName] = variableValue
	}

	environmentNames := make([]string, 0, len(environmentValues))
	for variableName := range environmentValues {
		environmentNames = append(environmentNames, variableName)
	}
	sort.Strings(environmentNames)

	mergedEnvironment := make([]string, 0, len(environmentNames))
	for _, variableName := range environmentNames {
		mergedEnvironment = append(mergedEnvironment, variableName+environmentAssignmentSeparatorConstant+environmentValues[variableName])
	}

	return mergedEnvironment
}
