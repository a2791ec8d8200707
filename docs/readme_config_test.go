package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tyemirov/runbook/internal/tasks"
)

const (
	documentationFileNameConstant    = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	unexpectedTaskMessageTemplate    = "unexpected task %s"
	duplicateTaskMessageTemplate     = "duplicate task %s"
)

var expectedReadmeTaskNames = map[string]struct{}{
	"lint":          {},
	"lint-subcrate": {},
	"test":          {},
	"check-pr":      {},
}

type readmeApplicationConfiguration struct {
	Tasks []tasks.TaskConfiguration `yaml:"tasks"`
}

func TestReadmeConfigurationExampleParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	documentationPath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, documentationFileNameConstant)
	contentBytes, readError := os.ReadFile(documentationPath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	var configuration readmeApplicationConfiguration
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippetContent), &configuration))

	registry, buildError := tasks.BuildRegistry(configuration.Tasks)
	require.NoError(testInstance, buildError)

	seenTaskNames := make(map[string]struct{}, len(configuration.Tasks))
	for _, definition := range registry.List() {
		taskName := string(definition.Name)
		_, expected := expectedReadmeTaskNames[taskName]
		require.True(testInstance, expected, unexpectedTaskMessageTemplate, taskName)

		_, duplicated := seenTaskNames[taskName]
		require.False(testInstance, duplicated, duplicateTaskMessageTemplate, taskName)
		seenTaskNames[taskName] = struct{}{}
	}

	require.Len(testInstance, seenTaskNames, len(expectedReadmeTaskNames))
}
