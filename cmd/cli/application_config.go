package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/tyemirov/runbook/internal/tasks"
)

const (
	taskRegistryBuildErrorTemplateConstant      = "unable to build task registry: %w"
	taskConfigurationReadErrorTemplateConstant  = "unable to read task configuration %s: %w"
	taskConfigurationParseErrorTemplateConstant = "unable to parse task configuration %s: %w"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
//
// Task declarations are intentionally absent: viper lowercases every map key
// in its configuration tree, which would corrupt environment variable names
// on steps. Tasks are decoded from the raw document bytes instead, see
// resolveTaskConfigurations.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
}

// ApplicationCommonConfiguration stores logging and execution defaults shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	ProjectRoot string `mapstructure:"project_root"`
}

func buildTaskRegistry(configuredTasks []tasks.TaskConfiguration) (*tasks.Registry, error) {
	registry, buildError := tasks.BuildRegistry(configuredTasks)
	if buildError != nil {
		return nil, fmt.Errorf(taskRegistryBuildErrorTemplateConstant, buildError)
	}
	return registry, nil
}

// resolveTaskConfigurations decodes the tasks declared by the discovered
// configuration file, falling back to the embedded defaults when the file is
// absent or declares no tasks.
func resolveTaskConfigurations(configurationFilePath string) ([]tasks.TaskConfiguration, error) {
	trimmedFilePath := strings.TrimSpace(configurationFilePath)
	if len(trimmedFilePath) > 0 {
		contentBytes, readError := os.ReadFile(trimmedFilePath)
		if readError != nil {
			return nil, fmt.Errorf(taskConfigurationReadErrorTemplateConstant, trimmedFilePath, readError)
		}

		configuredTasks, parseError := tasks.ParseTaskDocument(contentBytes)
		if parseError != nil {
			return nil, fmt.Errorf(taskConfigurationParseErrorTemplateConstant, trimmedFilePath, parseError)
		}

		if len(configuredTasks) > 0 {
			return configuredTasks, nil
		}
	}

	return loadEmbeddedTaskConfigurations()
}

func loadEmbeddedTaskConfigurations() ([]tasks.TaskConfiguration, error) {
	configurationData, _ := EmbeddedDefaultConfiguration()
	return tasks.ParseTaskDocument(configurationData)
}
