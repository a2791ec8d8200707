package tasks

import (
	"errors"
	"fmt"
	"strings"
)

const (
	configurationTaskNameMissingMessageConstant = "task configuration missing name"
	configurationStepShapeErrorTemplateConstant = "task %q step %d must define exactly one of run or task"
	configurationStepEnvironmentErrorTemplate   = "task %q step %d sets environment variables without a run command"
	configurationRunEntriesMessageTemplate      = "task %q step %d run entries must be strings"
	configurationRunTypeMessageTemplate         = "task %q step %d run must be a string or list of strings"
	configurationRunEmptyMessageTemplate        = "task %q step %d run command is empty"
	configurationBuildErrorTemplateConstant     = "unable to register task %q: %w"
)

// TaskConfiguration describes one task as declared in configuration.
type TaskConfiguration struct {
	Name        string              `mapstructure:"name" yaml:"name"`
	Description string              `mapstructure:"description" yaml:"description"`
	Steps       []StepConfiguration `mapstructure:"steps" yaml:"steps"`
}

// StepConfiguration captures one declared element: either a run command or a task reference.
type StepConfiguration struct {
	Run         any               `mapstructure:"run" yaml:"run"`
	Task        string            `mapstructure:"task" yaml:"task"`
	Directory   string            `mapstructure:"directory" yaml:"directory"`
	Environment map[string]string `mapstructure:"environment" yaml:"environment"`
}

// BuildRegistry decodes the configured tasks into a validated registry.
//
// Reference validation (unknown names, cycles) runs after registration so the
// configuration is rejected before any step can execute.
func BuildRegistry(configuredTasks []TaskConfiguration) (*Registry, error) {
	registry := NewRegistry()

	for taskIndex := range configuredTasks {
		definition, definitionError := buildDefinition(configuredTasks[taskIndex])
		if definitionError != nil {
			return nil, definitionError
		}
		if registrationError := registry.Register(definition); registrationError != nil {
			return nil, fmt.Errorf(configurationBuildErrorTemplateConstant, definition.Name, registrationError)
		}
	}

	if validationError := ValidateReferences(registry); validationError != nil {
		return nil, validationError
	}

	return registry, nil
}

func buildDefinition(configuredTask TaskConfiguration) (TaskDefinition, error) {
	trimmedName := strings.TrimSpace(configuredTask.Name)
	if len(trimmedName) == 0 {
		return TaskDefinition{}, errors.New(configurationTaskNameMissingMessageConstant)
	}

	definition := TaskDefinition{
		Name:        TaskName(trimmedName),
		Description: strings.TrimSpace(configuredTask.Description),
		Elements:    make([]TaskElement, 0, len(configuredTask.Steps)),
	}

	for stepIndex := range configuredTask.Steps {
		configuredStep := configuredTask.Steps[stepIndex]
		referencedTask := strings.TrimSpace(configuredStep.Task)
		hasRun := configuredStep.Run != nil
		hasReference := len(referencedTask) > 0

		if hasRun == hasReference {
			return TaskDefinition{}, fmt.Errorf(configurationStepShapeErrorTemplateConstant, trimmedName, stepIndex+1)
		}

		if hasReference {
			if len(configuredStep.Environment) > 0 {
				return TaskDefinition{}, fmt.Errorf(configurationStepEnvironmentErrorTemplate, trimmedName, stepIndex+1)
			}
			definition.Elements = append(definition.Elements, TaskElement{
				Reference: &TaskReference{
					Task:      TaskName(referencedTask),
					Directory: strings.TrimSpace(configuredStep.Directory),
				},
			})
			continue
		}

		commandWords, parseError := parseRunCommand(configuredStep.Run, trimmedName, stepIndex)
		if parseError != nil {
			return TaskDefinition{}, parseError
		}

		definition.Elements = append(definition.Elements, TaskElement{
			Step: &StepDefinition{
				Command:              commandWords[0],
				Arguments:            commandWords[1:],
				Directory:            strings.TrimSpace(configuredStep.Directory),
				EnvironmentVariables: configuredStep.Environment,
			},
		})
	}

	return definition, nil
}

func parseRunCommand(raw any, taskName string, stepIndex int) ([]string, error) {
	var commandWords []string

	switch typed := raw.(type) {
	case string:
		commandWords = sanitizeCommandWords(strings.Fields(typed))
	case []string:
		commandWords = sanitizeCommandWords(typed)
	case []any:
		values := make([]string, 0, len(typed))
		for entryIndex := range typed {
			value, ok := typed[entryIndex].(string)
			if !ok {
				return nil, fmt.Errorf(configurationRunEntriesMessageTemplate, taskName, stepIndex+1)
			}
			values = append(values, value)
		}
		commandWords = sanitizeCommandWords(values)
	default:
		return nil, fmt.Errorf(configurationRunTypeMessageTemplate, taskName, stepIndex+1)
	}

	if len(commandWords) == 0 {
		return nil, fmt.Errorf(configurationRunEmptyMessageTemplate, taskName, stepIndex+1)
	}
	return commandWords, nil
}

func sanitizeCommandWords(words []string) []string {
	sanitized := make([]string, 0, len(words))
	for wordIndex := range words {
		word := strings.TrimSpace(words[wordIndex])
		if word == "" {
			continue
		}
		sanitized = append(sanitized, word)
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}
