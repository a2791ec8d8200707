package tasks

import (
	"errors"
	"fmt"
	"os"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

const (
	taskFileLoadErrorTemplateConstant    = "failed to load task file: %w"
	taskFilePathRequiredMessageConstant  = "task file path must be provided"
	taskFileParseErrorTemplateConstant   = "failed to parse task file: %w"
	taskFileDecodeErrorTemplateConstant  = "failed to decode task file: %w"
	taskFileEmptyTasksMessageConstant    = "task file must define at least one task"
	taskFileTasksSequenceMessageConstant = "tasks block must be defined as a sequence"
	taskFileDecoderTagNameConstant       = "mapstructure"
)

type taskFile struct {
	Tasks []map[string]any `yaml:"tasks"`
}

// LoadTaskFile reads task declarations from a standalone YAML file.
func LoadTaskFile(filePath string) ([]TaskConfiguration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return nil, errors.New(taskFilePathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(taskFileLoadErrorTemplateConstant, readError)
	}

	configuredTasks, parseError := ParseTaskDocument(contentBytes)
	if parseError != nil {
		return nil, parseError
	}

	if len(configuredTasks) == 0 {
		return nil, errors.New(taskFileEmptyTasksMessageConstant)
	}

	return configuredTasks, nil
}

// ParseTaskDocument decodes the tasks block of a configuration document.
//
// The document is parsed with yaml.v3 and decoded per task through
// mapstructure, so map keys — environment variable names in particular —
// keep their original casing. A document without a tasks block yields an
// empty slice.
func ParseTaskDocument(contentBytes []byte) ([]TaskConfiguration, error) {
	if sequenceError := ensureTasksSequence(contentBytes); sequenceError != nil {
		return nil, fmt.Errorf(taskFileParseErrorTemplateConstant, sequenceError)
	}

	var parsedFile taskFile
	if unmarshalError := yaml.Unmarshal(contentBytes, &parsedFile); unmarshalError != nil {
		return nil, fmt.Errorf(taskFileParseErrorTemplateConstant, unmarshalError)
	}

	configuredTasks, decodeError := decodeTaskConfigurations(parsedFile.Tasks)
	if decodeError != nil {
		return nil, fmt.Errorf(taskFileDecodeErrorTemplateConstant, decodeError)
	}

	return configuredTasks, nil
}

func decodeTaskConfigurations(rawTasks []map[string]any) ([]TaskConfiguration, error) {
	configuredTasks := make([]TaskConfiguration, 0, len(rawTasks))

	for taskIndex := range rawTasks {
		var configuredTask TaskConfiguration

		decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          taskFileDecoderTagNameConstant,
			Result:           &configuredTask,
			WeaklyTypedInput: true,
		})
		if decoderError != nil {
			return nil, decoderError
		}

		if decodeError := decoder.Decode(rawTasks[taskIndex]); decodeError != nil {
			return nil, decodeError
		}

		configuredTasks = append(configuredTasks, configuredTask)
	}

	return configuredTasks, nil
}

func ensureTasksSequence(contentBytes []byte) error {
	var tasksWrapper struct {
		Tasks yaml.Node `yaml:"tasks"`
	}

	if unmarshalError := yaml.Unmarshal(contentBytes, &tasksWrapper); unmarshalError != nil {
		return unmarshalError
	}

	if tasksWrapper.Tasks.Kind == 0 {
		return nil
	}

	switch tasksWrapper.Tasks.Kind {
	case yaml.SequenceNode:
		return nil
	default:
		return errors.New(taskFileTasksSequenceMessageConstant)
	}
}
