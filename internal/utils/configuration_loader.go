package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorConstant           = "_"
	configurationKeySeparatorConstant         = "."
	embeddedConfigurationErrorTemplate        = "unable to read embedded configuration: %w"
	configurationFileReadErrorTemplate        = "unable to read configuration file: %w"
	configurationUnmarshalErrorTemplate       = "unable to decode configuration: %w"
	configurationSearchReadErrorTemplate      = "unable to read configuration from search paths: %w"
	configurationTargetMissingMessageConstant = "configuration target not provided"
)

// ErrConfigurationTargetMissing indicates LoadConfiguration was called without a decode target.
var ErrConfigurationTargetMissing = errors.New(configurationTargetMissingMessageConstant)

// LoadMetadata describes where the effective configuration came from.
type LoadMetadata struct {
	ConfigFileUsed string
}

// ConfigurationLoader layers embedded defaults, configuration files, and environment overrides.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	embeddedConfiguration     []byte
	embeddedConfigurationType string
}

// NewConfigurationLoader constructs a loader for the named configuration.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName: configurationName,
		configurationType: configurationType,
		environmentPrefix: environmentPrefix,
		searchPaths:       searchPaths,
	}
}

// SetEmbeddedConfiguration registers configuration content merged beneath any file or environment values.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(content []byte, contentType string) {
	loader.embeddedConfiguration = content
	loader.embeddedConfigurationType = contentType
}

// LoadConfiguration resolves the effective configuration into target.
//
// Precedence from lowest to highest: supplied defaults, embedded configuration,
// a discovered or explicitly provided configuration file, environment variables.
func (loader *ConfigurationLoader) LoadConfiguration(explicitFilePath string, defaultValues map[string]any, target any) (LoadMetadata, error) {
	if target == nil {
		return LoadMetadata{}, ErrConfigurationTargetMissing
	}

	viperInstance := viper.New()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(configurationKeySeparatorConstant, environmentKeySeparatorConstant))
	viperInstance.AutomaticEnv()

	if len(loader.embeddedConfiguration) > 0 {
		embeddedType := loader.embeddedConfigurationType
		if len(embeddedType) == 0 {
			embeddedType = loader.configurationType
		}
		viperInstance.SetConfigType(embeddedType)
		if readError := viperInstance.ReadConfig(bytes.NewReader(loader.embeddedConfiguration)); readError != nil {
			return LoadMetadata{}, fmt.Errorf(embeddedConfigurationErrorTemplate, readError)
		}
	}

	metadata := LoadMetadata{}

	trimmedExplicitPath := strings.TrimSpace(explicitFilePath)
	if len(trimmedExplicitPath) > 0 {
		viperInstance.SetConfigFile(trimmedExplicitPath)
		if mergeError := viperInstance.MergeInConfig(); mergeError != nil {
			return LoadMetadata{}, fmt.Errorf(configurationFileReadErrorTemplate, mergeError)
		}
		metadata.ConfigFileUsed = viperInstance.ConfigFileUsed()
	} else {
		viperInstance.SetConfigName(loader.configurationName)
		viperInstance.SetConfigType(loader.configurationType)
		for _, searchPath := range loader.searchPaths {
			trimmedSearchPath := strings.TrimSpace(searchPath)
			if len(trimmedSearchPath) == 0 {
				continue
			}
			viperInstance.AddConfigPath(trimmedSearchPath)
		}

		mergeError := viperInstance.MergeInConfig()
		if mergeError != nil {
			var notFoundError viper.ConfigFileNotFoundError
			if !errors.As(mergeError, &notFoundError) {
				return LoadMetadata{}, fmt.Errorf(configurationSearchReadErrorTemplate, mergeError)
			}
		} else {
			metadata.ConfigFileUsed = viperInstance.ConfigFileUsed()
		}
	}

	if unmarshalError := viperInstance.Unmarshal(target); unmarshalError != nil {
		return LoadMetadata{}, fmt.Errorf(configurationUnmarshalErrorTemplate, unmarshalError)
	}

	return metadata, nil
}
