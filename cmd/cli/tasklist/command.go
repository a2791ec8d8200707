// Package tasklist builds the command that lists registered tasks.
package tasklist

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tyemirov/runbook/internal/tasks"
)

const (
	commandUseConstant                     = "list"
	commandShortDescriptionConstant        = "List registered tasks"
	commandLongDescriptionConstant         = "list prints every registered task with its description in registration order."
	registryProviderMissingMessageConstant = "task list registry provider not configured"
	availableTasksHeaderConstant           = "Available tasks:"
	noTasksRegisteredMessageConstant       = "No tasks registered."
	taskListingEntryTemplateConstant       = "  %-*s  %s\n"
	taskListingBareEntryTemplateConstant   = "  %s\n"
)

// RegistryProvider yields the active task registry.
type RegistryProvider func() (*tasks.Registry, error)

// CommandBuilder assembles the list command.
type CommandBuilder struct {
	RegistryProvider RegistryProvider
}

// Build constructs the list command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	if builder.RegistryProvider == nil {
		return nil, errors.New(registryProviderMissingMessageConstant)
	}

	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	registry, registryError := builder.RegistryProvider()
	if registryError != nil {
		return registryError
	}
	return Render(command.OutOrStdout(), registry)
}

// Render writes each registered task name and description in registration order.
func Render(writer io.Writer, registry *tasks.Registry) error {
	if registry == nil {
		return tasks.ErrRegistryNotConfigured
	}

	definitions := registry.List()
	if len(definitions) == 0 {
		fmt.Fprintln(writer, noTasksRegisteredMessageConstant)
		return nil
	}

	nameColumnWidth := 0
	for definitionIndex := range definitions {
		if nameLength := len(string(definitions[definitionIndex].Name)); nameLength > nameColumnWidth {
			nameColumnWidth = nameLength
		}
	}

	fmt.Fprintln(writer, availableTasksHeaderConstant)
	for definitionIndex := range definitions {
		definition := definitions[definitionIndex]
		if len(definition.Description) == 0 {
			fmt.Fprintf(writer, taskListingBareEntryTemplateConstant, string(definition.Name))
			continue
		}
		fmt.Fprintf(writer, taskListingEntryTemplateConstant, nameColumnWidth, string(definition.Name), definition.Description)
	}

	return nil
}
