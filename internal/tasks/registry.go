package tasks

import "strings"

// Registry stores task definitions in registration order.
//
// Definitions are registered once during startup and never mutated afterwards.
type Registry struct {
	registrationOrder []TaskName
	definitions       map[TaskName]TaskDefinition
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: map[TaskName]TaskDefinition{},
	}
}

// Register stores the definition under its name.
//
// Registration fails with DuplicateTaskError when the name is taken and leaves
// the registry unchanged.
func (registry *Registry) Register(definition TaskDefinition) error {
	trimmedName := TaskName(strings.TrimSpace(string(definition.Name)))
	if len(trimmedName) == 0 {
		return ErrTaskNameMissing
	}
	if _, exists := registry.definitions[trimmedName]; exists {
		return DuplicateTaskError{Task: trimmedName}
	}

	definition.Name = trimmedName
	registry.definitions[trimmedName] = definition
	registry.registrationOrder = append(registry.registrationOrder, trimmedName)
	return nil
}

// Lookup returns the definition registered under name.
func (registry *Registry) Lookup(name TaskName) (TaskDefinition, error) {
	trimmedName := TaskName(strings.TrimSpace(string(name)))
	if len(trimmedName) == 0 {
		return TaskDefinition{}, ErrTaskNameMissing
	}
	definition, exists := registry.definitions[trimmedName]
	if !exists {
		return TaskDefinition{}, UnknownTaskError{Task: trimmedName}
	}
	return definition, nil
}

// List returns the registered definitions in registration order.
func (registry *Registry) List() []TaskDefinition {
	listed := make([]TaskDefinition, 0, len(registry.registrationOrder))
	for _, registeredName := range registry.registrationOrder {
		listed = append(listed, registry.definitions[registeredName])
	}
	return listed
}
