package tasks

import "strings"

// BuildExecutionPlan expands the named task into a flat ordered sequence of steps.
//
// References are substituted depth-first in pre-order, left to right. A task
// name reappearing on the active expansion path fails with
// CyclicDependencyError naming the cycle. Steps without a directory override
// inherit the directory scope of the innermost enclosing reference;
// initialDirectory seeds that scope for the requested task itself.
func BuildExecutionPlan(registry *Registry, name TaskName, initialDirectory string) ([]PlannedStep, error) {
	if registry == nil {
		return nil, ErrRegistryNotConfigured
	}

	definition, lookupError := registry.Lookup(name)
	if lookupError != nil {
		return nil, lookupError
	}

	expansion := &planExpansion{registry: registry}
	plannedSteps, expansionError := expansion.expand(definition, strings.TrimSpace(initialDirectory))
	if expansionError != nil {
		return nil, expansionError
	}
	return plannedSteps, nil
}

// ValidateReferences confirms that every registered task expands without
// unknown references or cycles. It runs before any step executes.
func ValidateReferences(registry *Registry) error {
	if registry == nil {
		return ErrRegistryNotConfigured
	}
	for _, definition := range registry.List() {
		if _, expansionError := BuildExecutionPlan(registry, definition.Name, ""); expansionError != nil {
			return expansionError
		}
	}
	return nil
}

type planExpansion struct {
	registry      *Registry
	expansionPath []TaskName
}

func (expansion *planExpansion) expand(definition TaskDefinition, directoryScope string) ([]PlannedStep, error) {
	expansion.expansionPath = append(expansion.expansionPath, definition.Name)
	defer func() {
		expansion.expansionPath = expansion.expansionPath[:len(expansion.expansionPath)-1]
	}()

	plannedSteps := make([]PlannedStep, 0, len(definition.Elements))
	for elementIndex := range definition.Elements {
		element := definition.Elements[elementIndex]

		if element.Step != nil {
			scopedStep := *element.Step
			if len(strings.TrimSpace(scopedStep.Directory)) == 0 {
				scopedStep.Directory = directoryScope
			}
			plannedSteps = append(plannedSteps, PlannedStep{Task: definition.Name, Step: scopedStep})
			continue
		}

		if element.Reference == nil {
			continue
		}

		referencedName := TaskName(strings.TrimSpace(string(element.Reference.Task)))
		if cycle := expansion.detectCycle(referencedName); cycle != nil {
			return nil, CyclicDependencyError{Cycle: cycle}
		}

		referencedDefinition, lookupError := expansion.registry.Lookup(referencedName)
		if lookupError != nil {
			return nil, UnknownTaskError{Task: referencedName, ReferencedBy: definition.Name}
		}

		referencedScope := strings.TrimSpace(element.Reference.Directory)
		if len(referencedScope) == 0 {
			referencedScope = directoryScope
		}

		referencedSteps, expansionError := expansion.expand(referencedDefinition, referencedScope)
		if expansionError != nil {
			return nil, expansionError
		}
		plannedSteps = append(plannedSteps, referencedSteps...)
	}

	return plannedSteps, nil
}

func (expansion *planExpansion) detectCycle(candidate TaskName) []TaskName {
	for pathIndex, pathEntry := range expansion.expansionPath {
		if pathEntry != candidate {
			continue
		}
		cycle := make([]TaskName, 0, len(expansion.expansionPath)-pathIndex+1)
		cycle = append(cycle, expansion.expansionPath[pathIndex:]...)
		cycle = append(cycle, candidate)
		return cycle
	}
	return nil
}
