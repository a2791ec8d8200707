// Package tasks implements the task registry and the dependency-ordered task executor.
package tasks

// TaskName uniquely identifies a task within a registry.
type TaskName string

// StepDefinition describes one external tool invocation.
type StepDefinition struct {
	Command              string
	Arguments            []string
	Directory            string
	EnvironmentVariables map[string]string
}

// TaskReference points at another task, optionally scoping its expansion to a directory.
type TaskReference struct {
	Task      TaskName
	Directory string
}

// TaskElement holds exactly one of a step or a task reference.
type TaskElement struct {
	Step      *StepDefinition
	Reference *TaskReference
}

// TaskDefinition describes a named, ordered unit of work.
type TaskDefinition struct {
	Name        TaskName
	Description string
	Elements    []TaskElement
}

// PlannedStep is one entry of a fully expanded execution plan.
type PlannedStep struct {
	// Task names the definition the step originated from after expansion.
	Task TaskName
	Step StepDefinition
}
