package taskrunner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tyemirov/runbook/internal/tasks"
)

// Executor runs a named task through its fully expanded execution plan.
type Executor interface {
	Run(ctx context.Context, name tasks.TaskName, options tasks.RunOptions) (tasks.RunOutcome, error)
}

// Factory constructs an Executor given resolved dependencies.
type Factory func(Dependencies) Executor

// Resolve returns either the provided factory result or a default task executor.
//
// The returned executor prints a one-line run summary to the error stream after
// every run, whether the plan succeeded or halted.
func Resolve(factory Factory, dependencies Dependencies) (Executor, error) {
	var base Executor
	if factory != nil {
		base = factory(dependencies)
	}
	if base == nil {
		defaultExecutor, executorError := tasks.NewExecutor(dependencies.Registry, dependencies.StepRunner, dependencies.Logger)
		if executorError != nil {
			return nil, fmt.Errorf(executorConstructionErrorTemplateConstant, executorError)
		}
		base = defaultExecutor
	}
	return summaryExecutor{
		delegate:     base,
		dependencies: dependencies,
	}, nil
}

type summaryExecutor struct {
	delegate     Executor
	dependencies Dependencies
}

func (executor summaryExecutor) Run(ctx context.Context, name tasks.TaskName, options tasks.RunOptions) (tasks.RunOutcome, error) {
	startedAt := time.Now()
	outcome, runError := executor.delegate.Run(ctx, name, options)
	executor.printSummary(outcome, runError, time.Since(startedAt))
	return outcome, runError
}

func (executor summaryExecutor) printSummary(outcome tasks.RunOutcome, runError error, duration time.Duration) {
	writer := executor.summaryWriter()
	if writer == nil {
		return
	}

	summary := RenderSummaryLine(outcome, runError, duration)
	if len(strings.TrimSpace(summary)) == 0 {
		return
	}
	fmt.Fprintln(writer, summary)
}

func (executor summaryExecutor) summaryWriter() io.Writer {
	if executor.dependencies.Errors != nil {
		return executor.dependencies.Errors
	}
	if executor.dependencies.Output != nil {
		return executor.dependencies.Output
	}
	return nil
}
