// Package taskrunner hosts the shared abstractions for building and executing
// runbook tasks. It exposes the `Executor` interface plus helpers (`Factory`,
// `Resolve`, `BuildDependencies`) so CLI packages can inject collaborators once
// and obtain a runner, while unit tests can swap in fakes. This keeps the
// orchestration logic in `internal/tasks` reusable without wiring duplication.
package taskrunner
