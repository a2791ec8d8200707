package taskrunner

import (
	"fmt"
	"strings"
	"time"

	"github.com/tyemirov/runbook/internal/tasks"
)

const (
	summaryStatusSucceededConstant = "ok"
	summaryStatusFailedConstant    = "failed"
)

// RenderSummaryLine returns the summary line printed after a task run.
func RenderSummaryLine(outcome tasks.RunOutcome, runError error, duration time.Duration) string {
	if len(strings.TrimSpace(string(outcome.Task))) == 0 {
		return ""
	}

	status := summaryStatusSucceededConstant
	if runError != nil {
		status = summaryStatusFailedConstant
	}

	parts := []string{
		fmt.Sprintf("Summary: task=%s", string(outcome.Task)),
		fmt.Sprintf("status=%s", status),
		fmt.Sprintf("steps.planned=%d", outcome.PlannedStepCount),
		fmt.Sprintf("steps.executed=%d", outcome.ExecutedStepCount),
		fmt.Sprintf("duration_human=%s", duration.Round(time.Millisecond)),
		fmt.Sprintf("duration_ms=%d", duration.Milliseconds()),
	}

	return strings.Join(parts, " ")
}
