package domain

// TaskStatus is the transient per-invocation classification of a task.
// It is recomputed on every invocation and never persisted.
type TaskStatus string

const (
	// StatusFresh indicates the task's inputs, outputs, and command match the
	// state recorded at its last successful run.
	StatusFresh TaskStatus = "Fresh"
	// StatusStale indicates the task must run: an input changed, an output is
	// missing, the command changed, or an upstream task is stale.
	StatusStale TaskStatus = "Stale"
	// StatusForcedStale indicates staleness was overridden by --force.
	StatusForcedStale TaskStatus = "ForcedStale"
	// StatusSuppressedStale indicates the task is stale but execution was
	// suppressed by --skip for this invocation only.
	StatusSuppressedStale TaskStatus = "SuppressedStale"
)

// Pending reports whether the status describes a task with unprocessed changes.
func (s TaskStatus) Pending() bool {
	return s == StatusStale || s == StatusForcedStale || s == StatusSuppressedStale
}

// Outcome is the recorded result of one attempted task execution.
type Outcome string

const (
	// OutcomeRan indicates the task's command completed successfully.
	OutcomeRan Outcome = "ran"
	// OutcomeCut indicates a stale task deliberately suppressed by --skip.
	OutcomeCut Outcome = "cut"
	// OutcomeSkipped indicates the task was not attempted because an upstream
	// dependency failed.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed indicates the task's command exited with failure.
	OutcomeFailed Outcome = "failed"
)

// RunRecord is one append-only entry in the run log. Seq is the position in
// the deterministic plan order, independent of wall-clock completion order.
type RunRecord struct {
	TaskID  InternedString
	Outcome Outcome
	Seq     int
}

// RunResult is the invocation-level outcome exposed to external tooling
// (archiving, cleaning, diagnostics).
type RunResult struct {
	Records []RunRecord
}

// Failed reports whether any task outcome is failed.
func (r RunResult) Failed() bool {
	for _, rec := range r.Records {
		if rec.Outcome == OutcomeFailed {
			return true
		}
	}
	return false
}

// Succeeded returns the IDs of tasks that ran to completion, in plan order.
// An archiving step selects output paths belonging to these tasks.
func (r RunResult) Succeeded() []InternedString {
	var ids []InternedString
	for _, rec := range r.Records {
		if rec.Outcome == OutcomeRan {
			ids = append(ids, rec.TaskID)
		}
	}
	return ids
}
