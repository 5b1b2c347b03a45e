package scheduler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheduler executes a plan against the dependency graph.
//
// Execution may be bounded-parallel, but run records (and buffered task
// output) are flushed to the run log strictly in plan order, so the log is
// byte-identical to a sequential run.
type Scheduler struct {
	executor      ports.Executor
	store         ports.StateStore
	fingerprinter ports.Fingerprinter
	telemetry     ports.Telemetry
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	executor ports.Executor,
	store ports.StateStore,
	fingerprinter ports.Fingerprinter,
	telemetry ports.Telemetry,
) *Scheduler {
	return &Scheduler{
		executor:      executor,
		store:         store,
		fingerprinter: fingerprinter,
		telemetry:     telemetry,
	}
}

// Execute runs the plan with the specified parallelism and returns the
// invocation result.
//
// A failed task is recorded and its transitive dependents are recorded as
// skipped; independent branches continue. Snapshots are written only for
// tasks that completed successfully, never for cut, skipped, failed, or
// interrupted tasks. The returned error aggregates every independent
// failure under domain.ErrRunFailed.
func (s *Scheduler) Execute(
	ctx context.Context,
	g *domain.Graph,
	plan *Plan,
	log ports.RunLog,
	parallelism int,
) (domain.RunResult, error) {
	if plan.Empty() {
		if err := log.NoTasksOutOfSync(); err != nil {
			return domain.RunResult{}, err
		}
		return domain.RunResult{}, nil
	}

	if parallelism < 1 {
		parallelism = 1
	}

	state := s.newRunState(ctx, g, plan, log, parallelism)
	state.markCut()

	for state.undecided > 0 {
		state.propagateFailures()
		if err := state.flush(); err != nil {
			return state.result, err
		}
		if state.undecided == 0 {
			break
		}

		if state.ctx.Err() == nil {
			state.launch()
		}

		if state.active == 0 {
			if state.ctx.Err() != nil {
				// Interrupted: stop launching, record the rest as skipped.
				state.skipRemaining()
				continue
			}
			break
		}

		state.handleResult(<-state.resultsCh)
	}

	if err := state.flush(); err != nil {
		return state.result, err
	}

	errs := state.errs
	if state.ctx.Err() != nil {
		errs = errors.Join(errs, state.ctx.Err())
	}
	if errs != nil {
		return state.result, errors.Join(domain.ErrRunFailed, errs)
	}
	return state.result, nil
}

type result struct {
	id     domain.InternedString
	err    error
	output []byte
}

type entryState struct {
	entry   Entry
	outcome domain.Outcome
	decided bool
	running bool
	output  []byte
	err     error
}

type runState struct {
	ctx         context.Context
	s           *Scheduler
	graph       *domain.Graph
	log         ports.RunLog
	entries     []*entryState
	byID        map[domain.InternedString]*entryState
	resultsCh   chan result
	parallelism int
	active      int
	undecided   int
	flushed     int
	result      domain.RunResult
	errs        error
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	g *domain.Graph,
	plan *Plan,
	log ports.RunLog,
	parallelism int,
) *runState {
	state := &runState{
		ctx:         ctx,
		s:           s,
		graph:       g,
		log:         log,
		entries:     make([]*entryState, 0, len(plan.Entries)),
		byID:        make(map[domain.InternedString]*entryState, len(plan.Entries)),
		resultsCh:   make(chan result, parallelism),
		parallelism: parallelism,
		undecided:   len(plan.Entries),
	}
	for _, e := range plan.Entries {
		es := &entryState{entry: e}
		state.entries = append(state.entries, es)
		state.byID[e.Task.ID] = es
	}
	return state
}

// markCut decides suppressed tasks upfront: they never execute and their
// snapshots are never written.
func (state *runState) markCut() {
	for _, es := range state.entries {
		if es.entry.Status != domain.StatusSuppressedStale {
			continue
		}
		_, vertex := state.s.telemetry.Record(state.ctx, es.entry.Task.ID.String())
		vertex.Cached()
		vertex.Complete(nil)
		state.decide(es, domain.OutcomeCut, nil)
	}
}

// propagateFailures marks dependents of failed or skipped tasks as skipped.
// Entries are in topological order, so one pass reaches a fixpoint.
func (state *runState) propagateFailures() {
	for _, es := range state.entries {
		if es.decided {
			continue
		}
		for _, dep := range state.graph.Dependencies(es.entry.Task.ID) {
			ds, ok := state.byID[dep]
			if !ok || !ds.decided {
				continue
			}
			if ds.outcome == domain.OutcomeFailed || ds.outcome == domain.OutcomeSkipped {
				state.decide(es, domain.OutcomeSkipped, nil)
				break
			}
		}
	}
}

// launch starts every runnable task up to the parallelism bound, in plan
// order. A task is runnable when all of its in-plan dependencies are decided
// without failure; cut dependencies do not block (their old outputs are used
// as-is).
func (state *runState) launch() {
	for _, es := range state.entries {
		if state.active >= state.parallelism || state.ctx.Err() != nil {
			return
		}
		if es.decided || es.running {
			continue
		}

		ready := true
		for _, dep := range state.graph.Dependencies(es.entry.Task.ID) {
			if ds, ok := state.byID[dep]; ok && !ds.decided {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}

		es.running = true
		state.active++
		go state.s.runTask(state.ctx, es.entry.Task, state.resultsCh)
	}
}

func (state *runState) handleResult(res result) {
	state.active--
	es := state.byID[res.id]
	es.running = false
	es.output = res.output

	if res.err != nil {
		state.errs = errors.Join(state.errs, res.err)
		state.decide(es, domain.OutcomeFailed, res.err)
		return
	}
	state.decide(es, domain.OutcomeRan, nil)
}

// skipRemaining decides every undecided task as skipped after an interrupt.
func (state *runState) skipRemaining() {
	for _, es := range state.entries {
		if !es.decided && !es.running {
			state.decide(es, domain.OutcomeSkipped, nil)
		}
	}
}

func (state *runState) decide(es *entryState, outcome domain.Outcome, err error) {
	es.decided = true
	es.outcome = outcome
	es.err = err
	state.undecided--
}

// flush appends decided records to the run log in plan order. A record is
// held back until every earlier entry is decided, which keeps the log order
// independent of parallel completion order.
func (state *runState) flush() error {
	for state.flushed < len(state.entries) {
		es := state.entries[state.flushed]
		if !es.decided {
			return nil
		}

		if len(es.output) > 0 {
			if _, err := state.log.Write(es.output); err != nil {
				return err
			}
		}

		rec := domain.RunRecord{
			TaskID:  es.entry.Task.ID,
			Outcome: es.outcome,
			Seq:     es.entry.Seq,
		}
		if err := state.log.Append(rec); err != nil {
			return err
		}
		state.result.Records = append(state.result.Records, rec)
		state.flushed++
	}
	return nil
}

// runTask executes one task command and, on success, snapshots its inputs,
// outputs, and command spec into the store.
func (s *Scheduler) runTask(ctx context.Context, task domain.Task, ch chan<- result) {
	_, vertex := s.telemetry.Record(ctx, task.ID.String())

	var buf bytes.Buffer
	out := io.MultiWriter(&buf, vertex.Stdout())

	err := s.executor.Execute(ctx, &task, out)
	if err == nil {
		err = s.snapshot(&task)
	}
	vertex.Complete(err)

	ch <- result{id: task.ID, err: err, output: buf.Bytes()}
}

// snapshot records the task's state after a confirmed successful run.
func (s *Scheduler) snapshot(task *domain.Task) error {
	inputs, err := s.fingerprintPaths(task.Inputs)
	if err != nil {
		return err
	}
	outputs, err := s.fingerprintPaths(task.Outputs)
	if err != nil {
		return err
	}

	snap := domain.Snapshot{
		TaskID:    task.ID.String(),
		Inputs:    inputs,
		Outputs:   outputs,
		Command:   s.fingerprinter.Command(task.Command),
		Timestamp: time.Now(),
	}
	if err := s.store.Put(snap); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to store snapshot"), "task", task.ID.String())
	}
	return nil
}

func (s *Scheduler) fingerprintPaths(paths []domain.InternedString) (map[string]domain.Fingerprint, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	fps := make(map[string]domain.Fingerprint, len(paths))
	for _, p := range paths {
		fp, err := s.fingerprinter.File(p.String())
		if err != nil {
			return nil, err
		}
		fps[p.String()] = fp
	}
	return fps, nil
}
