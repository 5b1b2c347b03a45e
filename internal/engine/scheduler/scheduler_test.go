package scheduler_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"go.trai.ch/flo/internal/adapters/telemetry"
	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/core/ports/mocks"
	"go.trai.ch/flo/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

// memLog is an in-memory ports.RunLog capturing everything in write order.
type memLog struct {
	mu      sync.Mutex
	lines   []string
	raw     string
	noTasks bool
}

func (l *memLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.raw += string(p)
	return len(p), nil
}

func (l *memLog) Append(rec domain.RunRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, string(rec.Outcome)+" "+rec.TaskID.String())
	return nil
}

func (l *memLog) NoTasksOutOfSync() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.noTasks = true
	return nil
}

func (l *memLog) Close() error { return nil }

type fixture struct {
	ctrl  *gomock.Controller
	exec  *mocks.MockExecutor
	store *mocks.MockStateStore
	fp    *mocks.MockFingerprinter
	sched *scheduler.Scheduler
	log   *memLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		ctrl:  ctrl,
		exec:  mocks.NewMockExecutor(ctrl),
		store: mocks.NewMockStateStore(ctrl),
		fp:    mocks.NewMockFingerprinter(ctrl),
		log:   &memLog{},
	}
	f.sched = scheduler.NewScheduler(f.exec, f.store, f.fp, telemetry.NewNoOp())

	f.fp.EXPECT().File(gomock.Any()).Return(domain.Fingerprint("fp"), nil).AnyTimes()
	f.fp.EXPECT().Command(gomock.Any()).Return(domain.Fingerprint("cmd")).AnyTimes()
	return f
}

func mustPlan(t *testing.T, g *domain.Graph, status map[domain.InternedString]domain.TaskStatus) *scheduler.Plan {
	t.Helper()
	plan, err := scheduler.ComputePlan(g, status, scheduler.Selection{})
	if err != nil {
		t.Fatalf("ComputePlan failed: %v", err)
	}
	return plan
}

func TestExecute_Sequential(t *testing.T) {
	f := newFixture(t)
	defer f.ctrl.Finish()

	g := diamondGraph(t)
	plan := mustPlan(t, g, allStale(g))

	var executed []string
	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, task *domain.Task, out io.Writer) error {
			executed = append(executed, task.ID.String())
			_, _ = out.Write([]byte(task.ID.String() + " output\n"))
			return nil
		}).Times(4)

	var stored []string
	f.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(snap domain.Snapshot) error {
		stored = append(stored, snap.TaskID)
		return nil
	}).Times(4)

	result, err := f.sched.Execute(context.Background(), g, plan, f.log, 1)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := []string{"fetch", "parse", "stats", "report"}
	for i, id := range want {
		if executed[i] != id {
			t.Fatalf("unexpected execution order: %v", executed)
		}
		if result.Records[i].TaskID.String() != id || result.Records[i].Outcome != domain.OutcomeRan {
			t.Fatalf("unexpected record %d: %+v", i, result.Records[i])
		}
	}
	if len(stored) != 4 {
		t.Errorf("expected 4 snapshots, got %d", len(stored))
	}
	if result.Failed() {
		t.Error("expected successful result")
	}
}

func TestExecute_EmptyPlan(t *testing.T) {
	f := newFixture(t)
	defer f.ctrl.Finish()

	g := diamondGraph(t)
	result, err := f.sched.Execute(context.Background(), g, &scheduler.Plan{}, f.log, 1)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !f.log.noTasks {
		t.Error("expected no-tasks line")
	}
	if len(result.Records) != 0 {
		t.Errorf("expected no records, got %v", result.Records)
	}
}

func TestExecute_FailureIsolatesSubtree(t *testing.T) {
	f := newFixture(t)
	defer f.ctrl.Finish()

	g := diamondGraph(t)
	plan := mustPlan(t, g, allStale(g))

	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, task *domain.Task, _ io.Writer) error {
			switch task.ID.String() {
			case "parse":
				return errors.New("parse blew up")
			case "report":
				t.Error("report must not execute after parse failed")
				return nil
			default:
				return nil
			}
		}).Times(3)

	// Snapshots only for the two successes.
	f.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)

	result, err := f.sched.Execute(context.Background(), g, plan, f.log, 1)
	if !errors.Is(err, domain.ErrRunFailed) {
		t.Fatalf("expected ErrRunFailed, got %v", err)
	}

	outcomes := make(map[string]domain.Outcome)
	for _, rec := range result.Records {
		outcomes[rec.TaskID.String()] = rec.Outcome
	}
	if outcomes["fetch"] != domain.OutcomeRan {
		t.Errorf("expected fetch ran, got %s", outcomes["fetch"])
	}
	if outcomes["parse"] != domain.OutcomeFailed {
		t.Errorf("expected parse failed, got %s", outcomes["parse"])
	}
	if outcomes["stats"] != domain.OutcomeRan {
		t.Errorf("independent branch must continue, got %s", outcomes["stats"])
	}
	if outcomes["report"] != domain.OutcomeSkipped {
		t.Errorf("expected report skipped, got %s", outcomes["report"])
	}
}

func TestExecute_SuppressedIsCut(t *testing.T) {
	f := newFixture(t)
	defer f.ctrl.Finish()

	g := diamondGraph(t)
	status := allStale(g)
	status[domain.NewInternedString("fetch")] = domain.StatusSuppressedStale
	plan := mustPlan(t, g, status)

	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, task *domain.Task, _ io.Writer) error {
			if task.ID.String() == "fetch" {
				t.Error("suppressed task must not execute")
			}
			return nil
		}).Times(3)

	// No snapshot for the cut task: its old outputs are used as-is.
	f.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(snap domain.Snapshot) error {
		if snap.TaskID == "fetch" {
			t.Error("suppressed task must not be snapshotted")
		}
		return nil
	}).Times(3)

	result, err := f.sched.Execute(context.Background(), g, plan, f.log, 1)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Records[0].TaskID.String() != "fetch" || result.Records[0].Outcome != domain.OutcomeCut {
		t.Errorf("expected fetch cut first, got %+v", result.Records[0])
	}
}

func TestExecute_ParallelKeepsLogOrder(t *testing.T) {
	f := newFixture(t)
	defer f.ctrl.Finish()

	g := diamondGraph(t)
	plan := mustPlan(t, g, allStale(g))

	// parse and stats run concurrently; force stats to finish first and
	// verify the log still shows plan order.
	statsDone := make(chan struct{})
	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, task *domain.Task, out io.Writer) error {
			switch task.ID.String() {
			case "parse":
				<-statsDone
			case "stats":
				defer close(statsDone)
			}
			_, _ = out.Write([]byte(task.ID.String() + "!\n"))
			return nil
		}).Times(4)
	f.store.EXPECT().Put(gomock.Any()).Return(nil).Times(4)

	result, err := f.sched.Execute(context.Background(), g, plan, f.log, 2)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := []string{"ran fetch", "ran parse", "ran stats", "ran report"}
	if len(f.log.lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, f.log.lines)
	}
	for i := range want {
		if f.log.lines[i] != want[i] {
			t.Fatalf("log order not deterministic: %v", f.log.lines)
		}
	}
	if f.log.raw != "fetch!\nparse!\nstats!\nreport!\n" {
		t.Errorf("buffered output out of order: %q", f.log.raw)
	}

	if result.Failed() {
		t.Error("expected successful result")
	}
}

func TestExecute_ContextCancelledSkipsRest(t *testing.T) {
	f := newFixture(t)
	defer f.ctrl.Finish()

	g := diamondGraph(t)
	plan := mustPlan(t, g, allStale(g))

	ctx, cancel := context.WithCancel(context.Background())

	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, task *domain.Task, _ io.Writer) error {
			// Cancel while the first task is in flight.
			cancel()
			return nil
		}).Times(1)
	f.store.EXPECT().Put(gomock.Any()).Return(nil).Times(1)

	result, err := f.sched.Execute(ctx, g, plan, f.log, 1)
	if err == nil {
		t.Fatal("expected error after cancellation")
	}

	outcomes := make(map[string]domain.Outcome)
	for _, rec := range result.Records {
		outcomes[rec.TaskID.String()] = rec.Outcome
	}
	if outcomes["fetch"] != domain.OutcomeRan {
		t.Errorf("expected fetch ran, got %s", outcomes["fetch"])
	}
	for _, id := range []string{"parse", "stats", "report"} {
		if outcomes[id] != domain.OutcomeSkipped {
			t.Errorf("expected %s skipped after interrupt, got %s", id, outcomes[id])
		}
	}
}
