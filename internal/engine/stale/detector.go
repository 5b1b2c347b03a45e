// Package stale classifies every task in a graph as fresh or stale relative
// to the state recorded at its last successful run.
package stale

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Detector computes per-task statuses. Classification is a pure function of
// (current filesystem content, stored snapshots, graph structure, options):
// no wall clock, no execution order.
type Detector struct {
	fingerprinter ports.Fingerprinter
	store         ports.StateStore
}

// NewDetector creates a new Detector.
func NewDetector(fingerprinter ports.Fingerprinter, store ports.StateStore) *Detector {
	return &Detector{
		fingerprinter: fingerprinter,
		store:         store,
	}
}

// Options alter classification for one invocation only.
type Options struct {
	// Force marks every task ForcedStale regardless of content.
	Force bool
	// SkipPaths suppresses the producing task of each path: the task is
	// classified SuppressedStale instead of Stale and its snapshot is never
	// updated, so the next unsuppressed invocation still sees the change.
	SkipPaths []string
}

// Classify returns the status of every task in the graph.
//
// A task is Stale when any input is missing or changed since the task's last
// successful run, any declared output is missing, the command specification
// changed, or an upstream dependency is itself pending. Fingerprinting I/O
// failures abort classification with domain.ErrStalenessCompute: a run-set
// derived from partial fingerprints would not be trustworthy.
func (d *Detector) Classify(ctx context.Context, g *domain.Graph, opts Options) (map[domain.InternedString]domain.TaskStatus, error) {
	current, err := d.fingerprintAll(ctx, g)
	if err != nil {
		return nil, errors.Join(domain.ErrStalenessCompute, err)
	}

	suppressed, err := resolveSuppressed(g, opts.SkipPaths)
	if err != nil {
		return nil, err
	}

	status := make(map[domain.InternedString]domain.TaskStatus, g.Len())
	for task := range g.Walk() {
		st, err := d.classifyTask(&task, g, status, current, opts.Force)
		if err != nil {
			return nil, errors.Join(domain.ErrStalenessCompute, err)
		}
		if _, ok := suppressed[task.ID]; ok && st.Pending() {
			st = domain.StatusSuppressedStale
		}
		status[task.ID] = st
	}
	return status, nil
}

func (d *Detector) classifyTask(
	task *domain.Task,
	g *domain.Graph,
	status map[domain.InternedString]domain.TaskStatus,
	current map[domain.InternedString]domain.Fingerprint,
	force bool,
) (domain.TaskStatus, error) {
	if force {
		return domain.StatusForcedStale, nil
	}

	// Staleness propagates forward: a task cannot be fresh if something it
	// depends on has unprocessed changes. Walk order guarantees dependencies
	// are classified first.
	for _, dep := range g.Dependencies(task.ID) {
		if status[dep].Pending() {
			return domain.StatusStale, nil
		}
	}

	stale, err := d.isStale(task, current)
	if err != nil {
		return "", err
	}
	if stale {
		return domain.StatusStale, nil
	}
	return domain.StatusFresh, nil
}

// isStale applies the content rules against the stored snapshot.
func (d *Detector) isStale(task *domain.Task, current map[domain.InternedString]domain.Fingerprint) (bool, error) {
	snap, err := d.store.Get(task.ID.String())
	if err != nil {
		return false, err
	}
	if snap == nil {
		// Never ran successfully.
		return true, nil
	}

	for _, in := range task.Inputs {
		cur := current[in]
		if cur.Missing() {
			return true, nil
		}
		if snap.Inputs[in.String()] != cur {
			return true, nil
		}
	}

	for _, out := range task.Outputs {
		if current[out].Missing() {
			return true, nil
		}
	}

	return d.fingerprinter.Command(task.Command) != snap.Command, nil
}

// fingerprintAll computes current fingerprints for every path the graph
// references, with bounded parallelism.
func (d *Detector) fingerprintAll(ctx context.Context, g *domain.Graph) (map[domain.InternedString]domain.Fingerprint, error) {
	paths := make(map[domain.InternedString]struct{})
	for task := range g.Walk() {
		for _, in := range task.Inputs {
			paths[in] = struct{}{}
		}
		for _, out := range task.Outputs {
			paths[out] = struct{}{}
		}
	}

	var mu sync.Mutex
	current := make(map[domain.InternedString]domain.Fingerprint, len(paths))

	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for path := range paths {
		eg.Go(func() error {
			fp, err := d.fingerprinter.File(path.String())
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to fingerprint path"), "path", path.String())
			}
			mu.Lock()
			current[path] = fp
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return current, nil
}

// resolveSuppressed maps each skip path to its producing task.
func resolveSuppressed(g *domain.Graph, skipPaths []string) (map[domain.InternedString]struct{}, error) {
	suppressed := make(map[domain.InternedString]struct{}, len(skipPaths))
	for _, path := range skipPaths {
		producer, ok := g.Producer(domain.NewInternedString(path))
		if !ok {
			return nil, zerr.With(domain.ErrNoProducer, "path", path)
		}
		suppressed[producer] = struct{}{}
	}
	return suppressed, nil
}
