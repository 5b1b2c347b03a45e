// Package scheduler computes the deterministic run-set and executes it.
package scheduler

import (
	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Selection narrows the run-set for one invocation. Force and skip are not
// here: both are already reflected in the per-task statuses.
type Selection struct {
	// Only narrows the run-set to the stale ancestors (inclusive) of the
	// producer of this output path.
	Only string
	// StartAt begins the graph walk at this task, ignoring the need to run
	// anything strictly upstream of it.
	StartAt string
}

// Entry is one task in the plan. Seq is the position in the deterministic
// total order and becomes the run record sequence.
type Entry struct {
	Task   domain.Task
	Status domain.TaskStatus
	Seq    int
}

// Plan is the ordered minimal run-set for one invocation. Order is the
// graph's topological order with declaration-order tie-break, so two
// invocations over unchanged input produce identical plans.
type Plan struct {
	Entries []Entry
}

// Empty reports whether nothing is out of sync.
func (p *Plan) Empty() bool {
	return len(p.Entries) == 0
}

// ComputePlan derives the run-set from per-task statuses and the selection.
//
// The default run-set is every pending task; descendant propagation is
// already reflected in the statuses, since staleness flows forward through
// the graph during classification. Suppressed tasks stay in the plan so the
// executor can record them as cut.
func ComputePlan(g *domain.Graph, status map[domain.InternedString]domain.TaskStatus, sel Selection) (*Plan, error) {
	allowed, err := onlySet(g, sel.Only)
	if err != nil {
		return nil, err
	}

	excluded, err := startAtSet(g, sel.StartAt)
	if err != nil {
		return nil, err
	}

	plan := &Plan{}
	for _, id := range g.Order() {
		if !status[id].Pending() {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[id]; !ok {
				continue
			}
		}
		if excluded != nil {
			if _, ok := excluded[id]; ok {
				continue
			}
		}

		task, _ := g.Task(id)
		plan.Entries = append(plan.Entries, Entry{
			Task:   task,
			Status: status[id],
			Seq:    len(plan.Entries),
		})
	}
	return plan, nil
}

// onlySet resolves --only to the inclusive ancestor set of the target's
// producer. Tasks outside it never run, stale or not.
func onlySet(g *domain.Graph, only string) (map[domain.InternedString]struct{}, error) {
	if only == "" {
		return nil, nil
	}

	target := domain.NewInternedString(only)
	producer, ok := g.Producer(target)
	if !ok {
		// Accept a task ID as the target as well.
		if _, found := g.Task(target); !found {
			return nil, zerr.With(domain.ErrNoProducer, "path", only)
		}
		producer = target
	}

	allowed := g.Ancestors(producer)
	allowed[producer] = struct{}{}
	return allowed, nil
}

// startAtSet resolves --start-at to the set of tasks strictly upstream of
// the start task; those are dropped from the run-set.
func startAtSet(g *domain.Graph, startAt string) (map[domain.InternedString]struct{}, error) {
	if startAt == "" {
		return nil, nil
	}

	id := domain.NewInternedString(startAt)
	if _, ok := g.Task(id); !ok {
		return nil, zerr.With(domain.ErrTaskNotFound, "task", startAt)
	}
	return g.Ancestors(id), nil
}
