// Package domain contains the core domain models and business logic for the task dependency graph.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Graph is the dependency graph over a resolved task list.
//
// Edges are derived, never declared: task A depends on task B when one of
// A's inputs is an output of B. Inputs with no producing task are classified
// as external source files. The graph is immutable after BuildGraph returns.
type Graph struct {
	tasks      map[InternedString]Task
	producers  map[InternedString]InternedString
	deps       map[InternedString][]InternedString
	dependents map[InternedString][]InternedString
	external   map[InternedString]struct{}
	order      []InternedString
}

// BuildGraph derives the dependency graph from a resolved task list.
//
// It fails with ErrDuplicateTask or ErrDuplicateOutput on identity clashes
// and with ErrCycleDetected (including the offending cycle path) when the
// derived relation is not acyclic. Unresolved inputs are treated as
// pre-existing source files; callers wanting stricter policy can follow up
// with CheckInputsProduced.
func BuildGraph(taskList []Task) (*Graph, error) {
	g := &Graph{
		tasks:      make(map[InternedString]Task, len(taskList)),
		producers:  make(map[InternedString]InternedString),
		deps:       make(map[InternedString][]InternedString, len(taskList)),
		dependents: make(map[InternedString][]InternedString, len(taskList)),
		external:   make(map[InternedString]struct{}),
	}

	for _, t := range taskList {
		if _, exists := g.tasks[t.ID]; exists {
			return nil, zerr.With(ErrDuplicateTask, "task", t.ID.String())
		}
		g.tasks[t.ID] = t

		for _, out := range t.Outputs {
			if prev, exists := g.producers[out]; exists {
				return nil, zerr.With(zerr.With(ErrDuplicateOutput, "path", out.String()), "tasks", prev.String()+", "+t.ID.String())
			}
			g.producers[out] = t.ID
		}
	}

	g.deriveEdges(taskList)

	if err := g.checkAcyclic(taskList); err != nil {
		return nil, err
	}

	g.computeOrder(taskList)
	return g, nil
}

// deriveEdges populates deps, dependents, and the external input set.
func (g *Graph) deriveEdges(taskList []Task) {
	for _, t := range taskList {
		seen := make(map[InternedString]struct{})
		for _, in := range t.Inputs {
			producer, ok := g.producers[in]
			if !ok {
				g.external[in] = struct{}{}
				continue
			}
			if _, dup := seen[producer]; dup {
				continue
			}
			seen[producer] = struct{}{}
			g.deps[t.ID] = append(g.deps[t.ID], producer)
			g.dependents[producer] = append(g.dependents[producer], t.ID)
		}
	}

	// Keep adjacency deterministic regardless of input declaration order.
	for id := range g.deps {
		g.sortByIndex(g.deps[id])
	}
	for id := range g.dependents {
		g.sortByIndex(g.dependents[id])
	}
}

// checkAcyclic detects cycles with a three-color depth-first traversal.
func (g *Graph) checkAcyclic(taskList []Task) error {
	visited := make(map[InternedString]int, len(g.tasks)) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.deps[u] {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		return nil
	}

	// Visit in declaration order so the reported cycle is reproducible.
	for _, t := range taskList {
		if visited[t.ID] == 0 {
			if err := visit(t.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// computeOrder fixes the deterministic total order: Kahn's algorithm with
// ties broken by declaration index.
func (g *Graph) computeOrder(taskList []Task) {
	inDegree := make(map[InternedString]int, len(g.tasks))
	for _, t := range taskList {
		inDegree[t.ID] = len(g.deps[t.ID])
	}

	var ready []InternedString
	for _, t := range taskList {
		if inDegree[t.ID] == 0 {
			ready = append(ready, t.ID)
		}
	}
	g.sortByIndex(ready)

	g.order = make([]InternedString, 0, len(g.tasks))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		g.order = append(g.order, next)

		for _, dep := range g.dependents[next] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
		g.sortByIndex(ready)
	}
}

func (g *Graph) sortByIndex(ids []InternedString) {
	slices.SortFunc(ids, func(a, b InternedString) int {
		return g.tasks[a].Index - g.tasks[b].Index
	})
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// Task returns the task with the given ID.
func (g *Graph) Task(id InternedString) (Task, bool) {
	t, ok := g.tasks[id]
	return t, ok
}

// Order returns the deterministic total order over all task IDs.
func (g *Graph) Order() []InternedString {
	return slices.Clone(g.order)
}

// Walk returns an iterator that yields tasks in the deterministic order.
func (g *Graph) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, id := range g.order {
			if !yield(g.tasks[id]) {
				return
			}
		}
	}
}

// Dependencies returns the producers of the task's inputs.
func (g *Graph) Dependencies(id InternedString) []InternedString {
	return g.deps[id]
}

// Dependents returns the tasks consuming one of the task's outputs.
func (g *Graph) Dependents(id InternedString) []InternedString {
	return g.dependents[id]
}

// Producer returns the task producing the given output path.
func (g *Graph) Producer(path InternedString) (InternedString, bool) {
	id, ok := g.producers[path]
	return id, ok
}

// IsExternal reports whether the path is a pre-existing source file rather
// than a task output.
func (g *Graph) IsExternal(path InternedString) bool {
	_, ok := g.external[path]
	return ok
}

// Ancestors returns the transitive dependency closure of the task, exclusive
// of the task itself.
func (g *Graph) Ancestors(id InternedString) map[InternedString]struct{} {
	return g.closure(id, g.deps)
}

// Descendants returns the transitive dependent closure of the task, exclusive
// of the task itself.
func (g *Graph) Descendants(id InternedString) map[InternedString]struct{} {
	return g.closure(id, g.dependents)
}

func (g *Graph) closure(id InternedString, adj map[InternedString][]InternedString) map[InternedString]struct{} {
	out := make(map[InternedString]struct{})
	stack := slices.Clone(adj[id])
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := out[next]; seen {
			continue
		}
		out[next] = struct{}{}
		stack = append(stack, adj[next]...)
	}
	return out
}

// DerivedOutputs returns every declared output path in deterministic order.
// External tooling uses this to separate derived files from source files.
func (g *Graph) DerivedOutputs() []string {
	var outs []string
	for _, id := range g.order {
		for _, out := range g.tasks[id].Outputs {
			outs = append(outs, out.String())
		}
	}
	return outs
}

// CheckInputsProduced enforces the strict input policy: every declared input
// must be some task's output. The default policy treats unresolved inputs as
// pre-existing sources, so this is opt-in.
func (g *Graph) CheckInputsProduced() error {
	for _, id := range g.order {
		for _, in := range g.tasks[id].Inputs {
			if _, ok := g.producers[in]; !ok {
				return zerr.With(zerr.With(ErrDanglingInput, "path", in.String()), "task", id.String())
			}
		}
	}
	return nil
}
