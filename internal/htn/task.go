// Package htn implements a hierarchical task network planner with
// backtracking over a mutable world state.
package htn

import "iter"

// State is the world model a plan is built against. Rollback must restore
// every mutation made since the matching Checkpoint.
type State interface {
	Checkpoint() int
	Rollback(mark int)
}

// Task is a node in the task network.
type Task[S State] interface {
	Name() string
}

// PrimitiveTask is a leaf task that acts directly on the state.
type PrimitiveTask[S State] interface {
	Task[S]
	PreconditionsMet(state S) bool
	ApplyEffects(state S)
}

// CompoundTask is a goal with alternative decompositions.
type CompoundTask[S State] interface {
	Task[S]

	// EachValidMethod yields candidate decompositions in preference order.
	// The sequence is derived from the state at the time of the call and is
	// consumed once. A non-nil error aborts planning.
	EachValidMethod(state S) iter.Seq2[Method[S], error]
}

// Method is an ordered list of sub-tasks that together achieve a compound
// task.
type Method[S State] []Task[S]

// Names returns the names of the method's sub-tasks.
func (m Method[S]) Names() []string {
	names := make([]string, len(m))
	for i, t := range m {
		names[i] = t.Name()
	}
	return names
}

// Methods adapts a slice of methods into a method sequence.
func Methods[S State](methods ...Method[S]) iter.Seq2[Method[S], error] {
	return func(yield func(Method[S], error) bool) {
		for _, m := range methods {
			if !yield(m, nil) {
				return
			}
		}
	}
}

// Failed is a method sequence that reports err immediately.
func Failed[S State](err error) iter.Seq2[Method[S], error] {
	return func(yield func(Method[S], error) bool) {
		yield(nil, err)
	}
}
