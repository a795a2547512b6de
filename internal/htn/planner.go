package htn

import (
	stderrors "errors"
	"fmt"

	"github.com/felixgeelhaar/commander/internal/errors"
)

// Observer is notified as the planner explores the task network.
type Observer[S State] interface {
	// MethodRejected is called after a method failed and its effects were
	// rolled back. failed is the sub-task that could not be resolved.
	MethodRejected(task CompoundTask[S], method Method[S], failed Task[S])

	// TaskApplied is called for each task of a resolved plan, in plan
	// order. Tasks of rolled back methods are never reported.
	TaskApplied(task PrimitiveTask[S])
}

// Plan is the ordered list of primitive tasks whose effects were applied.
type Plan[S State] struct {
	Tasks []PrimitiveTask[S]
}

// Planner decomposes a root compound task against a state.
type Planner[S State] struct {
	root      CompoundTask[S]
	observers []Observer[S]
}

// Option configures a Planner.
type Option[S State] func(*Planner[S])

// WithObserver registers an observer. Observers are called in registration
// order.
func WithObserver[S State](o Observer[S]) Option[S] {
	return func(p *Planner[S]) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}

// NewPlanner creates a planner for root.
func NewPlanner[S State](root CompoundTask[S], opts ...Option[S]) *Planner[S] {
	p := &Planner[S]{root: root}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan decomposes the root task. Effects of the returned plan remain applied
// to state. A nil plan with a nil error means no method of the root task
// could be resolved, in which case state is unchanged. Errors are
// configuration defects raised while enumerating methods.
func (p *Planner[S]) Plan(state S) (*Plan[S], error) {
	var tasks []PrimitiveTask[S]
	ok, err := p.decomposeCompound(state, p.root, &tasks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	for _, t := range tasks {
		for _, o := range p.observers {
			o.TaskApplied(t)
		}
	}
	return &Plan[S]{Tasks: tasks}, nil
}

// decomposeCompound commits the first method of task whose sub-tasks all
// resolve. Every rejected method is rolled back before the next is pulled.
func (p *Planner[S]) decomposeCompound(state S, task CompoundTask[S], plan *[]PrimitiveTask[S]) (bool, error) {
	for method, err := range task.EachValidMethod(state) {
		if err != nil {
			return false, enumerationDefect(task, err)
		}

		mark := state.Checkpoint()
		planned := len(*plan)

		failed, err := p.decomposeMethod(state, method, plan)
		if err != nil {
			return false, err
		}
		if failed == nil {
			return true, nil
		}

		state.Rollback(mark)
		*plan = (*plan)[:planned]
		for _, o := range p.observers {
			o.MethodRejected(task, method, failed)
		}
	}
	return false, nil
}

// decomposeMethod resolves each sub-task in order and returns the first one
// that failed, or nil when all succeeded.
func (p *Planner[S]) decomposeMethod(state S, method Method[S], plan *[]PrimitiveTask[S]) (Task[S], error) {
	for _, sub := range method {
		switch t := sub.(type) {
		case PrimitiveTask[S]:
			if !t.PreconditionsMet(state) {
				return t, nil
			}
			t.ApplyEffects(state)
			*plan = append(*plan, t)
		case CompoundTask[S]:
			ok, err := p.decomposeCompound(state, t, plan)
			if err != nil {
				return nil, err
			}
			if !ok {
				return t, nil
			}
		default:
			return nil, errors.New(errors.ErrCodeTargetKindMismatch,
				fmt.Sprintf("task %s is neither primitive nor compound", sub.Name()))
		}
	}
	return nil, nil
}

func enumerationDefect[S State](task CompoundTask[S], err error) error {
	var cerr *errors.CommanderError
	if stderrors.As(err, &cerr) && cerr.IsConfigurationDefect() {
		return cerr
	}
	return errors.Wrap(errors.ErrCodeTargetKindMismatch,
		fmt.Sprintf("enumerating methods of %s", task.Name()), err)
}
