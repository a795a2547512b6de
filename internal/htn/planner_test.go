package htn

import (
	stderrors "errors"
	"fmt"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/felixgeelhaar/commander/internal/errors"
)

type journal struct {
	items []string
	undo  []func()
}

func (j *journal) Checkpoint() int { return len(j.undo) }

func (j *journal) Rollback(mark int) {
	for len(j.undo) > mark {
		last := j.undo[len(j.undo)-1]
		j.undo = j.undo[:len(j.undo)-1]
		last()
	}
}

func (j *journal) add(item string) {
	j.items = append(j.items, item)
	j.undo = append(j.undo, func() { j.items = j.items[:len(j.items)-1] })
}

type step struct {
	name    string
	allowed bool
	checked int
}

func (s *step) Name() string { return s.name }

func (s *step) PreconditionsMet(j *journal) bool {
	s.checked++
	return s.allowed && !slices.Contains(j.items, s.name)
}

func (s *step) ApplyEffects(j *journal) { j.add(s.name) }

type choice struct {
	name    string
	methods []Method[*journal]
	err     error
	yielded int
}

func (c *choice) Name() string { return c.name }

func (c *choice) EachValidMethod(*journal) iter.Seq2[Method[*journal], error] {
	if c.err != nil {
		return Failed[*journal](c.err)
	}
	return func(yield func(Method[*journal], error) bool) {
		for _, m := range c.methods {
			c.yielded++
			if !yield(m, nil) {
				return
			}
		}
	}
}

type recorder struct {
	rejected []string
	applied  []string
}

func (r *recorder) MethodRejected(task CompoundTask[*journal], _ Method[*journal], failed Task[*journal]) {
	r.rejected = append(r.rejected, task.Name()+":"+failed.Name())
}

func (r *recorder) TaskApplied(task PrimitiveTask[*journal]) {
	r.applied = append(r.applied, task.Name())
}

func ok(name string) *step   { return &step{name: name, allowed: true} }
func fail(name string) *step { return &step{name: name} }

func planNames(plan *Plan[*journal]) []string {
	var names []string
	for _, t := range plan.Tasks {
		names = append(names, t.Name())
	}
	return names
}

func TestPlanner_FirstSuccessfulMethodWins(t *testing.T) {
	late := ok("c")
	root := &choice{name: "root", methods: []Method[*journal]{
		{fail("a")},
		{ok("b")},
		{late},
	}}

	state := &journal{}
	plan, err := NewPlanner[*journal](root).Plan(state)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, []string{"b"}, planNames(plan))
	assert.Equal(t, []string{"b"}, state.items)
	assert.Zero(t, late.checked, "methods after the first success are not explored")
	assert.Equal(t, 2, root.yielded, "enumeration stops once a method commits")
}

func TestPlanner_RejectedMethodIsRolledBack(t *testing.T) {
	rec := &recorder{}
	root := &choice{name: "root", methods: []Method[*journal]{
		{ok("x"), ok("y"), fail("blocked")},
		{ok("z")},
	}}

	state := &journal{}
	plan, err := NewPlanner(root, WithObserver[*journal](rec)).Plan(state)
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, planNames(plan))
	assert.Equal(t, []string{"z"}, state.items, "effects of the rejected method are undone")
	assert.Equal(t, []string{"root:blocked"}, rec.rejected)
	assert.Equal(t, []string{"z"}, rec.applied, "rolled back tasks are not reported")
}

func TestPlanner_ObserverSeesOnlyResolvedPlans(t *testing.T) {
	rec := &recorder{}
	root := &choice{name: "root", methods: []Method[*journal]{
		{ok("a"), fail("b")},
		{ok("c"), fail("d")},
	}}

	plan, err := NewPlanner(root, WithObserver[*journal](rec)).Plan(&journal{})
	require.NoError(t, err)
	assert.Nil(t, plan)
	assert.Empty(t, rec.applied)
	assert.Equal(t, []string{"root:b", "root:d"}, rec.rejected)
}

func TestPlanner_NestedCompoundFailureRollsBackParentMethod(t *testing.T) {
	empty := &choice{name: "empty"}
	inner := &choice{name: "inner", methods: []Method[*journal]{{fail("n1")}, {ok("n2")}}}
	root := &choice{name: "root", methods: []Method[*journal]{
		{ok("a"), empty},
		{ok("b"), inner, ok("c")},
	}}

	state := &journal{}
	plan, err := NewPlanner[*journal](root).Plan(state)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "n2", "c"}, planNames(plan))
	assert.Equal(t, []string{"b", "n2", "c"}, state.items)
}

func TestPlanner_RootFailureLeavesStateUntouched(t *testing.T) {
	root := &choice{name: "root", methods: []Method[*journal]{
		{ok("a"), fail("b")},
		{ok("c"), ok("d"), fail("e")},
	}}

	state := &journal{items: []string{"seed"}}
	plan, err := NewPlanner[*journal](root).Plan(state)
	require.NoError(t, err)
	assert.Nil(t, plan)
	assert.Equal(t, []string{"seed"}, state.items)
	assert.Zero(t, state.Checkpoint())
}

func TestPlanner_EnumerationErrorsAreConfigurationDefects(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"coded", errors.NewTargetKindMismatchError("PlanDead", "depot", "building", "air_defense")},
		{"plain", fmt.Errorf("bad wiring")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := &choice{name: "broken", err: tt.err}
			root := &choice{name: "root", methods: []Method[*journal]{{ok("a"), broken}}}

			state := &journal{}
			plan, err := NewPlanner[*journal](root).Plan(state)
			assert.Nil(t, plan)

			var cerr *errors.CommanderError
			require.True(t, stderrors.As(err, &cerr))
			assert.Equal(t, errors.ErrCodeTargetKindMismatch, cerr.Code)
			assert.True(t, cerr.IsConfigurationDefect())
		})
	}
}

func TestMethod_Names(t *testing.T) {
	m := Method[*journal]{ok("a"), &choice{name: "b"}}
	assert.Equal(t, []string{"a", "b"}, m.Names())
}

// Whatever the shape of the network, the state after planning holds exactly
// the effects of the returned plan.
func TestPlanner_StateMatchesPlanProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nextID := 0
		newStep := func() Task[*journal] {
			nextID++
			return &step{name: fmt.Sprintf("t%d", nextID), allowed: rapid.Bool().Draw(t, "allowed")}
		}

		var build func(depth int) *choice
		build = func(depth int) *choice {
			c := &choice{name: fmt.Sprintf("c%d", nextID)}
			for range rapid.IntRange(0, 3).Draw(t, "methods") {
				var m Method[*journal]
				for range rapid.IntRange(1, 3).Draw(t, "tasks") {
					if depth < 2 && rapid.IntRange(0, 4).Draw(t, "nest") == 0 {
						m = append(m, build(depth+1))
						continue
					}
					m = append(m, newStep())
				}
				c.methods = append(c.methods, m)
			}
			return c
		}

		state := &journal{}
		plan, err := NewPlanner[*journal](build(0)).Plan(state)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if plan == nil {
			if len(state.items) != 0 {
				t.Fatalf("failed plan left effects behind: %v", state.items)
			}
			return
		}
		if !slices.Equal(planNames(plan), state.items) {
			t.Fatalf("plan %v does not match state %v", planNames(plan), state.items)
		}
	})
}
