package commander

import (
	"slices"

	"github.com/felixgeelhaar/commander/internal/theater"
)

// TargetSet is an insertion-ordered set of targets keyed by ID.
type TargetSet struct {
	items []theater.Target
}

func newTargetSet(targets []theater.Target) *TargetSet {
	s := &TargetSet{}
	for _, t := range targets {
		s.add(t)
	}
	return s
}

// Contains reports whether a target with id is in the set.
func (s *TargetSet) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

// Len returns the number of targets.
func (s *TargetSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the targets in order.
func (s *TargetSet) Items() []theater.Target {
	return slices.Clone(s.items)
}

// IDs returns the target IDs in order.
func (s *TargetSet) IDs() []string {
	ids := make([]string, len(s.items))
	for i, t := range s.items {
		ids[i] = t.ID
	}
	return ids
}

func (s *TargetSet) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(t theater.Target) bool { return t.ID == id })
}

func (s *TargetSet) add(t theater.Target) bool {
	if s.Contains(t.ID) {
		return false
	}
	s.items = append(s.items, t)
	return true
}

// remove deletes the target and returns where it was so it can be put back.
func (s *TargetSet) remove(id string) (int, theater.Target, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return 0, theater.Target{}, false
	}
	t := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	return i, t, true
}

func (s *TargetSet) insert(i int, t theater.Target) {
	s.items = slices.Insert(s.items, i, t)
}

func (s *TargetSet) clear() {
	s.items = nil
}
