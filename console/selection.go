package console

import "errors"

// ErrQuotaExceeded is returned by Add when the selection already holds as
// many questions as the exam allows
var ErrQuotaExceeded = errors.New("question quota exceeded")

// SelectionSet is the working set of question ids for an exam being
// authored. Membership is set-based, so re-adding a present id is a no-op,
// but insertion order is kept because the exam stores an ordered list. The
// quota is enforced at the point of addition, not at save time.
type SelectionSet struct {
	ids   map[uint]struct{}
	order []uint
}

// NewSelectionSet returns an empty selection
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: make(map[uint]struct{})}
}

// Initialize seeds the set from the exam's persisted question list. A
// malformed list with duplicate ids collapses to one entry per id.
func (s *SelectionSet) Initialize(existing []uint) {
	s.ids = make(map[uint]struct{}, len(existing))
	s.order = s.order[:0]
	for _, id := range existing {
		if _, ok := s.ids[id]; ok {
			continue
		}
		s.ids[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

// Add inserts id unless the quota is already met. Re-adding a present id
// succeeds without changing the set, even at quota.
func (s *SelectionSet) Add(id uint, quota int) error {
	if _, ok := s.ids[id]; ok {
		return nil
	}
	if len(s.order) >= quota {
		return ErrQuotaExceeded
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	return nil
}

// Remove drops id if present; absent ids are ignored
func (s *SelectionSet) Remove(id uint) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Size returns the number of selected questions
func (s *SelectionSet) Size() int {
	return len(s.order)
}

// Contains reports whether id is selected
func (s *SelectionSet) Contains(id uint) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns the selected ids in insertion order
func (s *SelectionSet) IDs() []uint {
	out := make([]uint, len(s.order))
	copy(out, s.order)
	return out
}
