package service

import "github.com/jask/foodboard/internal/food"

// State is the client-side view of the foods collection plus dialog
// visibility. It does no I/O and has no lock: exactly one goroutine owns it.
type State struct {
	foods   []food.Food
	editing *food.Food
	addOpen bool
	addSeq  uint64 // bumped on every OpenAdd
}

// NewState returns an empty state with both dialogs closed.
func NewState() *State {
	return &State{foods: []food.Food{}}
}

// Foods returns a copy of the list in order.
func (s *State) Foods() []food.Food {
	out := make([]food.Food, len(s.foods))
	copy(out, s.foods)
	return out
}

func (s *State) Len() int { return len(s.foods) }

// Find returns the food with id, if present.
func (s *State) Find(id int64) (food.Food, bool) {
	for _, f := range s.foods {
		if f.ID == id {
			return f, true
		}
	}
	return food.Food{}, false
}

// Replace swaps the whole list for list.
func (s *State) Replace(list []food.Food) {
	s.foods = make([]food.Food, len(list))
	copy(s.foods, list)
}

// Append adds f at the end. No deduplication.
func (s *State) Append(f food.Food) {
	s.foods = append(s.foods, f)
}

// ReplaceByID swaps every element whose id matches f.ID for f and reports
// whether one was found. The length never changes.
func (s *State) ReplaceByID(f food.Food) bool {
	found := false
	for i := range s.foods {
		if s.foods[i].ID == f.ID {
			s.foods[i] = f
			found = true
		}
	}
	return found
}

// RemoveByID drops every element with id and returns how many went.
func (s *State) RemoveByID(id int64) int {
	kept := make([]food.Food, 0, len(s.foods))
	for _, f := range s.foods {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	removed := len(s.foods) - len(kept)
	s.foods = kept
	return removed
}

// OpenAdd opens a fresh add dialog session.
func (s *State) OpenAdd() {
	s.addOpen = true
	s.addSeq++
}

func (s *State) CloseAdd()     { s.addOpen = false }
func (s *State) AddOpen() bool { return s.addOpen }

// AddSession identifies the most recent add dialog opening. Zero means the
// dialog was never opened.
func (s *State) AddSession() uint64 { return s.addSeq }

// OpenEdit selects f as the edit target, which opens the edit dialog.
func (s *State) OpenEdit(f food.Food) {
	target := f
	s.editing = &target
}

// CloseEdit clears the edit target, which closes the edit dialog.
func (s *State) CloseEdit() { s.editing = nil }

func (s *State) EditOpen() bool { return s.editing != nil }

// EditTarget returns the record being edited, if any.
func (s *State) EditTarget() (food.Food, bool) {
	if s.editing == nil {
		return food.Food{}, false
	}
	return *s.editing, true
}
