package cart

import (
	"sync"

	"github.com/google/uuid"
)

type Variant struct {
	Size  string
	Color string
}

type Line struct {
	LineID    string
	ProductID int64
	Quantity  int64
	UnitPrice int64 // VND
	Variant   Variant
	Selected  bool
}

// Store holds the authoritative view of what one user intends to buy.
// All mutations are serialized; there is one Store per user session.
type Store struct {
	mu    sync.Mutex
	lines []*Line
}

func NewStore(initial []Line) *Store {
	s := &Store{lines: make([]*Line, 0, len(initial))}
	for i := range initial {
		line := initial[i]
		s.lines = append(s.lines, &line)
	}
	return s
}

// AddLine merges into an existing line with the same (product, variant),
// otherwise appends a new line with quantity 1. Quantity is not capped.
func (s *Store) AddLine(productID, unitPrice int64, variant Variant) Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.lines {
		if l.ProductID == productID && l.Variant == variant {
			l.Quantity++
			return *l
		}
	}

	l := &Line{
		LineID:    uuid.NewString(),
		ProductID: productID,
		Quantity:  1,
		UnitPrice: unitPrice,
		Variant:   variant,
	}
	s.lines = append(s.lines, l)
	return *l
}

// SetQuantity updates a line in place. A quantity of zero or less removes the
// line, same as RemoveLine.
func (s *Store) SetQuantity(lineID string, quantity int64) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(lineID)
		return Line{}, false
	}
	for _, l := range s.lines {
		if l.LineID == lineID {
			l.Quantity = quantity
			return *l, true
		}
	}
	return Line{}, false
}

// RemoveLine removes unconditionally; no-op when the line is absent.
func (s *Store) RemoveLine(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(lineID)
}

// RemoveLines removes the given lines, leaving every other line untouched.
func (s *Store) RemoveLines(lineIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range lineIDs {
		s.removeLocked(id)
	}
}

func (s *Store) removeLocked(lineID string) {
	for i, l := range s.lines {
		if l.LineID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// SetSelected marks lines as checked for checkout. Unknown ids are ignored.
func (s *Store) SetSelected(lineIDs []string, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]bool, len(lineIDs))
	for _, id := range lineIDs {
		wanted[id] = true
	}
	for _, l := range s.lines {
		if wanted[l.LineID] {
			l.Selected = selected
		}
	}
}

// Lines returns a copy of all lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	for i, l := range s.lines {
		out[i] = *l
	}
	return out
}

// Selected returns the checked subset. It is derived on every call, never
// cached.
func (s *Store) Selected() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Line
	for _, l := range s.lines {
		if l.Selected {
			out = append(out, *l)
		}
	}
	return out
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}
