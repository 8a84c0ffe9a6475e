package ai

import (
	"fmt"
	"sort"
)

// Cell identifies one square on the board by row and column.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Less orders cells row-major. Map iteration order is randomized in Go,
// so anything that must be deterministic iterates cells in this order.
func (c Cell) Less(other Cell) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// CellSet is a finite set of cells.
type CellSet map[Cell]struct{}

// NewCellSet builds a set from the given cells.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

func (s CellSet) Add(c Cell)      { s[c] = struct{}{} }
func (s CellSet) Remove(c Cell)   { delete(s, c) }
func (s CellSet) Has(c Cell) bool { _, ok := s[c]; return ok }
func (s CellSet) Len() int        { return len(s) }

// Clone returns an independent copy of the set.
func (s CellSet) Clone() CellSet {
	out := make(CellSet, len(s))
	for c := range s {
		out.Add(c)
	}
	return out
}

// Equal reports whether both sets contain exactly the same cells.
func (s CellSet) Equal(other CellSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// ProperSubsetOf reports whether s is contained in other and strictly smaller.
func (s CellSet) ProperSubsetOf(other CellSet) bool {
	if len(s) >= len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// Diff returns the cells of s that are not in other.
func (s CellSet) Diff(other CellSet) CellSet {
	out := NewCellSet()
	for c := range s {
		if !other.Has(c) {
			out.Add(c)
		}
	}
	return out
}

// Sorted returns the cells in row-major order.
func (s CellSet) Sorted() []Cell {
	out := make([]Cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (s CellSet) String() string {
	str := "{"
	for i, c := range s.Sorted() {
		if i > 0 {
			str += " "
		}
		str += c.String()
	}
	return str + "}"
}
