package ai

import "fmt"

// Sentence is a logical statement about the board: exactly Count of the
// cells in Cells are mines. Sentences shrink as cells become known; a
// sentence whose cell set is empty carries no information.
type Sentence struct {
	cells CellSet
	count int
}

// NewSentence builds a sentence over a copy of the given cells.
func NewSentence(cells CellSet, count int) *Sentence {
	return &Sentence{cells: cells.Clone(), count: count}
}

// Cells returns a copy of the remaining undetermined cells.
func (s *Sentence) Cells() CellSet {
	return s.cells.Clone()
}

// Count returns how many of the remaining cells are mines.
func (s *Sentence) Count() int {
	return s.count
}

// KnownMines returns the cells this sentence alone proves to be mines:
// all of them, when the count equals the set size and is positive.
func (s *Sentence) KnownMines() CellSet {
	if s.count > 0 && s.count == s.cells.Len() {
		return s.cells.Clone()
	}
	return NewCellSet()
}

// KnownSafes returns the cells this sentence alone proves to be safe:
// all of them, when the count is zero.
func (s *Sentence) KnownSafes() CellSet {
	if s.count == 0 {
		return s.cells.Clone()
	}
	return NewCellSet()
}

// MarkMine records that cell is a mine. The cell leaves the set and the
// count drops by one, since one mine is now accounted for. No-op when the
// cell is not a member, so the count can never go negative here.
func (s *Sentence) MarkMine(cell Cell) {
	if s.cells.Has(cell) {
		s.cells.Remove(cell)
		s.count--
	}
}

// MarkSafe records that cell is safe. The cell leaves the set and the
// count stays put, since a safe cell contributes nothing to it.
func (s *Sentence) MarkSafe(cell Cell) {
	if s.cells.Has(cell) {
		s.cells.Remove(cell)
	}
}

// Equal reports whether both sentences say the same thing: same cell set
// and same count. Used to keep the knowledge base free of duplicates.
func (s *Sentence) Equal(other *Sentence) bool {
	return s.count == other.count && s.cells.Equal(other.cells)
}

func (s *Sentence) String() string {
	return fmt.Sprintf("%s = %d", s.cells, s.count)
}
