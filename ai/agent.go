package ai

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// Agent plays minesweeper by keeping a knowledge base of sentences and
// propagating facts through it. It never looks at the board directly: the
// driver feeds it (cell, nearby-mine count) pairs for each revealed cell
// and asks it for the next move.
type Agent struct {
	width  int
	height int

	movesMade CellSet
	mines     CellSet
	safes     CellSet
	knowledge []*Sentence

	rng *rand.Rand
	log zerolog.Logger
}

// NewAgent creates an agent for a width x height board. A nil rng gets a
// time-seeded one.
func NewAgent(width, height int, rng *rand.Rand, log zerolog.Logger) *Agent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Agent{
		width:     width,
		height:    height,
		movesMade: NewCellSet(),
		mines:     NewCellSet(),
		safes:     NewCellSet(),
		rng:       rng,
		log:       log,
	}
}

// MovesMade returns a copy of the cells the agent has already played.
func (a *Agent) MovesMade() CellSet { return a.movesMade.Clone() }

// Mines returns a copy of the cells proven to be mines.
func (a *Agent) Mines() CellSet { return a.mines.Clone() }

// Safes returns a copy of the cells proven safe.
func (a *Agent) Safes() CellSet { return a.safes.Clone() }

// KnowledgeSize returns how many sentences the knowledge base holds.
func (a *Agent) KnowledgeSize() int { return len(a.knowledge) }

// AddKnowledge records that cell was revealed and had count mines among
// its neighbors, then infers everything that now follows. The cell itself
// becomes a made move and a known safe. Its undetermined neighbors form a
// new sentence, with the count adjusted down by neighbors already known
// to be mines. Inference then runs to a fixed point.
func (a *Agent) AddKnowledge(cell Cell, count int) {
	a.movesMade.Add(cell)
	a.markSafe(cell)

	unknown := NewCellSet()
	adjusted := count
	for _, n := range a.Neighbors(cell) {
		switch {
		case a.mines.Has(n):
			// Already accounted for; it must not reappear as a member.
			adjusted--
		case a.safes.Has(n):
			// Contributes nothing.
		default:
			unknown.Add(n)
		}
	}
	if unknown.Len() > 0 {
		s := NewSentence(unknown, adjusted)
		if a.addSentence(s) {
			a.log.Debug().Stringer("sentence", s).Msg("new sentence")
		}
	}

	a.infer()
}

// infer runs the propagation loop until a full pass changes nothing:
// extract facts from sentences, drop resolved sentences, then derive new
// sentences from subset pairs. Terminates because the board is finite,
// sentences only shrink, and distinct sentences over a finite board are
// bounded.
func (a *Agent) infer() {
	for changed := true; changed; {
		changed = false

		foundMines := NewCellSet()
		foundSafes := NewCellSet()
		for _, s := range a.knowledge {
			for c := range s.KnownMines() {
				foundMines.Add(c)
			}
			for c := range s.KnownSafes() {
				foundSafes.Add(c)
			}
		}
		for _, c := range foundMines.Sorted() {
			if !a.mines.Has(c) {
				a.markMine(c)
				changed = true
			}
		}
		for _, c := range foundSafes.Sorted() {
			if !a.safes.Has(c) {
				a.markSafe(c)
				changed = true
			}
		}

		kept := a.knowledge[:0]
		for _, s := range a.knowledge {
			if s.cells.Len() > 0 {
				kept = append(kept, s)
			}
		}
		a.knowledge = kept

		// Subset rule: if exactly m of A and exactly n of B ⊇ A are
		// mines, then exactly n-m of B−A are mines.
		var derived []*Sentence
		for _, sub := range a.knowledge {
			if sub.cells.Len() == 0 {
				continue
			}
			for _, super := range a.knowledge {
				if sub == super || !sub.cells.ProperSubsetOf(super.cells) {
					continue
				}
				derived = append(derived,
					NewSentence(super.cells.Diff(sub.cells), super.count-sub.count))
			}
		}
		for _, d := range derived {
			if d.cells.Len() == 0 {
				continue
			}
			if a.addSentence(d) {
				a.log.Debug().Stringer("sentence", d).Msg("derived sentence")
				changed = true
			}
		}
	}
}

// addSentence appends s unless an equal sentence is already present.
func (a *Agent) addSentence(s *Sentence) bool {
	for _, k := range a.knowledge {
		if k.Equal(s) {
			return false
		}
	}
	a.knowledge = append(a.knowledge, s)
	return true
}

// markMine records cell as a proven mine and pushes the fact into every
// sentence. A cell proven both safe and mine means the inference itself
// is broken, so that panics rather than limping on.
func (a *Agent) markMine(cell Cell) {
	if a.safes.Has(cell) {
		panic(fmt.Sprintf("ai: cell %s marked mine but already known safe", cell))
	}
	a.mines.Add(cell)
	for _, s := range a.knowledge {
		s.MarkMine(cell)
	}
	a.log.Debug().Stringer("cell", cell).Msg("proven mine")
}

// markSafe records cell as proven safe and pushes the fact into every
// sentence.
func (a *Agent) markSafe(cell Cell) {
	if a.mines.Has(cell) {
		panic(fmt.Sprintf("ai: cell %s marked safe but already known mine", cell))
	}
	a.safes.Add(cell)
	for _, s := range a.knowledge {
		s.MarkSafe(cell)
	}
}

// SafeMove returns a cell known to be safe that has not been played yet.
// The pick is the smallest such cell in row-major order, so repeated
// calls without new knowledge return the same answer. Read-only.
func (a *Agent) SafeMove() (Cell, bool) {
	for _, c := range a.safes.Sorted() {
		if !a.movesMade.Has(c) {
			return c, true
		}
	}
	return Cell{}, false
}

// RandomMove returns a uniformly random cell that has not been played and
// is not a known mine, for when no safe move exists. Read-only on the
// knowledge base.
func (a *Agent) RandomMove() (Cell, bool) {
	candidates := make([]Cell, 0, a.width*a.height)
	for row := 0; row < a.height; row++ {
		for col := 0; col < a.width; col++ {
			c := Cell{Row: row, Col: col}
			if !a.movesMade.Has(c) && !a.mines.Has(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return Cell{}, false
	}
	return candidates[a.rng.Intn(len(candidates))], true
}

// Neighbors returns the up-to-8 cells adjacent to c, clipped at the board
// edges. Same enumeration the board uses for its mine counts.
func (a *Agent) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{Row: c.Row + dr, Col: c.Col + dc}
			if n.Row >= 0 && n.Row < a.height && n.Col >= 0 && n.Col < a.width {
				out = append(out, n)
			}
		}
	}
	return out
}
