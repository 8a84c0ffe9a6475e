package ai

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(width, height int) *Agent {
	return NewAgent(width, height, rand.New(rand.NewSource(1)), zerolog.Nop())
}

func assertDisjoint(t *testing.T, a *Agent) {
	t.Helper()
	for c := range a.Mines() {
		assert.False(t, a.Safes().Has(c), "cell %s both mine and safe", c)
	}
}

func TestAddKnowledgeMarksCellSafe(t *testing.T) {
	a := newTestAgent(3, 3)
	a.AddKnowledge(Cell{1, 1}, 2)

	assert.True(t, a.MovesMade().Has(Cell{1, 1}))
	assert.True(t, a.Safes().Has(Cell{1, 1}))
	assert.Equal(t, 1, a.KnowledgeSize())
	assertDisjoint(t, a)
}

func TestZeroCountMakesNeighborsSafe(t *testing.T) {
	a := newTestAgent(3, 3)
	a.AddKnowledge(Cell{0, 0}, 0)

	for _, n := range []Cell{{0, 1}, {1, 0}, {1, 1}} {
		assert.True(t, a.Safes().Has(n), "neighbor %s should be safe", n)
	}
	assert.Equal(t, 0, a.KnowledgeSize(), "resolved sentence should be dropped")
}

func TestFullCountMakesNeighborsMines(t *testing.T) {
	a := newTestAgent(3, 3)
	a.AddKnowledge(Cell{0, 0}, 3)

	for _, n := range []Cell{{0, 1}, {1, 0}, {1, 1}} {
		assert.True(t, a.Mines().Has(n), "neighbor %s should be a mine", n)
	}
	assertDisjoint(t, a)
}

// Scenario from a 1x3 board with the mine at (0,2): revealing (0,0) with
// count 0 proves (0,1) safe; revealing (0,1) with count 1 then proves
// (0,2) is the mine, because the safe neighbors drop out of the sentence.
func TestOneByThreeScenario(t *testing.T) {
	a := newTestAgent(3, 1)

	a.AddKnowledge(Cell{0, 0}, 0)
	assert.True(t, a.Safes().Has(Cell{0, 1}))

	a.AddKnowledge(Cell{0, 1}, 1)
	assert.True(t, a.Mines().Has(Cell{0, 2}))
	assertDisjoint(t, a)
}

// Subset rule: {(0,0),(0,1)}=1 inside {(0,0),(0,1),(0,2)}=2 must derive
// {(0,2)}=1, and the fixed point must then prove (0,2) a mine.
func TestSubsetDerivation(t *testing.T) {
	a := newTestAgent(3, 1)
	a.knowledge = append(a.knowledge,
		NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}), 1),
		NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2}), 2),
	)

	a.infer()

	assert.True(t, a.Mines().Has(Cell{0, 2}))
	assert.False(t, a.Mines().Has(Cell{0, 0}))
	assert.False(t, a.Mines().Has(Cell{0, 1}))
	assertDisjoint(t, a)
}

// A neighbor already proven to be a mine must not reappear in the new
// sentence, and must be subtracted from the count first.
func TestKnownMineNeighborAdjustsCount(t *testing.T) {
	a := newTestAgent(4, 1)

	a.AddKnowledge(Cell{0, 0}, 0) // (0,1) safe
	a.AddKnowledge(Cell{0, 1}, 1) // (0,2) proven mine
	require.True(t, a.Mines().Has(Cell{0, 2}))

	// (0,3)'s only neighbor is the known mine: count adjusts to zero and
	// no sentence is added.
	a.AddKnowledge(Cell{0, 3}, 1)
	assert.Equal(t, 0, a.KnowledgeSize())
	assert.True(t, a.Safes().Has(Cell{0, 3}))
	assertDisjoint(t, a)
}

func TestDuplicateSentencesAreNotAdded(t *testing.T) {
	a := newTestAgent(5, 5)
	s := NewSentence(NewCellSet(Cell{2, 2}, Cell{2, 3}), 1)

	assert.True(t, a.addSentence(s))
	assert.False(t, a.addSentence(NewSentence(NewCellSet(Cell{2, 3}, Cell{2, 2}), 1)))
	assert.Equal(t, 1, a.KnowledgeSize())
}

func TestSafeMove(t *testing.T) {
	a := newTestAgent(3, 3)

	_, ok := a.SafeMove()
	assert.False(t, ok, "no knowledge yet")

	a.AddKnowledge(Cell{0, 0}, 0)

	first, ok := a.SafeMove()
	require.True(t, ok)
	assert.False(t, a.MovesMade().Has(first))
	assert.True(t, a.Safes().Has(first))

	// Pure: no intervening knowledge, same answer.
	second, ok := a.SafeMove()
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestRandomMoveAvoidsMinesAndMoves(t *testing.T) {
	a := newTestAgent(3, 3)
	a.AddKnowledge(Cell{0, 0}, 3) // neighbors all mines

	for i := 0; i < 100; i++ {
		c, ok := a.RandomMove()
		require.True(t, ok)
		assert.False(t, a.Mines().Has(c), "picked known mine %s", c)
		assert.False(t, a.MovesMade().Has(c), "picked played cell %s", c)
	}
}

func TestRandomMoveExhausted(t *testing.T) {
	a := newTestAgent(2, 1)
	a.movesMade.Add(Cell{0, 0})
	a.mines.Add(Cell{0, 1})

	_, ok := a.RandomMove()
	assert.False(t, ok)
}

func TestMarkMineOnKnownSafePanics(t *testing.T) {
	a := newTestAgent(2, 2)
	a.markSafe(Cell{0, 0})
	assert.Panics(t, func() { a.markMine(Cell{0, 0}) })
}

// The propagation loop must reach a fixed point on a full board worth of
// knowledge without the sentence set growing without bound.
func TestInferenceTerminates(t *testing.T) {
	const size = 5
	// One fixed mine layout; every other cell is revealed with its true
	// count, in row-major order, like a full game would.
	mines := NewCellSet(Cell{0, 4}, Cell{2, 1}, Cell{3, 3}, Cell{4, 0})

	a := newTestAgent(size, size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			c := Cell{row, col}
			if mines.Has(c) || a.Mines().Has(c) {
				continue
			}
			count := 0
			for _, n := range a.Neighbors(c) {
				if mines.Has(n) {
					count++
				}
			}
			a.AddKnowledge(c, count)
		}
	}

	assert.True(t, a.Mines().Equal(mines), "got %s", a.Mines())
	assert.LessOrEqual(t, a.KnowledgeSize(), size*size)
	assertDisjoint(t, a)
}

func TestNeighborsClippedAtEdges(t *testing.T) {
	a := newTestAgent(3, 3)

	tests := []struct {
		name string
		cell Cell
		want int
	}{
		{"corner", Cell{0, 0}, 3},
		{"edge", Cell{0, 1}, 5},
		{"center", Cell{1, 1}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, a.Neighbors(tt.cell), tt.want)
		})
	}
}
