package solver

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teyteymey/minesweeper/ai"
	"github.com/teyteymey/minesweeper/game"
)

// newTestGame builds a solver over a board with a fixed mine layout.
// mines are given as (x, y) pairs.
func newTestGame(width, height int, mines [][2]int) *Solver {
	cells := make([][]game.Square, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]game.Square, width)
	}
	b := &game.Board{Width: width, Height: height, MineCount: len(mines), Cells: cells}
	for _, m := range mines {
		b.Cells[m[1]][m[0]].IsMine = true
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !b.Cells[y][x].IsMine {
				b.Cells[y][x].NeighborCount = b.NearbyMines(x, y)
			}
		}
	}

	agent := ai.NewAgent(width, height, rand.New(rand.NewSource(1)), zerolog.Nop())
	return New(b, agent, zerolog.Nop())
}

func TestNextMoveGuessesWithoutKnowledge(t *testing.T) {
	s := newTestGame(3, 3, [][2]int{{0, 0}})

	move := s.NextMove()
	require.NotNil(t, move)
	assert.Equal(t, "Random", move.Strategy)
	assert.True(t, move.IsGuess)
}

func TestNextMovePrefersLogic(t *testing.T) {
	// 5x1 strip with the mine at x=2. Opening x=0 floods x=1 open, which
	// proves the mine; opening x=3 then proves x=4 safe, so the next
	// move must be the logic pick of x=4.
	s := newTestGame(5, 1, [][2]int{{2, 0}})

	require.True(t, s.Board.Open(0, 0))
	s.SyncKnowledge()
	require.True(t, s.Agent.Mines().Has(ai.Cell{Row: 0, Col: 2}))

	require.True(t, s.Board.Open(3, 0))
	s.SyncKnowledge()

	move := s.NextMove()
	require.NotNil(t, move)
	assert.Equal(t, "Logic", move.Strategy)
	assert.False(t, move.IsGuess)
	assert.Equal(t, ai.Cell{Row: 0, Col: 4}, move.Cell)
}

func TestStepFeedsFloodedCellsToAgent(t *testing.T) {
	// Single mine in a corner of 4x4: any first move away from it floods
	// a zero region and all revealed counts must reach the agent.
	s := newTestGame(4, 4, [][2]int{{0, 0}})

	require.True(t, s.Board.Open(3, 3))
	s.SyncKnowledge()

	made := s.Agent.MovesMade()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if s.Board.Cells[y][x].IsRevealed {
				assert.True(t, made.Has(ai.Cell{Row: y, Col: x}),
					"revealed (%d,%d) not known to agent", x, y)
			}
		}
	}
	assert.True(t, s.Agent.Mines().Has(ai.Cell{Row: 0, Col: 0}))
}

func TestStepFlagsKnownMines(t *testing.T) {
	s := newTestGame(3, 1, [][2]int{{2, 0}})

	require.True(t, s.Board.Open(0, 0))
	s.SyncKnowledge()
	s.flagKnownMines()

	assert.True(t, s.Board.Cells[0][2].IsFlagged)
}

// A board whose safe region is fully connected must be won without a
// single guess after the first move lands in it.
func TestPlaySolvesConnectedBoard(t *testing.T) {
	s := newTestGame(4, 4, [][2]int{{0, 0}})

	// Open the far corner first so the flood reveals the zero region,
	// then let the solver finish.
	require.True(t, s.Board.Open(3, 3))
	s.SyncKnowledge()

	res := s.Play(0)
	assert.True(t, res.Won)
	assert.False(t, res.Exploded)
	assert.True(t, s.Board.Won(), "known mine should end up flagged")
}

func TestPlayTerminates(t *testing.T) {
	// Random seeded games on a real board: whatever happens, Play must
	// stop and report a consistent result.
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := game.NewBoard(8, 8, 10, rng)
		agent := ai.NewAgent(8, 8, rng, zerolog.Nop())
		s := New(b, agent, zerolog.Nop())

		res := s.Play(0)
		assert.LessOrEqual(t, res.Moves, 8*8*2)
		assert.LessOrEqual(t, res.Guesses, res.Moves)
		if res.Exploded {
			assert.False(t, res.Won)
		}
	}
}
