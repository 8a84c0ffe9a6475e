package viewmodel

import (
	"github.com/teyteymey/minesweeper/ai"
	"github.com/teyteymey/minesweeper/game"
)

// CellView is the client-facing state of one square.
type CellView struct {
	State     string `json:"state"` // "hidden", "opened" or "flagged"
	Count     int    `json:"count"`
	IsMine    bool   `json:"is_mine"`
	KnownSafe bool   `json:"known_safe,omitempty"`
	KnownMine bool   `json:"known_mine,omitempty"`
}

// GameView is the full client-facing game state, including what the agent
// has deduced so far.
type GameView struct {
	Cells          [][]CellView `json:"cells"`
	MinesRemaining int          `json:"mines_remaining"`
	IsGameOver     bool         `json:"is_game_over"`
	IsGameClear    bool         `json:"is_game_clear"`
}

// NewGameView builds the view for a board. agent may be nil (manual play);
// when present its proven-safe and proven-mine cells are overlaid so a
// client can render the deductions. Mines are only exposed once the game
// is over or cleared.
func NewGameView(b *game.Board, agent *ai.Agent) GameView {
	if b == nil {
		return GameView{}
	}

	var knownSafes, knownMines ai.CellSet
	if agent != nil {
		knownSafes = agent.Safes()
		knownMines = agent.Mines()
	}

	isClear := b.CheckClear()
	isGameOver := b.Exploded()

	grid := make([][]CellView, b.Height)
	for y := 0; y < b.Height; y++ {
		grid[y] = make([]CellView, b.Width)
		for x := 0; x < b.Width; x++ {
			c := b.Cells[y][x]
			v := CellView{}

			switch {
			case c.IsRevealed:
				v.State = "opened"
				if c.IsMine {
					v.IsMine = true
				} else {
					v.Count = c.NeighborCount
				}
			case c.IsFlagged:
				v.State = "flagged"
			default:
				v.State = "hidden"
			}

			cell := ai.Cell{Row: y, Col: x}
			if knownSafes.Has(cell) {
				v.KnownSafe = true
			}
			if knownMines.Has(cell) {
				v.KnownMine = true
			}

			// Reveal the full board once the game has been decided.
			if c.IsMine && (isGameOver || isClear) {
				v.IsMine = true
				if isGameOver {
					v.State = "opened"
				} else {
					v.State = "flagged"
				}
			}

			grid[y][x] = v
		}
	}

	return GameView{
		Cells:          grid,
		MinesRemaining: b.MineCount - b.GetFlagCount(),
		IsGameOver:     isGameOver,
		IsGameClear:    isClear,
	}
}
