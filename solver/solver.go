package solver

import (
	"github.com/rs/zerolog"

	"github.com/teyteymey/minesweeper/ai"
	"github.com/teyteymey/minesweeper/game"
)

// Move is one decision made by the solver.
type Move struct {
	Cell     ai.Cell
	Strategy string // "Logic" or "Random"
	IsGuess  bool
}

// Result summarizes one finished game.
type Result struct {
	Moves    int
	Guesses  int
	Won      bool
	Exploded bool
}

// Solver plays one board with one agent: ask the agent for a move, open
// the square, and feed the revealed counts back into the agent.
type Solver struct {
	Board *game.Board
	Agent *ai.Agent

	log zerolog.Logger
}

// New creates a solver for the given board. The agent is created to match
// the board's dimensions.
func New(b *game.Board, agent *ai.Agent, log zerolog.Logger) *Solver {
	return &Solver{Board: b, Agent: agent, log: log}
}

// NextMove picks the agent's next move: a proven-safe square when one
// exists, otherwise a uniformly random untried square that is not a known
// mine. Returns nil when no move is left.
func (s *Solver) NextMove() *Move {
	if cell, ok := s.Agent.SafeMove(); ok {
		return &Move{Cell: cell, Strategy: "Logic"}
	}
	if cell, ok := s.Agent.RandomMove(); ok {
		return &Move{Cell: cell, Strategy: "Random", IsGuess: true}
	}
	return nil
}

// Step plays one move. Returns the move (nil when none was available) and
// whether the game is still alive. After a surviving move every revealed
// square the agent has not yet learned about is fed to it, so flood-fill
// reveals become knowledge too.
func (s *Solver) Step() (*Move, bool) {
	move := s.NextMove()
	if move == nil {
		return nil, true
	}

	s.log.Debug().
		Stringer("cell", move.Cell).
		Str("strategy", move.Strategy).
		Bool("guess", move.IsGuess).
		Msg("opening square")

	if !s.Board.Open(move.Cell.Col, move.Cell.Row) {
		s.log.Info().Stringer("cell", move.Cell).Msg("hit a mine")
		return move, false
	}

	s.SyncKnowledge()
	s.flagKnownMines()
	return move, true
}

// SyncKnowledge feeds every revealed square the agent has not played yet
// into AddKnowledge with its true nearby-mine count.
func (s *Solver) SyncKnowledge() {
	made := s.Agent.MovesMade()
	for y := 0; y < s.Board.Height; y++ {
		for x := 0; x < s.Board.Width; x++ {
			// A revealed mine is a lost game, not knowledge.
			if !s.Board.Cells[y][x].IsRevealed || s.Board.Cells[y][x].IsMine {
				continue
			}
			cell := ai.Cell{Row: y, Col: x}
			if made.Has(cell) {
				continue
			}
			s.Agent.AddKnowledge(cell, s.Board.NearbyMines(x, y))
		}
	}
}

// flagKnownMines plants a flag on every square the agent has proven to be
// a mine, so Board.Won can see the agent's conclusions.
func (s *Solver) flagKnownMines() {
	for _, c := range s.Agent.Mines().Sorted() {
		s.Board.Flag(c.Col, c.Row)
	}
}

// Play runs the game until it is cleared, a mine explodes, no move is
// left, or maxMoves is reached (a safety cap; 0 means board area * 2).
func (s *Solver) Play(maxMoves int) Result {
	if maxMoves <= 0 {
		maxMoves = s.Board.Width * s.Board.Height * 2
	}

	var res Result
	for res.Moves < maxMoves {
		if s.Board.CheckClear() {
			s.flagKnownMines()
			res.Won = true
			break
		}

		move, alive := s.Step()
		if move == nil {
			break
		}
		res.Moves++
		if move.IsGuess {
			res.Guesses++
		}
		if !alive {
			res.Exploded = true
			break
		}
	}

	if !res.Exploded && s.Board.CheckClear() {
		res.Won = true
	}

	s.log.Info().
		Int("moves", res.Moves).
		Int("guesses", res.Guesses).
		Bool("won", res.Won).
		Bool("exploded", res.Exploded).
		Msg("game finished")
	return res
}
