package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/teyteymey/minesweeper/ai"
	"github.com/teyteymey/minesweeper/game"
	"github.com/teyteymey/minesweeper/solver"
	"github.com/teyteymey/minesweeper/store"
)

func newPlayCmd() *cobra.Command {
	var (
		games   int
		seed    int64
		render  bool
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Let the agent play one or more games",
		RunE: func(cmd *cobra.Command, args []string) error {
			if games > 0 {
				cfg.Games = games
			}
			if seed != 0 {
				cfg.Seed = seed
			}

			var st *store.Store
			if !noStore {
				var err error
				st, err = store.Open(cfg.Store.Path)
				if err != nil {
					return err
				}
				defer st.Close()
			}

			baseSeed := cfg.Seed
			if baseSeed == 0 {
				baseSeed = time.Now().UnixNano()
			}

			wins := 0
			for i := 0; i < cfg.Games; i++ {
				gameSeed := baseSeed + int64(i)
				res, err := playOne(gameSeed, render, st)
				if err != nil {
					return err
				}
				if res.Won {
					wins++
				}
			}

			fmt.Printf("played %d game(s), won %d\n", cfg.Games, wins)
			return nil
		},
	}

	cmd.Flags().IntVar(&games, "games", 0, "number of games to play (overrides config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "base RNG seed for reproducible runs")
	cmd.Flags().BoolVar(&render, "render", false, "print the board after every move")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not record games in the history store")
	return cmd
}

func playOne(seed int64, render bool, st *store.Store) (solver.Result, error) {
	rng := rand.New(rand.NewSource(seed))
	board := game.NewBoard(cfg.Board.Width, cfg.Board.Height, cfg.Board.Mines, rng)
	agent := ai.NewAgent(cfg.Board.Width, cfg.Board.Height, rng, log)
	s := solver.New(board, agent, log)

	startedAt := time.Now()
	var moves []store.MoveRecord
	var res solver.Result

	for {
		if board.CheckClear() {
			res.Won = true
			break
		}
		move, alive := s.Step()
		if move == nil {
			res.Won = board.CheckClear()
			break
		}

		res.Moves++
		if move.IsGuess {
			res.Guesses++
		}
		moves = append(moves, store.MoveRecord{
			Ordinal:  res.Moves,
			Row:      move.Cell.Row,
			Col:      move.Cell.Col,
			Strategy: move.Strategy,
			Guess:    move.IsGuess,
		})

		if render {
			fmt.Printf("move %d: %s %s\n%s\n", res.Moves, move.Strategy, move.Cell, board)
		}

		if !alive {
			res.Exploded = true
			break
		}
	}

	if st != nil {
		rec := store.GameRecord{
			ID:        uuid.NewString(),
			Seed:      seed,
			Width:     cfg.Board.Width,
			Height:    cfg.Board.Height,
			Mines:     cfg.Board.Mines,
			Won:       res.Won,
			Exploded:  res.Exploded,
			Guesses:   res.Guesses,
			StartedAt: startedAt,
			EndedAt:   time.Now(),
			Moves:     moves,
		}
		if err := st.RecordGame(rec); err != nil {
			return res, fmt.Errorf("record game: %w", err)
		}
	}
	return res, nil
}
