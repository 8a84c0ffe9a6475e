package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teyteymey/minesweeper/store"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print aggregate stats from the game history store",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := st.Stats()
			if err != nil {
				return err
			}

			fmt.Printf("games:      %d\n", stats.Games)
			fmt.Printf("wins:       %d (%.1f%%)\n", stats.Wins, stats.WinRate()*100)
			fmt.Printf("explosions: %d\n", stats.Explosions)
			fmt.Printf("moves:      %d\n", stats.Moves)
			fmt.Printf("guesses:    %d (%.1f%% of moves)\n", stats.Guesses, stats.GuessRate()*100)
			return nil
		},
	}
}
