// gen plays a batch of games and writes one CSV row per move, for offline
// analysis of how often the agent has to guess and where games are lost.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/teyteymey/minesweeper/ai"
	"github.com/teyteymey/minesweeper/game"
	"github.com/teyteymey/minesweeper/solver"
)

func main() {
	var (
		games    = flag.Int("games", 1000, "number of games to play")
		width    = flag.Int("width", 10, "board width")
		height   = flag.Int("height", 10, "board height")
		mines    = flag.Int("mines", 10, "mine count")
		seed     = flag.Int64("seed", 0, "base RNG seed (0 = time)")
		filename = flag.String("out", "dataset.csv", "output CSV file")
	)
	flag.Parse()

	log := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)

	file, err := os.Create(*filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create output:", err)
		os.Exit(1)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"game", "move", "row", "col", "strategy", "guess", "survived"})

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	fmt.Printf("Generating data from %d games...\n", *games)

	wins := 0
	for i := 0; i < *games; i++ {
		rng := rand.New(rand.NewSource(baseSeed + int64(i)))
		board := game.NewBoard(*width, *height, *mines, rng)
		agent := ai.NewAgent(*width, *height, rng, log)
		s := solver.New(board, agent, log)

		moveNum := 0
		for !board.CheckClear() {
			move, alive := s.Step()
			if move == nil {
				break
			}
			moveNum++
			writer.Write([]string{
				strconv.Itoa(i),
				strconv.Itoa(moveNum),
				strconv.Itoa(move.Cell.Row),
				strconv.Itoa(move.Cell.Col),
				move.Strategy,
				strconv.FormatBool(move.IsGuess),
				strconv.FormatBool(alive),
			})
			if !alive {
				break
			}
		}
		if board.CheckClear() {
			wins++
		}
	}

	fmt.Printf("done: %d/%d games won, dataset written to %s\n", wins, *games, *filename)
}
