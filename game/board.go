package game

import (
	"math/rand"
	"strings"
	"time"
)

// NewBoard creates a board with mineCount mines placed at random. A nil
// rng gets a time-seeded one; pass a seeded rng for reproducible boards.
func NewBoard(width, height, mineCount int, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cells := make([][]Square, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]Square, width)
	}

	board := &Board{
		Width:     width,
		Height:    height,
		MineCount: mineCount,
		Cells:     cells,
	}

	board.placeMines(mineCount, rng)
	board.calculateNeighbors()

	return board
}

func (b *Board) placeMines(count int, rng *rand.Rand) {
	minesPlaced := 0
	for minesPlaced < count {
		x := rng.Intn(b.Width)
		y := rng.Intn(b.Height)

		if !b.Cells[y][x].IsMine {
			b.Cells[y][x].IsMine = true
			minesPlaced++
		}
	}
}

// calculateNeighbors fills in NeighborCount for every square.
func (b *Board) calculateNeighbors() {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Cells[y][x].IsMine {
				continue
			}
			b.Cells[y][x].NeighborCount = b.NearbyMines(x, y)
		}
	}
}

// NearbyMines counts the mines among the up-to-8 squares around (x, y),
// clipped at the board edges. The square itself is not counted.
func (b *Board) NearbyMines(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx >= 0 && nx < b.Width && ny >= 0 && ny < b.Height {
				if b.Cells[ny][nx].IsMine {
					count++
				}
			}
		}
	}
	return count
}

// InBounds reports whether (x, y) is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// IsMine reports whether the square at (x, y) hides a mine.
func (b *Board) IsMine(x, y int) bool {
	return b.Cells[y][x].IsMine
}

// Open reveals the square at (x, y). Returns false when it hit a mine,
// true otherwise (including out-of-bounds and already-open squares, which
// are ignored). Opening a square with zero nearby mines floods outward to
// its neighbors; the flood is a worklist, not recursion, so big empty
// regions cannot blow the stack.
func (b *Board) Open(x, y int) bool {
	if !b.InBounds(x, y) {
		return true
	}

	cell := &b.Cells[y][x]
	if cell.IsRevealed || cell.IsFlagged {
		return true
	}

	cell.IsRevealed = true
	if cell.IsMine {
		return false
	}

	if cell.NeighborCount == 0 {
		b.flood(x, y)
	}
	return true
}

type point struct{ x, y int }

// flood opens everything connected to (x, y) through zero-count squares.
func (b *Board) flood(x, y int) {
	queue := []point{{x, y}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.x+dx, p.y+dy
				if !b.InBounds(nx, ny) {
					continue
				}
				cell := &b.Cells[ny][nx]
				if cell.IsRevealed || cell.IsFlagged || cell.IsMine {
					continue
				}
				cell.IsRevealed = true
				if cell.NeighborCount == 0 {
					queue = append(queue, point{nx, ny})
				}
			}
		}
	}
}

// ToggleFlag flips the flag on the square at (x, y). Revealed squares
// cannot be flagged.
func (b *Board) ToggleFlag(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	cell := &b.Cells[y][x]
	if cell.IsRevealed {
		return
	}
	cell.IsFlagged = !cell.IsFlagged
}

// Flag sets the flag on the square at (x, y) if it is still hidden.
func (b *Board) Flag(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	cell := &b.Cells[y][x]
	if !cell.IsRevealed {
		cell.IsFlagged = true
	}
}

// GetFlagCount returns how many squares are currently flagged.
func (b *Board) GetFlagCount() int {
	count := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Cells[y][x].IsFlagged {
				count++
			}
		}
	}
	return count
}

// Won reports whether every mine is flagged and nothing else is.
func (b *Board) Won() bool {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Cells[y][x].IsMine != b.Cells[y][x].IsFlagged {
				return false
			}
		}
	}
	return true
}

// CheckClear reports whether every non-mine square has been revealed.
func (b *Board) CheckClear() bool {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			cell := b.Cells[y][x]
			if !cell.IsMine && !cell.IsRevealed {
				return false
			}
		}
	}
	return true
}

// Exploded reports whether a mine has been revealed.
func (b *Board) Exploded() bool {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			cell := b.Cells[y][x]
			if cell.IsMine && cell.IsRevealed {
				return true
			}
		}
	}
	return false
}

// String renders the board for the console: "-" hidden, "F" flagged,
// "*" a revealed mine, "." a revealed zero, digits otherwise.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			cell := b.Cells[y][x]
			switch {
			case cell.IsRevealed && cell.IsMine:
				sb.WriteByte('*')
			case cell.IsRevealed && cell.NeighborCount == 0:
				sb.WriteByte('.')
			case cell.IsRevealed:
				sb.WriteByte(byte('0' + cell.NeighborCount))
			case cell.IsFlagged:
				sb.WriteByte('F')
			default:
				sb.WriteByte('-')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
