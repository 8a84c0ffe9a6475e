package game

// Square holds the state of one board square.
type Square struct {
	IsMine        bool // hides a mine
	IsRevealed    bool // already opened
	IsFlagged     bool // flagged by the player or the agent
	NeighborCount int  // mines among the surrounding 8 squares
}

// Board is the full game state. Cells is indexed [y][x].
type Board struct {
	Width     int
	Height    int
	MineCount int
	Cells     [][]Square
}
