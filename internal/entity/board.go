package entity

// Player identifies a participant slot within a session.
type Player int

const (
	PlayerNone Player = 0
	PlayerOne  Player = 1
	PlayerTwo  Player = 2
)

// Opponent - returns the other player slot.
func (that Player) Opponent() Player {
	if that == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Board is a square grid of cell owners. A cell is owned by at most one
// player and never reverts to empty except on a full reset.
type Board struct {
	Size  int        `json:"size"`
	Cells [][]Player `json:"cells"`
}

func NewBoard(size int) *Board {
	cells := make([][]Player, size)
	for row := range cells {
		cells[row] = make([]Player, size)
	}

	return &Board{Size: size, Cells: cells}
}

// InBounds - reports whether the coordinates address a cell on the board.
func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.Size && col >= 0 && col < that.Size
}

func (that *Board) IsOccupied(row, col int) bool {
	return that.Cells[row][col] != PlayerNone
}

// Place - marks the cell for the given player. The caller validates
// bounds and occupancy first.
func (that *Board) Place(row, col int, player Player) {
	that.Cells[row][col] = player
}

func (that *Board) IsFull() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == PlayerNone {
				return false
			}
		}
	}

	return true
}

// Clone - returns a deep copy of the board.
func (that *Board) Clone() *Board {
	clone := NewBoard(that.Size)
	for row := range that.Cells {
		copy(clone.Cells[row], that.Cells[row])
	}

	return clone
}
