package entity

// Segment is one maximal straight run of cells belonging to a line
// family: a whole row, a whole column, or the on-board part of a
// diagonal through a given cell. A segment becomes complete exactly
// once per game, on the move that fills its last empty cell, so callers
// only ever check segments through the cell just played.
type Segment struct {
	Row      int
	Col      int
	DeltaRow int
	DeltaCol int
	Length   int
}

func (that *Board) RowSegment(row int) Segment {
	return Segment{Row: row, Col: 0, DeltaRow: 0, DeltaCol: 1, Length: that.Size}
}

func (that *Board) ColSegment(col int) Segment {
	return Segment{Row: 0, Col: col, DeltaRow: 1, DeltaCol: 0, Length: that.Size}
}

// AscSegment - the maximal on-board anti-diagonal segment through the
// cell, anchored at its bottom-left end and running up-right. Corner
// cells on the other two corners yield a trivial one-cell segment.
func (that *Board) AscSegment(row, col int) Segment {
	offset := min(that.Size-1-row, col)
	startRow := row + offset
	startCol := col - offset

	return Segment{
		Row:      startRow,
		Col:      startCol,
		DeltaRow: -1,
		DeltaCol: 1,
		Length:   startRow - startCol + 1,
	}
}

// DescSegment - the maximal on-board main-diagonal segment through the
// cell, anchored at its top-left end and running down-right.
func (that *Board) DescSegment(row, col int) Segment {
	offset := min(row, col)
	startRow := row - offset
	startCol := col - offset

	return Segment{
		Row:      startRow,
		Col:      startCol,
		DeltaRow: 1,
		DeltaCol: 1,
		Length:   that.Size - max(startRow, startCol),
	}
}

// Complete - reports whether every cell along the segment is occupied,
// by either player.
func (that Segment) Complete(board *Board) bool {
	for i := 0; i < that.Length; i++ {
		if !board.IsOccupied(that.Row+i*that.DeltaRow, that.Col+i*that.DeltaCol) {
			return false
		}
	}

	return true
}

// Count - counts the cells along the segment owned by the given player.
// A mixed-ownership line awards points only for the mover's own marks.
func (that Segment) Count(board *Board, player Player) int {
	count := 0
	for i := 0; i < that.Length; i++ {
		if board.Cells[that.Row+i*that.DeltaRow][that.Col+i*that.DeltaCol] == player {
			count++
		}
	}

	return count
}
