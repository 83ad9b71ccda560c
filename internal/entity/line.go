package entity

// Line is a set of three cells that wins the game when they share a mark.
type Line struct {
	ID    string   `json:"id"`
	Cells [3]Coord `json:"cells"`
}

// Lines lists every winning line in the order they are checked:
// rows top to bottom, columns left to right, then the two diagonals.
var Lines = [8]Line{
	{ID: "row-0", Cells: [3]Coord{{0, 0}, {0, 1}, {0, 2}}},
	{ID: "row-1", Cells: [3]Coord{{1, 0}, {1, 1}, {1, 2}}},
	{ID: "row-2", Cells: [3]Coord{{2, 0}, {2, 1}, {2, 2}}},
	{ID: "col-0", Cells: [3]Coord{{0, 0}, {1, 0}, {2, 0}}},
	{ID: "col-1", Cells: [3]Coord{{0, 1}, {1, 1}, {2, 1}}},
	{ID: "col-2", Cells: [3]Coord{{0, 2}, {1, 2}, {2, 2}}},
	{ID: "diag-main", Cells: [3]Coord{{0, 0}, {1, 1}, {2, 2}}},
	{ID: "diag-anti", Cells: [3]Coord{{0, 2}, {1, 1}, {2, 0}}},
}

func (that Line) Contains(coord Coord) bool {
	for _, cell := range that.Cells {
		if cell == coord {
			return true
		}
	}

	return false
}

// Owner returns the mark shared by all three cells of the line, or EmptyCell.
func (that Line) Owner(board *Board) Player {
	cells := board.Cells()

	a := cells[that.Cells[0].Row][that.Cells[0].Col]
	b := cells[that.Cells[1].Row][that.Cells[1].Col]
	c := cells[that.Cells[2].Row][that.Cells[2].Col]

	if a != EmptyCell && a == b && b == c {
		return a
	}

	return EmptyCell
}
