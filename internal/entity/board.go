package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

const BoardSize = 3

// Coord addresses a single cell, row first.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Board is the 3x3 grid of cells. It only stores marks and knows nothing about turns or winners.
type Board struct {
	cells [BoardSize][BoardSize]Player
}

func NewBoard() *Board {
	return &Board{}
}

func (that *Board) CellAt(row, col int) (Player, error) {
	if !(Coord{Row: row, Col: col}).InRange() {
		return EmptyCell, fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfRange, row, col)
	}

	return that.cells[row][col], nil
}

// SetMark places the player's mark on an empty cell.
func (that *Board) SetMark(row, col int, player Player) error {
	if !(Coord{Row: row, Col: col}).InRange() {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfRange, row, col)
	}

	if !player.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, player)
	}

	if that.cells[row][col] != EmptyCell {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, row, col)
	}

	that.cells[row][col] = player

	return nil
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Board) Reset() {
	that.cells = [BoardSize][BoardSize]Player{}
}

// Cells returns a copy of the grid.
func (that *Board) Cells() [BoardSize][BoardSize]Player {
	return that.cells
}

// MarkCount returns how many cells hold the given mark.
func (that *Board) MarkCount(player Player) int {
	count := 0
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == player {
				count++
			}
		}
	}

	return count
}

func (that *Board) MarshalJSON() ([]byte, error) {
	var rows [BoardSize][BoardSize]string
	for r, row := range that.cells {
		for c, cell := range row {
			rows[r][c] = string(cell)
		}
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("could not marshal board: %w", err)
	}

	return data, nil
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [BoardSize][BoardSize]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("could not unmarshal board: %w", err)
	}

	var cells [BoardSize][BoardSize]Player
	for r, row := range rows {
		for c, raw := range row {
			mark := Player(raw)
			if mark != EmptyCell && !mark.IsValid() {
				return fmt.Errorf("%w: %q at row %d, col %d", apperror.ErrInvalidPlayer, raw, r, c)
			}
			cells[r][c] = mark
		}
	}

	that.cells = cells

	return nil
}
