package game

// MiniBoard is one classic 3x3 board, cells are row-major.
type MiniBoard struct {
	cells  [boardSize]Cell
	winner Player
	draw   bool
}

func newMiniBoard(cells [boardSize]Cell) MiniBoard {
	board := MiniBoard{cells: cells}
	board.evaluate()

	return board
}

// Place returns a copy of the board with player's mark in cellIndex.
func (that MiniBoard) Place(cellIndex int, player Player) (MiniBoard, error) {
	if that.IsClosed() {
		return that, newMoveError(ErrBoardClosed, "Mini-board is already closed.")
	}

	if cellIndex < 0 || cellIndex >= boardSize {
		return that, newMoveError(ErrOutOfRange, "Cell index must be in range [0, 8].")
	}

	if !that.cells[cellIndex].IsEmpty() {
		return that, newMoveError(ErrOccupiedCell, "Cell already occupied.")
	}

	that.cells[cellIndex] = MarkedCell(player)
	that.evaluate()

	return that, nil
}

func (that *MiniBoard) evaluate() {
	var marks [boardSize]Player
	for i, cell := range that.cells {
		marks[i] = cell.Mark()
	}

	that.winner = lineWinner(marks)
	that.draw = that.winner == NoPlayer && that.isFull()
}

func (that MiniBoard) isFull() bool {
	for _, cell := range that.cells {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// AvailableCells lists empty cells in ascending order. A board won early
// may still report empty cells.
func (that MiniBoard) AvailableCells() []int {
	available := make([]int, 0, boardSize)
	for i, cell := range that.cells {
		if cell.IsEmpty() {
			available = append(available, i)
		}
	}

	return available
}

func (that MiniBoard) Cells() [boardSize]Cell {
	return that.cells
}

func (that MiniBoard) Cell(index int) Cell {
	if index < 0 || index >= boardSize {
		return Cell{}
	}

	return that.cells[index]
}

func (that MiniBoard) Winner() Player {
	return that.winner
}

func (that MiniBoard) IsDraw() bool {
	return that.draw
}

func (that MiniBoard) IsClosed() bool {
	return that.winner != NoPlayer || that.draw
}
