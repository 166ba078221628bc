package game

import (
	"fmt"
	"slices"
)

// SuperBoard is a 3x3 grid of mini-boards. Values are never modified after
// construction: Move returns a new board and leaves the receiver intact.
type SuperBoard struct {
	boards        [boardSize]MiniBoard
	currentPlayer Player
	globalWinner  Player
	globalDraw    bool
	activeBoard   int
}

// NewSuperBoard creates an empty game. NoPlayer as startingPlayer means X starts.
func NewSuperBoard(startingPlayer Player) (*SuperBoard, error) {
	if startingPlayer == NoPlayer {
		startingPlayer = PlayerX
	}

	if !startingPlayer.IsValid() {
		return nil, newMoveError(ErrInvalidPlayer, "Player must be X or O.")
	}

	return &SuperBoard{
		currentPlayer: startingPlayer,
		activeBoard:   AnyBoard,
	}, nil
}

// LegalBoards returns the mini-boards the next move may be played in.
func (that *SuperBoard) LegalBoards() []int {
	if that.activeBoard != AnyBoard && !that.boards[that.activeBoard].IsClosed() {
		return []int{that.activeBoard}
	}

	legal := make([]int, 0, boardSize)
	for i, board := range that.boards {
		if !board.IsClosed() {
			legal = append(legal, i)
		}
	}

	return legal
}

// Move plays player's mark at cellIndex of mini-board boardIndex.
func (that *SuperBoard) Move(boardIndex, cellIndex int, player Player) (*SuperBoard, error) {
	if that.IsFinished() {
		return nil, newMoveError(ErrGameOver, "Game is already over.")
	}

	if boardIndex < 0 || boardIndex >= boardSize {
		return nil, newMoveError(ErrOutOfRange, "Board index must be in range [0, 8].")
	}

	if !slices.Contains(that.LegalBoards(), boardIndex) {
		if that.activeBoard != AnyBoard {
			return nil, newMoveError(ErrIllegalBoard, "Must play in board %d.", that.activeBoard)
		}

		return nil, newMoveError(ErrIllegalBoard, "Selected board is closed.")
	}

	if !player.IsValid() {
		return nil, newMoveError(ErrInvalidPlayer, "Player must be X or O.")
	}

	if player != that.currentPlayer {
		return nil, newMoveError(ErrNotYourTurn, "It is %s's turn.", that.currentPlayer)
	}

	board, err := that.boards[boardIndex].Place(cellIndex, player)
	if err != nil {
		return nil, err
	}

	next := *that
	next.boards[boardIndex] = board
	next.updateGlobalState()

	next.activeBoard = cellIndex
	if next.boards[cellIndex].IsClosed() {
		next.activeBoard = AnyBoard
	}

	if !next.IsFinished() {
		next.currentPlayer = player.Opponent()
	}

	return &next, nil
}

// updateGlobalState plays the mini-board owners as a board of their own.
func (that *SuperBoard) updateGlobalState() {
	var owners [boardSize]Player
	for i, board := range that.boards {
		owners[i] = board.Winner()
	}

	that.globalWinner = lineWinner(owners)
	that.globalDraw = that.globalWinner == NoPlayer && that.allClosed()
}

func (that *SuperBoard) allClosed() bool {
	for _, board := range that.boards {
		if !board.IsClosed() {
			return false
		}
	}

	return true
}

func (that *SuperBoard) Board(index int) MiniBoard {
	if index < 0 || index >= boardSize {
		return MiniBoard{}
	}

	return that.boards[index]
}

func (that *SuperBoard) Boards() [boardSize]MiniBoard {
	return that.boards
}

func (that *SuperBoard) CurrentPlayer() Player {
	return that.currentPlayer
}

func (that *SuperBoard) GlobalWinner() Player {
	return that.globalWinner
}

func (that *SuperBoard) IsGlobalDraw() bool {
	return that.globalDraw
}

// ActiveBoard returns the forced mini-board or AnyBoard.
func (that *SuperBoard) ActiveBoard() int {
	return that.activeBoard
}

func (that *SuperBoard) IsFinished() bool {
	return that.globalWinner != NoPlayer || that.globalDraw
}

func (that *SuperBoard) Status() string {
	switch {
	case that.globalWinner != NoPlayer:
		return fmt.Sprintf("%s wins", that.globalWinner)
	case that.globalDraw:
		return "draw"
	case that.activeBoard == AnyBoard:
		return fmt.Sprintf("%s's turn — any board", that.currentPlayer)
	default:
		return fmt.Sprintf("%s's turn — board %d", that.currentPlayer, that.activeBoard)
	}
}
