package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T) *SuperBoard {
	t.Helper()

	board, err := NewSuperBoard(PlayerX)
	require.NoError(t, err)

	return board
}

func mustMove(t *testing.T, board *SuperBoard, boardIndex, cellIndex int) *SuperBoard {
	t.Helper()

	next, err := board.Move(boardIndex, cellIndex, board.CurrentPlayer())
	require.NoError(t, err)

	return next
}

func TestNewSuperBoard(t *testing.T) {
	t.Run("Defaults to X on any board", func(t *testing.T) {
		// When: a game is created without a starting player
		board, err := NewSuperBoard(NoPlayer)
		require.NoError(t, err)

		// Then: X starts and every board is legal
		assert.Equal(t, PlayerX, board.CurrentPlayer())
		assert.Equal(t, AnyBoard, board.ActiveBoard())
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, board.LegalBoards())
		assert.Equal(t, "X's turn — any board", board.Status())
		assert.False(t, board.IsFinished())
	})

	t.Run("O can start", func(t *testing.T) {
		board, err := NewSuperBoard(PlayerO)
		require.NoError(t, err)

		assert.Equal(t, PlayerO, board.CurrentPlayer())
		assert.Equal(t, "O's turn — any board", board.Status())
	})

	t.Run("Error on unknown player", func(t *testing.T) {
		board, err := NewSuperBoard(Player("Z"))

		require.ErrorIs(t, err, ErrInvalidPlayer)
		assert.Nil(t, board)
	})
}

func TestSuperBoard_Move(t *testing.T) {
	t.Run("First move forces the opponent into the matching board", func(t *testing.T) {
		// Given: a new game
		board := newTestBoard(t)

		// When: X plays board 0, cell 4
		next, err := board.Move(0, 4, PlayerX)
		require.NoError(t, err)

		// Then: the mark is placed, O is to move in board 4
		assert.Equal(t, PlayerX, next.Board(0).Cell(4).Mark())
		assert.Equal(t, 4, next.ActiveBoard())
		assert.Equal(t, PlayerO, next.CurrentPlayer())
		assert.Equal(t, []int{4}, next.LegalBoards())
		assert.Equal(t, "O's turn — board 4", next.Status())

		// And: the original game is untouched
		assert.True(t, board.Board(0).Cell(4).IsEmpty())
		assert.Equal(t, AnyBoard, board.ActiveBoard())
	})

	t.Run("Error when playing outside the forced board", func(t *testing.T) {
		// Given: O is forced into board 4
		board := mustMove(t, newTestBoard(t), 0, 4)
		before := *board

		// When: O plays board 0
		next, err := board.Move(0, 0, PlayerO)

		// Then: the move is rejected and nothing changes
		require.ErrorIs(t, err, ErrIllegalBoard)
		assert.EqualError(t, err, "Must play in board 4.")
		assert.Nil(t, next)
		assert.Equal(t, before, *board)
	})

	t.Run("Error when choosing a closed board freely", func(t *testing.T) {
		// Given: board 0 won by X and free choice for O
		board := &SuperBoard{currentPlayer: PlayerO, activeBoard: AnyBoard}
		board.boards[0] = miniFromString(t, "XXX......")

		// When: O picks board 0
		_, err := board.Move(0, 5, PlayerO)

		// Then: the board is reported closed
		require.ErrorIs(t, err, ErrIllegalBoard)
		assert.EqualError(t, err, "Selected board is closed.")
		assert.NotContains(t, board.LegalBoards(), 0)
	})

	t.Run("Error on board index out of range", func(t *testing.T) {
		board := newTestBoard(t)

		for _, index := range []int{-1, 9} {
			_, err := board.Move(index, 0, PlayerX)

			require.ErrorIs(t, err, ErrOutOfRange)
			assert.EqualError(t, err, "Board index must be in range [0, 8].")
		}
	})

	t.Run("Mini-board errors are propagated unchanged", func(t *testing.T) {
		// Given: X played board 4 cell 4, so O must play board 4
		board := mustMove(t, newTestBoard(t), 4, 4)

		// When: O plays the occupied cell or a cell out of range
		_, occupiedErr := board.Move(4, 4, PlayerO)
		_, rangeErr := board.Move(4, 9, PlayerO)

		// Then: the mini-board errors come through
		require.ErrorIs(t, occupiedErr, ErrOccupiedCell)
		assert.EqualError(t, occupiedErr, "Cell already occupied.")
		require.ErrorIs(t, rangeErr, ErrOutOfRange)
		assert.EqualError(t, rangeErr, "Cell index must be in range [0, 8].")
	})

	t.Run("Error when playing out of turn", func(t *testing.T) {
		board := newTestBoard(t)

		_, err := board.Move(0, 0, PlayerO)

		require.ErrorIs(t, err, ErrNotYourTurn)
		assert.EqualError(t, err, "It is X's turn.")
	})

	t.Run("Error on unknown player", func(t *testing.T) {
		board := newTestBoard(t)

		_, err := board.Move(0, 0, Player("Z"))

		require.ErrorIs(t, err, ErrInvalidPlayer)
	})

	t.Run("Winning a mini-board that is also the target widens to any board", func(t *testing.T) {
		// Given: X collects cells 1 and 2 of board 0 while O is routed back into it
		board := newTestBoard(t)
		board = mustMove(t, board, 0, 1) // X -> board 1
		board = mustMove(t, board, 1, 0) // O -> board 0
		board = mustMove(t, board, 0, 2) // X -> board 2
		board = mustMove(t, board, 2, 0) // O -> board 0

		// When: X completes the top row of board 0 by playing cell 0
		board = mustMove(t, board, 0, 0)

		// Then: board 0 belongs to X, the game goes on, O may play anywhere open
		assert.Equal(t, PlayerX, board.Board(0).Winner())
		assert.Equal(t, NoPlayer, board.GlobalWinner())
		assert.False(t, board.IsFinished())
		assert.Equal(t, AnyBoard, board.ActiveBoard())
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, board.LegalBoards())
		assert.Equal(t, "O's turn — any board", board.Status())
	})

	t.Run("Three mini-boards in a row win the game", func(t *testing.T) {
		// Given: X owns boards 0 and 1 and needs cell 2 of board 2
		board := &SuperBoard{currentPlayer: PlayerX, activeBoard: 2}
		board.boards[0] = miniFromString(t, "XXXOO....")
		board.boards[1] = miniFromString(t, "XXX.OO...")
		board.boards[2] = miniFromString(t, "XX.OO....")

		// When: X completes board 2
		next, err := board.Move(2, 2, PlayerX)
		require.NoError(t, err)

		// Then: X wins the game
		assert.Equal(t, PlayerX, next.GlobalWinner())
		assert.False(t, next.IsGlobalDraw())
		assert.True(t, next.IsFinished())
		assert.Equal(t, PlayerX, next.CurrentPlayer())
		assert.Equal(t, AnyBoard, next.ActiveBoard())
		assert.Equal(t, "X wins", next.Status())

		// And: no further move is accepted
		_, err = next.Move(4, 4, PlayerX)
		require.ErrorIs(t, err, ErrGameOver)
		assert.EqualError(t, err, "Game is already over.")
	})

	t.Run("Every mini-board closed without a line is a draw", func(t *testing.T) {
		// Given: eight closed boards whose owners form no line, board 8 one move from a draw
		//   X O X
		//   X O O
		//   O X -
		board := &SuperBoard{currentPlayer: PlayerX, activeBoard: 8}
		for i, owner := range []Player{PlayerX, PlayerO, PlayerX, PlayerX, PlayerO, PlayerO, PlayerO, PlayerX} {
			if owner == PlayerX {
				board.boards[i] = miniFromString(t, "XXX......")
			} else {
				board.boards[i] = miniFromString(t, "OOO......")
			}
		}
		board.boards[8] = miniFromString(t, "XOXXOOOX.")
		board.updateGlobalState()
		require.False(t, board.IsGlobalDraw())

		// When: X fills the last cell of board 8
		next, err := board.Move(8, 8, PlayerX)
		require.NoError(t, err)

		// Then: the game ends in a draw
		assert.True(t, next.Board(8).IsDraw())
		assert.True(t, next.IsGlobalDraw())
		assert.Equal(t, NoPlayer, next.GlobalWinner())
		assert.Equal(t, "draw", next.Status())
		assert.Empty(t, next.LegalBoards())

		_, err = next.Move(0, 5, PlayerO)
		require.ErrorIs(t, err, ErrGameOver)
	})
}

func TestSuperBoard_RandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(410)) //nolint: gosec // deterministic test games

	for run := 0; run < 200; run++ {
		board := newTestBoard(t)

		for !board.IsFinished() {
			legal := board.LegalBoards()
			require.NotEmpty(t, legal)

			// Boards outside the legal set are always rejected without mutation.
			for i := 0; i < boardSize; i++ {
				if containsInt(legal, i) {
					continue
				}

				before := *board
				_, err := board.Move(i, 0, board.CurrentPlayer())
				require.ErrorIs(t, err, ErrIllegalBoard)
				require.Equal(t, before, *board)
			}

			boardIndex := legal[rng.Intn(len(legal))]
			cells := board.Board(boardIndex).AvailableCells()
			cellIndex := cells[rng.Intn(len(cells))]

			next := mustMove(t, board, boardIndex, cellIndex)

			// Global winner and draw never coexist.
			require.False(t, next.GlobalWinner() != NoPlayer && next.IsGlobalDraw())

			// Closed boards stay closed.
			for i := 0; i < boardSize; i++ {
				if board.Board(i).IsClosed() {
					require.True(t, next.Board(i).IsClosed())
					require.Equal(t, board.Board(i), next.Board(i))
				}
			}

			// The played cell routes the opponent unless that board is closed.
			if next.Board(cellIndex).IsClosed() {
				require.Equal(t, AnyBoard, next.ActiveBoard())
			} else {
				require.Equal(t, cellIndex, next.ActiveBoard())
			}

			if !next.IsFinished() {
				require.Equal(t, board.CurrentPlayer().Opponent(), next.CurrentPlayer())
			}

			board = next
		}
	}
}

func containsInt(values []int, value int) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}
