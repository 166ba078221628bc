package entity

import (
	"time"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/game"
)

// Game is a stored super tic-tac-toe match. Version grows by one on every
// stored update and is used to reject stale writes.
type Game struct {
	ID             string           `json:"id"`
	Version        int64            `json:"version"`
	StartingPlayer game.Player      `json:"starting_player"`
	Board          *game.SuperBoard `json:"board"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// GameView is the public representation of a game.
type GameView struct {
	ID string `json:"id"`
	game.Snapshot
}

func NewGame(id string, startingPlayer game.Player) (*Game, error) {
	board, err := game.NewSuperBoard(startingPlayer)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Game{
		ID:             id,
		StartingPlayer: board.CurrentPlayer(),
		Board:          board,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Clone returns a copy that shares nothing mutable with the original.
func (that *Game) Clone() *Game {
	clone := *that
	if that.Board != nil {
		board := *that.Board
		clone.Board = &board
	}

	return &clone
}

func (that *Game) IsFinished() bool {
	return that.Board != nil && that.Board.IsFinished()
}

func (that *Game) View() *GameView {
	return &GameView{
		ID:       that.ID,
		Snapshot: that.Board.Snapshot(),
	}
}
