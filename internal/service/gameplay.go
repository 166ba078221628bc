package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/game"
)

// MakeMove applies one move and stores the result. An empty player plays for
// whoever is on turn. When another move was stored in between, the result is
// rejected with apperror.ErrStaleGame and nothing is written.
func (that *gameService) MakeMove(ctx context.Context, id string, boardIndex, cellIndex int, player game.Player) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "gameID", id)

	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if player == game.NoPlayer {
		player = existingGame.Board.CurrentPlayer()
	}

	board, err := existingGame.Board.Move(boardIndex, cellIndex, player)
	if err != nil {
		log.Debug("move rejected", "board", boardIndex, "cell", cellIndex, "player", player, "error", err)
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	existingGame.Board = board
	if err = that.gameRepo.Update(ctx, existingGame); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if existingGame.IsFinished() {
		log.Info("game finished", "status", board.Status())
	}

	return existingGame, nil
}
