package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/game"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/pkg"
)

type GameService interface {
	CreateGame(ctx context.Context, startingPlayer game.Player) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, boardIndex, cellIndex int, player game.Player) (*entity.Game, error)
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo) GameService {
	return &gameService{
		logger:   logger.With("component", "game-service"),
		gameRepo: gameRepo,
	}
}

func (that *gameService) CreateGame(ctx context.Context, startingPlayer game.Player) (*entity.Game, error) {
	newGame, err := entity.NewGame(pkg.GenerateGameID(), startingPlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.gameRepo.Create(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	that.logger.Info("game created", "gameID", newGame.ID, "startingPlayer", newGame.StartingPlayer)

	return newGame, nil
}

func (that *gameService) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return existingGame, nil
}

// ResetGame replaces the board with a fresh one, keeping the id and the starting player.
func (that *gameService) ResetGame(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	board, err := game.NewSuperBoard(existingGame.StartingPlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	existingGame.Board = board
	if err = that.gameRepo.Update(ctx, existingGame); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("game reset", "gameID", id)

	return existingGame, nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}
