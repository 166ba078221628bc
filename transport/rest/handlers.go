package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/game"
)

const msgMissingIndexes = "board_index and cell_index are required."

type gameService interface {
	CreateGame(ctx context.Context, startingPlayer game.Player) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, boardIndex, cellIndex int, player game.Player) (*entity.Game, error)
}

type newGameRequest struct {
	StartingPlayer *string `json:"starting_player"`
}

type moveRequest struct {
	BoardIndex *int    `json:"board_index"`
	CellIndex  *int    `json:"cell_index"`
	Player     *string `json:"player"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type GameHandlers struct {
	logger      *slog.Logger
	gameService gameService
}

func NewGameHandlers(logger *slog.Logger, gameService gameService) *GameHandlers {
	return &GameHandlers{
		logger:      logger.With("component", "game-handlers"),
		gameService: gameService,
	}
}

func (that *GameHandlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	startingPlayer, err := parseOptionalPlayer(req.StartingPlayer)
	if err != nil {
		that.fail(w, r, err)
		return
	}

	newGame, err := that.gameService.CreateGame(r.Context(), startingPlayer)
	if err != nil {
		that.fail(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGame.View())
}

func (that *GameHandlers) GetGame(w http.ResponseWriter, r *http.Request) {
	existingGame, err := that.gameService.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.fail(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, existingGame.View())
}

func (that *GameHandlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if req.BoardIndex == nil || req.CellIndex == nil {
		that.writeError(w, http.StatusBadRequest, msgMissingIndexes)
		return
	}

	player, err := parseOptionalPlayer(req.Player)
	if err != nil {
		that.fail(w, r, err)
		return
	}

	updated, err := that.gameService.MakeMove(r.Context(), chi.URLParam(r, "id"), *req.BoardIndex, *req.CellIndex, player)
	if err != nil {
		that.fail(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, updated.View())
}

func (that *GameHandlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	reset, err := that.gameService.ResetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.fail(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, reset.View())
}

func (that *GameHandlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.fail(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (that *GameHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := apperror.Describe(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}

	that.writeError(w, status, detail)
}

func (that *GameHandlers) writeError(w http.ResponseWriter, status int, detail string) {
	that.writeJSON(w, status, errorResponse{Detail: detail})
}

func (that *GameHandlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

// decodeBody accepts an empty body as the zero request.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

func parseOptionalPlayer(value *string) (game.Player, error) {
	if value == nil {
		return game.NoPlayer, nil
	}

	return game.ParsePlayer(*value)
}
