package apperror

import (
	"errors"
	"net/http"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/game"
)

const (
	msgGameNotFound  = "Game not found."
	msgStaleGame     = "Game was modified concurrently, retry."
	msgInvalidPlayer = "Player must be X or O."
	msgInternal      = "Internal Server Error"
)

// Describe maps an error to the HTTP status and the text shown to clients.
func Describe(err error) (int, string) {
	var moveErr *game.MoveError

	switch {
	case errors.As(err, &moveErr):
		return http.StatusBadRequest, moveErr.Message
	case errors.Is(err, game.ErrInvalidPlayer):
		return http.StatusBadRequest, msgInvalidPlayer
	case errors.Is(err, ErrGameNotFound):
		return http.StatusNotFound, msgGameNotFound
	case errors.Is(err, ErrStaleGame):
		return http.StatusConflict, msgStaleGame
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
