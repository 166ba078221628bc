package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
)

const (
	actionGameNew    = "game:new"
	actionGameGet    = "game:get"
	actionGameTurn   = "game:turn"
	actionGameReset  = "game:reset"
	actionGameDelete = "game:delete"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is what clients send.
type Payload struct {
	GameID         string  `json:"game_id,omitempty"`
	StartingPlayer *string `json:"starting_player,omitempty"`
	BoardIndex     *int    `json:"board_index,omitempty"`
	CellIndex      *int    `json:"cell_index,omitempty"`
	Player         *string `json:"player,omitempty"`
}

// ResponsePayload is what the server sends.
type ResponsePayload struct {
	Game   *entity.GameView `json:"game,omitempty"`
	GameID string           `json:"game_id,omitempty"`
	Error  string           `json:"error,omitempty"`
}
