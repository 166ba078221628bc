package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/game"
)

const (
	msgInvalidPayload = "Invalid payload."
	msgGameIDRequired = "game_id is required."
	msgMissingIndexes = "board_index and cell_index are required."
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, sender *client) error {
	payloadReq, ok := that.readPayload(msg, sender)
	if !ok {
		return nil
	}

	startingPlayer, err := parseOptionalPlayer(payloadReq.StartingPlayer)
	if err != nil {
		return that.replyError(sender, msg.Action, err)
	}

	newGame, err := that.gameService.CreateGame(ctx, startingPlayer)
	if err != nil {
		return that.replyError(sender, msg.Action, err)
	}

	that.watch(sender, newGame.ID)

	return that.sendMessage(sender, msg.Action, ResponsePayload{Game: newGame.View()})
}

func (that *Server) handleGetGame(ctx context.Context, msg *Message, sender *client) error {
	payloadReq, ok := that.readGamePayload(msg, sender)
	if !ok {
		return nil
	}

	existingGame, err := that.gameService.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.replyError(sender, msg.Action, err)
	}

	that.watch(sender, existingGame.ID)

	return that.sendMessage(sender, msg.Action, ResponsePayload{Game: existingGame.View()})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, sender *client) error {
	payloadReq, ok := that.readGamePayload(msg, sender)
	if !ok {
		return nil
	}

	if payloadReq.BoardIndex == nil || payloadReq.CellIndex == nil {
		that.sendError(sender, msg.Action, msgMissingIndexes)
		return nil
	}

	player, err := parseOptionalPlayer(payloadReq.Player)
	if err != nil {
		return that.replyError(sender, msg.Action, err)
	}

	updated, err := that.gameService.MakeMove(ctx, payloadReq.GameID, *payloadReq.BoardIndex, *payloadReq.CellIndex, player)
	if err != nil {
		return that.replyError(sender, msg.Action, err)
	}

	that.watch(sender, updated.ID)
	that.broadcast(updated.ID, msg.Action, ResponsePayload{Game: updated.View()})

	return nil
}

func (that *Server) handleResetGame(ctx context.Context, msg *Message, sender *client) error {
	payloadReq, ok := that.readGamePayload(msg, sender)
	if !ok {
		return nil
	}

	reset, err := that.gameService.ResetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.replyError(sender, msg.Action, err)
	}

	that.watch(sender, reset.ID)
	that.broadcast(reset.ID, msg.Action, ResponsePayload{Game: reset.View()})

	return nil
}

func (that *Server) handleDeleteGame(ctx context.Context, msg *Message, sender *client) error {
	payloadReq, ok := that.readGamePayload(msg, sender)
	if !ok {
		return nil
	}

	if err := that.gameService.DeleteGame(ctx, payloadReq.GameID); err != nil {
		return that.replyError(sender, msg.Action, err)
	}

	that.watch(sender, payloadReq.GameID)
	that.broadcast(payloadReq.GameID, msg.Action, ResponsePayload{GameID: payloadReq.GameID})
	that.forget(payloadReq.GameID)

	return nil
}

func (that *Server) readPayload(msg *Message, sender *client) (Payload, bool) {
	var payloadReq Payload
	if len(msg.Payload) == 0 {
		return payloadReq, true
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		that.sendError(sender, msg.Action, msgInvalidPayload)
		return payloadReq, false
	}

	return payloadReq, true
}

func (that *Server) readGamePayload(msg *Message, sender *client) (Payload, bool) {
	payloadReq, ok := that.readPayload(msg, sender)
	if !ok {
		return payloadReq, false
	}

	if payloadReq.GameID == "" {
		that.sendError(sender, msg.Action, msgGameIDRequired)
		return payloadReq, false
	}

	return payloadReq, true
}

// replyError tells the sender why its request failed. Only unexpected errors are returned.
func (that *Server) replyError(sender *client, action string, err error) error {
	status, detail := apperror.Describe(err)
	that.sendError(sender, action, detail)

	if status == http.StatusInternalServerError {
		return fmt.Errorf("failed to handle %s: %w", action, err)
	}

	return nil
}

func parseOptionalPlayer(value *string) (game.Player, error) {
	if value == nil {
		return game.NoPlayer, nil
	}

	return game.ParsePlayer(*value)
}
