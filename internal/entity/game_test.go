package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/game"
)

func TestNewGame(t *testing.T) {
	t.Run("Defaults the starting player to X", func(t *testing.T) {
		// When: a game is created without a starting player
		newGame, err := NewGame("123", game.NoPlayer)
		require.NoError(t, err)

		// Then: the record is fresh and X starts
		assert.Equal(t, "123", newGame.ID)
		assert.Equal(t, int64(0), newGame.Version)
		assert.Equal(t, game.PlayerX, newGame.StartingPlayer)
		assert.Equal(t, game.PlayerX, newGame.Board.CurrentPlayer())
		assert.False(t, newGame.IsFinished())
		assert.False(t, newGame.CreatedAt.IsZero())
	})

	t.Run("Error on unknown starting player", func(t *testing.T) {
		newGame, err := NewGame("123", game.Player("Z"))

		require.ErrorIs(t, err, game.ErrInvalidPlayer)
		assert.Nil(t, newGame)
	})
}

func TestGame_Clone(t *testing.T) {
	// Given: a game and its clone
	original, err := NewGame("123", game.PlayerO)
	require.NoError(t, err)
	clone := original.Clone()

	// When: the clone gets a new board
	next, err := clone.Board.Move(0, 0, game.PlayerO)
	require.NoError(t, err)
	clone.Board = next
	clone.Version++

	// Then: the original is unaffected
	assert.True(t, original.Board.Board(0).Cell(0).IsEmpty())
	assert.Equal(t, int64(0), original.Version)
}

func TestGame_View(t *testing.T) {
	// Given: a game where X played board 2 cell 6
	newGame, err := NewGame("abc", game.PlayerX)
	require.NoError(t, err)
	newGame.Board, err = newGame.Board.Move(2, 6, game.PlayerX)
	require.NoError(t, err)

	// When: the view is encoded
	data, err := json.Marshal(newGame.View())
	require.NoError(t, err)

	// Then: id and snapshot fields share one flat object
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "abc", decoded["id"])
	assert.Equal(t, "O", decoded["current_player"])
	assert.InDelta(t, 6, decoded["active_board"], 0)
	assert.Equal(t, "O's turn — board 6", decoded["status"])
	assert.Contains(t, decoded, "boards")
	assert.Contains(t, decoded, "global_winner")
	assert.Contains(t, decoded, "is_global_draw")
}

func TestGame_JSONRoundTrip(t *testing.T) {
	// Given: a stored game with a few moves
	original, err := NewGame("abc", game.PlayerX)
	require.NoError(t, err)
	original.Version = 3
	original.Board, err = original.Board.Move(4, 4, game.PlayerX)
	require.NoError(t, err)
	original.Board, err = original.Board.Move(4, 0, game.PlayerO)
	require.NoError(t, err)

	// When: the record is encoded and decoded
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Then: the decoded record continues exactly like the original
	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Version, decoded.Version)
	assert.Equal(t, original.StartingPlayer, decoded.StartingPlayer)
	assert.Equal(t, original.Board.Snapshot(), decoded.Board.Snapshot())

	nextOriginal, err := original.Board.Move(0, 8, game.PlayerX)
	require.NoError(t, err)
	nextDecoded, err := decoded.Board.Move(0, 8, game.PlayerX)
	require.NoError(t, err)
	assert.Equal(t, nextOriginal.Snapshot(), nextDecoded.Snapshot())
}
