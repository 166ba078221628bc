package game

import (
	"encoding/json"
	"fmt"
)

// MiniBoardSnapshot is the read-only view of one mini-board.
type MiniBoardSnapshot struct {
	Cells  [boardSize]Cell `json:"cells"`
	Winner *Player         `json:"winner"`
	IsDraw bool            `json:"is_draw"`
}

// Snapshot is the read-only view of a game. ActiveBoard is nil when any board may be played.
type Snapshot struct {
	Boards        [boardSize]MiniBoardSnapshot `json:"boards"`
	CurrentPlayer Player                       `json:"current_player"`
	ActiveBoard   *int                         `json:"active_board"`
	GlobalWinner  *Player                      `json:"global_winner"`
	IsGlobalDraw  bool                         `json:"is_global_draw"`
	Status        string                       `json:"status"`
}

func (that *SuperBoard) Snapshot() Snapshot {
	snapshot := Snapshot{
		CurrentPlayer: that.currentPlayer,
		GlobalWinner:  playerOrNil(that.globalWinner),
		IsGlobalDraw:  that.globalDraw,
		Status:        that.Status(),
	}

	for i, board := range that.boards {
		snapshot.Boards[i] = MiniBoardSnapshot{
			Cells:  board.cells,
			Winner: playerOrNil(board.winner),
			IsDraw: board.draw,
		}
	}

	if that.activeBoard != AnyBoard {
		active := that.activeBoard
		snapshot.ActiveBoard = &active
	}

	return snapshot
}

// Restore rebuilds a game from its snapshot. Derived fields are recomputed
// from the cells and must agree with the ones recorded in the snapshot.
func Restore(snapshot Snapshot) (*SuperBoard, error) {
	if !snapshot.CurrentPlayer.IsValid() {
		return nil, fmt.Errorf("%w: current player %q", ErrInvalidSnapshot, snapshot.CurrentPlayer)
	}

	board := &SuperBoard{
		currentPlayer: snapshot.CurrentPlayer,
		activeBoard:   AnyBoard,
	}

	for i, mini := range snapshot.Boards {
		restored := newMiniBoard(mini.Cells)

		if restored.winner != valueOrNone(mini.Winner) || restored.draw != mini.IsDraw {
			return nil, fmt.Errorf("%w: board %d result does not match its cells", ErrInvalidSnapshot, i)
		}

		board.boards[i] = restored
	}

	board.updateGlobalState()

	if board.globalWinner != valueOrNone(snapshot.GlobalWinner) || board.globalDraw != snapshot.IsGlobalDraw {
		return nil, fmt.Errorf("%w: global result does not match the boards", ErrInvalidSnapshot)
	}

	if snapshot.ActiveBoard != nil {
		active := *snapshot.ActiveBoard
		if active < 0 || active >= boardSize {
			return nil, fmt.Errorf("%w: active board %d", ErrInvalidSnapshot, active)
		}

		if board.boards[active].IsClosed() {
			return nil, fmt.Errorf("%w: active board %d is closed", ErrInvalidSnapshot, active)
		}

		board.activeBoard = active
	}

	return board, nil
}

func (that *SuperBoard) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Snapshot())
}

func (that *SuperBoard) UnmarshalJSON(data []byte) error {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	restored, err := Restore(snapshot)
	if err != nil {
		return err
	}

	*that = *restored

	return nil
}

func playerOrNil(player Player) *Player {
	if player == NoPlayer {
		return nil
	}

	return &player
}

func valueOrNone(player *Player) Player {
	if player == nil {
		return NoPlayer
	}

	return *player
}
