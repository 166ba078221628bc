package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Player is a mark placed on the board.
type Player string

const (
	NoPlayer Player = ""
	PlayerX  Player = "X"
	PlayerO  Player = "O"
)

const (
	boardSize = 9

	// AnyBoard means the next move is not restricted to one mini-board.
	AnyBoard = -1
)

var (
	ErrOutOfRange    = errors.New("index out of range")
	ErrOccupiedCell  = errors.New("cell is already occupied")
	ErrBoardClosed   = errors.New("mini-board is already closed")
	ErrIllegalBoard  = errors.New("illegal board")
	ErrGameOver      = errors.New("game is already over")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrInvalidPlayer = errors.New("invalid player")

	ErrInvalidSnapshot = errors.New("invalid snapshot")

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// MoveError is a rejected move. Error returns the text shown to the player,
// errors.Is matches the kind (ErrOutOfRange, ErrIllegalBoard, ...).
type MoveError struct {
	Kind    error
	Message string
}

func newMoveError(kind error, format string, args ...any) *MoveError {
	return &MoveError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (that *MoveError) Error() string {
	return that.Message
}

func (that *MoveError) Unwrap() error {
	return that.Kind
}

// ParsePlayer accepts "X", "O" and "" (no player).
func ParsePlayer(value string) (Player, error) {
	switch player := Player(value); player {
	case NoPlayer, PlayerX, PlayerO:
		return player, nil
	default:
		return NoPlayer, fmt.Errorf("%w: %q", ErrInvalidPlayer, value)
	}
}

func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that Player) Opponent() Player {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoPlayer
	}
}

func (that Player) String() string {
	return string(that)
}

// Cell is either empty or holds exactly one mark. The zero value is empty.
type Cell struct {
	mark Player
}

func MarkedCell(player Player) Cell {
	return Cell{mark: player}
}

func (that Cell) IsEmpty() bool {
	return that.mark == NoPlayer
}

// Mark returns NoPlayer for an empty cell.
func (that Cell) Mark() Player {
	return that.mark
}

// MarshalJSON encodes an empty cell as null and a marked one as "X" or "O".
func (that Cell) MarshalJSON() ([]byte, error) {
	if that.IsEmpty() {
		return []byte("null"), nil
	}

	return json.Marshal(string(that.mark))
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	var value *string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to unmarshal cell: %w", err)
	}

	if value == nil {
		*that = Cell{}
		return nil
	}

	player, err := ParsePlayer(*value)
	if err != nil {
		return err
	}

	*that = Cell{mark: player}

	return nil
}

// lineWinner returns the owner of the first complete line, NoPlayer if none.
func lineWinner(marks [boardSize]Player) Player {
	for _, combo := range WinCombos {
		a, b, c := marks[combo[0]], marks[combo[1]], marks[combo[2]]
		if a != NoPlayer && a == b && b == c {
			return a
		}
	}

	return NoPlayer
}
