package apperror

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrStaleGame         = errors.New("game was modified concurrently")
)
