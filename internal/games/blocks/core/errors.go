package core

import (
	"errors"
	"fmt"
)

var (
	// ErrGameOver is returned when a piece cannot be spawned.
	ErrGameOver = errors.New("game over: spawn position blocked")

	// ErrNotActive is returned by operations that need a falling piece.
	ErrNotActive = errors.New("no active piece")
)

// Configuration error codes.
const (
	CodeBadDimensions = "BAD_DIMENSIONS"
	CodeBadTiming     = "BAD_TIMING"
	CodeBadLevel      = "BAD_LEVEL"
	CodeBadSpawn      = "BAD_SPAWN"
	CodeBadKickTable  = "BAD_KICK_TABLE"
)

// ConfigError reports a configuration that cannot start a session.
type ConfigError struct {
	Code    string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// IsConfigError reports whether err is a ConfigError with the given code.
// An empty code matches any ConfigError.
func IsConfigError(err error, code string) bool {
	var ce ConfigError
	if !errors.As(err, &ce) {
		return false
	}
	return code == "" || ce.Code == code
}
