// internal/app/errors.go
package app

import (
	"errors"
	"fmt"
	"log"
)

// Ошибки валидации. Состояние игры при них не меняется.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPathBlocked       = errors.New("tower would block the path")
	ErrInvalidPosition   = errors.New("invalid position")
	ErrUnknownTowerKind  = errors.New("unknown tower kind")
	ErrTowerNotFound     = errors.New("tower not found")
	ErrMaxLevelReached   = errors.New("max level reached")
	ErrWaveInProgress    = errors.New("wave in progress")
	ErrInvalidWave       = errors.New("invalid wave")
	ErrNotOwner          = errors.New("tower belongs to another player")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrNoSlotAvailable   = errors.New("no slot")
	ErrGameInProgress    = errors.New("game in progress")
	ErrNotRunning        = errors.New("game is not running")
)

// Коды StartWave на проводе.
const (
	WaveStatusOK         = 0
	WaveStatusInProgress = 1
	WaveStatusInvalid    = 2
	WaveStatusNotRunning = 3
)

// WaveStatus maps a StartWave error to its integer status.
func WaveStatus(err error) int {
	switch {
	case err == nil:
		return WaveStatusOK
	case errors.Is(err, ErrWaveInProgress):
		return WaveStatusInProgress
	case errors.Is(err, ErrNotRunning):
		return WaveStatusNotRunning
	default:
		return WaveStatusInvalid
	}
}

// InvariantError is raised when the simulation reaches a state it must never reach.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "invariant violated: " + e.Msg }

// invariant logs a violated invariant and panics in strict mode.
func (g *Game) invariant(ok bool, format string, args ...any) {
	if ok {
		return
	}
	err := &InvariantError{Msg: fmt.Sprintf(format, args...)}
	log.Printf("[game] %v", err)
	if g.Strict {
		panic(err)
	}
}
