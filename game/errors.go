package game

import "github.com/pkg/errors"

var (
	ErrOutOfBounds            = errors.New("coordinate out of bounds")
	ErrPlacementUnsatisfiable = errors.New("mine placement unsatisfiable")
	ErrSessionTerminal        = errors.New("session is over")

	// ErrTransportFailure is matched by every failure to reach or understand a
	// remote authority. It never accompanies a usable SweepResult.
	ErrTransportFailure = errors.New("transport failure")
)
