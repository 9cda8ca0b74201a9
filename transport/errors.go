package transport

import (
	"fmt"

	"github.com/they4kman/gosweep/game"
)

// Error is a failure to reach the authority or to understand its answer. It
// matches game.ErrTransportFailure.
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (err *Error) Error() string {
	if err.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d: %v", game.ErrTransportFailure, err.Op, err.StatusCode, err.Err)
	}
	return fmt.Sprintf("%s: %s: %v", game.ErrTransportFailure, err.Op, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

func (err *Error) Is(target error) bool {
	return target == game.ErrTransportFailure
}
