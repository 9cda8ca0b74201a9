// Package transport carries game sessions over HTTP: a Client which
// implements game.Engine against a remote authority, and the Server which is
// that authority.
//
// Requests are key=value pairs in the query string:
//
//	?request=init&size=<N>&mines=<M>&userid=<id>   → {"token": "..."}
//	?request=sweep&token=<token>&x=<x>&y=<y>       → game.SweepResult
//
//	/games/<userid>?token=<token>                  → finished games of userid
//
// Failures are answered with a non-200 status and {"error": "<code>"}.
package transport

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/they4kman/gosweep/game"
)

const (
	paramRequest = "request"
	paramSize    = "size"
	paramMines   = "mines"
	paramUserID  = "userid"
	paramToken   = "token"
	paramX       = "x"
	paramY       = "y"

	requestInit  = "init"
	requestSweep = "sweep"
)

const (
	CodeOutOfBounds            = "out_of_bounds"
	CodePlacementUnsatisfiable = "placement_unsatisfiable"
	CodeSessionTerminal        = "session_terminal"
	CodeInvalidToken           = "invalid_token"
	CodeForbidden              = "forbidden"
	CodeBadRequest             = "bad_request"
	CodeNotFound               = "not_found"
	CodeInternal               = "internal"
)

type InitResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// sweepAnswer is a sweep response as decoded off the wire. Every field must be
// present for the answer to count as a sweep.
type sweepAnswer struct {
	MineHit    *bool        `json:"mineHit"`
	NumMines   *int         `json:"minesAround"`
	EmptyCells []game.Cell  `json:"emptyCells"`
	Mines      []game.Coord `json:"mines"`
	Won        *bool        `json:"won"`
}

func (answer *sweepAnswer) result() (*game.SweepResult, error) {
	switch {
	case answer.MineHit == nil:
		return nil, errors.New("answer has no mineHit")
	case answer.NumMines == nil:
		return nil, errors.New("answer has no minesAround")
	case answer.EmptyCells == nil:
		return nil, errors.New("answer has no emptyCells")
	case answer.Mines == nil:
		return nil, errors.New("answer has no mines")
	case answer.Won == nil:
		return nil, errors.New("answer has no won")
	}

	return &game.SweepResult{
		MineHit:    *answer.MineHit,
		NumMines:   *answer.NumMines,
		EmptyCells: answer.EmptyCells,
		Mines:      answer.Mines,
		Won:        *answer.Won,
	}, nil
}

// gameErrors maps the engine's errors onto the wire, both ways
var gameErrors = []struct {
	err    error
	code   string
	status int
}{
	{game.ErrOutOfBounds, CodeOutOfBounds, http.StatusBadRequest},
	{game.ErrPlacementUnsatisfiable, CodePlacementUnsatisfiable, http.StatusUnprocessableEntity},
	{game.ErrSessionTerminal, CodeSessionTerminal, http.StatusConflict},
}

// errorCode picks the code and status answering a failed game operation
func errorCode(err error) (string, int) {
	for _, gameError := range gameErrors {
		if errors.Is(err, gameError.err) {
			return gameError.code, gameError.status
		}
	}
	return CodeInternal, http.StatusInternalServerError
}

// codeError returns the game error a code stands for
func codeError(code string) (error, bool) {
	for _, gameError := range gameErrors {
		if gameError.code == code {
			return gameError.err, true
		}
	}
	return nil, false
}
