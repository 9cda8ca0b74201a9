package game

import (
	"math/rand"

	"github.com/pkg/errors"
)

// SweepResult is the outcome of a single sweep
type SweepResult struct {
	MineHit bool `json:"mineHit"`
	// Mines surrounding the swept cell; zero when a mine was hit
	NumMines int `json:"minesAround"`
	// Cells revealed by flood fill besides the swept cell, in reveal order
	EmptyCells []Cell `json:"emptyCells"`
	// Every mine on the board, only disclosed when a mine was hit
	Mines []Coord `json:"mines"`
	Won   bool    `json:"won"`
}

// Session is one game on one board. Mines are only placed on the first sweep,
// so that the first swept cell is always safe.
type Session struct {
	size     int
	numMines int

	mines       *Layout
	revealed    *Layout
	numRevealed int

	moves int
	state GameState

	rand *rand.Rand
}

func NewSession(size, numMines int, rng *rand.Rand) (*Session, error) {
	if err := validateBoard(size, numMines); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	return &Session{
		size:     size,
		numMines: numMines,
		revealed: NewLayout(size),
		state:    Fresh,
		rand:     rng,
	}, nil
}

// NewSessionWithMines starts a session on a board whose mines are already
// placed. The first sweep is then resolved against this layout as-is.
func NewSessionWithMines(mines *Layout) (*Session, error) {
	numMines := mines.Count()
	if err := validateBoard(mines.Size(), numMines); err != nil {
		return nil, err
	}

	return &Session{
		size:     mines.Size(),
		numMines: numMines,
		mines:    mines,
		revealed: NewLayout(mines.Size()),
		state:    Fresh,
	}, nil
}

func (session *Session) Size() int {
	return session.size
}

func (session *Session) NumMines() int {
	return session.numMines
}

func (session *Session) State() GameState {
	return session.state
}

func (session *Session) Moves() int {
	return session.moves
}

func (session *Session) RevealedCount() int {
	return session.numRevealed
}

func (session *Session) IsRevealed(coord Coord) (bool, error) {
	return session.revealed.At(coord)
}

// Mines lists the mine coordinates, or nil while they are not yet placed
func (session *Session) Mines() []Coord {
	if session.mines == nil {
		return nil
	}
	return session.mines.Coords()
}

// Snapshot describes the placed mines, or returns nil while they are not yet
// placed
func (session *Session) Snapshot(seed int64) *BoardSnapshot {
	if session.mines == nil {
		return nil
	}
	return SnapshotOf(session.mines, seed)
}

func (session *Session) Sweep(x, y int) (*SweepResult, error) {
	if session.state.IsTerminal() {
		return nil, errors.Wrapf(ErrSessionTerminal, "game already %s", session.state)
	}

	coord := Coord{x, y}
	if !session.revealed.Contains(coord) {
		return nil, errors.Wrapf(ErrOutOfBounds, "sweep %v on a %dx%d board", coord, session.size, session.size)
	}

	mines := session.mines
	if mines == nil {
		var err error
		if mines, err = placeMines(session.size, session.numMines, coord, session.rand); err != nil {
			return nil, err
		}
		session.mines = mines
	}

	session.moves++
	session.state = Active

	if mines.get(coord) {
		session.state = Lost
		return &SweepResult{
			MineHit:    true,
			EmptyCells: []Cell{},
			Mines:      mines.Coords(),
		}, nil
	}

	result := &SweepResult{
		NumMines:   countMinesAround(mines, x, y),
		EmptyCells: []Cell{},
		Mines:      []Coord{},
	}
	if result.NumMines == 0 {
		result.EmptyCells = emptyRegion(mines, coord)[1:]
	}

	session.reveal(coord)
	for _, cell := range result.EmptyCells {
		session.reveal(cell.Coord)
	}

	if session.numRevealed == session.size*session.size-session.numMines {
		session.state = Won
		result.Won = true
	}

	return result, nil
}

func (session *Session) reveal(coord Coord) {
	if !session.revealed.get(coord) {
		session.revealed.set(coord)
		session.numRevealed++
	}
}
