package game

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Number of samples a single mine may reject before placement gives up
const placementAttemptsPerCell = 64

// MaxSize is the largest board side accepted
const MaxSize = 1024

// Layout is a square grid of booleans, used both for mines and for revealed cells
type Layout struct {
	size  int
	cells []bool
}

func NewLayout(size int) *Layout {
	return &Layout{
		size:  size,
		cells: make([]bool, size*size),
	}
}

func (layout *Layout) Size() int {
	return layout.size
}

func (layout *Layout) NumCells() int {
	return layout.size * layout.size
}

func (layout *Layout) Contains(coord Coord) bool {
	return coord.X >= 0 && coord.Y >= 0 && coord.X < layout.size && coord.Y < layout.size
}

func (layout *Layout) At(coord Coord) (bool, error) {
	if !layout.Contains(coord) {
		return false, errors.Wrapf(ErrOutOfBounds, "%v on a %dx%d board", coord, layout.size, layout.size)
	}
	return layout.cells[layout.index(coord)], nil
}

func (layout *Layout) Set(coord Coord, value bool) error {
	if !layout.Contains(coord) {
		return errors.Wrapf(ErrOutOfBounds, "%v on a %dx%d board", coord, layout.size, layout.size)
	}
	layout.cells[layout.index(coord)] = value
	return nil
}

// probe is the permissive accessor used while scanning neighborhoods. Cells
// off the board are reported as absent rather than failing.
func (layout *Layout) probe(x, y int) (value bool, present bool) {
	coord := Coord{x, y}
	if !layout.Contains(coord) {
		return false, false
	}
	return layout.cells[layout.index(coord)], true
}

func (layout *Layout) get(coord Coord) bool {
	return layout.cells[layout.index(coord)]
}

func (layout *Layout) set(coord Coord) {
	layout.cells[layout.index(coord)] = true
}

// Count returns how many cells are set
func (layout *Layout) Count() int {
	count := 0
	for _, value := range layout.cells {
		if value {
			count++
		}
	}
	return count
}

// Coords lists every set cell, column by column
func (layout *Layout) Coords() []Coord {
	coords := make([]Coord, 0)
	for x := 0; x < layout.size; x++ {
		for y := 0; y < layout.size; y++ {
			if layout.cells[layout.index(Coord{x, y})] {
				coords = append(coords, Coord{x, y})
			}
		}
	}
	return coords
}

func (layout *Layout) index(coord Coord) int {
	return coord.Y*layout.size + coord.X
}

func validateBoard(size, numMines int) error {
	if size <= 0 || size > MaxSize {
		return errors.Wrapf(ErrPlacementUnsatisfiable, "board size %d, must be 1 to %d", size, MaxSize)
	}
	if numMines <= 0 || numMines >= size*size {
		return errors.Wrapf(ErrPlacementUnsatisfiable, "%d mines on a %dx%d board", numMines, size, size)
	}
	return nil
}

// placeMines scatters numMines mines over a fresh layout, never on protected.
// Samples landing on protected or on an existing mine are drawn again.
func placeMines(size, numMines int, protected Coord, rng *rand.Rand) (*Layout, error) {
	if err := validateBoard(size, numMines); err != nil {
		return nil, err
	}

	mines := NewLayout(size)
	if !mines.Contains(protected) {
		return nil, errors.Wrapf(ErrOutOfBounds, "protected cell %v", protected)
	}

	maxAttempts := placementAttemptsPerCell * mines.NumCells()
	for placed := 0; placed < numMines; placed++ {
		attempts := 0
		for {
			if attempts >= maxAttempts {
				return nil, errors.Wrapf(ErrPlacementUnsatisfiable, "gave up on mine %d after %d samples", placed+1, attempts)
			}
			attempts++

			try := Coord{rng.Intn(size), rng.Intn(size)}
			if try == protected || mines.get(try) {
				continue
			}

			mines.set(try)
			break
		}
	}

	return mines, nil
}
