package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func mustLayout(t *testing.T, rows ...string) *Layout {
	t.Helper()
	mines, err := (&BoardSnapshot{SerializedBoard: strings.Join(rows, "\n")}).Layout()
	require.NoError(t, err)
	return mines
}

func TestLayoutAccessors(t *testing.T) {
	layout := NewLayout(3)
	require.Equal(t, 9, layout.NumCells())
	require.Zero(t, layout.Count())

	require.NoError(t, layout.Set(Coord{2, 1}, true))
	value, err := layout.At(Coord{2, 1})
	require.NoError(t, err)
	require.True(t, value)
	require.Equal(t, []Coord{{2, 1}}, layout.Coords())

	for _, coord := range []Coord{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		_, err := layout.At(coord)
		require.True(t, errors.Is(err, ErrOutOfBounds), "At%v", coord)
		require.True(t, errors.Is(layout.Set(coord, true), ErrOutOfBounds), "Set%v", coord)
	}
	require.Equal(t, 1, layout.Count(), "rejected sets must not mutate the layout")
}

func TestLayoutProbeReportsAbsentOffBoard(t *testing.T) {
	layout := mustLayout(t, "*.", "..")

	value, present := layout.probe(0, 0)
	require.True(t, present)
	require.True(t, value)

	_, present = layout.probe(-1, 0)
	require.False(t, present)
	_, present = layout.probe(0, 2)
	require.False(t, present)
}

func TestLayoutCoordsAreColumnMajor(t *testing.T) {
	layout := mustLayout(t,
		".*.",
		"*..",
		"..*",
	)
	require.Equal(t, []Coord{{0, 1}, {1, 0}, {2, 2}}, layout.Coords())
}

func TestPlaceMinesExactCountAndProtectedCell(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for size := 1; size <= 6; size++ {
		for numMines := 1; numMines < size*size; numMines++ {
			for _, protected := range []Coord{{0, 0}, {size - 1, size - 1}, {size / 2, size / 2}} {
				mines, err := placeMines(size, numMines, protected, rng)
				require.NoError(t, err)
				require.Equal(t, numMines, mines.Count(), "size %d mines %d", size, numMines)
				require.False(t, mines.get(protected), "protected %v mined on size %d", protected, size)
			}
		}
	}
}

func TestPlaceMinesRejectsUnsatisfiableBoards(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cases := []struct {
		size, numMines int
	}{
		{3, 9},
		{3, 10},
		{3, 0},
		{0, 1},
		{1, 1},
	}
	for _, c := range cases {
		_, err := placeMines(c.size, c.numMines, Coord{0, 0}, rng)
		require.True(t, errors.Is(err, ErrPlacementUnsatisfiable), "size %d mines %d", c.size, c.numMines)
	}

	_, err := placeMines(3, 1, Coord{3, 3}, rng)
	require.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestPlaceMinesIsReproducibleFromSeed(t *testing.T) {
	first, err := placeMines(9, 10, Coord{4, 4}, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := placeMines(9, 10, Coord{4, 4}, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	require.Equal(t, first.Coords(), second.Coords())
}
