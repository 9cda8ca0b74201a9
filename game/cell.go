package game

import "fmt"

type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.X, coord.Y)
}

// Cell is a safe coordinate paired with the number of mines surrounding it
type Cell struct {
	Coord
	NumMines int `json:"minesAround"`
}

func (cell Cell) String() string {
	return fmt.Sprintf("Cell(%d, %d: %d)", cell.X, cell.Y, cell.NumMines)
}

// countMinesAround counts the mines among the 8 cells surrounding (x, y).
// Cells off the board contribute nothing.
func countMinesAround(mines *Layout, x, y int) int {
	count := 0
	for _, offset := range neighborOffsets {
		if isMine, present := mines.probe(x+offset.X, y+offset.Y); present && isMine {
			count++
		}
	}
	return count
}

// safeNeighbors returns the on-board, mine-free neighbors of (x, y), each with
// its own count. Mined neighbors are never candidates for an automatic reveal.
func safeNeighbors(mines *Layout, x, y int) []Cell {
	neighbors := make([]Cell, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		nx, ny := x+offset.X, y+offset.Y
		if isMine, present := mines.probe(nx, ny); present && !isMine {
			neighbors = append(neighbors, Cell{
				Coord:    Coord{nx, ny},
				NumMines: countMinesAround(mines, nx, ny),
			})
		}
	}
	return neighbors
}
