package game

import (
	"github.com/gammazero/deque"

	"github.com/they4kman/gosweep/util/collections"
)

type NeighborGetter func(Cell) []Cell
type Visitor func(Cell)

// flood walks breadth-first from start, which must have no surrounding mines.
// Every cell is visited at most once. Cells with surrounding mines are visited
// but do not spread the fill.
func flood(start Cell, visit Visitor, getNeighbors NeighborGetter) {
	visited := collections.NewSet(start.Coord)
	var visitQueue deque.Deque
	visitQueue.PushBack(start)

	for visitQueue.Len() > 0 {
		cell := visitQueue.PopFront().(Cell)
		visit(cell)

		if cell.NumMines != 0 {
			continue
		}

		for _, neighbor := range getNeighbors(cell) {
			if visited.Contains(neighbor.Coord) {
				continue
			}
			visited.Add(neighbor.Coord)
			visitQueue.PushBack(neighbor)
		}
	}
}

// emptyRegion returns the connected zero-count region around start plus its
// numbered border, in traversal order beginning with start itself.
func emptyRegion(mines *Layout, start Coord) []Cell {
	region := make([]Cell, 0)
	flood(
		Cell{Coord: start, NumMines: countMinesAround(mines, start.X, start.Y)},
		func(cell Cell) {
			region = append(region, cell)
		},
		func(cell Cell) []Cell {
			return safeNeighbors(mines, cell.X, cell.Y)
		},
	)
	return region
}
