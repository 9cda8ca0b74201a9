package game

import "github.com/they4kman/gosweep/util/collections"

// View is a front end's knowledge of a board: the counts it has been shown,
// the mines disclosed on a loss, and the flags placed by the player. It never
// holds the hidden mine layout, so it works the same for remote engines.
type View struct {
	size     int
	numMines int
	state    GameState
	moves    int

	counts map[Coord]int
	flags  collections.Set[Coord]
	mines  collections.Set[Coord]
	losing *Coord
}

func NewView(preset Preset) *View {
	return &View{
		size:     preset.Size,
		numMines: preset.NumMines,
		state:    Fresh,
		counts:   make(map[Coord]int),
		flags:    make(collections.Set[Coord]),
		mines:    make(collections.Set[Coord]),
	}
}

func (view *View) Size() int {
	return view.size
}

func (view *View) NumMines() int {
	return view.numMines
}

func (view *View) State() GameState {
	return view.state
}

func (view *View) Moves() int {
	return view.moves
}

func (view *View) NumRevealed() int {
	return len(view.counts)
}

func (view *View) Contains(coord Coord) bool {
	return coord.X >= 0 && coord.Y >= 0 && coord.X < view.size && coord.Y < view.size
}

// Apply records the result of sweeping swept
func (view *View) Apply(swept Coord, result *SweepResult) {
	view.moves++

	if result.MineHit {
		view.state = Lost
		view.losing = &swept
		for _, mine := range result.Mines {
			view.mines.Add(mine)
		}
		return
	}

	view.counts[swept] = result.NumMines
	view.flags.Remove(swept)
	for _, cell := range result.EmptyCells {
		view.counts[cell.Coord] = cell.NumMines
		view.flags.Remove(cell.Coord)
	}
	view.state = Active
	if result.Won {
		view.state = Won
	}
}

func (view *View) Count(coord Coord) (int, bool) {
	count, revealed := view.counts[coord]
	return count, revealed
}

func (view *View) IsRevealed(coord Coord) bool {
	_, revealed := view.counts[coord]
	return revealed
}

func (view *View) IsFlagged(coord Coord) bool {
	return view.flags.Contains(coord)
}

// ToggleFlag marks or unmarks an unrevealed cell. Flags are cosmetic and never
// sent to the engine.
func (view *View) ToggleFlag(coord Coord) bool {
	if !view.Contains(coord) || view.IsRevealed(coord) {
		return false
	}
	if view.flags.Contains(coord) {
		view.flags.Remove(coord)
	} else {
		view.flags.Add(coord)
	}
	return true
}

// IsMine returns whether coord was disclosed as a mine when the game was lost
func (view *View) IsMine(coord Coord) bool {
	return view.mines.Contains(coord)
}

func (view *View) IsLosingMine(coord Coord) bool {
	return view.losing != nil && *view.losing == coord
}

// Unrevealed lists every unrevealed cell, row by row
func (view *View) Unrevealed() []Coord {
	coords := make([]Coord, 0, view.size*view.size-len(view.counts))
	for y := 0; y < view.size; y++ {
		for x := 0; x < view.size; x++ {
			if !view.IsRevealed(Coord{x, y}) {
				coords = append(coords, Coord{x, y})
			}
		}
	}
	return coords
}

// Neighbors lists the on-board cells surrounding coord
func (view *View) Neighbors(coord Coord) []Coord {
	neighbors := make([]Coord, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		neighbor := Coord{coord.X + offset.X, coord.Y + offset.Y}
		if view.Contains(neighbor) {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}
