package constraint

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/they4kman/gosweep/director/random"
	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/util/collections"
)

type Strategy int

const (
	Deliberate Strategy = iota
	LowestProbability
	Random
)

func (strategy Strategy) String() string {
	switch strategy {
	case Deliberate:
		return "deliberate"
	case LowestProbability:
		return "lowest-probability"
	default:
		return "random"
	}
}

// Passes of subset splitting run on each act
const simplifyPasses = 4

// Director deduces safe cells and mines from the counts shown so far. When
// nothing is certain it sweeps the cell least likely to hold a mine, and
// without any information it falls back to a random cell.
type Director struct {
	view   *game.View
	rand   *rand.Rand
	random *random.Director

	observations []*Observation
	lastStrategy Strategy
}

// Observation states that exactly numMines of cells are mines
type Observation struct {
	origin   *game.Coord
	numMines int
	cells    collections.Set[game.Coord]
}

func (observation Observation) String() string {
	cells := sortedCoords(observation.cells)
	cellsRepr := make([]string, len(cells))
	for i, cell := range cells {
		cellsRepr[i] = cell.String()
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = observation.origin.String()
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(cellsRepr, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func New(rng *rand.Rand) *Director {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Director{
		rand:   rng,
		random: random.New(rng),
	}
}

func (director *Director) Init(view *game.View) {
	director.view = view
	director.random.Init(view)
	director.observations = nil
}

// LastStrategy reports how the most recent action was chosen
func (director *Director) LastStrategy() Strategy {
	return director.lastStrategy
}

func (director *Director) Act() (game.Coord, bool) {
	if coord, ok := director.actDeliberate(); ok {
		director.lastStrategy = Deliberate
		return coord, true
	}
	if coord, ok := director.actLowestProbability(); ok {
		director.lastStrategy = LowestProbability
		return coord, true
	}
	director.lastStrategy = Random
	return director.random.Act()
}

// actDeliberate flags every cell known to be a mine, then returns a cell known
// to be safe if there is one.
func (director *Director) actDeliberate() (game.Coord, bool) {
	for {
		director.observe()

		flagged := false
		for _, observation := range director.observations {
			if observation.numMines == 0 {
				return sortedCoords(observation.cells)[0], true
			}
			if observation.numMines == len(observation.cells) {
				for cell := range observation.cells {
					if !director.view.IsFlagged(cell) {
						director.view.ToggleFlag(cell)
						flagged = true
					}
				}
			}
		}

		// Flags change the remaining counts, so observe again
		if !flagged {
			return game.Coord{}, false
		}
	}
}

func (director *Director) actLowestProbability() (game.Coord, bool) {
	lowestProbability := math.Inf(1)
	cellProbabilities := make(map[game.Coord]float64)

	for _, observation := range director.observations {
		probability := observation.MineProbability()
		for cell := range observation.cells {
			if pastProbability, ok := cellProbabilities[cell]; !ok || probability < pastProbability {
				cellProbabilities[cell] = probability
			}
		}
		if probability < lowestProbability {
			lowestProbability = probability
		}
	}

	lowestProbabilityCells := make([]game.Coord, 0)
	for cell, probability := range cellProbabilities {
		if probability <= lowestProbability {
			lowestProbabilityCells = append(lowestProbabilityCells, cell)
		}
	}
	if len(lowestProbabilityCells) == 0 {
		return game.Coord{}, false
	}

	sortCoords(lowestProbabilityCells)
	director.rand.Shuffle(len(lowestProbabilityCells), func(i, j int) {
		lowestProbabilityCells[i], lowestProbabilityCells[j] = lowestProbabilityCells[j], lowestProbabilityCells[i]
	})
	return lowestProbabilityCells[0], true
}

// observe rebuilds the observations from every revealed number, then splits
// overlapping ones.
func (director *Director) observe() {
	director.observations = director.observations[:0]
	view := director.view

	for y := 0; y < view.Size(); y++ {
		for x := 0; x < view.Size(); x++ {
			origin := game.Coord{X: x, Y: y}
			numMines, revealed := view.Count(origin)
			if !revealed || numMines == 0 {
				continue
			}

			observation := Observation{
				origin:   &origin,
				numMines: numMines,
				cells:    make(collections.Set[game.Coord]),
			}
			for _, neighbor := range view.Neighbors(origin) {
				if view.IsRevealed(neighbor) {
					continue
				}
				if view.IsFlagged(neighbor) {
					observation.numMines--
				} else {
					observation.cells.Add(neighbor)
				}
			}
			director.addObservation(&observation)
		}
	}

	for i := 0; i < simplifyPasses; i++ {
		if !director.simplifyObservations() {
			break
		}
	}
}

// simplifyObservations adds, for every observation contained in another, the
// observation on the cells they do not share. Reports whether any was added.
func (director *Director) simplifyObservations() bool {
	added := false
	observations := director.observations
	for _, observation := range observations {
		for _, other := range observations {
			if other == observation || len(observation.cells) >= len(other.cells) {
				continue
			}
			if _, isSubset := observation.cells.IntersectionEx(other.cells); !isSubset {
				continue
			}

			splitObs := Observation{
				numMines: other.numMines - observation.numMines,
				cells:    other.cells.Difference(observation.cells),
			}
			if director.addObservation(&splitObs) {
				added = true
			}
		}
	}
	return added
}

func (director *Director) addObservation(observation *Observation) bool {
	// Don't add vacuous observations
	if len(observation.cells) == 0 {
		return false
	}

	// Don't add duplicates
	for _, other := range director.observations {
		if other.cells.Equal(observation.cells) {
			return false
		}
	}

	director.observations = append(director.observations, observation)
	return true
}

func sortedCoords(set collections.Set[game.Coord]) []game.Coord {
	coords := make([]game.Coord, 0, len(set))
	for coord := range set {
		coords = append(coords, coord)
	}
	sortCoords(coords)
	return coords
}

func sortCoords(coords []game.Coord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
}
