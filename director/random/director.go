package random

import (
	"math/rand"

	"github.com/they4kman/gosweep/game"
)

// Director sweeps a uniformly random unrevealed, unflagged cell
type Director struct {
	view *game.View
	rand *rand.Rand
}

func New(rng *rand.Rand) *Director {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Director{rand: rng}
}

func (director *Director) Init(view *game.View) {
	director.view = view
}

func (director *Director) Act() (game.Coord, bool) {
	candidates := make([]game.Coord, 0)
	for _, coord := range director.view.Unrevealed() {
		if !director.view.IsFlagged(coord) {
			candidates = append(candidates, coord)
		}
	}

	if len(candidates) == 0 {
		return game.Coord{}, false
	}
	return candidates[director.rand.Intn(len(candidates))], true
}
