package game

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrDirectorStalled is returned by Autoplay when a director has no move left
// for a game that is still going.
var ErrDirectorStalled = errors.New("director has no move")

type Director interface {
	/**
	 * Initialize the director for a new game
	 */
	Init(*View)

	/**
	 * Pick the next cell to sweep, or report false when there is none
	 */
	Act() (Coord, bool)
}

// Autoplay plays a whole game of preset on engine, sweeping whatever director
// picks until the game is won or lost.
func Autoplay(ctx context.Context, engine Engine, director Director, preset Preset, log logrus.FieldLogger) (*View, error) {
	if err := engine.Init(ctx, preset.Size, preset.NumMines); err != nil {
		return nil, err
	}

	view := NewView(preset)
	director.Init(view)

	maxMoves := preset.Size * preset.Size
	for !view.State().IsTerminal() {
		if view.Moves() >= maxMoves {
			return view, errors.Wrapf(ErrDirectorStalled, "still playing after %d moves", view.Moves())
		}

		coord, ok := director.Act()
		if !ok {
			return view, ErrDirectorStalled
		}

		result, err := engine.Sweep(ctx, coord.X, coord.Y)
		if err != nil {
			return view, err
		}
		view.Apply(coord, result)

		log.WithFields(logrus.Fields{
			"cell":     coord,
			"revealed": view.NumRevealed(),
		}).Debug("director swept")
	}

	return view, nil
}
