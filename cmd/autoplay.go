package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/gosweep/director/constraint"
	"github.com/they4kman/gosweep/director/random"
	"github.com/they4kman/gosweep/game"
)

var autoplayOptions struct {
	director string
	games    int
}

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Make the computer play",
	Long: `autoplay lets a director pick every sweep, for as many games as asked.

Directors:
	random       sweeps any unrevealed cell
	constraint   deduces safe cells and mines from revealed counts, and guesses
	             the least likely mine when nothing is certain
`,
	RunE: runAutoplay,
}

func newDirector(name string, rng *rand.Rand) (game.Director, error) {
	switch name {
	case "random":
		return random.New(rng), nil
	case "constraint":
		return constraint.New(rng), nil
	}
	return nil, errors.Errorf("unknown director %q", name)
}

func runAutoplay(cmd *cobra.Command, args []string) error {
	engine, err := engineFlags.newEngine(cmd.Flags())
	if err != nil {
		return err
	}

	seed := engineFlags.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	preset := engineFlags.config.Preset
	log := logrus.WithFields(logrus.Fields{
		"director": autoplayOptions.director,
		"preset":   preset.Name,
	})

	var won, lost, stalled, moves int
	for i := 0; i < autoplayOptions.games; i++ {
		director, err := newDirector(autoplayOptions.director, rng)
		if err != nil {
			return err
		}

		view, err := game.Autoplay(ctx, engine, director, preset, log)
		if errors.Is(err, game.ErrDirectorStalled) {
			log.WithError(err).WithField("game", i+1).Warn("director stalled")
			stalled++
			continue
		} else if err != nil {
			return err
		}

		moves += view.Moves()
		if view.State() == game.Won {
			won++
		} else {
			lost++
		}
		log.WithFields(logrus.Fields{
			"game":  i + 1,
			"state": view.State(),
			"moves": view.Moves(),
		}).Info("game over")
	}

	played := won + lost
	log.WithFields(logrus.Fields{
		"won":     won,
		"lost":    lost,
		"stalled": stalled,
	}).Info("autoplay finished")

	fmt.Fprintf(cmd.OutOrStdout(), "won %d of %d games", won, autoplayOptions.games)
	if played > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%.1f%%), %.1f moves per game", 100*float64(won)/float64(played), float64(moves)/float64(played))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func init() {
	rootCmd.AddCommand(autoplayCmd)

	engineFlags.register(autoplayCmd.Flags())
	autoplayCmd.Flags().StringVarP(&autoplayOptions.director, "director", "d", "constraint", "Director picking the sweeps: random or constraint")
	autoplayCmd.Flags().IntVarP(&autoplayOptions.games, "games", "n", 1, "Number of games to play")
}
