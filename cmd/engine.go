package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/transport"
)

// engineOptions pick the engine a command plays against
type engineOptions struct {
	config game.GameConfig

	layout  string
	remote  string
	userID  string
	timeout time.Duration
}

var engineFlags = engineOptions{config: game.NewGameConfig()}

func (options *engineOptions) register(flags *pflag.FlagSet) {
	flags.VarP(newPresetValue(game.Small, &options.config.Preset), "preset", "p", `Board to play:
small: 9x9, 10 mines
medium: 16x16, 40 mines
large: 24x24, 150 mines`)
	flags.Int64Var(&options.config.Seed, "seed", 0, "Seed for mine placement; random when 0")
	flags.StringVar(&options.layout, "layout", "", "YAML snapshot to play instead of a random board; picks the preset unless --preset is given")
	flags.StringVar(&options.remote, "remote", "", "URL of an authority to play against, instead of playing locally")
	flags.StringVar(&options.userID, "user", "", "User id to introduce yourself to the authority with")
	flags.DurationVar(&options.timeout, "timeout", transport.DefaultTimeout, "Timeout of each request to the authority")
}

func (options *engineOptions) newEngine(flags *pflag.FlagSet) (game.Engine, error) {
	if options.remote != "" {
		if options.layout != "" {
			logrus.Warn("--layout is ignored when playing against an authority")
		}
		return transport.NewClient(options.remote, options.userID, options.timeout, logrus.StandardLogger()), nil
	}

	if options.layout != "" {
		in, err := os.ReadFile(options.layout)
		if err != nil {
			return nil, errors.Wrap(err, "read layout")
		}
		snapshot, err := game.LoadSnapshot(string(in))
		if err != nil {
			return nil, errors.Wrapf(err, "load layout %s", options.layout)
		}
		options.config.Snapshot = snapshot

		if !flags.Changed("preset") {
			if options.config.Preset, err = snapshot.Preset(); err != nil {
				return nil, err
			}
		}
		if options.config.Seed == 0 {
			options.config.Seed = snapshot.Seed
		}
	}

	options.config.Logger = logrus.StandardLogger()
	return game.NewLocalEngine(options.config), nil
}

type presetValue game.Preset

func newPresetValue(val game.Preset, p *game.Preset) *presetValue {
	*p = val
	return (*presetValue)(p)
}

func (presetVal *presetValue) String() string {
	return presetVal.Name
}

func (presetVal *presetValue) Set(value string) error {
	if preset, isValid := game.LookupPreset(value); isValid {
		*presetVal = presetValue(preset)
		return nil
	}

	names := make([]string, len(game.Presets))
	for i, preset := range game.Presets {
		names[i] = preset.Name
	}
	return fmt.Errorf("invalid preset, pick one of %s", strings.Join(names, ", "))
}

func (presetVal *presetValue) Type() string {
	return "game.Preset"
}
