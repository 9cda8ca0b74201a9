package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/transport"
)

func newTestEngineFlags(args ...string) (*pflag.FlagSet, *engineOptions, error) {
	options := &engineOptions{config: game.NewGameConfig()}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	options.register(flags)
	return flags, options, flags.Parse(args)
}

func TestPresetFlag(t *testing.T) {
	_, options, err := newTestEngineFlags()
	require.NoError(t, err)
	require.Equal(t, game.Small, options.config.Preset)

	_, options, err = newTestEngineFlags("--preset", "large")
	require.NoError(t, err)
	require.Equal(t, game.Large, options.config.Preset)

	_, _, err = newTestEngineFlags("-p", "huge")
	require.ErrorContains(t, err, "small, medium, large")
}

func TestNewEngineFromLayout(t *testing.T) {
	layout := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(layout, []byte("seed: 3\nboard: |\n  ...\n  ...\n  ..*\n"), 0o644))

	flags, options, err := newTestEngineFlags("--layout", layout)
	require.NoError(t, err)

	engine, err := options.newEngine(flags)
	require.NoError(t, err)
	require.IsType(t, &game.LocalEngine{}, engine)
	require.Equal(t, game.Preset{Name: "layout", Size: 3, NumMines: 1}, options.config.Preset)
	require.Equal(t, int64(3), options.config.Seed)

	flags, options, err = newTestEngineFlags("--layout", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	_, err = options.newEngine(flags)
	require.Error(t, err)
}

func TestNewEngineRemote(t *testing.T) {
	flags, options, err := newTestEngineFlags("--remote", "http://localhost:8080/", "--user", "alice")
	require.NoError(t, err)

	engine, err := options.newEngine(flags)
	require.NoError(t, err)
	require.IsType(t, &transport.Client{}, engine)
}

func TestNewDirector(t *testing.T) {
	for _, name := range []string{"random", "constraint"} {
		director, err := newDirector(name, nil)
		require.NoError(t, err)
		require.NotNil(t, director)
	}

	_, err := newDirector("psychic", nil)
	require.Error(t, err)
}
