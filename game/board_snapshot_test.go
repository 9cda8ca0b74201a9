package game

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	mines, err := placeMines(9, 10, Coord{4, 4}, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	loaded, err := LoadSnapshot(SnapshotOf(mines, 5).Serialize())
	require.NoError(t, err)
	require.Equal(t, int64(5), loaded.Seed)

	layout, err := loaded.Layout()
	require.NoError(t, err)
	require.Equal(t, mines.Coords(), layout.Coords())
}

func TestLoadSnapshotFromYAML(t *testing.T) {
	snapshot, err := LoadSnapshot(`
board: |
  ...
  ...
  ..*
`)
	require.NoError(t, err)

	preset, err := snapshot.Preset()
	require.NoError(t, err)
	require.Equal(t, 3, preset.Size)
	require.Equal(t, 1, preset.NumMines)
	require.True(t, snapshot.Matches(3, 1))
	require.False(t, snapshot.Matches(9, 10))
}

func TestLoadSnapshotRejectsMalformedBoards(t *testing.T) {
	for name, in := range map[string]string{
		"not square":   "board: \"...\\n...\"",
		"unknown cell": "board: \"..\\n.x\"",
		"empty":        "board: \"\"",
		"not yaml":     "board: [",
	} {
		_, err := LoadSnapshot(in)
		require.Error(t, err, name)
	}

	_, err := (&BoardSnapshot{SerializedBoard: "..\n.."}).Preset()
	require.Error(t, err, "a board without mines is not playable")
}

func TestSaveSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "replays")
	ended := time.Date(2024, 5, 1, 12, 30, 15, 0, time.UTC)

	session, err := NewSessionWithMines(mustLayout(t, "...", "...", "..*"))
	require.NoError(t, err)
	_, err = session.Sweep(2, 2)
	require.NoError(t, err)

	path, err := SaveSnapshot(dir, session.Snapshot(7), session.State(), ended)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20240501_123015_loss.yaml"), path)

	again, err := SaveSnapshot(dir, session.Snapshot(7), session.State(), ended)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20240501_123015_loss_1.yaml"), again)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	loaded, err := LoadSnapshot(string(contents))
	require.NoError(t, err)
	require.Equal(t, int64(7), loaded.Seed)
	require.True(t, loaded.Matches(3, 1))

	notDir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(notDir, nil, 0o644))
	_, err = SaveSnapshot(notDir, session.Snapshot(7), Lost, ended)
	require.Error(t, err)
}

func TestSessionSnapshotBeforePlacement(t *testing.T) {
	session, err := NewSession(9, 10, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Nil(t, session.Snapshot(1))
}
