package ui

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/they4kman/gosweep/game"
)

// recorder is a Presenter remembering every call, in order
type recorder struct {
	calls []string
}

func (rec *recorder) RevealCell(cell game.Cell) {
	rec.calls = append(rec.calls, fmt.Sprintf("reveal %d %d %d", cell.X, cell.Y, cell.NumMines))
}

func (rec *recorder) RevealAllMines(mines []game.Coord) {
	rec.calls = append(rec.calls, fmt.Sprintf("mines %v", mines))
}

func (rec *recorder) DisplayWinBanner()  { rec.calls = append(rec.calls, "win") }
func (rec *recorder) DisplayLossBanner() { rec.calls = append(rec.calls, "loss") }
func (rec *recorder) Disable()           { rec.calls = append(rec.calls, "disable") }

func cornerMineEngine(t *testing.T) game.Engine {
	t.Helper()
	snapshot, err := game.LoadSnapshot("board: \"...\\n...\\n..*\"")
	require.NoError(t, err)

	config := game.NewGameConfig()
	config.Snapshot = snapshot
	config.Logger, _ = logtest.NewNullLogger()
	return game.NewLocalEngine(config)
}

var cornerMinePreset = game.Preset{Name: "layout", Size: 3, NumMines: 1}

func TestControllerRevealsInOrderAndWins(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	log, _ := logtest.NewNullLogger()
	controller := NewController(cornerMineEngine(t), rec, log)

	var ended *game.View
	controller.OnGameEnd = func(view *game.View) { ended = view }

	require.NoError(t, controller.NewGame(ctx, cornerMinePreset))
	_, err := controller.Sweep(ctx, 0, 0)
	require.NoError(t, err)

	require.Equal(t, []string{
		"reveal 0 0 0",
		"reveal 1 0 0",
		"reveal 0 1 0",
		"reveal 1 1 1",
		"reveal 2 0 0",
		"reveal 2 1 1",
		"reveal 0 2 0",
		"reveal 1 2 1",
		"win",
		"disable",
	}, rec.calls)
	require.Same(t, controller.View(), ended)
	require.Equal(t, game.Won, ended.State())

	_, err = controller.Sweep(ctx, 2, 2)
	require.True(t, errors.Is(err, game.ErrSessionTerminal), "input is disabled after a win")
	require.False(t, controller.ToggleFlag(2, 2))
}

func TestControllerLoss(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	controller := NewController(cornerMineEngine(t), rec, nil)
	require.NoError(t, controller.NewGame(ctx, cornerMinePreset))

	_, err := controller.Sweep(ctx, 1, 1)
	require.NoError(t, err)
	result, err := controller.Sweep(ctx, 2, 2)
	require.NoError(t, err)
	require.True(t, result.MineHit)

	require.Equal(t, []string{"reveal 1 1 1", "mines [(2, 2)]", "loss", "disable"}, rec.calls)
	require.True(t, controller.View().IsLosingMine(game.Coord{X: 2, Y: 2}))

	// A new game enables input again
	require.NoError(t, controller.NewGame(ctx, cornerMinePreset))
	_, err = controller.Sweep(ctx, 1, 1)
	require.NoError(t, err)
}

func TestControllerRejections(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	log, hook := logtest.NewNullLogger()
	controller := NewController(cornerMineEngine(t), rec, log)

	_, err := controller.Sweep(ctx, 0, 0)
	require.True(t, errors.Is(err, game.ErrSessionTerminal), "no game yet")

	err = controller.NewGame(ctx, game.Preset{Size: 3, NumMines: 9})
	require.True(t, errors.Is(err, game.ErrPlacementUnsatisfiable))
	require.Nil(t, controller.View())

	require.NoError(t, controller.NewGame(ctx, cornerMinePreset))
	require.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	require.Equal(t, "new game", hook.LastEntry().Message)

	_, err = controller.Sweep(ctx, 3, 0)
	require.True(t, errors.Is(err, game.ErrOutOfBounds))
	require.Empty(t, rec.calls)
	require.Zero(t, controller.View().Moves())

	require.True(t, controller.ToggleFlag(2, 2))
	require.True(t, controller.View().IsFlagged(game.Coord{X: 2, Y: 2}))
	require.False(t, controller.ToggleFlag(5, 5))
}
