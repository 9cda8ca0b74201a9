package ui

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/gosweep/game"
)

// Presenter draws what the controller learns from the engine
type Presenter interface {
	RevealCell(cell game.Cell)
	RevealAllMines(mines []game.Coord)
	DisplayWinBanner()
	DisplayLossBanner()

	// Disable stops accepting sweeps until the next game
	Disable()
}

// Controller connects an engine to a presenter. It starts games, forwards
// sweeps, and tells the presenter what to reveal.
type Controller struct {
	engine    game.Engine
	presenter Presenter
	log       logrus.FieldLogger

	preset game.Preset
	view   *game.View

	// OnGameEnd is called once per game, after the presenter has been told
	OnGameEnd func(view *game.View)
}

func NewController(engine game.Engine, presenter Presenter, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		engine:    engine,
		presenter: presenter,
		log:       log,
	}
}

// View returns what is known of the current game, nil before the first one
func (controller *Controller) View() *game.View {
	return controller.view
}

func (controller *Controller) Preset() game.Preset {
	return controller.preset
}

func (controller *Controller) NewGame(ctx context.Context, preset game.Preset) error {
	if err := controller.engine.Init(ctx, preset.Size, preset.NumMines); err != nil {
		// The engine dropped the previous game along with the failed one
		controller.view = nil
		return err
	}

	controller.preset = preset
	controller.view = game.NewView(preset)
	controller.log.WithFields(logrus.Fields{
		"preset": preset.Name,
		"size":   preset.Size,
		"mines":  preset.NumMines,
	}).Info("new game")
	return nil
}

func (controller *Controller) Sweep(ctx context.Context, x, y int) (*game.SweepResult, error) {
	view := controller.view
	if view == nil {
		return nil, errors.Wrap(game.ErrSessionTerminal, "no game started")
	}
	if view.State().IsTerminal() {
		return nil, errors.Wrapf(game.ErrSessionTerminal, "game already %s", view.State())
	}

	coord := game.Coord{X: x, Y: y}
	result, err := controller.engine.Sweep(ctx, x, y)
	if err != nil {
		return nil, err
	}
	view.Apply(coord, result)

	if result.MineHit {
		controller.presenter.RevealAllMines(result.Mines)
		controller.presenter.DisplayLossBanner()
		controller.endGame()
		return result, nil
	}

	controller.presenter.RevealCell(game.Cell{Coord: coord, NumMines: result.NumMines})
	for _, cell := range result.EmptyCells {
		controller.presenter.RevealCell(cell)
	}
	if result.Won {
		controller.presenter.DisplayWinBanner()
		controller.endGame()
	}
	return result, nil
}

// ToggleFlag flags or unflags an unrevealed cell, reporting whether anything
// changed. Flags never reach the engine.
func (controller *Controller) ToggleFlag(x, y int) bool {
	if controller.view == nil || controller.view.State().IsTerminal() {
		return false
	}
	return controller.view.ToggleFlag(game.Coord{X: x, Y: y})
}

func (controller *Controller) endGame() {
	controller.presenter.Disable()

	view := controller.view
	controller.log.WithFields(logrus.Fields{
		"state": view.State(),
		"moves": view.Moves(),
	}).Info("game over")

	if controller.OnGameEnd != nil {
		controller.OnGameEnd(view)
	}
}
