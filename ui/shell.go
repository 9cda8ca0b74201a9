package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/gosweep/game"
)

const shellHelp = `commands:
  s <x> <y>     sweep a cell
  f <x> <y>     flag or unflag a cell
  n [preset]    new game (small, medium, large)
  q             quit`

// Shell plays games typed in line by line, drawing the board after every
// command.
type Shell struct {
	controller *Controller
	terminal   *Terminal
	out        io.Writer
}

func NewShell(engine game.Engine, out io.Writer, log logrus.FieldLogger) *Shell {
	terminal := NewTerminal(out)
	return &Shell{
		controller: NewController(engine, terminal, log),
		terminal:   terminal,
		out:        out,
	}
}

func (shell *Shell) Controller() *Controller {
	return shell.controller
}

// Run starts a game of preset and reads commands from in until it is
// exhausted, ctx is done, or the player quits.
func (shell *Shell) Run(ctx context.Context, in io.Reader, preset game.Preset) error {
	if err := shell.newGame(ctx, preset); err != nil {
		return err
	}
	fmt.Fprintln(shell.out, shellHelp)
	shell.terminal.Render(shell.controller.View())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		quit, err := shell.exec(ctx, fields)
		if quit {
			return nil
		}
		if err != nil {
			if errors.Is(err, game.ErrTransportFailure) {
				return err
			}
			fmt.Fprintln(shell.out, describe(err))
			continue
		}
		shell.terminal.Render(shell.controller.View())
	}
	return scanner.Err()
}

func (shell *Shell) exec(ctx context.Context, fields []string) (bool, error) {
	switch fields[0] {
	case "q", "quit":
		return true, nil

	case "n", "new":
		preset := shell.controller.Preset()
		if len(fields) > 1 {
			var ok bool
			if preset, ok = game.LookupPreset(fields[1]); !ok {
				return false, errors.Errorf("unknown preset %q", fields[1])
			}
		}
		return false, shell.newGame(ctx, preset)

	case "s", "sweep":
		x, y, err := parseCoord(fields)
		if err != nil {
			return false, err
		}
		_, err = shell.controller.Sweep(ctx, x, y)
		return false, err

	case "f", "flag":
		x, y, err := parseCoord(fields)
		if err != nil {
			return false, err
		}
		if !shell.controller.ToggleFlag(x, y) {
			return false, errors.Errorf("cannot flag (%d, %d)", x, y)
		}
		return false, nil
	}

	return false, errors.New(shellHelp)
}

func (shell *Shell) newGame(ctx context.Context, preset game.Preset) error {
	if err := shell.controller.NewGame(ctx, preset); err != nil {
		return err
	}
	shell.terminal.Reset()
	return nil
}

func parseCoord(fields []string) (int, int, error) {
	if len(fields) != 3 {
		return 0, 0, errors.Errorf("%s needs x and y", fields[0])
	}
	x, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.Errorf("bad x %q", fields[1])
	}
	y, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, errors.Errorf("bad y %q", fields[2])
	}
	return x, y, nil
}

// describe phrases a rejected command for the player
func describe(err error) string {
	switch {
	case errors.Is(err, game.ErrOutOfBounds):
		return "that cell is off the board"
	case errors.Is(err, game.ErrSessionTerminal):
		return "the game is over, n <preset> starts another"
	case errors.Is(err, game.ErrPlacementUnsatisfiable):
		return "that board cannot hold its mines"
	}
	return err.Error()
}
