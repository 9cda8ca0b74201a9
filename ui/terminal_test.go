package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/they4kman/gosweep/game"
)

func TestTerminalDrawsWhatItIsTold(t *testing.T) {
	out := &bytes.Buffer{}
	term := NewTerminal(out)
	view := game.NewView(cornerMinePreset)

	term.RevealCell(game.Cell{Coord: game.Coord{X: 0, Y: 0}, NumMines: 0})
	term.RevealCell(game.Cell{Coord: game.Coord{X: 1, Y: 1}, NumMines: 3})
	term.RevealAllMines([]game.Coord{{X: 2, Y: 0}, {X: 0, Y: 2}})
	term.DisplayLossBanner()
	term.Disable()
	term.Render(view)

	require.Equal(t, "mines 1  moves 0   LOSE :(   +4\n"+
		"  012\n"+
		"0 .#*\n"+
		"1 #3#\n"+
		"2 *##\n"+
		"game over, n <preset> starts another\n", out.String())

	out.Reset()
	term.Reset()
	require.True(t, view.ToggleFlag(game.Coord{X: 1, Y: 1}))
	term.Render(view)
	require.Equal(t, "mines 1  moves 0\n  012\n0 ###\n1 #F#\n2 ###\n", out.String())
}
