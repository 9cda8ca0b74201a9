package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/they4kman/gosweep/game"
)

const (
	glyphHidden     = '#'
	glyphFlag       = 'F'
	glyphMine       = '*'
	glyphLosingMine = 'X'
	glyphEmpty      = '.'
)

// Terminal is a Presenter drawing the board as text. It keeps the glyph of
// every cell it has been told about; the view only adds flags and the status
// line. Reveals are collected until the next Render, which draws the whole
// board.
type Terminal struct {
	out io.Writer

	cells    map[game.Coord]byte
	revealed int
	banner   string
	disabled bool
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, cells: make(map[game.Coord]byte)}
}

func (term *Terminal) RevealCell(cell game.Cell) {
	if cell.NumMines == 0 {
		term.cells[cell.Coord] = glyphEmpty
	} else {
		term.cells[cell.Coord] = byte('0' + cell.NumMines)
	}
	term.revealed++
}

func (term *Terminal) RevealAllMines(mines []game.Coord) {
	for _, mine := range mines {
		term.cells[mine] = glyphMine
	}
	term.revealed += len(mines)
}

func (term *Terminal) DisplayWinBanner() {
	term.banner = "WIN!"
}

func (term *Terminal) DisplayLossBanner() {
	term.banner = "LOSE :("
}

func (term *Terminal) Disable() {
	term.disabled = true
}

// Reset readies the terminal for a new game
func (term *Terminal) Reset() {
	term.cells = make(map[game.Coord]byte)
	term.revealed = 0
	term.banner = ""
	term.disabled = false
}

// Render draws a status line and the board
func (term *Terminal) Render(view *game.View) {
	if view == nil {
		return
	}

	fmt.Fprintf(term.out, "mines %d  moves %d", view.NumMines(), view.Moves())
	if term.banner != "" {
		fmt.Fprintf(term.out, "   %s", term.banner)
	}
	if term.revealed > 0 {
		fmt.Fprintf(term.out, "   +%d", term.revealed)
		term.revealed = 0
	}
	fmt.Fprintln(term.out)

	size := view.Size()
	width := len(fmt.Sprint(size - 1))

	header := strings.Builder{}
	header.WriteString(strings.Repeat(" ", width+1))
	for x := 0; x < size; x++ {
		header.WriteByte(byte('0' + x%10))
	}
	fmt.Fprintln(term.out, header.String())

	for y := 0; y < size; y++ {
		row := strings.Builder{}
		fmt.Fprintf(&row, "%*d ", width, y)
		for x := 0; x < size; x++ {
			row.WriteByte(term.glyph(view, game.Coord{X: x, Y: y}))
		}
		fmt.Fprintln(term.out, row.String())
	}

	if term.disabled {
		fmt.Fprintln(term.out, "game over, n <preset> starts another")
	}
}

func (term *Terminal) glyph(view *game.View, coord game.Coord) byte {
	if view.IsLosingMine(coord) {
		return glyphLosingMine
	}
	if glyph, shown := term.cells[coord]; shown {
		return glyph
	}
	if view.IsFlagged(coord) {
		return glyphFlag
	}
	return glyphHidden
}
