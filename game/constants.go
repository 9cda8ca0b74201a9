package game

type GameState int

const (
	Fresh GameState = iota
	Active
	Won
	Lost
)

func (state GameState) String() string {
	switch state {
	case Fresh:
		return "fresh"
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// IsTerminal returns whether no further sweeps are accepted in this state
func (state GameState) IsTerminal() bool {
	return state == Won || state == Lost
}

type Preset struct {
	Name     string
	Size     int
	NumMines int
}

var (
	Small  = Preset{Name: "small", Size: 9, NumMines: 10}
	Medium = Preset{Name: "medium", Size: 16, NumMines: 40}
	Large  = Preset{Name: "large", Size: 24, NumMines: 150}
)

var Presets = []Preset{
	Small,
	Medium,
	Large,
}

// LookupPreset finds a preset by its name
func LookupPreset(name string) (Preset, bool) {
	for _, preset := range Presets {
		if preset.Name == name {
			return preset, true
		}
	}
	return Preset{}, false
}

// neighborOffsets lists the 8 surrounding offsets; the cell itself is never scanned
var neighborOffsets = [8]Coord{
	{-1, -1},
	{0, -1},
	{1, -1},
	{-1, 0},
	{1, 0},
	{-1, 1},
	{0, 1},
	{1, 1},
}
