package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	snapshotSafe = '.'
	snapshotMine = '*'
)

// BoardSnapshot describes a mine layout as rows of '.' (safe) and '*' (mine)
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed,omitempty"`
	SerializedBoard string `yaml:"board"`
}

func SnapshotOf(mines *Layout, seed int64) *BoardSnapshot {
	rows := make([]string, mines.Size())
	for y := range rows {
		row := strings.Builder{}
		for x := 0; x < mines.Size(); x++ {
			if mines.get(Coord{x, y}) {
				row.WriteByte(snapshotMine)
			} else {
				row.WriteByte(snapshotSafe)
			}
		}
		rows[y] = row.String()
	}

	return &BoardSnapshot{
		Seed:            seed,
		SerializedBoard: strings.Join(rows, "\n"),
	}
}

func (snapshot *BoardSnapshot) Serialize() string {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		panic(err)
	}

	return string(out)
}

func (snapshot *BoardSnapshot) Layout() (*Layout, error) {
	rows := strings.Fields(snapshot.SerializedBoard)
	if len(rows) == 0 {
		return nil, errors.New("snapshot board is empty")
	}

	mines := NewLayout(len(rows))
	for y, row := range rows {
		if len(row) != len(rows) {
			return nil, errors.Errorf("snapshot row %d has %d cells, board is %d high", y, len(row), len(rows))
		}
		for x, c := range row {
			switch c {
			case snapshotMine:
				mines.set(Coord{x, y})
			case snapshotSafe:
			default:
				return nil, errors.Errorf("snapshot cell (%d, %d) is %q", x, y, c)
			}
		}
	}

	return mines, nil
}

// Preset describes the board of this snapshot as a playable preset
func (snapshot *BoardSnapshot) Preset() (Preset, error) {
	mines, err := snapshot.Layout()
	if err != nil {
		return Preset{}, err
	}
	if err := validateBoard(mines.Size(), mines.Count()); err != nil {
		return Preset{}, err
	}
	return Preset{Name: "layout", Size: mines.Size(), NumMines: mines.Count()}, nil
}

// Matches returns whether the snapshot is a valid board of the given dimensions
func (snapshot *BoardSnapshot) Matches(size, numMines int) bool {
	preset, err := snapshot.Preset()
	return err == nil && preset.Size == size && preset.NumMines == numMines
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	if _, err := snapshot.Layout(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// SaveSnapshot writes snapshot into dir, named after when the game ended and
// how. It returns the path written.
func SaveSnapshot(dir string, snapshot *BoardSnapshot, state GameState, t time.Time) (string, error) {
	stat, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", errors.Wrap(err, "save snapshot")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(err, "save snapshot")
		}
	} else if !stat.Mode().IsDir() {
		return "", errors.Errorf("%s is not a directory; cannot save snapshots to it", dir)
	}

	for attempt := 0; ; attempt++ {
		path := filepath.Join(dir, replayFilename(state, t, attempt))
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", errors.Wrap(err, "save snapshot")
		}

		_, err = file.WriteString(snapshot.Serialize())
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		return path, errors.Wrap(err, "save snapshot")
	}
}

func replayFilename(state GameState, t time.Time, attempt int) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	var stateStr string
	switch state {
	case Won:
		stateStr = "win"
	case Lost:
		stateStr = "loss"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	if attempt > 0 {
		fmt.Fprintf(&filenameBuilder, "_%d", attempt)
	}
	filenameBuilder.WriteString(".yaml")

	return filenameBuilder.String()
}
