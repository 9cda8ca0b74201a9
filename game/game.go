package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Engine is the rules engine as seen by a front end. The local engine resolves
// sweeps in-process; a remote engine asks an authority which owns the board.
type Engine interface {
	// Init discards any previous game and starts a new, fresh one
	Init(ctx context.Context, size, numMines int) error

	// Sweep reveals the cell at (x, y) of the current game
	Sweep(ctx context.Context, x, y int) (*SweepResult, error)
}

type GameConfig struct {
	Preset Preset

	// Seed for mine placement; zero picks one from the clock
	Seed int64

	// Snapshot to load the mine layout from, instead of placing mines randomly
	Snapshot *BoardSnapshot

	Logger logrus.FieldLogger
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Preset: Small,
		Logger: logrus.StandardLogger(),
	}
}

func (config GameConfig) rand() *rand.Rand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (config GameConfig) logger() logrus.FieldLogger {
	if config.Logger == nil {
		return logrus.StandardLogger()
	}
	return config.Logger
}

// LocalEngine owns a single in-memory session at a time, replaced wholesale on
// every Init.
type LocalEngine struct {
	config  GameConfig
	rand    *rand.Rand
	session *Session
	log     logrus.FieldLogger
}

func NewLocalEngine(config GameConfig) *LocalEngine {
	return &LocalEngine{
		config: config,
		rand:   config.rand(),
		log:    config.logger(),
	}
}

// Session exposes the current session, nil before the first Init
func (engine *LocalEngine) Session() *Session {
	return engine.session
}

func (engine *LocalEngine) Init(ctx context.Context, size, numMines int) error {
	// The previous session is gone whether or not the new one starts
	engine.session = nil
	if err := ctx.Err(); err != nil {
		return err
	}

	var session *Session
	var err error

	snapshot := engine.config.Snapshot
	if snapshot != nil && snapshot.Matches(size, numMines) {
		var mines *Layout
		if mines, err = snapshot.Layout(); err == nil {
			session, err = NewSessionWithMines(mines)
		}
	} else {
		session, err = NewSession(size, numMines, engine.rand)
	}
	if err != nil {
		return err
	}

	engine.session = session
	engine.log.WithFields(logrus.Fields{
		"size":  size,
		"mines": numMines,
	}).Debug("new game")
	return nil
}

func (engine *LocalEngine) Sweep(ctx context.Context, x, y int) (*SweepResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if engine.session == nil {
		return nil, errors.Wrap(ErrSessionTerminal, "no game started")
	}

	result, err := engine.session.Sweep(x, y)
	if err != nil {
		return nil, err
	}

	engine.log.WithFields(logrus.Fields{
		"x":     x,
		"y":     y,
		"moves": engine.session.Moves(),
		"state": engine.session.State(),
	}).Debug("sweep")
	return result, nil
}
