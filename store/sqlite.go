package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// GameRecord is the ledger row written when a game ends
type GameRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Size       int       `json:"size"`
	NumMines   int       `json:"mines"`
	Moves      int       `json:"moves"`
	Outcome    string    `json:"outcome"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Ledger records finished games. It is an audit trail, games cannot be
// resumed from it.
type Ledger interface {
	Record(ctx context.Context, record GameRecord) error
	Recent(ctx context.Context, userID string, limit int) ([]GameRecord, error)
	Close() error
}

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS games (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	size        INTEGER NOT NULL,
	mines       INTEGER NOT NULL,
	moves       INTEGER NOT NULL,
	outcome     TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS games_user_finished ON games (user_id, finished_at);
`

// Fixed width, so that stored timestamps sort as text
const ledgerTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type sqliteLedger struct {
	db *sql.DB
}

// OpenSQLiteLedger opens (and creates if missing) a SQLite ledger at dsn
func OpenSQLiteLedger(dsn string) (Ledger, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrapf(err, "mkdir %s", dir)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrap(err, "open ledger")
	}
	// An in-memory database only lives as long as its connection
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(ledgerSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate ledger")
	}
	return &sqliteLedger{db: db}, nil
}

func (ledger *sqliteLedger) Record(ctx context.Context, record GameRecord) error {
	_, err := ledger.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO games (id, user_id, size, mines, moves, outcome, started_at, finished_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		record.ID, record.UserID, record.Size, record.NumMines, record.Moves, record.Outcome,
		record.StartedAt.UTC().Format(ledgerTimeLayout), record.FinishedAt.UTC().Format(ledgerTimeLayout))
	return errors.Wrapf(err, "record game %s", record.ID)
}

func (ledger *sqliteLedger) Recent(ctx context.Context, userID string, limit int) ([]GameRecord, error) {
	rows, err := ledger.db.QueryContext(ctx,
		`SELECT id, user_id, size, mines, moves, outcome, started_at, finished_at
		 FROM games WHERE user_id=? ORDER BY finished_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query games")
	}
	defer rows.Close()

	records := []GameRecord{}
	for rows.Next() {
		var record GameRecord
		var startedAt, finishedAt string
		if err := rows.Scan(&record.ID, &record.UserID, &record.Size, &record.NumMines, &record.Moves,
			&record.Outcome, &startedAt, &finishedAt); err != nil {
			return nil, errors.Wrap(err, "scan game")
		}
		record.StartedAt, _ = time.Parse(ledgerTimeLayout, startedAt)
		record.FinishedAt, _ = time.Parse(ledgerTimeLayout, finishedAt)
		records = append(records, record)
	}
	return records, errors.Wrap(rows.Err(), "iterate games")
}

func (ledger *sqliteLedger) Close() error {
	return ledger.db.Close()
}
