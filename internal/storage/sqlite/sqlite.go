package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// TimestampLayout is how paintings.timestamp is stored.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Now is the SQL expression for the store-assigned timestamp.
const Now = "strftime('%Y-%m-%dT%H:%M:%fZ', 'now')"

const schema = `
CREATE TABLE IF NOT EXISTS paintings (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	author       TEXT NOT NULL DEFAULT '',
	sizes        TEXT,
	reference    TEXT NOT NULL DEFAULT '',
	images       TEXT,
	size         TEXT,
	image_base64 TEXT,
	timestamp    TEXT DEFAULT (` + Now + `)
);
CREATE INDEX IF NOT EXISTS paintings_timestamp_idx ON paintings (timestamp DESC);
`

type Storage struct {
	db *sql.DB
}

// New opens a database in dsn, e.g. "file:dcolors.db" or ":memory:".
func New(dsn string) (*Storage, error) {
	const op = "storage.sqlite.New"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// :memory: живёт в рамках одного соединения
	db.SetMaxOpenConns(1)

	return &Storage{db: db}, nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.sqlite.Migrate"

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

func (s *Storage) Stop() {
	_ = s.db.Close()
}
