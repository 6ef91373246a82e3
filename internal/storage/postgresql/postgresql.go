package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// PaintingsTable имя таблицы каталога
const PaintingsTable = "paintings"

const schema = `
CREATE TABLE IF NOT EXISTS paintings (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title        TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	author       TEXT NOT NULL DEFAULT '',
	sizes        TEXT[],
	reference    TEXT NOT NULL DEFAULT '',
	images       TEXT[],
	size         TEXT,
	image_base64 TEXT,
	timestamp    TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS paintings_timestamp_idx ON paintings (timestamp DESC);
CREATE INDEX IF NOT EXISTS paintings_sizes_idx ON paintings USING GIN (sizes);
`

type Storage struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Migrate creates the catalog schema if it does not exist.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgresql.Migrate"

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) Stop() {
	s.db.Close()
}
