package repository

import (
	"context"
	"fmt"

	"dcolors/internal/config"
	"dcolors/internal/storage"
	"dcolors/internal/storage/postgresql"
	"dcolors/internal/storage/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Repository struct {
	Paintings PaintingRepository
	close     func()
}

// NewRepository открывает хранилище по cfg.Type и создаёт схему
func NewRepository(ctx context.Context, cfg config.StorageConfig) (*Repository, error) {
	const op = "repository.NewRepository"

	switch cfg.Type {
	case DriverPostgres:
		st, err := postgresql.New(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := st.Migrate(ctx); err != nil {
			st.Stop()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &Repository{Paintings: NewPaintingRepo(st.Pool()), close: st.Stop}, nil

	case DriverSQLite, "":
		st, err := sqlite.New(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := st.Migrate(ctx); err != nil {
			st.Stop()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &Repository{Paintings: NewSQLitePaintingRepo(st.DB()), close: st.Stop}, nil

	default:
		return nil, fmt.Errorf("%s: %w: %q", op, storage.ErrUnsupportedDriver, cfg.Type)
	}
}

func (r *Repository) Close() {
	if r.close != nil {
		r.close()
	}
}
