package repository

import (
	"context"
	"time"

	"dcolors/internal/domain/models"

	"github.com/google/uuid"
)

// PaintingRepository хранилище каталога. Чтение отдаёт документы обеих
// версий схемы уже нормализованными, запись всегда в текущей схеме.
type PaintingRepository interface {
	CreatePainting(ctx context.Context, painting models.Painting) (uuid.UUID, error)
	GetPaintings(ctx context.Context) ([]models.Painting, error)
	GetPaintingByID(ctx context.Context, id uuid.UUID) (models.Painting, error)
	GetPaintingsBySizes(ctx context.Context, sizes []string) ([]models.Painting, error)
	UpdatePainting(ctx context.Context, painting models.Painting) error
	DeletePainting(ctx context.Context, id uuid.UUID) error
}

type SessionRepository interface {
	SaveSession(ctx context.Context, sessionID, email string, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type VocabularyKind string

const (
	VocabularyCategories VocabularyKind = "categories"
	VocabularyAuthors    VocabularyKind = "authors"
)

// VocabularyRepository keeps per-session additions to the category and
// author lists until the session expires.
type VocabularyRepository interface {
	Remember(ctx context.Context, sessionID string, kind VocabularyKind, value string, ttl time.Duration) error
	Values(ctx context.Context, sessionID string, kind VocabularyKind) ([]string, error)
}
