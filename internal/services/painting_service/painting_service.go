package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dcolors/internal/domain/models"
	"dcolors/internal/lib/logger/sl"
	"dcolors/internal/metrics"
	"dcolors/internal/repository"
	"dcolors/internal/services/catalog"
	"dcolors/internal/storage"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	catalogCacheKey = "catalog"
	latestCount     = 4
)

type Options struct {
	Timeout    time.Duration
	CacheTTL   time.Duration
	SessionTTL time.Duration
	Locale     string
}

type PaintingService struct {
	log        *slog.Logger
	repo       repository.PaintingRepository
	vocab      repository.VocabularyRepository
	cache      *cache.Cache
	query      catalog.Query
	timeout    time.Duration
	sessionTTL time.Duration
}

func NewPaintingService(
	log *slog.Logger,
	repo repository.PaintingRepository,
	vocab repository.VocabularyRepository,
	opts Options,
) *PaintingService {
	return &PaintingService{
		log:        log,
		repo:       repo,
		vocab:      vocab,
		cache:      cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		query:      catalog.NewQuery(opts.Locale),
		timeout:    opts.Timeout,
		sessionTTL: opts.SessionTTL,
	}
}

// CreatePainting проверяет черновик и сохраняет новую работу.
// Ошибки полей возвращаются данными, error только для хранилища.
func (s *PaintingService) CreatePainting(ctx context.Context, draft catalog.Draft) (uuid.UUID, catalog.FieldErrors, error) {
	const op = "service.PaintingService.CreatePainting"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", draft.Title()),
	)

	log.Info("creating painting")

	if fe := catalog.Validate(draft); !fe.Valid() {
		log.Info("draft rejected", slog.Any("fields", fe.Invalid()))
		return uuid.Nil, fe, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.repo.CreatePainting(ctx, catalog.ToRecord(draft, uuid.Nil))
	if err != nil {
		log.Error("failed to create painting", sl.Err(err))
		return uuid.Nil, nil, &PersistenceError{Op: op, Err: err}
	}

	s.invalidate()

	log.Info("painting created", slog.String("id", id.String()))

	return id, nil, nil
}

// UpdatePainting полностью перезаписывает работу id
func (s *PaintingService) UpdatePainting(ctx context.Context, id uuid.UUID, draft catalog.Draft) (catalog.FieldErrors, error) {
	const op = "service.PaintingService.UpdatePainting"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	log.Info("updating painting")

	if fe := catalog.Validate(draft); !fe.Valid() {
		log.Info("draft rejected", slog.Any("fields", fe.Invalid()))
		return fe, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.UpdatePainting(ctx, catalog.ToRecord(draft, id)); err != nil {
		if errors.Is(err, storage.ErrPaintingNotFound) {
			log.Warn("painting not found")
			s.invalidate()
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		log.Error("failed to update painting", sl.Err(err))
		return nil, &PersistenceError{Op: op, Err: err}
	}

	s.invalidate()

	return nil, nil
}

func (s *PaintingService) DeletePainting(ctx context.Context, id uuid.UUID) error {
	const op = "service.PaintingService.DeletePainting"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	log.Info("deleting painting")

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.DeletePainting(ctx, id); err != nil {
		if errors.Is(err, storage.ErrPaintingNotFound) {
			log.Warn("painting not found")
			s.invalidate()
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		log.Error("failed to delete painting", sl.Err(err))
		return &PersistenceError{Op: op, Err: err}
	}

	s.invalidate()

	return nil
}

func (s *PaintingService) GetPainting(ctx context.Context, id uuid.UUID) (models.Painting, error) {
	const op = "service.PaintingService.GetPainting"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.repo.GetPaintingByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrPaintingNotFound) {
			return models.Painting{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		s.log.Error("failed to get painting", slog.String("op", op), sl.Err(err))
		return models.Painting{}, &PersistenceError{Op: op, Err: err}
	}

	return p, nil
}

// ListPaintings фильтрует и сортирует снимок каталога
func (s *PaintingService) ListPaintings(ctx context.Context, spec models.FilterSpec) ([]models.Painting, error) {
	all, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return s.query.Apply(all, spec), nil
}

func (s *PaintingService) Latest(ctx context.Context) ([]models.Painting, error) {
	all, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Latest(all, latestCount), nil
}

func (s *PaintingService) Categories(ctx context.Context) ([]models.CategoryPreview, error) {
	all, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.CategoryPreviews(catalog.Latest(all, -1)), nil
}

// RelatedBySize returns other paintings sharing a size with id.
func (s *PaintingService) RelatedBySize(ctx context.Context, id uuid.UUID) ([]models.Painting, error) {
	const op = "service.PaintingService.RelatedBySize"

	p, err := s.GetPainting(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	found, err := s.repo.GetPaintingsBySizes(ctx, p.Sizes)
	if err != nil {
		s.log.Error("failed to get paintings by sizes", slog.String("op", op), sl.Err(err))
		return nil, &PersistenceError{Op: op, Err: err}
	}

	related := make([]models.Painting, 0, len(found))
	for _, other := range found {
		if other.ID != id {
			related = append(related, other)
		}
	}

	return related, nil
}

// Vocabulary returns filter options. With a session, values the admin added
// during that session are appended.
func (s *PaintingService) Vocabulary(ctx context.Context, sessionID string) (models.Vocabulary, error) {
	const op = "service.PaintingService.Vocabulary"

	all, err := s.catalog(ctx)
	if err != nil {
		return models.Vocabulary{}, err
	}

	if sessionID == "" || s.vocab == nil {
		return catalog.DeriveVocabulary(all), nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	categories, err := s.vocab.Values(ctx, sessionID, repository.VocabularyCategories)
	if err != nil {
		s.log.Warn("session vocabulary unavailable", slog.String("op", op), sl.Err(err))
		return catalog.DeriveVocabulary(all), nil
	}
	authors, err := s.vocab.Values(ctx, sessionID, repository.VocabularyAuthors)
	if err != nil {
		s.log.Warn("session vocabulary unavailable", slog.String("op", op), sl.Err(err))
		return catalog.DeriveVocabulary(all), nil
	}

	return catalog.ExtendVocabulary(all, categories, authors), nil
}

// RememberVocabulary adds a new category and/or author to the session's
// options. Blank values are skipped.
func (s *PaintingService) RememberVocabulary(ctx context.Context, sessionID, category, author string) error {
	const op = "service.PaintingService.RememberVocabulary"

	if s.vocab == nil {
		return nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	values := []struct {
		kind  repository.VocabularyKind
		value string
	}{
		{repository.VocabularyCategories, strings.TrimSpace(category)},
		{repository.VocabularyAuthors, strings.TrimSpace(author)},
	}

	for _, v := range values {
		if v.value == "" || v.value == models.All {
			continue
		}
		if err := s.vocab.Remember(ctx, sessionID, v.kind, v.value, s.sessionTTL); err != nil {
			s.log.Error("failed to remember vocabulary", slog.String("op", op), sl.Err(err))
			return &PersistenceError{Op: op, Err: err}
		}
	}

	return nil
}

func (s *PaintingService) catalog(ctx context.Context) ([]models.Painting, error) {
	const op = "service.PaintingService.catalog"

	if cached, ok := s.cache.Get(catalogCacheKey); ok {
		metrics.CatalogCacheHits.WithLabelValues("hit").Inc()
		return cached.([]models.Painting), nil
	}
	metrics.CatalogCacheHits.WithLabelValues("miss").Inc()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	all, err := s.repo.GetPaintings(ctx)
	if err != nil {
		s.log.Error("failed to load catalog", slog.String("op", op), sl.Err(err))
		return nil, &PersistenceError{Op: op, Err: err}
	}

	s.cache.SetDefault(catalogCacheKey, all)

	return all, nil
}

func (s *PaintingService) invalidate() {
	s.cache.Delete(catalogCacheKey)
}

func (s *PaintingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
