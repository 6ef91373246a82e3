package repository

import (
	"context"
	"errors"
	"fmt"

	"dcolors/internal/domain/models"
	"dcolors/internal/storage"
	"dcolors/internal/storage/postgresql"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

var paintingColumns = []string{
	"id",
	"title",
	"category",
	"author",
	"COALESCE(sizes, '{}')",
	"reference",
	"COALESCE(images, '{}')",
	"timestamp",
	"size",
	"image_base64",
}

type PaintingRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewPaintingRepo(db *pgxpool.Pool) *PaintingRepo {
	return &PaintingRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreatePainting сохраняет работу и возвращает её ID
func (r *PaintingRepo) CreatePainting(ctx context.Context, painting models.Painting) (uuid.UUID, error) {
	const op = "repository.PaintingRepo.CreatePainting"

	query, args, err := r.sb.Insert(postgresql.PaintingsTable).
		Columns(
			"title",
			"category",
			"author",
			"sizes",
			"reference",
			"images",
		).
		Values(
			painting.Title,
			painting.Category,
			painting.Author,
			painting.Sizes,
			painting.Reference,
			painting.Images,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetPaintings возвращает весь каталог, новые первыми
func (r *PaintingRepo) GetPaintings(ctx context.Context) ([]models.Painting, error) {
	const op = "repository.PaintingRepo.GetPaintings"

	query, args, err := r.sb.Select(paintingColumns...).
		From(postgresql.PaintingsTable).
		OrderBy("timestamp DESC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	paintings, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return paintings, nil
}

func (r *PaintingRepo) GetPaintingByID(ctx context.Context, id uuid.UUID) (models.Painting, error) {
	const op = "repository.PaintingRepo.GetPaintingByID"

	query, args, err := r.sb.Select(paintingColumns...).
		From(postgresql.PaintingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Painting{}, fmt.Errorf("%s: %w", op, err)
	}

	doc, err := scanPainting(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Painting{}, fmt.Errorf("%s: %w", op, storage.ErrPaintingNotFound)
		}
		return models.Painting{}, fmt.Errorf("%s: %w", op, err)
	}

	return doc.Normalize(), nil
}

// GetPaintingsBySizes возвращает работы, у которых есть хотя бы один из размеров
func (r *PaintingRepo) GetPaintingsBySizes(ctx context.Context, sizes []string) ([]models.Painting, error) {
	const op = "repository.PaintingRepo.GetPaintingsBySizes"

	if len(sizes) == 0 {
		return []models.Painting{}, nil
	}

	query, args, err := r.sb.Select(paintingColumns...).
		From(postgresql.PaintingsTable).
		Where(squirrel.Or{
			squirrel.Expr("sizes && ?", pq.Array(sizes)),
			squirrel.Expr("size = ANY(?)", pq.Array(sizes)),
		}).
		OrderBy("timestamp DESC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	paintings, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return paintings, nil
}

// UpdatePainting перезаписывает все поля работы, включая timestamp
func (r *PaintingRepo) UpdatePainting(ctx context.Context, painting models.Painting) error {
	const op = "repository.PaintingRepo.UpdatePainting"

	query, args, err := r.sb.Update(postgresql.PaintingsTable).
		Set("title", painting.Title).
		Set("category", painting.Category).
		Set("author", painting.Author).
		Set("sizes", painting.Sizes).
		Set("reference", painting.Reference).
		Set("images", painting.Images).
		Set("size", nil).
		Set("image_base64", nil).
		Set("timestamp", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": painting.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPaintingNotFound)
	}

	return nil
}

func (r *PaintingRepo) DeletePainting(ctx context.Context, id uuid.UUID) error {
	const op = "repository.PaintingRepo.DeletePainting"

	query, args, err := r.sb.Delete(postgresql.PaintingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPaintingNotFound)
	}

	return nil
}

func (r *PaintingRepo) query(ctx context.Context, query string, args ...interface{}) ([]models.Painting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paintings := []models.Painting{}
	for rows.Next() {
		doc, err := scanPainting(rows)
		if err != nil {
			return nil, err
		}
		paintings = append(paintings, doc.Normalize())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return paintings, nil
}

func scanPainting(row pgx.Row) (models.PaintingDocument, error) {
	var doc models.PaintingDocument
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Category,
		&doc.Author,
		&doc.Sizes,
		&doc.Reference,
		&doc.Images,
		&doc.Timestamp,
		&doc.Size,
		&doc.ImageBase64,
	)
	return doc, err
}
