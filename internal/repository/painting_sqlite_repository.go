package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dcolors/internal/domain/models"
	"dcolors/internal/storage"
	"dcolors/internal/storage/sqlite"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var sqlitePaintingColumns = []string{
	"id",
	"title",
	"category",
	"author",
	"sizes",
	"reference",
	"images",
	"timestamp",
	"size",
	"image_base64",
}

// SQLitePaintingRepo хранит sizes и images как JSON-массивы в TEXT
type SQLitePaintingRepo struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

func NewSQLitePaintingRepo(db *sql.DB) *SQLitePaintingRepo {
	return &SQLitePaintingRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question).RunWith(db),
	}
}

func (r *SQLitePaintingRepo) CreatePainting(ctx context.Context, painting models.Painting) (uuid.UUID, error) {
	const op = "repository.SQLitePaintingRepo.CreatePainting"

	sizes, images, err := encodeLists(painting)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id := uuid.New()
	_, err = r.sb.Insert("paintings").
		Columns("id", "title", "category", "author", "sizes", "reference", "images").
		Values(id.String(), painting.Title, painting.Category, painting.Author, sizes, painting.Reference, images).
		ExecContext(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *SQLitePaintingRepo) GetPaintings(ctx context.Context) ([]models.Painting, error) {
	const op = "repository.SQLitePaintingRepo.GetPaintings"

	rows, err := r.sb.Select(sqlitePaintingColumns...).
		From("paintings").
		OrderBy("timestamp DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	paintings, err := collectSQLite(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return paintings, nil
}

func (r *SQLitePaintingRepo) GetPaintingByID(ctx context.Context, id uuid.UUID) (models.Painting, error) {
	const op = "repository.SQLitePaintingRepo.GetPaintingByID"

	row := r.sb.Select(sqlitePaintingColumns...).
		From("paintings").
		Where(squirrel.Eq{"id": id.String()}).
		QueryRowContext(ctx)

	doc, err := scanSQLitePainting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Painting{}, fmt.Errorf("%s: %w", op, storage.ErrPaintingNotFound)
		}
		return models.Painting{}, fmt.Errorf("%s: %w", op, err)
	}

	return doc.Normalize(), nil
}

func (r *SQLitePaintingRepo) GetPaintingsBySizes(ctx context.Context, sizes []string) ([]models.Painting, error) {
	const op = "repository.SQLitePaintingRepo.GetPaintingsBySizes"

	if len(sizes) == 0 {
		return []models.Painting{}, nil
	}

	args := make([]interface{}, len(sizes))
	for i, s := range sizes {
		args[i] = s
	}
	in := squirrel.Placeholders(len(sizes))

	rows, err := r.sb.Select(sqlitePaintingColumns...).
		From("paintings").
		Where(squirrel.Or{
			squirrel.Expr("EXISTS (SELECT 1 FROM json_each(paintings.sizes) WHERE json_each.value IN ("+in+"))", args...),
			squirrel.Eq{"size": sizes},
		}).
		OrderBy("timestamp DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	paintings, err := collectSQLite(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return paintings, nil
}

func (r *SQLitePaintingRepo) UpdatePainting(ctx context.Context, painting models.Painting) error {
	const op = "repository.SQLitePaintingRepo.UpdatePainting"

	sizes, images, err := encodeLists(painting)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sb.Update("paintings").
		Set("title", painting.Title).
		Set("category", painting.Category).
		Set("author", painting.Author).
		Set("sizes", sizes).
		Set("reference", painting.Reference).
		Set("images", images).
		Set("size", nil).
		Set("image_base64", nil).
		Set("timestamp", squirrel.Expr(sqlite.Now)).
		Where(squirrel.Eq{"id": painting.ID.String()}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return affected(op, res)
}

func (r *SQLitePaintingRepo) DeletePainting(ctx context.Context, id uuid.UUID) error {
	const op = "repository.SQLitePaintingRepo.DeletePainting"

	res, err := r.sb.Delete("paintings").
		Where(squirrel.Eq{"id": id.String()}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return affected(op, res)
}

func affected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPaintingNotFound)
	}
	return nil
}

func encodeLists(p models.Painting) (string, string, error) {
	sizes, err := json.Marshal(orEmpty(p.Sizes))
	if err != nil {
		return "", "", err
	}
	images, err := json.Marshal(orEmpty(p.Images))
	if err != nil {
		return "", "", err
	}
	return string(sizes), string(images), nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func collectSQLite(rows *sql.Rows) ([]models.Painting, error) {
	defer func() {
		_ = rows.Close()
	}()

	paintings := []models.Painting{}
	for rows.Next() {
		doc, err := scanSQLitePainting(rows)
		if err != nil {
			return nil, err
		}
		paintings = append(paintings, doc.Normalize())
	}

	return paintings, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSQLitePainting(row scanner) (models.PaintingDocument, error) {
	var (
		doc                     models.PaintingDocument
		id                      string
		sizes, images, ts       sql.NullString
		legacySize, legacyImage sql.NullString
	)

	err := row.Scan(
		&id,
		&doc.Title,
		&doc.Category,
		&doc.Author,
		&sizes,
		&doc.Reference,
		&images,
		&ts,
		&legacySize,
		&legacyImage,
	)
	if err != nil {
		return models.PaintingDocument{}, err
	}

	if doc.ID, err = uuid.Parse(id); err != nil {
		return models.PaintingDocument{}, fmt.Errorf("%w: id %q", storage.ErrInvalidDocument, id)
	}
	if err := decodeList(sizes, &doc.Sizes); err != nil {
		return models.PaintingDocument{}, fmt.Errorf("%w: sizes: %v", storage.ErrInvalidDocument, err)
	}
	if err := decodeList(images, &doc.Images); err != nil {
		return models.PaintingDocument{}, fmt.Errorf("%w: images: %v", storage.ErrInvalidDocument, err)
	}
	if ts.Valid && ts.String != "" {
		t, err := time.Parse(sqlite.TimestampLayout, ts.String)
		if err != nil {
			return models.PaintingDocument{}, fmt.Errorf("%w: timestamp: %v", storage.ErrInvalidDocument, err)
		}
		doc.Timestamp = &t
	}
	if legacySize.Valid {
		doc.Size = &legacySize.String
	}
	if legacyImage.Valid {
		doc.ImageBase64 = &legacyImage.String
	}

	return doc, nil
}

func decodeList(v sql.NullString, dst *[]string) error {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return nil
	}
	return json.Unmarshal([]byte(v.String), dst)
}
