package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dcolors/internal/config"
	"dcolors/internal/domain/models"
	"dcolors/internal/repository"
	"dcolors/internal/storage"
	"dcolors/internal/storage/postgresql"
	"dcolors/internal/storage/sqlite"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// legacyInserter writes a previous-generation row with a single size and image.
type legacyInserter func(t *testing.T, title, size, image string) uuid.UUID

func samplePainting(title string, sizes ...string) models.Painting {
	return models.Painting{
		Title:     title,
		Category:  "sea",
		Author:    "Ana",
		Sizes:     sizes,
		Reference: "REF-" + title,
		Images:    []string{"data:image/jpeg;base64,AAAA", "data:image/jpeg;base64,BBBB"},
	}
}

func runPaintingRepositoryContract(t *testing.T, repo repository.PaintingRepository, insertLegacy legacyInserter) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		in := samplePainting("Marina", "60 x 60 cm", "100 x 80 cm")

		id, err := repo.CreatePainting(ctx, in)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		got, err := repo.GetPaintingByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, in.Title, got.Title)
		assert.Equal(t, in.Sizes, got.Sizes)
		assert.Equal(t, in.Images, got.Images)
		assert.False(t, got.Timestamp.IsZero())
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := repo.GetPaintingByID(ctx, uuid.New())
		assert.ErrorIs(t, err, storage.ErrPaintingNotFound)
	})

	t.Run("update overwrites every field", func(t *testing.T) {
		id, err := repo.CreatePainting(ctx, samplePainting("Before", "60 x 60 cm"))
		require.NoError(t, err)
		before, err := repo.GetPaintingByID(ctx, id)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		next := samplePainting("After", "120 x 120 cm")
		next.ID = id
		next.Author = "Luis"
		next.Images = []string{"data:image/jpeg;base64,CCCC"}
		require.NoError(t, repo.UpdatePainting(ctx, next))

		got, err := repo.GetPaintingByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "After", got.Title)
		assert.Equal(t, "Luis", got.Author)
		assert.Equal(t, []string{"120 x 120 cm"}, got.Sizes)
		assert.Equal(t, []string{"data:image/jpeg;base64,CCCC"}, got.Images)
		assert.True(t, got.Timestamp.After(before.Timestamp))
	})

	t.Run("update and delete missing", func(t *testing.T) {
		missing := samplePainting("Ghost", "60 x 60 cm")
		missing.ID = uuid.New()

		assert.ErrorIs(t, repo.UpdatePainting(ctx, missing), storage.ErrPaintingNotFound)
		assert.ErrorIs(t, repo.DeletePainting(ctx, missing.ID), storage.ErrPaintingNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		id, err := repo.CreatePainting(ctx, samplePainting("Doomed", "60 x 60 cm"))
		require.NoError(t, err)

		require.NoError(t, repo.DeletePainting(ctx, id))

		_, err = repo.GetPaintingByID(ctx, id)
		assert.ErrorIs(t, err, storage.ErrPaintingNotFound)
	})

	t.Run("legacy rows are normalized", func(t *testing.T) {
		id := insertLegacy(t, "Legacy", "70 x 140 cm", "data:image/jpeg;base64,LLLL")

		got, err := repo.GetPaintingByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"70 x 140 cm"}, got.Sizes)
		assert.Equal(t, []string{"data:image/jpeg;base64,LLLL"}, got.Images)

		all, err := repo.GetPaintings(ctx)
		require.NoError(t, err)
		var found bool
		for _, p := range all {
			if p.ID == id {
				found = true
				assert.NotNil(t, p.Sizes)
			}
		}
		assert.True(t, found)
	})

	t.Run("by sizes", func(t *testing.T) {
		_, err := repo.CreatePainting(ctx, samplePainting("Wide", "150 x 50 cm"))
		require.NoError(t, err)
		_, err = repo.CreatePainting(ctx, samplePainting("Square", "60 x 60 cm", "150 x 50 cm"))
		require.NoError(t, err)

		got, err := repo.GetPaintingsBySizes(ctx, []string{"150 x 50 cm", "70 x 140 cm"})
		require.NoError(t, err)

		var titles []string
		for _, p := range got {
			titles = append(titles, p.Title)
		}
		assert.ElementsMatch(t, []string{"Wide", "Square", "Legacy"}, titles)

		none, err := repo.GetPaintingsBySizes(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestSQLitePaintingRepo(t *testing.T) {
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(st.Stop)
	require.NoError(t, st.Migrate(context.Background()))

	insertLegacy := func(t *testing.T, title, size, image string) uuid.UUID {
		id := uuid.New()
		_, err := st.DB().Exec(
			`INSERT INTO paintings (id, title, category, author, reference, size, image_base64) VALUES (?, ?, 'sea', 'Ana', 'OLD-1', ?, ?)`,
			id.String(), title, size, image,
		)
		require.NoError(t, err)
		return id
	}

	runPaintingRepositoryContract(t, repository.NewSQLitePaintingRepo(st.DB()), insertLegacy)
}

func TestNewRepository_UnsupportedDriver(t *testing.T) {
	_, err := repository.NewRepository(context.Background(), config.StorageConfig{Type: "mongo", DSN: "x"})
	assert.ErrorIs(t, err, storage.ErrUnsupportedDriver)
}

func TestNewRepository_SQLite(t *testing.T) {
	repo, err := repository.NewRepository(context.Background(), config.StorageConfig{Type: repository.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	all, err := repo.Paintings.GetPaintings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func setupTestDB(t *testing.T) *postgresql.Storage {
	if testing.Short() {
		t.Skip("postgres container test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	st, err := postgresql.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(st.Stop)

	require.NoError(t, st.Migrate(ctx))

	return st
}

func TestPostgresPaintingRepo(t *testing.T) {
	st := setupTestDB(t)

	insertLegacy := func(t *testing.T, title, size, image string) uuid.UUID {
		var id uuid.UUID
		err := st.Pool().QueryRow(context.Background(),
			`INSERT INTO paintings (title, category, author, reference, size, image_base64, sizes, images)
			 VALUES ($1, 'sea', 'Ana', 'OLD-1', $2, $3, NULL, NULL) RETURNING id`,
			title, size, image,
		).Scan(&id)
		require.NoError(t, err)
		return id
	}

	runPaintingRepositoryContract(t, repository.NewPaintingRepo(st.Pool()), insertLegacy)
}
