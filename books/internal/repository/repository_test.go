package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/books-service/books/internal/errs"
	"github.com/Astemirdum/books-service/books/internal/model"
	"github.com/Astemirdum/books-service/books/migrations"
	"github.com/Astemirdum/books-service/pkg/postgres"
)

func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}
	pool.MaxWait = time.Minute

	resource, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=books_test",
	})
	if err != nil {
		t.Fatalf("failed to start postgres: %+v", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("failed to purge resource: %+v", err)
		}
	})

	cfg := postgres.DB{
		Host:     "localhost",
		Port:     resource.GetPort("5432/tcp"),
		Username: "postgres",
		Password: "postgres",
		NameDB:   "books_test",
		SSLMode:  "disable",
	}
	var db *sqlx.DB
	err = pool.Retry(func() error {
		var e error
		db, e = postgres.NewPostgresDB(context.Background(), &cfg, migrations.MigrationFiles)
		return e
	})
	if err != nil {
		t.Fatalf("failed to connect to postgres: %+v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testBook() model.Book {
	return model.Book{
		ISBN:      "06911631518",
		AmazonURL: "http://a.co/eobPtX2",
		Author:    "Gorge Lane",
		Language:  "english",
		Pages:     322,
		Publisher: "Some University",
		Title:     "Learn to Clumb",
		Year:      2017,
	}
}

func TestRepository(t *testing.T) {
	db := startPostgres(t)
	repo, err := NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	reset := func(t *testing.T) {
		t.Helper()
		require.NoError(t, repo.Truncate(ctx))
	}

	t.Run("empty list", func(t *testing.T) {
		reset(t)
		books, err := repo.ListBooks(ctx)
		require.NoError(t, err)
		require.NotNil(t, books)
		require.Empty(t, books)
	})

	t.Run("create then get round trip", func(t *testing.T) {
		reset(t)
		created, err := repo.CreateBook(ctx, testBook())
		require.NoError(t, err)
		require.Equal(t, testBook(), created)

		got, err := repo.GetBook(ctx, created.ISBN)
		require.NoError(t, err)
		require.Equal(t, created, got)
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		reset(t)
		_, err := repo.CreateBook(ctx, testBook())
		require.NoError(t, err)
		_, err = repo.CreateBook(ctx, testBook())
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("check constraint", func(t *testing.T) {
		reset(t)
		b := testBook()
		b.Pages = -1
		_, err := repo.CreateBook(ctx, b)
		require.ErrorIs(t, err, errs.ErrConstraint)
	})

	t.Run("get missing", func(t *testing.T) {
		reset(t)
		_, err := repo.GetBook(ctx, "nope")
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		reset(t)
		_, err := repo.CreateBook(ctx, testBook())
		require.NoError(t, err)

		b := testBook()
		b.Author = "Bruno Lane"
		b.Pages = 400
		updated, err := repo.UpdateBook(ctx, b.ISBN, b)
		require.NoError(t, err)
		require.Equal(t, b, updated)

		got, err := repo.GetBook(ctx, b.ISBN)
		require.NoError(t, err)
		require.Equal(t, "Bruno Lane", got.Author)
	})

	t.Run("update missing never inserts", func(t *testing.T) {
		reset(t)
		_, err := repo.UpdateBook(ctx, "missing", testBook())
		require.ErrorIs(t, err, errs.ErrNotFound)

		books, err := repo.ListBooks(ctx)
		require.NoError(t, err)
		require.Empty(t, books)
	})

	t.Run("delete", func(t *testing.T) {
		reset(t)
		_, err := repo.CreateBook(ctx, testBook())
		require.NoError(t, err)

		require.NoError(t, repo.DeleteBook(ctx, testBook().ISBN))
		_, err = repo.GetBook(ctx, testBook().ISBN)
		require.ErrorIs(t, err, errs.ErrNotFound)
		require.ErrorIs(t, repo.DeleteBook(ctx, testBook().ISBN), errs.ErrNotFound)
	})

	t.Run("list counts creates minus deletes", func(t *testing.T) {
		reset(t)
		for _, isbn := range []string{"3", "1", "2", "4"} {
			b := testBook()
			b.ISBN = isbn
			_, err := repo.CreateBook(ctx, b)
			require.NoError(t, err)
		}
		require.NoError(t, repo.DeleteBook(ctx, "4"))

		books, err := repo.ListBooks(ctx)
		require.NoError(t, err)
		require.Len(t, books, 3)
		require.Equal(t, []string{"1", "2", "3"}, []string{books[0].ISBN, books[1].ISBN, books[2].ISBN})
	})

	t.Run("isbn is bound not interpolated", func(t *testing.T) {
		reset(t)
		b := testBook()
		b.ISBN = "x'; drop table books; --"
		_, err := repo.CreateBook(ctx, b)
		require.NoError(t, err)

		got, err := repo.GetBook(ctx, b.ISBN)
		require.NoError(t, err)
		require.Equal(t, b, got)
	})
}
