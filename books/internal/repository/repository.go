package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/books-service/books/internal/errs"
	"github.com/Astemirdum/books-service/books/internal/model"
)

type Repository interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, isbn string) (model.Book, error)
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, isbn string, book model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, isbn string) error
	Truncate(ctx context.Context) error
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const booksTableName = `books`

var (
	qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	bookColumns     = []string{"isbn", "amazon_url", "author", "language", "pages", "publisher", "title", "year"}
	returningColumn = "returning " + strings.Join(bookColumns, ", ")
)

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("isbn").
		ToSql()
	if err != nil {
		return nil, err
	}

	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, errors.Wrap(err, "ListBooks")
	}
	return books, nil
}

func (r *repository) GetBook(ctx context.Context, isbn string) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"isbn": isbn}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, errors.Wrap(err, "GetBook")
	}
	return book, nil
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns(bookColumns...).
		Values(book.ISBN, book.AmazonURL, book.Author, book.Language, book.Pages, book.Publisher, book.Title, book.Year).
		Suffix(returningColumn).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var created model.Book
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.String("isbn", book.ISBN), zap.Error(err))
		return model.Book{}, r.constraintErr(err, "CreateBook")
	}
	return created, nil
}

func (r *repository) UpdateBook(ctx context.Context, isbn string, book model.Book) (model.Book, error) {
	query, args, err := qb.Update(booksTableName).
		SetMap(map[string]interface{}{
			"amazon_url": book.AmazonURL,
			"author":     book.Author,
			"language":   book.Language,
			"pages":      book.Pages,
			"publisher":  book.Publisher,
			"title":      book.Title,
			"year":       book.Year,
		}).
		Where(sq.Eq{"isbn": isbn}).
		Suffix(returningColumn).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var updated model.Book
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		r.log.Error("UpdateBook", zap.String("q", query), zap.String("isbn", isbn), zap.Error(err))
		return model.Book{}, r.constraintErr(err, "UpdateBook")
	}
	return updated, nil
}

func (r *repository) DeleteBook(ctx context.Context, isbn string) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"isbn": isbn}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "DeleteBook")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "DeleteBook.RowsAffected")
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) Truncate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `truncate table `+booksTableName)
	return err
}

// constraintErr maps postgres integrity violations to domain errors.
func (r *repository) constraintErr(err error, op string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return errors.Wrap(err, op)
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return errs.ErrConflict
	case pgerrcode.NotNullViolation, pgerrcode.CheckViolation,
		pgerrcode.StringDataRightTruncationDataException, pgerrcode.NumericValueOutOfRange:
		r.log.Debug(op, zap.String("constraint", pgErr.ConstraintName), zap.String("detail", pgErr.Message))
		return errs.ErrConstraint
	}
	return errors.Wrap(err, op)
}
