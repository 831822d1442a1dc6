package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Astemirdum/books-service/books/internal/model"
	booksRepo "github.com/Astemirdum/books-service/books/internal/repository"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/publisher.go -package=mocks
//go:generate go run github.com/golang/mock/mockgen -source=../repository/repository.go -destination=mocks/repository.go -package=mocks

type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
}

type Service struct {
	log       *zap.Logger
	repo      booksRepo.Repository
	publisher Publisher
	now       func() time.Time
}

func NewService(repo booksRepo.Repository, publisher Publisher, log *zap.Logger) *Service {
	return &Service{
		log:       log.Named("service"),
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

func (s *Service) GetBook(ctx context.Context, isbn string) (model.Book, error) {
	return s.repo.GetBook(ctx, isbn)
}

func (s *Service) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	created, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return model.Book{}, err
	}
	s.publish(ctx, model.EventBookCreated, created.ISBN, &created)
	return created, nil
}

func (s *Service) UpdateBook(ctx context.Context, isbn string, book model.Book) (model.Book, error) {
	updated, err := s.repo.UpdateBook(ctx, isbn, book)
	if err != nil {
		return model.Book{}, err
	}
	s.publish(ctx, model.EventBookUpdated, updated.ISBN, &updated)
	return updated, nil
}

func (s *Service) DeleteBook(ctx context.Context, isbn string) error {
	if err := s.repo.DeleteBook(ctx, isbn); err != nil {
		return err
	}
	s.publish(ctx, model.EventBookDeleted, isbn, nil)
	return nil
}

// publish never fails the caller, the row is already committed.
func (s *Service) publish(ctx context.Context, typ model.EventType, isbn string, book *model.Book) {
	event := model.BookEvent{
		ID:        uuid.NewString(),
		Type:      typ,
		ISBN:      isbn,
		Book:      book,
		Timestamp: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, isbn, event); err != nil {
		s.log.Warn("publish book event",
			zap.String("type", string(typ)),
			zap.String("isbn", isbn),
			zap.Error(err))
	}
}
