package handler

import (
	"context"

	"github.com/Astemirdum/books-service/books/internal/model"
	"github.com/Astemirdum/books-service/books/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go -package=mocks

type BookService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, isbn string) (model.Book, error)
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, isbn string, book model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, isbn string) error
}

var _ BookService = (*service.Service)(nil)
