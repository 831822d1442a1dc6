package model

import (
	"time"

	"github.com/Astemirdum/books-service/pkg/validate"
)

// Book mirrors the books table; pages and year are INTEGER columns.
type Book struct {
	ISBN      string `json:"isbn" db:"isbn" validate:"required,max=32"`
	AmazonURL string `json:"amazon_url" db:"amazon_url" validate:"required"`
	Author    string `json:"author" db:"author" validate:"required"`
	Language  string `json:"language" db:"language" validate:"required"`
	Pages     int    `json:"pages" db:"pages" validate:"gte=0,lte=2147483647"`
	Publisher string `json:"publisher" db:"publisher" validate:"required"`
	Title     string `json:"title" db:"title" validate:"required"`
	Year      int    `json:"year" db:"year" validate:"gte=-2147483648,lte=2147483647"`
}

// BookSchema is the shape every create and update payload must have.
// Updates replace the whole row, so every field is required there too.
var BookSchema = validate.Schema{
	{Name: "isbn", Type: validate.TypeString, Required: true},
	{Name: "amazon_url", Type: validate.TypeString, Required: true},
	{Name: "author", Type: validate.TypeString, Required: true},
	{Name: "language", Type: validate.TypeString, Required: true},
	{Name: "pages", Type: validate.TypeInteger, Required: true},
	{Name: "publisher", Type: validate.TypeString, Required: true},
	{Name: "title", Type: validate.TypeString, Required: true},
	{Name: "year", Type: validate.TypeInteger, Required: true},
}

type ListBooks struct {
	Books []Book `json:"books"`
}

type BookResponse struct {
	Book Book `json:"book"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type EventType string

const (
	EventBookCreated EventType = "BOOK_CREATED"
	EventBookUpdated EventType = "BOOK_UPDATED"
	EventBookDeleted EventType = "BOOK_DELETED"
)

type BookEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ISBN      string    `json:"isbn"`
	Book      *Book     `json:"book,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
