package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/Astemirdum/books-service/books/docs" // swagger spec
	"github.com/Astemirdum/books-service/books/internal/errs"
	"github.com/Astemirdum/books-service/books/internal/model"
	md "github.com/Astemirdum/books-service/pkg/middleware"
	"github.com/Astemirdum/books-service/pkg/validate"
)

const maxBodySize = 1 << 20

type Handler struct {
	booksSvc BookService
	log      *zap.Logger
}

func New(booksSvc BookService, log *zap.Logger) *Handler {
	return &Handler{
		booksSvc: booksSvc,
		log:      log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.HTTPErrorHandler = h.errorHandler
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/books",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		md.RequestID(),
		md.NewRateLimiter(apiRPS),
		middleware.BodyLimit("1M"),
	)

	api.GET("", h.ListBooks)
	api.POST("", h.CreateBook)
	api.GET("/:isbn", h.GetBook)
	api.PUT("/:isbn", h.UpdateBook)
	api.DELETE("/:isbn", h.DeleteBook)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// ListBooks godoc
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {object} model.ListBooks
// @Failure 500 {object} errs.ErrorResponse
// @Router /books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.booksSvc.ListBooks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.ListBooks{Books: books})
}

// GetBook godoc
// @Summary Get a book by isbn
// @Tags books
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} model.BookResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /books/{isbn} [get]
func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.booksSvc.GetBook(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.BookResponse{Book: book})
}

// CreateBook godoc
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Param book body model.Book true "Book"
// @Success 201 {object} model.BookResponse
// @Failure 400 {object} errs.ErrorResponse
// @Failure 409 {object} errs.ErrorResponse
// @Router /books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	book, err := bindBook(c)
	if err != nil {
		return err
	}
	created, err := h.booksSvc.CreateBook(c.Request().Context(), book)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, model.BookResponse{Book: created})
}

// UpdateBook godoc
// @Summary Replace a book
// @Description Every field is required, isbn must match the path.
// @Tags books
// @Accept json
// @Produce json
// @Param isbn path string true "ISBN"
// @Param book body model.Book true "Book"
// @Success 200 {object} model.BookResponse
// @Failure 400 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /books/{isbn} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	isbn := c.Param("isbn")
	book, err := bindBook(c)
	if err != nil {
		return err
	}
	if book.ISBN != isbn {
		return errs.ErrImmutable
	}
	updated, err := h.booksSvc.UpdateBook(c.Request().Context(), isbn, book)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.BookResponse{Book: updated})
}

// DeleteBook godoc
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} model.MessageResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /books/{isbn} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	if err := h.booksSvc.DeleteBook(c.Request().Context(), c.Param("isbn")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "Book deleted"})
}

func bindBook(c echo.Context) (model.Book, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodySize))
	if err != nil {
		return model.Book{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var book model.Book
	if err := validate.Decode(raw, model.BookSchema, &book, c.Validate); err != nil {
		return model.Book{}, err
	}
	return book, nil
}
