package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/books-service/books/internal/errs"
	"github.com/Astemirdum/books-service/pkg/validate"
)

// errorHandler renders every error as errs.ErrorResponse.
func (h *Handler) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		body     errs.ErrorBody
		validErr *validate.ValidationErrors
		httpErr  *echo.HTTPError
	)
	switch {
	case errors.As(err, &validErr):
		body = errs.ErrorBody{Message: "invalid book payload", Status: http.StatusBadRequest, Errors: validErr.Messages()}
	case errors.Is(err, errs.ErrNotFound):
		body = errs.ErrorBody{Message: errs.ErrNotFound.Error(), Status: http.StatusNotFound}
	case errors.Is(err, errs.ErrConflict):
		body = errs.ErrorBody{Message: errs.ErrConflict.Error(), Status: http.StatusConflict}
	case errors.Is(err, errs.ErrConstraint):
		body = errs.ErrorBody{Message: errs.ErrConstraint.Error(), Status: http.StatusBadRequest}
	case errors.Is(err, errs.ErrImmutable):
		body = errs.ErrorBody{Message: errs.ErrImmutable.Error(), Status: http.StatusBadRequest}
	case errors.As(err, &httpErr):
		body = errs.ErrorBody{Message: fmt.Sprint(httpErr.Message), Status: httpErr.Code}
		if httpErr.Code >= http.StatusInternalServerError {
			h.log.Error("http error", zap.String("path", c.Path()), zap.Error(err))
			body.Message = http.StatusText(httpErr.Code)
		}
	default:
		h.log.Error("unhandled error",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		body = errs.ErrorBody{Message: "internal server error", Status: http.StatusInternalServerError}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(body.Status)
	} else {
		err = c.JSON(body.Status, errs.ErrorResponse{Error: body})
	}
	if err != nil {
		h.log.Error("write error response", zap.Error(err))
	}
}
