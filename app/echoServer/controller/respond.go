// app/echoServer/controller/respond.go
package controller

import (
	"log/slog"
	"net/http"

	"agrimarket/app/echoServer/validation"
	"agrimarket/util/errs"

	"github.com/labstack/echo/v4"
)

// Fail maps a service error onto a status code. Unknown errors are logged and hidden.
func Fail(c echo.Context, log *slog.Logger, op string, err error) error {
	switch errs.Code(err) {
	case errs.ErrValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case errs.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case errs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case errs.ErrInvalidTransition, errs.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	}
	log.Error(op, "err", err,
		"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"path", c.Path(),
		"method", c.Request().Method,
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

func BadJSON(c echo.Context, log *slog.Logger, err error) error {
	log.Warn("bind failed", "err", err, "path", c.Path(),
		"req_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
}

func Invalid(c echo.Context, log *slog.Logger, err error) error {
	log.Warn("validation failed", "err", err, "path", c.Path(),
		"req_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(http.StatusBadRequest, echo.Map{
		"message": "validation error",
		"errors":  validation.Fields(err),
	})
}

func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
}
