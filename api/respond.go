package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	poService "procurement.GO/service/purchaseorder"
)

// Error maps a service error to a {message} response. Unexpected errors are logged
// and reported as a generic 500.
func Error(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, poService.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case errors.Is(err, poService.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case errors.Is(err, poService.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Purchase order not found"})
	}
	log.Error("request failed",
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.String("method", c.Request().Method),
		zap.String("route", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
}

// ParseID parses a positive numeric path parameter.
func ParseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

// ParseOptionalUint parses an optional numeric query parameter; empty yields 0.
func ParseOptionalUint(c echo.Context, name string) (uint, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return uint(n), nil
}

func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
}
