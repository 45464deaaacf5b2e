package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jssrooms/backend/internal/domain/apperror"
)

// respondError maps the domain error taxonomy onto HTTP statuses.
// Every mapped error is a terminal outcome for the caller; nothing
// here is worth an automatic retry.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, apperror.ErrNotFound),
		errors.Is(err, apperror.ErrInvalidToken):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrRoomUnavailable),
		errors.Is(err, apperror.ErrAlreadyRegistered),
		errors.Is(err, apperror.ErrCapacityExceeded),
		errors.Is(err, apperror.ErrAlreadyRedeemed):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		return c.JSON(status, map[string]string{"error": "internal error"})
	}

	return c.JSON(status, map[string]string{"error": err.Error()})
}
