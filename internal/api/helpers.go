package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/spanmask/internal/masking"
)

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "")
}

func writeError(c *echo.Context, status int, errType, msg, param string) error {
	return c.JSON(status, map[string]any{
		"error": ErrorBody{
			Message: msg,
			Type:    errType,
			Param:   param,
		},
	})
}

// writeMaskingError maps masking failures onto HTTP statuses.
func writeMaskingError(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, masking.ErrNotImplemented):
		return writeError(c, http.StatusNotImplemented, "not_implemented_error", err.Error(), "strategy")
	case errors.Is(err, masking.ErrInvalidConfig), errors.Is(err, masking.ErrShapeMismatch), errors.Is(err, ErrInvalidRequest):
		return writeBadRequest(c, err.Error())
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "")
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
