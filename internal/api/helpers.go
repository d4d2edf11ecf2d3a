package api

import (
	"errors"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/samcharles93/cartchunk/pkg/cart"
)

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(status)
	_, err = res.Write(b)
	return err
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "", "")
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return writeJSON(c, status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

// writeCartError maps codec errors onto the error envelope.
func writeCartError(c *echo.Context, err error) error {
	var fe *cart.FieldError
	switch {
	case errors.As(err, &fe):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), fe.Field, "field_overflow")
	case errors.Is(err, cart.ErrSizeMismatch):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "size", "size_mismatch")
	case errors.Is(err, cart.ErrBadTag):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "tag", "bad_tag")
	case errors.Is(err, cart.ErrInvalidRecord):
		return writeError(c, http.StatusUnprocessableEntity, "invalid_request_error", err.Error(), "", "invalid_record")
	case errors.Is(err, ErrInvalidRequest):
		return writeBadRequest(c, err.Error())
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, newInvalidRequest(err.Error())
	}
	return out, nil
}

func newCartID() string {
	return "cart_" + uuid.NewString()
}
