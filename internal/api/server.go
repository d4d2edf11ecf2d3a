package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/samcharles93/cartchunk/pkg/cart"
)

// maxBody bounds uploaded records; anything larger cannot be a cart.
const maxBody = cart.SizeStandalone + 1

type Server struct {
	defaultSize int
	clock       func() time.Time
}

// NewServer returns a server that encodes to defaultSize when a request
// does not name a size. Invalid sizes fall back to the stand-alone length.
func NewServer(defaultSize int) *Server {
	if !cart.ValidSize(defaultSize) {
		defaultSize = cart.SizeStandalone
	}
	return &Server{
		defaultSize: defaultSize,
		clock:       time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/carts/decode", s.handleDecode)
	e.POST("/v1/carts/validate", s.handleValidate)
	e.POST("/v1/carts/encode", s.handleEncode)
	e.GET("/v1/carts/layout", s.handleLayout)
}

type DecodeResponse struct {
	ID        string       `json:"id"`
	Object    string       `json:"object"`
	CreatedAt int64        `json:"created_at"`
	Size      int          `json:"size"`
	Record    CartDTO      `json:"record"`
	Effective EffectiveDTO `json:"effective"`
	Report    ReportDTO    `json:"report"`
}

type ValidateResponse struct {
	ID        string       `json:"id"`
	Object    string       `json:"object"`
	CreatedAt int64        `json:"created_at"`
	Effective EffectiveDTO `json:"effective"`
	Report    ReportDTO    `json:"report"`
}

type LayoutField struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Width  int    `json:"width"`
	Kind   string `json:"kind"`
}

type LayoutResponse struct {
	Object string        `json:"object"`
	Data   []LayoutField `json:"data"`
}

func (s *Server) handleDecode(c *echo.Context) error {
	buf, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBody))
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	rec, err := cart.Decode(buf)
	if err != nil {
		return writeCartError(c, err)
	}
	return writeJSON(c, http.StatusOK, DecodeResponse{
		ID:        newCartID(),
		Object:    "cart",
		CreatedAt: s.clock().Unix(),
		Size:      len(buf),
		Record:    FromRecord(rec),
		Effective: Effective(rec),
		Report:    FromReport(cart.Validate(rec)),
	})
}

func (s *Server) handleValidate(c *echo.Context) error {
	dto, err := decodeJSON[CartDTO](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	rec, err := dto.ToRecord()
	if err != nil {
		return writeCartError(c, err)
	}
	return writeJSON(c, http.StatusOK, ValidateResponse{
		ID:        newCartID(),
		Object:    "cart.validation",
		CreatedAt: s.clock().Unix(),
		Effective: Effective(rec),
		Report:    FromReport(cart.Validate(rec)),
	})
}

func (s *Server) handleEncode(c *echo.Context) error {
	size, err := s.parseSize(c.QueryParam("size"))
	if err != nil {
		return writeCartError(c, err)
	}
	dto, err := decodeJSON[CartDTO](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	rec, err := dto.ToRecord()
	if err != nil {
		return writeCartError(c, err)
	}
	buf, rep, err := cart.EncodeChecked(rec, size)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidRecord) {
			return writeJSON(c, http.StatusUnprocessableEntity, map[string]any{
				"error": ResponseError{
					Message: err.Error(),
					Type:    "invalid_request_error",
					Code:    "invalid_record",
				},
				"report": FromReport(rep),
			})
		}
		return writeCartError(c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEOctetStream)
	res.Header().Set("X-Cart-Id", newCartID())
	res.Header().Set("X-Cart-Warnings", strconv.Itoa(len(rep.Warnings())))
	res.WriteHeader(http.StatusOK)
	_, err = res.Write(buf)
	return err
}

func (s *Server) handleLayout(c *echo.Context) error {
	out := LayoutResponse{Object: "list", Data: make([]LayoutField, 0, len(cart.Layout))}
	for _, f := range cart.Layout {
		out.Data = append(out.Data, LayoutField{
			Name:   f.Name,
			Offset: f.Offset,
			Width:  f.Width,
			Kind:   f.Kind.String(),
		})
	}
	return writeJSON(c, http.StatusOK, out)
}

func (s *Server) parseSize(raw string) (int, error) {
	if raw == "" {
		return s.defaultSize, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newInvalidRequest("size must be 424 or 512")
	}
	if !cart.ValidSize(n) {
		return 0, fmt.Errorf("%w: size %d, want %d or %d", cart.ErrSizeMismatch, n, cart.SizeEmbedded, cart.SizeStandalone)
	}
	return n, nil
}
