package http_util

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/ghaniswara/medi-quest/pkg/validator"
	"github.com/labstack/echo"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DataResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type ErrorResponse struct {
	Property string `json:"property"`
	Detail   string `json:"detail"`
}

type HTTPErrorResponse struct {
	StatusResponse
	Errors []ErrorResponse `json:"errors"`
}

func Encode[T any](c echo.Context, status int, v T) error {
	return c.JSON(status, v)
}

// Decode binds the request through echo's binder, which also fills path params.
func Decode[T any](c echo.Context) (T, error) {
	var v T
	if err := c.Bind(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// DecodeJSON reads the body straight into v, for targets echo's binder cannot fill
// such as types with their own UnmarshalJSON and no struct fields to bind. Like the
// binder it refuses bodies that are not sent as JSON.
func DecodeJSON[T any](c echo.Context) (T, error) {
	var v T
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return v, fmt.Errorf("decode json: %w", echo.ErrUnsupportedMediaType)
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

func DecodeBody[T any](body []byte, v T) (T, error) {
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// ValidateRequest writes a 400 listing every problem and reports false when v is
// invalid.
func ValidateRequest(c echo.Context, v validator.Validate) (bool, error) {
	problems := v.Validate(c.Request().Context())

	if len(problems) == 0 {
		return true, nil
	}

	return false, c.JSON(http.StatusBadRequest, HTTPErrorResponse{
		StatusResponse: StatusResponse{
			Success: false,
			Message: "Bad request check your request",
		},
		Errors: flatten(problems),
	})
}

func BadRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, HTTPErrorResponse{
		StatusResponse: StatusResponse{Success: false, Message: "Bad Request"},
		Errors:         []ErrorResponse{{Property: "request", Detail: "check your request"}},
	})
}

func flatten(problems map[string][]string) []ErrorResponse {
	properties := make([]string, 0, len(problems))
	for property := range problems {
		properties = append(properties, property)
	}
	sort.Strings(properties)

	var errs []ErrorResponse
	for _, property := range properties {
		for _, detail := range problems[property] {
			errs = append(errs, ErrorResponse{Property: property, Detail: detail})
		}
	}
	return errs
}
