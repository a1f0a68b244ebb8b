// Package handler exposes the CRUD endpoints of the scheduling API. Request
// bodies are bound into DTOs validated with go-playground/validator for
// shape and format; the referential rules stay in the repository layer so
// their messages match what the library callers see.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/tbraun92/bandroom/internal/repository"
	"github.com/tbraun92/bandroom/internal/validation"
)

// API carries the dependencies shared by all handlers.
type API struct {
	Repos         *repository.Repos
	EventsEnabled bool
}

func NewAPI(repos *repository.Repos, eventsEnabled bool) *API {
	return &API{Repos: repos, EventsEnabled: eventsEnabled}
}

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// listOptions builds repository.ListOptions from limit/offset/search/columns
// query parameters.
func listOptions(c echo.Context) repository.ListOptions {
	opts := repository.ListOptions{Search: c.QueryParam("search")}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Offset = n
		}
	}
	if v := c.QueryParam("columns"); v != "" {
		for _, col := range strings.Split(v, ",") {
			if col = strings.TrimSpace(col); col != "" {
				opts.Columns = append(opts.Columns, col)
			}
		}
	}
	return opts
}

// listResponse mirrors the rows/count shape of the underlying List calls.
type listResponse struct {
	Rows  any   `json:"rows"`
	Count int64 `json:"count"`
}

// writeError maps an error from the repository layer onto an HTTP response.
// Rule violations are client errors; anything else is an infrastructure
// failure worth a 500 and a log line.
func writeError(c echo.Context, err error) error {
	var ve *validation.Error
	if errors.As(err, &ve) {
		status := http.StatusUnprocessableEntity
		if ve.Kind == validation.KindDuplicate || ve.Kind == validation.KindConstraint {
			status = http.StatusConflict
		}
		return c.JSON(status, map[string]string{"error": ve.Message})
	}

	var ves validation.Errors
	if errors.As(err, &ves) {
		msgs := make([]string, len(ves))
		for i, v := range ves {
			msgs[i] = v.Message
		}
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": msgs})
	}

	if errors.Is(err, repository.ErrUnknownColumn) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	log.Error("request failed", "err", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
}
