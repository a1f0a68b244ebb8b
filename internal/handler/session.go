package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tbraun92/bandroom/internal/repository"
)

type sessionRequest struct {
	StartedAt        *string `json:"started_at"`
	ShowcasedAt      *string `json:"showcased_at"`
	ShowcaseLocation *string `json:"showcase_location" validate:"omitempty,max=256"`
}

// parseDate accepts RFC 3339 timestamps or plain dates.
func parseDate(field string, v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", *v)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date %q", field, *v)
	}
	return &t, nil
}

func (r sessionRequest) attrs() (repository.SessionAttrs, error) {
	startedAt, err := parseDate("started_at", r.StartedAt)
	if err != nil {
		return repository.SessionAttrs{}, err
	}
	showcasedAt, err := parseDate("showcased_at", r.ShowcasedAt)
	if err != nil {
		return repository.SessionAttrs{}, err
	}
	return repository.SessionAttrs{
		StartedAt:        startedAt,
		ShowcasedAt:      showcasedAt,
		ShowcaseLocation: r.ShowcaseLocation,
	}, nil
}

func (a *API) ListSessions(c echo.Context) error {
	rows, total, err := a.Repos.Sessions.List(c.Request().Context(), listOptions(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Rows: rows, Count: total})
}

func (a *API) GetSession(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	session, err := a.Repos.Sessions.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if session == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, session)
}

func (a *API) CreateSession(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	attrs, err := req.attrs()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	session, err := a.Repos.Sessions.Create(c.Request().Context(), attrs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, session)
}

func (a *API) UpdateSession(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	attrs, err := req.attrs()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	affected, err := a.Repos.Sessions.Update(c.Request().Context(), id, attrs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

func (a *API) DeleteSession(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	affected, err := a.Repos.Sessions.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
