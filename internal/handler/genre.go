package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tbraun92/bandroom/internal/repository"
)

type genreRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=256"`
}

func (a *API) ListGenres(c echo.Context) error {
	rows, total, err := a.Repos.Genres.List(c.Request().Context(), listOptions(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Rows: rows, Count: total})
}

func (a *API) GetGenre(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	genre, err := a.Repos.Genres.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if genre == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, genre)
}

func (a *API) CreateGenre(c echo.Context) error {
	var req genreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	genre, err := a.Repos.Genres.Create(c.Request().Context(), repository.GenreAttrs{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, genre)
}

func (a *API) UpdateGenre(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var req genreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	affected, err := a.Repos.Genres.Update(c.Request().Context(), id, repository.GenreAttrs{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

func (a *API) DeleteGenre(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	affected, err := a.Repos.Genres.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
