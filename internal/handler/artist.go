package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tbraun92/bandroom/internal/repository"
)

type artistRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=256"`
}

func (a *API) ListArtists(c echo.Context) error {
	rows, total, err := a.Repos.Artists.List(c.Request().Context(), listOptions(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Rows: rows, Count: total})
}

func (a *API) GetArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	artist, err := a.Repos.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if artist == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, artist)
}

func (a *API) CreateArtist(c echo.Context) error {
	var req artistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	artist, err := a.Repos.Artists.Create(c.Request().Context(), repository.ArtistAttrs{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, artist)
}

func (a *API) UpdateArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var req artistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	affected, err := a.Repos.Artists.Update(c.Request().Context(), id, repository.ArtistAttrs{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

func (a *API) DeleteArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	affected, err := a.Repos.Artists.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
