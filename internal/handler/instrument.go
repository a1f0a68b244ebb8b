package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tbraun92/bandroom/internal/repository"
)

type instrumentRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=256"`
	IsBandDefault *bool   `json:"is_band_default"`
}

func (a *API) ListInstruments(c echo.Context) error {
	rows, total, err := a.Repos.Instruments.List(c.Request().Context(), listOptions(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Rows: rows, Count: total})
}

func (a *API) ListDefaultInstruments(c echo.Context) error {
	rows, err := a.Repos.Instruments.ListDefaults(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (a *API) GetInstrument(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	instrument, err := a.Repos.Instruments.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if instrument == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, instrument)
}

func (a *API) CreateInstrument(c echo.Context) error {
	var req instrumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	attrs := repository.InstrumentAttrs{Name: req.Name, IsBandDefault: req.IsBandDefault}
	instrument, err := a.Repos.Instruments.Create(c.Request().Context(), attrs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, instrument)
}

func (a *API) UpdateInstrument(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var req instrumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	attrs := repository.InstrumentAttrs{Name: req.Name, IsBandDefault: req.IsBandDefault}
	affected, err := a.Repos.Instruments.Update(c.Request().Context(), id, attrs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

func (a *API) DeleteInstrument(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	affected, err := a.Repos.Instruments.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
