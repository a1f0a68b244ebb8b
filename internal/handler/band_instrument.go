package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tbraun92/bandroom/internal/repository"
)

type bandInstrumentRequest struct {
	BandID       *uint64 `json:"band_id"`
	InstrumentID *uint64 `json:"instrument_id"`
	UserID       *uint64 `json:"user_id"`
}

func (r bandInstrumentRequest) attrs() repository.BandInstrumentAttrs {
	return repository.BandInstrumentAttrs{
		BandID:       r.BandID,
		InstrumentID: r.InstrumentID,
		UserID:       r.UserID,
	}
}

func (a *API) ListBandInstruments(c echo.Context) error {
	rows, total, err := a.Repos.BandInstruments.List(c.Request().Context(), listOptions(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Rows: rows, Count: total})
}

func (a *API) GetBandInstrument(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	bi, err := a.Repos.BandInstruments.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if bi == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, bi)
}

func (a *API) CreateBandInstrument(c echo.Context) error {
	var req bandInstrumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	bi, err := a.Repos.BandInstruments.Create(c.Request().Context(), req.attrs())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, bi)
}

func (a *API) UpdateBandInstrument(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var req bandInstrumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	affected, err := a.Repos.BandInstruments.Update(c.Request().Context(), id, req.attrs())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

func (a *API) DeleteBandInstrument(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	affected, err := a.Repos.BandInstruments.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
