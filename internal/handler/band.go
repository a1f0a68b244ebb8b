package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tbraun92/bandroom/internal/queue"
	"github.com/tbraun92/bandroom/internal/repository"
)

type bandRequest struct {
	SessionID     *uint64  `json:"session_id"`
	ArtistID      *uint64  `json:"artist_id"`
	GenreID       *uint64  `json:"genre_id"`
	Name          *string  `json:"name" validate:"omitempty,max=256"`
	ImageURL      *string  `json:"image_url" validate:"omitempty,max=512"`
	DayOfWeek     *string  `json:"day_of_week" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartsAt      *string  `json:"starts_at"`
	EndsAt        *string  `json:"ends_at"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	DurationWeeks *int32   `json:"duration_weeks" validate:"omitempty,gte=1"`
}

func (r bandRequest) attrs() repository.BandAttrs {
	return repository.BandAttrs{
		SessionID:     r.SessionID,
		ArtistID:      r.ArtistID,
		GenreID:       r.GenreID,
		Name:          r.Name,
		ImageURL:      r.ImageURL,
		DayOfWeek:     r.DayOfWeek,
		StartsAt:      r.StartsAt,
		EndsAt:        r.EndsAt,
		Price:         r.Price,
		DurationWeeks: r.DurationWeeks,
	}
}

func (a *API) ListBands(c echo.Context) error {
	rows, total, err := a.Repos.Bands.List(c.Request().Context(), listOptions(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Rows: rows, Count: total})
}

func (a *API) GetBand(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	band, err := a.Repos.Bands.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if band == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, band)
}

// ListBandInstrumentsForBand returns the instrument assignments of one band.
func (a *API) ListBandInstrumentsForBand(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	rows, err := a.Repos.BandInstruments.ListByBand(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// CreateBand creates a band and its default instrument slots, then publishes
// a band.created event. The event is best-effort: the band is already
// committed, so a broker failure only logs.
func (a *API) CreateBand(c echo.Context) error {
	var req bandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	band, err := a.Repos.Bands.Create(ctx, req.attrs())
	if err != nil {
		return writeError(c, err)
	}

	if a.EventsEnabled {
		assignments, err := a.Repos.BandInstruments.ListByBand(ctx, band.ID)
		if err == nil {
			ids := make([]uint64, len(assignments))
			for i, bi := range assignments {
				ids[i] = bi.InstrumentID
			}
			name := ""
			if band.Name != nil {
				name = *band.Name
			}
			_ = queue.PublishBandCreated(ctx, queue.BandCreatedEvent{
				BandID:               band.ID,
				SessionID:            band.SessionID,
				Name:                 name,
				DefaultInstrumentIDs: ids,
				CreatedAt:            time.Now().UTC().Format(time.RFC3339),
			})
		}
	}

	return c.JSON(http.StatusCreated, band)
}

func (a *API) UpdateBand(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var req bandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	affected, err := a.Repos.Bands.Update(c.Request().Context(), id, req.attrs())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

func (a *API) DeleteBand(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	affected, err := a.Repos.Bands.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
