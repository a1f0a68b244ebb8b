// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tbraun92/bandroom/internal/config"
	"github.com/tbraun92/bandroom/internal/handler"
	"github.com/tbraun92/bandroom/internal/middleware"
)

// Register mounts the health check and the versioned entity routes on e.
func Register(e *echo.Echo, api *handler.API, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.Validator = handler.NewValidator()
	e.Use(middleware.RequestLogger())

	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1", middleware.RateLimit(rlCfg, rdb))

	artists := v1.Group("/artists")
	artists.GET("", api.ListArtists)
	artists.POST("", api.CreateArtist)
	artists.GET("/:id", api.GetArtist)
	artists.PATCH("/:id", api.UpdateArtist)
	artists.DELETE("/:id", api.DeleteArtist)

	genres := v1.Group("/genres")
	genres.GET("", api.ListGenres)
	genres.POST("", api.CreateGenre)
	genres.GET("/:id", api.GetGenre)
	genres.PATCH("/:id", api.UpdateGenre)
	genres.DELETE("/:id", api.DeleteGenre)

	instruments := v1.Group("/instruments")
	instruments.GET("", api.ListInstruments)
	instruments.GET("/defaults", api.ListDefaultInstruments)
	instruments.POST("", api.CreateInstrument)
	instruments.GET("/:id", api.GetInstrument)
	instruments.PATCH("/:id", api.UpdateInstrument)
	instruments.DELETE("/:id", api.DeleteInstrument)

	users := v1.Group("/users")
	users.GET("", api.ListUsers)
	users.POST("", api.CreateUser)
	users.GET("/uuid/:uuid", api.GetUserByUUID)
	users.GET("/:id", api.GetUser)
	users.PATCH("/:id", api.UpdateUser)
	users.DELETE("/:id", api.DeleteUser)

	sessions := v1.Group("/sessions")
	sessions.GET("", api.ListSessions)
	sessions.POST("", api.CreateSession)
	sessions.GET("/:id", api.GetSession)
	sessions.PATCH("/:id", api.UpdateSession)
	sessions.DELETE("/:id", api.DeleteSession)

	bands := v1.Group("/bands")
	bands.GET("", api.ListBands)
	bands.POST("", api.CreateBand)
	bands.GET("/:id", api.GetBand)
	bands.GET("/:id/instruments", api.ListBandInstrumentsForBand)
	bands.PATCH("/:id", api.UpdateBand)
	bands.DELETE("/:id", api.DeleteBand)

	bandInstruments := v1.Group("/band-instruments")
	bandInstruments.GET("", api.ListBandInstruments)
	bandInstruments.POST("", api.CreateBandInstrument)
	bandInstruments.GET("/:id", api.GetBandInstrument)
	bandInstruments.PATCH("/:id", api.UpdateBandInstrument)
	bandInstruments.DELETE("/:id", api.DeleteBandInstrument)
}
