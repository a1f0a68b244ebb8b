package main

import (
	"database/sql"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/tbraun92/bandroom/internal/config"
	"github.com/tbraun92/bandroom/internal/database"
	"github.com/tbraun92/bandroom/internal/handler"
	"github.com/tbraun92/bandroom/internal/queue"
	"github.com/tbraun92/bandroom/internal/repository"
	"github.com/tbraun92/bandroom/internal/router"
	"github.com/tbraun92/bandroom/internal/validation"
)

func main() {
	cfg := config.Load()

	var (
		db  *sql.DB
		err error
	)
	switch cfg.DBDriver {
	case database.DriverSQLite:
		db, err = database.OpenLite(cfg.DBPath)
	default:
		db, err = database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	if err != nil {
		log.Fatal("database connection failed", "err", err)
	}
	defer db.Close()
	log.Info("database connected", "driver", cfg.DBDriver)

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		log.Fatal("migrations failed", "err", err)
	}

	runner := validation.Runner{Accumulate: cfg.ValidationAccumulate}
	repos := repository.NewRepos(db, runner)
	api := handler.NewAPI(repos, cfg.EventsEnabled)

	rlCfg := config.LoadRateLimitConfig()
	rdb := config.NewRedisClient()
	if rlCfg.Enabled && rdb == nil {
		log.Warn("rate limiting enabled but redis unavailable; running without limits")
	}

	if cfg.EventsEnabled {
		go func() {
			if err := queue.StartBandConsumer(); err != nil {
				log.Warn("band consumer stopped", "err", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, api, rlCfg, rdb)

	log.Info("listening", "port", cfg.Port, "env", cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}
