package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/mbolis/platform-pulse/app"
	"github.com/mbolis/platform-pulse/config"
	"github.com/mbolis/platform-pulse/database"
	"github.com/mbolis/platform-pulse/log"
	"github.com/mbolis/platform-pulse/routes"
)

func main() {
	cfg := config.ParseFlags()
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	app := app.App{
		DB:     db,
		Config: cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
