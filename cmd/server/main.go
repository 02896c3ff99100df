// Command server runs the generation API: POST a choice vector, get back a
// complete game specification and a shareable seed code; GET a code to
// replay it exactly.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/forgelab/gamegen-go/internal/api"
	"github.com/forgelab/gamegen-go/internal/store"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	Addr      string  `env:"ADDR" envDefault:":8080"`
	DBPath    string  `env:"DB_PATH" envDefault:"gamegen.db"`
	LogLevel  string  `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON   bool    `env:"LOG_JSON" envDefault:"false"`
	RateRPS   float64 `env:"RATE_RPS" envDefault:"10"`
	RateBurst int     `env:"RATE_BURST" envDefault:"20"`
}

func main() {
	// Missing .env is fine; the environment alone is a complete config.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		logrus.WithError(err).Fatal("failed to parse configuration")
	}

	log := logrus.New()
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	server := api.NewServer(db, log, api.Options{
		RateRPS:   cfg.RateRPS,
		RateBurst: cfg.RateBurst,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // explore scans can run long
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr,
			"db":      cfg.DBPath,
			"version": api.Version,
		}).Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
