package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/cathome-dev/cathome/frontend/internal/router"
	"github.com/cathome-dev/cathome/frontend/internal/setup"
	"github.com/cathome-dev/cathome/shared/config"
	"github.com/cathome-dev/cathome/shared/logger"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Public.WebAddr,
		Handler:      router.SetupRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Log.Info("web server started", "addr", cfg.Public.WebAddr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
