package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SMU-RES/smu-course-review/internal/config"
	"github.com/SMU-RES/smu-course-review/internal/db"
	"github.com/SMU-RES/smu-course-review/internal/pkg/logger"
	"github.com/SMU-RES/smu-course-review/internal/snapshot"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "snapshot output path (defaults to the configured snapshot path)")
	flag.Parse()

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	if outPath == "" {
		outPath = cfg.Snapshot.Path
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error().Err(err).Str("dir", dir).Msg("Failed to create output directory")
			os.Exit(1)
		}
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	exporter := snapshot.NewExporter(database.Pool)
	if err := exporter.Export(ctx, outPath); err != nil {
		log.Error().Err(err).Msg("Snapshot export failed")
		os.Exit(1)
	}
}
