package main

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"linkeep/internal/config"
	"linkeep/internal/database"
	"linkeep/internal/logging"
	"linkeep/internal/services"
	"linkeep/internal/utils"
)

// App wires config, logging, storage and the domain services together. Each
// CLI command builds one App, uses it, and closes it.
type App struct {
	Config   *config.AppConfig
	Log      *zap.Logger
	DB       *gorm.DB
	Services *services.Services
}

func newApp(ctx context.Context, configPath string) (*App, error) {
	if err := utils.LoadEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbLogLevel := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		dbLogLevel = gormlogger.Info
	}
	db, err := database.Init(database.Config{Path: cfg.DBPath, LogLevel: dbLogLevel})
	if err != nil {
		return nil, err
	}

	svc := services.NewServices(db, cfg.EnrichmentTimeout(), log)
	if err := svc.Startup(ctx); err != nil {
		return nil, err
	}

	return &App{Config: cfg, Log: log, DB: db, Services: svc}, nil
}

func (a *App) Close() {
	a.Services.Query.Close()
	_ = a.Log.Sync()
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
