package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"linkeep/internal/repositories"
)

// Services aggregates the domain services backed by the database. The
// composition root constructs it once and passes references explicitly;
// there is no ambient global lookup.
type Services struct {
	Memos      MemoService
	Settings   SettingsService
	Keyring    *KeyringService
	Enrichment EnrichmentService
	Capture    CapturePipeline
	Query      *QueryEngine
}

// NewServices constructs the service container using repositories backed by db.
func NewServices(db *gorm.DB, enrichmentTimeout time.Duration, log *zap.Logger) *Services {
	memoRepo := repositories.NewMemoRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	memos := NewMemoService(memoRepo, log)
	settings := NewSettingsService(settingsRepo)
	keys := NewKeyringService()
	enrichment := NewEnrichmentService(settings, keys, enrichmentTimeout, log)

	return &Services{
		Memos:      memos,
		Settings:   settings,
		Keyring:    keys,
		Enrichment: enrichment,
		Capture:    NewCapturePipeline(memos, enrichment, log),
		Query:      NewQueryEngine(memos.Watch()),
	}
}

// Startup loads persisted state into the live streams.
func (s *Services) Startup(ctx context.Context) error {
	if err := s.Settings.Startup(ctx); err != nil {
		return err
	}
	return s.Memos.Startup(ctx)
}
