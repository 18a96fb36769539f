package services

import (
	"context"
	"strconv"
	"sync"

	"linkeep/internal/events"
	"linkeep/internal/models"
	"linkeep/internal/repositories"
)

// SettingsService owns the single per-installation settings record. Each
// field is exposed as its own live stream; setters persist the value and
// push it to subscribers before returning. Writes are last-writer-wins with
// no cross-field atomicity, which is fine since the fields are independent.
type SettingsService interface {
	Startup(ctx context.Context) error

	ViewMode() *events.State[models.ViewMode]
	ThemeMode() *events.State[models.ThemeMode]
	Language() *events.State[string]
	AIProvider() *events.State[models.AIProvider]
	AIAPIKey() *events.State[string]

	SetViewMode(ctx context.Context, mode models.ViewMode) error
	SetThemeMode(ctx context.Context, mode models.ThemeMode) error
	SetLanguage(ctx context.Context, lang string) error
	SetAIProvider(ctx context.Context, provider models.AIProvider) error
	SetAIAPIKey(ctx context.Context, key string) error
}

type settingsService struct {
	repo repositories.SettingsRepository

	mu sync.Mutex // serializes writes; streams handle their own read safety

	viewMode   *events.State[models.ViewMode]
	themeMode  *events.State[models.ThemeMode]
	language   *events.State[string]
	aiProvider *events.State[models.AIProvider]
	aiAPIKey   *events.State[string]
}

func NewSettingsService(repo repositories.SettingsRepository) SettingsService {
	return &settingsService{
		repo:       repo,
		viewMode:   events.NewState(models.DefaultViewMode),
		themeMode:  events.NewState(models.DefaultThemeMode),
		language:   events.NewState(models.DefaultLanguage),
		aiProvider: events.NewState(models.DefaultAIProvider),
		aiAPIKey:   events.NewState(""),
	}
}

// Startup loads persisted values over the defaults. Keys written by newer
// versions than this build are ignored; missing keys keep their default.
func (s *settingsService) Startup(ctx context.Context) error {
	stored, err := s.repo.All(ctx)
	if err != nil {
		return err
	}

	if raw, ok := stored[models.SettingKeyViewMode]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			s.viewMode.Set(models.ViewModeFromOrdinal(n))
		}
	}
	if raw, ok := stored[models.SettingKeyThemeMode]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			s.themeMode.Set(models.ThemeModeFromOrdinal(n))
		}
	}
	if raw, ok := stored[models.SettingKeyLanguage]; ok && raw != "" {
		s.language.Set(raw)
	}
	if raw, ok := stored[models.SettingKeyAIProvider]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			s.aiProvider.Set(models.AIProviderFromOrdinal(n))
		}
	}
	if raw, ok := stored[models.SettingKeyAIAPIKey]; ok {
		s.aiAPIKey.Set(raw)
	}
	return nil
}

func (s *settingsService) ViewMode() *events.State[models.ViewMode]     { return s.viewMode }
func (s *settingsService) ThemeMode() *events.State[models.ThemeMode]   { return s.themeMode }
func (s *settingsService) Language() *events.State[string]              { return s.language }
func (s *settingsService) AIProvider() *events.State[models.AIProvider] { return s.aiProvider }
func (s *settingsService) AIAPIKey() *events.State[string]              { return s.aiAPIKey }

func (s *settingsService) SetViewMode(ctx context.Context, mode models.ViewMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Set(ctx, models.SettingKeyViewMode, strconv.Itoa(int(mode))); err != nil {
		return err
	}
	s.viewMode.Set(mode)
	return nil
}

func (s *settingsService) SetThemeMode(ctx context.Context, mode models.ThemeMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Set(ctx, models.SettingKeyThemeMode, strconv.Itoa(int(mode))); err != nil {
		return err
	}
	s.themeMode.Set(mode)
	return nil
}

func (s *settingsService) SetLanguage(ctx context.Context, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Set(ctx, models.SettingKeyLanguage, lang); err != nil {
		return err
	}
	s.language.Set(lang)
	return nil
}

func (s *settingsService) SetAIProvider(ctx context.Context, provider models.AIProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Set(ctx, models.SettingKeyAIProvider, strconv.Itoa(int(provider))); err != nil {
		return err
	}
	s.aiProvider.Set(provider)
	return nil
}

func (s *settingsService) SetAIAPIKey(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Set(ctx, models.SettingKeyAIAPIKey, key); err != nil {
		return err
	}
	s.aiAPIKey.Set(key)
	return nil
}
