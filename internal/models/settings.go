package models

import "strings"

// ViewMode selects how the memo collection is rendered.
type ViewMode int

const (
	ViewModeList ViewMode = iota
	ViewModeCard
)

// DefaultViewMode applies when no value has been persisted yet.
const DefaultViewMode = ViewModeCard

func (m ViewMode) String() string {
	switch m {
	case ViewModeList:
		return "list"
	default:
		return "card"
	}
}

// ViewModeFromOrdinal maps a persisted ordinal back to a ViewMode.
// Out-of-range values fall back to the default.
func ViewModeFromOrdinal(n int) ViewMode {
	if n < int(ViewModeList) || n > int(ViewModeCard) {
		return DefaultViewMode
	}
	return ViewMode(n)
}

// ThemeMode selects the UI theme.
type ThemeMode int

const (
	ThemeModeSystem ThemeMode = iota
	ThemeModeLight
	ThemeModeDark
)

const DefaultThemeMode = ThemeModeSystem

func (m ThemeMode) String() string {
	switch m {
	case ThemeModeLight:
		return "light"
	case ThemeModeDark:
		return "dark"
	default:
		return "system"
	}
}

func ThemeModeFromOrdinal(n int) ThemeMode {
	if n < int(ThemeModeSystem) || n > int(ThemeModeDark) {
		return DefaultThemeMode
	}
	return ThemeMode(n)
}

// AIProvider selects which enrichment backend generates memo content.
type AIProvider int

const (
	ProviderLocal AIProvider = iota
	ProviderOpenAI
	ProviderGemini
	ProviderClaude
)

const DefaultAIProvider = ProviderLocal

func (p AIProvider) String() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderGemini:
		return "gemini"
	case ProviderClaude:
		return "claude"
	default:
		return "local"
	}
}

// Remote reports whether the provider performs a network call.
func (p AIProvider) Remote() bool {
	return p == ProviderOpenAI || p == ProviderGemini || p == ProviderClaude
}

func AIProviderFromOrdinal(n int) AIProvider {
	if n < int(ProviderLocal) || n > int(ProviderClaude) {
		return DefaultAIProvider
	}
	return AIProvider(n)
}

// ParseAIProvider resolves a provider by name, e.g. from a CLI argument.
func ParseAIProvider(name string) (AIProvider, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "local":
		return ProviderLocal, true
	case "openai":
		return ProviderOpenAI, true
	case "gemini":
		return ProviderGemini, true
	case "claude", "anthropic":
		return ProviderClaude, true
	default:
		return DefaultAIProvider, false
	}
}

// DefaultLanguage is the language used before the user picks one.
const DefaultLanguage = "ko"

// Setting is one persisted key/value pair of the settings record.
// Enum-valued keys store their int ordinal as text.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}

func (Setting) TableName() string { return "settings" }

// Persisted settings keys.
const (
	SettingKeyViewMode   = "view_mode"
	SettingKeyThemeMode  = "theme_mode"
	SettingKeyLanguage   = "language"
	SettingKeyAIProvider = "ai_provider"
	SettingKeyAIAPIKey   = "ai_api_key"
)
