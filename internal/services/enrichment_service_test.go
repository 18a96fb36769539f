package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"linkeep/internal/models"
)

type textGeneratorMock struct {
	GenerateFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

func (m *textGeneratorMock) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, systemPrompt, userPrompt)
	}
	return "", nil
}

type keyStoreMock struct {
	GetAPIKeyFunc func(provider string) (string, error)
}

func (m *keyStoreMock) GetAPIKey(provider string) (string, error) {
	if m.GetAPIKeyFunc != nil {
		return m.GetAPIKeyFunc(provider)
	}
	return "", assert.AnError
}

func newTestEnrichment(t *testing.T, provider models.AIProvider, apiKey string, gen *textGeneratorMock) EnrichmentService {
	t.Helper()
	settings := NewSettingsService(&settingsRepositoryMock{})
	assert.NoError(t, settings.SetAIProvider(context.Background(), provider))
	assert.NoError(t, settings.SetAIAPIKey(context.Background(), apiKey))

	svc := &enrichmentService{
		settings: settings,
		keys:     &keyStoreMock{},
		timeout:  time.Second,
		log:      zap.NewNop(),
		newClient: func(ctx context.Context, provider models.AIProvider, apiKey string) (textGenerator, error) {
			return gen, nil
		},
	}
	return svc
}

func TestEnrichment_LocalProvider_LinkOnly(t *testing.T) {
	svc := newTestEnrichment(t, models.ProviderLocal, "", nil)

	link := "https://example.com/post"
	result := svc.Generate(context.Background(), GenerateInput{Link: &link})

	assert.Equal(t, "https://example.com/post", result.Title)
	assert.Equal(t, "AI 요약 비활성화 상태입니다.\n링크: https://example.com/post", result.Content)
	assert.Equal(t, "기타", result.Category)
}

func TestEnrichment_LocalProvider_NoFields(t *testing.T) {
	svc := newTestEnrichment(t, models.ProviderLocal, "", nil)

	result := svc.Generate(context.Background(), GenerateInput{})

	assert.Equal(t, "임시 메모", result.Title)
	assert.Equal(t, "AI 요약 비활성화 상태입니다.\n", result.Content)
	assert.Equal(t, "기타", result.Category)
}

func TestEnrichment_RemoteProviderWithoutKey_FallsBackToLocal(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	gen := &textGeneratorMock{
		GenerateFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			t.Fatal("no remote call expected without a key")
			return "", nil
		},
	}
	svc := newTestEnrichment(t, models.ProviderOpenAI, "", gen)

	result := svc.Generate(context.Background(), GenerateInput{})
	assert.Equal(t, "임시 메모", result.Title)
}

func TestEnrichment_RemoteParsesPositionalLines(t *testing.T) {
	gen := &textGeneratorMock{
		GenerateFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "Generated Title\n\nGenerated Content\nGenerated Category\n", nil
		},
	}
	svc := newTestEnrichment(t, models.ProviderOpenAI, "sk-test", gen)

	result := svc.Generate(context.Background(), GenerateInput{})

	assert.Equal(t, "Generated Title", result.Title)
	assert.Equal(t, "Generated Content", result.Content)
	assert.Equal(t, "Generated Category", result.Category)
}

func TestEnrichment_CallerFieldsWinOverGenerated(t *testing.T) {
	gen := &textGeneratorMock{
		GenerateFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "Generated Title\nGenerated Content\nGenerated Category", nil
		},
	}
	svc := newTestEnrichment(t, models.ProviderClaude, "sk-test", gen)

	title := "My Title"
	category := "reading"
	result := svc.Generate(context.Background(), GenerateInput{Title: &title, Category: &category})

	assert.Equal(t, "My Title", result.Title)
	assert.Equal(t, "Generated Content", result.Content)
	assert.Equal(t, "reading", result.Category)
}

func TestEnrichment_ShortResponse_FallsBackPerField(t *testing.T) {
	gen := &textGeneratorMock{
		GenerateFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "Only Title", nil
		},
	}
	svc := newTestEnrichment(t, models.ProviderGemini, "sk-test", gen)

	result := svc.Generate(context.Background(), GenerateInput{})

	assert.Equal(t, "Only Title", result.Title)
	assert.Equal(t, "요약이 생성되지 않았습니다.", result.Content)
	assert.Equal(t, "기타", result.Category)
}

func TestEnrichment_ProviderError_YieldsLocalTriple(t *testing.T) {
	gen := &textGeneratorMock{
		GenerateFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "", assert.AnError
		},
	}
	svc := newTestEnrichment(t, models.ProviderOpenAI, "sk-test", gen)

	link := "https://example.com"
	result := svc.Generate(context.Background(), GenerateInput{Link: &link})

	local := newTestEnrichment(t, models.ProviderLocal, "", nil).
		Generate(context.Background(), GenerateInput{Link: &link})
	assert.Equal(t, local, result)
}

func TestEnrichment_PromptCarriesLinkAndCategory(t *testing.T) {
	var gotSystem, gotUser string
	gen := &textGeneratorMock{
		GenerateFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			gotSystem, gotUser = systemPrompt, userPrompt
			return "t\nc\ncat", nil
		},
	}
	svc := newTestEnrichment(t, models.ProviderOpenAI, "sk-test", gen)

	link := "https://example.com"
	category := "공유"
	svc.Generate(context.Background(), GenerateInput{Link: &link, Category: &category})

	assert.Contains(t, gotSystem, "메모 작성 도우미")
	assert.Contains(t, gotUser, "링크: https://example.com")
	assert.Contains(t, gotUser, "카테고리: 공유")
}

func TestEnrichment_KeyPrecedence_SettingsOverKeyring(t *testing.T) {
	settings := NewSettingsService(&settingsRepositoryMock{})
	assert.NoError(t, settings.SetAIProvider(context.Background(), models.ProviderOpenAI))
	assert.NoError(t, settings.SetAIAPIKey(context.Background(), "settings-key"))

	var usedKey string
	svc := &enrichmentService{
		settings: settings,
		keys: &keyStoreMock{GetAPIKeyFunc: func(provider string) (string, error) {
			return "keyring-key", nil
		}},
		timeout: time.Second,
		log:     zap.NewNop(),
		newClient: func(ctx context.Context, provider models.AIProvider, apiKey string) (textGenerator, error) {
			usedKey = apiKey
			return &textGeneratorMock{GenerateFunc: func(ctx context.Context, s, u string) (string, error) {
				return "t\nc\ncat", nil
			}}, nil
		},
	}

	svc.Generate(context.Background(), GenerateInput{})
	assert.Equal(t, "settings-key", usedKey)
}

func TestEnrichment_KeyringUsedWhenSettingsKeyBlank(t *testing.T) {
	settings := NewSettingsService(&settingsRepositoryMock{})
	assert.NoError(t, settings.SetAIProvider(context.Background(), models.ProviderClaude))

	var usedKey string
	svc := &enrichmentService{
		settings: settings,
		keys: &keyStoreMock{GetAPIKeyFunc: func(provider string) (string, error) {
			assert.Equal(t, "claude", provider)
			return "keyring-key", nil
		}},
		timeout: time.Second,
		log:     zap.NewNop(),
		newClient: func(ctx context.Context, provider models.AIProvider, apiKey string) (textGenerator, error) {
			usedKey = apiKey
			return &textGeneratorMock{GenerateFunc: func(ctx context.Context, s, u string) (string, error) {
				return "t\nc\ncat", nil
			}}, nil
		},
	}

	svc.Generate(context.Background(), GenerateInput{})
	assert.Equal(t, "keyring-key", usedKey)
}
