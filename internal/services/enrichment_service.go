package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"linkeep/internal/llm/client"
	"linkeep/internal/models"
)

// Enrichment fallback literals. The app ships Korean-first (default
// language "ko"), matching the capture category literal.
const (
	fallbackTitle          = "임시 메모"
	generatedTitleFallback = "새 메모"
	fallbackCategory       = "기타"
	disabledContentNotice  = "AI 요약 비활성화 상태입니다.\n"
	missingSummaryContent  = "요약이 생성되지 않았습니다."

	enrichmentSystemPrompt = "당신은 메모 작성 도우미입니다. 주어진 정보를 바탕으로 간단하고 명확한 메모를 작성해주세요."
)

// GenerateInput carries the partial memo fields available at capture time.
// Nil means "not supplied"; supplied values always win over generated ones.
type GenerateInput struct {
	Title    *string
	Content  *string
	Link     *string
	Category *string
}

// EnrichmentService produces the (title, content, category) triple for one
// capture. It never fails: any provider-level problem (disabled provider,
// missing key, network error, timeout, unusable response) degrades to the
// deterministic local triple, so callers always get a usable result.
type EnrichmentService interface {
	Generate(ctx context.Context, in GenerateInput) models.EnrichmentResult
}

// textGenerator is the slice of the LLM client the service calls.
type textGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// apiKeyStore abstracts the OS keyring lookup.
type apiKeyStore interface {
	GetAPIKey(provider string) (string, error)
}

type enrichmentService struct {
	settings SettingsService
	keys     apiKeyStore
	timeout  time.Duration
	log      *zap.Logger

	// newClient is swappable in tests.
	newClient func(ctx context.Context, provider models.AIProvider, apiKey string) (textGenerator, error)
}

func NewEnrichmentService(settings SettingsService, keys *KeyringService, timeout time.Duration, log *zap.Logger) EnrichmentService {
	svc := &enrichmentService{
		settings:  settings,
		timeout:   timeout,
		log:       log,
		newClient: newProviderClient,
	}
	if keys != nil {
		svc.keys = keys
	}
	return svc
}

func newProviderClient(ctx context.Context, provider models.AIProvider, apiKey string) (textGenerator, error) {
	switch provider {
	case models.ProviderOpenAI:
		return client.NewOpenAIClient(ctx, apiKey, client.OpenAIModelOptions{})
	case models.ProviderGemini:
		return client.NewGeminiClient(ctx, apiKey, client.GeminiModelOptions{})
	case models.ProviderClaude:
		return client.NewClaudeClient(ctx, apiKey, client.ClaudeModelOptions{})
	default:
		return nil, fmt.Errorf("provider %s has no remote client", provider)
	}
}

func (s *enrichmentService) Generate(ctx context.Context, in GenerateInput) models.EnrichmentResult {
	provider := s.settings.AIProvider().Get()
	if !provider.Remote() {
		return s.generateFallback(in)
	}
	apiKey := s.resolveAPIKey(provider)
	if apiKey == "" {
		return s.generateFallback(in)
	}

	result, err := s.generateRemote(ctx, provider, apiKey, in)
	if err != nil {
		s.log.Warn("enrichment provider failed, using local fallback",
			zap.String("provider", provider.String()),
			zap.Error(err))
		return s.generateFallback(in)
	}
	return result
}

// resolveAPIKey picks the key for a remote call: the settings key wins, an
// OS keyring entry for the provider comes next, then the process env.
func (s *enrichmentService) resolveAPIKey(provider models.AIProvider) string {
	if key := strings.TrimSpace(s.settings.AIAPIKey().Get()); key != "" {
		return key
	}
	if s.keys != nil {
		if key, err := s.keys.GetAPIKey(provider.String()); err == nil && strings.TrimSpace(key) != "" {
			return strings.TrimSpace(key)
		}
	}
	return strings.TrimSpace(os.Getenv(envKeyVar(provider)))
}

func envKeyVar(provider models.AIProvider) string {
	switch provider {
	case models.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case models.ProviderGemini:
		return "GEMINI_API_KEY"
	case models.ProviderClaude:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

func (s *enrichmentService) generateRemote(ctx context.Context, provider models.AIProvider, apiKey string, in GenerateInput) (models.EnrichmentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	gen, err := s.newClient(ctx, provider, apiKey)
	if err != nil {
		return models.EnrichmentResult{}, fmt.Errorf("create %s client: %w", provider, err)
	}

	raw, err := gen.Generate(ctx, enrichmentSystemPrompt, buildEnrichmentPrompt(in))
	if err != nil {
		return models.EnrichmentResult{}, err
	}

	// Positional contract: line 0 is the title, line 1 the content, line 2
	// the category. Caller-supplied values take precedence over generated
	// ones; missing lines fall back per field.
	lines := nonBlankLines(raw)
	return models.EnrichmentResult{
		Title:    coalesce(in.Title, lineAt(lines, 0), in.Link, ptr(generatedTitleFallback)),
		Content:  coalesce(in.Content, lineAt(lines, 1), ptr(missingSummaryContent)),
		Category: coalesce(in.Category, lineAt(lines, 2), ptr(fallbackCategory)),
	}, nil
}

func buildEnrichmentPrompt(in GenerateInput) string {
	var b strings.Builder
	b.WriteString("다음 정보를 바탕으로 메모를 작성해주세요:\n")
	if in.Link != nil {
		fmt.Fprintf(&b, "링크: %s\n", *in.Link)
	}
	if in.Category != nil {
		fmt.Fprintf(&b, "카테고리: %s\n", *in.Category)
	}
	b.WriteString("\n제목, 내용, 카테고리를 생성해주세요. 각각 한 줄로 작성해주세요.")
	return b.String()
}

// generateFallback is the pure local provider: it derives the triple from
// the supplied fields alone and always yields non-empty values.
func (s *enrichmentService) generateFallback(in GenerateInput) models.EnrichmentResult {
	content := in.Content
	if content == nil {
		var b strings.Builder
		b.WriteString(disabledContentNotice)
		if in.Link != nil {
			fmt.Fprintf(&b, "링크: %s", *in.Link)
		}
		c := b.String()
		content = &c
	}
	return models.EnrichmentResult{
		Title:    coalesce(in.Title, in.Link, ptr(fallbackTitle)),
		Content:  *content,
		Category: coalesce(in.Category, ptr(fallbackCategory)),
	}
}

func nonBlankLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

func lineAt(lines []string, idx int) *string {
	if idx < 0 || idx >= len(lines) {
		return nil
	}
	return &lines[idx]
}

func coalesce(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func ptr(s string) *string { return &s }
