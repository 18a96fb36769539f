package client

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// Default model per provider. The OpenAI default matches the wire contract
// the rest of the system was built against.
const (
	DefaultOpenAIModel = "gpt-3.5-turbo"
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultClaudeModel = "claude-3-5-haiku-latest"

	defaultClaudeMaxTokens = 1024
	defaultTemperature     = float32(0.7)
)

// chatModel is the slice of the eino chat-model surface the client needs.
type chatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// LLMClient wraps a provider-specific eino chat model behind one Generate call.
type LLMClient struct {
	chat        chatModel
	temperature float32
}

type OpenAIModelOptions struct {
	Model string
}

type GeminiModelOptions struct {
	Model string
}

type ClaudeModelOptions struct {
	Model     string
	MaxTokens int
}

func NewOpenAIClient(ctx context.Context, apiKey string, opts OpenAIModelOptions) (*LLMClient, error) {
	modelName := opts.Model
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}
	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey: apiKey,
		Model:  modelName,
	})
	if err != nil {
		return nil, err
	}
	return newClient(chat), nil
}

func NewGeminiClient(ctx context.Context, apiKey string, opts GeminiModelOptions) (*LLMClient, error) {
	modelName := opts.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	chat, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: genaiClient,
		Model:  modelName,
	})
	if err != nil {
		return nil, err
	}
	return newClient(chat), nil
}

func NewClaudeClient(ctx context.Context, apiKey string, opts ClaudeModelOptions) (*LLMClient, error) {
	modelName := opts.Model
	if modelName == "" {
		modelName = DefaultClaudeModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultClaudeMaxTokens
	}
	chat, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:    apiKey,
		Model:     modelName,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, err
	}
	return newClient(chat), nil
}

func newClient(chat chatModel) *LLMClient {
	return &LLMClient{chat: chat, temperature: defaultTemperature}
}

// Generate sends one system+user exchange and returns the assistant text.
// An empty or whitespace-only completion is an error so callers can treat it
// like any other provider failure.
func (c *LLMClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := make([]*schema.Message, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, schema.SystemMessage(systemPrompt))
	}
	messages = append(messages, schema.UserMessage(userPrompt))

	resp, err := c.chat.Generate(ctx, messages, model.WithTemperature(c.temperature))
	if err != nil {
		return "", err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", errors.New("empty response from model")
	}
	return resp.Content, nil
}
