// Package llm wraps the reasoning step: a langchaingo chat model invoked with
// the conversation and the action catalog, returning either final text or
// structured action requests.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/skillmorph/assistant-go/internal/config"
	"github.com/skillmorph/assistant-go/internal/metrics"
	"github.com/skillmorph/assistant-go/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Model wraps a langchaingo LLM used as the assistant's reasoning step.
type Model struct {
	llm         llms.Model
	modelName   string
	temperature float64
	collector   *metrics.Collector
}

// NewModel creates an LLM model based on configuration. The collector may
// be nil.
func NewModel(ctx context.Context, cfg config.Config, collector *metrics.Collector) (*Model, error) {
	var model llms.Model
	var err error

	switch cfg.LLMProvider {
	case config.ProviderGoogleAI:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("Gemini API key required")
		}
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create googleai model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return &Model{
		llm:         model,
		modelName:   cfg.LLMModel,
		temperature: cfg.LLMTemperature,
		collector:   collector,
	}, nil
}

// Model returns the LLM model name.
func (m *Model) Model() string {
	return m.modelName
}

// Chat sends the full conversation plus the declared tools to the model and
// returns its reply as one assistant message: content, zero or more action
// requests, or both. The tools slice must stay the same across calls within
// one conversation.
func (m *Model) Chat(ctx context.Context, msgs []models.Message, tools []llms.Tool) (models.Message, error) {
	lcMessages, err := ToLangChain(msgs)
	if err != nil {
		return models.Message{}, fmt.Errorf("convert messages: %w", err)
	}

	start := time.Now()
	response, err := m.llm.GenerateContent(ctx, lcMessages,
		llms.WithTools(tools),
		llms.WithTemperature(m.temperature),
	)
	if err != nil {
		return models.Message{}, fmt.Errorf("generate content: %w", wrapFatalError(err))
	}

	if len(response.Choices) == 0 {
		return models.Message{}, fmt.Errorf("no response choices")
	}

	reply := assistantFromChoice(response.Choices[0])

	if m.collector != nil {
		m.collector.RecordLLMUsage(metrics.OpLLMChat, time.Since(start),
			estimateInputTokens(msgs), estimateTokens(reply.Content))
	}

	return reply, nil
}

// estimateTokens approximates token count from text length. Close enough for
// usage statistics; providers do not consistently report real counts.
func estimateTokens(text string) int64 {
	return int64(len(text) / 4)
}

func estimateInputTokens(msgs []models.Message) int64 {
	var total int64
	for _, msg := range msgs {
		total += estimateTokens(msg.Content)
	}
	return total
}
