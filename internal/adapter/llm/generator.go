package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// generationTemperature keeps the model close to the requested JSON shape.
const generationTemperature = 0.2

// Generator adapts a langchaingo model to the domain.TextGenerator port.
type Generator struct {
	model    llms.Model
	provider string
}

// NewGeminiGenerator creates a TextGenerator backed by the Google AI (Gemini)
// API. The API key is passed through without validation: a missing or bad
// credential surfaces on the first Generate call, not at startup.
func NewGeminiGenerator(ctx context.Context, llmCfg config.LLMConfig) (domain.TextGenerator, error) {
	if llmCfg.Model == "" {
		return nil, fmt.Errorf("gemini model name cannot be empty")
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(llmCfg.APIKey),
		googleai.WithDefaultModel(llmCfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	logger.Get().Info("Initialized Gemini text generator", zap.String("model", llmCfg.Model))
	return &Generator{model: model, provider: "googleai"}, nil
}

// NewOllamaGenerator creates a TextGenerator backed by a local Ollama server.
func NewOllamaGenerator(llmCfg config.LLMConfig) (domain.TextGenerator, error) {
	if llmCfg.ServerURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if llmCfg.Model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	model, err := ollama.New(
		ollama.WithServerURL(llmCfg.ServerURL),
		ollama.WithModel(llmCfg.Model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	logger.Get().Info("Initialized Ollama text generator",
		zap.String("server_url", llmCfg.ServerURL),
		zap.String("model", llmCfg.Model))
	return &Generator{model: model, provider: "ollama"}, nil
}

// NewGenerator builds the TextGenerator named by the config's provider.
func NewGenerator(ctx context.Context, llmCfg config.LLMConfig) (domain.TextGenerator, error) {
	switch llmCfg.Provider {
	case "googleai":
		return NewGeminiGenerator(ctx, llmCfg)
	case "ollama":
		return NewOllamaGenerator(llmCfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmCfg.Provider)
	}
}

// Generate implements domain.TextGenerator. The model's reply is returned
// verbatim; extracting JSON from it is the service's job.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithTemperature(generationTemperature))
	if err != nil {
		logger.Get().Error("Model call failed",
			zap.String("provider", g.provider),
			zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}

var _ domain.TextGenerator = (*Generator)(nil)
