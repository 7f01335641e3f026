// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"errors"
	"fmt"
	"os"

	ollamaembed "github.com/docchat-labs/docchat-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/docchat-labs/docchat-cli/internal/adapters/driven/embedding/openai"
	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/config/file"
	groqllm "github.com/docchat-labs/docchat-cli/internal/adapters/driven/llm/groq"
	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

// CreateEmbeddingService creates the embedding service the config
// names. API keys are resolved from the configured environment
// variable, never stored in the config file.
func CreateEmbeddingService(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "ollama", "":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil

	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  os.Getenv(cfg.APIKeyEnv),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

// CreateLLMService creates the chat model service the config names.
// Returns nil and no error when the API key environment variable is
// unset; callers treat a nil service as "not configured" and fail
// with domain.ErrMissingAPIKey only when a completion is requested.
func CreateLLMService(cfg file.LLMConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case "groq", "":
		svc, err := groqllm.NewLLMService(groqllm.Config{
			APIKey:  os.Getenv(cfg.APIKeyEnv),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			if errors.Is(err, domain.ErrMissingAPIKey) {
				return nil, nil
			}
			return nil, err
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
