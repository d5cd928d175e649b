// Package ai provides factory functions for creating and validating AI
// service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/opencourse-labs/tutor-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/opencourse-labs/tutor-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/opencourse-labs/tutor-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/opencourse-labs/tutor-cli/internal/adapters/driven/llm/openai"
	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
	"github.com/opencourse-labs/tutor-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService creates an embedding service and validates
// connectivity. Returns nil when the provider is not configured; returns an
// error with guidance when the service exists but is unreachable.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Check the [embedding] section of your config",
			domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Check the [embedding] section of your config",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateAnswerService creates an answer service and validates
// connectivity. Returns nil when the provider is not configured; returns an
// error with guidance when the service exists but is unreachable.
func CreateAndValidateAnswerService(settings *domain.AnswerSettings) (driven.AnswerService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateAnswerService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Check the [answer] section of your config",
			domain.ErrAnswerUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Check the [answer] section of your config",
			domain.ErrAnswerUnavailable, err)
	}

	return svc, nil
}

// CreateEmbeddingService creates the appropriate embedding service based on
// settings. Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateAnswerService creates the appropriate answer service based on
// settings. Returns nil if the provider is not configured.
func CreateAnswerService(settings *domain.AnswerSettings) (driven.AnswerService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewService(ollamallm.Config{
			BaseURL:     settings.BaseURL,
			Model:       settings.Model,
			MaxTokens:   settings.MaxTokens,
			Temperature: settings.Temperature,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewService(openaillm.Config{
			APIKey:      settings.APIKey,
			BaseURL:     settings.BaseURL,
			Model:       settings.Model,
			MaxTokens:   settings.MaxTokens,
			Temperature: settings.Temperature,
		})

	default:
		return nil, fmt.Errorf("unsupported answer provider: %s", settings.Provider)
	}
}
