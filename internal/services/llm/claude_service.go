package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/vedam-app/vedam/internal/common"
)

// ClaudeService implements the TextGenerator interface using the Anthropic
// Claude API.
type ClaudeService struct {
	config    *common.ClaudeConfig
	logger    arbor.ILogger
	client    *anthropic.Client
	timeout   time.Duration
	maxTokens int
	limiter   *rate.Limiter
}

// NewClaudeService creates a new Claude generation service.
func NewClaudeService(llmConfig *common.LLMConfig, limiter *rate.Limiter, logger arbor.ILogger) (*ClaudeService, error) {
	claudeConfig := &llmConfig.Claude

	if claudeConfig.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set ANTHROPIC_API_KEY or llm.claude.api_key in config)")
	}

	if claudeConfig.Model == "" {
		claudeConfig.Model = "claude-sonnet-4-20250514"
	}

	timeout, err := time.ParseDuration(llmConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", llmConfig.Timeout, err)
	}

	maxTokens := claudeConfig.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	client := anthropic.NewClient(
		option.WithAPIKey(claudeConfig.APIKey),
	)

	service := &ClaudeService{
		config:    claudeConfig,
		logger:    logger,
		client:    &client,
		timeout:   timeout,
		maxTokens: maxTokens,
		limiter:   limiter,
	}

	logger.Info().
		Str("model", claudeConfig.Model).
		Dur("timeout", timeout).
		Int("max_tokens", maxTokens).
		Msg("Claude generation service initialized")

	return service, nil
}

// Generate produces a single-shot completion for the prompt, bounded by the
// configured timeout, with one retry on detected rate-limit errors.
func (s *ClaudeService) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()

	response, err := generateWithRetry(timeoutCtx, func(callCtx context.Context) (string, error) {
		return s.generateCompletion(callCtx, prompt)
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("prompt_length", len(prompt)).
			Msg("Claude generation failed")
		return "", fmt.Errorf("generation failed: %w", err)
	}

	s.logger.Debug().
		Int("prompt_length", len(prompt)).
		Int("response_length", len(response)).
		Dur("duration", time.Since(startTime)).
		Msg("Claude generation completed")

	return response, nil
}

// HealthCheck verifies the Claude service can handle requests with a minimal
// probe.
func (s *ClaudeService) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("Claude client is not initialized")
	}

	healthCheckCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	response, err := s.generateCompletion(healthCheckCtx, "ping")
	if err != nil {
		return fmt.Errorf("generation probe failed: %w", err)
	}
	if len(strings.TrimSpace(response)) == 0 {
		return fmt.Errorf("generation probe returned empty response")
	}

	return nil
}

// Provider returns the provider name for logging and the version endpoint.
func (s *ClaudeService) Provider() string {
	return "claude"
}

// Close releases resources.
func (s *ClaudeService) Close() error {
	s.logger.Info().Msg("Closing Claude generation service")
	s.client = nil
	return nil
}

// generateCompletion issues one Messages call and concatenates the text
// blocks of the response.
func (s *ClaudeService) generateCompletion(ctx context.Context, prompt string) (string, error) {
	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(s.config.Model),
		MaxTokens:   int64(s.maxTokens),
		Temperature: anthropic.Float(float64(s.config.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("message creation failed: %w", err)
	}

	var response strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from model")
	}

	return response.String(), nil
}
