package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/vedam-app/vedam/internal/common"
)

// GeminiService implements the TextGenerator interface using the Google
// Gemini API. All structure in generated output is enforced by the prompt;
// the service itself is a plain single-shot completion call.
type GeminiService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// NewGeminiService creates a new Gemini generation service.
//
// Initialization resolves the API key from configuration (the GEMINI_API_KEY
// environment variable overrides the config file), applies the default model
// when none is configured, and parses the per-call timeout.
func NewGeminiService(llmConfig *common.LLMConfig, limiter *rate.Limiter, logger arbor.ILogger) (*GeminiService, error) {
	geminiConfig := &llmConfig.Gemini

	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or llm.gemini.api_key in config)")
	}

	if geminiConfig.Model == "" {
		geminiConfig.Model = "gemini-2.5-flash"
	}

	timeout, err := time.ParseDuration(llmConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", llmConfig.Timeout, err)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config:  geminiConfig,
		logger:  logger,
		client:  client,
		timeout: timeout,
		limiter: limiter,
	}

	logger.Info().
		Str("model", geminiConfig.Model).
		Dur("timeout", timeout).
		Msg("Gemini generation service initialized")

	return service, nil
}

// Generate produces a single-shot completion for the prompt. The call is
// bounded by the configured timeout, passes through the shared rate limiter,
// and retries once on a detected rate-limit error.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
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
			Msg("Gemini generation failed")
		return "", fmt.Errorf("generation failed: %w", err)
	}

	s.logger.Debug().
		Int("prompt_length", len(prompt)).
		Int("response_length", len(response)).
		Dur("duration", time.Since(startTime)).
		Msg("Gemini generation completed")

	return response, nil
}

// HealthCheck verifies the Gemini service can handle requests by exercising
// the model with a minimal probe.
func (s *GeminiService) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("genai client is not initialized")
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
func (s *GeminiService) Provider() string {
	return "gemini"
}

// Close releases resources. The genai client needs no explicit cleanup
// beyond dropping the reference.
func (s *GeminiService) Close() error {
	s.logger.Info().Msg("Closing Gemini generation service")
	s.client = nil
	return nil
}

// generateCompletion issues one GenerateContent call and extracts the first
// candidate's text.
func (s *GeminiService) generateCompletion(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.config.Temperature),
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := s.client.Models.GenerateContent(ctx, s.config.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}

	var response strings.Builder
	if resp != nil && len(resp.Candidates) > 0 {
		for _, candidate := range resp.Candidates {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
			if response.Len() > 0 {
				break
			}
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from model")
	}

	return response.String(), nil
}
