package llm

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/vedam-app/vedam/internal/common"
	"github.com/vedam-app/vedam/internal/interfaces"
)

// NewTextGenerator creates the generation service implementation selected by
// configuration. All providers share one client-side rate limiter sized by
// llm.requests_per_minute; 0 disables client-side limiting.
func NewTextGenerator(cfg *common.Config, logger arbor.ILogger) (interfaces.TextGenerator, error) {
	logger.Info().Str("provider", cfg.LLM.Provider).Msg("Initializing generation service")

	limiter := newRateLimiter(cfg.LLM.RequestsPerMinute)

	switch cfg.LLM.Provider {
	case "gemini":
		return NewGeminiService(&cfg.LLM, limiter, logger)

	case "claude":
		return NewClaudeService(&cfg.LLM, limiter, logger)

	default:
		return nil, fmt.Errorf("unsupported LLM provider '%s': must be 'gemini' or 'claude'", cfg.LLM.Provider)
	}
}

// newRateLimiter builds a limiter spacing requests evenly across the minute.
func newRateLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}
