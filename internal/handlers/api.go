package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/common"
	"github.com/vedam-app/vedam/internal/interfaces"
)

// APIHandler handles system-level API requests
type APIHandler struct {
	generator interfaces.TextGenerator
	logger    arbor.ILogger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(generator interfaces.TextGenerator, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		generator: generator,
		logger:    logger,
	}
}

// HealthHandler handles GET /api/health requests. The generation service is
// probed so a dead API key shows up here instead of on the first chat.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if err := h.generator.HealthCheck(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("Generation service health check failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"healthy":  false,
			"provider": h.generator.Provider(),
			"error":    err.Error(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"healthy":  true,
		"provider": h.generator.Provider(),
	})
}

// VersionHandler handles GET /api/version requests
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.Build,
		"commit":  common.GitCommit,
	})
}

// NotFoundHandler handles unmatched API routes
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}
