package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/models"
)

// DocumentHandler handles note-document upload and management requests
type DocumentHandler struct {
	ingest         interfaces.IngestService
	subjects       interfaces.SubjectStorage
	maxUploadBytes int64
	logger         arbor.ILogger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(ingest interfaces.IngestService, subjects interfaces.SubjectStorage, maxUploadBytes int64, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		ingest:         ingest,
		subjects:       subjects,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadHandler handles POST /api/subjects/{id}/documents requests. The
// upload is a multipart form with a single "file" field. The stored filename
// is a generated unique name; the original name is kept for display and
// citations.
func (h *DocumentHandler) UploadHandler(w http.ResponseWriter, r *http.Request, subjectID string) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	subject, err := h.subjects.GetSubject(r.Context(), subjectID, userID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Subject not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to parse upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "A 'file' form field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	originalName := header.Filename
	filename := uuid.New().String() + filepath.Ext(originalName)

	chunkCount, err := h.ingest.IngestFile(r.Context(), subject.ID, userID, filename, originalName, data)
	if err != nil {
		h.logger.Error().Err(err).Str("file", originalName).Msg("Document ingestion failed")
		WriteError(w, http.StatusUnprocessableEntity, "Failed to process document: "+err.Error())
		return
	}

	subject.Notes = append(subject.Notes, models.NoteFile{
		Filename:     filename,
		OriginalName: originalName,
		UploadedAt:   time.Now(),
	})
	if err := h.subjects.SaveSubject(r.Context(), subject); err != nil {
		h.logger.Error().Err(err).Str("subject_id", subject.ID).Msg("Failed to record note file")
		WriteError(w, http.StatusInternalServerError, "Failed to record uploaded document")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"filename":     filename,
		"originalName": originalName,
		"chunks":       chunkCount,
	})
}

// ListHandler handles GET /api/subjects/{id}/documents requests
func (h *DocumentHandler) ListHandler(w http.ResponseWriter, r *http.Request, subjectID string) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	subject, err := h.subjects.GetSubject(r.Context(), subjectID, userID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Subject not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"documents": subject.Notes,
	})
}

// DeleteHandler handles DELETE /api/subjects/{id}/documents/{filename}
// requests. Removes the document's chunks and its note-file record.
func (h *DocumentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request, subjectID, filename string) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	subject, err := h.subjects.GetSubject(r.Context(), subjectID, userID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Subject not found")
		return
	}

	found := false
	remaining := make([]models.NoteFile, 0, len(subject.Notes))
	for _, note := range subject.Notes {
		if note.Filename == filename {
			found = true
			continue
		}
		remaining = append(remaining, note)
	}
	if !found {
		WriteError(w, http.StatusNotFound, "Document not found")
		return
	}

	if err := h.ingest.DeleteFile(r.Context(), subject.ID, userID, filename); err != nil {
		h.logger.Error().Err(err).Str("file", filename).Msg("Failed to delete document chunks")
		WriteError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	subject.Notes = remaining
	if err := h.subjects.SaveSubject(r.Context(), subject); err != nil {
		h.logger.Error().Err(err).Str("subject_id", subject.ID).Msg("Failed to update note files")
		WriteError(w, http.StatusInternalServerError, "Failed to update subject")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "deleted",
		"filename": filename,
	})
}
