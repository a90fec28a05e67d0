package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/common"
	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/models"
)

// Service implements interfaces.IngestService: extract, chunk, persist.
type Service struct {
	chunks    interfaces.ChunkStorage
	extractor *Extractor
	chunker   *Chunker
	logger    arbor.ILogger
}

// NewService creates the ingestion service.
func NewService(chunks interfaces.ChunkStorage, chunkSize int, logger arbor.ILogger) *Service {
	return &Service{
		chunks:    chunks,
		extractor: NewExtractor(logger),
		chunker:   NewChunker(chunkSize),
		logger:    logger,
	}
}

// IngestFile extracts text from one uploaded document, splits it into
// fixed-width chunks, and stores them under (subjectID, userID). Chunks whose
// trimmed content is empty are dropped; their indices are not reused, so the
// stored ChunkIndex values still reflect document position.
func (s *Service) IngestFile(ctx context.Context, subjectID, userID, filename, originalName string, data []byte) (int, error) {
	text, err := s.extractor.ExtractText(ctx, originalName, data)
	if err != nil {
		return 0, fmt.Errorf("failed to extract text from %s: %w", originalName, err)
	}

	pieces := s.chunker.Chunk(text)

	now := time.Now()
	chunks := make([]*models.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		if piece.Content == "" {
			continue
		}
		chunks = append(chunks, &models.Chunk{
			ID:           common.NewChunkID(),
			SubjectID:    subjectID,
			UserID:       userID,
			Filename:     filename,
			OriginalName: originalName,
			ChunkIndex:   piece.ChunkIndex,
			Content:      piece.Content,
			CreatedAt:    now,
		})
	}

	if len(chunks) == 0 {
		return 0, fmt.Errorf("no text content found in %s", originalName)
	}

	if err := s.chunks.SaveChunks(ctx, chunks); err != nil {
		return 0, fmt.Errorf("failed to save chunks: %w", err)
	}

	s.logger.Info().
		Str("subject_id", subjectID).
		Str("filename", filename).
		Int("chunks", len(chunks)).
		Msg("Document ingested")

	return len(chunks), nil
}

// DeleteFile removes all chunks stored for one document.
func (s *Service) DeleteFile(ctx context.Context, subjectID, userID, filename string) error {
	if err := s.chunks.DeleteChunks(ctx, subjectID, userID, filename); err != nil {
		return fmt.Errorf("failed to delete chunks for %s: %w", filename, err)
	}

	s.logger.Info().
		Str("subject_id", subjectID).
		Str("filename", filename).
		Msg("Document chunks deleted")

	return nil
}
