package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/models"
)

// ChunkStorage implements the ChunkStorage interface for Badger
type ChunkStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewChunkStorage creates a new ChunkStorage instance
func NewChunkStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ChunkStorage {
	return &ChunkStorage{
		db:     db,
		logger: logger,
	}
}

// SaveChunks stores a batch of chunks produced from one document.
func (s *ChunkStorage) SaveChunks(ctx context.Context, chunks []*models.Chunk) error {
	for _, chunk := range chunks {
		if chunk.ID == "" {
			return fmt.Errorf("chunk ID is required")
		}
		if err := s.db.Store().Upsert(chunk.ID, chunk); err != nil {
			return fmt.Errorf("failed to save chunk %s: %w", chunk.ID, err)
		}
	}
	return nil
}

// GetChunks returns every chunk for (subjectID, userID), ordered ascending by
// (Filename, ChunkIndex). Retrieval depends on this ordering as its
// deterministic tie-break, so the sort lives here rather than in callers.
func (s *ChunkStorage) GetChunks(ctx context.Context, subjectID, userID string) ([]*models.Chunk, error) {
	var chunks []models.Chunk
	query := badgerhold.Where("SubjectID").Eq(subjectID).And("UserID").Eq(userID).
		SortBy("Filename", "ChunkIndex")
	if err := s.db.Store().Find(&chunks, query); err != nil {
		return nil, fmt.Errorf("failed to find chunks: %w", err)
	}

	result := make([]*models.Chunk, len(chunks))
	for i := range chunks {
		result[i] = &chunks[i]
	}
	return result, nil
}

// CountChunks reports how many chunks exist for (subjectID, userID).
func (s *ChunkStorage) CountChunks(ctx context.Context, subjectID, userID string) (int, error) {
	count, err := s.db.Store().Count(&models.Chunk{}, badgerhold.Where("SubjectID").Eq(subjectID).And("UserID").Eq(userID))
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return int(count), nil
}

// DeleteChunks removes chunks for a subject. A non-empty filename restricts
// deletion to that document's chunks.
func (s *ChunkStorage) DeleteChunks(ctx context.Context, subjectID, userID, filename string) error {
	query := badgerhold.Where("SubjectID").Eq(subjectID).And("UserID").Eq(userID)
	if filename != "" {
		query = query.And("Filename").Eq(filename)
	}

	if err := s.db.Store().DeleteMatching(&models.Chunk{}, query); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}

	s.logger.Debug().
		Str("subject_id", subjectID).
		Str("filename", filename).
		Msg("Chunks deleted")

	return nil
}
