package interfaces

import (
	"context"

	"github.com/vedam-app/vedam/internal/models"
)

// ChunkStorage - interface for document chunk persistence
type ChunkStorage interface {
	// SaveChunks stores a batch of chunks produced from one document.
	SaveChunks(ctx context.Context, chunks []*models.Chunk) error

	// GetChunks returns every chunk scoped to (subjectID, userID), ordered
	// ascending by (Filename, ChunkIndex). Callers rely on this ordering as
	// the deterministic tie-break for equal retrieval scores.
	GetChunks(ctx context.Context, subjectID, userID string) ([]*models.Chunk, error)

	// CountChunks reports how many chunks exist for (subjectID, userID).
	CountChunks(ctx context.Context, subjectID, userID string) (int, error)

	// DeleteChunks removes chunks for a subject. When filename is non-empty
	// only that document's chunks are removed.
	DeleteChunks(ctx context.Context, subjectID, userID, filename string) error
}

// SubjectStorage - interface for subject persistence
type SubjectStorage interface {
	SaveSubject(ctx context.Context, subject *models.Subject) error
	GetSubject(ctx context.Context, id, userID string) (*models.Subject, error)
	ListSubjects(ctx context.Context, userID string) ([]*models.Subject, error)
	DeleteSubject(ctx context.Context, id, userID string) error
}

// StorageManager provides access to all storage interfaces and owns the
// underlying database connection.
type StorageManager interface {
	ChunkStorage() ChunkStorage
	SubjectStorage() SubjectStorage
	Close() error
}
