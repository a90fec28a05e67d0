package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/models"
)

// SubjectStorage implements the SubjectStorage interface for Badger
type SubjectStorage struct {
	db     *BadgerDB
	chunks interfaces.ChunkStorage
	logger arbor.ILogger
}

// NewSubjectStorage creates a new SubjectStorage instance. Chunk storage is
// needed for the cascade when a subject is deleted.
func NewSubjectStorage(db *BadgerDB, chunks interfaces.ChunkStorage, logger arbor.ILogger) interfaces.SubjectStorage {
	return &SubjectStorage{
		db:     db,
		chunks: chunks,
		logger: logger,
	}
}

// SaveSubject creates or updates a subject.
func (s *SubjectStorage) SaveSubject(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		return fmt.Errorf("subject ID is required")
	}

	now := time.Now()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	subject.UpdatedAt = now

	if err := s.db.Store().Upsert(subject.ID, subject); err != nil {
		return fmt.Errorf("failed to save subject: %w", err)
	}
	return nil
}

// GetSubject fetches one subject scoped to its owner. A subject belonging to
// a different user is reported as not found, never leaked.
func (s *SubjectStorage) GetSubject(ctx context.Context, id, userID string) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.Store().Get(id, &subject); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("subject not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	if subject.UserID != userID {
		return nil, fmt.Errorf("subject not found: %s", id)
	}

	return &subject, nil
}

// ListSubjects returns the user's subjects sorted by creation time.
func (s *SubjectStorage) ListSubjects(ctx context.Context, userID string) ([]*models.Subject, error) {
	var subjects []models.Subject
	query := badgerhold.Where("UserID").Eq(userID).SortBy("CreatedAt")
	if err := s.db.Store().Find(&subjects, query); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	result := make([]*models.Subject, len(subjects))
	for i := range subjects {
		result[i] = &subjects[i]
	}
	return result, nil
}

// DeleteSubject removes a subject and cascades to its chunks.
func (s *SubjectStorage) DeleteSubject(ctx context.Context, id, userID string) error {
	subject, err := s.GetSubject(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.chunks.DeleteChunks(ctx, subject.ID, userID, ""); err != nil {
		return fmt.Errorf("failed to delete subject chunks: %w", err)
	}

	if err := s.db.Store().Delete(subject.ID, &models.Subject{}); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	s.logger.Info().Str("subject_id", id).Msg("Subject deleted")
	return nil
}
