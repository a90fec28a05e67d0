package retrieval

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/models"
)

// memoryChunkStorage serves chunks in insertion order, scoped by subject and
// user the way the real storage layer is.
type memoryChunkStorage struct {
	chunks []*models.Chunk
}

func (m *memoryChunkStorage) SaveChunks(ctx context.Context, chunks []*models.Chunk) error {
	m.chunks = append(m.chunks, chunks...)
	return nil
}

func (m *memoryChunkStorage) GetChunks(ctx context.Context, subjectID, userID string) ([]*models.Chunk, error) {
	var result []*models.Chunk
	for _, c := range m.chunks {
		if c.SubjectID == subjectID && c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *memoryChunkStorage) CountChunks(ctx context.Context, subjectID, userID string) (int, error) {
	chunks, _ := m.GetChunks(ctx, subjectID, userID)
	return len(chunks), nil
}

func (m *memoryChunkStorage) DeleteChunks(ctx context.Context, subjectID, userID, filename string) error {
	return nil
}

func chunk(subjectID, userID, content string, index int) *models.Chunk {
	return &models.Chunk{
		ID:           fmt.Sprintf("chk_%s_%d", subjectID, index),
		SubjectID:    subjectID,
		UserID:       userID,
		Filename:     "stored.txt",
		OriginalName: "notes.txt",
		ChunkIndex:   index,
		Content:      content,
	}
}

func TestRetriever_RanksByScore(t *testing.T) {
	storage := &memoryChunkStorage{}
	storage.SaveChunks(context.Background(), []*models.Chunk{
		chunk("sub_1", "user_1", "unrelated text about weather", 0),
		chunk("sub_1", "user_1", "mitochondria is the powerhouse of the cell", 1),
		chunk("sub_1", "user_1", "the powerhouse concept appears here", 2),
	})

	retriever := NewRetriever(storage, 5, arbor.NewLogger())

	results, err := retriever.Retrieve(context.Background(), "sub_1", "user_1", "mitochondria powerhouse")

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 1, results[0].ChunkIndex)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRetriever_TopKLimit(t *testing.T) {
	storage := &memoryChunkStorage{}
	for i := 0; i < 8; i++ {
		storage.SaveChunks(context.Background(), []*models.Chunk{
			chunk("sub_1", "user_1", "cell biology notes", i),
		})
	}

	retriever := NewRetriever(storage, 5, arbor.NewLogger())

	results, err := retriever.Retrieve(context.Background(), "sub_1", "user_1", "cell")

	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestRetriever_TenantIsolation(t *testing.T) {
	storage := &memoryChunkStorage{}
	storage.SaveChunks(context.Background(), []*models.Chunk{
		chunk("sub_1", "user_1", "cell biology for user one", 0),
		chunk("sub_1", "user_2", "cell biology for user two", 0),
		chunk("sub_2", "user_1", "cell biology other subject", 0),
	})

	retriever := NewRetriever(storage, 5, arbor.NewLogger())

	results, err := retriever.Retrieve(context.Background(), "sub_1", "user_1", "cell")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "cell biology for user one", results[0].Content)
}

func TestRetriever_StableTieBreak(t *testing.T) {
	// Equal scores keep storage order.
	storage := &memoryChunkStorage{}
	storage.SaveChunks(context.Background(), []*models.Chunk{
		chunk("sub_1", "user_1", "cell alpha", 0),
		chunk("sub_1", "user_1", "cell beta", 1),
		chunk("sub_1", "user_1", "cell gamma", 2),
	})

	retriever := NewRetriever(storage, 5, arbor.NewLogger())

	results, err := retriever.Retrieve(context.Background(), "sub_1", "user_1", "cell")

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 0, results[0].ChunkIndex)
	assert.Equal(t, 1, results[1].ChunkIndex)
	assert.Equal(t, 2, results[2].ChunkIndex)
}

func TestRetriever_EmptySubject(t *testing.T) {
	retriever := NewRetriever(&memoryChunkStorage{}, 5, arbor.NewLogger())

	results, err := retriever.Retrieve(context.Background(), "sub_1", "user_1", "anything")

	require.NoError(t, err)
	assert.Empty(t, results)
}
