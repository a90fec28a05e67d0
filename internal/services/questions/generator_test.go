package questions

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/models"
)

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

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) HealthCheck(ctx context.Context) error { return nil }
func (s *stubGenerator) Provider() string                      { return "stub" }
func (s *stubGenerator) Close() error                          { return nil }

func storageWithChunks(n int) *memoryChunkStorage {
	storage := &memoryChunkStorage{}
	for i := 0; i < n; i++ {
		storage.chunks = append(storage.chunks, &models.Chunk{
			ID:           fmt.Sprintf("chk_%d", i),
			SubjectID:    "sub_1",
			UserID:       "user_1",
			Filename:     "stored.txt",
			OriginalName: "notes.txt",
			ChunkIndex:   i,
			Content:      fmt.Sprintf("section %d content", i),
		})
	}
	return storage
}

func mcqJSON(count int) string {
	out := `{"questions": [`
	for i := 0; i < count; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"question": "q%d", "options": ["A) a", "B) b", "C) c", "D) d"], "correct": "A", "explanation": "e", "citation": "notes.txt"}`, i)
	}
	return out + `]}`
}

func shortAnswerJSON(count int) string {
	out := `{"questions": [`
	for i := 0; i < count; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"question": "q%d", "answer": "detailed answer", "citation": "notes.txt"}`, i)
	}
	return out + `]}`
}

func TestGenerateMCQs_Success(t *testing.T) {
	stub := &stubGenerator{response: mcqJSON(5)}
	generator := NewGenerator(storageWithChunks(3), stub, 10, arbor.NewLogger())

	set, err := generator.GenerateMCQs(context.Background(), "sub_1", "user_1", "Biology")

	require.NoError(t, err)
	require.Len(t, set.Questions, 5)
	assert.Equal(t, "q0", set.Questions[0].Question)
	assert.Len(t, set.Questions[0].Options, 4)
	assert.Equal(t, "A", set.Questions[0].Correct)
}

func TestGenerateMCQs_FencedOutput(t *testing.T) {
	stub := &stubGenerator{response: "Here you go:\n```json\n" + mcqJSON(5) + "\n```"}
	generator := NewGenerator(storageWithChunks(1), stub, 10, arbor.NewLogger())

	set, err := generator.GenerateMCQs(context.Background(), "sub_1", "user_1", "Biology")

	require.NoError(t, err)
	assert.Len(t, set.Questions, 5)
}

func TestGenerateMCQs_NoDocuments(t *testing.T) {
	stub := &stubGenerator{response: mcqJSON(5)}
	generator := NewGenerator(&memoryChunkStorage{}, stub, 10, arbor.NewLogger())

	_, err := generator.GenerateMCQs(context.Background(), "sub_1", "user_1", "Biology")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoDocuments))
	assert.Empty(t, stub.prompts, "generation must not be invoked for an empty subject")
}

func TestGenerateMCQs_CountMismatch(t *testing.T) {
	stub := &stubGenerator{response: mcqJSON(3)}
	generator := NewGenerator(storageWithChunks(1), stub, 10, arbor.NewLogger())

	_, err := generator.GenerateMCQs(context.Background(), "sub_1", "user_1", "Biology")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5")
}

func TestGenerateMCQs_MalformedOutput(t *testing.T) {
	stub := &stubGenerator{response: "I am unable to produce questions right now."}
	generator := NewGenerator(storageWithChunks(1), stub, 10, arbor.NewLogger())

	_, err := generator.GenerateMCQs(context.Background(), "sub_1", "user_1", "Biology")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed generation output")
}

func TestGenerateMCQs_GenerationFailure(t *testing.T) {
	stub := &stubGenerator{err: fmt.Errorf("upstream 500")}
	generator := NewGenerator(storageWithChunks(1), stub, 10, arbor.NewLogger())

	_, err := generator.GenerateMCQs(context.Background(), "sub_1", "user_1", "Biology")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MCQ generation failed")
}

func TestGenerateMCQs_ContextCap(t *testing.T) {
	stub := &stubGenerator{response: mcqJSON(5)}
	generator := NewGenerator(storageWithChunks(15), stub, 10, arbor.NewLogger())

	_, err := generator.GenerateMCQs(context.Background(), "sub_1", "user_1", "Biology")

	require.NoError(t, err)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "Source 10 from notes.txt:")
	assert.NotContains(t, stub.prompts[0], "Source 11")
}

func TestGenerateShortAnswer_Success(t *testing.T) {
	stub := &stubGenerator{response: shortAnswerJSON(3)}
	generator := NewGenerator(storageWithChunks(2), stub, 10, arbor.NewLogger())

	set, err := generator.GenerateShortAnswer(context.Background(), "sub_1", "user_1", "Biology")

	require.NoError(t, err)
	require.Len(t, set.Questions, 3)
	assert.Equal(t, "detailed answer", set.Questions[0].Answer)
}

func TestGenerateShortAnswer_CountMismatch(t *testing.T) {
	stub := &stubGenerator{response: shortAnswerJSON(5)}
	generator := NewGenerator(storageWithChunks(1), stub, 10, arbor.NewLogger())

	_, err := generator.GenerateShortAnswer(context.Background(), "sub_1", "user_1", "Biology")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3")
}
