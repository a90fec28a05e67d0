package models

import "time"

// Chunk is a contiguous slice of one document's extracted text, the atomic
// unit of retrieval. Chunks are created in bulk after extraction, never
// mutated, and deleted en masse with their owning file or subject.
type Chunk struct {
	ID           string    `json:"id"` // chk_{uuid}
	SubjectID    string    `json:"subject_id"`
	UserID       string    `json:"user_id"`
	Filename     string    `json:"filename"`      // stored name
	OriginalName string    `json:"original_name"` // display name shown in citations
	ChunkIndex   int       `json:"chunk_index"`   // 0-based position within the source document
	Content      string    `json:"content"`       // non-empty after trimming
	CreatedAt    time.Time `json:"created_at"`
}

// ScoredChunk annotates a chunk with its similarity score in [0,1] relative
// to one query. Computed per-query, never persisted.
type ScoredChunk struct {
	Chunk         `json:"chunk"`
	Score float64 `json:"score"`
}

// ChunkPiece is the chunker's output before persistence: content plus its
// sequence index. The ingest service attaches ownership and drops pieces
// whose trimmed content is empty.
type ChunkPiece struct {
	Content    string `json:"content"`
	ChunkIndex int    `json:"chunk_index"`
}
