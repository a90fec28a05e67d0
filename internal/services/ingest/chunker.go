package ingest

import (
	"strings"

	"github.com/vedam-app/vedam/internal/models"
)

// DefaultChunkSize is the fixed window width, in characters, used when no
// size is configured.
const DefaultChunkSize = 1000

// Chunker splits extracted document text into fixed-width, non-overlapping
// windows. No sentence-boundary awareness: the windowing is deliberately
// simple and must stay byte-for-byte compatible with existing stored chunks.
type Chunker struct {
	chunkSize int
}

// NewChunker creates a chunker with the given window width in characters.
func NewChunker(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunker{chunkSize: chunkSize}
}

// Chunk slices text into consecutive windows of the configured width,
// trimming surrounding whitespace from each and assigning sequential 0-based
// indices. Text shorter than one window yields a single chunk spanning the
// whole text. Pieces whose trimmed content is empty are still returned;
// the caller decides whether to persist them.
func (c *Chunker) Chunk(text string) []models.ChunkPiece {
	runes := []rune(text)

	var pieces []models.ChunkPiece
	start := 0
	index := 0

	for start < len(runes) {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		pieces = append(pieces, models.ChunkPiece{
			Content:    strings.TrimSpace(string(runes[start:end])),
			ChunkIndex: index,
		})

		start = end
		index++
	}

	return pieces
}
