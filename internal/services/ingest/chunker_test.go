package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_ShortText(t *testing.T) {
	chunker := NewChunker(1000)

	pieces := chunker.Chunk("short text")

	require.Len(t, pieces, 1)
	assert.Equal(t, "short text", pieces[0].Content)
	assert.Equal(t, 0, pieces[0].ChunkIndex)
}

func TestChunker_ExactBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		textLength int
		wantChunks int
	}{
		{"empty text", 0, 0},
		{"one char", 1, 1},
		{"exactly one window", 1000, 1},
		{"one over", 1001, 2},
		{"two windows", 2000, 2},
		{"two and a half", 2500, 3},
	}

	chunker := NewChunker(1000)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("a", tt.textLength)
			pieces := chunker.Chunk(text)
			assert.Len(t, pieces, tt.wantChunks)
		})
	}
}

func TestChunker_SequentialIndices(t *testing.T) {
	chunker := NewChunker(1000)

	pieces := chunker.Chunk(strings.Repeat("x", 3500))

	require.Len(t, pieces, 4)
	for i, piece := range pieces {
		assert.Equal(t, i, piece.ChunkIndex)
	}
}

func TestChunker_ReconstructsText(t *testing.T) {
	// Without per-piece trimming the windows concatenate back to the input.
	chunker := NewChunker(1000)
	text := strings.Repeat("abcdefghij", 250) // 2500 chars, no whitespace

	pieces := chunker.Chunk(text)

	require.Len(t, pieces, 3)
	var rebuilt strings.Builder
	for _, piece := range pieces {
		rebuilt.WriteString(piece.Content)
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunker_TrimsWhitespace(t *testing.T) {
	chunker := NewChunker(10)

	pieces := chunker.Chunk("  hello   ")

	require.Len(t, pieces, 1)
	assert.Equal(t, "hello", pieces[0].Content)
}

func TestChunker_WhitespaceOnlyWindow(t *testing.T) {
	// A window of pure whitespace trims to empty; the piece is still emitted
	// with its index so callers can drop it without renumbering.
	chunker := NewChunker(5)

	pieces := chunker.Chunk("hello     world")

	require.Len(t, pieces, 3)
	assert.Equal(t, "hello", pieces[0].Content)
	assert.Equal(t, "", pieces[1].Content)
	assert.Equal(t, 1, pieces[1].ChunkIndex)
	assert.Equal(t, "world", pieces[2].Content)
	assert.Equal(t, 2, pieces[2].ChunkIndex)
}

func TestChunker_DefaultSize(t *testing.T) {
	chunker := NewChunker(0)

	pieces := chunker.Chunk(strings.Repeat("a", 1500))

	assert.Len(t, pieces, 2)
}

func TestChunker_MultibyteRunes(t *testing.T) {
	// Windows are measured in characters, not bytes.
	chunker := NewChunker(4)

	pieces := chunker.Chunk("日本語テキスト処理")

	require.Len(t, pieces, 3)
	assert.Equal(t, "日本語テ", pieces[0].Content)
	assert.Equal(t, "キスト処", pieces[1].Content)
	assert.Equal(t, "理", pieces[2].Content)
}
