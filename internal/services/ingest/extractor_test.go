package ingest

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestExtractText_PlainText(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())

	text, err := extractor.ExtractText(context.Background(), "notes.txt", []byte("mitochondria is the powerhouse"))

	require.NoError(t, err)
	assert.Equal(t, "mitochondria is the powerhouse", text)
}

func TestExtractText_Markdown(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())
	source := "# Biology\n\nThe **cell** is the basic unit.\n\n- nucleus\n- ribosome\n"

	text, err := extractor.ExtractText(context.Background(), "notes.md", []byte(source))

	require.NoError(t, err)
	assert.Contains(t, text, "Biology")
	assert.Contains(t, text, "cell")
	assert.Contains(t, text, "nucleus")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "# ")
}

func TestExtractText_MarkdownCodeBlock(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())
	source := "Intro\n\n```\nATP synthase\n```\n"

	text, err := extractor.ExtractText(context.Background(), "notes.md", []byte(source))

	require.NoError(t, err)
	assert.Contains(t, text, "ATP synthase")
	assert.NotContains(t, text, "```")
}

func TestExtractText_PDF(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())

	// Build a minimal single-page PDF fixture
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, "Photosynthesis converts light energy")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))

	text, err := extractor.ExtractText(context.Background(), "notes.pdf", buf.Bytes())

	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestExtractText_UnsupportedExtension(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())

	_, err := extractor.ExtractText(context.Background(), "notes.docx", []byte("data"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestExtractText_EmptyData(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())

	_, err := extractor.ExtractText(context.Background(), "notes.txt", nil)

	assert.Error(t, err)
}

func TestExtractText_CaseInsensitiveExtension(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())

	text, err := extractor.ExtractText(context.Background(), "NOTES.TXT", []byte("content"))

	require.NoError(t, err)
	assert.Equal(t, "content", text)
}
