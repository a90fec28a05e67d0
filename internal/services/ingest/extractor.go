package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Extractor turns uploaded note documents into plain text. PDF extraction
// uses pdfcpu; Markdown is flattened via the goldmark AST; plain text passes
// through unchanged.
type Extractor struct {
	logger  arbor.ILogger
	tempDir string
}

// NewExtractor creates a new document text extractor.
func NewExtractor(logger arbor.ILogger) *Extractor {
	tempDir := filepath.Join(os.TempDir(), "vedam-extract")
	os.MkdirAll(tempDir, 0755)

	return &Extractor{
		logger:  logger,
		tempDir: tempDir,
	}
}

// SupportedExtensions returns the file extensions the extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf", ".txt", ".md"}
}

// ExtractText extracts the full text of one uploaded document, dispatching
// on the file extension of originalName.
func (e *Extractor) ExtractText(ctx context.Context, originalName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("document %s is empty", originalName)
	}

	switch strings.ToLower(filepath.Ext(originalName)) {
	case ".pdf":
		return e.extractPDF(ctx, data)
	case ".txt":
		return string(data), nil
	case ".md":
		return extractMarkdown(data), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s (supported: %s)", originalName, strings.Join(e.SupportedExtensions(), ", "))
	}
}

// extractPDF extracts text content from PDF bytes using pdfcpu. The content
// streams are written to a scratch directory and concatenated in page order.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	tempFile := filepath.Join(e.tempDir, fmt.Sprintf("extract_%d.pdf", os.Getpid()))
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	defer os.Remove(tempFile)

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	outDir := filepath.Join(e.tempDir, fmt.Sprintf("pages_%d", os.Getpid()))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create extraction directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	files, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("failed to read extraction directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if !file.IsDir() {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	var builder strings.Builder
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			e.logger.Warn().Err(err).Str("file", name).Msg("Failed to read extracted page content")
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.Write(content)
	}

	e.logger.Debug().
		Int("pages", pdfCtx.PageCount).
		Int("text_length", builder.Len()).
		Msg("PDF text extraction complete")

	return builder.String(), nil
}

// extractMarkdown flattens markdown to plain text by walking the goldmark
// AST and collecting text and code segments in document order.
func extractMarkdown(source []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var builder strings.Builder
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			builder.Write(node.Segment.Value(source))
			if node.HardLineBreak() || node.SoftLineBreak() {
				builder.WriteString("\n")
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				builder.Write(segment.Value(source))
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})

	return builder.String()
}
