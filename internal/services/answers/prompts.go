package answers

import (
	"fmt"
	"strings"

	"github.com/vedam-app/vedam/internal/models"
)

// buildContext renders retrieved chunks as labeled source blocks in rank
// order, separated by blank lines. Section numbers are 1-based because the
// generated citations use them verbatim.
func buildContext(chunks []models.ScoredChunk) string {
	blocks := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		blocks = append(blocks, fmt.Sprintf("Source %d from %s section %d:\n%s",
			i+1, chunk.OriginalName, chunk.ChunkIndex+1, chunk.Content))
	}
	return strings.Join(blocks, "\n\n")
}

// buildAnswerPrompt assembles the grounded-answer prompt: fixed rules, the
// source context, the conversation transcript, and a trailing answer cue.
func buildAnswerPrompt(conversation []models.Message, context, subjectName string) string {
	var transcript strings.Builder
	for _, turn := range conversation {
		if turn.Role == "user" {
			transcript.WriteString("User: ")
		} else {
			transcript.WriteString("Assistant: ")
		}
		transcript.WriteString(turn.Text)
		transcript.WriteString("\n")
	}

	return fmt.Sprintf(`You are answering questions using only the provided notes.

Rules:
1. Only use information from the context below
2. If the answer is not in the context, say "Not found in your notes for %s"
3. Do not make up information
4. Cite sources as [Source 1], [Source 2], etc.
5. Be clear and direct

Context:
%s

Conversation:
%s
Answer:`, subjectName, context, transcript.String())
}
