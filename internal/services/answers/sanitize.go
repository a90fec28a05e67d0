package answers

import (
	"strings"
)

var markdownReplacer = strings.NewReplacer(
	"*", "",
	"_", "",
	"~", "",
	"`", "",
)

// sanitizeAnswer strips markdown emphasis markers from generated text and
// flattens it to a single line. The chat frontend renders plain text, so
// emphasis characters and line breaks would leak through as literals.
func sanitizeAnswer(text string) string {
	text = markdownReplacer.Replace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}
