package questions

import (
	"fmt"
	"strings"
)

// extractJSONObject recovers a JSON object from generation output that may be
// wrapped in code fences or surrounded by prose. It strips fence markers,
// then takes the substring from the first '{' through the last '}'. The
// result is candidate JSON; the caller still unmarshals and validates it.
func extractJSONObject(text string) (string, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in generation output")
	}

	return cleaned[start : end+1], nil
}
