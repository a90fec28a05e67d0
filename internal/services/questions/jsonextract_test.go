package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "clean JSON",
			input: `{"questions": []}`,
			want:  `{"questions": []}`,
		},
		{
			name:  "json code fence",
			input: "```json\n{\"questions\": []}\n```",
			want:  "{\"questions\": []}",
		},
		{
			name:  "bare code fence",
			input: "```\n{\"questions\": []}\n```",
			want:  "{\"questions\": []}",
		},
		{
			name:  "leading prose",
			input: "Here are your questions:\n{\"questions\": []}",
			want:  "{\"questions\": []}",
		},
		{
			name:  "trailing prose",
			input: "{\"questions\": []}\nLet me know if you need more!",
			want:  "{\"questions\": []}",
		},
		{
			name:  "fence and prose combined",
			input: "Sure! ```json\n{\"questions\": [{\"question\": \"q\"}]}\n``` Hope this helps.",
			want:  "{\"questions\": [{\"question\": \"q\"}]}",
		},
		{
			name:    "no braces at all",
			input:   "I cannot generate questions from this material.",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONObject(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
