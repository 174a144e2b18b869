package ai

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"tasks": []}`,
			want: `{"tasks": []}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"intent\": \"schedule\"}\n```",
			want: `{"intent": "schedule"}`,
		},
		{
			name: "plain fence",
			in:   "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "surrounding prose",
			in:   "Sure! Here is the result:\n{\"a\": 1}\nHope this helps.",
			want: `{"a": 1}`,
		},
		{
			name: "nested braces",
			in:   `{"a": {"b": 2}}`,
			want: `{"a": {"b": 2}}`,
		},
		{
			name: "no object",
			in:   "I could not produce JSON for that.",
			want: "",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
