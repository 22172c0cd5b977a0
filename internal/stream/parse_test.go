package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Event
	}{
		{
			name: "text delta",
			line: `data: {"choices":[{"delta":{"content":"Hel"}}]}`,
			want: Event{Kind: KindDelta, Delta: "Hel"},
		},
		{
			name: "terminal marker",
			line: "data: [DONE]",
			want: Event{Kind: KindDone},
		},
		{
			name: "event type line",
			line: "event: message",
			want: Event{Kind: KindSkip},
		},
		{
			name: "keep-alive comment",
			line: ": keep-alive",
			want: Event{Kind: KindSkip},
		},
		{
			name: "empty separator",
			line: "",
			want: Event{Kind: KindSkip},
		},
		{
			name: "no framing prefix",
			line: "garbage without prefix",
			want: Event{Kind: KindMalformed, Raw: "garbage without prefix"},
		},
		{
			name: "unparseable payload",
			line: "data: {not json",
			want: Event{Kind: KindMalformed, Raw: "data: {not json"},
		},
		{
			name: "no choices",
			line: `data: {"choices":[]}`,
			want: Event{Kind: KindSkip},
		},
		{
			name: "empty delta",
			line: `data: {"choices":[{"delta":{"content":""}}]}`,
			want: Event{Kind: KindSkip},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}
