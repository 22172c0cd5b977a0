// Package stream reconstructs chat completion text from a newline-delimited
// event stream and records first-byte and total latency.
package stream

import (
	"strings"

	"github.com/bytedance/sonic"
)

const doneSentinel = "[DONE]"

type EventKind int

const (
	// KindSkip covers keep-alive comments, event-type lines, empty frame
	// separators and chunks with no text delta.
	KindSkip EventKind = iota
	KindDelta
	KindDone
	KindMalformed
)

// Event is one decoded line of the stream.
type Event struct {
	Kind  EventKind
	Delta string
	// Raw holds the offending line for malformed events.
	Raw string
}

type chunkPayload struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// ParseLine classifies one raw line, independent of the transport. Lines that
// do not conform to the expected framing are malformed, not fatal.
func ParseLine(line string) Event {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Event{Kind: KindSkip}
	}
	if strings.HasPrefix(trimmed, ":") || strings.HasPrefix(trimmed, "event:") {
		return Event{Kind: KindSkip}
	}
	if !strings.HasPrefix(trimmed, "data:") {
		return Event{Kind: KindMalformed, Raw: line}
	}

	data := strings.TrimSpace(strings.TrimPrefix(trimmed, "data:"))
	if data == doneSentinel {
		return Event{Kind: KindDone}
	}

	var chunk chunkPayload
	if err := sonic.UnmarshalString(data, &chunk); err != nil {
		return Event{Kind: KindMalformed, Raw: line}
	}
	if len(chunk.Choices) == 0 {
		return Event{Kind: KindSkip}
	}
	delta := chunk.Choices[0].Delta.Content
	if delta == "" {
		return Event{Kind: KindSkip}
	}
	return Event{Kind: KindDelta, Delta: delta}
}
