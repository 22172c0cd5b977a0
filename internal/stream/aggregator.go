package stream

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/stevennight/ai-debug-tool/internal/models"
)

// Streamed lines are bounded; a single delta line fits comfortably under 1MB.
const maxLineBytes = 1 << 20

type state int

const (
	stateAwaitingFirstByte state = iota
	stateStreaming
	stateDone
	stateErrored
)

// Aggregator consumes one ordered event stream, appending deltas in strict
// arrival order. It is single-use: one Aggregator per request.
type Aggregator struct {
	dispatched time.Time
	now        func() time.Time
	onDelta    func(string)

	buf   strings.Builder
	ttfb  *float64
	state state
}

type Option func(*Aggregator)

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithDeltaFunc registers a callback invoked for every text delta in arrival
// order, so a host can display output incrementally.
func WithDeltaFunc(fn func(string)) Option {
	return func(a *Aggregator) { a.onDelta = fn }
}

// NewAggregator starts latency measurement at dispatchedAt, the moment the
// request was sent.
func NewAggregator(dispatchedAt time.Time, opts ...Option) *Aggregator {
	a := &Aggregator{
		dispatched: dispatchedAt,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate reads event lines until the terminal marker, EOF or a read error.
// Input after the terminal marker is ignored: reading stops even if the
// connection stays open. When the stream ends without a terminal marker the
// accumulated text is preserved alongside ErrKindIncompleteStream.
//
// TTFB is taken at the first non-empty line whatever its kind: a keep-alive
// comment or malformed line still proves the upstream started responding.
func (a *Aggregator) Aggregate(r io.Reader) models.ResponseResult {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for a.state != stateDone && scanner.Scan() {
		line := scanner.Text()

		if a.state == stateAwaitingFirstByte && strings.TrimSpace(line) != "" {
			ttfb := a.sinceDispatchMs()
			a.ttfb = &ttfb
			a.state = stateStreaming
		}

		switch ev := ParseLine(line); ev.Kind {
		case KindDelta:
			a.buf.WriteString(ev.Delta)
			if a.onDelta != nil {
				a.onDelta(ev.Delta)
			}
		case KindDone:
			a.state = stateDone
		}
	}

	result := models.ResponseResult{
		Text:      a.buf.String(),
		ElapsedMs: a.sinceDispatchMs(),
		TTFBMs:    a.ttfb,
	}
	if a.state != stateDone {
		a.state = stateErrored
		result.ErrorKind = models.ErrKindIncompleteStream
		if err := scanner.Err(); err != nil {
			result.ErrDetail = err.Error()
		} else {
			result.ErrDetail = "stream ended before terminal marker"
		}
	}
	return result
}

func (a *Aggregator) sinceDispatchMs() float64 {
	return float64(a.now().Sub(a.dispatched)) / float64(time.Millisecond)
}
