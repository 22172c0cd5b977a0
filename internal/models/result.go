package models

// ErrorKind classifies recoverable request failures. An empty kind means the
// request succeeded.
type ErrorKind string

const (
	// ErrKindTransportFailure covers connect errors, TLS failures, timeouts
	// at dispatch and non-2xx upstream statuses.
	ErrKindTransportFailure ErrorKind = "transport_failure"
	// ErrKindIncompleteStream means the connection ended before the terminal
	// stream marker arrived; accumulated text is preserved.
	ErrKindIncompleteStream ErrorKind = "incomplete_stream"
	// ErrKindMalformedResponse means the body parsed as JSON but the expected
	// completion text field was absent.
	ErrKindMalformedResponse ErrorKind = "malformed_response"
	// ErrKindInvalidJSON means the body did not parse as JSON at all.
	ErrKindInvalidJSON ErrorKind = "invalid_json"
)

// ResponseResult is the single normalized outcome of one request, produced
// exactly once whether the streaming or the non-streaming path was taken.
// TTFBMs is nil on the non-streaming path.
type ResponseResult struct {
	Text      string    `json:"text"`
	ElapsedMs float64   `json:"elapsed_ms"`
	TTFBMs    *float64  `json:"ttfb_ms,omitempty"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	ErrDetail string    `json:"error_detail,omitempty"`
}

func (r ResponseResult) Failed() bool {
	return r.ErrorKind != ""
}
