package client

import (
	"time"

	"github.com/bytedance/sonic"

	"github.com/stevennight/ai-debug-tool/internal/models"
)

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ReadCompletion parses a single non-streaming JSON body and extracts the
// first completion's text. A body that is not JSON at all maps to
// ErrKindInvalidJSON (typically a transport or auth error page); a valid JSON
// document without the expected text field maps to ErrKindMalformedResponse
// (an API contract change). TTFB is always nil on this path.
func ReadCompletion(body []byte, elapsed time.Duration) models.ResponseResult {
	result := models.ResponseResult{
		ElapsedMs: float64(elapsed) / float64(time.Millisecond),
	}

	if !sonic.Valid(body) {
		result.ErrorKind = models.ErrKindInvalidJSON
		result.ErrDetail = "response body is not valid JSON"
		return result
	}

	var parsed completionResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		result.ErrorKind = models.ErrKindMalformedResponse
		result.ErrDetail = err.Error()
		return result
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		result.ErrorKind = models.ErrKindMalformedResponse
		result.ErrDetail = "missing choices[0].message.content"
		return result
	}

	result.Text = *parsed.Choices[0].Message.Content
	return result
}
