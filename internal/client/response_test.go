package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stevennight/ai-debug-tool/internal/models"
)

func TestReadCompletion_ExtractsText(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`)

	result := ReadCompletion(body, 120*time.Millisecond)

	assert.False(t, result.Failed())
	assert.Equal(t, "hello", result.Text)
	assert.Equal(t, 120.0, result.ElapsedMs)
	assert.Nil(t, result.TTFBMs)
}

func TestReadCompletion_EmptyContentIsValid(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":""}}]}`)

	result := ReadCompletion(body, time.Millisecond)

	assert.False(t, result.Failed())
	assert.Empty(t, result.Text)
}

func TestReadCompletion_MissingTextField(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices key", `{"id":"x"}`},
		{"empty choices", `{"choices":[]}`},
		{"no content field", `{"choices":[{"message":{"role":"assistant"}}]}`},
		{"wrong shape", `{"choices":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ReadCompletion([]byte(tt.body), time.Millisecond)
			assert.Equal(t, models.ErrKindMalformedResponse, result.ErrorKind)
		})
	}
}

func TestReadCompletion_NotJSON(t *testing.T) {
	body := []byte("<html><body>502 Bad Gateway</body></html>")

	result := ReadCompletion(body, time.Millisecond)

	assert.Equal(t, models.ErrKindInvalidJSON, result.ErrorKind)
	assert.Empty(t, result.Text)
}
