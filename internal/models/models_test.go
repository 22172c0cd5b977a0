package models

import (
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMessageMarshal_PlainText(t *testing.T) {
	raw, err := sonic.Marshal(ChatMessage{Role: RoleSystem, Text: "be brief"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"system","content":"be brief"}`, string(raw))
}

func TestChatMessageMarshal_Parts(t *testing.T) {
	msg := ChatMessage{
		Role: RoleUser,
		Parts: []ContentPart{
			TextPart("what is on this page?"),
			ImagePart("data:image/jpeg;base64,AAAA"),
		},
	}

	raw, err := sonic.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"role": "user",
		"content": [
			{"type": "text", "text": "what is on this page?"},
			{"type": "image_url", "image_url": {"url": "data:image/jpeg;base64,AAAA"}}
		]
	}`, string(raw))
}

func TestChatMessageMarshal_PartsTakePrecedence(t *testing.T) {
	msg := ChatMessage{Role: RoleUser, Text: "ignored", Parts: []ContentPart{TextPart("kept")}}

	raw, err := sonic.Marshal(msg)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "ignored")
	assert.Contains(t, string(raw), "kept")
}

func TestPageImageDataURI(t *testing.T) {
	page := PageImage{Data: []byte{0xFF, 0xD8, 0xFF}, MIME: "image/jpeg"}

	uri := page.DataURI()

	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	assert.Equal(t, "data:image/jpeg;base64,/9j/", uri)
}

func TestRequestConfigValidate(t *testing.T) {
	valid := RequestConfig{
		APIURL:         "https://llm.example.com/v1/chat/completions",
		Model:          "test-model",
		Temperature:    0.7,
		Timeout:        time.Minute,
		ResponseFormat: ResponseFormatText,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*RequestConfig)
		want   string
	}{
		{"empty url", func(c *RequestConfig) { c.APIURL = "" }, "api_url"},
		{"empty model", func(c *RequestConfig) { c.Model = "" }, "model"},
		{"zero timeout", func(c *RequestConfig) { c.Timeout = 0 }, "timeout"},
		{"negative temperature", func(c *RequestConfig) { c.Temperature = -0.1 }, "temperature"},
		{"temperature above one", func(c *RequestConfig) { c.Temperature = 1.01 }, "temperature"},
		{"unknown format", func(c *RequestConfig) { c.ResponseFormat = "yaml" }, "response format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRequestConfigValidate_TemperatureBounds(t *testing.T) {
	cfg := RequestConfig{
		APIURL:         "https://llm.example.com",
		Model:          "m",
		Timeout:        time.Second,
		ResponseFormat: ResponseFormatJSONObject,
	}

	cfg.Temperature = 0.0
	assert.NoError(t, cfg.Validate())

	cfg.Temperature = 1.0
	assert.NoError(t, cfg.Validate())
}

func TestResponseResultFailed(t *testing.T) {
	assert.False(t, ResponseResult{Text: "ok"}.Failed())
	assert.True(t, ResponseResult{ErrorKind: ErrKindTransportFailure}.Failed())
}
