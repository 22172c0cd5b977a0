package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevennight/ai-debug-tool/internal/convert"
	"github.com/stevennight/ai-debug-tool/internal/models"
	"github.com/stevennight/ai-debug-tool/internal/service"
)

type fakeChatService struct {
	result models.ResponseResult
	chunks []service.StreamChunk
	err    error

	gotReq *service.ChatRequest
}

func (f *fakeChatService) Send(_ context.Context, req *service.ChatRequest) (models.ResponseResult, error) {
	f.gotReq = req
	return f.result, f.err
}

func (f *fakeChatService) SendStream(_ context.Context, req *service.ChatRequest) (<-chan service.StreamChunk, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan service.StreamChunk, len(f.chunks))
	for _, chunk := range f.chunks {
		ch <- chunk
	}
	close(ch)
	return ch, nil
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func TestChat_Success(t *testing.T) {
	svc := &fakeChatService{result: models.ResponseResult{Text: "hello", ElapsedMs: 10}}
	h := NewChatHandler(svc)

	rec := postJSON(t, h.Chat, `{"system":"S","user":"U"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"text":"hello","elapsed_ms":10}`, rec.Body.String())
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "U", svc.gotReq.User)
}

func TestChat_InvalidJSON(t *testing.T) {
	h := NewChatHandler(&fakeChatService{})

	rec := postJSON(t, h.Chat, `{broken`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_EmptyUserPromptRejected(t *testing.T) {
	svc := &fakeChatService{}
	h := NewChatHandler(svc)

	rec := postJSON(t, h.Chat, `{"system":"S","user":"  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotReq)
}

func TestChat_ConversionErrorStatus(t *testing.T) {
	tests := []struct {
		reason convert.Reason
		status int
	}{
		{convert.ReasonCorruptInput, http.StatusBadRequest},
		{convert.ReasonEmptyDocument, http.StatusBadRequest},
		{convert.ReasonMissingDependency, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			svc := &fakeChatService{err: &convert.ConversionError{Reason: tt.reason}}
			rec := postJSON(t, NewChatHandler(svc).Chat, `{"user":"U","pdf_base64":"AAAA"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestChatStream_FramesInOrder(t *testing.T) {
	svc := &fakeChatService{chunks: []service.StreamChunk{
		{Delta: "Hel"},
		{Delta: "lo"},
		{Done: true, Result: &models.ResponseResult{Text: "Hello", ElapsedMs: 25}},
	}}
	h := NewChatHandler(svc)

	rec := postJSON(t, h.ChatStream, `{"user":"U"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	first := strings.Index(body, `"delta":"Hel"`)
	second := strings.Index(body, `"delta":"lo"`)
	final := strings.Index(body, `"done":true`)
	assert.True(t, first >= 0 && second > first && final > second, "frames out of order: %s", body)
	assert.Contains(t, body, "event: done")
}

func TestChatStream_ErrorFrame(t *testing.T) {
	svc := &fakeChatService{chunks: []service.StreamChunk{
		{Delta: "part"},
		{
			Err:    &convert.ConversionError{Reason: convert.ReasonCorruptInput},
			Result: &models.ResponseResult{Text: "part", ErrorKind: models.ErrKindIncompleteStream},
		},
	}}
	h := NewChatHandler(svc)

	rec := postJSON(t, h.ChatStream, `{"user":"U"}`)

	body := rec.Body.String()
	assert.Contains(t, body, "event: error")
	assert.NotContains(t, body, "event: done")
}
