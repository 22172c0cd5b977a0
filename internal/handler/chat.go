package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/stevennight/ai-debug-tool/internal/convert"
	"github.com/stevennight/ai-debug-tool/internal/models"
	"github.com/stevennight/ai-debug-tool/internal/service"
)

type chatService interface {
	Send(ctx context.Context, req *service.ChatRequest) (models.ResponseResult, error)
	SendStream(ctx context.Context, req *service.ChatRequest) (<-chan service.StreamChunk, error)
}

type ChatHandler struct {
	service chatService
}

func NewChatHandler(service chatService) *ChatHandler {
	return &ChatHandler{
		service: service,
	}
}

// Chat godoc
// @Summary Send a prompt experiment
// @Description Send system/user prompts with an optional base64 PDF attachment and get the full response.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body service.ChatRequest true "Chat request"
// @Success 200 {object} models.ResponseResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /v1/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.service.Send(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
	}
}

// ChatStream godoc
// @Summary Stream a prompt experiment
// @Description Stream response tokens for system/user prompts with an optional base64 PDF attachment.
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param request body service.ChatRequest true "Chat request"
// @Success 200 {object} service.StreamChunk "Stream of tokens (SSE)"
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /v1/chat/stream [post]
func (h *ChatHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	stream, err := h.service.SendStream(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher := http.NewResponseController(w)

	for chunk := range stream {
		if chunk.Err != nil {
			fmt.Fprintf(w, "event: error\ndata: %v\n\n", chunk.Err)
			flusher.Flush()
			return
		}

		data, err := sonic.Marshal(chunk)
		if err != nil {
			fmt.Fprintf(w, "event: error\ndata: marshal error %v\n\n", err)
			flusher.Flush()
			return
		}

		fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
		flusher.Flush()

		if chunk.Done {
			fmt.Fprintf(w, "event: done\ndata: {}\n\n")
			flusher.Flush()
			return
		}
	}
}

func (h *ChatHandler) decode(w http.ResponseWriter, r *http.Request) (*service.ChatRequest, bool) {
	var req service.ChatRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %s", err), http.StatusBadRequest)
		return nil, false
	}
	if err := req.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("request validation failed: %s", err), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var convErr *convert.ConversionError
	if errors.As(err, &convErr) {
		status := http.StatusBadRequest
		if convErr.Reason == convert.ReasonMissingDependency {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, convErr.Error(), status)
		return
	}
	http.Error(w, fmt.Sprintf("service error: %s", err), http.StatusInternalServerError)
}
