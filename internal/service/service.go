// Package service ties the conversion, payload and client layers together
// for the CLI and HTTP hosts.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stevennight/ai-debug-tool/internal/client"
	"github.com/stevennight/ai-debug-tool/internal/config"
	"github.com/stevennight/ai-debug-tool/internal/convert"
	"github.com/stevennight/ai-debug-tool/internal/models"
	"github.com/stevennight/ai-debug-tool/internal/payload"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// Sender abstracts the request orchestrator.
type Sender interface {
	Send(ctx context.Context, cfg models.RequestConfig, messages []models.ChatMessage, opts ...client.SendOption) models.ResponseResult
}

// ChatRequest is one prompt experiment: prompts, an optional PDF attachment
// and optional per-request overrides of the configured defaults.
type ChatRequest struct {
	System         string   `json:"system"`
	User           string   `json:"user"`
	PDFBase64      string   `json:"pdf_base64,omitempty"`
	Model          string   `json:"model,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
	ResponseFormat string   `json:"response_format,omitempty"`
}

func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.User) == "" {
		return fmt.Errorf("user prompt is empty")
	}
	return nil
}

// StreamChunk is one unit of the serve-mode stream hand-off.
type StreamChunk struct {
	Delta  string                 `json:"delta,omitempty"`
	Done   bool                   `json:"done,omitempty"`
	Result *models.ResponseResult `json:"result,omitempty"`
	Err    error                  `json:"-"`
}

type ChatService struct {
	log       logrus.FieldLogger
	converter *convert.Converter
	sender    Sender
	api       config.APIConfig
	cache     Cache
}

func New(log logrus.FieldLogger, converter *convert.Converter, sender Sender, api config.APIConfig) *ChatService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChatService{
		log:       log,
		converter: converter,
		sender:    sender,
		api:       api,
	}
}

func (s *ChatService) SetCache(cache Cache) {
	s.cache = cache
}

// Send runs one non-streaming request end to end.
func (s *ChatService) Send(ctx context.Context, req *ChatRequest) (models.ResponseResult, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, cacheKey(req))
		if err != nil {
			s.log.WithError(err).Warn("cache get failed")
		}
		if found {
			s.log.Debug("served from cache")
			return models.ResponseResult{Text: cached}, nil
		}
	}

	cfg, messages, err := s.buildRequest(ctx, req)
	if err != nil {
		return models.ResponseResult{}, err
	}
	cfg.Stream = false

	result := s.sender.Send(ctx, cfg, messages)

	if s.cache != nil && !result.Failed() {
		if err := s.cache.Set(ctx, cacheKey(req), result.Text); err != nil {
			s.log.WithError(err).Warn("cache set failed")
		}
	}
	return result, nil
}

// SendStream runs one streaming request, delivering deltas as they arrive
// and a final chunk carrying the normalized result.
func (s *ChatService) SendStream(ctx context.Context, req *ChatRequest) (<-chan StreamChunk, error) {
	ch := make(chan StreamChunk, 1)

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, cacheKey(req))
		if err != nil {
			s.log.WithError(err).Warn("cache get failed")
		}
		if found {
			ch <- StreamChunk{Delta: cached, Done: true, Result: &models.ResponseResult{Text: cached}}
			close(ch)
			return ch, nil
		}
	}

	cfg, messages, err := s.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	cfg.Stream = true

	go func() {
		defer close(ch)

		sendOrStop := func(chunk StreamChunk) bool {
			select {
			case ch <- chunk:
				return true
			case <-ctx.Done():
				return false
			}
		}

		result := s.sender.Send(ctx, cfg, messages, client.WithDeltaFunc(func(delta string) {
			sendOrStop(StreamChunk{Delta: delta})
		}))

		// The terminal chunk carries the normalized result; it must not be
		// dropped just because the consumer is still draining deltas.
		if result.Failed() {
			sendOrStop(StreamChunk{
				Err:    fmt.Errorf("%s: %s", result.ErrorKind, result.ErrDetail),
				Result: &result,
			})
			return
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, cacheKey(req), result.Text); err != nil {
				s.log.WithError(err).Warn("cache set failed")
			}
		}

		sendOrStop(StreamChunk{Done: true, Result: &result})
	}()

	return ch, nil
}

func (s *ChatService) buildRequest(ctx context.Context, req *ChatRequest) (models.RequestConfig, []models.ChatMessage, error) {
	cfg := s.api.RequestConfig()
	if req.Model != "" {
		cfg.Model = req.Model
	}
	if req.Temperature != nil {
		cfg.Temperature = *req.Temperature
	}
	if req.ResponseFormat != "" {
		cfg.ResponseFormat = models.ResponseFormat(req.ResponseFormat)
	}
	if err := cfg.Validate(); err != nil {
		return models.RequestConfig{}, nil, err
	}

	var images []models.PageImage
	if req.PDFBase64 != "" {
		raw, err := base64.StdEncoding.DecodeString(req.PDFBase64)
		if err != nil {
			return models.RequestConfig{}, nil, fmt.Errorf("decode pdf_base64: %w", err)
		}
		images, err = s.converter.Convert(ctx, raw)
		if err != nil {
			return models.RequestConfig{}, nil, err
		}
	}

	return cfg, payload.Build(req.System, req.User, images), nil
}

func cacheKey(req *ChatRequest) string {
	parts := []string{
		req.System,
		req.User,
		req.Model,
		req.ResponseFormat,
	}
	if req.Temperature != nil {
		parts = append(parts, fmt.Sprintf("%f", *req.Temperature))
	}
	if req.PDFBase64 != "" {
		pdfSum := sha256.Sum256([]byte(req.PDFBase64))
		parts = append(parts, hex.EncodeToString(pdfSum[:]))
	}

	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}
