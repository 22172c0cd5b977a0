// Package client dispatches chat completion requests over HTTP and
// normalizes every outcome, streaming or not, into a single result shape.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stevennight/ai-debug-tool/internal/metrics"
	"github.com/stevennight/ai-debug-tool/internal/models"
	"github.com/stevennight/ai-debug-tool/internal/stream"
)

const errorBodyLimit = 4096

type requestEnvelope struct {
	Model          string               `json:"model"`
	Messages       []models.ChatMessage `json:"messages"`
	Temperature    float64              `json:"temperature"`
	Stream         bool                 `json:"stream"`
	ResponseFormat responseFormat       `json:"response_format"`
	Application    string               `json:"application,omitempty"`
}

type responseFormat struct {
	Type models.ResponseFormat `json:"type"`
}

// Orchestrator owns the HTTP transport. Each Send call owns its own buffers
// and timers; concurrent calls share nothing but the connection pool.
type Orchestrator struct {
	httpClient *http.Client
	log        logrus.FieldLogger
}

func New(log logrus.FieldLogger) *Orchestrator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	// The per-request timeout comes from RequestConfig via context, so the
	// client itself carries none.
	return &Orchestrator{
		httpClient: &http.Client{Transport: transport},
		log:        log,
	}
}

// SendOptions carries per-call extras. Exported so Sender fakes can apply
// the options they receive.
type SendOptions struct {
	OnDelta func(string)
}

type SendOption func(*SendOptions)

// WithDeltaFunc registers a callback receiving streamed text deltas in
// arrival order. It has no effect on the non-streaming path.
func WithDeltaFunc(fn func(string)) SendOption {
	return func(o *SendOptions) { o.OnDelta = fn }
}

// Send dispatches one request and blocks until it runs to completion,
// timeout or connection error. Transport-level failures are normalized into
// the result, never returned as raw errors.
func (o *Orchestrator) Send(ctx context.Context, cfg models.RequestConfig, messages []models.ChatMessage, opts ...SendOption) models.ResponseResult {
	var so SendOptions
	for _, opt := range opts {
		opt(&so)
	}

	mode := "non_stream"
	if cfg.Stream {
		mode = "stream"
	}
	log := o.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"model":      cfg.Model,
		"mode":       mode,
	})

	envelope, err := sonic.Marshal(requestEnvelope{
		Model:          cfg.Model,
		Messages:       messages,
		Temperature:    cfg.Temperature,
		Stream:         cfg.Stream,
		ResponseFormat: responseFormat{Type: cfg.ResponseFormat},
		Application:    cfg.Application,
	})
	if err != nil {
		return transportFailure(time.Now(), fmt.Errorf("encode request: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.APIURL, bytes.NewReader(envelope))
	if err != nil {
		return transportFailure(start, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	log.WithFields(logrus.Fields{
		"api_url":         cfg.APIURL,
		"api_key_set":     cfg.APIKey != "",
		"response_format": cfg.ResponseFormat,
		"temperature":     cfg.Temperature,
	}).Debug("dispatching chat completion request")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		result := transportFailure(start, err)
		o.finish(log, mode, start, result)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		result := transportFailure(start, fmt.Errorf("upstream status %d: %s", resp.StatusCode, bytes.TrimSpace(detail)))
		o.finish(log, mode, start, result)
		return result
	}

	var result models.ResponseResult
	if cfg.Stream {
		agg := stream.NewAggregator(start, stream.WithDeltaFunc(so.OnDelta))
		result = agg.Aggregate(resp.Body)
	} else {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			result = transportFailure(start, fmt.Errorf("read response body: %w", err))
		} else {
			result = ReadCompletion(body, time.Since(start))
		}
	}

	o.finish(log, mode, start, result)
	return result
}

func (o *Orchestrator) finish(log logrus.FieldLogger, mode string, start time.Time, result models.ResponseResult) {
	outcome := "success"
	if result.Failed() {
		outcome = string(result.ErrorKind)
	}
	metrics.UpstreamRequest(mode, outcome, time.Since(start))
	if result.TTFBMs != nil {
		metrics.UpstreamTTFB(time.Duration(*result.TTFBMs * float64(time.Millisecond)))
	}

	fields := logrus.Fields{
		"elapsed_ms": result.ElapsedMs,
		"text_len":   len(result.Text),
	}
	if result.TTFBMs != nil {
		fields["ttfb_ms"] = *result.TTFBMs
	}
	if result.Failed() {
		fields["error_kind"] = result.ErrorKind
		log.WithFields(fields).WithField("detail", result.ErrDetail).Warn("chat completion request failed")
		return
	}
	log.WithFields(fields).Info("chat completion request finished")
}

func transportFailure(start time.Time, err error) models.ResponseResult {
	return models.ResponseResult{
		ElapsedMs: float64(time.Since(start)) / float64(time.Millisecond),
		ErrorKind: models.ErrKindTransportFailure,
		ErrDetail: err.Error(),
	}
}
