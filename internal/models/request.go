package models

import (
	"fmt"
	"time"
)

type ResponseFormat string

const (
	ResponseFormatText       ResponseFormat = "text"
	ResponseFormatJSONObject ResponseFormat = "json_object"
)

// RequestConfig is an immutable per-request snapshot of everything needed to
// dispatch one chat completion call.
type RequestConfig struct {
	APIURL         string
	Application    string
	APIKey         string
	Model          string
	Temperature    float64
	Timeout        time.Duration
	ResponseFormat ResponseFormat
	Stream         bool
}

func (c RequestConfig) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is empty")
	}
	if c.Model == "" {
		return fmt.Errorf("model is empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0.0, 1.0], got %g", c.Temperature)
	}
	switch c.ResponseFormat {
	case ResponseFormatText, ResponseFormatJSONObject:
	default:
		return fmt.Errorf("unsupported response format %q", c.ResponseFormat)
	}
	return nil
}
