package convert

import (
	"errors"
	"fmt"
)

// Reason identifies why a PDF conversion failed, so the caller can show a
// targeted remediation message.
type Reason string

const (
	ReasonMissingDependency Reason = "missing-native-dependency"
	ReasonCorruptInput      Reason = "corrupt-input"
	ReasonEmptyDocument     Reason = "empty-document"
)

type ConversionError struct {
	Reason Reason
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdf conversion failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("pdf conversion failed (%s)", e.Reason)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Sentinels wrapped by rasterizer implementations so the converter can
// classify failures without knowing the backend.
var (
	ErrRasterizerUnavailable = errors.New("pdf rasterizer unavailable")
	ErrUnreadableDocument    = errors.New("unreadable pdf document")
)
