package client

import "errors"

const fallbackDisplayMessage = "Analysis failed"

// AnalysisError is the single error type surfaced by AnalyzeSymbol.
// Message is safe to show to the user.
type AnalysisError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *AnalysisError) Error() string { return e.Message }

func (e *AnalysisError) Unwrap() error { return e.Err }

// ErrorMessage reduces err to the string shown on the Home banner.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *AnalysisError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackDisplayMessage
}
