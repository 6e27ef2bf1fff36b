package session

import (
	"errors"
	"fmt"
)

// ErrorCode classifies why a session stopped early
type ErrorCode string

const (
	ErrCodeOpenTab    ErrorCode = "OPEN_TAB"
	ErrCodePageLoad   ErrorCode = "PAGE_LOAD"
	ErrCodePageScrape ErrorCode = "PAGE_SCRAPE"
	ErrCodeNavigate   ErrorCode = "NAVIGATE"
	ErrCodeValidation ErrorCode = "VALIDATION"
)

// ScrapeError records a page-level failure. It is reported in Result.Err,
// not returned, because the jobs collected before it are still valid.
type ScrapeError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]interface{}
}

func (e *ScrapeError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Underlying
}

// Is matches another ScrapeError by code, or the wrapped error
func (e *ScrapeError) Is(target error) bool {
	if t, ok := target.(*ScrapeError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// NewScrapeError creates a ScrapeError
func NewScrapeError(code ErrorCode, message string, err error) *ScrapeError {
	return &ScrapeError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the error
func (e *ScrapeError) WithDetail(key string, value interface{}) *ScrapeError {
	e.Details[key] = value
	return e
}
