package models

import (
	"errors"
	"fmt"
)

// Validation errors, reported to the user one at a time.
var (
	ErrBodyTooShort   = errors.New("Email text must be at least 10 characters long")
	ErrTooManyWords   = errors.New("Email text must not exceed 2000 words")
	ErrSubjectTooLong = errors.New("Email subject must not exceed 100 characters")
)

// Proxy errors. Their messages are what clients see in the error envelope.
var (
	ErrInvalidInput   = errors.New("Invalid input")
	ErrBackend        = errors.New("Error from backend")
	ErrInternal       = errors.New("Internal server error")
	ErrAnalysisFailed = errors.New("An error occurred while analyzing the email")
)

// UpstreamError is returned when the scoring service answers with a
// non-success status.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (ue *UpstreamError) Error() string {
	return fmt.Sprintf("scoring service error (status %d): %s", ue.StatusCode, ue.Message)
}
