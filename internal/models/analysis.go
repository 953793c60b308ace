package models

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/rahul4469/phisher-ai/internal/textutil"
)

// Limits applied to submitted emails.
const (
	MinBodyLength    = 10
	MaxWordCount     = 2000
	MaxSubjectLength = 100
)

// AnalysisRequest is the payload sent to the proxy endpoint and forwarded
// to the scoring service. A nil Subject is encoded as JSON null.
type AnalysisRequest struct {
	Text    string  `json:"text"`
	Subject *string `json:"subject"`
}

// NewAnalysisRequest sanitizes body and subject into a request. An empty
// subject becomes nil.
func NewAnalysisRequest(subject, body string) AnalysisRequest {
	req := AnalysisRequest{Text: textutil.Sanitize(body)}
	if subject != "" {
		s := textutil.Sanitize(subject)
		req.Subject = &s
	}
	return req
}

// AnalysisResult is the verdict returned by the scoring service.
type AnalysisResult struct {
	Score   int    `json:"score"`
	Verdict string `json:"verdict"`
	Message string `json:"message"`
}

// ErrorEnvelope is the body of every failed proxy response.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// ProxyPayload is the shape the proxy endpoint accepts. Fields are kept raw
// so subject is forwarded exactly as received, null included.
type ProxyPayload struct {
	Text    json.RawMessage `json:"text"`
	Subject json.RawMessage `json:"subject,omitempty"`
}

// TextValue returns the text field when it is a non-empty JSON string.
func (p ProxyPayload) TextValue() (string, bool) {
	if len(p.Text) == 0 {
		return "", false
	}
	var text string
	if err := json.Unmarshal(p.Text, &text); err != nil {
		return "", false
	}
	return text, text != ""
}

// Validation holds the derived validity of a subject/body pair.
type Validation struct {
	WordCount    int
	BodyLength   int
	SubjectValid bool
	InputValid   bool
}

// Validate computes word count and validity flags. Lengths are counted in
// runes.
func Validate(subject, body string) Validation {
	wordCount := textutil.CountWords(body)
	bodyLen := utf8.RuneCountInString(body)
	subjectLen := utf8.RuneCountInString(subject)

	subjectValid := subject == "" || (subjectLen >= 1 && subjectLen <= MaxSubjectLength)

	return Validation{
		WordCount:    wordCount,
		BodyLength:   bodyLen,
		SubjectValid: subjectValid,
		InputValid:   bodyLen >= MinBodyLength && wordCount <= MaxWordCount && subjectValid,
	}
}

// Err returns the single error to show for an invalid input, or nil.
// A short body wins over a long word count, which wins over a long subject.
func (v Validation) Err() error {
	switch {
	case v.InputValid:
		return nil
	case v.BodyLength < MinBodyLength:
		return ErrBodyTooShort
	case v.WordCount > MaxWordCount:
		return ErrTooManyWords
	default:
		return ErrSubjectTooLong
	}
}

// TooManyWords reports whether the word counter should be highlighted.
func (v Validation) TooManyWords() bool {
	return v.WordCount > MaxWordCount
}
