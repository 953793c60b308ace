package analyzer

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rahul4469/phisher-ai/internal/models"
	"go.uber.org/zap"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission on the same form has not resolved yet.
var ErrSubmitInFlight = errors.New("analysis already in progress")

// State is the request lifecycle of a form.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Analyzer sends a sanitized request for scoring.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)
}

// FormState is a point-in-time copy of a form.
type FormState struct {
	ID         string
	Subject    string
	Body       string
	Validation models.Validation
	State      State
	Submitting bool
	Result     *models.AnalysisResult
	Error      string
}

// Form holds what the user typed and the outcome of the last submission.
// Result and Error are never both set.
type Form struct {
	mu     sync.Mutex
	state  FormState
	client Analyzer
	logger *zap.Logger
}

// NewForm creates an idle form with empty fields.
func NewForm(client Analyzer, logger *zap.Logger) *Form {
	id := uuid.NewString()
	return &Form{
		state: FormState{
			ID:         id,
			Validation: models.Validate("", ""),
			State:      StateIdle,
		},
		client: client,
		logger: logger.With(zap.String("form_id", id)),
	}
}

// UpdateSubject replaces the subject text.
func (f *Form) UpdateSubject(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Subject = text
	f.state.Validation = models.Validate(f.state.Subject, f.state.Body)
}

// UpdateBody replaces the body text.
func (f *Form) UpdateBody(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Body = text
	f.state.Validation = models.Validate(f.state.Subject, f.state.Body)
}

// Snapshot returns a copy of the current state.
func (f *Form) Snapshot() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.state
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	return s
}

// Submit validates the form and, when valid, sends one analysis request.
// Invalid input sets the validation message and returns its error without
// any network call. The returned error mirrors the message left on the form.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.state.Error = ""

	if err := f.state.Validation.Err(); err != nil {
		f.state.Result = nil
		f.state.Error = err.Error()
		f.state.State = StateError
		f.mu.Unlock()
		return err
	}

	req := models.NewAnalysisRequest(f.state.Subject, f.state.Body)
	wordCount := f.state.Validation.WordCount
	f.state.Submitting = true
	f.state.State = StateSubmitting
	f.mu.Unlock()

	f.logger.Debug("submitting email for analysis",
		zap.Int("words", wordCount),
		zap.Bool("has_subject", req.Subject != nil))

	result, err := f.client.Analyze(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Submitting = false

	if err != nil {
		f.state.Result = nil
		f.state.State = StateError
		f.state.Error = models.ErrAnalysisFailed.Error()

		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Message != "" {
			f.state.Error = statusErr.Message
		}
		f.logger.Warn("analysis failed", zap.Error(err))
		return err
	}

	f.state.Result = result
	f.state.State = StateSuccess
	f.logger.Info("analysis completed",
		zap.Int("score", result.Score),
		zap.String("verdict", result.Verdict))
	return nil
}
