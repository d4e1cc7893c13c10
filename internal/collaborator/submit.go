package collaborator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"exwiz/internal/model"
)

// Decision reviews a submitted application. A nil error accepts it; a
// non-nil error's message is surfaced to the user.
type Decision func(flow model.Flow, values map[string]string) error

// Submission is the terminal-step collaborator accepting a finished wizard.
type Submission struct {
	delay  time.Duration
	decide Decision
	log    *zap.Logger
}

// SubmissionOption configures a Submission service.
type SubmissionOption func(*Submission)

func WithSubmitDelay(d time.Duration) SubmissionOption {
	return func(s *Submission) { s.delay = d }
}

// WithDecision replaces the default accept-everything reviewer.
func WithDecision(fn Decision) SubmissionOption {
	return func(s *Submission) { s.decide = fn }
}

func WithSubmitLogger(l *zap.Logger) SubmissionOption {
	return func(s *Submission) { s.log = l }
}

// NewSubmission creates the service. Without a Decision every submission
// is accepted.
func NewSubmission(opts ...SubmissionOption) *Submission {
	s := &Submission{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit hands off a completed wizard. The outcome is final for this call
// only; the caller may always correct input and retry.
func (s *Submission) Submit(ctx context.Context, flow model.Flow, values map[string]string) error {
	if err := sleepFor(ctx, s.delay); err != nil {
		return err
	}
	if s.decide != nil {
		if err := s.decide(flow, values); err != nil {
			s.log.Info("submission rejected", zap.String("flow", string(flow)), zap.Error(err))
			return err
		}
	}
	s.log.Info("submission accepted", zap.String("flow", string(flow)))
	return nil
}
