package enroll

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/notify"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

// Step identifies the wizard's position. Movement is monotonic except
// for explicit Prev transitions; StepDone is terminal and reachable only
// through a successful submission.
type Step int

const (
	StepPersonal Step = iota + 1
	StepProfessional
	StepOperational
	StepVerification
	StepDone
)

// Name returns the progress-bar label of a step.
func (s Step) Name() string {
	switch s {
	case StepPersonal:
		return "Personal"
	case StepProfessional:
		return "Professional"
	case StepOperational:
		return "Operational"
	case StepVerification:
		return "Verification"
	case StepDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// ValidateStep runs the forward-navigation gate for one step. It is pure
// over the draft: a failure changes nothing and reports the message the
// form shows. Backward navigation is never gated, and StepVerification
// has no client-side gate; the server validates the ID fields.
func ValidateStep(step Step, d *Draft) error {
	switch step {
	case StepPersonal:
		if d.OwnerName == "" || d.Email == "" || d.BusinessName == "" || d.Phone == "" || d.DOB == "" {
			return errors.New("Please fill all required personal and contact details")
		}
		if !containsAt(d.Email) {
			return errors.New("Please enter a valid email address")
		}
	case StepProfessional:
		if d.Experience == "" || (d.PrimaryService == "" && d.OtherServices == "") {
			return errors.New("Please provide professional details")
		}
	case StepOperational:
		if d.Address == "" || d.City == "" || d.Area == "" || d.Pincode == "" {
			return errors.New("Please fill address details")
		}
	}
	return nil
}

func containsAt(email string) bool {
	for _, r := range email {
		if r == '@' {
			return true
		}
	}
	return false
}

// Wizard collects a four-section provider application and submits it
// atomically.
type Wizard struct {
	mu       sync.Mutex
	api      *api.Client
	notifier *notify.Notifier
	logger   *zap.Logger

	step       Step
	draft      *Draft
	submitting bool
}

// New starts a wizard at the personal step with a fresh draft.
func New(client *api.Client, notifier *notify.Notifier, logger *zap.Logger) *Wizard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wizard{
		api:      client,
		notifier: notifier,
		logger:   logger,
		step:     StepPersonal,
		draft:    NewDraft(),
	}
}

// Step returns the current position.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft exposes the in-memory draft for field edits.
func (w *Wizard) Draft() *Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Next advances one step if the current step's gate passes. A gate
// failure publishes a transient notification and keeps the step; other
// steps' data is untouched either way. Step four advances only through
// Submit.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step >= StepVerification {
		return false
	}
	if err := ValidateStep(w.step, w.draft); err != nil {
		w.notifier.Error(err.Error())
		return false
	}
	w.step++
	return true
}

// Prev moves one step back without any gating. There is no way back
// from the first step or out of the success state.
func (w *Wizard) Prev() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepPersonal && w.step < StepDone {
		w.step--
	}
}

// Submit serializes the whole draft into one multipart POST. Success
// moves to the terminal step and resets nothing else; failure surfaces
// the server's message and leaves the wizard at step four for a manual,
// whole-payload retry.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.step != StepVerification {
		w.mu.Unlock()
		return errors.New("submission is only available from the verification step")
	}
	if w.submitting {
		w.mu.Unlock()
		return errors.New("submission already in progress")
	}
	w.submitting = true
	form, err := BuildForm(w.draft)
	w.mu.Unlock()
	if err != nil {
		w.setSubmitting(false)
		return err
	}

	err = w.api.EnrollProvider(ctx, form)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		w.logger.Warn("enrollment submission failed", zap.Error(err))
		message := "Enrollment failed. Please try again."
		if de := apperrors.ToDomainError(err); de != nil && de.Message != "" && !apperrors.IsTransportError(err) {
			message = de.Message
		}
		w.notifier.Error(message)
		return err
	}

	w.step = StepDone
	w.notifier.Success("Enrollment submitted successfully! We will verify your profile soon.")
	return nil
}

func (w *Wizard) setSubmitting(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = v
}
