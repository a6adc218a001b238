package intake

import (
	"careerpath-backend/internal/models"
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is a step of the booking form lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
)

var (
	ErrFormBusy         = errors.New("a submission is already in progress")
	ErrAlreadySubmitted = errors.New("request already submitted; reset to book another")
)

// Submitter delivers a validated request and returns the reference ID.
type Submitter interface {
	SubmitConsultation(ctx context.Context, req models.CreateConsultationRequest) (string, error)
}

// Form drives idle -> validating -> (idle | submitting -> (succeeded | idle)).
// Rejections and failures land back in idle with Err set; succeeded only
// leaves via Reset.
type Form struct {
	submitter Submitter

	mu          sync.Mutex
	state       State
	err         error
	referenceID string

	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State)
}

func NewForm(s Submitter) *Form {
	return &Form{submitter: s, state: StateIdle}
}

func (f *Form) transition(to State) {
	from := f.state
	f.state = to
	if f.OnTransition != nil {
		f.OnTransition(from, to)
	}
}

// Submit validates req locally and, only if valid, sends it.
// The returned error is also kept in Err for display.
func (f *Form) Submit(ctx context.Context, req models.CreateConsultationRequest) (string, error) {
	f.mu.Lock()
	switch f.state {
	case StateSucceeded:
		f.mu.Unlock()
		return "", ErrAlreadySubmitted
	case StateValidating, StateSubmitting:
		f.mu.Unlock()
		return "", ErrFormBusy
	}
	f.err = nil
	f.transition(StateValidating)

	req = Normalize(req)
	if err := Validate(req); err != nil {
		f.err = err
		f.transition(StateIdle)
		f.mu.Unlock()
		return "", err
	}
	f.transition(StateSubmitting)
	f.mu.Unlock()

	id, err := f.submitter.SubmitConsultation(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.err = fmt.Errorf("submission failed: %w", err)
		f.transition(StateIdle)
		return "", f.err
	}
	f.referenceID = id
	f.transition(StateSucceeded)
	return id, nil
}

// Reset returns a succeeded form to idle so another request can be booked.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSucceeded {
		return
	}
	f.referenceID = ""
	f.err = nil
	f.transition(StateIdle)
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err is the message to show under the form, if any.
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// ReferenceID is the confirmation ID after a successful submission.
func (f *Form) ReferenceID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.referenceID
}
