// Package registration drives the four-step sign-up flow. Transitions are
// strictly forward; abandoning the flow loses all transient state and the
// wizard must restart from step one.
package registration

import (
	"context"
	"fmt"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/apperrors"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/logger"
)

type Step int

const (
	StepContact Step = iota + 1
	StepVerification
	StepUsername
	StepSecurity
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepContact:
		return "contact"
	case StepVerification:
		return "verification"
	case StepUsername:
		return "username"
	case StepSecurity:
		return "security"
	case StepComplete:
		return "complete"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Backend is the slice of the API client the wizard needs.
type Backend interface {
	RegisterInitiate(ctx context.Context, email, phone string) (string, error)
	VerifyOTP(ctx context.Context, userID, emailOTP, phoneOTP string) (string, error)
	SetUsername(ctx context.Context, username, tempToken string) (string, error)
	SetPassword(ctx context.Context, password, tempToken string) error
}

// Each state carries only the data valid at that step, so "on step three
// with no temp token" cannot be represented at all.
type state interface {
	step() Step
}

type contactState struct{}

type verificationState struct {
	userID string
}

type usernameState struct {
	userID    string
	tempToken string
}

type securityState struct {
	userID    string
	tempToken string
}

type completeState struct{}

func (contactState) step() Step      { return StepContact }
func (verificationState) step() Step { return StepVerification }
func (usernameState) step() Step     { return StepUsername }
func (securityState) step() Step     { return StepSecurity }
func (completeState) step() Step     { return StepComplete }

// Wizard is the registration state machine. Not safe for concurrent use;
// it models a single interactive flow.
type Wizard struct {
	backend Backend
	logger  logger.Logger
	state   state
}

func New(backend Backend, log logger.Logger) (*Wizard, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend must not be nil")
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Wizard{
		backend: backend,
		logger:  log,
		state:   contactState{},
	}, nil
}

// Step reports the step the wizard currently waits on.
func (w *Wizard) Step() Step {
	return w.state.step()
}

// Restart drops all transient session data and returns to step one.
func (w *Wizard) Restart() {
	w.state = contactState{}
}

// SubmitContact validates and submits step one. On success the returned user
// id is retained and the wizard advances to verification.
func (w *Wizard) SubmitContact(ctx context.Context, in ContactInput) error {
	if _, ok := w.state.(contactState); !ok {
		return w.stepError(StepContact)
	}
	if err := validateInput(in); err != nil {
		return err
	}

	userID, err := w.backend.RegisterInitiate(ctx, in.Email, in.Phone)
	if err != nil {
		return err
	}

	w.logger.Debug("Registration initiated", "user_id", userID)
	w.state = verificationState{userID: userID}
	return nil
}

// SubmitVerification validates and submits both one-time codes. On success
// the first temp token is stored and the wizard advances to the username step.
// On failure the user id is retained and the step may be retried.
func (w *Wizard) SubmitVerification(ctx context.Context, in VerificationInput) error {
	s, ok := w.state.(verificationState)
	if !ok {
		return w.stepError(StepVerification)
	}
	if s.userID == "" {
		return apperrors.ErrMissingUserID
	}
	if err := validateInput(in); err != nil {
		return err
	}

	tempToken, err := w.backend.VerifyOTP(ctx, s.userID, in.EmailOTP, in.PhoneOTP)
	if err != nil {
		return err
	}

	w.state = usernameState{userID: s.userID, tempToken: tempToken}
	return nil
}

// SubmitUsername claims the username authenticated with the current temp
// token and rotates the token to the value scoped to the final step.
func (w *Wizard) SubmitUsername(ctx context.Context, in UsernameInput) error {
	s, ok := w.state.(usernameState)
	if !ok {
		return w.stepError(StepUsername)
	}
	if err := validateInput(in); err != nil {
		return err
	}

	rotated, err := w.backend.SetUsername(ctx, in.Username, s.tempToken)
	if err != nil {
		return err
	}

	w.state = securityState{userID: s.userID, tempToken: rotated}
	return nil
}

// SubmitSecurity completes the flow. On success every transient artifact is
// discarded and the caller is expected to redirect to the login entry point.
func (w *Wizard) SubmitSecurity(ctx context.Context, in SecurityInput) error {
	s, ok := w.state.(securityState)
	if !ok {
		return w.stepError(StepSecurity)
	}
	if err := validateInput(in); err != nil {
		return err
	}

	if err := w.backend.SetPassword(ctx, in.Password, s.tempToken); err != nil {
		return err
	}

	w.logger.Info("Registration complete", "user_id", s.userID)
	w.state = completeState{}
	return nil
}

// stepError classifies an out-of-order submit. Calling an authenticated step
// before a temp token was issued is the unrecoverable precondition failure;
// everything else is a plain ordering error.
func (w *Wizard) stepError(wanted Step) error {
	current := w.state.step()
	if current == StepComplete {
		return apperrors.ErrWizardComplete
	}
	if wanted >= StepUsername && current < StepUsername {
		return apperrors.ErrMissingTempToken
	}
	return fmt.Errorf("wizard is on step %q, not %q", current, wanted)
}
