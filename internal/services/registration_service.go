package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/example/apizrace/internal/form"
	"github.com/example/apizrace/internal/models"
	"github.com/example/apizrace/internal/store"
)

// Submission failure kinds. Every one of them returns control to the
// user with a corrective message; nothing here is fatal to the process.
var (
	ErrValidationFailed    = errors.New("registration: validation failed")
	ErrStoreUnavailable    = errors.New("registration: backing store unavailable")
	ErrDuplicateIdentity   = errors.New("registration: identity number already registered")
	ErrDuplicateEmail      = errors.New("registration: email already registered")
	ErrMissingRequired     = errors.New("registration: required field missing")
	ErrInvalidData         = errors.New("registration: invalid field data")
	ErrConstraintViolation = errors.New("registration: registration data rejected")
)

// RegistrationStore is the slice of the backing store the submission
// flow consumes.
type RegistrationStore interface {
	Probe() error
	FindByIdentityNumber(identityNumber string) (*models.Registration, error)
	Insert(reg *models.Registration) error
}

// ConfirmationSender dispatches the post-registration email.
type ConfirmationSender interface {
	SendConfirmation(reg *models.Registration) error
}

// RegistrationService orchestrates final validation, the uniqueness
// check, persistence and the confirmation email.
type RegistrationService struct {
	store  RegistrationStore
	mailer ConfirmationSender
}

// NewRegistrationService wires the submission controller.
func NewRegistrationService(st RegistrationStore, mailer ConfirmationSender) *RegistrationService {
	return &RegistrationService{store: st, mailer: mailer}
}

// Submit runs the full submission sequence. On any failure the form and
// its step are left untouched so the user can correct and retry; only a
// successful insert resets the form to its empty step-1 default.
func (s *RegistrationService) Submit(f *form.Form) (uuid.UUID, error) {
	for _, step := range []int{form.StepRaceDetails, form.StepPersonalDetails} {
		if ok, _ := f.ValidateStep(step); !ok {
			return uuid.Nil, ErrValidationFailed
		}
	}

	if err := s.store.Probe(); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	existing, err := s.store.FindByIdentityNumber(f.Field("identityCardNumber"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if existing != nil {
		return uuid.Nil, ErrDuplicateIdentity
	}

	reg := f.Record()
	if err := s.store.Insert(reg); err != nil {
		return uuid.Nil, submissionError(err)
	}

	// Confirmation mail is best-effort: a notifier failure must not fail
	// a registration that is already persisted.
	if err := s.mailer.SendConfirmation(reg); err != nil {
		log.Printf("[Registration] confirmation email to %s failed: %v", reg.Email, err)
	}

	f.Reset()
	return reg.ID, nil
}

// submissionError maps a classified store error to the submission
// failure kind shown to the user.
func submissionError(err error) error {
	var cerr *store.ConstraintError
	if !errors.As(err, &cerr) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	switch cerr.Kind {
	case store.ConstraintDuplicate:
		if cerr.Column == "identity_card_number" {
			return ErrDuplicateIdentity
		}
		return ErrDuplicateEmail
	case store.ConstraintMissingRequired:
		return ErrMissingRequired
	case store.ConstraintInvalidData:
		return ErrInvalidData
	}
	return ErrConstraintViolation
}

// Message renders the human-readable text for a submission failure.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return "Please fill in all required fields correctly before submitting."
	case errors.Is(err, ErrStoreUnavailable):
		return "We could not reach the registration system. Please try again in a few moments."
	case errors.Is(err, ErrDuplicateIdentity):
		return "The IC number you entered is already registered. Please use a different IC number or contact support."
	case errors.Is(err, ErrDuplicateEmail):
		return "This email is already registered. Please use a different email address or contact support."
	case errors.Is(err, ErrMissingRequired):
		return "Please fill in all required fields before submitting."
	case errors.Is(err, ErrInvalidData):
		return "Please check your information and try again. Some fields contain invalid characters."
	case errors.Is(err, ErrConstraintViolation):
		return "One or more fields contain invalid data. Please check your entries and try again."
	}
	return "We encountered an issue processing your registration. Please try again."
}
