// Package otp issues and verifies the short-lived passcode that proves
// control of the registrant's email address before step 1 can complete.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

var (
	// ErrMissingContact is returned when mobile or email is absent.
	ErrMissingContact = errors.New("otp: mobile and email are required")
	// ErrRateLimited is returned while the resend cooldown is still active.
	ErrRateLimited = errors.New("otp: resend cooldown active")
	// ErrInvalidFormat is returned when the submitted code is not 4 digits.
	ErrInvalidFormat = errors.New("otp: code must be exactly 4 digits")
	// ErrMismatch is returned when the submitted code does not match.
	ErrMismatch = errors.New("otp: code does not match")
	// ErrExpired is returned once the code's validity window has passed.
	ErrExpired = errors.New("otp: code expired")
)

// Advertised timing of the flow: a resend may be requested every 30
// seconds and a code stays valid for 10 minutes.
const (
	DefaultCooldown = 30 * time.Second
	DefaultExpiry   = 10 * time.Minute
)

var reCode = regexp.MustCompile(`^\d{4}$`)

// Notifier dispatches a generated code to the registrant.
type Notifier interface {
	SendOTP(email, mobile, code string) error
}

// Session tracks one contact-verification attempt. It lives only inside
// the active form session and is never persisted.
type Session struct {
	Code          string
	IssuedAt      time.Time
	ExpiresAt     time.Time
	Verified      bool
	CooldownUntil time.Time
}

// Service generates, dispatches and checks passcodes.
type Service struct {
	notifier Notifier
	cooldown time.Duration
	expiry   time.Duration
	now      func() time.Time
}

// NewService constructs a Service with the given resend cooldown and
// code validity window.
func NewService(notifier Notifier, cooldown, expiry time.Duration) *Service {
	return &Service{
		notifier: notifier,
		cooldown: cooldown,
		expiry:   expiry,
		now:      time.Now,
	}
}

// Request generates a fresh 4-digit code and dispatches it by email.
// Passing the previous session makes this a resend: the expected code is
// replaced in place and the cooldown restarts, but the session's verified
// state is otherwise untouched. A notifier failure is reported to the
// caller without rolling back the generated code or the cooldown.
func (s *Service) Request(sess *Session, mobile, email string) (*Session, error) {
	if mobile == "" || email == "" {
		return nil, ErrMissingContact
	}

	now := s.now()
	if sess != nil && now.Before(sess.CooldownUntil) {
		return nil, ErrRateLimited
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("otp: generate code: %w", err)
	}

	if sess == nil {
		sess = &Session{}
	}
	sess.Code = code
	sess.IssuedAt = now
	sess.ExpiresAt = now.Add(s.expiry)
	sess.CooldownUntil = now.Add(s.cooldown)

	if err := s.notifier.SendOTP(email, mobile, code); err != nil {
		return sess, fmt.Errorf("otp: dispatch: %w", err)
	}
	return sess, nil
}

// Verify checks the submitted code against the session. On success the
// session is marked verified and stays verified.
func (s *Service) Verify(sess *Session, submitted string) error {
	if !reCode.MatchString(submitted) {
		return ErrInvalidFormat
	}
	if sess == nil || sess.Code == "" {
		return ErrMismatch
	}
	if s.now().After(sess.ExpiresAt) {
		return ErrExpired
	}
	if submitted != sess.Code {
		return ErrMismatch
	}
	sess.Verified = true
	return nil
}

// CooldownRemaining returns the whole seconds left before another code
// may be requested, or 0 once the cooldown has elapsed.
func (s *Service) CooldownRemaining(sess *Session) int {
	if sess == nil {
		return 0
	}
	left := sess.CooldownUntil.Sub(s.now())
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}

// generateCode draws uniformly from the 4-digit space 1000-9999.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
