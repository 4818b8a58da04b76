package otp

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	email, mobile, code string
}

type fakeNotifier struct {
	sent []sentMail
	err  error
}

func (f *fakeNotifier) SendOTP(email, mobile, code string) error {
	f.sent = append(f.sent, sentMail{email, mobile, code})
	return f.err
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestService(notifier *fakeNotifier) (*Service, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewService(notifier, DefaultCooldown, DefaultExpiry)
	svc.now = clock.now
	return svc, clock
}

func TestRequestMissingContact(t *testing.T) {
	svc, _ := newTestService(&fakeNotifier{})

	_, err := svc.Request(nil, "", "a@b.com")
	assert.ErrorIs(t, err, ErrMissingContact)

	_, err = svc.Request(nil, "0123456789", "")
	assert.ErrorIs(t, err, ErrMissingContact)
}

func TestRequestGeneratesAndDispatches(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, clock := newTestService(notifier)

	sess, err := svc.Request(nil, "0123456789", "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{3}$`), sess.Code, "code drawn from 1000-9999")
	assert.False(t, sess.Verified)
	assert.Equal(t, clock.t, sess.IssuedAt)
	assert.Equal(t, clock.t.Add(10*time.Minute), sess.ExpiresAt)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, sentMail{"a@b.com", "0123456789", sess.Code}, notifier.sent[0])
}

func TestRequestCooldown(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, clock := newTestService(notifier)

	sess, err := svc.Request(nil, "0123456789", "a@b.com")
	require.NoError(t, err)

	// Second request inside the 30s window is refused.
	clock.advance(12 * time.Second)
	_, err = svc.Request(sess, "0123456789", "a@b.com")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 18, svc.CooldownRemaining(sess))

	// After the cooldown a resend succeeds and a fresh code is issued.
	clock.advance(18 * time.Second)
	assert.Equal(t, 0, svc.CooldownRemaining(sess))

	resent, err := svc.Request(sess, "0123456789", "a@b.com")
	require.NoError(t, err)
	assert.Same(t, sess, resent, "resend reuses the existing session")
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, sess.Code, notifier.sent[1].code)
}

func TestResendReplacesCodeOnly(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, clock := newTestService(notifier)

	sess, err := svc.Request(nil, "0123456789", "a@b.com")
	require.NoError(t, err)

	clock.advance(31 * time.Second)
	_, err = svc.Request(sess, "0123456789", "a@b.com")
	require.NoError(t, err)

	// The expected code is the latest dispatched one; the old code no
	// longer verifies once they differ.
	assert.Equal(t, notifier.sent[1].code, sess.Code)
	if notifier.sent[0].code != notifier.sent[1].code {
		assert.ErrorIs(t, svc.Verify(sess, notifier.sent[0].code), ErrMismatch)
	}
	require.NoError(t, svc.Verify(sess, sess.Code))
}

func TestRequestNotifierFailure(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc, _ := newTestService(notifier)

	// Dispatch failure surfaces to the caller but does not roll back the
	// generated code or the cooldown.
	sess, err := svc.Request(nil, "0123456789", "a@b.com")
	require.Error(t, err)
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.Code)

	_, err = svc.Request(sess, "0123456789", "a@b.com")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestVerify(t *testing.T) {
	svc, clock := newTestService(&fakeNotifier{})
	sess := &Session{Code: "1234", ExpiresAt: clock.t.Add(10 * time.Minute)}

	assert.ErrorIs(t, svc.Verify(sess, "12a4"), ErrInvalidFormat)
	assert.ErrorIs(t, svc.Verify(sess, "123"), ErrInvalidFormat)
	assert.ErrorIs(t, svc.Verify(sess, "12345"), ErrInvalidFormat)

	assert.ErrorIs(t, svc.Verify(sess, "0000"), ErrMismatch)
	assert.False(t, sess.Verified)

	require.NoError(t, svc.Verify(sess, "1234"))
	assert.True(t, sess.Verified)

	// Verified stays true; a repeated correct code is not an error.
	require.NoError(t, svc.Verify(sess, "1234"))
	assert.True(t, sess.Verified)
}

func TestVerifyNoSession(t *testing.T) {
	svc, _ := newTestService(&fakeNotifier{})
	assert.ErrorIs(t, svc.Verify(nil, "1234"), ErrMismatch)
}

// The upstream behavior only advertised the 10-minute expiry without
// checking it at verification time. Here the window is enforced; this
// test pins that deliberate change.
func TestVerifyExpiredCode(t *testing.T) {
	svc, clock := newTestService(&fakeNotifier{})
	sess := &Session{Code: "1234", ExpiresAt: clock.t.Add(10 * time.Minute)}

	clock.advance(10*time.Minute + time.Second)
	assert.ErrorIs(t, svc.Verify(sess, "1234"), ErrExpired)
	assert.False(t, sess.Verified)
}

func TestCooldownRemainingRoundsUp(t *testing.T) {
	svc, clock := newTestService(&fakeNotifier{})
	sess := &Session{CooldownUntil: clock.t.Add(500 * time.Millisecond)}
	assert.Equal(t, 1, svc.CooldownRemaining(sess))
	assert.Equal(t, 0, svc.CooldownRemaining(nil))
}
