// Package collaborator holds the external services the wizard engine
// consumes but does not implement: code verification, balance reads and
// application submission. The implementations here are in-process stand-ins
// with configurable latency; every failure is returned to the caller as a
// recoverable outcome, never escalated.
package collaborator

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSendInFlight = errors.New("a code was already sent and has not expired yet")
	ErrNoCode       = errors.New("no code was sent for this identifier")
	ErrCodeExpired  = errors.New("the code has expired, request a new one")
	ErrCodeMismatch = errors.New("incorrect verification code")
)

type issuedCode struct {
	hash    []byte
	expires time.Time
}

// OTP issues and verifies one-time codes. At most one unexpired code exists
// per identifier; a repeated send while one is pending is refused, which
// gives at-most-one in-flight delivery per identifier. Codes are stored
// hashed and consumed on successful verification.
type OTP struct {
	mu    sync.Mutex
	codes map[string]issuedCode

	ttl    time.Duration
	delay  time.Duration
	digits int
	now    func() time.Time
	gen    func(digits int) (string, error)
	log    *zap.Logger
}

// OTPOption configures an OTP service.
type OTPOption func(*OTP)

func WithOTPTTL(d time.Duration) OTPOption   { return func(o *OTP) { o.ttl = d } }
func WithOTPDelay(d time.Duration) OTPOption { return func(o *OTP) { o.delay = d } }

// WithOTPClock injects the clock. Used by tests.
func WithOTPClock(fn func() time.Time) OTPOption { return func(o *OTP) { o.now = fn } }

// WithOTPGenerator injects the code generator. Used by tests.
func WithOTPGenerator(fn func(digits int) (string, error)) OTPOption {
	return func(o *OTP) { o.gen = fn }
}

func WithOTPLogger(l *zap.Logger) OTPOption { return func(o *OTP) { o.log = l } }

// NewOTP creates the service with 6-digit codes and a 5 minute TTL.
func NewOTP(opts ...OTPOption) *OTP {
	o := &OTP{
		codes:  make(map[string]issuedCode),
		ttl:    5 * time.Minute,
		digits: 6,
		now:    time.Now,
		gen:    randomDigits,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Send issues a code for the identifier. There is no real delivery channel;
// the code is written to the log instead.
func (o *OTP) Send(ctx context.Context, identifier string) error {
	if err := sleepFor(ctx, o.delay); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if c, ok := o.codes[identifier]; ok && o.now().Before(c.expires) {
		return ErrSendInFlight
	}

	code, err := o.gen(o.digits)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	o.codes[identifier] = issuedCode{hash: hash, expires: o.now().Add(o.ttl)}
	o.log.Info("verification code issued",
		zap.String("identifier", identifier),
		zap.String("code", code)) // mock delivery channel
	return nil
}

// Verify checks a code against the one issued for the identifier and
// consumes it on success.
func (o *OTP) Verify(ctx context.Context, identifier, code string) error {
	if err := sleepFor(ctx, o.delay); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	c, ok := o.codes[identifier]
	if !ok {
		return ErrNoCode
	}
	if o.now().After(c.expires) {
		delete(o.codes, identifier)
		return ErrCodeExpired
	}
	if bcrypt.CompareHashAndPassword(c.hash, []byte(code)) != nil {
		return ErrCodeMismatch
	}
	delete(o.codes, identifier)
	return nil
}

func randomDigits(n int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v), nil
}

// sleepFor simulates collaborator latency while honoring cancellation.
func sleepFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
