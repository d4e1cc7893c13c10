package collaborator

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedCode(code string) func(int) (string, error) {
	return func(int) (string, error) { return code, nil }
}

func TestOTP_SendVerify(t *testing.T) {
	o := NewOTP(WithOTPGenerator(fixedCode("123456")))
	ctx := context.Background()

	if err := o.Send(ctx, "ada@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := o.Verify(ctx, "ada@example.com", "000000"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("wrong code: want ErrCodeMismatch, got %v", err)
	}
	if err := o.Verify(ctx, "ada@example.com", "123456"); err != nil {
		t.Fatalf("correct code rejected: %v", err)
	}
	// Consumed on success.
	if err := o.Verify(ctx, "ada@example.com", "123456"); !errors.Is(err, ErrNoCode) {
		t.Fatalf("reuse: want ErrNoCode, got %v", err)
	}
}

func TestOTP_AtMostOneInFlight(t *testing.T) {
	o := NewOTP(WithOTPGenerator(fixedCode("123456")))
	ctx := context.Background()

	if err := o.Send(ctx, "ada@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := o.Send(ctx, "ada@example.com"); !errors.Is(err, ErrSendInFlight) {
		t.Fatalf("repeat send: want ErrSendInFlight, got %v", err)
	}
	// A different identifier is independent.
	if err := o.Send(ctx, "bob@example.com"); err != nil {
		t.Fatalf("second identifier blocked: %v", err)
	}
}

func TestOTP_Expiry(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	o := NewOTP(
		WithOTPGenerator(fixedCode("123456")),
		WithOTPTTL(time.Minute),
		WithOTPClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	if err := o.Send(ctx, "ada@example.com"); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Minute)
	if err := o.Verify(ctx, "ada@example.com", "123456"); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expired code: want ErrCodeExpired, got %v", err)
	}
	// Expiry frees the identifier for a fresh send.
	if err := o.Send(ctx, "ada@example.com"); err != nil {
		t.Fatalf("resend after expiry: %v", err)
	}
}

func TestOTP_VerifyUnknownIdentifier(t *testing.T) {
	o := NewOTP()
	if err := o.Verify(context.Background(), "nobody@example.com", "123456"); !errors.Is(err, ErrNoCode) {
		t.Fatalf("want ErrNoCode, got %v", err)
	}
}

func TestOTP_SendHonorsCancellation(t *testing.T) {
	o := NewOTP(WithOTPDelay(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := o.Send(ctx, "ada@example.com"); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
