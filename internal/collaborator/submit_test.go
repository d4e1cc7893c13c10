package collaborator

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"exwiz/internal/model"
)

func TestSubmission_AcceptsByDefault(t *testing.T) {
	s := NewSubmission()
	if err := s.Submit(context.Background(), model.FlowProfile, map[string]string{"firstName": "Ada"}); err != nil {
		t.Fatal(err)
	}
}

func TestSubmission_DecisionRejects(t *testing.T) {
	rejected := errors.New("manual review required")
	s := NewSubmission(WithDecision(func(flow model.Flow, values map[string]string) error {
		if flow != model.FlowWithdraw {
			t.Errorf("flow = %s", flow)
		}
		return rejected
	}))
	err := s.Submit(context.Background(), model.FlowWithdraw, nil)
	if !errors.Is(err, rejected) {
		t.Fatalf("want decision error, got %v", err)
	}
}

func TestBalances_PointInTimeRead(t *testing.T) {
	b := NewBalances(map[string]decimal.Decimal{"btc": decimal.RequireFromString("0.55")})

	if got := b.Available("BTC"); !got.Equal(decimal.RequireFromString("0.55")) {
		t.Fatalf("Available(BTC) = %s", got)
	}
	if got := b.Available("DOGE"); !got.IsZero() {
		t.Fatalf("unknown currency balance = %s", got)
	}

	b.Set("BTC", decimal.RequireFromString("1.25"))
	if got := b.Available("btc"); !got.Equal(decimal.RequireFromString("1.25")) {
		t.Fatalf("after Set, Available = %s", got)
	}
}
