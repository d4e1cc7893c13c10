package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"exwiz/internal/model"
	"exwiz/internal/policy"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func fieldErrors(errs []model.ValidationError, field string) []string {
	var msgs []string
	for _, e := range errs {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

func TestRequiredFields_OneErrorEach(t *testing.T) {
	in := Input{
		Mode:     ModeProfile,
		Required: []string{model.FieldFirstName, model.FieldLastName, model.FieldDateOfBirth},
		Values: map[string]string{
			model.FieldFirstName: "Ada",
			model.FieldLastName:  "   ", // whitespace counts as empty
		},
	}
	errs := Validate(in)
	if len(errs) != 2 {
		t.Fatalf("want 2 errors, got %d: %v", len(errs), errs)
	}
	for _, f := range []string{model.FieldLastName, model.FieldDateOfBirth} {
		if got := fieldErrors(errs, f); len(got) != 1 {
			t.Errorf("field %s: want exactly 1 error, got %d", f, len(got))
		}
	}
}

func TestValidate_TotalOnAbsentInput(t *testing.T) {
	// Nil values, empty policies: must not panic and must be deterministic.
	in := Input{Mode: ModeWithdraw, Required: []string{model.FieldAmount}}
	a := Validate(in)
	b := Validate(in)
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("want 1 required error on both passes, got %d and %d", len(a), len(b))
	}
	if a[0] != b[0] {
		t.Fatalf("validation not deterministic: %v vs %v", a[0], b[0])
	}
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	in := Input{
		Mode:     ModeWithdraw,
		Currency: policy.LookupCurrency("BTC"),
		Values: map[string]string{
			model.FieldNetwork: "bitcoin",
			model.FieldAmount:  "0.6",
		},
		AvailableBalance: dec(t, "0.55"),
	}
	errs := Validate(in)
	msgs := fieldErrors(errs, model.FieldAmount)
	if len(msgs) != 1 {
		t.Fatalf("want 1 amount error, got %v", msgs)
	}
	if msgs[0] != "Insufficient balance. Available: 0.55 BTC" {
		t.Errorf("unexpected message %q", msgs[0])
	}
}

func TestWithdraw_MinimumDistinctFromBalance(t *testing.T) {
	in := Input{
		Mode:     ModeWithdraw,
		Currency: policy.LookupCurrency("BTC"),
		Values: map[string]string{
			model.FieldNetwork: "bitcoin",
			model.FieldAmount:  "0.001", // below minWithdraw 0.002, above fee 0.0005
		},
		AvailableBalance: dec(t, "0.55"),
	}
	msgs := fieldErrors(Validate(in), model.FieldAmount)
	if len(msgs) != 1 {
		t.Fatalf("want 1 amount error, got %v", msgs)
	}
	if msgs[0] != "Minimum withdrawal is 0.002 BTC" {
		t.Errorf("unexpected message %q", msgs[0])
	}

	// Shrinking the balance below the amount adds the balance error
	// independently of the minimum rule.
	in.AvailableBalance = dec(t, "0.0001")
	msgs = fieldErrors(Validate(in), model.FieldAmount)
	if len(msgs) != 2 {
		t.Fatalf("want 2 amount errors, got %v", msgs)
	}
}

func TestWithdraw_AmountMustExceedFee(t *testing.T) {
	in := Input{
		Mode:     ModeWithdraw,
		Currency: policy.LookupCurrency("BTC"),
		Values: map[string]string{
			model.FieldNetwork: "bitcoin",
			model.FieldAmount:  "0.0004", // below fee 0.0005
		},
		AvailableBalance: dec(t, "1"),
	}
	msgs := fieldErrors(Validate(in), model.FieldAmount)
	found := false
	for _, m := range msgs {
		if strings.Contains(m, "network fee") {
			found = true
		}
	}
	if !found {
		t.Errorf("want a network fee error, got %v", msgs)
	}
}

func TestAmount_ShapeRules(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"abc", "Enter a valid amount"},
		{"0", "Amount must be greater than zero"},
		{"-1", "Amount must be greater than zero"},
	}
	for _, c := range cases {
		in := Input{
			Mode:     ModeDeposit,
			Currency: policy.LookupCurrency("BTC"),
			Values: map[string]string{
				model.FieldNetwork: "bitcoin",
				model.FieldAmount:  c.amount,
			},
		}
		msgs := fieldErrors(Validate(in), model.FieldAmount)
		if len(msgs) != 1 || msgs[0] != c.want {
			t.Errorf("amount %q: want [%q], got %v", c.amount, c.want, msgs)
		}
	}
}

func TestDeposit_Minimum(t *testing.T) {
	in := Input{
		Mode:     ModeDeposit,
		Currency: policy.LookupCurrency("BTC"),
		Values: map[string]string{
			model.FieldNetwork: "bitcoin",
			model.FieldAmount:  "0.00005", // below minDeposit 0.0001
		},
	}
	msgs := fieldErrors(Validate(in), model.FieldAmount)
	if len(msgs) != 1 || msgs[0] != "Minimum deposit is 0.0001 BTC" {
		t.Errorf("unexpected %v", msgs)
	}
}

func TestNetwork_InactiveRejected(t *testing.T) {
	in := Input{
		Mode:     ModeDeposit,
		Currency: policy.LookupCurrency("BTC"),
		Values:   map[string]string{model.FieldNetwork: "lightning"},
	}
	if msgs := fieldErrors(Validate(in), model.FieldNetwork); len(msgs) != 1 {
		t.Errorf("inactive network: want 1 error, got %v", msgs)
	}
}

func TestAddress_LengthHeuristic(t *testing.T) {
	base := func(addr string) Input {
		return Input{
			Mode:     ModeWithdraw,
			Currency: policy.LookupCurrency("BTC"),
			Values:   map[string]string{model.FieldAddress: addr},
		}
	}
	if msgs := fieldErrors(Validate(base("too-short")), model.FieldAddress); len(msgs) != 1 {
		t.Errorf("short address: want 1 error, got %v", msgs)
	}
	if msgs := fieldErrors(Validate(base("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7k")), model.FieldAddress); len(msgs) != 0 {
		t.Errorf("long address: want no error, got %v", msgs)
	}
}

func TestAgeRule_Boundary(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		dob  string
		ok   bool
	}{
		{"18th birthday tomorrow", "2008-09-01", false},
		{"18th birthday yesterday", "2008-08-30", true},
		{"18th birthday today", "2008-08-31", true},
		{"way too young", "2020-01-01", false},
		{"clearly adult", "1990-05-20", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := Input{
				Mode:    ModeProfile,
				Country: policy.LookupCountry("GB"),
				Values:  map[string]string{model.FieldDateOfBirth: c.dob},
				Now:     now,
			}
			msgs := fieldErrors(Validate(in), model.FieldDateOfBirth)
			if c.ok && len(msgs) != 0 {
				t.Errorf("dob %s: want accept, got %v", c.dob, msgs)
			}
			if !c.ok && len(msgs) != 1 {
				t.Errorf("dob %s: want reject, got %v", c.dob, msgs)
			}
		})
	}
}

func TestDateOfBirth_Unparseable(t *testing.T) {
	in := Input{
		Mode:   ModeProfile,
		Values: map[string]string{model.FieldDateOfBirth: "31/08/1990"},
	}
	msgs := fieldErrors(Validate(in), model.FieldDateOfBirth)
	if len(msgs) != 1 || msgs[0] != "Enter a valid date of birth" {
		t.Errorf("unexpected %v", msgs)
	}
}

func TestDocumentType_MustMatchCountry(t *testing.T) {
	in := Input{
		Mode:    ModeProfile,
		Country: policy.LookupCountry("DE"), // passport, national_id
		Values:  map[string]string{model.FieldDocumentType: policy.DocDriversLicense},
	}
	if msgs := fieldErrors(Validate(in), model.FieldDocumentType); len(msgs) != 1 {
		t.Errorf("want document type error, got %v", msgs)
	}

	in.Values[model.FieldDocumentType] = policy.DocPassport
	if msgs := fieldErrors(Validate(in), model.FieldDocumentType); len(msgs) != 0 {
		t.Errorf("accepted type rejected: %v", msgs)
	}
}
