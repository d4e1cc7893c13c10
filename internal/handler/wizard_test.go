package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"exwiz/internal/api"
	"exwiz/internal/collaborator"
	"exwiz/internal/handler"
	"exwiz/internal/model"
	"exwiz/internal/session"
	"exwiz/internal/wizard"
)

const testCode = "123456"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	balances := collaborator.NewBalances(map[string]decimal.Decimal{
		"BTC": decimal.RequireFromString("0.55"),
	})
	sessions := session.NewManager(
		session.WithStoreOptions(wizard.WithBalanceFunc(balances.Available)),
	)
	otp := collaborator.NewOTP(
		collaborator.WithOTPGenerator(func(int) (string, error) { return testCode, nil }),
	)

	router, err := api.SetupRouter(handler.Deps{
		Sessions:      sessions,
		OTP:           otp,
		Balances:      balances,
		Submit:        collaborator.NewSubmission(),
		SessionSecret: []byte("test-secret"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func createSession(t *testing.T, router http.Handler, flow string) model.CreateSessionResponse {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/wizard/sessions", "", model.CreateSessionRequest{Flow: flow})
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", w.Code, w.Body.String())
	}
	return decode[model.CreateSessionResponse](t, w)
}

func setField(t *testing.T, router http.Handler, s model.CreateSessionResponse, name, value string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/wizard/sessions/"+s.SessionID+"/fields", s.Token,
		model.SetFieldRequest{Name: name, Value: value})
	if w.Code != http.StatusOK {
		t.Fatalf("set %s: %d %s", name, w.Code, w.Body.String())
	}
}

func next(t *testing.T, router http.Handler, s model.CreateSessionResponse) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, router, http.MethodPost, "/wizard/sessions/"+s.SessionID+"/next", s.Token, nil)
}

func TestCreateSession_UnknownFlow(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/wizard/sessions", "", model.CreateSessionRequest{Flow: "teleport"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)
	s := createSession(t, router, "deposit")

	w := doJSON(t, router, http.MethodGet, "/wizard/sessions/"+s.SessionID, "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/wizard/sessions/"+s.SessionID, "garbage", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", w.Code)
	}

	// A valid token for a different session must not open this one.
	other := createSession(t, router, "deposit")
	w = doJSON(t, router, http.MethodGet, "/wizard/sessions/"+s.SessionID, other.Token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("foreign token: %d", w.Code)
	}
}

func TestWithdrawWalkthrough(t *testing.T) {
	router := newTestRouter(t)
	s := createSession(t, router, "withdraw")
	if s.State.CurrentStep != "currency" {
		t.Fatalf("initial step %s", s.State.CurrentStep)
	}

	// Advancing an empty step is refused with the state attached.
	w := next(t, router, s)
	if w.Code != http.StatusConflict {
		t.Fatalf("empty next: %d", w.Code)
	}
	refused := decode[model.TransitionResponse](t, w)
	if refused.Outcome != "refused" || refused.Reason != "stepIncomplete" {
		t.Fatalf("refusal %+v", refused)
	}

	setField(t, router, s, model.FieldCurrency, "BTC")
	if w = next(t, router, s); w.Code != http.StatusOK {
		t.Fatalf("next after currency: %d %s", w.Code, w.Body.String())
	}
	setField(t, router, s, model.FieldNetwork, "bitcoin")
	if w = next(t, router, s); w.Code != http.StatusOK {
		t.Fatalf("next after network: %d %s", w.Code, w.Body.String())
	}

	// More than the seeded balance: the step reports it and refuses to move.
	setField(t, router, s, model.FieldAddress, "bc1qxyzabcdefghijklmnopqrs")
	setField(t, router, s, model.FieldAmount, "0.9")

	w = doJSON(t, router, http.MethodGet, "/wizard/sessions/"+s.SessionID, s.Token, nil)
	proj := decode[model.StateProjection](t, w)
	if !hasError(proj.Errors, model.FieldAmount, "Insufficient balance. Available: 0.55 BTC") {
		t.Fatalf("errors %+v", proj.Errors)
	}
	if w = next(t, router, s); w.Code != http.StatusConflict {
		t.Fatalf("overdraw next: %d", w.Code)
	}

	setField(t, router, s, model.FieldAmount, "0.1")
	w = next(t, router, s)
	if w.Code != http.StatusOK {
		t.Fatalf("next after fix: %d %s", w.Code, w.Body.String())
	}
	moved := decode[model.TransitionResponse](t, w)
	if moved.To != "review" {
		t.Fatalf("landed on %s", moved.To)
	}

	w = doJSON(t, router, http.MethodPost, "/wizard/sessions/"+s.SessionID+"/submit", s.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}
	if resp := decode[model.SubmitResponse](t, w); !resp.Accepted {
		t.Fatalf("submit not accepted: %+v", resp)
	}

	// An accepted submission ends the session.
	w = doJSON(t, router, http.MethodGet, "/wizard/sessions/"+s.SessionID, s.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("after submit: %d", w.Code)
	}
}

func TestSubmit_RefusedBeforeTerminal(t *testing.T) {
	router := newTestRouter(t)
	s := createSession(t, router, "withdraw")

	w := doJSON(t, router, http.MethodPost, "/wizard/sessions/"+s.SessionID+"/submit", s.Token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("submit on first step: %d", w.Code)
	}
	resp := decode[model.TransitionResponse](t, w)
	if resp.Outcome != "refused" {
		t.Fatalf("outcome %s", resp.Outcome)
	}
}

func TestOTPFlow(t *testing.T) {
	router := newTestRouter(t)
	s := createSession(t, router, "profile")

	send := func() *httptest.ResponseRecorder {
		return doJSON(t, router, http.MethodPost, "/wizard/sessions/"+s.SessionID+"/otp/send", s.Token,
			model.OTPSendRequest{Identifier: "a@b.example"})
	}

	if w := send(); w.Code != http.StatusNoContent {
		t.Fatalf("send: %d %s", w.Code, w.Body.String())
	}
	// A second send while the first code is live is refused.
	if w := send(); w.Code != http.StatusTooManyRequests {
		t.Fatalf("repeat send: %d", w.Code)
	}

	w := doJSON(t, router, http.MethodPost, "/wizard/sessions/"+s.SessionID+"/otp/verify", s.Token,
		model.OTPVerifyRequest{Identifier: "a@b.example", Code: "000000"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("wrong code: %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/wizard/sessions/"+s.SessionID+"/otp/verify", s.Token,
		model.OTPVerifyRequest{Identifier: "a@b.example", Code: testCode})
	if w.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", w.Code, w.Body.String())
	}
	proj := decode[model.StateProjection](t, w)
	if proj.Values[model.FieldOTPVerified] != "true" {
		t.Fatalf("values %v", proj.Values)
	}
}

func TestDepositAddress(t *testing.T) {
	router := newTestRouter(t)
	s := createSession(t, router, "deposit")

	// Needs an active network first.
	w := doJSON(t, router, http.MethodGet, "/wizard/sessions/"+s.SessionID+"/deposit-address", s.Token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("no network: %d", w.Code)
	}

	setField(t, router, s, model.FieldCurrency, "BTC")
	setField(t, router, s, model.FieldNetwork, "bitcoin")

	w = doJSON(t, router, http.MethodGet, "/wizard/sessions/"+s.SessionID+"/deposit-address", s.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("deposit address: %d %s", w.Code, w.Body.String())
	}
	first := decode[model.DepositAddressResponse](t, w)
	if !strings.HasPrefix(first.Address, "bc1") || first.QR == "" {
		t.Fatalf("response %+v", first)
	}
	if first.Currency != "BTC" || first.Confirmations != 3 {
		t.Fatalf("response %+v", first)
	}

	// The address sticks to the session.
	w = doJSON(t, router, http.MethodGet, "/wizard/sessions/"+s.SessionID+"/deposit-address", s.Token, nil)
	second := decode[model.DepositAddressResponse](t, w)
	if second.Address != first.Address {
		t.Fatalf("address changed: %s then %s", first.Address, second.Address)
	}
}

func TestDepositAddress_WrongFlow(t *testing.T) {
	router := newTestRouter(t)
	s := createSession(t, router, "withdraw")

	w := doJSON(t, router, http.MethodGet, "/wizard/sessions/"+s.SessionID+"/deposit-address", s.Token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status %d", w.Code)
	}
}

func TestBalanceEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/wizard/balance?currency=btc", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d %s", w.Code, w.Body.String())
	}
	resp := decode[model.BalanceResponse](t, w)
	if resp.Currency != "BTC" || resp.Available != "0.55" {
		t.Fatalf("response %+v", resp)
	}

	w = doJSON(t, router, http.MethodGet, "/wizard/balance", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing currency: %d", w.Code)
	}
}

func hasError(errs []model.ValidationError, field, message string) bool {
	for _, e := range errs {
		if e.Field == field && e.Message == message {
			return true
		}
	}
	return false
}
