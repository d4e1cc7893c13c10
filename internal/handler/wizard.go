package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"exwiz/internal/auth"
	"exwiz/internal/client"
	"exwiz/internal/collaborator"
	"exwiz/internal/common"
	"exwiz/internal/deposit"
	"exwiz/internal/model"
	"exwiz/internal/session"
	"exwiz/internal/wizard"
)

// depositAddressField caches the generated address inside the session state
// so repeated reads return the same address.
const depositAddressField = "depositAddress"

// WizardHandler serves the wizard session API.
type WizardHandler struct {
	sessions *session.Manager
	otp      *collaborator.OTP
	balances *collaborator.Balances
	submit   *collaborator.Submission
	rates    *client.RateClient

	secret   []byte
	tokenTTL time.Duration
	log      *zap.Logger
}

// Deps carries the collaborators injected into the handler.
type Deps struct {
	Sessions *session.Manager
	OTP      *collaborator.OTP
	Balances *collaborator.Balances
	Submit   *collaborator.Submission
	Rates    *client.RateClient

	SessionSecret []byte
	SessionTTL    time.Duration
	Logger        *zap.Logger
}

// NewWizardHandler creates the handler with its collaborators.
func NewWizardHandler(d Deps) (*WizardHandler, error) {
	if d.Sessions == nil {
		return nil, errors.New("session manager is required")
	}
	if len(d.SessionSecret) == 0 {
		return nil, errors.New("session secret is required")
	}
	if d.SessionTTL <= 0 {
		d.SessionTTL = time.Hour
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &WizardHandler{
		sessions: d.Sessions,
		otp:      d.OTP,
		balances: d.Balances,
		submit:   d.Submit,
		rates:    d.Rates,
		secret:   d.SessionSecret,
		tokenTTL: d.SessionTTL,
		log:      d.Logger,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

// projection builds the read-only view of a store. Must be called while
// holding the session lock.
func projection(st *wizard.Store) model.StateProjection {
	cur := st.CurrentStep()
	steps := st.EffectiveSteps()
	infos := make([]model.StepInfo, 0, len(steps))
	for _, d := range steps {
		infos = append(infos, model.StepInfo{
			ID:       d.ID,
			Title:    d.Title,
			Order:    d.Order,
			Current:  d.ID == cur.ID,
			Complete: st.Complete(d),
			Terminal: d.Terminal,
		})
	}
	s := st.State()
	errs := st.Errors()
	if errs == nil {
		errs = []model.ValidationError{}
	}
	return model.StateProjection{
		Flow:        s.Flow,
		CurrentStep: cur.ID,
		Steps:       infos,
		Values:      s.Fields,
		Errors:      errs,
	}
}

// authorized resolves the session and checks the bearer token against it.
func (h *WizardHandler) authorized(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := mux.Vars(r)["id"]
	s, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session_not_found", "Session not found")
		return nil, false
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		writeError(w, http.StatusUnauthorized, "missing_token", "Authorization header required")
		return nil, false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if err := auth.Authorize(h.secret, token, id); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token", err.Error())
		return nil, false
	}
	return s, true
}

// CreateSession handles POST /wizard/sessions
// @Summary      Start a wizard session
// @Description  Creates a new wizard session for a flow, or resumes a persisted one
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateSessionRequest  true  "Flow to start"
// @Success      201      {object}  model.CreateSessionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wizard/sessions [post]
func (h *WizardHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var (
		s   *session.Session
		err error
	)
	if req.Resume != "" {
		s, err = h.sessions.Resume(req.Resume)
	} else {
		flow := model.Flow(req.Flow)
		if !flow.Valid() {
			writeError(w, http.StatusBadRequest, "unknown_flow", "Flow must be profile, deposit or withdraw")
			return
		}
		s, err = h.sessions.Create(flow)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "session_failed", err.Error())
		return
	}

	token, err := auth.NewToken(h.secret, s.ID, h.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_failed", err.Error())
		return
	}

	var proj model.StateProjection
	s.With(func(st *wizard.Store) { proj = projection(st) })

	writeJSON(w, http.StatusCreated, model.CreateSessionResponse{
		SessionID: s.ID,
		Token:     token,
		State:     proj,
	})
}

// GetSession handles GET /wizard/sessions/{id}
// @Summary      Read session state
// @Description  Returns the current step, effective steps, values and validation errors
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  model.StateProjection
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wizard/sessions/{id} [get]
func (h *WizardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorized(w, r)
	if !ok {
		return
	}
	var proj model.StateProjection
	s.With(func(st *wizard.Store) { proj = projection(st) })
	writeJSON(w, http.StatusOK, proj)
}

// SetField handles POST /wizard/sessions/{id}/fields
// @Summary      Set a field value
// @Description  Assigns a collected value; policy, steps and errors are recomputed
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Session id"
// @Param        request  body      model.SetFieldRequest   true  "Field assignment"
// @Success      200      {object}  model.TransitionResponse
// @Router       /wizard/sessions/{id}/fields [post]
func (h *WizardHandler) SetField(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorized(w, r)
	if !ok {
		return
	}
	var req model.SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Field name is required")
		return
	}

	var resp model.TransitionResponse
	s.With(func(st *wizard.Store) {
		res := st.SetField(req.Name, req.Value)
		resp = transitionResponse(res, st)
	})
	writeJSON(w, http.StatusOK, resp)
}

// Next handles POST /wizard/sessions/{id}/next
// @Summary      Advance the wizard
// @Description  Moves to the next step when the current one is complete; refusals carry a reason
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  model.TransitionResponse
// @Failure      409  {object}  model.TransitionResponse
// @Router       /wizard/sessions/{id}/next [post]
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(st *wizard.Store) wizard.Result { return st.Next() })
}

// Back handles POST /wizard/sessions/{id}/back
// @Summary      Go back one step
// @Description  Moves to the previous step; on the first step reports exit instead
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  model.TransitionResponse
// @Router       /wizard/sessions/{id}/back [post]
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(st *wizard.Store) wizard.Result { return st.Back() })
}

// Reset handles POST /wizard/sessions/{id}/reset
// @Summary      Reset the wizard
// @Description  Restores the initial empty state
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  model.TransitionResponse
// @Router       /wizard/sessions/{id}/reset [post]
func (h *WizardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(st *wizard.Store) wizard.Result { return st.Reset() })
}

// Jump handles POST /wizard/sessions/{id}/jump
// @Summary      Jump to a step
// @Description  Moves directly to a step currently present in the effective list
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Session id"
// @Param        request  body      model.JumpRequest  true  "Target step"
// @Success      200      {object}  model.TransitionResponse
// @Failure      409      {object}  model.TransitionResponse
// @Router       /wizard/sessions/{id}/jump [post]
func (h *WizardHandler) Jump(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorized(w, r)
	if !ok {
		return
	}
	var req model.JumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var resp model.TransitionResponse
	s.With(func(st *wizard.Store) {
		resp = transitionResponse(st.Jump(req.StepID), st)
	})
	h.writeTransition(w, s, resp)
}

func (h *WizardHandler) transition(w http.ResponseWriter, r *http.Request, op func(*wizard.Store) wizard.Result) {
	s, ok := h.authorized(w, r)
	if !ok {
		return
	}
	var resp model.TransitionResponse
	s.With(func(st *wizard.Store) {
		resp = transitionResponse(op(st), st)
	})
	h.writeTransition(w, s, resp)
}

// writeTransition maps refusals to 409 and checkpoints successful moves.
// Called after the session lock is released.
func (h *WizardHandler) writeTransition(w http.ResponseWriter, s *session.Session, resp model.TransitionResponse) {
	if resp.Outcome == string(wizard.OutcomeRefused) {
		writeJSON(w, http.StatusConflict, resp)
		return
	}
	if resp.Outcome == string(wizard.OutcomeAdvanced) || resp.Outcome == string(wizard.OutcomeCompleted) {
		h.sessions.Checkpoint(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

func transitionResponse(res wizard.Result, st *wizard.Store) model.TransitionResponse {
	return model.TransitionResponse{
		Outcome: string(res.Outcome),
		From:    res.From,
		To:      res.To,
		Reason:  string(res.Reason),
		State:   projection(st),
	}
}

// OTPSend handles POST /wizard/sessions/{id}/otp/send
// @Summary      Send a verification code
// @Description  Issues a one-time code for the identifier; repeat sends while a code is pending are refused
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Session id"
// @Param        request  body      model.OTPSendRequest  true  "Identifier"
// @Success      204      "code issued"
// @Failure      429      {object}  model.ErrorResponse
// @Router       /wizard/sessions/{id}/otp/send [post]
func (h *WizardHandler) OTPSend(w http.ResponseWriter, r *http.Request) {
	_, ok := h.authorized(w, r)
	if !ok {
		return
	}
	if h.otp == nil {
		writeError(w, http.StatusServiceUnavailable, "otp_unavailable", "Verification is not configured")
		return
	}
	var req model.OTPSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Identifier) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Identifier is required")
		return
	}

	if err := h.otp.Send(r.Context(), req.Identifier); err != nil {
		if errors.Is(err, collaborator.ErrSendInFlight) {
			writeError(w, http.StatusTooManyRequests, "code_pending", err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "send_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OTPVerify handles POST /wizard/sessions/{id}/otp/verify
// @Summary      Verify a code
// @Description  Checks the code; on success the session's contact step is marked verified
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Session id"
// @Param        request  body      model.OTPVerifyRequest  true  "Identifier and code"
// @Success      200      {object}  model.StateProjection
// @Failure      422      {object}  model.ErrorResponse
// @Router       /wizard/sessions/{id}/otp/verify [post]
func (h *WizardHandler) OTPVerify(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorized(w, r)
	if !ok {
		return
	}
	if h.otp == nil {
		writeError(w, http.StatusServiceUnavailable, "otp_unavailable", "Verification is not configured")
		return
	}
	var req model.OTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.otp.Verify(r.Context(), req.Identifier, req.Code); err != nil {
		// Recoverable: the user may request a new code or retype.
		writeError(w, http.StatusUnprocessableEntity, "verify_failed", err.Error())
		return
	}

	var proj model.StateProjection
	s.With(func(st *wizard.Store) {
		st.SetField(model.FieldOTPVerified, "true")
		proj = projection(st)
	})
	writeJSON(w, http.StatusOK, proj)
}

// Submit handles POST /wizard/sessions/{id}/submit
// @Summary      Submit the finished wizard
// @Description  Accepts the terminal step; on success the session is reset and its snapshot discarded
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  model.SubmitResponse
// @Failure      409  {object}  model.TransitionResponse
// @Failure      422  {object}  model.SubmitResponse
// @Router       /wizard/sessions/{id}/submit [post]
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorized(w, r)
	if !ok {
		return
	}
	if h.submit == nil {
		writeError(w, http.StatusServiceUnavailable, "submit_unavailable", "Submission is not configured")
		return
	}

	var (
		ready  bool
		refuse model.TransitionResponse
		flow   model.Flow
		values map[string]string
	)
	s.With(func(st *wizard.Store) {
		cur := st.CurrentStep()
		if !cur.Terminal || !st.Complete(cur) {
			refuse = model.TransitionResponse{
				Outcome: string(wizard.OutcomeRefused),
				From:    cur.ID,
				To:      cur.ID,
				Reason:  string(wizard.ReasonStepIncomplete),
				State:   projection(st),
			}
			return
		}
		ready = true
		state := st.State()
		flow = state.Flow
		values = state.Fields
	})
	if !ready {
		writeJSON(w, http.StatusConflict, refuse)
		return
	}

	if err := h.submit.Submit(r.Context(), flow, values); err != nil {
		var proj model.StateProjection
		s.With(func(st *wizard.Store) { proj = projection(st) })
		writeJSON(w, http.StatusUnprocessableEntity, model.SubmitResponse{
			Accepted: false,
			Message:  err.Error(),
			State:    proj,
		})
		return
	}

	var proj model.StateProjection
	s.With(func(st *wizard.Store) {
		st.Reset()
		proj = projection(st)
	})
	h.sessions.Delete(s.ID)
	h.log.Info("wizard submitted", zap.String("session", s.ID), zap.String("flow", string(flow)))
	writeJSON(w, http.StatusOK, model.SubmitResponse{Accepted: true, State: proj})
}

// DepositAddress handles GET /wizard/sessions/{id}/deposit-address
// @Summary      Get the deposit address
// @Description  Generates (once per session) the mock deposit address and QR for the selected network
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  model.DepositAddressResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wizard/sessions/{id}/deposit-address [get]
func (h *WizardHandler) DepositAddress(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorized(w, r)
	if !ok {
		return
	}
	if s.Flow != model.FlowDeposit {
		writeError(w, http.StatusConflict, "wrong_flow", "Deposit address is only available for deposit sessions")
		return
	}

	var (
		ccy, netID, cached string
		net                model.NetworkRecord
		haveNet            bool
	)
	s.With(func(st *wizard.Store) {
		state := st.State()
		ccy = state.Fields[model.FieldCurrency]
		netID = state.Fields[model.FieldNetwork]
		cached = state.Fields[depositAddressField]
		net, haveNet = st.CurrencyPolicy().Network(netID)
	})
	if !haveNet || !net.IsActive {
		writeError(w, http.StatusConflict, "no_network", "Select an available network first")
		return
	}

	address := cached
	if address == "" {
		var err error
		address, err = deposit.NewAddress(netID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "address_failed", err.Error())
			return
		}
		s.With(func(st *wizard.Store) { st.SetField(depositAddressField, address) })
	}

	qr, err := deposit.QRCode(address)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "qr_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.DepositAddressResponse{
		Currency:      strings.ToUpper(strings.TrimSpace(ccy)),
		Network:       netID,
		Address:       address,
		QR:            qr,
		Confirmations: net.Confirmations,
		EstimatedTime: net.EstimatedTime,
	})
}

// Balance handles GET /wizard/balance
// @Summary      Get available balance
// @Description  Returns the available balance for a currency with a best-effort USD estimate
// @Tags         wizard
// @Produce      json
// @Param        currency  query     string  true  "Currency ticker"
// @Success      200       {object}  model.BalanceResponse
// @Router       /wizard/balance [get]
func (h *WizardHandler) Balance(w http.ResponseWriter, r *http.Request) {
	ccy := strings.TrimSpace(r.URL.Query().Get("currency"))
	if ccy == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "currency query parameter is required")
		return
	}
	if h.balances == nil {
		writeError(w, http.StatusServiceUnavailable, "balance_unavailable", "Balance lookup is not configured")
		return
	}

	available := h.balances.Available(ccy)
	resp := model.BalanceResponse{
		Currency:  strings.ToUpper(ccy),
		Available: available.String(),
	}

	if h.rates != nil {
		if quote, err := h.rates.USDQuote(r.Context(), ccy); err == nil {
			resp.USDEstimate = common.FormatAmount(available.Mul(quote).Round(2), "USD")
		} else {
			h.log.Debug("quote unavailable", zap.String("currency", ccy), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
