package model

// StepInfo is one entry of the stepper rendered by a client.
type StepInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
	Current  bool   `json:"current"`
	Complete bool   `json:"complete"`
	Terminal bool   `json:"terminal"`
}

// StateProjection is the read-only view of a wizard session handed to
// clients. Session state is never mutated through it.
type StateProjection struct {
	Flow        Flow              `json:"flow"`
	CurrentStep string            `json:"currentStep"`
	Steps       []StepInfo        `json:"steps"`
	Values      map[string]string `json:"values"`
	Errors      []ValidationError `json:"errors"`
}

// CreateSessionRequest represents request for POST /wizard/sessions
type CreateSessionRequest struct {
	Flow   string `json:"flow" binding:"required"`
	Resume string `json:"resume,omitempty"`
}

// CreateSessionResponse represents response for POST /wizard/sessions
type CreateSessionResponse struct {
	SessionID string          `json:"sessionId"`
	Token     string          `json:"token"`
	State     StateProjection `json:"state"`
}

// SetFieldRequest represents request for POST .../fields
type SetFieldRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

// JumpRequest represents request for POST .../jump
type JumpRequest struct {
	StepID string `json:"stepId" binding:"required"`
}

// TransitionResponse reports the outcome of a transition operation together
// with the state that resulted from it.
type TransitionResponse struct {
	Outcome string          `json:"outcome"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Reason  string          `json:"reason,omitempty"`
	State   StateProjection `json:"state"`
}

// OTPSendRequest represents request for POST .../otp/send
type OTPSendRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// OTPVerifyRequest represents request for POST .../otp/verify
type OTPVerifyRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Code       string `json:"code" binding:"required"`
}

// SubmitResponse represents response for POST .../submit
type SubmitResponse struct {
	Accepted bool            `json:"accepted"`
	Message  string          `json:"message,omitempty"`
	State    StateProjection `json:"state"`
}

// DepositAddressResponse represents response for GET .../deposit-address
type DepositAddressResponse struct {
	Currency      string `json:"currency"`
	Network       string `json:"network"`
	Address       string `json:"address"`
	QR            string `json:"qr"` // base64 PNG
	Confirmations int    `json:"confirmations"`
	EstimatedTime string `json:"estimatedTime"`
}

// BalanceResponse represents response for GET /wizard/balance
type BalanceResponse struct {
	Currency    string `json:"currency"`
	Available   string `json:"available"`
	USDEstimate string `json:"usdEstimate,omitempty"`
}
