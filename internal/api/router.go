package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"exwiz/internal/handler"
)

// SetupRouter sets up the router with the wizard handlers.
func SetupRouter(deps handler.Deps) (http.Handler, error) {
	wizardHandler, err := handler.NewWizardHandler(deps)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.Use(requestLogger(deps.Logger))

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Wizard endpoints
	r.HandleFunc("/wizard/sessions", wizardHandler.CreateSession).Methods(http.MethodPost)
	r.HandleFunc("/wizard/sessions/{id}", wizardHandler.GetSession).Methods(http.MethodGet)
	r.HandleFunc("/wizard/sessions/{id}/fields", wizardHandler.SetField).Methods(http.MethodPost)
	r.HandleFunc("/wizard/sessions/{id}/next", wizardHandler.Next).Methods(http.MethodPost)
	r.HandleFunc("/wizard/sessions/{id}/back", wizardHandler.Back).Methods(http.MethodPost)
	r.HandleFunc("/wizard/sessions/{id}/jump", wizardHandler.Jump).Methods(http.MethodPost)
	r.HandleFunc("/wizard/sessions/{id}/reset", wizardHandler.Reset).Methods(http.MethodPost)
	r.HandleFunc("/wizard/sessions/{id}/otp/send", wizardHandler.OTPSend).Methods(http.MethodPost)
	r.HandleFunc("/wizard/sessions/{id}/otp/verify", wizardHandler.OTPVerify).Methods(http.MethodPost)
	r.HandleFunc("/wizard/sessions/{id}/submit", wizardHandler.Submit).Methods(http.MethodPost)
	r.HandleFunc("/wizard/sessions/{id}/deposit-address", wizardHandler.DepositAddress).Methods(http.MethodGet)
	r.HandleFunc("/wizard/balance", wizardHandler.Balance).Methods(http.MethodGet)

	return r, nil
}

func requestLogger(log *zap.Logger) mux.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)))
		})
	}
}
