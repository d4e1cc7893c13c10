// wizardd serves the exchange onboarding and transaction wizard API.
//
// @title        Exchange Wizard API
// @version      1.0
// @description  Multi-step onboarding and transaction wizard sessions.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	_ "exwiz/docs"
	"exwiz/internal/api"
	"exwiz/internal/client"
	"exwiz/internal/collaborator"
	"exwiz/internal/config"
	"exwiz/internal/handler"
	"exwiz/internal/session"
	"exwiz/internal/snapshot"
	"exwiz/internal/wizard"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("wizardd failed", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	if err := config.Init(); err != nil {
		return err
	}

	balances := collaborator.NewBalances(seedBalances())
	otp := collaborator.NewOTP(
		collaborator.WithOTPTTL(config.GetOTPTTL()),
		collaborator.WithOTPDelay(config.GetOTPDelay()),
		collaborator.WithOTPLogger(log),
	)
	submit := collaborator.NewSubmission(
		collaborator.WithSubmitDelay(config.GetSubmitDelay()),
		collaborator.WithSubmitLogger(log),
	)

	managerOpts := []session.ManagerOption{
		session.WithLogger(log),
		session.WithStoreOptions(wizard.WithBalanceFunc(balances.Available)),
	}

	if dir := config.GetSnapshotDir(); dir != "" {
		if err := config.PromptForPassphrase(); err != nil {
			return err
		}
		pp, err := config.GetSnapshotPassphrase()
		if err != nil {
			return err
		}
		snaps, err := snapshot.New(dir, pp)
		clear(pp)
		if err != nil {
			return err
		}
		managerOpts = append(managerOpts, session.WithSnapshots(snaps))
		log.Info("snapshot persistence enabled", zap.String("dir", dir))
	}

	router, err := api.SetupRouter(handler.Deps{
		Sessions:      session.NewManager(managerOpts...),
		OTP:           otp,
		Balances:      balances,
		Submit:        submit,
		Rates:         client.NewRateClient(config.GetRateAPIURL()),
		SessionSecret: config.GetSessionSecret(),
		SessionTTL:    config.GetSessionTTL(),
		Logger:        log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + config.GetPort(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(ctx)
}

// seedBalances stocks the demo account. There is no real wallet behind the
// wizard; balances exist to exercise withdrawal validation.
func seedBalances() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"BTC":  decimal.RequireFromString("0.55"),
		"ETH":  decimal.RequireFromString("4.2"),
		"USDT": decimal.RequireFromString("1250"),
	}
}
