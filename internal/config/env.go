package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the snapshot passphrase is prompted at runtime and stored in memory;
// use GetSnapshotPassphrase().
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	SnapshotDir   string `envconfig:"SNAPSHOT_DIR"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"dev-secret-change-me"`
	SessionTTLMin int    `envconfig:"SESSION_TTL_MINUTES" default:"60"`
	OTPTTLSec     int    `envconfig:"OTP_TTL_SECONDS" default:"300"`
	OTPDelayMS    int    `envconfig:"OTP_DELAY_MS" default:"400"`
	SubmitDelayMS int    `envconfig:"SUBMIT_DELAY_MS" default:"800"`
	RateAPIURL    string `envconfig:"RATE_API_URL"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSnapshotDir returns the snapshot directory; empty disables persistence.
func GetSnapshotDir() string {
	return Get().SnapshotDir
}

// GetSessionSecret returns the session token signing secret.
func GetSessionSecret() []byte {
	return []byte(Get().SessionSecret)
}

// GetSessionTTL returns the session token lifetime.
func GetSessionTTL() time.Duration {
	return time.Duration(Get().SessionTTLMin) * time.Minute
}

// GetOTPTTL returns the verification code lifetime.
func GetOTPTTL() time.Duration {
	return time.Duration(Get().OTPTTLSec) * time.Second
}

// GetOTPDelay returns the simulated code delivery latency.
func GetOTPDelay() time.Duration {
	return time.Duration(Get().OTPDelayMS) * time.Millisecond
}

// GetSubmitDelay returns the simulated submission latency.
func GetSubmitDelay() time.Duration {
	return time.Duration(Get().SubmitDelayMS) * time.Millisecond
}

// GetRateAPIURL returns the quote API base URL; empty selects the default.
func GetRateAPIURL() string {
	return Get().RateAPIURL
}

var passphraseBytes []byte

// PromptForPassphrase prompts for the snapshot passphrase in the terminal.
// The passphrase is read without echoing (hidden input) and stored in
// memory. Call this at startup, before the server begins handling requests,
// whenever snapshot persistence is enabled.
func PromptForPassphrase() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter the passphrase")
	}
	fmt.Fprint(os.Stderr, "Enter snapshot passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("passphrase cannot be empty")
	}

	passphraseBytes = make([]byte, len(raw))
	copy(passphraseBytes, raw)
	clear(raw)
	return nil
}

// GetSnapshotPassphrase returns the passphrase stored in memory (from
// PromptForPassphrase). Returns an error if it was not set.
// Caller must zero the returned slice after use.
func GetSnapshotPassphrase() ([]byte, error) {
	if len(passphraseBytes) == 0 {
		return nil, errors.New("passphrase not set: call PromptForPassphrase at startup")
	}
	out := make([]byte, len(passphraseBytes))
	copy(out, passphraseBytes)
	return out, nil
}

// SetSnapshotPassphrase stores the passphrase directly. Used by tests and
// non-interactive deployments.
func SetSnapshotPassphrase(pp []byte) {
	passphraseBytes = make([]byte, len(pp))
	copy(passphraseBytes, pp)
}
