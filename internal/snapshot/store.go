// Package snapshot externalizes wizard session state to encrypted files so
// an abandoned session can be resumed. The wizard core never touches this
// package; the session layer checkpoints through the narrow Save/Load
// interface at step completion.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"exwiz/internal/crypto"
	"exwiz/internal/model"
	"exwiz/internal/wizard"
)

// ErrNotFound is returned when no snapshot exists for a session id.
var ErrNotFound = errors.New("snapshot not found")

const fileExt = ".wiz"

// Store writes one sealed file per session under a directory.
type Store struct {
	dir        string
	passphrase []byte
}

// New creates the store, creating the directory if needed. The passphrase
// is copied; the caller may zero its own copy.
func New(dir string, passphrase []byte) (*Store, error) {
	if dir == "" {
		return nil, errors.New("snapshot directory not set")
	}
	if len(passphrase) == 0 {
		return nil, errors.New("snapshot passphrase cannot be empty")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	pp := make([]byte, len(passphrase))
	copy(pp, passphrase)
	return &Store{dir: dir, passphrase: pp}, nil
}

func (s *Store) path(sessionID string) (string, error) {
	// Session ids are UUIDs; reject anything that could escape the directory.
	if sessionID == "" || strings.ContainsAny(sessionID, "/\\.") {
		return "", fmt.Errorf("invalid session id %q", sessionID)
	}
	return filepath.Join(s.dir, sessionID+fileExt), nil
}

// Save seals the state and writes it, replacing any previous snapshot of
// the session.
func (s *Store) Save(sessionID string, state wizard.State) error {
	p, err := s.path(sessionID)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	sealed, err := crypto.Seal(plaintext, s.passphrase)
	if err != nil {
		return fmt.Errorf("failed to seal snapshot: %w", err)
	}

	fileData, err := json.MarshalIndent(sealed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot file: %w", err)
	}

	if err := os.WriteFile(p, fileData, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads and opens the snapshot for a session.
func (s *Store) Load(sessionID string) (wizard.State, error) {
	var state wizard.State

	p, err := s.path(sessionID)
	if err != nil {
		return state, err
	}

	fileData, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return state, ErrNotFound
		}
		return state, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var sealed model.SealedFile
	if err := json.Unmarshal(fileData, &sealed); err != nil {
		return state, fmt.Errorf("failed to unmarshal snapshot file: %w", err)
	}

	plaintext, err := crypto.Open(&sealed, s.passphrase)
	if err != nil {
		return state, err
	}

	if err := json.Unmarshal(plaintext, &state); err != nil {
		return state, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return state, nil
}

// Delete removes the snapshot for a session. Missing snapshots are not an
// error.
func (s *Store) Delete(sessionID string) error {
	p, err := s.path(sessionID)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
