// Package credentials stores the companion app API token in the OS keyring,
// falling back to a private file where no keyring is available.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the keyring service name
	KeyringService = "jobscout"
	// TokenKey is the keyring entry holding the API token
	TokenKey = "api_token"
)

// ErrNoToken is returned when no token has been saved
var ErrNoToken = errors.New("no API token saved")

// Store reads and writes the API token
type Store struct {
	// Dir holds the fallback token file
	Dir string

	once      sync.Once
	fileBased bool
}

// NewStore creates a token store with its fallback file under dir
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// useFile decides once whether the keyring is usable. CI and Codespaces
// always use the file.
func (s *Store) useFile() bool {
	s.once.Do(func() {
		if os.Getenv("CODESPACES") != "" || os.Getenv("CI") != "" {
			s.fileBased = true
			return
		}
		probe := "_probe_"
		if err := keyring.Set(KeyringService, probe, "ok"); err != nil {
			s.fileBased = true
			return
		}
		_ = keyring.Delete(KeyringService, probe)
	})
	return s.fileBased
}

func (s *Store) path() string {
	return filepath.Join(s.Dir, "token")
}

// Save stores token
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if s.useFile() {
		if err := os.MkdirAll(s.Dir, 0700); err != nil {
			return fmt.Errorf("failed to create token directory: %w", err)
		}
		if err := os.WriteFile(s.path(), []byte(token), 0600); err != nil {
			return fmt.Errorf("failed to save token file: %w", err)
		}
		return nil
	}

	if err := keyring.Set(KeyringService, TokenKey, token); err != nil {
		return fmt.Errorf("failed to save to keyring: %w", err)
	}
	return nil
}

// Load returns the saved token or ErrNoToken
func (s *Store) Load() (string, error) {
	if s.useFile() {
		b, err := os.ReadFile(s.path())
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		if err != nil {
			return "", fmt.Errorf("failed to load token file: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	token, err := keyring.Get(KeyringService, TokenKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to load from keyring: %w", err)
	}
	return token, nil
}

// Delete removes the saved token. Deleting a missing token is not an error.
func (s *Store) Delete() error {
	if s.useFile() {
		err := os.Remove(s.path())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete token file: %w", err)
		}
		return nil
	}

	err := keyring.Delete(KeyringService, TokenKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}
