package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/model"
)

// Store owns the single live Identity and mirrors every change to a
// state file, so a restart restores the last known session. Persistence
// is best-effort; a write failure keeps the in-memory value.
type Store struct {
	path    string
	current *model.Identity
	logger  *zap.Logger
}

func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// DefaultPath places the state file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rubank", "session.json"), nil
}

// Restore loads a previously persisted session. A missing or malformed
// state file starts the client unauthenticated.
func (s *Store) Restore() *model.Identity {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var id model.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		s.logger.Debug("Discarding malformed session state", zap.Error(err))
		return nil
	}

	s.current = &id
	return s.current
}

// Set replaces the active Identity and persists it synchronously.
func (s *Store) Set(id *model.Identity) {
	s.current = id

	data, err := json.Marshal(id)
	if err != nil {
		s.logger.Warn("Failed to encode session state", zap.Error(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Warn("Failed to create session state directory", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Warn("Failed to persist session state", zap.Error(err))
	}
}

// SetBalance replaces only the cached balance with a server-reported
// value and persists the result. No-op when no session is live.
func (s *Store) SetBalance(balance decimal.Decimal) {
	if s.current == nil {
		return
	}
	updated := *s.current
	updated.Balance = balance
	s.Set(&updated)
}

// Clear drops the active Identity and its persisted copy.
func (s *Store) Clear() {
	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove session state", zap.Error(err))
	}
}

func (s *Store) Current() *model.Identity {
	return s.current
}

func (s *Store) Authenticated() bool {
	return s.current != nil
}
