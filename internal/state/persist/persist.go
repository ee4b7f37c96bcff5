// Package persist stores a whitelisted subset of client state durably across
// sessions. The whitelist is the session user and the organization cache;
// products and contents are always refetched. Snapshot and Apply are the
// pure serialization boundary; FileStore does the IO.
package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/mathenaangeles/socialite/internal/models"
	"github.com/mathenaangeles/socialite/internal/state"
)

const stateFile = "state.json"

// PersistedState is the durable whitelist of the state tree. Loading and
// error flags are transient and never persisted.
type PersistedState struct {
	Version       int                   `json:"version"`
	User          *models.User          `json:"user,omitempty"`
	Organization  *models.Organization  `json:"organization,omitempty"`
	Organizations []models.Organization `json:"organizations,omitempty"`
}

// Snapshot extracts the persisted subset from a state tree.
func Snapshot(s state.State) PersistedState {
	return PersistedState{
		Version:       1,
		User:          s.User.User,
		Organization:  s.Organization.Organization,
		Organizations: s.Organization.Organizations,
	}
}

// Apply folds a persisted subset into a state tree.
func Apply(p PersistedState, s *state.State) {
	s.User.User = p.User
	s.Organization.Organization = p.Organization
	s.Organization.Organizations = p.Organizations
}

// FileStore persists snapshots as a JSON file in the state directory.
type FileStore struct {
	path string
}

// NewFileStore creates the state directory if needed and returns a store
// over <dir>/state.json.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, stateFile)}, nil
}

// Save writes the whitelisted subset of s atomically.
func (f *FileStore) Save(s state.State) error {
	data, err := json.MarshalIndent(Snapshot(s), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tempPath := f.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tempPath, f.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Restore loads the persisted subset into a fresh state tree. A missing file
// yields zero state; an unreadable one is discarded rather than wedging
// startup.
func (f *FileStore) Restore() (state.State, error) {
	var restored state.State

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return restored, nil
		}
		return restored, fmt.Errorf("read state: %w", err)
	}

	var persisted PersistedState
	if err := json.Unmarshal(data, &persisted); err != nil {
		log.Warn().Err(err).Str("path", f.path).Msg("discarding corrupt persisted state")
		return restored, nil
	}

	Apply(persisted, &restored)
	return restored, nil
}

// Purge erases the persisted state. Part of the logout contract: no session
// material survives past logout.
func (f *FileStore) Purge() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}
