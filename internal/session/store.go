// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jeranaias/customchat-tui/internal/util"
)

// =============================================================================
// STORE KEYS
// =============================================================================

// Persisted identity fields. All four are written together on login and
// cleared together on logout; no reader may observe a partial set.
const (
	KeyToken  = "token"
	KeyName   = "name"
	KeyUserID = "userID"
	KeyRole   = "role"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is a process-wide key-value store for the persisted identity
// fields. Implementations replace the stored record wholesale: SetAll and
// Clear are the only mutations, so readers always see either the complete
// previous record or the complete new one.
type Store interface {
	// Get returns the stored value for key, or "" when absent.
	Get(key string) string

	// SetAll replaces the entire stored record with values.
	SetAll(values map[string]string) error

	// Clear removes all stored values.
	Clear() error
}

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore persists the record as a JSON file, written atomically with
// 0600 permissions. It is the terminal analog of the browser's
// origin-scoped local storage.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
	loaded bool
}

// NewFileStore creates a store backed by the file at path. The file is
// read lazily on first access; a missing file is an empty record.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the stored value for key, or "" when absent.
func (s *FileStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.values[key]
}

// SetAll replaces the entire stored record and persists it.
func (s *FileStore) SetAll(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(values))
	for k, v := range values {
		next[k] = v
	}

	if err := s.persist(next); err != nil {
		return err
	}
	s.values = next
	s.loaded = true
	return nil
}

// Clear removes all stored values and persists the empty record.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty := map[string]string{}
	if err := s.persist(empty); err != nil {
		return err
	}
	s.values = empty
	s.loaded = true
	return nil
}

// load reads the backing file into memory once. Corrupt or unreadable
// files degrade to an empty record: an unreadable session is simply a
// logged-out session.
func (s *FileStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.values = map[string]string{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return
	}
	s.values = values
}

func (s *FileStore) persist(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}
	// 0600: the record holds a bearer token.
	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	return nil
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: map[string]string{}}
}

// Get returns the stored value for key, or "" when absent.
func (s *MemStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// SetAll replaces the entire stored record.
func (s *MemStore) SetAll(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(map[string]string, len(values))
	for k, v := range values {
		next[k] = v
	}
	s.values = next
	return nil
}

// Clear removes all stored values.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = map[string]string{}
	return nil
}
