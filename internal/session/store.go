// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"strings"
	"sync"
)

// Store keys for the persisted session fields.
const (
	KeyUserID   = "userId"
	KeyUserRole = "userRole"
	KeyUserName = "userName"
)

// Roles the remote service knows about. Stored and compared in lower
// case; the original data source was inconsistent about casing, so the
// boundary normalizes.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ErrNotFound indicates the key has no stored value.
var ErrNotFound = errors.New("session key not found")

// Store is the persisted key/value state behind the session. The
// production implementation is sqlite-backed; tests use MemoryStore.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) (string, error)

	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Clear removes every stored key.
	Clear() error

	// Close releases the underlying resources.
	Close() error
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the resolved actor identity.
type Session struct {
	UserID   string
	UserName string
	Role     string
}

// IsAdmin reports whether the actor holds the admin role.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// DisplayName returns the user name, falling back to the ID.
func (s Session) DisplayName() string {
	if s.UserName != "" {
		return s.UserName
	}
	return s.UserID
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager reads and writes the session through a Store. Safe for
// concurrent use.
type Manager struct {
	mu    sync.Mutex
	store Store
}

// NewManager wraps a store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Current resolves the stored session. The second return is false when
// no user is logged in.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID, err := m.store.Get(KeyUserID)
	if err != nil || userID == "" {
		return Session{}, false
	}
	role, _ := m.store.Get(KeyUserRole)
	name, _ := m.store.Get(KeyUserName)

	return Session{
		UserID:   userID,
		UserName: name,
		Role:     NormalizeRole(role),
	}, true
}

// Save persists the session after a successful login or registration.
func (m *Manager) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(KeyUserID, s.UserID); err != nil {
		return err
	}
	if err := m.store.Set(KeyUserRole, NormalizeRole(s.Role)); err != nil {
		return err
	}
	return m.store.Set(KeyUserName, s.UserName)
}

// Clear wipes the session at logout.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Clear()
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Close()
}

// NormalizeRole lowercases and trims a role value from any source.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
