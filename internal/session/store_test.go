// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeUnderTest runs the Store contract against both implementations.
func storeUnderTest(t *testing.T, name string, open func(t *testing.T) Store) {
	t.Run(name, func(t *testing.T) {
		s := open(t)
		t.Cleanup(func() { s.Close() })

		_, err := s.Get("missing")
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, s.Set("userId", "u1"))
		v, err := s.Get("userId")
		require.NoError(t, err)
		assert.Equal(t, "u1", v)

		// Overwrite
		require.NoError(t, s.Set("userId", "u2"))
		v, _ = s.Get("userId")
		assert.Equal(t, "u2", v)

		// Delete is idempotent
		require.NoError(t, s.Delete("userId"))
		require.NoError(t, s.Delete("userId"))
		_, err = s.Get("userId")
		assert.ErrorIs(t, err, ErrNotFound)

		// Clear wipes everything
		require.NoError(t, s.Set("a", "1"))
		require.NoError(t, s.Set("b", "2"))
		require.NoError(t, s.Clear())
		_, err = s.Get("a")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStoreContract(t *testing.T) {
	storeUnderTest(t, "memory", func(t *testing.T) Store {
		return NewMemoryStore()
	})
	storeUnderTest(t, "sqlite", func(t *testing.T) Store {
		s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
		require.NoError(t, err)
		return s
	})
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyUserID, "u1"))
	require.NoError(t, s.Close())

	s, err = OpenSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(KeyUserID)
	require.NoError(t, err)
	assert.Equal(t, "u1", v)
}

// =============================================================================
// MANAGER TESTS
// =============================================================================

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager(NewMemoryStore())

	_, ok := m.Current()
	assert.False(t, ok, "fresh store should have no session")

	require.NoError(t, m.Save(Session{UserID: "u1", UserName: "Priya", Role: "Admin"}))

	s, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "admin", s.Role, "role is normalized to lower case")
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "Priya", s.DisplayName())

	require.NoError(t, m.Clear())
	_, ok = m.Current()
	assert.False(t, ok, "cleared store should have no session")
}

func TestManager_NormalizesRoleOnRead(t *testing.T) {
	store := NewMemoryStore()
	// A value written by an older build with inconsistent casing.
	store.Set(KeyUserID, "u1")
	store.Set(KeyUserRole, "  ADMIN ")

	s, ok := NewManager(store).Current()
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, s.Role)
}

func TestSession_DisplayNameFallsBack(t *testing.T) {
	assert.Equal(t, "u1", Session{UserID: "u1"}.DisplayName())
}

func TestNormalizeRole(t *testing.T) {
	tests := []struct{ in, want string }{
		{"admin", "admin"},
		{"Admin", "admin"},
		{" USER\t", "user"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRole(tt.in))
	}
}
