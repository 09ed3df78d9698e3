// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session resolves the current actor's identity and role from
// local persisted state.
//
// The state is a tiny key/value store (userId, userRole, userName) kept
// in ~/.assettrack/state.db. It is written only by login and register,
// cleared by logout, and read by every gated view on activation. No
// expiry is modeled; the remote service is the actual authority on
// whether the actor may do anything.
//
// Views receive a *Manager by injection rather than reading ambient
// globals, so tests can supply an in-memory store.
package session
