// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the typed gateway to the remote asset-management REST
// service. One method per endpoint, each a thin JSON call over the
// configured base URL.
//
// The service wraps every response in a {success, message, ...payload}
// envelope. A well-formed response with success=false surfaces as an
// *Error carrying the server's message verbatim. Transport failures
// surface as ErrNetwork. A 404 on a mutation matches ErrStale and is
// treated by callers as "already gone", not as a failure. Nothing in this
// package retries; a failed action is re-triggered by the user or not at
// all.
package api
