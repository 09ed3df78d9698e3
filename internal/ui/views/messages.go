// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/model"
)

// =============================================================================
// RESULT MESSAGES
// =============================================================================
// Every remote call resolves to exactly one of these. Fetch results carry
// either data or an error; row-action results additionally carry the row
// ID so the view can clear its busy flag in both outcomes.

// loginDoneMsg resolves a sign-in attempt.
type loginDoneMsg struct {
	result api.LoginResult
	err    error
}

// registerDoneMsg resolves an account registration.
type registerDoneMsg struct {
	err error
}

// requestsLoadedMsg resolves a request-list fetch, for whichever view
// asked for it.
type requestsLoadedMsg struct {
	requests []model.Request
	err      error
}

// inventoryLoadedMsg resolves an inventory fetch.
type inventoryLoadedMsg struct {
	items []model.Item
	err   error
}

// itemSavedMsg resolves an inventory create or update.
type itemSavedMsg struct {
	err error
}

// itemDeletedMsg resolves an inventory delete. stale marks a 404: the
// record was already gone, so the view refetches without surfacing an
// error.
type itemDeletedMsg struct {
	itemID string
	stale  bool
	err    error
}

// requestCreatedMsg resolves a new asset request.
type requestCreatedMsg struct {
	err error
}

// rowActionDoneMsg resolves a per-row mutation (approve, reject, issue,
// return, delete). requestID keys the busy map; action names what ran
// for the toast.
type rowActionDoneMsg struct {
	requestID string
	action    string
	stale     bool
	err       error
}

// historyLoadedMsg resolves a user-history fetch.
type historyLoadedMsg struct {
	requests []model.Request
	err      error
}

// assetHistoryLoadedMsg resolves a per-asset history fetch.
type assetHistoryLoadedMsg struct {
	assetID  string
	requests []model.Request
	err      error
}

// adminSummaryMsg resolves the admin dashboard fetch.
type adminSummaryMsg struct {
	summary model.AdminSummary
	err     error
}

// userSummaryMsg resolves the user dashboard fetch.
type userSummaryMsg struct {
	summary model.UserSummary
	err     error
}

// scanDoneMsg resolves a full scan: decode plus server lookup.
type scanDoneMsg struct {
	payload string
	result  api.ScanResult
	err     error
}

// codeRenderedMsg resolves a barcode/QR image generation.
type codeRenderedMsg struct {
	path string
	err  error
}

// exportDoneMsg resolves a log export.
type exportDoneMsg struct {
	path string
	err  error
}

// chatReplyMsg resolves an assistant chat round trip.
type chatReplyMsg struct {
	reply string
	err   error
}
