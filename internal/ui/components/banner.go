// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// =============================================================================
// ACCESS DENIED BANNER
// =============================================================================

// DeniedRedirectDelay is how long the denial banner is shown before the
// app navigates back to the sign-in view.
const DeniedRedirectDelay = 2 * time.Second

// DeniedRedirectMsg fires when the denial banner's delay lapses.
type DeniedRedirectMsg struct{}

// DeniedBanner is shown when a signed-in user opens a view their role
// does not permit. No data is fetched while it is up.
type DeniedBanner struct {
	Message string
}

// NewDeniedBanner creates the banner with the standard message.
func NewDeniedBanner() DeniedBanner {
	return DeniedBanner{Message: "Access denied. Please log in with the right account."}
}

// RedirectCmd schedules the redirect back to sign-in.
func (b DeniedBanner) RedirectCmd() tea.Cmd {
	return tea.Tick(DeniedRedirectDelay, func(time.Time) tea.Msg {
		return DeniedRedirectMsg{}
	})
}

// Render produces the banner line.
func (b DeniedBanner) Render(theme *styles.Theme, width int) string {
	return theme.DeniedBanner.Width(width).Render(styles.StatusIndicators.Warning + " " + b.Message)
}
