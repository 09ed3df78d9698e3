// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/assettrack-tui/internal/session"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status shown in the bar.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusWorking
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusWorking:
		return "Working..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status, readable without color.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading, StatusWorking:
		return styles.StatusIndicators.Busy
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// Shortcut is a key hint shown on the right side of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom status bar: signed-in identity and role on the
// left, status in the middle, key hints on the right.
type StatusBar struct {
	Session  session.Session
	SignedIn bool
	ViewName string
	Status   Status
	Width    int
}

// Render produces the status bar line for the current width.
func (b StatusBar) Render(theme *styles.Theme) string {
	left := b.renderIdentity(theme)
	mid := fmt.Sprintf("%s %s", b.Status.Icon(), b.Status.String())
	right := b.renderShortcuts(theme)

	gap1 := b.Width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right) - 2
	if gap1 < 2 {
		// Narrow terminal: drop the shortcuts first.
		right = ""
		gap1 = b.Width - lipgloss.Width(left) - lipgloss.Width(mid) - 2
	}
	if gap1 < 1 {
		gap1 = 1
	}
	half := gap1 / 2

	line := left + strings.Repeat(" ", half) + mid + strings.Repeat(" ", gap1-half) + right
	return theme.StatusBar.Width(b.Width).Render(line)
}

func (b StatusBar) renderIdentity(theme *styles.Theme) string {
	if !b.SignedIn {
		return theme.ShortcutDesc.Render("not signed in")
	}
	role := theme.RoleUser.Render("USER")
	if b.Session.IsAdmin() {
		role = theme.RoleAdmin.Render("ADMIN")
	}
	name := b.Session.DisplayName()
	if b.ViewName != "" {
		return fmt.Sprintf("%s %s | %s", role, name, b.ViewName)
	}
	return fmt.Sprintf("%s %s", role, name)
}

func (b StatusBar) renderShortcuts(theme *styles.Theme) string {
	shortcuts := b.shortcuts()
	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		parts = append(parts,
			theme.ShortcutKey.Render(sc.Key)+" "+theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(parts, "  ")
}

func (b StatusBar) shortcuts() []Shortcut {
	if !b.SignedIn {
		return []Shortcut{{Key: "ctrl+c", Desc: "quit"}}
	}
	return []Shortcut{
		{Key: "tab", Desc: "views"},
		{Key: "r", Desc: "refresh"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}
