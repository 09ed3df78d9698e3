// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Non-blocking toast notifications. Toasts render at the bottom of the
// active view and auto-dismiss, so a failed row action never traps the
// user in a modal.
package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// =============================================================================
// TOASTS
// =============================================================================

// ToastKind selects the toast coloring.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
	ToastInfo
)

// SuccessToastDuration is how long success toasts stay visible.
const SuccessToastDuration = 4 * time.Second

// ErrorToastDuration is longer so failures can be read.
const ErrorToastDuration = 8 * time.Second

// Toast is a transient notification.
type Toast struct {
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// NewToast creates a toast of the given kind with its default duration.
func NewToast(kind ToastKind, message string) Toast {
	d := SuccessToastDuration
	if kind == ToastError {
		d = ErrorToastDuration
	}
	return Toast{
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// Expired reports whether the toast should be dropped.
func (t Toast) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// Render produces the toast line.
func (t Toast) Render(theme *styles.Theme) string {
	switch t.Kind {
	case ToastError:
		return theme.ToastError.Render(styles.StatusIndicators.Error + " " + t.Message)
	case ToastSuccess:
		return theme.Toast.Render(styles.StatusIndicators.Success + " " + t.Message)
	default:
		return theme.Toast.Render(styles.StatusIndicators.Info + " " + t.Message)
	}
}

// ToastExpiredMsg asks the owning model to drop expired toasts.
type ToastExpiredMsg struct{}

// ExpireCmd schedules a ToastExpiredMsg for when this toast lapses.
func (t Toast) ExpireCmd() tea.Cmd {
	return tea.Tick(t.Duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{}
	})
}
