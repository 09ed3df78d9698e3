// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"time"

	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/report"
	"github.com/jeranaias/assettrack-tui/internal/session"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// Deps bundles the shared services every view needs. Views receive a
// pointer and never own the underlying resources.
type Deps struct {
	Client   *api.Client
	Sessions *session.Manager
	Sink     *report.Sink
	Theme    *styles.Theme
}

// callTimeout bounds each remote call issued from the UI.
const callTimeout = 20 * time.Second

// callCtx returns the context used for a single remote call.
func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

// timeNow is swapped out in tests.
var timeNow = time.Now
