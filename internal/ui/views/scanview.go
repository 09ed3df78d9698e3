// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/config"
	"github.com/jeranaias/assettrack-tui/internal/scan"
	"github.com/jeranaias/assettrack-tui/internal/ui/components"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// =============================================================================
// SCAN VIEW
// =============================================================================

type scanState int

const (
	scanIdle scanState = iota
	scanRunning
	scanMatched
	scanNotMine
	scanFailed
)

type scanView struct {
	deps *Deps

	state   scanState
	payload string
	result  api.ScanResult
	errText string
	cancel  context.CancelFunc
}

func newScanView(deps *Deps) scanView {
	return scanView{deps: deps}
}

// enter resets the view; scanning starts on demand, not on navigation,
// so the user can position the frame source first.
func (v *scanView) enter() tea.Cmd {
	v.stop()
	v.state = scanIdle
	v.errText = ""
	v.payload = ""
	return nil
}

func (v *scanView) stop() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// start launches one scan run: decode frames until a code is found, then
// resolve it against the server. The whole run resolves to one
// scanDoneMsg, so a second result can never arrive.
func (v *scanView) start() tea.Cmd {
	sess, ok := v.deps.Sessions.Current()
	if !ok {
		return nil
	}

	cfg := config.Global()
	source := cfg.Scan.Source
	if source == "" {
		v.state = scanFailed
		v.errText = "No scan source configured. Set scan.source in the config file."
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.state = scanRunning
	v.errText = ""
	deps := v.deps
	maxFPS := cfg.Scan.MaxFPS

	return func() tea.Msg {
		defer cancel()

		src, err := scan.NewDirSource(source)
		if err != nil {
			return scanDoneMsg{err: err}
		}
		scanner := scan.NewScanner(src,
			scan.WithMaxFPS(maxFPS),
			scan.WithLogger(deps.Sink))
		defer scanner.Close()

		payload, err := scanner.Run(ctx)
		if err != nil {
			return scanDoneMsg{err: err}
		}

		reqCtx, reqCancel := callCtx()
		defer reqCancel()
		result, err := deps.Client.ScanCode(reqCtx, payload, sess.UserID)
		return scanDoneMsg{payload: payload, result: result, err: err}
	}
}

func (v scanView) update(msg tea.Msg) (scanView, tea.Cmd) {
	switch msg := msg.(type) {
	case scanDoneMsg:
		v.cancel = nil
		if msg.err != nil {
			v.state = scanFailed
			v.errText = scanErrText(msg.err)
			v.deps.Sink.Errorf("scan: %v", msg.err)
			return v, nil
		}
		v.payload = msg.payload
		v.result = msg.result
		if msg.result.IssuedToUser {
			// Matched one of the user's issued assets: hand off to the
			// return view with the row preselected.
			v.state = scanMatched
			v.deps.Sink.Event("Scan matched request " + msg.result.RequestID)
			return v, func() tea.Msg {
				return navigateMsg{route: RouteReturn, requestID: msg.result.RequestID}
			}
		}
		v.state = scanNotMine
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "enter":
			if v.state != scanRunning {
				return v, v.start()
			}
		case "esc":
			if v.state == scanRunning {
				v.stop()
				v.state = scanIdle
			}
		}
	}
	return v, nil
}

func scanErrText(err error) string {
	switch {
	case errors.Is(err, scan.ErrNoCode):
		return "No code found. Check the frames and try again."
	case errors.Is(err, scan.ErrSourceDenied):
		return "Cannot access the scan source. Check its permissions."
	case errors.Is(err, context.Canceled):
		return "Scan cancelled."
	default:
		return api.UserMessage(err)
	}
}

func (v scanView) status() components.Status {
	switch v.state {
	case scanRunning:
		return components.StatusWorking
	case scanFailed:
		return components.StatusError
	default:
		return components.StatusReady
	}
}

func (v scanView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteScan))
	b.WriteString("\n\n")
	b.WriteString(theme.HeaderTitle.Render("Scan an asset code"))
	b.WriteString("\n\n")

	switch v.state {
	case scanIdle:
		b.WriteString(theme.ShortcutDesc.Render("Point the configured frame source at a QR code, then press "))
		b.WriteString(theme.ShortcutKey.Render("s"))
		b.WriteString(theme.ShortcutDesc.Render(" to scan."))
	case scanRunning:
		b.WriteString(theme.LoadingText.Render("Scanning frames..."))
		b.WriteString("\n\n")
		b.WriteString(theme.ShortcutKey.Render("esc") + theme.ShortcutDesc.Render(" cancel"))
	case scanMatched:
		b.WriteString(styles.RenderSuccess("Matched your issued asset. Opening returns..."))
	case scanNotMine:
		b.WriteString(styles.RenderWarning("This code is not one of your issued assets."))
		b.WriteString("\n")
		b.WriteString(theme.ShortcutDesc.Render("Decoded: " + v.payload))
	case scanFailed:
		b.WriteString(styles.RenderError(v.errText))
		b.WriteString("\n\n")
		b.WriteString(theme.ShortcutKey.Render("s") + theme.ShortcutDesc.Render(" try again"))
	}
	return theme.Container.Render(b.String())
}
