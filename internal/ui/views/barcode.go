// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/config"
	"github.com/jeranaias/assettrack-tui/internal/scan"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// =============================================================================
// BARCODE / QR GENERATION VIEW
// =============================================================================

type codeKind int

const (
	kindQR codeKind = iota
	kindBarcode
)

type barcodeView struct {
	deps *Deps

	input    textinput.Model
	kind     codeKind
	busy     bool
	lastPath string
	errText  string
}

func newBarcodeView(deps *Deps) barcodeView {
	input := textinput.New()
	input.Placeholder = "asset id or SKU"
	input.CharLimit = 128
	input.Focus()
	return barcodeView{deps: deps, input: input}
}

func (v barcodeView) editing() bool { return true }

func (v barcodeView) update(msg tea.Msg) (barcodeView, tea.Cmd) {
	switch msg := msg.(type) {
	case codeRenderedMsg:
		v.busy = false
		if msg.err != nil {
			v.errText = msg.err.Error()
			return v, nil
		}
		v.errText = ""
		v.lastPath = msg.path
		v.deps.Sink.Event("Code image written: " + msg.path)
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "ctrl+t":
			if v.kind == kindQR {
				v.kind = kindBarcode
			} else {
				v.kind = kindQR
			}
			return v, nil
		case "enter":
			return v.generate()
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v barcodeView) generate() (barcodeView, tea.Cmd) {
	payload := strings.TrimSpace(v.input.Value())
	if payload == "" {
		v.errText = "Enter an asset id or SKU first."
		return v, nil
	}

	v.busy = true
	v.errText = ""
	kind := v.kind
	dir := config.Global().Export.Dir

	return v, func() tea.Msg {
		var (
			rendered scan.Rendering
			err      error
			base     string
		)
		if kind == kindQR {
			rendered, err = scan.QRRendering(payload)
			base = "qr-" + sanitizeName(payload)
		} else {
			rendered, err = scan.BarcodeRendering(payload)
			base = "barcode-" + sanitizeName(payload)
		}
		if err != nil {
			return codeRenderedMsg{err: err}
		}
		// Both sizes go out together: the compact badge for labels and
		// list embeds, the large one for detail printouts.
		path := filepath.Join(dir, base+".png")
		if err := os.WriteFile(path, rendered.Detail, 0644); err != nil {
			return codeRenderedMsg{err: err}
		}
		if err := os.WriteFile(filepath.Join(dir, base+"-badge.png"), rendered.Badge, 0644); err != nil {
			return codeRenderedMsg{err: err}
		}
		return codeRenderedMsg{path: path}
	}
}

// sanitizeName keeps payload-derived filenames shell-safe.
func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

func (v barcodeView) view() string {
	theme := v.deps.Theme

	kind := "QR code"
	if v.kind == kindBarcode {
		kind = "Code 128 barcode"
	}

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteBarcode))
	b.WriteString("\n\n")
	b.WriteString(theme.HeaderTitle.Render("Generate asset codes"))
	b.WriteString("\n\n")
	b.WriteString(renderField(theme, "Payload", v.input, true))
	b.WriteString("\n")
	b.WriteString(theme.FormLabel.Render("Type") + " " + theme.BadgeNeutral.Render(kind))
	b.WriteString("\n\n")
	if v.busy {
		b.WriteString(theme.LoadingText.Render("Rendering..."))
	} else {
		b.WriteString(theme.ShortcutKey.Render("enter") + theme.ShortcutDesc.Render(" generate  "))
		b.WriteString(theme.ShortcutKey.Render("ctrl+t") + theme.ShortcutDesc.Render(" toggle type"))
	}
	if v.lastPath != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.RenderSuccess("Saved " + v.lastPath + " (badge alongside)"))
	}
	if v.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.RenderError(v.errText))
	}
	return theme.Container.Render(b.String())
}
