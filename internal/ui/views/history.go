// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/model"
	"github.com/jeranaias/assettrack-tui/internal/ui/components"
)

// =============================================================================
// USER HISTORY
// =============================================================================

type historyView struct {
	deps *Deps

	all     []model.Request
	visible []model.Request
	filter  model.HistoryFilter
	cursor  int
	loading bool
	errText string
}

func newHistoryView(deps *Deps) historyView {
	return historyView{deps: deps, filter: model.HistoryAll}
}

func (v *historyView) load() tea.Cmd {
	sess, ok := v.deps.Sessions.Current()
	if !ok {
		return nil
	}
	v.loading = true
	v.errText = ""
	deps := v.deps
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		reqs, err := deps.Client.ListUserHistory(ctx, sess.UserID)
		return historyLoadedMsg{requests: reqs, err: err}
	}
}

func (v *historyView) refilter() {
	v.visible = v.filter.Apply(v.all)
	if v.cursor >= len(v.visible) {
		v.cursor = len(v.visible) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v historyView) update(msg tea.Msg) (historyView, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			v.deps.Sink.Errorf("history fetch: %v", msg.err)
			return v, nil
		}
		v.errText = ""
		v.all = msg.requests
		v.refilter()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.visible)-1 {
				v.cursor++
			}
		case "f":
			v.filter = nextHistoryFilter(v.filter)
			v.refilter()
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v historyView) status() components.Status {
	switch {
	case v.loading:
		return components.StatusLoading
	case v.errText != "":
		return components.StatusError
	default:
		return components.StatusReady
	}
}

func (v historyView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteHistory))
	b.WriteString("\n\n")
	b.WriteString(theme.ShortcutDesc.Render("showing: ") + theme.BadgeNeutral.Render(string(v.filter)))
	b.WriteString("\n\n")
	switch {
	case v.loading && len(v.all) == 0:
		b.WriteString(theme.LoadingText.Render("Loading history..."))
	case v.errText != "":
		b.WriteString(theme.ErrorTitle.Render("History unavailable"))
		b.WriteString("\n")
		b.WriteString(theme.ErrorMessage.Render(v.errText))
	default:
		b.WriteString(renderHistoryTable(v.deps, v.visible, v.cursor))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.ShortcutKey.Render("f") + theme.ShortcutDesc.Render(" filter  "))
	b.WriteString(theme.ShortcutKey.Render("r") + theme.ShortcutDesc.Render(" refresh"))
	return theme.Container.Render(b.String())
}

func nextHistoryFilter(f model.HistoryFilter) model.HistoryFilter {
	switch f {
	case model.HistoryAll:
		return model.HistoryIssued
	case model.HistoryIssued:
		return model.HistoryReturned
	default:
		return model.HistoryAll
	}
}

// renderHistoryTable shows lifecycle dates alongside the derived status.
func renderHistoryTable(deps *Deps, reqs []model.Request, cursor int) string {
	theme := deps.Theme
	tbl := components.Table{
		Columns: []components.Column{
			{Title: "Asset", Width: 22, Flex: true},
			{Title: "Status", Width: 10},
			{Title: "Issued", Width: 16},
			{Title: "Returned", Width: 16},
		},
		Cursor: cursor,
		Width:  theme.Width,
		Empty:  "No history entries.",
	}
	for _, r := range reqs {
		derived := model.DeriveStatus(r)
		tbl.Rows = append(tbl.Rows, []string{
			r.ProductName,
			theme.StatusBadge(derived).Render(derived.String()),
			model.FormatWhen(r.IssueDate),
			model.FormatWhen(r.ReturnDate),
		})
	}
	return tbl.Render(theme)
}

// =============================================================================
// ASSET HISTORY (by asset ID)
// =============================================================================

type assetHistoryView struct {
	deps *Deps

	input   textinput.Model
	typing  bool
	assetID string
	reqs    []model.Request
	cursor  int
	loading bool
	errText string
}

func newAssetHistoryView(deps *Deps) assetHistoryView {
	input := textinput.New()
	input.Placeholder = "asset id"
	input.CharLimit = 64
	return assetHistoryView{deps: deps, input: input}
}

func (v assetHistoryView) editing() bool { return v.typing }

// load refetches the current asset's trail, if one is set.
func (v *assetHistoryView) load() tea.Cmd {
	if v.assetID == "" {
		v.typing = true
		v.input.Focus()
		return nil
	}
	return v.fetch(v.assetID)
}

func (v *assetHistoryView) fetch(assetID string) tea.Cmd {
	v.loading = true
	v.errText = ""
	v.assetID = assetID
	deps := v.deps
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		reqs, err := deps.Client.ListAssetHistory(ctx, assetID)
		return assetHistoryLoadedMsg{assetID: assetID, requests: reqs, err: err}
	}
}

func (v assetHistoryView) update(msg tea.Msg) (assetHistoryView, tea.Cmd) {
	switch msg := msg.(type) {
	case assetHistoryLoadedMsg:
		if msg.assetID != v.assetID {
			return v, nil // stale fetch for a previous asset
		}
		v.loading = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			v.deps.Sink.Errorf("asset history fetch: %v", msg.err)
			return v, nil
		}
		v.errText = ""
		v.reqs = msg.requests
		v.cursor = 0
		return v, nil

	case tea.KeyMsg:
		if v.typing {
			switch msg.String() {
			case "enter":
				id := strings.TrimSpace(v.input.Value())
				if id == "" {
					return v, nil
				}
				v.typing = false
				v.input.Blur()
				return v, v.fetch(id)
			case "esc":
				v.typing = false
				v.input.Blur()
				return v, nil
			}
			var cmd tea.Cmd
			v.input, cmd = v.input.Update(msg)
			return v, cmd
		}
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.reqs)-1 {
				v.cursor++
			}
		case "/":
			v.typing = true
			v.input.Focus()
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v assetHistoryView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteAssetHistory))
	b.WriteString("\n\n")
	b.WriteString(theme.FormLabel.Render("Asset") + " ")
	if v.typing {
		b.WriteString(theme.FormInputFocus.Render(v.input.View()))
	} else if v.assetID != "" {
		b.WriteString(theme.BadgeNeutral.Render(v.assetID))
	} else {
		b.WriteString(theme.ShortcutDesc.Render("press / to enter an asset id"))
	}
	b.WriteString("\n\n")
	switch {
	case v.loading:
		b.WriteString(theme.LoadingText.Render("Loading asset history..."))
	case v.errText != "":
		b.WriteString(theme.ErrorTitle.Render("Asset history unavailable"))
		b.WriteString("\n")
		b.WriteString(theme.ErrorMessage.Render(v.errText))
	case v.assetID != "":
		b.WriteString(renderHistoryTable(v.deps, v.reqs, v.cursor))
	}
	return theme.Container.Render(b.String())
}
