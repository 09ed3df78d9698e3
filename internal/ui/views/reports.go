// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/config"
	"github.com/jeranaias/assettrack-tui/internal/report"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// =============================================================================
// REPORTS (activity log + day export)
// =============================================================================

type reportsView struct {
	deps *Deps

	day      time.Time
	lastPath string
	errText  string
}

func newReportsView(deps *Deps) reportsView {
	return reportsView{deps: deps, day: timeNow()}
}

func (v *reportsView) enter() tea.Cmd {
	v.day = timeNow()
	v.lastPath = ""
	v.errText = ""
	return nil
}

func (v reportsView) update(msg tea.Msg) (reportsView, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, report.ErrNoEntries) {
				v.errText = "No log entries for " + v.day.Format("2006-01-02") + "; nothing exported."
			} else {
				v.errText = msg.err.Error()
			}
			return v, nil
		}
		v.errText = ""
		v.lastPath = msg.path
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			v.day = v.day.AddDate(0, 0, -1)
			v.lastPath = ""
			v.errText = ""
		case "right", "l":
			v.day = v.day.AddDate(0, 0, 1)
			v.lastPath = ""
			v.errText = ""
		case "t":
			v.day = timeNow()
		case "e", "enter":
			return v.export()
		}
	}
	return v, nil
}

func (v reportsView) export() (reportsView, tea.Cmd) {
	sink := v.deps.Sink
	day := v.day
	dir := config.Global().Export.Dir
	return v, func() tea.Msg {
		path, err := report.ExportDay(sink, dir, day)
		return exportDoneMsg{path: path, err: err}
	}
}

func (v reportsView) view() string {
	theme := v.deps.Theme

	entries := v.deps.Sink.EntriesOn(v.day)

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteReports))
	b.WriteString("\n\n")
	b.WriteString(theme.HeaderTitle.Render("Activity log"))
	b.WriteString("  ")
	b.WriteString(theme.BadgeNeutral.Render(v.day.Format("2006-01-02")))
	b.WriteString("  ")
	b.WriteString(theme.ShortcutDesc.Render(fmt.Sprintf("%d entries", len(entries))))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(theme.TableEmpty.Render("No activity recorded for this day."))
	} else {
		// Tail of the day's log, newest last.
		start := 0
		if len(entries) > 15 {
			start = len(entries) - 15
		}
		for _, e := range entries[start:] {
			b.WriteString(theme.ShortcutDesc.Render(e.Line()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.ShortcutKey.Render("left/right") + theme.ShortcutDesc.Render(" day  "))
	b.WriteString(theme.ShortcutKey.Render("t") + theme.ShortcutDesc.Render(" today  "))
	b.WriteString(theme.ShortcutKey.Render("e") + theme.ShortcutDesc.Render(" export"))
	if v.lastPath != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.RenderSuccess("Exported " + v.lastPath))
	}
	if v.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.RenderWarning(v.errText))
	}
	return theme.Container.Render(b.String())
}
