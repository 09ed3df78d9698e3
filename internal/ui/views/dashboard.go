// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/model"
	"github.com/jeranaias/assettrack-tui/internal/ui/components"
)

// =============================================================================
// ADMIN DASHBOARD
// =============================================================================

type adminDashView struct {
	deps *Deps

	summary model.AdminSummary
	loaded  bool
	loading bool
	errText string
}

func newAdminDashView(deps *Deps) adminDashView {
	return adminDashView{deps: deps}
}

func (v *adminDashView) load() tea.Cmd {
	v.loading = true
	v.errText = ""
	deps := v.deps
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		summary, err := deps.Client.AdminDashboardSummary(ctx)
		return adminSummaryMsg{summary: summary, err: err}
	}
}

func (v adminDashView) update(msg tea.Msg) (adminDashView, tea.Cmd) {
	switch msg := msg.(type) {
	case adminSummaryMsg:
		v.loading = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			v.deps.Sink.Errorf("admin dashboard fetch: %v", msg.err)
			return v, nil
		}
		v.summary = msg.summary
		v.loaded = true
		v.errText = ""
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return v, v.load()
		}
	}
	return v, nil
}

func (v adminDashView) status() components.Status {
	switch {
	case v.loading:
		return components.StatusLoading
	case v.errText != "":
		return components.StatusError
	default:
		return components.StatusReady
	}
}

func (v adminDashView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteAdminDash))
	b.WriteString("\n\n")

	switch {
	case v.loading && !v.loaded:
		b.WriteString(theme.LoadingText.Render("Loading dashboard..."))
	case v.errText != "":
		b.WriteString(theme.ErrorTitle.Render("Could not load dashboard"))
		b.WriteString("\n")
		b.WriteString(theme.ErrorMessage.Render(v.errText))
	default:
		s := v.summary
		cards := []string{
			renderCard(v.deps, "Total Items", fmt.Sprintf("%d", s.TotalItems), false),
			renderCard(v.deps, "Inventory Value", fmt.Sprintf("$%.2f", s.TotalValue), false),
			renderCard(v.deps, "Orders", fmt.Sprintf("%d", s.TotalOrders), false),
			renderCard(v.deps, "Pending", fmt.Sprintf("%d", s.PendingOrders), s.PendingOrders > 0),
			renderCard(v.deps, "Out of Stock", fmt.Sprintf("%d", s.OutOfStockCount()), s.OutOfStockCount() > 0),
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		b.WriteString("\n\n")

		if len(s.LowStockItems) > 0 {
			b.WriteString(theme.HeaderTitle.Render("Low stock"))
			b.WriteString("\n")
			tbl := components.Table{
				Columns: []components.Column{
					{Title: "Name", Width: 24, Flex: true},
					{Title: "SKU", Width: 12},
					{Title: "Qty", Width: 5},
				},
				Width: theme.Width,
				Empty: "No low-stock items.",
			}
			for _, item := range s.LowStockItems {
				tbl.Rows = append(tbl.Rows, []string{
					item.Name, item.SKU, fmt.Sprintf("%d", item.Quantity),
				})
			}
			tbl.Cursor = -1
			b.WriteString(tbl.Render(theme))
			b.WriteString("\n\n")
		}

		b.WriteString(theme.HeaderTitle.Render("Recent orders"))
		b.WriteString("\n")
		b.WriteString(renderRequestTable(v.deps, s.RecentOrders, -1, "No recent orders."))
	}
	return theme.Container.Render(b.String())
}

func renderCard(deps *Deps, title, value string, alert bool) string {
	theme := deps.Theme
	valueStyle := theme.CardValue
	if alert {
		valueStyle = theme.CardAlert
	}
	content := theme.CardTitle.Render(title) + "\n" + valueStyle.Render(value)
	return theme.Card.Render(content)
}

// renderRequestTable is the shared request listing used by dashboards
// and lifecycle views.
func renderRequestTable(deps *Deps, reqs []model.Request, cursor int, empty string) string {
	theme := deps.Theme
	tbl := components.Table{
		Columns: []components.Column{
			{Title: "Asset", Width: 22, Flex: true},
			{Title: "Requester", Width: 16},
			{Title: "Status", Width: 10},
			{Title: "Requested", Width: 16},
		},
		Cursor: cursor,
		Width:  theme.Width,
		Empty:  empty,
	}
	for _, r := range reqs {
		derived := model.DeriveStatus(r)
		tbl.Rows = append(tbl.Rows, []string{
			r.ProductName,
			r.Requester,
			theme.StatusBadge(derived).Render(derived.String()),
			model.FormatWhen(r.Timestamp),
		})
	}
	return tbl.Render(theme)
}

// =============================================================================
// USER DASHBOARD
// =============================================================================

type userDashView struct {
	deps *Deps

	summary model.UserSummary
	loaded  bool
	loading bool
	errText string
}

func newUserDashView(deps *Deps) userDashView {
	return userDashView{deps: deps}
}

func (v *userDashView) load() tea.Cmd {
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
		summary, err := deps.Client.UserDashboardSummary(ctx, sess.UserID)
		return userSummaryMsg{summary: summary, err: err}
	}
}

func (v userDashView) update(msg tea.Msg) (userDashView, tea.Cmd) {
	switch msg := msg.(type) {
	case userSummaryMsg:
		v.loading = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			v.deps.Sink.Errorf("user dashboard fetch: %v", msg.err)
			return v, nil
		}
		v.summary = msg.summary
		v.loaded = true
		v.errText = ""
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return v, v.load()
		}
	}
	return v, nil
}

func (v userDashView) status() components.Status {
	switch {
	case v.loading:
		return components.StatusLoading
	case v.errText != "":
		return components.StatusError
	default:
		return components.StatusReady
	}
}

func (v userDashView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteUserDash))
	b.WriteString("\n\n")

	switch {
	case v.loading && !v.loaded:
		b.WriteString(theme.LoadingText.Render("Loading dashboard..."))
	case v.errText != "":
		b.WriteString(theme.ErrorTitle.Render("Could not load dashboard"))
		b.WriteString("\n")
		b.WriteString(theme.ErrorMessage.Render(v.errText))
	default:
		s := v.summary
		cards := []string{
			renderCard(v.deps, "Assets", fmt.Sprintf("%d", s.TotalAssets), false),
			renderCard(v.deps, "Checked Out", fmt.Sprintf("%d", s.CheckedOut), false),
			renderCard(v.deps, "Available", fmt.Sprintf("%d", s.Available), false),
			renderCard(v.deps, "Pending", fmt.Sprintf("%d", s.PendingRequests), s.PendingRequests > 0),
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return theme.Container.Render(b.String())
}
