// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/assettrack-tui/internal/session"
	"github.com/jeranaias/assettrack-tui/internal/ui/components"
)

// =============================================================================
// ROUTES
// =============================================================================

// Route identifies a screen.
type Route int

const (
	RouteLogin Route = iota
	RouteRegister
	RouteUserDash
	RouteAdminDash
	RouteInventory
	RouteRequests
	RouteOrders
	RouteIssue
	RouteReturn
	RouteHistory
	RouteAssetHistory
	RouteScan
	RouteBarcode
	RouteReports
	RouteChat
)

// Title returns the screen name for the status bar.
func (r Route) Title() string {
	switch r {
	case RouteLogin:
		return "Sign In"
	case RouteRegister:
		return "Register"
	case RouteUserDash:
		return "Dashboard"
	case RouteAdminDash:
		return "Admin Dashboard"
	case RouteInventory:
		return "Inventory"
	case RouteRequests:
		return "My Requests"
	case RouteOrders:
		return "Orders"
	case RouteIssue:
		return "Issue Assets"
	case RouteReturn:
		return "Return Assets"
	case RouteHistory:
		return "History"
	case RouteAssetHistory:
		return "Asset History"
	case RouteScan:
		return "Scan"
	case RouteBarcode:
		return "Codes"
	case RouteReports:
		return "Reports"
	case RouteChat:
		return "Assistant"
	default:
		return "assettrack"
	}
}

// adminOnly lists screens a regular user must not reach.
var adminOnly = map[Route]bool{
	RouteAdminDash: true,
	RouteOrders:    true,
	RouteIssue:     true,
	RouteReports:   true,
}

// userOnly lists screens an admin has no use for.
var userOnly = map[Route]bool{
	RouteUserDash: true,
	RouteRequests: true,
	RouteReturn:   true,
	RouteHistory:  true,
	RouteScan:     true,
}

// userCycle and adminCycle order the tab navigation per role.
var userCycle = []Route{
	RouteUserDash, RouteInventory, RouteRequests, RouteReturn,
	RouteHistory, RouteScan, RouteBarcode, RouteChat,
}

var adminCycle = []Route{
	RouteAdminDash, RouteInventory, RouteOrders, RouteIssue,
	RouteAssetHistory, RouteBarcode, RouteReports, RouteChat,
}

// Allowed reports whether the signed-in role may open the route.
func Allowed(r Route, sess session.Session) bool {
	if adminOnly[r] && !sess.IsAdmin() {
		return false
	}
	if userOnly[r] && sess.IsAdmin() {
		return false
	}
	return true
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model. It owns the route, enforces role
// access, and forwards messages to the active view.
type App struct {
	deps *Deps

	route  Route
	denied *components.DeniedBanner

	width  int
	height int

	statusBar components.StatusBar

	login     loginView
	register  registerView
	userDash  userDashView
	adminDash adminDashView
	inventory inventoryView
	requests  requestsView
	orders    ordersView
	issue     issueView
	returns   returnView
	history   historyView
	assetHist assetHistoryView
	scan      scanView
	barcode   barcodeView
	reports   reportsView
	chat      chatView
}

// NewApp builds the root model. If a session survives from a previous
// run, the app resumes on the role's dashboard.
func NewApp(deps *Deps) *App {
	a := &App{
		deps:      deps,
		route:     RouteLogin,
		login:     newLoginView(deps),
		register:  newRegisterView(deps),
		userDash:  newUserDashView(deps),
		adminDash: newAdminDashView(deps),
		inventory: newInventoryView(deps),
		requests:  newRequestsView(deps),
		orders:    newOrdersView(deps),
		issue:     newIssueView(deps),
		returns:   newReturnView(deps),
		history:   newHistoryView(deps),
		assetHist: newAssetHistoryView(deps),
		scan:      newScanView(deps),
		barcode:   newBarcodeView(deps),
		reports:   newReportsView(deps),
		chat:      newChatView(deps),
	}
	if sess, ok := deps.Sessions.Current(); ok {
		a.route = homeRoute(sess)
	}
	return a
}

func homeRoute(sess session.Session) Route {
	if sess.IsAdmin() {
		return RouteAdminDash
	}
	return RouteUserDash
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.enterRoute(a.route)
}

// enterRoute runs the active view's load command, after the role gate.
// A denied view gets the banner and a redirect; its data is never
// fetched.
func (a *App) enterRoute(r Route) tea.Cmd {
	sess, signedIn := a.deps.Sessions.Current()
	if !signedIn && r != RouteLogin && r != RouteRegister {
		a.route = RouteLogin
		return nil
	}
	if signedIn && !Allowed(r, sess) {
		banner := components.NewDeniedBanner()
		a.denied = &banner
		a.deps.Sink.Errorf("access denied: role %q opened %s", sess.Role, r.Title())
		return banner.RedirectCmd()
	}
	a.denied = nil
	a.route = r

	switch r {
	case RouteUserDash:
		return a.userDash.load()
	case RouteAdminDash:
		return a.adminDash.load()
	case RouteInventory:
		return a.inventory.load()
	case RouteRequests:
		return a.requests.load()
	case RouteOrders:
		return a.orders.load()
	case RouteIssue:
		return a.issue.load()
	case RouteReturn:
		return a.returns.load()
	case RouteHistory:
		return a.history.load()
	case RouteAssetHistory:
		return a.assetHist.load()
	case RouteScan:
		return a.scan.enter()
	case RouteReports:
		return a.reports.enter()
	}
	return nil
}

// navigateMsg asks the app to switch screens.
type navigateMsg struct {
	route Route
	// requestID optionally preselects a row in the target view.
	requestID string
}

// Navigate returns a command that switches to the given route.
func Navigate(r Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.deps.Theme.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleGlobalKey(msg); handled {
			return a, cmd
		}

	case navigateMsg:
		if msg.requestID != "" {
			switch msg.route {
			case RouteReturn:
				a.returns.preselect(msg.requestID)
			case RouteAssetHistory:
				a.assetHist.assetID = msg.requestID
			}
		}
		return a, a.enterRoute(msg.route)

	case components.DeniedRedirectMsg:
		if a.denied != nil {
			a.denied = nil
			a.route = RouteLogin
		}
		return a, nil

	case loginDoneMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg)
		if msg.err == nil {
			if sess, ok := a.deps.Sessions.Current(); ok {
				return a, tea.Batch(cmd, a.enterRoute(homeRoute(sess)))
			}
		}
		return a, cmd
	}

	return a, a.updateActive(msg)
}

// handleGlobalKey runs keys that work on every signed-in screen.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "tab", "shift+tab":
		sess, ok := a.deps.Sessions.Current()
		if !ok || a.denied != nil {
			return nil, false
		}
		if a.activeEditing() {
			return nil, false
		}
		cycle := userCycle
		if sess.IsAdmin() {
			cycle = adminCycle
		}
		next := cycleRoute(cycle, a.route, msg.String() == "tab")
		return a.enterRoute(next), true
	case "ctrl+l":
		// Sign out from anywhere.
		if _, ok := a.deps.Sessions.Current(); ok {
			if err := a.deps.Sessions.Clear(); err != nil {
				a.deps.Sink.Errorf("sign out: %v", err)
			}
			a.deps.Sink.Event("User logged out")
			a.route = RouteLogin
			return nil, true
		}
	}
	return nil, false
}

// activeEditing reports whether the active view owns the keyboard for
// text entry, so tab should not steal focus.
func (a *App) activeEditing() bool {
	switch a.route {
	case RouteLogin:
		return true
	case RouteRegister:
		return true
	case RouteInventory:
		return a.inventory.editing()
	case RouteRequests:
		return a.requests.editing()
	case RouteOrders:
		return a.orders.editing()
	case RouteBarcode:
		return a.barcode.editing()
	case RouteAssetHistory:
		return a.assetHist.editing()
	case RouteChat:
		return a.chat.editing()
	}
	return false
}

func cycleRoute(cycle []Route, current Route, forward bool) Route {
	idx := 0
	for i, r := range cycle {
		if r == current {
			idx = i
			break
		}
	}
	if forward {
		return cycle[(idx+1)%len(cycle)]
	}
	return cycle[(idx+len(cycle)-1)%len(cycle)]
}

// updateActive forwards a message to the active view only.
func (a *App) updateActive(msg tea.Msg) tea.Cmd {
	if a.denied != nil {
		return nil
	}
	var cmd tea.Cmd
	switch a.route {
	case RouteLogin:
		a.login, cmd = a.login.update(msg)
	case RouteRegister:
		a.register, cmd = a.register.update(msg)
	case RouteUserDash:
		a.userDash, cmd = a.userDash.update(msg)
	case RouteAdminDash:
		a.adminDash, cmd = a.adminDash.update(msg)
	case RouteInventory:
		a.inventory, cmd = a.inventory.update(msg)
	case RouteRequests:
		a.requests, cmd = a.requests.update(msg)
	case RouteOrders:
		a.orders, cmd = a.orders.update(msg)
	case RouteIssue:
		a.issue, cmd = a.issue.update(msg)
	case RouteReturn:
		a.returns, cmd = a.returns.update(msg)
	case RouteHistory:
		a.history, cmd = a.history.update(msg)
	case RouteAssetHistory:
		a.assetHist, cmd = a.assetHist.update(msg)
	case RouteScan:
		a.scan, cmd = a.scan.update(msg)
	case RouteBarcode:
		a.barcode, cmd = a.barcode.update(msg)
	case RouteReports:
		a.reports, cmd = a.reports.update(msg)
	case RouteChat:
		a.chat, cmd = a.chat.update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	theme := a.deps.Theme
	width := a.width
	if width <= 0 {
		width = 80
	}

	var body string
	if a.denied != nil {
		body = "\n" + a.denied.Render(theme, width) + "\n"
	} else {
		switch a.route {
		case RouteLogin:
			body = a.login.view()
		case RouteRegister:
			body = a.register.view()
		case RouteUserDash:
			body = a.userDash.view()
		case RouteAdminDash:
			body = a.adminDash.view()
		case RouteInventory:
			body = a.inventory.view()
		case RouteRequests:
			body = a.requests.view()
		case RouteOrders:
			body = a.orders.view()
		case RouteIssue:
			body = a.issue.view()
		case RouteReturn:
			body = a.returns.view()
		case RouteHistory:
			body = a.history.view()
		case RouteAssetHistory:
			body = a.assetHist.view()
		case RouteScan:
			body = a.scan.view()
		case RouteBarcode:
			body = a.barcode.view()
		case RouteReports:
			body = a.reports.view()
		case RouteChat:
			body = a.chat.view()
		}
	}

	sess, signedIn := a.deps.Sessions.Current()
	bar := components.StatusBar{
		Session:  sess,
		SignedIn: signedIn,
		ViewName: a.route.Title(),
		Status:   a.barStatus(),
		Width:    width,
	}

	header := theme.HeaderBrand.Render("assettrack") + "  " +
		theme.HeaderTitle.Render(a.route.Title())

	sections := []string{
		theme.Container.Render(header),
		body,
		bar.Render(theme),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) barStatus() components.Status {
	if a.denied != nil {
		return components.StatusError
	}
	switch a.route {
	case RouteUserDash:
		return a.userDash.status()
	case RouteAdminDash:
		return a.adminDash.status()
	case RouteInventory:
		return a.inventory.status()
	case RouteRequests:
		return a.requests.status()
	case RouteOrders:
		return a.orders.status()
	case RouteIssue:
		return a.issue.status()
	case RouteReturn:
		return a.returns.status()
	case RouteHistory:
		return a.history.status()
	case RouteScan:
		return a.scan.status()
	}
	return components.StatusReady
}

// renderNav renders the per-role navigation strip used by dashboards.
func renderNav(deps *Deps, active Route) string {
	sess, ok := deps.Sessions.Current()
	if !ok {
		return ""
	}
	cycle := userCycle
	if sess.IsAdmin() {
		cycle = adminCycle
	}
	parts := make([]string, 0, len(cycle))
	for _, r := range cycle {
		style := deps.Theme.NavItem
		if r == active {
			style = deps.Theme.NavActive
		}
		parts = append(parts, style.Render(r.Title()))
	}
	return strings.Join(parts, " ")
}
