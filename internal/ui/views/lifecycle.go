// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/model"
	"github.com/jeranaias/assettrack-tui/internal/ui/components"
)

// =============================================================================
// SHARED REQUEST LIST STATE
// =============================================================================

// requestList is the state shared by every view that lists requests and
// acts on single rows. busy is keyed by request ID; a row with an action
// in flight refuses further actions until its result clears the flag.
type requestList struct {
	all     []model.Request
	visible []model.Request
	cursor  int
	busy    map[string]bool
	loading bool
	errText string
	toast   *components.Toast
}

func newRequestList() requestList {
	return requestList{busy: make(map[string]bool)}
}

func (l *requestList) setData(reqs []model.Request, keep func(model.Request) bool) {
	l.all = reqs
	l.refilter(keep)
}

func (l *requestList) refilter(keep func(model.Request) bool) {
	l.visible = l.visible[:0]
	for _, r := range l.all {
		if keep == nil || keep(r) {
			l.visible = append(l.visible, r)
		}
	}
	if l.cursor >= len(l.visible) {
		l.cursor = len(l.visible) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *requestList) selected() (model.Request, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return model.Request{}, false
	}
	return l.visible[l.cursor], true
}

func (l *requestList) moveCursor(delta int) {
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= len(l.visible) {
		l.cursor = len(l.visible) - 1
		if l.cursor < 0 {
			l.cursor = 0
		}
	}
}

func (l requestList) workStatus() components.Status {
	switch {
	case l.loading || len(l.busy) > 0:
		return components.StatusWorking
	case l.errText != "":
		return components.StatusError
	default:
		return components.StatusReady
	}
}

// fetchRequests loads the full request list.
func fetchRequests(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		reqs, err := deps.Client.ListRequests(ctx)
		return requestsLoadedMsg{requests: reqs, err: err}
	}
}

// rowAction runs a single-row mutation and resolves to rowActionDoneMsg.
// The busy flag for the row clears on BOTH outcomes, in the message
// handler.
func rowAction(deps *Deps, requestID, action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		err := fn()
		if errors.Is(err, api.ErrStale) {
			return rowActionDoneMsg{requestID: requestID, action: action, stale: true}
		}
		return rowActionDoneMsg{requestID: requestID, action: action, err: err}
	}
}

// =============================================================================
// MY REQUESTS (user)
// =============================================================================

type requestsView struct {
	deps *Deps
	list requestList
}

func newRequestsView(deps *Deps) requestsView {
	return requestsView{deps: deps, list: newRequestList()}
}

func (v requestsView) editing() bool { return false }

func (v *requestsView) load() tea.Cmd {
	v.list.loading = true
	v.list.errText = ""
	return fetchRequests(v.deps)
}

func (v *requestsView) keep() func(model.Request) bool {
	sess, _ := v.deps.Sessions.Current()
	return func(r model.Request) bool { return r.UserID == sess.UserID }
}

func (v requestsView) update(msg tea.Msg) (requestsView, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsLoadedMsg:
		v.list.loading = false
		if msg.err != nil {
			v.list.errText = api.UserMessage(msg.err)
			v.deps.Sink.Errorf("requests fetch: %v", msg.err)
			return v, nil
		}
		v.list.errText = ""
		v.list.setData(msg.requests, v.keep())
		return v, nil

	case rowActionDoneMsg:
		delete(v.list.busy, msg.requestID)
		return v, v.afterRowAction(msg)

	case components.ToastExpiredMsg:
		if v.list.toast != nil && v.list.toast.Expired(timeNow()) {
			v.list.toast = nil
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.list.moveCursor(-1)
		case "down", "j":
			v.list.moveCursor(1)
		case "r":
			return v, v.load()
		case "d":
			// Requesters may delete their own requests in any state.
			if req, ok := v.list.selected(); ok && !v.list.busy[req.RequestID] {
				sess, _ := v.deps.Sessions.Current()
				v.list.busy[req.RequestID] = true
				deps := v.deps
				id := req.RequestID
				return v, rowAction(deps, id, "delete", func() error {
					ctx, cancel := callCtx()
					defer cancel()
					return deps.Client.DeleteRequest(ctx, id, sess.UserID)
				})
			}
		}
	}
	return v, nil
}

// afterRowAction turns a row result into a toast (or a silent refetch
// for stale rows) and reloads on success.
func (v *requestsView) afterRowAction(msg rowActionDoneMsg) tea.Cmd {
	if msg.stale {
		return v.load()
	}
	if msg.err != nil {
		toast := components.NewToast(components.ToastError, api.UserMessage(msg.err))
		v.list.toast = &toast
		v.deps.Sink.Errorf("%s request %s: %v", msg.action, msg.requestID, msg.err)
		return toast.ExpireCmd()
	}
	toast := components.NewToast(components.ToastSuccess, "Request "+msg.action+"d")
	v.list.toast = &toast
	v.deps.Sink.Event("Request " + msg.requestID + " " + msg.action + "d")
	return tea.Batch(v.load(), toast.ExpireCmd())
}

func (v requestsView) status() components.Status { return v.list.workStatus() }

func (v requestsView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteRequests))
	b.WriteString("\n\n")
	b.WriteString(renderListBody(v.deps, v.list, "Loading your requests...",
		"You have no requests yet. Request an asset from the Inventory view."))
	b.WriteString("\n\n")
	b.WriteString(theme.ShortcutKey.Render("d") + theme.ShortcutDesc.Render(" delete  "))
	b.WriteString(theme.ShortcutKey.Render("r") + theme.ShortcutDesc.Render(" refresh"))
	if v.list.toast != nil {
		b.WriteString("\n")
		b.WriteString(v.list.toast.Render(theme))
	}
	return theme.Container.Render(b.String())
}

// renderListBody renders loading / error / table for a request list.
func renderListBody(deps *Deps, list requestList, loadingText, emptyText string) string {
	theme := deps.Theme
	switch {
	case list.loading && len(list.all) == 0:
		return theme.LoadingText.Render(loadingText)
	case list.errText != "":
		return theme.ErrorTitle.Render("Request data unavailable") + "\n" +
			theme.ErrorMessage.Render(list.errText)
	default:
		return renderRequestTable(deps, list.visible, list.cursor, emptyText)
	}
}

// =============================================================================
// ORDERS (admin approve / reject)
// =============================================================================

type ordersView struct {
	deps   *Deps
	list   requestList
	filter model.RequestFilter

	search    textinput.Model
	searching bool

	// hint is the "no actions" notice for rows past the Pending state.
	hint string
}

func newOrdersView(deps *Deps) ordersView {
	search := textinput.New()
	search.Placeholder = "search id or requester"
	search.CharLimit = 80
	return ordersView{deps: deps, list: newRequestList(), search: search}
}

func (v ordersView) editing() bool { return v.searching }

func (v *ordersView) load() tea.Cmd {
	v.list.loading = true
	v.list.errText = ""
	v.hint = ""
	return fetchRequests(v.deps)
}

func (v ordersView) update(msg tea.Msg) (ordersView, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsLoadedMsg:
		v.list.loading = false
		if msg.err != nil {
			v.list.errText = api.UserMessage(msg.err)
			v.deps.Sink.Errorf("orders fetch: %v", msg.err)
			return v, nil
		}
		v.list.errText = ""
		v.list.setData(msg.requests, v.filter.Match)
		return v, nil

	case rowActionDoneMsg:
		delete(v.list.busy, msg.requestID)
		return v, v.afterRowAction(msg)

	case components.ToastExpiredMsg:
		if v.list.toast != nil && v.list.toast.Expired(timeNow()) {
			v.list.toast = nil
		}
		return v, nil

	case tea.KeyMsg:
		if v.searching {
			switch msg.String() {
			case "enter", "esc":
				v.searching = false
				v.search.Blur()
				return v, nil
			}
			var cmd tea.Cmd
			v.search, cmd = v.search.Update(msg)
			v.filter.Search = v.search.Value()
			v.list.refilter(v.filter.Match)
			return v, cmd
		}
		switch msg.String() {
		case "up", "k":
			v.list.moveCursor(-1)
			v.hint = ""
		case "down", "j":
			v.list.moveCursor(1)
			v.hint = ""
		case "r":
			return v, v.load()
		case "/":
			v.searching = true
			v.search.Focus()
		case "t":
			v.filter.Type = nextRequestType(v.list.all, v.filter.Type)
			v.list.refilter(v.filter.Match)
			v.hint = ""
		case "s":
			v.filter.Status = nextStatusFilter(v.filter.Status)
			v.list.refilter(v.filter.Match)
			v.hint = ""
		case "a":
			return v.patch(model.StatusApproved, "approve")
		case "x":
			return v.patch(model.StatusRejected, "reject")
		case "d":
			// Admins may delete any request in any state.
			if req, ok := v.list.selected(); ok && !v.list.busy[req.RequestID] {
				sess, _ := v.deps.Sessions.Current()
				v.list.busy[req.RequestID] = true
				deps := v.deps
				id := req.RequestID
				return v, rowAction(deps, id, "delete", func() error {
					ctx, cancel := callCtx()
					defer cancel()
					return deps.Client.DeleteRequest(ctx, id, sess.UserID)
				})
			}
		}
	}
	return v, nil
}

// patch moves the selected request to a new status. Rows past the
// Pending state get the no-actions notice instead of a command.
func (v ordersView) patch(to model.Status, action string) (ordersView, tea.Cmd) {
	req, ok := v.list.selected()
	if !ok || v.list.busy[req.RequestID] {
		return v, nil
	}
	if derived := model.DeriveStatus(req); derived != model.StatusPending {
		v.hint = "No actions available for " + string(derived) + " requests."
		return v, nil
	}
	v.hint = ""
	v.list.busy[req.RequestID] = true
	deps := v.deps
	id := req.RequestID
	return v, rowAction(deps, id, action, func() error {
		ctx, cancel := callCtx()
		defer cancel()
		return deps.Client.UpdateRequest(ctx, id, api.RequestPatch{Status: to})
	})
}

func (v *ordersView) afterRowAction(msg rowActionDoneMsg) tea.Cmd {
	if msg.stale {
		return v.load()
	}
	if msg.err != nil {
		toast := components.NewToast(components.ToastError, api.UserMessage(msg.err))
		v.list.toast = &toast
		v.deps.Sink.Errorf("%s request %s: %v", msg.action, msg.requestID, msg.err)
		return toast.ExpireCmd()
	}
	toast := components.NewToast(components.ToastSuccess, "Request "+msg.action+"d")
	v.list.toast = &toast
	v.deps.Sink.Event("Request " + msg.requestID + " " + msg.action + "d")
	return tea.Batch(v.load(), toast.ExpireCmd())
}

func (v ordersView) status() components.Status { return v.list.workStatus() }

func (v ordersView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteOrders))
	b.WriteString("\n\n")
	filterLine := theme.ShortcutDesc.Render("type: ") + theme.BadgeNeutral.Render(orAll(v.filter.Type)) +
		theme.ShortcutDesc.Render("  status: ") + theme.BadgeNeutral.Render(orAll(string(v.filter.Status)))
	if v.searching || v.filter.Search != "" {
		filterLine += theme.ShortcutDesc.Render("  search: ") + v.search.View()
	}
	b.WriteString(filterLine)
	b.WriteString("\n\n")
	b.WriteString(renderListBody(v.deps, v.list, "Loading orders...", "No orders found."))
	b.WriteString("\n\n")
	b.WriteString(theme.ShortcutKey.Render("a") + theme.ShortcutDesc.Render(" approve  "))
	b.WriteString(theme.ShortcutKey.Render("x") + theme.ShortcutDesc.Render(" reject  "))
	b.WriteString(theme.ShortcutKey.Render("d") + theme.ShortcutDesc.Render(" delete  "))
	b.WriteString(theme.ShortcutKey.Render("/") + theme.ShortcutDesc.Render(" search  "))
	b.WriteString(theme.ShortcutKey.Render("t") + theme.ShortcutDesc.Render(" type  "))
	b.WriteString(theme.ShortcutKey.Render("s") + theme.ShortcutDesc.Render(" status  "))
	b.WriteString(theme.ShortcutKey.Render("r") + theme.ShortcutDesc.Render(" refresh"))
	if v.hint != "" {
		b.WriteString("\n")
		b.WriteString(theme.ShortcutDesc.Render(v.hint))
	}
	if v.list.toast != nil {
		b.WriteString("\n")
		b.WriteString(v.list.toast.Render(theme))
	}
	return theme.Container.Render(b.String())
}

func nextStatusFilter(current model.Status) model.Status {
	order := []model.Status{"", model.StatusPending, model.StatusApproved,
		model.StatusRejected, model.StatusIssued, model.StatusReturned}
	for i, s := range order {
		if s == current {
			return order[(i+1)%len(order)]
		}
	}
	return ""
}

// nextRequestType cycles through the request types present in the data,
// with the empty value meaning All.
func nextRequestType(reqs []model.Request, current string) string {
	seen := map[string]bool{}
	var types []string
	for _, r := range reqs {
		if r.RequestType == "" || seen[r.RequestType] {
			continue
		}
		seen[r.RequestType] = true
		types = append(types, r.RequestType)
	}
	if len(types) == 0 {
		return ""
	}
	if current == "" {
		return types[0]
	}
	for i, t := range types {
		if t == current {
			if i == len(types)-1 {
				return ""
			}
			return types[i+1]
		}
	}
	return ""
}

// =============================================================================
// ISSUE (admin)
// =============================================================================

type issueView struct {
	deps *Deps
	list requestList
}

func newIssueView(deps *Deps) issueView {
	return issueView{deps: deps, list: newRequestList()}
}

func (v *issueView) load() tea.Cmd {
	v.list.loading = true
	v.list.errText = ""
	return fetchRequests(v.deps)
}

func (v issueView) update(msg tea.Msg) (issueView, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsLoadedMsg:
		v.list.loading = false
		if msg.err != nil {
			v.list.errText = api.UserMessage(msg.err)
			v.deps.Sink.Errorf("issue queue fetch: %v", msg.err)
			return v, nil
		}
		v.list.errText = ""
		// Only approved-but-not-yet-issued requests can be issued.
		v.list.setData(msg.requests, model.Request.Issuable)
		return v, nil

	case rowActionDoneMsg:
		delete(v.list.busy, msg.requestID)
		if msg.stale {
			return v, v.load()
		}
		if msg.err != nil {
			toast := components.NewToast(components.ToastError, api.UserMessage(msg.err))
			v.list.toast = &toast
			v.deps.Sink.Errorf("issue request %s: %v", msg.requestID, msg.err)
			return v, toast.ExpireCmd()
		}
		toast := components.NewToast(components.ToastSuccess, "Asset issued")
		v.list.toast = &toast
		v.deps.Sink.Event("Asset issued for request " + msg.requestID)
		return v, tea.Batch(v.load(), toast.ExpireCmd())

	case components.ToastExpiredMsg:
		if v.list.toast != nil && v.list.toast.Expired(timeNow()) {
			v.list.toast = nil
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.list.moveCursor(-1)
		case "down", "j":
			v.list.moveCursor(1)
		case "r":
			return v, v.load()
		case "i", "enter":
			req, ok := v.list.selected()
			if !ok || v.list.busy[req.RequestID] || !req.Issuable() {
				return v, nil
			}
			sess, _ := v.deps.Sessions.Current()
			v.list.busy[req.RequestID] = true
			deps := v.deps
			id := req.RequestID
			return v, rowAction(deps, id, "issue", func() error {
				ctx, cancel := callCtx()
				defer cancel()
				return deps.Client.IssueRequest(ctx, id, sess.UserID)
			})
		}
	}
	return v, nil
}

func (v issueView) status() components.Status { return v.list.workStatus() }

func (v issueView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteIssue))
	b.WriteString("\n\n")
	b.WriteString(renderListBody(v.deps, v.list, "Loading approved requests...",
		"No approved requests are waiting for issuance."))
	b.WriteString("\n\n")
	b.WriteString(theme.ShortcutKey.Render("i") + theme.ShortcutDesc.Render(" issue  "))
	b.WriteString(theme.ShortcutKey.Render("r") + theme.ShortcutDesc.Render(" refresh"))
	if v.list.toast != nil {
		b.WriteString("\n")
		b.WriteString(v.list.toast.Render(theme))
	}
	return theme.Container.Render(b.String())
}

// =============================================================================
// RETURN (user)
// =============================================================================

type returnView struct {
	deps *Deps
	list requestList
	// preselectID moves the cursor to a row on next load, typically
	// after a successful scan.
	preselectID string
}

func newReturnView(deps *Deps) returnView {
	return returnView{deps: deps, list: newRequestList()}
}

func (v *returnView) preselect(requestID string) {
	v.preselectID = requestID
}

func (v *returnView) load() tea.Cmd {
	v.list.loading = true
	v.list.errText = ""
	return fetchRequests(v.deps)
}

// returnable keeps requests issued to this user and not yet returned.
func (v *returnView) returnable() func(model.Request) bool {
	sess, _ := v.deps.Sessions.Current()
	return func(r model.Request) bool {
		return r.IssuedTo == sess.UserID && r.Issued() && !r.Returned()
	}
}

func (v returnView) update(msg tea.Msg) (returnView, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsLoadedMsg:
		v.list.loading = false
		if msg.err != nil {
			v.list.errText = api.UserMessage(msg.err)
			v.deps.Sink.Errorf("returnables fetch: %v", msg.err)
			return v, nil
		}
		v.list.errText = ""
		v.list.setData(msg.requests, v.returnable())
		if v.preselectID != "" {
			for i, r := range v.list.visible {
				if r.RequestID == v.preselectID {
					v.list.cursor = i
					break
				}
			}
			v.preselectID = ""
		}
		return v, nil

	case rowActionDoneMsg:
		delete(v.list.busy, msg.requestID)
		if msg.stale {
			return v, v.load()
		}
		if msg.err != nil {
			toast := components.NewToast(components.ToastError, api.UserMessage(msg.err))
			v.list.toast = &toast
			v.deps.Sink.Errorf("return request %s: %v", msg.requestID, msg.err)
			return v, toast.ExpireCmd()
		}
		toast := components.NewToast(components.ToastSuccess, "Asset returned")
		v.list.toast = &toast
		v.deps.Sink.Event("Asset returned for request " + msg.requestID)
		return v, tea.Batch(v.load(), toast.ExpireCmd())

	case components.ToastExpiredMsg:
		if v.list.toast != nil && v.list.toast.Expired(timeNow()) {
			v.list.toast = nil
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.list.moveCursor(-1)
		case "down", "j":
			v.list.moveCursor(1)
		case "r":
			return v, v.load()
		case "enter":
			req, ok := v.list.selected()
			if !ok || v.list.busy[req.RequestID] {
				return v, nil
			}
			sess, _ := v.deps.Sessions.Current()
			v.list.busy[req.RequestID] = true
			deps := v.deps
			id := req.RequestID
			return v, rowAction(deps, id, "return", func() error {
				ctx, cancel := callCtx()
				defer cancel()
				return deps.Client.ReturnRequest(ctx, id, sess.UserID)
			})
		}
	}
	return v, nil
}

func (v returnView) status() components.Status { return v.list.workStatus() }

func (v returnView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteReturn))
	b.WriteString("\n\n")
	b.WriteString(renderListBody(v.deps, v.list, "Loading your issued assets...",
		"You have no assets to return."))
	b.WriteString("\n\n")
	b.WriteString(theme.ShortcutKey.Render("enter") + theme.ShortcutDesc.Render(" return  "))
	b.WriteString(theme.ShortcutKey.Render("r") + theme.ShortcutDesc.Render(" refresh"))
	if v.list.toast != nil {
		b.WriteString("\n")
		b.WriteString(v.list.toast.Render(theme))
	}
	return theme.Container.Render(b.String())
}
