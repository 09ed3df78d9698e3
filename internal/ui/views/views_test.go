// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/model"
	"github.com/jeranaias/assettrack-tui/internal/report"
	"github.com/jeranaias/assettrack-tui/internal/session"
	"github.com/jeranaias/assettrack-tui/internal/ui/components"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

func testDeps(t *testing.T, baseURL string) *Deps {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore())
	t.Cleanup(func() { mgr.Close() })
	return &Deps{
		Client:   api.New(baseURL),
		Sessions: mgr,
		Sink:     report.NewSink(),
		Theme:    styles.NewTheme(),
	}
}

func signIn(t *testing.T, deps *Deps, role string) {
	t.Helper()
	if err := deps.Sessions.Save(session.Session{
		UserID: "u-1", UserName: "Pat", Role: role,
	}); err != nil {
		t.Fatal(err)
	}
}

func TestRoleGateDeniesUserFromAdminViews(t *testing.T) {
	fetched := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched = true
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	deps := testDeps(t, srv.URL)
	signIn(t, deps, session.RoleUser)
	app := NewApp(deps)

	cmd := app.enterRoute(RouteOrders)
	if app.denied == nil {
		t.Fatal("user reaching admin orders did not raise the denial banner")
	}
	if cmd == nil {
		t.Fatal("denial did not schedule a redirect")
	}
	if fetched {
		t.Error("denied view fetched data")
	}
	if !strings.Contains(app.View(), "Access denied") {
		t.Error("denial banner not rendered")
	}

	// The scheduled redirect returns the app to sign-in.
	m, _ := app.Update(components.DeniedRedirectMsg{})
	app = m.(*App)
	if app.route != RouteLogin {
		t.Errorf("after redirect route = %v, want RouteLogin", app.route)
	}
}

func TestRoleGateDeniesAdminFromUserViews(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleAdmin)
	app := NewApp(deps)

	app.enterRoute(RouteReturn)
	if app.denied == nil {
		t.Fatal("admin reaching the return view did not raise the denial banner")
	}
}

func TestAllowedMatrix(t *testing.T) {
	admin := session.Session{Role: session.RoleAdmin}
	user := session.Session{Role: session.RoleUser}

	tests := []struct {
		route Route
		sess  session.Session
		want  bool
	}{
		{RouteOrders, admin, true},
		{RouteOrders, user, false},
		{RouteIssue, user, false},
		{RouteReports, user, false},
		{RouteReturn, admin, false},
		{RouteHistory, admin, false},
		{RouteScan, admin, false},
		{RouteInventory, admin, true},
		{RouteInventory, user, true},
		{RouteBarcode, user, true},
		{RouteChat, admin, true},
	}
	for _, tt := range tests {
		if got := Allowed(tt.route, tt.sess); got != tt.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tt.route.Title(), tt.sess.Role, got, tt.want)
		}
	}
}

func TestUnauthenticatedRoutesToLogin(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	app := NewApp(deps)

	app.enterRoute(RouteInventory)
	if app.route != RouteLogin {
		t.Errorf("unauthenticated navigation landed on %v, want RouteLogin", app.route)
	}
}

func TestIssueViewKeepsOnlyIssuable(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleAdmin)
	v := newIssueView(deps)

	reqs := []model.Request{
		{RequestID: "r-1", Status: model.StatusApproved},                         // issuable
		{RequestID: "r-2", Status: model.StatusPending},                          // not approved
		{RequestID: "r-3", Status: model.StatusApproved, IssueDate: "2026-01-01"}, // already issued
		{RequestID: "r-4", Status: model.StatusRejected},
	}
	v, _ = v.update(requestsLoadedMsg{requests: reqs})

	if len(v.list.visible) != 1 || v.list.visible[0].RequestID != "r-1" {
		t.Errorf("issuable rows = %+v, want only r-1", v.list.visible)
	}
}

func TestReturnViewKeepsOnlyMine(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleUser)
	v := newReturnView(deps)

	reqs := []model.Request{
		{RequestID: "r-1", IssuedTo: "u-1", IssueDate: "2026-02-01"},                             // mine, out
		{RequestID: "r-2", IssuedTo: "u-1", IssueDate: "2026-02-01", ReturnDate: "2026-02-05"},   // already back
		{RequestID: "r-3", IssuedTo: "someone-else", IssueDate: "2026-02-01"},                    // not mine
		{RequestID: "r-4", IssuedTo: "u-1"},                                                      // never issued
	}
	v, _ = v.update(requestsLoadedMsg{requests: reqs})

	if len(v.list.visible) != 1 || v.list.visible[0].RequestID != "r-1" {
		t.Errorf("returnable rows = %+v, want only r-1", v.list.visible)
	}
}

func TestReturnViewPreselect(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleUser)
	v := newReturnView(deps)
	v.preselect("r-7")

	reqs := []model.Request{
		{RequestID: "r-5", IssuedTo: "u-1", IssueDate: "2026-02-01"},
		{RequestID: "r-7", IssuedTo: "u-1", IssueDate: "2026-02-02"},
	}
	v, _ = v.update(requestsLoadedMsg{requests: reqs})

	if got, _ := v.list.selected(); got.RequestID != "r-7" {
		t.Errorf("preselected row = %q, want r-7", got.RequestID)
	}
}

func TestRowBusyClearsOnBothOutcomes(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleAdmin)
	v := newOrdersView(deps)
	v.list.busy["r-1"] = true
	v.list.busy["r-2"] = true

	v, _ = v.update(rowActionDoneMsg{requestID: "r-1", action: "approve"})
	if v.list.busy["r-1"] {
		t.Error("busy flag survived a successful action")
	}

	v, _ = v.update(rowActionDoneMsg{requestID: "r-2", action: "reject", err: api.ErrNetwork})
	if v.list.busy["r-2"] {
		t.Error("busy flag survived a failed action")
	}
	if v.list.toast == nil || v.list.toast.Kind != components.ToastError {
		t.Error("failed action did not raise an error toast")
	}
}

func TestOrdersPatchSkipsBusyAndTerminalRows(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleAdmin)
	v := newOrdersView(deps)
	v.list.setData([]model.Request{
		{RequestID: "r-1", Status: model.StatusApproved},
	}, nil)

	// Non-pending rows are not re-patchable.
	v2, cmd := v.patch(model.StatusApproved, "approve")
	if cmd != nil {
		t.Error("patch issued a command for a non-pending row")
	}

	v2.list.setData([]model.Request{
		{RequestID: "r-2", Status: model.StatusPending},
	}, nil)
	v2.list.busy["r-2"] = true
	if _, cmd := v2.patch(model.StatusApproved, "approve"); cmd != nil {
		t.Error("patch issued a command for a busy row")
	}
}

func TestOrdersDeleteWorksInAnyState(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	deps := testDeps(t, srv.URL)
	signIn(t, deps, session.RoleAdmin)
	v := newOrdersView(deps)
	v.list.setData([]model.Request{
		{RequestID: "r-1", Status: model.StatusApproved,
			IssueDate: "2026-03-01", ReturnDate: "2026-03-09"},
	}, nil)

	v, cmd := v.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd == nil {
		t.Fatal("delete on a returned request produced no command")
	}
	if !v.list.busy["r-1"] {
		t.Error("delete did not mark the row busy")
	}
	msg := cmd().(rowActionDoneMsg)
	if msg.err != nil {
		t.Fatalf("delete err = %v", msg.err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/requests/r-1" {
		t.Errorf("server saw %s %s, want DELETE /requests/r-1", gotMethod, gotPath)
	}
}

func TestRequesterDeletesBeyondPending(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleUser)
	v := newRequestsView(deps)
	v.list.setData([]model.Request{
		{RequestID: "r-2", UserID: "u-1", Status: model.StatusApproved},
	}, nil)

	v, cmd := v.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd == nil {
		t.Fatal("delete on an approved own request produced no command")
	}
	if !v.list.busy["r-2"] {
		t.Error("delete did not mark the row busy")
	}
}

func TestOrdersFiltersCompose(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleAdmin)
	v := newOrdersView(deps)

	v, _ = v.update(requestsLoadedMsg{requests: []model.Request{
		{RequestID: "r-1", Requester: "Alice", RequestType: "Borrow", Status: model.StatusPending},
		{RequestID: "r-2", Requester: "Alice", RequestType: "Purchase", Status: model.StatusPending},
		{RequestID: "r-3", Requester: "Bob", RequestType: "Borrow", Status: model.StatusApproved},
	}})
	if len(v.list.visible) != 3 {
		t.Fatalf("visible = %d, want 3", len(v.list.visible))
	}

	// "/" opens the search input; typed runes narrow by requester.
	v, _ = v.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !v.editing() {
		t.Fatal("search key did not enter search mode")
	}
	v, _ = v.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("alice")})
	if len(v.list.visible) != 2 {
		t.Fatalf("after search visible = %+v, want r-1 and r-2", v.list.visible)
	}
	v, _ = v.update(tea.KeyMsg{Type: tea.KeyEnter})
	if v.editing() {
		t.Error("enter did not leave search mode")
	}

	// Type cycle ANDs with the search.
	v, _ = v.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if len(v.list.visible) != 1 || v.list.visible[0].RequestID != "r-1" {
		t.Errorf("search+type visible = %+v, want only r-1", v.list.visible)
	}

	// Status cycle ANDs with both.
	v.filter.Status = model.StatusApproved
	v.list.refilter(v.filter.Match)
	if len(v.list.visible) != 0 {
		t.Errorf("search+type+status visible = %+v, want none", v.list.visible)
	}
}

func TestOrdersNonPendingShowsNoActionsHint(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleAdmin)
	v := newOrdersView(deps)
	v.list.setData([]model.Request{
		{RequestID: "r-1", Status: model.StatusApproved, IssueDate: "2026-03-01"},
	}, nil)

	v, cmd := v.patch(model.StatusApproved, "approve")
	if cmd != nil {
		t.Error("patch issued a command for an issued row")
	}
	if !strings.Contains(v.view(), "No actions available") {
		t.Error("no-actions hint not rendered")
	}
}

func TestStaleRowActionRefetchesSilently(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleAdmin)
	v := newOrdersView(deps)
	v.list.busy["r-9"] = true

	v, cmd := v.update(rowActionDoneMsg{requestID: "r-9", action: "approve", stale: true})
	if v.list.toast != nil {
		t.Error("stale row raised a toast; it should refetch silently")
	}
	if cmd == nil {
		t.Error("stale row did not trigger a refetch")
	}
}

func TestInventoryStaleDeleteRefetches(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleAdmin)
	v := newInventoryView(deps)
	v.deleting["i-1"] = true

	v, cmd := v.update(itemDeletedMsg{itemID: "i-1", stale: true})
	if v.deleting["i-1"] {
		t.Error("deleting flag survived the stale result")
	}
	if v.toast != nil {
		t.Error("stale delete raised a toast")
	}
	if cmd == nil {
		t.Error("stale delete did not refetch")
	}
}

func TestInventoryFilterPipeline(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleUser)
	v := newInventoryView(deps)

	v, _ = v.update(inventoryLoadedMsg{items: []model.Item{
		{ID: "1", Name: "Dell Laptop", Category: "Computers", SKU: "DL-1", Quantity: 3},
		{ID: "2", Name: "Projector", Category: "AV", SKU: "PJ-1", Quantity: 0},
	}})
	if len(v.visible) != 2 {
		t.Fatalf("visible = %d, want 2", len(v.visible))
	}

	v.filter.Search = "laptop"
	v.refilter()
	if len(v.visible) != 1 || v.visible[0].ID != "1" {
		t.Errorf("search filter kept %+v", v.visible)
	}

	v.filter.Search = ""
	v.filter.Status = model.AvailabilityOutOfStock
	v.refilter()
	if len(v.visible) != 1 || v.visible[0].ID != "2" {
		t.Errorf("stock filter kept %+v", v.visible)
	}
}

func TestLoginFlowSavesSessionAndRoutesHome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"userId":  "u-42", "userName": "Ash", "role": "Admin",
		})
	}))
	defer srv.Close()

	deps := testDeps(t, srv.URL)
	app := NewApp(deps)
	app.login.email.SetValue("ash@example.com")
	app.login.password.SetValue("secret")

	v, cmd := app.login.submit()
	app.login = v
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	msg := cmd()
	done, ok := msg.(loginDoneMsg)
	if !ok {
		t.Fatalf("msg = %T", msg)
	}
	if done.err != nil {
		t.Fatalf("login err = %v", done.err)
	}

	sess, signedIn := deps.Sessions.Current()
	if !signedIn {
		t.Fatal("session not saved after login")
	}
	// Roles normalize to lowercase regardless of server casing.
	if sess.Role != session.RoleAdmin {
		t.Errorf("role = %q, want %q", sess.Role, session.RoleAdmin)
	}
	if homeRoute(sess) != RouteAdminDash {
		t.Error("admin did not land on the admin dashboard")
	}
}

func TestTabCyclesWithinRole(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleUser)
	app := NewApp(deps)
	app.route = RouteUserDash

	cmd, handled := app.handleGlobalKey(tea.KeyMsg{Type: tea.KeyTab})
	if !handled {
		t.Fatal("tab not handled")
	}
	_ = cmd
	if app.route != RouteInventory {
		t.Errorf("after tab route = %v, want RouteInventory", app.route)
	}
	for _, r := range []Route{app.route} {
		if adminOnly[r] {
			t.Errorf("user tab cycle reached admin route %v", r)
		}
	}
}

func TestScanNotMineStaysPut(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleUser)
	v := newScanView(deps)
	v.state = scanRunning

	v, cmd := v.update(scanDoneMsg{
		payload: "ASSET-1",
		result:  api.ScanResult{RequestID: "r-1", IssuedToUser: false},
	})
	if v.state != scanNotMine {
		t.Errorf("state = %v, want scanNotMine", v.state)
	}
	if cmd != nil {
		t.Error("non-matching scan navigated away")
	}
}

func TestScanMatchNavigatesToReturn(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleUser)
	v := newScanView(deps)
	v.state = scanRunning

	v, cmd := v.update(scanDoneMsg{
		payload: "ASSET-1",
		result:  api.ScanResult{RequestID: "r-1", IssuedToUser: true},
	})
	if v.state != scanMatched {
		t.Errorf("state = %v, want scanMatched", v.state)
	}
	if cmd == nil {
		t.Fatal("matching scan did not navigate")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok || nav.route != RouteReturn || nav.requestID != "r-1" {
		t.Errorf("navigation = %+v, want return view preselecting r-1", nav)
	}
}

func TestReportsExportRefusesEmptyDay(t *testing.T) {
	deps := testDeps(t, "http://127.0.0.1:0")
	signIn(t, deps, session.RoleAdmin)
	v := newReportsView(deps)
	v.day = timeNow().AddDate(0, 0, -30) // a day with no entries

	v, cmd := v.export()
	if cmd == nil {
		t.Fatal("export returned no command")
	}
	msg := cmd().(exportDoneMsg)
	v, _ = v.update(msg)
	if v.lastPath != "" {
		t.Error("empty day produced a file path")
	}
	if !strings.Contains(v.errText, "nothing exported") {
		t.Errorf("errText = %q", v.errText)
	}
}
