// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/model"
	"github.com/jeranaias/assettrack-tui/internal/ui/components"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// =============================================================================
// INVENTORY
// =============================================================================

type inventoryMode int

const (
	invList inventoryMode = iota
	invDetail
	invForm
	invSearch
)

type inventoryView struct {
	deps *Deps

	items   []model.Item
	visible []model.Item
	filter  model.ItemFilter
	cursor  int

	mode    inventoryMode
	loading bool
	errText string
	toast   *components.Toast

	search textinput.Model

	// form state
	form     []textinput.Model
	formIdx  int
	editID   string // empty for a new item
	formErr  string
	saving   bool
	deleting map[string]bool
}

const (
	fName = iota
	fCategory
	fSKU
	fQuantity
	fPrice
	fImageURL
	fCount
)

func newInventoryView(deps *Deps) inventoryView {
	search := textinput.New()
	search.Placeholder = "search name or SKU"
	search.CharLimit = 80

	form := make([]textinput.Model, fCount)
	for i := range form {
		form[i] = textinput.New()
		form[i].CharLimit = 120
	}
	form[fName].Placeholder = "name"
	form[fCategory].Placeholder = "category"
	form[fSKU].Placeholder = "sku"
	form[fQuantity].Placeholder = "quantity"
	form[fPrice].Placeholder = "unit price"
	form[fImageURL].Placeholder = "image url (optional)"

	return inventoryView{
		deps:     deps,
		search:   search,
		form:     form,
		deleting: make(map[string]bool),
	}
}

func (v inventoryView) editing() bool {
	return v.mode == invForm || v.mode == invSearch
}

func (v *inventoryView) load() tea.Cmd {
	v.loading = true
	v.errText = ""
	deps := v.deps
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		items, err := deps.Client.ListInventory(ctx)
		return inventoryLoadedMsg{items: items, err: err}
	}
}

func (v *inventoryView) refilter() {
	v.visible = v.filter.Apply(v.items)
	if v.cursor >= len(v.visible) {
		v.cursor = len(v.visible) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v inventoryView) update(msg tea.Msg) (inventoryView, tea.Cmd) {
	switch msg := msg.(type) {
	case inventoryLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			v.deps.Sink.Errorf("inventory fetch: %v", msg.err)
			return v, nil
		}
		v.items = msg.items
		v.errText = ""
		v.refilter()
		return v, nil

	case itemSavedMsg:
		v.saving = false
		if msg.err != nil {
			v.formErr = api.UserMessage(msg.err)
			return v, nil
		}
		v.mode = invList
		v.formErr = ""
		toast := components.NewToast(components.ToastSuccess, "Item saved")
		v.toast = &toast
		v.deps.Sink.Event("Inventory item saved")
		return v, tea.Batch(v.load(), toast.ExpireCmd())

	case itemDeletedMsg:
		delete(v.deleting, msg.itemID)
		switch {
		case msg.stale:
			// Already gone on the server: just refresh, no error shown.
			return v, v.load()
		case msg.err != nil:
			toast := components.NewToast(components.ToastError, api.UserMessage(msg.err))
			v.toast = &toast
			return v, toast.ExpireCmd()
		default:
			toast := components.NewToast(components.ToastSuccess, "Item deleted")
			v.toast = &toast
			v.deps.Sink.Event("Inventory item deleted")
			return v, tea.Batch(v.load(), toast.ExpireCmd())
		}

	case requestCreatedMsg:
		if msg.err != nil {
			toast := components.NewToast(components.ToastError, api.UserMessage(msg.err))
			v.toast = &toast
			return v, toast.ExpireCmd()
		}
		toast := components.NewToast(components.ToastSuccess, "Request submitted")
		v.toast = &toast
		v.deps.Sink.Event("Asset request submitted")
		return v, toast.ExpireCmd()

	case components.ToastExpiredMsg:
		if v.toast != nil && v.toast.Expired(timeNow()) {
			v.toast = nil
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v inventoryView) handleKey(msg tea.KeyMsg) (inventoryView, tea.Cmd) {
	switch v.mode {
	case invSearch:
		switch msg.String() {
		case "enter", "esc":
			v.mode = invList
			v.search.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		v.filter.Search = v.search.Value()
		v.refilter()
		return v, cmd

	case invForm:
		return v.handleFormKey(msg)

	case invDetail:
		switch msg.String() {
		case "esc", "q":
			v.mode = invList
			return v, nil
		case "h":
			if item, ok := v.selected(); ok {
				return v, func() tea.Msg {
					return navigateMsg{route: RouteAssetHistory, requestID: item.ID}
				}
			}
		}
		return v, nil
	}

	// list mode
	sess, _ := v.deps.Sessions.Current()
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.visible)-1 {
			v.cursor++
		}
	case "/":
		v.mode = invSearch
		v.search.Focus()
	case "c":
		v.filter.Category = nextCategory(v.items, v.filter.Category)
		v.refilter()
	case "s":
		v.filter.Status = nextAvailability(v.filter.Status)
		v.refilter()
	case "r":
		return v, v.load()
	case "enter":
		if len(v.visible) > 0 {
			v.mode = invDetail
		}
	case "n":
		if sess.IsAdmin() {
			v.openForm(nil)
		}
	case "e":
		if sess.IsAdmin() {
			if item, ok := v.selected(); ok {
				v.openForm(&item)
			}
		}
	case "d":
		if sess.IsAdmin() {
			if item, ok := v.selected(); ok && !v.deleting[item.ID] {
				return v, v.deleteItem(item.ID)
			}
		}
	case "q":
		if !sess.IsAdmin() {
			if item, ok := v.selected(); ok {
				return v, v.requestItem(item)
			}
		}
	}
	return v, nil
}

func (v *inventoryView) selected() (model.Item, bool) {
	if v.cursor < 0 || v.cursor >= len(v.visible) {
		return model.Item{}, false
	}
	return v.visible[v.cursor], true
}

func (v *inventoryView) openForm(item *model.Item) {
	for i := range v.form {
		v.form[i].SetValue("")
		v.form[i].Blur()
	}
	v.editID = ""
	if item != nil {
		v.editID = item.ID
		v.form[fName].SetValue(item.Name)
		v.form[fCategory].SetValue(item.Category)
		v.form[fSKU].SetValue(item.SKU)
		v.form[fQuantity].SetValue(strconv.Itoa(item.Quantity))
		v.form[fPrice].SetValue(strconv.FormatFloat(item.UnitPrice, 'f', 2, 64))
		v.form[fImageURL].SetValue(item.ImageURL)
	}
	v.formIdx = 0
	v.form[0].Focus()
	v.formErr = ""
	v.mode = invForm
}

func (v inventoryView) handleFormKey(msg tea.KeyMsg) (inventoryView, tea.Cmd) {
	if v.saving {
		return v, nil
	}
	switch msg.String() {
	case "esc":
		v.mode = invList
		return v, nil
	case "tab", "down":
		v.form[v.formIdx].Blur()
		v.formIdx = (v.formIdx + 1) % fCount
		v.form[v.formIdx].Focus()
		return v, nil
	case "shift+tab", "up":
		v.form[v.formIdx].Blur()
		v.formIdx = (v.formIdx + fCount - 1) % fCount
		v.form[v.formIdx].Focus()
		return v, nil
	case "enter":
		return v.submitForm()
	}
	var cmd tea.Cmd
	v.form[v.formIdx], cmd = v.form[v.formIdx].Update(msg)
	return v, cmd
}

func (v inventoryView) submitForm() (inventoryView, tea.Cmd) {
	qty, err := strconv.Atoi(strings.TrimSpace(v.form[fQuantity].Value()))
	if err != nil {
		v.formErr = "Quantity must be a whole number."
		return v, nil
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(v.form[fPrice].Value()), 64)
	if err != nil {
		v.formErr = "Unit price must be a number."
		return v, nil
	}

	item := model.NewItem{
		Name:      strings.TrimSpace(v.form[fName].Value()),
		Category:  strings.TrimSpace(v.form[fCategory].Value()),
		SKU:       strings.TrimSpace(v.form[fSKU].Value()),
		Quantity:  qty,
		UnitPrice: price,
		ImageURL:  strings.TrimSpace(v.form[fImageURL].Value()),
	}
	if err := item.Validate(); err != nil {
		v.formErr = api.UserMessage(err)
		return v, nil
	}

	v.saving = true
	v.formErr = ""
	deps := v.deps
	editID := v.editID
	return v, func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		var err error
		if editID == "" {
			err = deps.Client.CreateInventoryItem(ctx, item)
		} else {
			err = deps.Client.UpdateInventoryItem(ctx, editID, item)
		}
		return itemSavedMsg{err: err}
	}
}

func (v *inventoryView) deleteItem(id string) tea.Cmd {
	v.deleting[id] = true
	deps := v.deps
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		err := deps.Client.DeleteInventoryItem(ctx, id)
		if errors.Is(err, api.ErrStale) {
			return itemDeletedMsg{itemID: id, stale: true}
		}
		return itemDeletedMsg{itemID: id, err: err}
	}
}

// requestItem submits an asset request for the selected item.
func (v *inventoryView) requestItem(item model.Item) tea.Cmd {
	sess, ok := v.deps.Sessions.Current()
	if !ok {
		return nil
	}
	deps := v.deps
	req := model.MakeRequest(sess.UserID, item.ID, item.Name, timeNow())
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		return requestCreatedMsg{err: deps.Client.CreateRequest(ctx, req)}
	}
}

func (v inventoryView) status() components.Status {
	switch {
	case v.loading || v.saving || len(v.deleting) > 0:
		return components.StatusWorking
	case v.errText != "":
		return components.StatusError
	default:
		return components.StatusReady
	}
}

func (v inventoryView) view() string {
	theme := v.deps.Theme
	switch v.mode {
	case invForm:
		return v.viewForm()
	case invDetail:
		return v.viewDetail()
	}

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteInventory))
	b.WriteString("\n\n")

	filterLine := theme.ShortcutDesc.Render("category: ") + theme.BadgeNeutral.Render(orAll(v.filter.Category)) +
		theme.ShortcutDesc.Render("  status: ") + theme.BadgeNeutral.Render(orAll(string(v.filter.Status)))
	if v.mode == invSearch || v.filter.Search != "" {
		filterLine += theme.ShortcutDesc.Render("  search: ") + v.search.View()
	}
	b.WriteString(filterLine)
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.items) == 0:
		b.WriteString(theme.LoadingText.Render("Loading inventory..."))
	case v.errText != "":
		b.WriteString(theme.ErrorTitle.Render("Could not load inventory"))
		b.WriteString("\n")
		b.WriteString(theme.ErrorMessage.Render(v.errText))
	default:
		tbl := components.Table{
			Columns: []components.Column{
				{Title: "Name", Width: 24, Flex: true},
				{Title: "Category", Width: 14},
				{Title: "SKU", Width: 12},
				{Title: "Qty", Width: 5},
				{Title: "Price", Width: 10},
				{Title: "Status", Width: 12},
			},
			Cursor: v.cursor,
			Width:  theme.Width,
			Empty:  "No items match the current filters.",
		}
		for _, item := range v.visible {
			avail := string(item.StockAvailability())
			tbl.Rows = append(tbl.Rows, []string{
				item.Name,
				item.CategoryOrDefault(),
				item.SKU,
				strconv.Itoa(item.Quantity),
				fmt.Sprintf("$%.2f", item.UnitPrice),
				avail,
			})
		}
		b.WriteString(tbl.Render(theme))
	}

	b.WriteString("\n\n")
	b.WriteString(v.keyHints())
	if v.toast != nil {
		b.WriteString("\n")
		b.WriteString(v.toast.Render(theme))
	}
	return theme.Container.Render(b.String())
}

func (v inventoryView) keyHints() string {
	theme := v.deps.Theme
	sess, _ := v.deps.Sessions.Current()
	hints := []components.Shortcut{
		{Key: "/", Desc: "search"}, {Key: "c", Desc: "category"},
		{Key: "s", Desc: "stock"}, {Key: "enter", Desc: "detail"},
	}
	if sess.IsAdmin() {
		hints = append(hints,
			components.Shortcut{Key: "n", Desc: "new"},
			components.Shortcut{Key: "e", Desc: "edit"},
			components.Shortcut{Key: "d", Desc: "delete"})
	} else {
		hints = append(hints, components.Shortcut{Key: "q", Desc: "request"})
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, theme.ShortcutKey.Render(h.Key)+" "+theme.ShortcutDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

func (v inventoryView) viewDetail() string {
	theme := v.deps.Theme
	item, ok := v.selected()
	if !ok {
		return theme.Container.Render(theme.TableEmpty.Render("Nothing selected."))
	}

	var b strings.Builder
	b.WriteString(theme.HeaderTitle.Render(item.Name))
	b.WriteString("\n\n")
	rows := [][2]string{
		{"Category", item.CategoryOrDefault()},
		{"SKU", item.SKU},
		{"Quantity", strconv.Itoa(item.Quantity)},
		{"Unit price", fmt.Sprintf("$%.2f", item.UnitPrice)},
		{"Status", string(item.StockAvailability())},
	}
	if item.ImageURL != "" {
		rows = append(rows, [2]string{"Image", item.ImageURL})
	}
	for _, row := range rows {
		b.WriteString(theme.FormLabel.Render(row[0]) + " " + theme.TableRow.Render(row[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.ShortcutKey.Render("h") + theme.ShortcutDesc.Render(" history  "))
	b.WriteString(theme.ShortcutKey.Render("esc") + theme.ShortcutDesc.Render(" back"))
	return theme.Container.Render(b.String())
}

func (v inventoryView) viewForm() string {
	theme := v.deps.Theme

	title := "New item"
	if v.editID != "" {
		title = "Edit item"
	}
	var b strings.Builder
	b.WriteString(theme.HeaderTitle.Render(title))
	b.WriteString("\n\n")
	labels := []string{"Name", "Category", "SKU", "Quantity", "Unit price", "Image URL"}
	for i, input := range v.form {
		b.WriteString(renderField(theme, labels[i], input, v.formIdx == i))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if v.saving {
		b.WriteString(theme.LoadingText.Render("Saving..."))
	} else {
		b.WriteString(theme.ShortcutKey.Render("enter") + theme.ShortcutDesc.Render(" save  "))
		b.WriteString(theme.ShortcutKey.Render("esc") + theme.ShortcutDesc.Render(" cancel"))
	}
	if v.formErr != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.RenderError(v.formErr))
	}
	return theme.Container.Render(b.String())
}

func orAll(s string) string {
	if s == "" {
		return "All"
	}
	return s
}

// nextCategory cycles through the categories present in the data.
func nextCategory(items []model.Item, current string) string {
	seen := map[string]bool{}
	var cats []string
	for _, item := range items {
		c := item.CategoryOrDefault()
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	if len(cats) == 0 {
		return ""
	}
	if current == "" {
		return cats[0]
	}
	for i, c := range cats {
		if c == current {
			if i == len(cats)-1 {
				return "" // back to All
			}
			return cats[i+1]
		}
	}
	return ""
}

func nextAvailability(current model.Availability) model.Availability {
	switch current {
	case "":
		return model.AvailabilityAvailable
	case model.AvailabilityAvailable:
		return model.AvailabilityOutOfStock
	default:
		return ""
	}
}
