// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/session"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// =============================================================================
// SIGN IN
// =============================================================================

type loginView struct {
	deps *Deps

	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errText  string
}

func newLoginView(deps *Deps) loginView {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginView{deps: deps, email: email, password: password}
}

func (v loginView) update(msg tea.Msg) (loginView, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		v.busy = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			return v, nil
		}
		v.errText = ""
		v.password.SetValue("")
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "down":
			v.focus = (v.focus + 1) % 2
			v.syncFocus()
			return v, nil
		case "shift+tab", "up":
			v.focus = (v.focus + 1) % 2
			v.syncFocus()
			return v, nil
		case "enter":
			return v.submit()
		case "ctrl+r":
			return v, Navigate(RouteRegister)
		}
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v *loginView) syncFocus() {
	if v.focus == 0 {
		v.email.Focus()
		v.password.Blur()
	} else {
		v.email.Blur()
		v.password.Focus()
	}
}

func (v loginView) submit() (loginView, tea.Cmd) {
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()
	if email == "" || password == "" {
		v.errText = "Email and password are required."
		return v, nil
	}

	v.busy = true
	v.errText = ""
	deps := v.deps
	return v, func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		result, err := deps.Client.Login(ctx, api.Credentials{Email: email, Password: password})
		if err != nil {
			deps.Sink.Errorf("login failed: %v", err)
			return loginDoneMsg{err: err}
		}
		if err := deps.Sessions.Save(session.Session{
			UserID:   result.UserID,
			UserName: result.UserName,
			Role:     result.Role,
		}); err != nil {
			return loginDoneMsg{err: err}
		}
		deps.Sink.Event("User logged in: " + result.UserName)
		return loginDoneMsg{result: result}
	}
}

func (v loginView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.HeaderTitle.Render("Sign in to assettrack"))
	b.WriteString("\n\n")
	b.WriteString(renderField(theme, "Email", v.email, v.focus == 0))
	b.WriteString("\n")
	b.WriteString(renderField(theme, "Password", v.password, v.focus == 1))
	b.WriteString("\n\n")
	if v.busy {
		b.WriteString(theme.LoadingText.Render("Signing in..."))
	} else {
		b.WriteString(theme.ShortcutKey.Render("enter") + theme.ShortcutDesc.Render(" sign in  "))
		b.WriteString(theme.ShortcutKey.Render("ctrl+r") + theme.ShortcutDesc.Render(" register"))
	}
	if v.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.RenderError(v.errText))
	}
	return theme.Container.Render(b.String())
}

func renderField(theme *styles.Theme, label string, input textinput.Model, focused bool) string {
	box := theme.FormInput
	if focused {
		box = theme.FormInputFocus
	}
	return theme.FormLabel.Render(label) + " " + box.Render(input.View())
}

// =============================================================================
// REGISTER
// =============================================================================

type registerView struct {
	deps *Deps

	inputs  []textinput.Model
	asAdmin bool
	focus   int
	busy    bool
	errText string
	done    bool
}

const (
	regName = iota
	regEmail
	regPassword
	regFieldCount
)

func newRegisterView(deps *Deps) registerView {
	inputs := make([]textinput.Model, regFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 120
	}
	inputs[regName].Placeholder = "full name"
	inputs[regEmail].Placeholder = "email"
	inputs[regPassword].Placeholder = "password"
	inputs[regPassword].EchoMode = textinput.EchoPassword
	inputs[regPassword].EchoCharacter = '*'
	inputs[regName].Focus()

	return registerView{deps: deps, inputs: inputs}
}

func (v registerView) update(msg tea.Msg) (registerView, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		v.busy = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			return v, nil
		}
		v.done = true
		v.errText = ""
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "down":
			v.focus = (v.focus + 1) % regFieldCount
			v.syncFocus()
			return v, nil
		case "shift+tab", "up":
			v.focus = (v.focus + regFieldCount - 1) % regFieldCount
			v.syncFocus()
			return v, nil
		case "ctrl+a":
			v.asAdmin = !v.asAdmin
			return v, nil
		case "enter":
			if v.done {
				return v, Navigate(RouteLogin)
			}
			return v.submit()
		case "esc":
			return v, Navigate(RouteLogin)
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *registerView) syncFocus() {
	for i := range v.inputs {
		if i == v.focus {
			v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
}

func (v registerView) submit() (registerView, tea.Cmd) {
	payload := api.RegisterPayload{
		Name:     strings.TrimSpace(v.inputs[regName].Value()),
		Email:    strings.TrimSpace(v.inputs[regEmail].Value()),
		Password: v.inputs[regPassword].Value(),
		Role:     session.RoleUser,
	}
	if v.asAdmin {
		payload.Role = session.RoleAdmin
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		v.errText = "All fields are required."
		return v, nil
	}

	v.busy = true
	v.errText = ""
	deps := v.deps
	return v, func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		err := deps.Client.Register(ctx, payload)
		if err != nil {
			deps.Sink.Errorf("registration failed: %v", err)
		} else {
			deps.Sink.Event("Account registered: " + payload.Email)
		}
		return registerDoneMsg{err: err}
	}
}

func (v registerView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.HeaderTitle.Render("Create an account"))
	b.WriteString("\n\n")
	labels := []string{"Name", "Email", "Password"}
	for i, input := range v.inputs {
		b.WriteString(renderField(theme, labels[i], input, v.focus == i))
		b.WriteString("\n")
	}
	role := "user"
	if v.asAdmin {
		role = "admin"
	}
	b.WriteString("\n" + theme.FormLabel.Render("Role") + " " + theme.BadgeNeutral.Render(role))
	b.WriteString("\n\n")
	switch {
	case v.busy:
		b.WriteString(theme.LoadingText.Render("Creating account..."))
	case v.done:
		b.WriteString(styles.RenderSuccess("Account created. Press enter to sign in."))
	default:
		b.WriteString(theme.ShortcutKey.Render("enter") + theme.ShortcutDesc.Render(" create  "))
		b.WriteString(theme.ShortcutKey.Render("ctrl+a") + theme.ShortcutDesc.Render(" toggle role  "))
		b.WriteString(theme.ShortcutKey.Render("esc") + theme.ShortcutDesc.Render(" back"))
	}
	if v.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.RenderError(v.errText))
	}
	return theme.Container.Render(b.String())
}
