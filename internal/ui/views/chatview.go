// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/api"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
)

// =============================================================================
// ASSISTANT CHAT
// =============================================================================

// chatTurn is one exchange with the inventory assistant.
type chatTurn struct {
	question string
	answer   string
}

type chatView struct {
	deps *Deps

	input   textinput.Model
	turns   []chatTurn
	busy    bool
	errText string
}

func newChatView(deps *Deps) chatView {
	input := textinput.New()
	input.Placeholder = "ask about inventory or requests"
	input.CharLimit = 500
	input.Focus()
	return chatView{deps: deps, input: input}
}

func (v chatView) editing() bool { return true }

func (v chatView) update(msg tea.Msg) (chatView, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		v.busy = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			return v, nil
		}
		v.errText = ""
		if len(v.turns) > 0 {
			v.turns[len(v.turns)-1].answer = msg.reply
		}
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		if msg.String() == "enter" {
			question := strings.TrimSpace(v.input.Value())
			if question == "" {
				return v, nil
			}
			v.turns = append(v.turns, chatTurn{question: question})
			v.input.SetValue("")
			v.busy = true
			v.errText = ""
			deps := v.deps
			return v, func() tea.Msg {
				ctx, cancel := callCtx()
				defer cancel()
				reply, err := deps.Client.Chat(ctx, question)
				return chatReplyMsg{reply: reply, err: err}
			}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v chatView) view() string {
	theme := v.deps.Theme

	var b strings.Builder
	b.WriteString(renderNav(v.deps, RouteChat))
	b.WriteString("\n\n")

	// Last few turns only; this is a quick-answer box, not a transcript.
	start := 0
	if len(v.turns) > 5 {
		start = len(v.turns) - 5
	}
	for _, turn := range v.turns[start:] {
		b.WriteString(theme.ShortcutKey.Render("you ") + theme.TableRow.Render(turn.question))
		b.WriteString("\n")
		if turn.answer != "" {
			b.WriteString(theme.ShortcutDesc.Render(turn.answer))
		} else if v.busy {
			b.WriteString(theme.LoadingText.Render("..."))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(renderField(theme, "Ask", v.input, true))
	if v.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.RenderError(v.errText))
	}
	return theme.Container.Render(b.String())
}
