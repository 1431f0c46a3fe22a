package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/helpbot/internal/core"
	"github.com/sandevgo/helpbot/pkg/log"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case replyMsg:
		// idle again, whatever the outcome
		m.sending = false
		if msg.conversationID == m.activeID {
			m.refreshTranscript()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An error stays on the status line until the next keypress.
	m.err = nil

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+b":
		m.showSidebar = !m.showSidebar
		if !m.showSidebar && m.focus == focusSearch {
			m.setFocus(focusInput)
		}
		m.resize()
		return m, nil

	case "ctrl+n":
		conv, err := m.svc.Store().NewConversation(m.ctx)
		if err != nil {
			log.FromCtx(m.ctx).Error().Err(err).Msg("failed to open conversation")
			m.err = err
			return m, nil
		}
		m.activeID = conv.ID
		m.selected = 0
		m.setFocus(focusInput)
		m.refreshTranscript()
		return m, nil

	case "ctrl+f":
		if m.showSidebar {
			m.setFocus(focusSearch)
		}
		return m, nil

	case "esc":
		m.setFocus(focusInput)
		return m, nil
	}

	// alt+1..9 copies a follow-up suggestion into the composer.
	if followUp, ok := m.followUpForKey(msg.String()); ok {
		m.input.SetValue(followUp)
		m.setFocus(focusInput)
		m.input.CursorEnd()
		return m, nil
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	if msg.String() == "enter" {
		return m.submit()
	}

	return m.updateFocused(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	convs := m.filtered()

	switch msg.String() {
	case "up", "ctrl+k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "ctrl+j":
		if m.selected < len(convs)-1 {
			m.selected++
		}
		return m, nil
	case "enter":
		if m.selected >= 0 && m.selected < len(convs) {
			m.activeID = convs[m.selected].ID
			m.refreshTranscript()
		}
		m.setFocus(focusInput)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// The filter changed; keep the cursor inside the narrowed list.
	if n := len(m.filtered()); m.selected >= n {
		m.selected = 0
	}
	return m, cmd
}

// submit runs the first half of the request cycle: validate, append the user
// message, flip to sending, and dispatch the agent call.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.sending {
		// one call in flight at a time
		return m, nil
	}

	input := strings.TrimSpace(m.input.Value())
	if input == "" || m.activeID == "" {
		return m, nil
	}

	if _, err := m.svc.AppendUser(m.ctx, m.activeID, input); err != nil {
		log.FromCtx(m.ctx).Error().Err(err).Msg("failed to append user message")
		m.err = err
		return m, nil
	}

	m.input.Reset()
	m.sending = true
	m.refreshTranscript()

	return m, tea.Batch(m.spin.Tick, m.askCmd(m.activeID, input))
}

func (m Model) askCmd(conversationID, question string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		// Request always appends exactly one agent message, fallback included.
		msg := svc.Request(ctx, conversationID, question)
		return replyMsg{conversationID: conversationID, msg: msg}
	}
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusSearch {
		m.search, cmd = m.search.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusSearch {
		m.input.Blur()
		m.search.Focus()
	} else {
		m.search.Blur()
		m.input.Focus()
	}
}

// followUpForKey maps alt+N to the Nth follow-up of the newest agent message
// in the active conversation.
func (m Model) followUpForKey(keyName string) (string, bool) {
	if !strings.HasPrefix(keyName, "alt+") {
		return "", false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(keyName, "alt+"))
	if err != nil || n < 1 {
		return "", false
	}

	followUps := m.activeFollowUps()
	if n > len(followUps) {
		return "", false
	}
	return followUps[n-1], true
}

func (m Model) activeFollowUps() []string {
	conv, ok := m.active()
	if !ok {
		return nil
	}
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		if conv.Messages[i].Role == core.RoleAgent {
			return conv.Messages[i].FollowUps
		}
	}
	return nil
}
