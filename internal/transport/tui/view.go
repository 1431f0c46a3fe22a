package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/helpbot/internal/core"
	"github.com/sandevgo/helpbot/internal/service/ui"
	"github.com/sandevgo/helpbot/pkg/conv"
)

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.vp.View(),
		m.statusView(),
		m.input.View(),
	)

	if !m.showSidebar {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), main)
}

func (m Model) headerView() string {
	title := core.HelpBotName
	if conv, ok := m.active(); ok && conv.Title != "" {
		title = conv.Title
	}
	return ui.TitleStyle.Render(title)
}

func (m Model) statusView() string {
	if m.err != nil {
		return ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.sending {
		return m.spin.View() + ui.MutedStyle.Render(" Agent is typing…")
	}
	hints := "enter send · shift+enter newline · ctrl+n new · ctrl+f search · ctrl+b sidebar"
	return ui.MutedStyle.Render(hints)
}

func (m Model) sidebarView() string {
	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	convs := m.filtered()
	if len(convs) == 0 {
		b.WriteString(ui.MutedStyle.Render("No conversations match."))
	}
	for i, c := range convs {
		title := c.Title
		if title == "" {
			title = "New conversation"
		}
		line := title + "\n" + ui.DescStyle.Render(c.Preview)

		switch {
		case m.focus == focusSearch && i == m.selected:
			line = ui.SelectedStyle.Render(title) + "\n" + ui.DescStyle.Render(c.Preview)
		case c.ID == m.activeID:
			line = ui.UsageStyle.Render(title) + "\n" + ui.DescStyle.Render(c.Preview)
		}
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	return ui.SidebarStyle.Width(sidebarWidth - 2).Height(m.height - 1).Render(b.String())
}

func (m Model) renderTranscript(c core.Conversation) string {
	width := m.viewportWidth() - 2
	wrap := lipgloss.NewStyle().Width(width)

	var parts []string
	for _, msg := range c.Messages {
		parts = append(parts, m.renderMessage(msg, wrap))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderMessage(msg core.Message, wrap lipgloss.Style) string {
	var b strings.Builder

	stamp := ui.MutedStyle.Render(msg.CreatedAt.Local().Format("15:04"))
	if msg.Role == core.RoleUser {
		b.WriteString(ui.UserLabelStyle.Render("You") + " " + stamp + "\n")
		b.WriteString(wrap.Render(msg.Content))
		return b.String()
	}

	b.WriteString(ui.AgentLabelStyle.Render("Agent") + " " + stamp + "\n")
	b.WriteString(wrap.Render(conv.MarkdownToText([]byte(msg.Content))))

	if msg.Confidence != nil {
		b.WriteString("\n" + ui.MutedStyle.Render(formatConfidence(*msg.Confidence)))
	}

	if len(msg.Sources) > 0 {
		b.WriteString("\n" + ui.MutedStyle.Render("Sources:"))
		for _, src := range msg.Sources {
			b.WriteString("\n  • " + renderSource(src))
		}
	}

	if len(msg.FollowUps) > 0 {
		var chips []string
		for i, q := range msg.FollowUps {
			chips = append(chips, ui.ChipStyle.Render(fmt.Sprintf("alt+%d %s", i+1, q)))
		}
		b.WriteString("\n" + lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	}

	return b.String()
}

func formatConfidence(c float64) string {
	return fmt.Sprintf("%.0f%% confident", c*100)
}

// renderSource shows a citation as plain text, or as an underlined link when
// it carries a URL.
func renderSource(src core.Source) string {
	if src.URL == "" {
		return src.Title
	}
	if src.Title == "" || src.Title == src.URL {
		return ui.LinkStyle.Render(src.URL)
	}
	return src.Title + " " + ui.LinkStyle.Render(src.URL)
}
