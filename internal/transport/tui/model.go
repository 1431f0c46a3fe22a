package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/helpbot/internal/core"
	"github.com/sandevgo/helpbot/internal/service/chat"
)

const sidebarWidth = 32

type focusArea int

const (
	focusInput focusArea = iota
	focusSearch
)

// replyMsg is delivered when the agent call finishes, successfully or not.
// Receiving it is the only way the sending flag clears.
type replyMsg struct {
	conversationID string
	msg            core.Message
}

// Model is the single-threaded UI state: conversation list, active thread,
// composer input, search filter, and the typing flag. At most one agent call
// is in flight; the composer is disabled while it is pending.
type Model struct {
	ctx context.Context
	svc *chat.Service

	activeID string
	selected int // sidebar cursor within the filtered list

	input  textarea.Model
	search textinput.Model
	spin   spinner.Model
	vp     viewport.Model

	focus       focusArea
	sending     bool
	showSidebar bool
	ready       bool
	width       int
	height      int
	err         error
}

func NewModel(ctx context.Context, svc *chat.Service, showSidebar bool) Model {
	input := textarea.New()
	input.Placeholder = "Type your question…"
	input.CharLimit = core.InputRuneLimit
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()
	// Enter is reserved for submit; these insert a line break instead.
	input.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("shift+enter", "alt+enter", "ctrl+j"))

	search := textinput.New()
	search.Placeholder = "Search conversations…"
	search.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		svc:         svc,
		input:       input,
		search:      search,
		spin:        spin,
		showSidebar: showSidebar,
	}

	if convs := svc.Store().All(); len(convs) > 0 {
		m.activeID = convs[0].ID
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// active returns the current conversation; ok is false when the active ID has
// gone stale (e.g. filtered history replaced by import).
func (m Model) active() (core.Conversation, bool) {
	return m.svc.Store().Get(m.activeID)
}

// filtered is the sidebar view of the store under the current search string.
func (m Model) filtered() []core.Conversation {
	return m.svc.Store().List(m.search.Value())
}

func (m Model) viewportWidth() int {
	w := m.width
	if m.showSidebar {
		w -= sidebarWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	chrome := m.input.Height() + 4 // header, status line, input frame
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	if !m.ready {
		m.vp = viewport.New(m.viewportWidth(), h)
		m.ready = true
	} else {
		m.vp.Width = m.viewportWidth()
		m.vp.Height = h
	}
	m.input.SetWidth(m.viewportWidth() - 2)
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	conv, ok := m.active()
	if !ok {
		m.vp.SetContent("")
		return
	}
	m.vp.SetContent(m.renderTranscript(conv))
	m.vp.GotoBottom()
}

var _ tea.Model = Model{}
