package postform

import (
	"fmt"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/scribe/pkg/post"
	"tableflip.dev/scribe/pkg/tui/events"
)

var (
	focusColor = lipgloss.Color("212")
	faintColor = lipgloss.Color("240")
)

type focusField int

const (
	fieldTitle focusField = iota
	fieldContent
)

// Options control initial state for the post form.
type Options struct {
	ID events.ComponentID
}

// Model renders the create/edit form: a title input and a content area.
// While busy (a save in flight) it swallows input so the submit control is
// effectively disabled; the in-flight request itself is never cancelled.
type Model struct {
	id      events.ComponentID
	focus   focusField
	busy    bool
	editing *post.Post

	title   textinput.Model
	content textarea.Model

	width int
}

// NewModel constructs the form.
func NewModel(opts Options) *Model {
	id := opts.ID
	if id == "" {
		id = events.ComponentID("postform")
	}

	title := textinput.New()
	title.Placeholder = "Post title…"
	title.Prompt = ""

	content := textarea.New()
	content.Placeholder = "Write something…"
	content.CharLimit = 0
	content.ShowLineNumbers = false
	content.SetWidth(72)
	content.SetHeight(8)

	return &Model{
		id:      id,
		focus:   fieldTitle,
		title:   title,
		content: content,
	}
}

// ID returns the component identifier used in emitted events.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.title.Focus()
}

// SetBusy toggles the in-flight state. Busy forms ignore keystrokes.
func (m *Model) SetBusy(busy bool) { m.busy = busy }

// Busy reports whether a save is in flight.
func (m *Model) Busy() bool { return m.busy }

// Editing returns the post being edited, or nil for a new post.
func (m *Model) Editing() *post.Post { return m.editing }

// Title returns the current draft title.
func (m *Model) Title() string { return m.title.Value() }

// Content returns the current draft content.
func (m *Model) Content() string { return m.content.Value() }

// LoadPost fills the form from an existing post for editing.
func (m *Model) LoadPost(p *post.Post) tea.Cmd {
	m.editing = p
	m.title.SetValue(p.Title)
	m.content.SetValue(p.Content)
	return m.focusField(fieldTitle)
}

// Clear resets the draft fields and drops the edit target.
func (m *Model) Clear() tea.Cmd {
	m.editing = nil
	m.title.SetValue("")
	m.content.SetValue("")
	return m.focusField(fieldTitle)
}

// SetSize configures the form width.
func (m *Model) SetSize(width int) {
	if width <= 0 {
		width = 80
	}
	m.width = width
	usable := width - 8
	if usable < 20 {
		usable = 20
	}
	m.title.SetWidth(usable)
	m.content.SetWidth(usable)
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.width == 0 {
			m.SetSize(msg.Width)
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	cmds = appendCmd(cmds, cmd)
	m.content, cmd = m.content.Update(msg)
	cmds = appendCmd(cmds, cmd)
	return m, batch(cmds)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.busy {
		return nil
	}

	switch msg.String() {
	case "tab", "shift+tab":
		next := fieldContent
		if m.focus == fieldContent {
			next = fieldTitle
		}
		return m.focusField(next)
	case "ctrl+s":
		return events.FormSubmitCmd(m.id, m.title.Value(), m.content.Value())
	case "enter":
		// Enter moves on from the single-line title; inside the content
		// area it inserts a newline.
		if m.focus == fieldTitle {
			return m.focusField(fieldContent)
		}
	case "esc":
		return events.FormCancelCmd(m.id)
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
	}
	return cmd
}

func (m *Model) focusField(f focusField) tea.Cmd {
	m.focus = f
	var cmds []tea.Cmd
	switch f {
	case fieldTitle:
		cmds = appendCmd(cmds, m.title.Focus())
		m.content.Blur()
	case fieldContent:
		m.title.Blur()
		cmds = appendCmd(cmds, m.content.Focus())
	}
	return batch(cmds)
}

// View renders the form.
func (m *Model) View() string {
	heading := "New Post"
	if m.editing != nil {
		heading = fmt.Sprintf("Edit Post %s", m.editing.ID)
	}
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(focusColor)

	hint := "tab: switch field • ctrl+s: save • esc: cancel"
	if m.busy {
		hint = "saving…"
	}
	hintStyle := lipgloss.NewStyle().Foreground(faintColor)

	body := lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render(heading),
		"",
		m.title.View(),
		"",
		m.content.View(),
		"",
		hintStyle.Render(hint),
	)

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusColor).
		Padding(1, 2)
	if m.busy {
		frame = frame.BorderForeground(faintColor)
	}
	return frame.Render(body)
}

func appendCmd(cmds []tea.Cmd, cmd tea.Cmd) []tea.Cmd {
	if cmd == nil {
		return cmds
	}
	return append(cmds, cmd)
}

func batch(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}
