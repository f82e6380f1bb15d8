package tuiapp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/scribe/pkg/app"
	"tableflip.dev/scribe/pkg/post"
	"tableflip.dev/scribe/pkg/session"
	"tableflip.dev/scribe/pkg/tui/components/postform"
	"tableflip.dev/scribe/pkg/tui/events"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// Model is the root TUI surface: a post list, the create/edit form, and a
// status line. All posts and draft state are owned here; backend calls run as
// commands so only the initiating action is suspended.
type Model struct {
	service *app.Service

	status  session.Status
	userID  string
	fetched bool

	posts  []post.Post
	cursor int

	form        *postform.Model
	formVisible bool

	loading  bool // fetch, create, delete
	updating bool // update of the post being edited

	errorMsg   string
	successMsg string

	redirect bool

	spinner spinner.Model

	logger *log.Logger

	width  int
	height int
}

// New constructs the root model around the shared service.
func New(service *app.Service) *Model {
	m := &Model{
		service: service,
		status:  session.StatusLoading,
		form:    postform.NewModel(postform.Options{ID: "postform"}),
		spinner: spinner.New(),
	}
	if path := os.Getenv("SCRIBE_DEBUG"); path != "" {
		if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			m.logger = log.New(f, "scribe ", log.LstdFlags)
		}
	}
	return m
}

// Run launches the Bubble Tea program.
func Run(service *app.Service) (bool, error) {
	m := New(service)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(*Model); ok {
		return fm.RedirectedToLogin(), nil
	}
	return false, nil
}

// RedirectedToLogin reports that the UI exited because the session was
// unauthenticated; the caller should point the user at `scribe login`.
func (m *Model) RedirectedToLogin() bool { return m.redirect }

func (m *Model) logf(format string, args ...interface{}) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}

// Init implements tea.Model. The session gate starts in the loading state and
// resolves through a command like any other side effect.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), m.resolveSession)
}

func (m *Model) resolveSession() tea.Msg {
	ident := m.service.Session
	msg := events.SessionResolvedMsg{Status: session.StatusUnauthenticated}
	if ident != nil {
		msg.Status = ident.Status()
		msg.UserID = ident.UserID()
	}
	return msg
}

func (m *Model) fetchPosts() tea.Msg {
	posts, err := m.service.Posts(context.Background())
	return events.PostsLoadedMsg{Posts: posts, Err: err}
}

func (m *Model) submitDraft(draft post.Draft) tea.Cmd {
	action := events.ChangeCreate
	if draft.Editing != nil {
		action = events.ChangeUpdate
	}
	return func() tea.Msg {
		p, err := m.service.Submit(context.Background(), &draft)
		return events.PostSavedMsg{Action: action, Post: p, Err: err}
	}
}

func (m *Model) deletePost(id string) tea.Cmd {
	return func() tea.Msg {
		return events.PostDeletedMsg{ID: id, Err: m.service.Delete(context.Background(), id)}
	}
}

func (m *Model) busy() bool { return m.loading || m.updating }

func (m *Model) setError(msg string) {
	m.errorMsg = msg
	m.successMsg = ""
}

func (m *Model) setSuccess(msg string) {
	m.successMsg = msg
	m.errorMsg = ""
}

func (m *Model) clearMessages() {
	m.errorMsg = ""
	m.successMsg = ""
}

// Update routes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.form.SetSize(v.Width - 4)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		return m, cmd

	case events.SessionResolvedMsg:
		return m.onSessionResolved(v)

	case events.PostsLoadedMsg:
		return m.onPostsLoaded(v)

	case events.PostSavedMsg:
		return m.onPostSaved(v)

	case events.PostDeletedMsg:
		return m.onPostDeleted(v)

	case events.FormSubmitMsg:
		if v.Component == m.form.ID() {
			return m.onSubmit(v)
		}

	case events.FormCancelMsg:
		if v.Component == m.form.ID() {
			return m.cancelEdit()
		}

	case tea.KeyMsg:
		if v.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.formVisible {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(v)
			return m, cmd
		}
		return m.handleListKey(v)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m *Model) onSessionResolved(v events.SessionResolvedMsg) (tea.Model, tea.Cmd) {
	m.status = v.Status
	m.userID = v.UserID
	switch v.Status {
	case session.StatusAuthenticated:
		// Fetch exactly once per transition into the authenticated state.
		if m.fetched {
			return m, nil
		}
		m.fetched = true
		m.loading = true
		return m, tea.Batch(m.fetchPosts, m.spinner.Tick)
	case session.StatusUnauthenticated:
		m.redirect = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) onPostsLoaded(v events.PostsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if v.Err != nil {
		m.logf("fetch failed: %v", v.Err)
		m.setError(userMessage(v.Err))
		return m, nil
	}
	m.posts = v.Posts
	if m.cursor >= len(m.posts) {
		m.cursor = max(0, len(m.posts)-1)
	}
	return m, nil
}

func (m *Model) onSubmit(v events.FormSubmitMsg) (tea.Model, tea.Cmd) {
	m.clearMessages()

	draft := post.Draft{Title: v.Title, Content: v.Content, Editing: m.form.Editing()}
	if err := draft.Validate(); err != nil {
		// Validation failures never reach the network and keep the draft.
		switch {
		case errors.Is(err, post.ErrTitleRequired):
			m.setError("Title is required")
		case errors.Is(err, post.ErrContentRequired):
			m.setError("Content is required")
		default:
			m.setError(userMessage(err))
		}
		return m, nil
	}

	if draft.Editing != nil {
		m.updating = true
	} else {
		m.loading = true
	}
	m.form.SetBusy(true)
	return m, tea.Batch(m.submitDraft(draft), m.spinner.Tick)
}

func (m *Model) onPostSaved(v events.PostSavedMsg) (tea.Model, tea.Cmd) {
	// Success or failure, the draft and the busy flag are cleared.
	if v.Action == events.ChangeUpdate {
		m.updating = false
	} else {
		m.loading = false
	}
	m.form.SetBusy(false)
	clearCmd := m.form.Clear()
	m.formVisible = false

	if v.Err != nil {
		m.logf("%s failed: %v", v.Action, v.Err)
		m.setError(userMessage(v.Err))
		return m, clearCmd
	}

	switch v.Action {
	case events.ChangeCreate:
		m.posts = append([]post.Post{*v.Post}, m.posts...)
		m.cursor = 0
		m.setSuccess("Post created")
	case events.ChangeUpdate:
		for i := range m.posts {
			if m.posts[i].ID == v.Post.ID {
				m.posts[i] = *v.Post
				break
			}
		}
		m.setSuccess("Post updated")
	}
	return m, clearCmd
}

func (m *Model) onPostDeleted(v events.PostDeletedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if v.Err != nil {
		m.logf("delete failed: %v", v.Err)
		m.setError(userMessage(v.Err))
		return m, nil
	}
	for i := range m.posts {
		if m.posts[i].ID == v.ID {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			break
		}
	}
	if m.cursor >= len(m.posts) {
		m.cursor = max(0, len(m.posts)-1)
	}
	m.setSuccess("Post deleted")
	return m, nil
}

func (m *Model) handleListKey(v tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch v.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case "n":
		if m.busy() {
			return m, nil
		}
		m.clearMessages()
		clearCmd := m.form.Clear()
		m.formVisible = true
		return m, tea.Batch(clearCmd, m.form.Init())
	case "enter", "e":
		if m.busy() {
			return m, nil
		}
		return m.beginEdit()
	case "d", "x":
		if m.busy() || len(m.posts) == 0 {
			return m, nil
		}
		m.clearMessages()
		m.loading = true
		return m, tea.Batch(m.deletePost(m.posts[m.cursor].ID), m.spinner.Tick)
	case "r":
		if m.busy() {
			return m, nil
		}
		m.clearMessages()
		m.loading = true
		return m, tea.Batch(m.fetchPosts, m.spinner.Tick)
	}
	return m, nil
}

func (m *Model) beginEdit() (tea.Model, tea.Cmd) {
	if len(m.posts) == 0 {
		return m, nil
	}
	m.clearMessages()
	target := m.posts[m.cursor]
	loadCmd := m.form.LoadPost(&target)
	m.formVisible = true
	return m, tea.Batch(loadCmd, m.form.Init())
}

func (m *Model) cancelEdit() (tea.Model, tea.Cmd) {
	m.clearMessages()
	clearCmd := m.form.Clear()
	m.formVisible = false
	return m, clearCmd
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	switch m.status {
	case session.StatusLoading:
		return faintStyle.Render("resolving session…"), nil
	case session.StatusUnauthenticated:
		// Nothing to render; the program is on its way out.
		return "", nil
	}

	var sections []string
	sections = append(sections, titleStyle.Render("scribe"), "")

	if m.formVisible {
		sections = append(sections, m.form.View())
	} else {
		sections = append(sections, m.renderList())
	}

	sections = append(sections, "", m.renderStatus(), m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...), nil
}

func (m *Model) renderList() string {
	if m.loading && len(m.posts) == 0 {
		return faintStyle.Render("loading posts…")
	}
	if len(m.posts) == 0 {
		return faintStyle.Render("no posts yet, press n to write one")
	}
	lines := make([]string, 0, len(m.posts))
	for i, p := range m.posts {
		prefix := "  "
		line := p.Title
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
			line = titleStyle.Render(p.Title)
		}
		summary := faintStyle.Render(p.Summary(48))
		lines = append(lines, fmt.Sprintf("%s%s  %s", prefix, line, summary))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderStatus() string {
	switch {
	case m.busy():
		return faintStyle.Render(m.spinner.View() + " working…")
	case m.errorMsg != "":
		return errorStyle.Render(m.errorMsg)
	case m.successMsg != "":
		return successStyle.Render(m.successMsg)
	}
	return ""
}

func (m *Model) renderHelp() string {
	if m.formVisible {
		return ""
	}
	return faintStyle.Render("n: new • e: edit • d: delete • r: reload • q: quit")
}

func userMessage(err error) string {
	type userMessager interface{ UserMessage() string }
	if um, ok := err.(userMessager); ok {
		return um.UserMessage()
	}
	return err.Error()
}
