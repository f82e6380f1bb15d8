package tuiapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/scribe/pkg/app"
	"tableflip.dev/scribe/pkg/post"
	"tableflip.dev/scribe/pkg/session"
	"tableflip.dev/scribe/pkg/tui/events"
)

type fakeBackend struct {
	posts   []post.Post
	counter int

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	failWith error
}

func (f *fakeBackend) ListPosts(ctx context.Context) ([]post.Post, error) {
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]post.Post, len(f.posts))
	copy(out, f.posts)
	return out, nil
}

func (f *fakeBackend) CreatePost(ctx context.Context, userID, title, content string) (*post.Post, error) {
	f.createCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.counter++
	p := post.Post{
		ID:        fmt.Sprintf("new%d", f.counter),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}
	return &p, nil
}

func (f *fakeBackend) UpdatePost(ctx context.Context, id, userID, title, content string) (*post.Post, error) {
	f.updateCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &post.Post{ID: id, UserID: userID, Title: title, Content: content}, nil
}

func (f *fakeBackend) DeletePost(ctx context.Context, id string) error {
	f.deleteCalls++
	return f.failWith
}

type fakeIdentity struct {
	status session.Status
	userID string
}

func (f *fakeIdentity) Status() session.Status { return f.status }
func (f *fakeIdentity) UserID() string         { return f.userID }

func seedPosts() []post.Post {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return []post.Post{
		{ID: "p1", UserID: "u1", Title: "First", Content: "Alpha", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "p2", UserID: "u1", Title: "Second", Content: "Beta", CreatedAt: base.Add(time.Hour)},
		{ID: "p3", UserID: "u1", Title: "Third", Content: "Gamma", CreatedAt: base},
	}
}

func newAuthedModel(t *testing.T, backend *fakeBackend) *Model {
	t.Helper()
	m := New(&app.Service{
		Backend: backend,
		Session: &fakeIdentity{status: session.StatusAuthenticated, userID: "u1"},
	})
	m = drainCommands(t, m, m.Init())
	if backend.failWith == nil && m.status != session.StatusAuthenticated {
		t.Fatalf("expected authenticated model, got %v", m.status)
	}
	return m
}

func drainCommands(t *testing.T, m *Model, cmds ...tea.Cmd) *Model {
	t.Helper()
	queue := append([]tea.Cmd(nil), cmds...)
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatalf("command drain did not settle")
		}
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}
		msg := cmd()
		switch v := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, []tea.Cmd(v)...)
		case tea.QuitMsg:
			// end of program, nothing further to route
		default:
			next, nextCmd := m.Update(v)
			m = assertModel(t, next)
			if nextCmd != nil {
				queue = append(queue, nextCmd)
			}
		}
	}
	return m
}

func assertModel(t *testing.T, model tea.Model) *Model {
	t.Helper()
	m, ok := model.(*Model)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return m
}

func update(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = assertModel(t, next)
	return drainCommands(t, m, cmd)
}

func submit(t *testing.T, m *Model, title, content string) *Model {
	t.Helper()
	return update(t, m, events.FormSubmitMsg{Component: m.form.ID(), Title: title, Content: content})
}

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func postIDs(m *Model) []string {
	ids := make([]string, len(m.posts))
	for i, p := range m.posts {
		ids[i] = p.ID
	}
	return ids
}

func TestUnauthenticatedRedirectsWithoutFetching(t *testing.T) {
	backend := &fakeBackend{posts: seedPosts()}
	m := New(&app.Service{
		Backend: backend,
		Session: &fakeIdentity{status: session.StatusUnauthenticated},
	})
	m = drainCommands(t, m, m.Init())

	if !m.RedirectedToLogin() {
		t.Fatalf("expected redirect to login")
	}
	if backend.listCalls != 0 {
		t.Fatalf("unauthenticated session must not fetch posts")
	}
	view, _ := m.View()
	if view != "" {
		t.Fatalf("unauthenticated view must render nothing, got %q", view)
	}
}

func TestAuthenticatedFetchesExactlyOnce(t *testing.T) {
	backend := &fakeBackend{posts: seedPosts()}
	m := newAuthedModel(t, backend)

	if backend.listCalls != 1 {
		t.Fatalf("expected one fetch on auth, got %d", backend.listCalls)
	}
	if got := postIDs(m); len(got) != 3 {
		t.Fatalf("expected 3 posts loaded, got %v", got)
	}
	if m.loading {
		t.Fatalf("loading flag must clear after fetch")
	}

	// A repeated resolution must not trigger another fetch.
	m = update(t, m, events.SessionResolvedMsg{Status: session.StatusAuthenticated, UserID: "u1"})
	if backend.listCalls != 1 {
		t.Fatalf("expected fetch exactly once per transition, got %d", backend.listCalls)
	}
}

func TestFetchFailureSetsError(t *testing.T) {
	backend := &fakeBackend{failWith: errors.New("connection refused")}
	m := newAuthedModel(t, backend)

	if m.errorMsg == "" {
		t.Fatalf("expected error message after failed fetch")
	}
	if m.successMsg != "" {
		t.Fatalf("error and success must not coexist")
	}
	if m.loading {
		t.Fatalf("loading flag must clear even on failure")
	}
}

func TestSubmitEmptyDraftNeverHitsNetwork(t *testing.T) {
	for _, tt := range []struct{ name, title, content string }{
		{"empty title", "", "content"},
		{"empty content", "title", ""},
		{"whitespace only", "  ", "\n"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			m := newAuthedModel(t, backend)
			m = submit(t, m, tt.title, tt.content)

			if m.errorMsg == "" {
				t.Fatalf("expected validation error")
			}
			if backend.createCalls != 0 || backend.updateCalls != 0 {
				t.Fatalf("validation failure must not reach the network (create=%d update=%d)",
					backend.createCalls, backend.updateCalls)
			}
		})
	}
}

func TestCreatePrependsAndClearsDraft(t *testing.T) {
	backend := &fakeBackend{posts: seedPosts()}
	m := newAuthedModel(t, backend)

	m = submit(t, m, "Fresh", "Brand new body")

	if backend.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", backend.createCalls)
	}
	got := postIDs(m)
	if len(got) != 4 || got[0] != "new1" {
		t.Fatalf("expected new post prepended, got %v", got)
	}
	if m.posts[0].UserID != "u1" {
		t.Fatalf("created post must be attributed to the session user")
	}
	if m.form.Title() != "" || m.form.Content() != "" {
		t.Fatalf("draft must be cleared after create")
	}
	if m.successMsg == "" || m.errorMsg != "" {
		t.Fatalf("expected success only, got error=%q success=%q", m.errorMsg, m.successMsg)
	}
}

func TestUpdatePatchesInPlacePreservingOrder(t *testing.T) {
	backend := &fakeBackend{posts: seedPosts()}
	m := newAuthedModel(t, backend)

	// Edit the middle post.
	m.cursor = 1
	m = update(t, m, tea.KeyPressMsg{Code: 'e', Text: "e"})
	if !m.formVisible || m.form.Editing() == nil {
		t.Fatalf("expected edit form for the selected post")
	}

	before := time.Now()
	m = submit(t, m, "Second (edited)", "Beta v2")

	if backend.updateCalls != 1 || backend.createCalls != 0 {
		t.Fatalf("expected one update call, got update=%d create=%d", backend.updateCalls, backend.createCalls)
	}
	got := postIDs(m)
	want := []string{"p1", "p2", "p3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list order must be preserved, got %v", got)
		}
	}
	patched := m.posts[1]
	if patched.Title != "Second (edited)" || patched.Content != "Beta v2" {
		t.Fatalf("expected patched fields, got %+v", patched)
	}
	if !patched.CreatedAt.Equal(seedPosts()[1].CreatedAt) {
		t.Fatalf("CreatedAt must be immutable")
	}
	if patched.UpdatedAt.Before(before) {
		t.Fatalf("UpdatedAt must be stamped locally on edit")
	}
	if m.posts[0].Title != "First" || m.posts[2].Title != "Third" {
		t.Fatalf("only the matching post may change")
	}
	if m.updating {
		t.Fatalf("updating flag must clear after save")
	}
}

func TestDeleteRemovesExactlyMatching(t *testing.T) {
	backend := &fakeBackend{posts: seedPosts()}
	m := newAuthedModel(t, backend)

	m.cursor = 1
	m = update(t, m, tea.KeyPressMsg{Code: 'd', Text: "d"})

	if backend.deleteCalls != 1 {
		t.Fatalf("expected one delete call, got %d", backend.deleteCalls)
	}
	got := postIDs(m)
	want := []string{"p1", "p3"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v after delete, got %v", want, got)
	}
	if m.successMsg == "" {
		t.Fatalf("expected success message after delete")
	}
}

func TestFailedDeleteLeavesListUnchanged(t *testing.T) {
	backend := &fakeBackend{posts: seedPosts()}
	m := newAuthedModel(t, backend)

	backend.failWith = errors.New("forbidden")
	m.cursor = 0
	m = update(t, m, tea.KeyPressMsg{Code: 'd', Text: "d"})

	if len(m.posts) != 3 {
		t.Fatalf("failed delete must leave the list unchanged, got %v", postIDs(m))
	}
	if m.errorMsg == "" || m.successMsg != "" {
		t.Fatalf("expected error only, got error=%q success=%q", m.errorMsg, m.successMsg)
	}
}

func TestMessagesAreMutuallyExclusive(t *testing.T) {
	backend := &fakeBackend{posts: seedPosts()}
	m := newAuthedModel(t, backend)

	// A success...
	m = submit(t, m, "Ok", "Fine")
	if m.successMsg == "" || m.errorMsg != "" {
		t.Fatalf("expected success only")
	}

	// ...followed by a failing action must flip to error only.
	backend.failWith = errors.New("boom")
	m.cursor = 0
	m = update(t, m, tea.KeyPressMsg{Code: 'd', Text: "d"})
	if m.errorMsg == "" || m.successMsg != "" {
		t.Fatalf("expected error only after failure, got error=%q success=%q", m.errorMsg, m.successMsg)
	}

	// ...and a following success clears the error again.
	backend.failWith = nil
	m = submit(t, m, "Again", "Recovered")
	if m.successMsg == "" || m.errorMsg != "" {
		t.Fatalf("expected success only after recovery")
	}
}

func TestCancelEditClearsDraftAndMessages(t *testing.T) {
	backend := &fakeBackend{posts: seedPosts()}
	m := newAuthedModel(t, backend)

	m.cursor = 0
	m = update(t, m, tea.KeyPressMsg{Code: 'e', Text: "e"})
	m = update(t, m, events.FormCancelMsg{Component: m.form.ID()})

	if m.formVisible {
		t.Fatalf("expected form hidden after cancel")
	}
	if m.form.Editing() != nil || m.form.Title() != "" {
		t.Fatalf("expected cleared edit state after cancel")
	}
	if m.errorMsg != "" || m.successMsg != "" {
		t.Fatalf("expected cleared messages after cancel")
	}
}

func TestViewListsPosts(t *testing.T) {
	backend := &fakeBackend{posts: seedPosts()}
	m := newAuthedModel(t, backend)

	view, _ := m.View()
	plain := stripANSIString(view)
	for _, title := range []string{"First", "Second", "Third"} {
		if !strings.Contains(plain, title) {
			t.Fatalf("expected %q in view:\n%s", title, plain)
		}
	}
}
