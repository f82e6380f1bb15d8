package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tableflip.dev/scribe/pkg/post"
	"tableflip.dev/scribe/pkg/session"
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
		ID:        fmt.Sprintf("p%d", f.counter),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}
	f.posts = append(f.posts, p)
	return &p, nil
}

func (f *fakeBackend) UpdatePost(ctx context.Context, id, userID, title, content string) (*post.Post, error) {
	f.updateCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].Title = title
			f.posts[i].Content = content
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, errors.New("post not found")
}

func (f *fakeBackend) DeletePost(ctx context.Context, id string) error {
	f.deleteCalls++
	if f.failWith != nil {
		return f.failWith
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return errors.New("post not found")
}

type fakeIdentity struct {
	status session.Status
	userID string
}

func (f *fakeIdentity) Status() session.Status { return f.status }
func (f *fakeIdentity) UserID() string         { return f.userID }

func authedService(backend *fakeBackend) *Service {
	return &Service{
		Backend: backend,
		Session: &fakeIdentity{status: session.StatusAuthenticated, userID: "u1"},
	}
}

func TestPostsRequiresAuth(t *testing.T) {
	backend := &fakeBackend{}
	s := &Service{Backend: backend, Session: &fakeIdentity{status: session.StatusUnauthenticated}}
	if _, err := s.Posts(context.Background()); !errors.Is(err, session.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if backend.listCalls != 0 {
		t.Fatalf("unauthenticated fetch must not hit the backend")
	}
}

func TestSubmitValidatesBeforeNetwork(t *testing.T) {
	backend := &fakeBackend{}
	s := authedService(backend)

	if _, err := s.Submit(context.Background(), &post.Draft{Title: "", Content: "body"}); !errors.Is(err, post.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := s.Submit(context.Background(), &post.Draft{Title: "t", Content: "  "}); !errors.Is(err, post.ErrContentRequired) {
		t.Fatalf("expected ErrContentRequired, got %v", err)
	}
	if backend.createCalls != 0 || backend.updateCalls != 0 {
		t.Fatalf("invalid draft must not reach the backend")
	}
}

func TestSubmitCreates(t *testing.T) {
	backend := &fakeBackend{}
	s := authedService(backend)

	p, err := s.Submit(context.Background(), &post.Draft{Title: "Hello", Content: "World"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if p.UserID != "u1" {
		t.Fatalf("expected post attributed to u1, got %q", p.UserID)
	}
	if backend.createCalls != 1 || backend.updateCalls != 0 {
		t.Fatalf("expected exactly one create, got create=%d update=%d", backend.createCalls, backend.updateCalls)
	}
}

func TestSubmitUpdatesAndStampsTime(t *testing.T) {
	existing := post.Post{ID: "p1", UserID: "u1", Title: "Old", Content: "Old body", CreatedAt: time.Now().Add(-time.Hour)}
	backend := &fakeBackend{posts: []post.Post{existing}}
	s := authedService(backend)

	before := time.Now()
	p, err := s.Submit(context.Background(), &post.Draft{Title: "New", Content: "New body", Editing: &existing})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if p.ID != "p1" || p.Title != "New" || p.Content != "New body" {
		t.Fatalf("unexpected patched post: %+v", p)
	}
	if !p.CreatedAt.Equal(existing.CreatedAt) {
		t.Fatalf("CreatedAt must be preserved on update")
	}
	if p.UpdatedAt.Before(before) {
		t.Fatalf("UpdatedAt should be stamped locally at submit time")
	}
	if backend.updateCalls != 1 || backend.createCalls != 0 {
		t.Fatalf("expected exactly one update, got create=%d update=%d", backend.createCalls, backend.updateCalls)
	}
}

func TestDeletePropagatesFailure(t *testing.T) {
	backend := &fakeBackend{
		posts:    []post.Post{{ID: "p1"}},
		failWith: errors.New("boom"),
	}
	s := authedService(backend)

	if err := s.Delete(context.Background(), "p1"); err == nil {
		t.Fatalf("expected delete failure")
	}
	if len(backend.posts) != 1 {
		t.Fatalf("failed delete must leave the list unchanged")
	}
}
