package app

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/scribe/pkg/post"
	"tableflip.dev/scribe/pkg/session"
)

// Backend is the slice of the API client the service needs. *api.Client
// satisfies it; tests use fakes.
type Backend interface {
	ListPosts(ctx context.Context) ([]post.Post, error)
	CreatePost(ctx context.Context, userID, title, content string) (*post.Post, error)
	UpdatePost(ctx context.Context, id, userID, title, content string) (*post.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// Identity is the session surface the service gates on.
type Identity interface {
	Status() session.Status
	UserID() string
}

// Service provides high-level post operations shared by the CLI runners and
// the TUI. It enforces the auth gate and draft validation so no caller can
// reach the network with an invalid request.
type Service struct {
	Backend Backend
	Session Identity
}

var ErrNoBackend = errors.New("app: no backend configured")

func (s *Service) guard() error {
	if s.Backend == nil {
		return ErrNoBackend
	}
	if s.Session == nil || s.Session.Status() != session.StatusAuthenticated {
		return session.ErrNotAuthenticated
	}
	return nil
}

// Posts fetches all posts for the current user.
func (s *Service) Posts(ctx context.Context) ([]post.Post, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.Backend.ListPosts(ctx)
}

// Submit validates the draft and either creates a new post or updates the one
// the draft is editing. The returned post is the server's version for creates;
// for updates it is the edited post patched in place with the new fields and a
// locally stamped update time.
func (s *Service) Submit(ctx context.Context, draft *post.Draft) (*post.Post, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := s.guard(); err != nil {
		return nil, err
	}

	if draft.Editing == nil {
		return s.Backend.CreatePost(ctx, s.Session.UserID(), draft.Title, draft.Content)
	}

	updated, err := s.Backend.UpdatePost(ctx, draft.Editing.ID, s.Session.UserID(), draft.Title, draft.Content)
	if err != nil {
		return nil, err
	}
	patched := *draft.Editing
	patched.Title = updated.Title
	patched.Content = updated.Content
	patched.UpdatedAt = time.Now()
	return &patched, nil
}

// Delete removes the post with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.Backend.DeletePost(ctx, id)
}
