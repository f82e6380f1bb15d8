package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/scribe/pkg/post"
	"tableflip.dev/scribe/pkg/session"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// ChangeType enumerates supported change actions across components.
type ChangeType string

const (
	// ChangeCreate indicates a new post was created.
	ChangeCreate ChangeType = "create"
	// ChangeUpdate indicates an existing post changed.
	ChangeUpdate ChangeType = "update"
	// ChangeDelete indicates a post was removed.
	ChangeDelete ChangeType = "delete"
)

// SessionResolvedMsg reports the outcome of the auth gate. It is emitted
// exactly once, when the session transitions out of the loading state.
type SessionResolvedMsg struct {
	Status session.Status
	UserID string
}

// Describe renders the resolution in a human-friendly format for logs.
func (m SessionResolvedMsg) Describe() string {
	return fmt.Sprintf(`status:%q user:%q`, m.Status, m.UserID)
}

// PostsLoadedMsg carries the result of a full post fetch.
type PostsLoadedMsg struct {
	Posts []post.Post
	Err   error
}

// PostSavedMsg carries the result of a create or update submission.
type PostSavedMsg struct {
	Action ChangeType
	Post   *post.Post
	Err    error
}

// Describe renders the save result for logs.
func (m PostSavedMsg) Describe() string {
	id := ""
	if m.Post != nil {
		id = m.Post.ID
	}
	return fmt.Sprintf(`action:%q id:%q err:%v`, m.Action, id, m.Err)
}

// PostDeletedMsg carries the result of a delete.
type PostDeletedMsg struct {
	ID  string
	Err error
}

// FormSubmitMsg is emitted when the user submits the post form.
type FormSubmitMsg struct {
	Component ComponentID
	Title     string
	Content   string
}

// FormCancelMsg is emitted when the user dismisses the post form.
type FormCancelMsg struct {
	Component ComponentID
}

// FormSubmitCmd wraps FormSubmitMsg into a tea.Cmd for callers that want to
// emit the event as part of an Update result.
func FormSubmitCmd(component ComponentID, title, content string) tea.Cmd {
	return func() tea.Msg {
		return FormSubmitMsg{Component: component, Title: title, Content: content}
	}
}

// FormCancelCmd wraps FormCancelMsg into a tea.Cmd.
func FormCancelCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FormCancelMsg{Component: component}
	}
}
