package post

import (
	"errors"
	"strings"
	"time"
)

// Post is a single blog post as the API reports it. CreatedAt is assigned by
// the server and never changes; UpdatedAt is patched locally after a
// successful edit, so it is an approximation until the next full fetch.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary returns the first line of the content, truncated for list views.
func (p *Post) Summary(width int) string {
	line := p.Content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if width > 3 && len(line) > width {
		return line[:width-1] + "…"
	}
	return line
}

var (
	ErrTitleRequired   = errors.New("post: title is required")
	ErrContentRequired = errors.New("post: content is required")
)

// Draft holds in-progress, unsaved form values. Editing points at the post
// being edited, or is nil when the draft will create a new post.
type Draft struct {
	Title   string
	Content string
	Editing *Post
}

// Validate reports the first missing required field. Whitespace-only values
// count as empty.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(d.Content) == "" {
		return ErrContentRequired
	}
	return nil
}

// Reset clears the draft fields and drops the edit target.
func (d *Draft) Reset() {
	d.Title = ""
	d.Content = ""
	d.Editing = nil
}

// Load fills the draft from an existing post for editing.
func (d *Draft) Load(p *Post) {
	d.Title = p.Title
	d.Content = p.Content
	d.Editing = p
}
