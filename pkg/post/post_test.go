package post

import (
	"errors"
	"testing"
	"time"
)

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		want    error
	}{
		{"both set", "Hello", "World", nil},
		{"empty title", "", "World", ErrTitleRequired},
		{"whitespace title", "   ", "World", ErrTitleRequired},
		{"empty content", "Hello", "", ErrContentRequired},
		{"whitespace content", "Hello", "\n\t ", ErrContentRequired},
		{"both empty", "", "", ErrTitleRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Draft{Title: tt.title, Content: tt.content}
			if err := d.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDraftLoadAndReset(t *testing.T) {
	p := &Post{ID: "p1", Title: "Title", Content: "Body", CreatedAt: time.Now()}
	d := &Draft{}
	d.Load(p)
	if d.Title != "Title" || d.Content != "Body" {
		t.Fatalf("unexpected draft after Load: %+v", d)
	}
	if d.Editing != p {
		t.Fatalf("expected Editing to reference the loaded post")
	}
	d.Reset()
	if d.Title != "" || d.Content != "" || d.Editing != nil {
		t.Fatalf("expected empty draft after Reset, got %+v", d)
	}
}

func TestSummaryFirstLine(t *testing.T) {
	p := &Post{Content: "  first line here\nsecond line"}
	if got := p.Summary(80); got != "first line here" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestSummaryTruncates(t *testing.T) {
	p := &Post{Content: "a very long single line of content that keeps going"}
	got := p.Summary(10)
	if len([]rune(got)) > 10 {
		t.Fatalf("summary not truncated: %q", got)
	}
}
