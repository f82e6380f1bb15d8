package edit

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/scribe/pkg/app"
	"tableflip.dev/scribe/pkg/post"
	"tableflip.dev/scribe/pkg/printers"
)

type Edit struct {
	ID      string
	Title   string
	Content string

	Service *app.Service
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}

	posts, err := n.Service.Posts(ctx)
	if err != nil {
		return err
	}
	var target *post.Post
	for i := range posts {
		if posts[i].ID == n.ID {
			target = &posts[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no post with id %q", n.ID)
	}

	// Flags left unset keep the stored value.
	draft := post.Draft{Title: n.Title, Content: n.Content, Editing: target}
	if draft.Title == "" {
		draft.Title = target.Title
	}
	if draft.Content == "" {
		draft.Content = target.Content
	}

	p, err := n.Service.Submit(ctx, &draft)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Post(p)
	return nil
}
