package get

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/scribe/pkg/app"
	"tableflip.dev/scribe/pkg/post"
	"tableflip.dev/scribe/pkg/printers"
	"tableflip.dev/scribe/pkg/timeutil"
)

type Get struct {
	ShowID bool
	Since  string

	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	posts, err := n.Service.Posts(ctx)
	if err != nil {
		return err
	}

	if n.Since != "" {
		window, _, err := timeutil.ParseWindow(n.Since)
		if err != nil {
			return fmt.Errorf("invalid --since window: %w", err)
		}
		posts = filterSince(posts, window)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.TitleWithCount("Posts", len(posts))
	pp.Posts(posts...)
	return nil
}

func filterSince(all []post.Post, window time.Duration) []post.Post {
	cutoff := time.Now().Add(-window)
	c := make([]post.Post, 0, len(all))
	for _, p := range all {
		if p.CreatedAt.After(cutoff) {
			c = append(c, p)
		}
	}
	return c
}
