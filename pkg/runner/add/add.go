package add

import (
	"context"
	"errors"

	"tableflip.dev/scribe/pkg/app"
	"tableflip.dev/scribe/pkg/post"
	"tableflip.dev/scribe/pkg/printers"
)

type Add struct {
	Title   string
	Content string

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	draft := post.Draft{Title: n.Title, Content: n.Content}
	p, err := n.Service.Submit(ctx, &draft)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Post(p)
	return nil
}
