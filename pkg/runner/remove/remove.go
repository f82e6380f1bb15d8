package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/scribe/pkg/app"
)

type Remove struct {
	ID string

	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	if n.ID == "" {
		return errors.New("no post id given")
	}

	if err := n.Service.Delete(ctx, n.ID); err != nil {
		return err
	}

	f := color.New(color.Faint)
	_, _ = f.Printf("deleted %s\n", n.ID)
	fmt.Println("")
	return nil
}
