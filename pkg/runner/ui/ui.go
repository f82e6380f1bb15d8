package ui

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/scribe/pkg/app"
	tuiapp "tableflip.dev/scribe/pkg/tui/app"
)

type UI struct {
	Service *app.Service
}

func (n *UI) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not open ui, no service")
	}

	redirected, err := tuiapp.Run(n.Service)
	if err != nil {
		return err
	}
	if redirected {
		fmt.Println("not logged in, run `scribe login <token>` first")
	}
	return nil
}
