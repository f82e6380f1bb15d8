package whoami

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/scribe/pkg/session"
)

type Whoami struct {
	Session *session.Session
}

func (n *Whoami) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("no session store")
	}

	switch n.Session.Status() {
	case session.StatusAuthenticated:
		g := color.New(color.FgGreen)
		_, _ = g.Printf("%s\n", n.Session.UserID())
	default:
		f := color.New(color.Faint)
		_, _ = f.Println("not logged in")
	}
	return nil
}
