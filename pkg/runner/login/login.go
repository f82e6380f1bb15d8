package login

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/scribe/pkg/session"
)

// Login stores a bearer token obtained from the auth provider. The provider
// itself is out of scope here; we only keep what we are handed.
type Login struct {
	Token string

	Session *session.Session
}

func (n *Login) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not login, no session store")
	}
	if n.Token == "" {
		return errors.New("no token given, pass one as the first argument or via SCRIBE_TOKEN")
	}

	if err := n.Session.SetToken(n.Token); err != nil {
		return err
	}

	g := color.New(color.FgGreen)
	_, _ = g.Printf("logged in as %s\n", n.Session.UserID())
	return nil
}
