package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/scribe/pkg/runner/login"
	"tableflip.dev/scribe/pkg/runner/logout"
	"tableflip.dev/scribe/pkg/runner/whoami"
)

func addLogin(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "login [token]",
		Short: "store the bearer token used for API calls",
		Long:  "Store a bearer token obtained from your auth provider. The token is kept on disk and attached to every API call until you log out.",
		Example: `
scribe login eyJhbGciOi...
SCRIBE_TOKEN=eyJhbGciOi... scribe login
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := os.Getenv("SCRIBE_TOKEN")
			if len(args) > 0 {
				token = args[0]
			}
			sess, err := newSession()
			if err != nil {
				return err
			}
			s := login.Login{
				Token:   token,
				Session: sess,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			s := logout.Logout{Session: sess}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "show the user id of the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			s := whoami.Whoami{Session: sess}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
