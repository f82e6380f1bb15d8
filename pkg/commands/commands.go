package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/scribe/pkg/api"
	"tableflip.dev/scribe/pkg/app"
	"tableflip.dev/scribe/pkg/session"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "scribe",
		Short: base.Wrap80("Write, edit, and publish blog posts from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addGet(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addLogin(topLevel)
	addLogout(topLevel)
	addWhoami(topLevel)
	addVersion(topLevel)
}

// newService wires config, session cache, and API client together. Every
// command goes through here so they all share the same auth gate.
func newService() (*app.Service, *session.Session, error) {
	cfg, err := session.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	sess, err := session.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	client, err := api.New(cfg.APIURL(), sess)
	if err != nil {
		return nil, nil, err
	}
	return &app.Service{Backend: client, Session: sess}, sess, nil
}

func newSession() (*session.Session, error) {
	cfg, err := session.LoadConfig()
	if err != nil {
		return nil, err
	}
	return session.Load(cfg)
}
