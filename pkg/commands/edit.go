package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/scribe/pkg/commands/options"
	"tableflip.dev/scribe/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	po := &options.PostOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "update an existing post",
		Example: `
scribe edit 171dff69 --title "Better title"
scribe edit 171dff69 --content "Rewritten body."
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("exactly one post id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := newService()
			if err != nil {
				return err
			}
			s := edit.Edit{
				ID:      args[0],
				Title:   po.Title,
				Content: po.Content,
				Service: service,
			}
			return s.Do(context.Background())
		},
	}

	options.AddPostArgs(cmd, po)

	topLevel.AddCommand(cmd)
}
