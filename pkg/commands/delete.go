package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/scribe/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "delete a post",
		Aliases: []string{"rm"},
		Example: `
scribe delete 171dff69
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
			s := remove.Remove{
				ID:      args[0],
				Service: service,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
