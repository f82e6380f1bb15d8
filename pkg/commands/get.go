package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/scribe/pkg/commands/options"
	"tableflip.dev/scribe/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:     "get",
		Short:   "list posts",
		Aliases: []string{"list", "ls"},
		Example: `
scribe get
scribe get --since 1w
scribe get --show-ids
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := newService()
			if err != nil {
				return err
			}
			s := get.Get{
				ShowID:  io.ShowID,
				Since:   lo.Since,
				Service: service,
			}
			return s.Do(context.Background())
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddListArgs(cmd, lo)

	topLevel.AddCommand(cmd)
}
