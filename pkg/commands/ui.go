package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/scribe/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
scribe ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := newService()
			if err != nil {
				return err
			}
			i := ui.UI{Service: service}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
