package commands

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/scribe/pkg/commands/options"
	"tableflip.dev/scribe/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	po := &options.PostOptions{}

	cmd := &cobra.Command{
		Use:     "add [title]",
		Short:   "create a new post",
		Aliases: []string{"new", "create"},
		Example: `
scribe add "Release notes" --content "We shipped."
echo "We shipped." | scribe add "Release notes"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && po.Title == "" {
				po.Title = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if po.Content == "" {
				if data, err := readPipedStdin(); err == nil && data != "" {
					po.Content = data
				}
			}
			service, _, err := newService()
			if err != nil {
				return err
			}
			s := add.Add{
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

// readPipedStdin returns stdin contents when input is piped, else "".
func readPipedStdin() (string, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}
