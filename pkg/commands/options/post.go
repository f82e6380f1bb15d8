package options

import "github.com/spf13/cobra"

// PostOptions holds the draft flags shared by add and edit.
type PostOptions struct {
	Title   string
	Content string
}

func AddPostArgs(cmd *cobra.Command, po *PostOptions) {
	cmd.Flags().StringVarP(&po.Title, "title", "t", "", "Post title.")
	cmd.Flags().StringVarP(&po.Content, "content", "c", "", "Post content. Use \\n for newlines or pipe from stdin.")
}

// IDOptions toggles id columns in list output.
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, io *IDOptions) {
	cmd.Flags().BoolVar(&io.ShowID, "show-ids", false, "Show post ids in output.")
}

// ListOptions holds list filter flags.
type ListOptions struct {
	Since string
}

func AddListArgs(cmd *cobra.Command, lo *ListOptions) {
	cmd.Flags().StringVar(&lo.Since, "since", "", "Only show posts created within a window, e.g. 1w or 3d.")
}
