package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/aurora/pkg/commands/options"
	"tableflip.dev/aurora/pkg/editor"
	"tableflip.dev/aurora/pkg/runner/write"
)

func addWrite(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	oo := &options.OutputOptions{}
	var (
		title        string
		text         string
		images       []string
		defaultTitle bool
		next         bool
	)

	cmd := &cobra.Command{
		Use:   "write [text]",
		Short: "write the journal page for a day",
		Long: `Write the journal page for a day, replacing what was stored for that date.

A title and some text are required. Without --text or arguments the text is
written in $EDITOR. Images are copied into the assets directory and the first
one is kept as the cover image.`,
		Example: `
aurora write --title "Beach day" we swam until the sun went down
aurora write --date yesterday --title "Late" --image ~/Pictures/sunset.jpg
aurora write --default-title --next "quick note"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := do.GetDate()
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := load()
			if err != nil {
				return err
			}

			body := text
			if body == "" {
				body = strings.Join(args, " ")
			}
			if strings.TrimSpace(body) == "" {
				if title, body, err = editor.Open(cmd.Context(), date, title, ""); err != nil {
					return oo.HandleError(err)
				}
			}

			w := write.Write{
				Date:         date,
				Title:        title,
				Text:         body,
				ImagePaths:   images,
				DefaultTitle: defaultTitle,
				Next:         next,
				Repository:   e.Repository,
				Assets:       e.Config.AssetsPath(),
				Out:          cmd.OutOrStdout(),
			}
			return oo.HandleError(w.Do(cmd.Context()))
		},
	}

	options.AddDateArgs(cmd, do)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().StringVarP(&title, "title", "t", "", "Title of the page, up to 50 characters.")
	cmd.Flags().StringVar(&text, "text", "", "Text of the page.")
	cmd.Flags().StringSliceVar(&images, "image", nil, "Image file to attach. Repeat for more.")
	cmd.Flags().BoolVar(&defaultTitle, "default-title", false, "Use the date as the title when none is given.")
	cmd.Flags().BoolVar(&next, "next", false, "Print the command for the following day.")

	topLevel.AddCommand(cmd)
}
