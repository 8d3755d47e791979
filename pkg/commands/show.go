package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/aurora/pkg/commands/options"
	"tableflip.dev/aurora/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}
	var (
		raw   bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "read the journal page for a day",
		Long: `Read the journal page for a day. The text is rendered as markdown unless
--raw is set.`,
		Example: `
aurora show
aurora show 2024-03-01
aurora show -i
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDates,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			date, err := e.pickDate(cmd, args, i.Interactive)
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Date:       date,
				Raw:        raw,
				JSON:       oo.JSON,
				Width:      width,
				Repository: e.Repository,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.InteractiveArgs(cmd, i)
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the text as written.")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap rendered text at this width.")

	topLevel.AddCommand(cmd)
}
