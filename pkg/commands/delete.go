package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/aurora/pkg/commands/options"
	"tableflip.dev/aurora/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "delete [date]",
		Aliases: []string{"rm"},
		Short:   "delete the journal page for a day",
		Long: `Delete the journal page for a day. Deleting a day that has no page is not
an error.`,
		Example: `
aurora delete 2024-03-01
aurora delete -i
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
			r := remove.Remove{
				Date:       date,
				Repository: e.Repository,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.InteractiveArgs(cmd, i)
	topLevel.AddCommand(cmd)
}
