package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/aurora/pkg/habit"
	"tableflip.dev/aurora/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	var watch bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Long: `Open the text-based user interface to browse, search and write pages and
to track daily habits. Habits live only as long as the session.`,
		Example: `
aurora ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			i := ui.UI{
				Repository: e.Repository,
				Habits:     habit.NewTracker(),
				Assets:     e.Config.AssetsPath(),
			}
			if watch {
				i.Watcher = e.Disk
			}
			return i.Do(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", true, "Refresh when pages change on disk.")

	topLevel.AddCommand(cmd)
}
