package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	debug bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:          "aurora",
		Short:        base.Wrap80("A private journal on the command line, with photos, search and daily habit streaks."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addWrite(topLevel)
	addList(topLevel)
	addSearch(topLevel)
	addShow(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
