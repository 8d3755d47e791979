package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/aurora/pkg/commands/options"
	"tableflip.dev/aurora/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var since string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list journal pages, newest first",
		Example: `
aurora list
aurora list --since 2w
aurora list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			l := list.List{
				JSON:       oo.JSON,
				Window:     since,
				Repository: e.Repository,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	cmd.Flags().StringVar(&since, "since", "", `Only pages inside a window ending today, example: --since=2w or --since=1mo.`)
	topLevel.AddCommand(cmd)
}

func addSearch(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "find pages whose date or title contains the query",
		Long: `Find pages whose date or title contains the query, ignoring case.
An empty query lists every page.`,
		Example: `
aurora search beach
aurora search 2024-03
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			l := list.List{
				Query:      strings.Join(args, " "),
				JSON:       oo.JSON,
				Repository: e.Repository,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
