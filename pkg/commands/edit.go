package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/aurora/pkg/commands/options"
	"tableflip.dev/aurora/pkg/editor"
	"tableflip.dev/aurora/pkg/images"
	"tableflip.dev/aurora/pkg/prompt"
	"tableflip.dev/aurora/pkg/runner/edit"
	"tableflip.dev/aurora/pkg/session"
)

func addEdit(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}
	var (
		title        string
		text         string
		addImages    []string
		removeImages []int
		pickImage    bool
		onUnsaved    string
	)

	cmd := &cobra.Command{
		Use:   "edit [date]",
		Short: "change the journal page for a day",
		Long: `Change the journal page for a day. Without --title or --text the page is
opened in $EDITOR. Leaving with unsaved changes asks whether to discard them,
save and exit, or keep editing.`,
		Example: `
aurora edit
aurora edit 2024-03-01 --title "Beach day, again"
aurora edit yesterday --add-image ~/Pictures/dog.jpg --remove-image 1
aurora edit -i --on-unsaved save
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDates,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm, err := confirmFor(onUnsaved)
			if err != nil {
				return err
			}
			e, err := load()
			if err != nil {
				return err
			}
			date, err := e.pickDate(cmd, args, i.Interactive)
			if err != nil {
				return oo.HandleError(err)
			}

			out := cmd.OutOrStdout()
			ed := edit.Edit{
				Date:       date,
				AddImages:  addImages,
				PickImage:  pickImage,
				Repository: e.Repository,
				Images: &images.FileProvider{
					Assets: e.Config.AssetsPath(),
					Choose: func(context.Context) (string, error) {
						return prompt.ImagePath(os.Stdin, prompt.NopCloser(out))
					},
				},
				Confirm: confirm,
				Out:     out,
			}
			for _, n := range removeImages {
				if n < 1 {
					return fmt.Errorf("--remove-image counts from 1, got %d", n)
				}
				ed.RemoveImages = append(ed.RemoveImages, n-1)
			}
			if cmd.Flags().Changed("title") {
				ed.Title = &title
			}
			if cmd.Flags().Changed("text") {
				ed.Text = &text
			}
			if ed.Title == nil && ed.Text == nil {
				ed.Editor = editor.Open
			}
			return oo.HandleError(ed.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.InteractiveArgs(cmd, i)
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title.")
	cmd.Flags().StringVar(&text, "text", "", "New text.")
	cmd.Flags().StringSliceVar(&addImages, "add-image", nil, "Image file to attach. Repeat for more.")
	cmd.Flags().IntSliceVar(&removeImages, "remove-image", nil, "Position of an image to drop, counting from 1.")
	cmd.Flags().BoolVar(&pickImage, "pick-image", false, "Ask for an image to attach.")
	cmd.Flags().StringVar(&onUnsaved, "on-unsaved", "ask", "What to do with unsaved changes: ask, save or discard.")

	topLevel.AddCommand(cmd)
}

// confirmFor answers the unsaved changes prompt from a flag value.
func confirmFor(onUnsaved string) (edit.Confirm, error) {
	switch strings.ToLower(strings.TrimSpace(onUnsaved)) {
	case "", "ask":
		if !interactiveTerminal() {
			return nil, fmt.Errorf("stdin is not a terminal, pass --on-unsaved save or --on-unsaved discard")
		}
		return func(opts []session.Choice) (session.Choice, error) {
			return prompt.Leave(os.Stdin, prompt.NopCloser(os.Stdout), opts)
		}, nil
	case "save":
		return func([]session.Choice) (session.Choice, error) {
			return session.SaveAndExit, nil
		}, nil
	case "discard":
		return func([]session.Choice) (session.Choice, error) {
			return session.Discard, nil
		}, nil
	default:
		return nil, fmt.Errorf("unsupported --on-unsaved %q (expected ask, save or discard)", onUnsaved)
	}
}

func interactiveTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
