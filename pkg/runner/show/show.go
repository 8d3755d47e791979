package show

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/printers"
	"tableflip.dev/aurora/pkg/runner/list"
)

// ErrNoEntry is returned when nothing is stored for the date.
var ErrNoEntry = errors.New("no journal entry for that date")

// Show prints one entry. The body is rendered as markdown unless Raw is set.
type Show struct {
	Date  string
	Raw   bool
	JSON  bool
	Width int

	Repository *journal.Repository
	Out        io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	if s.Repository == nil {
		return errors.New("can not show, no repository")
	}
	e, ok, err := s.Repository.Load(ctx, s.Date)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoEntry, s.Date)
	}

	if s.JSON {
		return printers.JSON(s.Out, list.ToDTO(e))
	}
	pp := printers.PrettyPrint{Out: s.Out, Width: s.Width}
	if s.Raw {
		pp.Entry(e)
		return nil
	}

	md, err := Markdown(e, s.Width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(s.Out, md)
	return err
}

// Markdown renders the entry through glamour.
func Markdown(e journal.Entry, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n_%s_\n\n%s\n", e.Title, e.Date, e.Text)
	if len(e.Images) > 0 {
		b.WriteString("\n")
		for i, ref := range e.Images {
			fmt.Fprintf(&b, "- photo %d: %s\n", i, ref)
		}
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(b.String())
}
