package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/aurora/pkg/journal"
)

const previewWidth = 60

// PrettyPrint renders journal entries for humans.
type PrettyPrint struct {
	Out io.Writer
	// Width wraps entry bodies; 0 means 80.
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entries prints one row per entry: date, title and a preview of the text.
func (pp *PrettyPrint) Entries(entries ...journal.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		photos := ""
		if n := len(e.Images); n > 0 {
			photos = fmt.Sprintf("[%d photo%s]", n, plural(n))
		}
		tbl.AddRow(y.Sprint(e.Date), color.New(color.Bold).Sprint(e.Title), Preview(e.Text), photos)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Entry prints a full entry with its body wrapped.
func (pp *PrettyPrint) Entry(e journal.Entry) {
	width := pp.Width
	if width <= 0 {
		width = 80
	}
	pp.Title(fmt.Sprintf("%s  %s", e.Date, e.Title))
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(e.Text, width))
	pp.Images(e.Images)
}

// Images lists image references with their index.
func (pp *PrettyPrint) Images(refs []string) {
	if len(refs) == 0 {
		return
	}
	f := color.New(color.Faint)
	_, _ = fmt.Fprintln(pp.out())
	for i, ref := range refs {
		_, _ = f.Fprintf(pp.out(), "  [%d] %s\n", i, ref)
	}
}

// Preview flattens text onto one line and truncates it.
func Preview(text string) string {
	line := strings.Join(strings.Fields(text), " ")
	return truncate.StringWithTail(line, previewWidth, "…")
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
