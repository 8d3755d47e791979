package list

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/printers"
	"tableflip.dev/aurora/pkg/timeutil"
)

// List prints journal entries, newest first, optionally filtered by Query.
type List struct {
	Query string
	JSON  bool
	// Window keeps only pages inside a span such as "2w" ending today.
	Window string
	Now    func() time.Time

	Repository *journal.Repository
	Out        io.Writer
}

// EntryDTO is the JSON projection of an entry, carrying its date.
type EntryDTO struct {
	Date   string   `json:"date"`
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Images []string `json:"images"`
	Image  string   `json:"image,omitempty"`
}

func ToDTO(e journal.Entry) EntryDTO {
	imgs := e.Images
	if imgs == nil {
		imgs = []string{}
	}
	return EntryDTO{Date: e.Date, Title: e.Title, Text: e.Text, Images: imgs, Image: e.Image()}
}

func (l *List) Do(ctx context.Context) error {
	if l.Repository == nil {
		return errors.New("can not list, no repository")
	}
	all, err := l.Repository.ListAll(ctx)
	if err != nil {
		return err
	}
	title := "My Journals"
	if l.Window != "" {
		w, label, err := timeutil.ParseWindow(l.Window)
		if err != nil {
			return err
		}
		all = within(all, w.Since(l.now()))
		title = fmt.Sprintf("Last %s", label)
	}
	found := journal.Search(l.Query, all)

	if l.JSON {
		dtos := make([]EntryDTO, 0, len(found))
		for _, e := range found {
			dtos = append(dtos, ToDTO(e))
		}
		return printers.JSON(l.Out, dtos)
	}

	pp := printers.PrettyPrint{Out: l.Out}
	if l.Query != "" {
		title = "Search: " + l.Query
	}
	pp.TitleWithCount(title, len(found))
	pp.Entries(found...)
	return nil
}

func (l *List) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// within keeps entries dated on or after since. Dates compare as strings.
func within(entries []journal.Entry, since string) []journal.Entry {
	out := make([]journal.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Date >= since {
			out = append(out, e)
		}
	}
	return out
}
