package write

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/aurora/pkg/images"
	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/printers"
)

// Write saves a whole entry for one date, replacing what was there.
type Write struct {
	Date         string
	Title        string
	Text         string
	ImagePaths   []string
	DefaultTitle bool
	// Next prints the following date so the caller can turn the page.
	Next bool

	Repository *journal.Repository
	// Pick builds a provider for one path. Defaults to a FileProvider.
	Pick   func(path string) images.Provider
	Assets string
	Out    io.Writer
}

func (w *Write) Do(ctx context.Context) error {
	if w.Repository == nil {
		return errors.New("can not write, no repository")
	}
	if w.Date == "" {
		w.Date = journal.Today()
	}

	e := journal.Entry{
		Date:   w.Date,
		Title:  w.Title,
		Text:   w.Text,
		Images: []string{},
	}
	if w.DefaultTitle {
		e = journal.Prepare(e)
	}
	// Fail before copying any image into the assets directory.
	if err := journal.Validate(e); err != nil {
		return err
	}

	for _, path := range w.ImagePaths {
		res, err := w.provider(path).PickFromLibrary(ctx)
		if err != nil {
			return err
		}
		if res.Cancelled {
			continue
		}
		e.Images = append(e.Images, res.Ref)
	}

	if err := w.Repository.Save(ctx, e); err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: w.Out}
	pp.Title(fmt.Sprintf("Journal for %s saved!", e.Date))
	pp.Entries(e)

	if w.Next {
		next, err := journal.NextDay(e.Date)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out(w.Out), "Next page: aurora write --date %s\n", next)
	}
	return nil
}

func (w *Write) provider(path string) images.Provider {
	if w.Pick != nil {
		return w.Pick(path)
	}
	return &images.FileProvider{Assets: w.Assets, Choose: images.StaticChooser(path)}
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
