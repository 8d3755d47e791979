package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/aurora/pkg/images"
	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/logger"
	"tableflip.dev/aurora/pkg/printers"
	"tableflip.dev/aurora/pkg/session"
)

// Confirm answers the unsaved changes prompt.
type Confirm func(options []session.Choice) (session.Choice, error)

// Editor lets the user rework title and text. It returns the new values.
type Editor func(ctx context.Context, date, title, text string) (string, string, error)

// Edit opens an editing session on one date, applies the requested changes
// and then leaves the editor through the unsaved changes guard.
type Edit struct {
	Date string

	Title        *string
	Text         *string
	AddImages    []string
	RemoveImages []int
	// PickImage asks the provider for one more image.
	PickImage bool

	Repository *journal.Repository
	Images     images.Provider
	Editor     Editor
	Confirm    Confirm
	Out        io.Writer
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Repository == nil {
		return errors.New("can not edit, no repository")
	}
	if e.Confirm == nil {
		return errors.New("can not edit, no way to confirm unsaved changes")
	}
	if e.Date == "" {
		e.Date = journal.Today()
	}

	entry, ok, err := e.Repository.Load(ctx, e.Date)
	if err != nil {
		return err
	}
	if !ok {
		entry = journal.Entry{Date: e.Date, Images: []string{}}
	}

	s := session.New(e.Repository, entry)
	if err := e.apply(ctx, s); err != nil {
		return err
	}
	if e.Editor != nil && e.Title == nil && e.Text == nil {
		if err := e.runEditor(ctx, s); err != nil {
			return err
		}
	}

	for {
		choice := session.ChoiceNone
		if d := s.CanLeave(); d.NeedsConfirmation() {
			if choice, err = e.Confirm(d.Options); err != nil {
				return err
			}
		}

		out, err := s.Back(ctx, choice)
		if out == session.Pop {
			left := s.State()
			s.Close()
			e.report(s, choice, left)
			return nil
		}
		if err != nil {
			var ioErr *journal.IOError
			if errors.As(err, &ioErr) {
				logger.Warn("could not save, try again", "date", e.Date, "err", err)
			}
			_, _ = fmt.Fprintf(e.out(), "Could not save: %v\n", err)
			if e.Editor == nil {
				return err
			}
		}
		if e.Editor == nil {
			// Nothing left to edit from flags; ask again.
			continue
		}
		if err := e.runEditor(ctx, s); err != nil {
			return err
		}
	}
}

func (e *Edit) apply(ctx context.Context, s *session.Session) error {
	if e.Title != nil {
		if err := s.SetTitle(*e.Title); err != nil {
			return err
		}
	}
	if e.Text != nil {
		if err := s.SetText(*e.Text); err != nil {
			return err
		}
	}
	// Remove from the back so earlier indexes stay valid.
	for i := len(e.RemoveImages) - 1; i >= 0; i-- {
		if err := s.RemoveImage(e.RemoveImages[i]); err != nil {
			return err
		}
	}
	for _, path := range e.AddImages {
		p := &images.FileProvider{Choose: images.StaticChooser(path)}
		if fp, ok := e.Images.(*images.FileProvider); ok {
			p.Assets = fp.Assets
		}
		res, err := p.PickFromLibrary(ctx)
		if err != nil {
			return err
		}
		if err := s.ApplyPick(res); err != nil {
			return err
		}
	}
	if e.PickImage && e.Images != nil {
		res, err := images.PickWithFallback(ctx, e.Images)
		if err != nil {
			if errors.Is(err, images.ErrPermissionDenied) {
				_, _ = fmt.Fprintln(e.out(), "Permission to read that image was denied.")
				return nil
			}
			return err
		}
		if err := s.ApplyPick(res); err != nil {
			return err
		}
	}
	return nil
}

func (e *Edit) runEditor(ctx context.Context, s *session.Session) error {
	d := s.Draft()
	title, text, err := e.Editor(ctx, d.Date, d.Title, d.Text)
	if err != nil {
		return err
	}
	if err := s.SetTitle(title); err != nil {
		return err
	}
	return s.SetText(text)
}

func (e *Edit) report(s *session.Session, choice session.Choice, left session.State) {
	w := e.out()
	switch {
	case left == session.Discarding:
		_, _ = fmt.Fprintln(w, "Changes discarded.")
	case choice == session.SaveAndExit:
		pp := printers.PrettyPrint{Out: w}
		pp.Title(fmt.Sprintf("Journal for %s saved!", e.Date))
		pp.Entries(s.Original())
	default:
		_, _ = fmt.Fprintln(w, "No changes.")
	}
}

func (e *Edit) out() io.Writer {
	if e.Out == nil {
		return io.Discard
	}
	return e.Out
}
