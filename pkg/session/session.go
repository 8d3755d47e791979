// Package session mediates every change to one journal entry between the
// moment it is opened and the moment the editor is left.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/aurora/pkg/images"
	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/logger"
)

// State of an editing session.
type State int

const (
	Clean State = iota
	Dirty
	Discarding
	Closed
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Discarding:
		return "discarding"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Choice is the answer to the unsaved changes prompt.
type Choice int

const (
	ChoiceNone Choice = iota
	Discard
	SaveAndExit
	KeepEditing
)

func (c Choice) String() string {
	switch c {
	case Discard:
		return "Discard"
	case SaveAndExit:
		return "Save & Exit"
	case KeepEditing:
		return "Keep Editing"
	default:
		return "None"
	}
}

// Options is the order the unsaved changes prompt offers its choices in.
var Options = []Choice{Discard, SaveAndExit, KeepEditing}

// Decision is the answer of CanLeave.
type Decision struct {
	Allowed bool
	// Options is set when the user must confirm before leaving.
	Options []Choice
}

// NeedsConfirmation reports whether leaving must be confirmed first.
func (d Decision) NeedsConfirmation() bool {
	return !d.Allowed
}

// Outcome tells the navigation layer what to do after Back.
type Outcome int

const (
	Stay Outcome = iota
	Pop
)

var (
	ErrClosed               = errors.New("session: closed")
	ErrSaveInFlight         = errors.New("session: save already in progress")
	ErrConfirmationRequired = errors.New("session: unsaved changes need a choice")
	ErrImageIndex           = errors.New("session: image index out of range")
)

// Saver persists a finished draft.
type Saver interface {
	Save(ctx context.Context, e journal.Entry) error
}

// Session tracks a draft of one entry against its last saved snapshot.
type Session struct {
	mu       sync.Mutex
	saver    Saver
	original journal.Entry
	draft    journal.Entry
	state    State
	saving   bool
}

// New opens a session on original.
func New(saver Saver, original journal.Entry) *Session {
	return &Session{
		saver:    saver,
		original: original.Clone(),
		draft:    original.Clone(),
		state:    Clean,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Dirty() bool {
	return s.State() == Dirty
}

// Draft returns a copy of the working entry.
func (s *Session) Draft() journal.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Original returns a copy of the snapshot the session was opened with.
func (s *Session) Original() journal.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original.Clone()
}

func (s *Session) SetTitle(title string) error {
	return s.edit(func(d *journal.Entry) error {
		d.Title = title
		return nil
	})
}

func (s *Session) SetText(text string) error {
	return s.edit(func(d *journal.Entry) error {
		d.Text = text
		return nil
	})
}

func (s *Session) AddImage(ref string) error {
	return s.edit(func(d *journal.Entry) error {
		d.Images = append(d.Images, ref)
		return nil
	})
}

func (s *Session) RemoveImage(index int) error {
	return s.edit(func(d *journal.Entry) error {
		if index < 0 || index >= len(d.Images) {
			return fmt.Errorf("%w: %d", ErrImageIndex, index)
		}
		d.Images = append(d.Images[:index:index], d.Images[index+1:]...)
		return nil
	})
}

// ApplyPick merges an image provider result. A cancelled pick changes nothing.
func (s *Session) ApplyPick(res images.Result) error {
	if res.Cancelled || res.Ref == "" {
		return nil
	}
	return s.AddImage(res.Ref)
}

func (s *Session) edit(fn func(d *journal.Entry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Closed || s.state == Discarding {
		return ErrClosed
	}
	if s.saving {
		return ErrSaveInFlight
	}
	draft := s.draft.Clone()
	if err := fn(&draft); err != nil {
		return err
	}
	s.draft = draft
	if s.draft.Equal(s.original) {
		s.state = Clean
	} else {
		s.state = Dirty
	}
	return nil
}

// CanLeave is the guard the navigation layer consults before tearing the
// editor down.
func (s *Session) CanLeave() Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Dirty {
		return Decision{Options: append([]Choice(nil), Options...)}
	}
	return Decision{Allowed: true}
}

// Save writes the draft and closes the session. On failure the session and
// its draft are left exactly as they were so the user can retry. Edits and
// Back are refused with ErrSaveInFlight until Save returns.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.state == Closed || s.state == Discarding:
		s.mu.Unlock()
		return ErrClosed
	case s.saving:
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.saving = true
	draft := s.draft.Clone()
	s.mu.Unlock()

	var err error
	if err = journal.Validate(draft); err == nil {
		err = s.saver.Save(ctx, draft)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		logger.Warn("save failed", "date", draft.Date, "err", err)
		return err
	}
	s.original = draft
	s.state = Closed
	return nil
}

// Back handles every leave trigger: header back, cancel button and system
// back gesture. choice is only consulted when the draft is dirty.
func (s *Session) Back(ctx context.Context, choice Choice) (Outcome, error) {
	s.mu.Lock()
	state := s.state
	switch state {
	case Closed, Discarding:
		s.mu.Unlock()
		return Pop, nil
	}
	if s.saving {
		s.mu.Unlock()
		return Stay, ErrSaveInFlight
	}
	switch state {
	case Clean:
		s.state = Closed
		s.mu.Unlock()
		return Pop, nil
	}
	switch choice {
	case Discard:
		s.state = Discarding
		s.mu.Unlock()
		return Pop, nil
	case KeepEditing:
		s.mu.Unlock()
		return Stay, nil
	case SaveAndExit:
		s.mu.Unlock()
		if err := s.Save(ctx); err != nil {
			return Stay, err
		}
		return Pop, nil
	default:
		s.mu.Unlock()
		return Stay, ErrConfirmationRequired
	}
}

// Close finishes the session once the editor is gone. A discarding session
// drops its draft here.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Discarding {
		s.draft = s.original.Clone()
	}
	s.state = Closed
}
