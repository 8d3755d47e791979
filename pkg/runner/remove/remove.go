package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/aurora/pkg/journal"
)

// Remove deletes the entry for Date. Removing a missing entry succeeds.
type Remove struct {
	Date string

	Repository *journal.Repository
	Out        io.Writer
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Repository == nil {
		return errors.New("can not delete, no repository")
	}
	if !journal.ValidDate(r.Date) {
		return &journal.ValidationError{Reason: journal.InvalidDate, Value: r.Date}
	}
	if err := r.Repository.Delete(ctx, r.Date); err != nil {
		return err
	}
	if r.Out != nil {
		_, _ = fmt.Fprintf(r.Out, "Journal for %s removed.\n", r.Date)
	}
	return nil
}
