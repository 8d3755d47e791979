package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/aurora/pkg/journal"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// DateOptions selects the journal page a command works on.
type DateOptions struct {
	DateString string
}

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVarP(&o.DateString, "date", "d", "",
		`Specify a date, example: --date="2024-2-28", --date="2/28" or --date=yesterday. Defaults to today.`)
}

// GetDate resolves the flag, or today when it is unset.
func (o *DateOptions) GetDate() (string, error) {
	return ParseDate(o.DateString, time.Now())
}

// ParseDate turns user input into a YYYY-MM-DD entry date relative to now.
func ParseDate(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "today":
		return now.Format(journal.DateLayout), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(journal.DateLayout), nil
	}
	t, err := time.ParseInLocation(layoutISO, s, now.Location())
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, s, now.Location())
		if err != nil {
			return "", &journal.ValidationError{Reason: journal.InvalidDate, Value: s}
		}
		t = t.AddDate(now.Year(), 0, 0)
		// A journal looks back, so 12/30 typed on 1/2 means last year.
		if t.After(now) {
			t = t.AddDate(-1, 0, 0)
		}
	}
	return t.Format(journal.DateLayout), nil
}
