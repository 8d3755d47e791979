// Package journal holds the dated journal entry model and the repository that
// persists entries in the key-value entry store.
package journal

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// KeyPrefix namespaces journal records inside the entry store.
	KeyPrefix = "journal-"

	// DateLayout is the calendar day format used for entry dates.
	DateLayout = "2006-01-02"

	// MaxTitleLength is the longest title accepted, counted in runes.
	MaxTitleLength = 50
)

// Entry is one day's journal record.
type Entry struct {
	Date   string   `json:"-"`
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

// record is the persisted layout. Image mirrors Images[0] so older single
// image readers keep working.
type record struct {
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Images []string `json:"images"`
	Image  *string  `json:"image"`
}

// MarshalJSON writes the persisted record layout, including the legacy image.
func (e Entry) MarshalJSON() ([]byte, error) {
	r := record{
		Title:  e.Title,
		Text:   e.Text,
		Images: e.Images,
	}
	if r.Images == nil {
		r.Images = []string{}
	}
	if len(e.Images) > 0 {
		first := e.Images[0]
		r.Image = &first
	}
	return json.Marshal(r)
}

// UnmarshalJSON reads both the current layout and single image records.
func (e *Entry) UnmarshalJSON(b []byte) error {
	r := record{}
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	e.Title = r.Title
	e.Text = r.Text
	e.Images = r.Images
	if len(e.Images) == 0 && r.Image != nil && *r.Image != "" {
		e.Images = []string{*r.Image}
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	return nil
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	c := e
	c.Images = append([]string{}, e.Images...)
	return c
}

// Equal compares entries field by field, images by value.
func (e Entry) Equal(o Entry) bool {
	if e.Date != o.Date || e.Title != o.Title || e.Text != o.Text {
		return false
	}
	if len(e.Images) != len(o.Images) {
		return false
	}
	for i := range e.Images {
		if e.Images[i] != o.Images[i] {
			return false
		}
	}
	return true
}

// Image returns the first image, the value kept in the legacy field.
func (e Entry) Image() string {
	if len(e.Images) == 0 {
		return ""
	}
	return e.Images[0]
}

// Key makes `journal-date`.
func Key(date string) string {
	return KeyPrefix + date
}

// DateFromKey strips the journal prefix. The bool is false for keys outside
// the journal namespace.
func DateFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, KeyPrefix), true
}

// DefaultTitle is the label used for entries saved without a title.
func DefaultTitle(date string) string {
	return "Journal Entry - " + date
}

// Prepare fills a blank title with the default label.
func Prepare(e Entry) Entry {
	if strings.TrimSpace(e.Title) == "" {
		e.Title = DefaultTitle(e.Date)
	}
	return e
}

// Today returns the current local calendar day.
func Today() string {
	return time.Now().Format(DateLayout)
}

// NextDay returns the calendar day after date.
func NextDay(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", &ValidationError{Reason: InvalidDate, Value: date}
	}
	return t.AddDate(0, 0, 1).Format(DateLayout), nil
}

// ValidDate reports whether date is a real `YYYY-MM-DD` calendar day.
func ValidDate(date string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == date
}

// Validate checks an entry against the save rules. It never touches storage.
func Validate(e Entry) error {
	if !ValidDate(e.Date) {
		return &ValidationError{Reason: InvalidDate, Value: e.Date}
	}
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Reason: EmptyTitle}
	}
	if utf8.RuneCountInString(e.Title) > MaxTitleLength {
		return &ValidationError{Reason: TitleTooLong, Value: e.Title}
	}
	if strings.TrimSpace(e.Text) == "" {
		return &ValidationError{Reason: EmptyBody}
	}
	return nil
}
