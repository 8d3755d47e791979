package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/aurora/pkg/logger"
	"tableflip.dev/aurora/pkg/store"
)

// Repository maps calendar dates to entries kept in an entry store.
type Repository struct {
	Store store.Store
}

// NewRepository builds a repository over s.
func NewRepository(s store.Store) *Repository {
	return &Repository{Store: s}
}

var errNoStore = errors.New("journal: no store configured")

// ListAll returns every journal entry, most recent date first. A record that
// cannot be decoded fails the whole listing.
func (r *Repository) ListAll(ctx context.Context) ([]Entry, error) {
	if r.Store == nil {
		return nil, errNoStore
	}
	keys, err := r.Store.Keys(ctx)
	if err != nil {
		logger.Error("list journal keys", "err", err)
		return nil, &IOError{Op: "list", Err: err}
	}
	journalKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := DateFromKey(k); ok {
			journalKeys = append(journalKeys, k)
		}
	}
	pairs, err := r.Store.MultiGet(ctx, journalKeys)
	if err != nil {
		logger.Error("read journal records", "err", err)
		return nil, &IOError{Op: "read", Err: err}
	}

	all := make([]Entry, 0, len(pairs))
	for _, p := range pairs {
		if p.Value == nil {
			// Removed between Keys and MultiGet.
			continue
		}
		e, err := decode(p.Key, p.Value)
		if err != nil {
			logger.Error("decode journal record", "key", p.Key, "err", err)
			return nil, err
		}
		all = append(all, e)
	}
	SortByDate(all)
	return all, nil
}

// Load returns the entry for date. The bool is false when none is stored.
func (r *Repository) Load(ctx context.Context, date string) (Entry, bool, error) {
	if r.Store == nil {
		return Entry{}, false, errNoStore
	}
	if !ValidDate(date) {
		return Entry{}, false, &ValidationError{Reason: InvalidDate, Value: date}
	}
	key := Key(date)
	val, ok, err := r.Store.Get(ctx, key)
	if err != nil {
		logger.Error("read journal record", "key", key, "err", err)
		return Entry{}, false, &IOError{Op: "read", Key: key, Err: err}
	}
	if !ok {
		return Entry{}, false, nil
	}
	e, err := decode(key, val)
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Save validates e and overwrites whatever is stored for its date.
func (r *Repository) Save(ctx context.Context, e Entry) error {
	if err := Validate(e); err != nil {
		return err
	}
	if r.Store == nil {
		return errNoStore
	}
	key := Key(e.Date)
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("journal: encode %s: %w", key, err)
	}
	if err := r.Store.Set(ctx, key, data); err != nil {
		logger.Error("write journal record", "key", key, "err", err)
		return &IOError{Op: "write", Key: key, Err: err}
	}
	logger.Debug("saved journal entry", "date", e.Date, "images", len(e.Images))
	return nil
}

// Delete removes the entry for date. Deleting an absent entry succeeds.
func (r *Repository) Delete(ctx context.Context, date string) error {
	if r.Store == nil {
		return errNoStore
	}
	if !ValidDate(date) {
		return &ValidationError{Reason: InvalidDate, Value: date}
	}
	key := Key(date)
	if err := r.Store.Remove(ctx, key); err != nil {
		logger.Error("remove journal record", "key", key, "err", err)
		return &IOError{Op: "remove", Key: key, Err: err}
	}
	logger.Debug("deleted journal entry", "date", date)
	return nil
}

func decode(key string, val []byte) (Entry, error) {
	e := Entry{}
	if err := json.Unmarshal(val, &e); err != nil {
		return Entry{}, fmt.Errorf("journal: decode %s: %w", key, err)
	}
	e.Date, _ = DateFromKey(key)
	return e, nil
}

// SortByDate orders entries by date, most recent first.
func SortByDate(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

// Search keeps the entries whose date or title contains query, ignoring
// case. A blank query returns corpus as is. Order is preserved.
func Search(query string, corpus []Entry) []Entry {
	if strings.TrimSpace(query) == "" {
		return corpus
	}
	q := strings.ToLower(query)
	out := make([]Entry, 0, len(corpus))
	for _, e := range corpus {
		if strings.Contains(strings.ToLower(e.Date), q) || strings.Contains(strings.ToLower(e.Title), q) {
			out = append(out, e)
		}
	}
	return out
}
