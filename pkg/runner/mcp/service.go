// Package mcp provides the Model Context Protocol server integration for aurora.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/aurora/pkg/habit"
	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/runner/list"
)

// Service coordinates the journal and habit operations exposed over MCP.
type Service struct {
	Repository *journal.Repository
	Habits     *habit.Tracker
}

// ErrEntryNotFound is returned when no entry is stored for a date.
var ErrEntryNotFound = errors.New("entry not found")

// SaveEntryOptions captures the parameters used to write an entry.
type SaveEntryOptions struct {
	Date         string
	Title        string
	Text         string
	Images       []string
	DefaultTitle bool
}

// HabitDTO is a transport-friendly projection of a habit.
type HabitDTO struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Streak            int    `json:"streak"`
	LastCompletedDate string `json:"lastCompletedDate,omitempty"`
	DoneToday         bool   `json:"doneToday"`
}

// NewService builds a service over the repository and a session-scoped
// habit tracker.
func NewService(repo *journal.Repository, habits *habit.Tracker) *Service {
	if habits == nil {
		habits = habit.NewTracker()
	}
	return &Service{Repository: repo, Habits: habits}
}

func (s *Service) ListEntries(ctx context.Context) ([]list.EntryDTO, error) {
	return s.SearchEntries(ctx, "")
}

func (s *Service) SearchEntries(ctx context.Context, query string) ([]list.EntryDTO, error) {
	if s.Repository == nil {
		return nil, errors.New("repository is not configured")
	}
	all, err := s.Repository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	found := journal.Search(query, all)
	out := make([]list.EntryDTO, 0, len(found))
	for _, e := range found {
		out = append(out, list.ToDTO(e))
	}
	return out, nil
}

func (s *Service) GetEntry(ctx context.Context, date string) (list.EntryDTO, error) {
	if s.Repository == nil {
		return list.EntryDTO{}, errors.New("repository is not configured")
	}
	e, ok, err := s.Repository.Load(ctx, strings.TrimSpace(date))
	if err != nil {
		return list.EntryDTO{}, err
	}
	if !ok {
		return list.EntryDTO{}, fmt.Errorf("%w: %s", ErrEntryNotFound, date)
	}
	return list.ToDTO(e), nil
}

func (s *Service) SaveEntry(ctx context.Context, opts SaveEntryOptions) (list.EntryDTO, error) {
	if s.Repository == nil {
		return list.EntryDTO{}, errors.New("repository is not configured")
	}
	date := strings.TrimSpace(opts.Date)
	if date == "" {
		date = journal.Today()
	}
	e := journal.Entry{
		Date:   date,
		Title:  opts.Title,
		Text:   opts.Text,
		Images: append([]string{}, opts.Images...),
	}
	if opts.DefaultTitle {
		e = journal.Prepare(e)
	}
	if err := s.Repository.Save(ctx, e); err != nil {
		return list.EntryDTO{}, err
	}
	return list.ToDTO(e), nil
}

func (s *Service) DeleteEntry(ctx context.Context, date string) error {
	if s.Repository == nil {
		return errors.New("repository is not configured")
	}
	date = strings.TrimSpace(date)
	if !journal.ValidDate(date) {
		return &journal.ValidationError{Reason: journal.InvalidDate, Value: date}
	}
	return s.Repository.Delete(ctx, date)
}

func (s *Service) ListHabits() []HabitDTO {
	today := s.Habits.Today()
	habits := s.Habits.List()
	out := make([]HabitDTO, 0, len(habits))
	for _, h := range habits {
		out = append(out, toHabitDTO(h, today))
	}
	return out
}

func (s *Service) AddHabit(name string) (HabitDTO, error) {
	h, err := s.Habits.AddHabit(name)
	if err != nil {
		return HabitDTO{}, err
	}
	return toHabitDTO(h, s.Habits.Today()), nil
}

func (s *Service) MarkHabitDone(id int) (HabitDTO, error) {
	h, err := s.Habits.MarkDone(id)
	if err != nil {
		return HabitDTO{}, err
	}
	return toHabitDTO(h, s.Habits.Today()), nil
}

func (s *Service) UndoHabitDone(id int) (HabitDTO, error) {
	h, err := s.Habits.UndoDone(id)
	if err != nil {
		return HabitDTO{}, err
	}
	return toHabitDTO(h, s.Habits.Today()), nil
}

func (s *Service) RenameHabit(id int, name string) (HabitDTO, error) {
	h, err := s.Habits.EditHabit(id, name)
	if err != nil {
		return HabitDTO{}, err
	}
	return toHabitDTO(h, s.Habits.Today()), nil
}

func (s *Service) DeleteHabit(id int) error {
	return s.Habits.DeleteHabit(id)
}

func toHabitDTO(h habit.Habit, today string) HabitDTO {
	return HabitDTO{
		ID:                h.ID,
		Name:              h.Name,
		Streak:            h.Streak,
		LastCompletedDate: h.LastCompletedDate,
		DoneToday:         h.CompletedOn(today),
	}
}
