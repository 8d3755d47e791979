// Package habit tracks daily habits and their streaks for the lifetime of
// one app session. Nothing here is persisted.
package habit

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

var (
	// ErrBlankName rejects habits without a name.
	ErrBlankName = errors.New("habit: name is required")
	ErrNotFound  = errors.New("habit: not found")
)

// Habit is one tracked habit.
type Habit struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Streak            int    `json:"streak"`
	LastCompletedDate string `json:"lastCompletedDate,omitempty"`

	// previous is the completion date before today's, restored by UndoDone.
	previous string
}

// CompletedOn reports whether the habit was completed on day.
func (h Habit) CompletedOn(day string) bool {
	return h.LastCompletedDate != "" && h.LastCompletedDate == day
}

// Tracker owns the habit list.
type Tracker struct {
	mu     sync.Mutex
	now    func() time.Time
	habits []*Habit
	nextID int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithHabits seeds the tracker. Ids continue after the highest seeded id.
func WithHabits(habits ...Habit) Option {
	return func(t *Tracker) {
		for _, h := range habits {
			h := h
			t.habits = append(t.habits, &h)
			if h.ID >= t.nextID {
				t.nextID = h.ID + 1
			}
		}
	}
}

// NewTracker builds a tracker and runs the streak reset once.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{now: time.Now, nextID: 1}
	for _, opt := range opts {
		opt(t)
	}
	t.Start()
	return t
}

func (t *Tracker) today() string {
	return t.now().Format(dayLayout)
}

func (t *Tracker) yesterday() string {
	return t.now().AddDate(0, 0, -1).Format(dayLayout)
}

// Start resets the streak of every habit not completed today or yesterday.
// It only runs when a session begins; there is no background scheduler.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	today, yesterday := t.today(), t.yesterday()
	for _, h := range t.habits {
		if h.LastCompletedDate != today && h.LastCompletedDate != yesterday {
			h.Streak = 0
		}
	}
	t.sort()
}

// List returns a copy of the habits ordered by streak, longest first. Ties
// keep the order they were added in.
func (t *Tracker) List() []Habit {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Habit, 0, len(t.habits))
	for _, h := range t.habits {
		out = append(out, *h)
	}
	return out
}

// Today is the calendar day the tracker considers current.
func (t *Tracker) Today() string {
	return t.today()
}

func (t *Tracker) AddHabit(name string) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, ErrBlankName
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	h := &Habit{ID: t.nextID, Name: name}
	t.nextID++
	t.habits = append(t.habits, h)
	return *h, nil
}

// MarkDone completes the habit for today. Completing twice in a day is a no-op.
func (t *Tracker) MarkDone(id int) (Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	h, err := t.find(id)
	if err != nil {
		return Habit{}, err
	}
	today := t.today()
	if h.CompletedOn(today) {
		return *h, nil
	}
	h.previous = h.LastCompletedDate
	h.Streak++
	h.LastCompletedDate = today
	t.sort()
	return *h, nil
}

// UndoDone reverses a completion made today. Earlier days cannot be undone.
func (t *Tracker) UndoDone(id int) (Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	h, err := t.find(id)
	if err != nil {
		return Habit{}, err
	}
	if !h.CompletedOn(t.today()) {
		return *h, nil
	}
	if h.Streak > 0 {
		h.Streak--
	}
	h.LastCompletedDate = h.previous
	h.previous = ""
	t.sort()
	return *h, nil
}

func (t *Tracker) EditHabit(id int, name string) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, ErrBlankName
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	h, err := t.find(id)
	if err != nil {
		return Habit{}, err
	}
	h.Name = name
	return *h, nil
}

func (t *Tracker) DeleteHabit(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, h := range t.habits {
		if h.ID == id {
			t.habits = append(t.habits[:i], t.habits[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// sort orders habits by streak. Callers hold t.mu.
func (t *Tracker) sort() {
	sort.SliceStable(t.habits, func(i, j int) bool {
		return t.habits[i].Streak > t.habits[j].Streak
	})
}

func (t *Tracker) find(id int) (*Habit, error) {
	for _, h := range t.habits {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, ErrNotFound
}
