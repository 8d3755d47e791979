package habit

import (
	"errors"
	"testing"
	"time"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newClock(day string) *clock {
	t, _ := time.Parse(dayLayout, day)
	return &clock{t: t.Add(9 * time.Hour)}
}

func TestAddHabit(t *testing.T) {
	tr := NewTracker()
	if _, err := tr.AddHabit("   "); !errors.Is(err, ErrBlankName) {
		t.Fatalf("expected blank name error, got %v", err)
	}
	a, _ := tr.AddHabit("Read")
	b, _ := tr.AddHabit("Run")
	if a.ID != 1 || b.ID != 2 || a.Streak != 0 || a.LastCompletedDate != "" {
		t.Fatalf("unexpected habits %+v %+v", a, b)
	}
}

func TestMarkDoneAtMostOncePerDay(t *testing.T) {
	c := newClock("2024-03-01")
	tr := NewTracker(WithClock(c.now))
	h, _ := tr.AddHabit("Read")

	first, _ := tr.MarkDone(h.ID)
	second, _ := tr.MarkDone(h.ID)
	if first.Streak != 1 || second.Streak != 1 || second.LastCompletedDate != "2024-03-01" {
		t.Fatalf("expected streak 1 once, got %+v", second)
	}

	c.t = c.t.AddDate(0, 0, 1)
	next, _ := tr.MarkDone(h.ID)
	if next.Streak != 2 {
		t.Fatalf("expected streak 2 the next day, got %d", next.Streak)
	}
}

func TestUndoRestoresStreak(t *testing.T) {
	c := newClock("2024-03-01")
	tr := NewTracker(WithClock(c.now), WithHabits(Habit{ID: 7, Name: "Read", Streak: 4, LastCompletedDate: "2024-02-29"}))

	done, _ := tr.MarkDone(7)
	if done.Streak != 5 {
		t.Fatalf("expected 5, got %d", done.Streak)
	}
	undone, _ := tr.UndoDone(7)
	if undone.Streak != 4 || undone.LastCompletedDate != "2024-02-29" {
		t.Fatalf("expected pre-mark state, got %+v", undone)
	}
	again, _ := tr.UndoDone(7)
	if again.Streak != 4 {
		t.Fatalf("undo of a prior day must be a no-op, got %+v", again)
	}
}

func TestStartResetsStaleStreaks(t *testing.T) {
	c := newClock("2024-03-10")
	tr := NewTracker(WithClock(c.now), WithHabits(
		Habit{ID: 1, Name: "today", Streak: 3, LastCompletedDate: "2024-03-10"},
		Habit{ID: 2, Name: "yesterday", Streak: 5, LastCompletedDate: "2024-03-09"},
		Habit{ID: 3, Name: "stale", Streak: 9, LastCompletedDate: "2024-03-07"},
		Habit{ID: 4, Name: "never", Streak: 2},
	))
	want := map[int]int{1: 3, 2: 5, 3: 0, 4: 0}
	for _, h := range tr.List() {
		if h.Streak != want[h.ID] {
			t.Errorf("habit %s: streak %d, want %d", h.Name, h.Streak, want[h.ID])
		}
	}
	h, _ := tr.AddHabit("new")
	if h.ID != 5 {
		t.Fatalf("ids should continue after seeds, got %d", h.ID)
	}
}

func TestMarkDoneSortsByStreak(t *testing.T) {
	c := newClock("2024-03-10")
	tr := NewTracker(WithClock(c.now), WithHabits(
		Habit{ID: 1, Name: "low", Streak: 1, LastCompletedDate: "2024-03-09"},
		Habit{ID: 2, Name: "high", Streak: 3, LastCompletedDate: "2024-03-09"},
	))
	_, _ = tr.MarkDone(1)
	if list := tr.List(); list[0].ID != 2 || list[1].Streak != 2 {
		t.Fatalf("expected high first, got %+v", list)
	}
	for i := 0; i < 2; i++ {
		c.t = c.t.AddDate(0, 0, 1)
		_, _ = tr.MarkDone(1)
	}
	if list := tr.List(); list[0].ID != 1 || list[0].Streak != 4 {
		t.Fatalf("expected habit 1 first, got %+v", list)
	}
}

func TestListStaysSortedAfterUndoAndStart(t *testing.T) {
	c := newClock("2024-03-10")
	tr := NewTracker(WithClock(c.now))
	a, _ := tr.AddHabit("a")
	b, _ := tr.AddHabit("b")
	_, _ = tr.MarkDone(b.ID)
	_, _ = tr.MarkDone(a.ID)
	_, _ = tr.UndoDone(b.ID)
	if list := tr.List(); list[0].ID != a.ID || list[1].ID != b.ID {
		t.Fatalf("expected a before b after undo, got %+v", list)
	}

	seeded := NewTracker(WithClock(c.now), WithHabits(
		Habit{ID: 1, Name: "stale", Streak: 0, LastCompletedDate: "2024-03-01"},
		Habit{ID: 2, Name: "live", Streak: 5, LastCompletedDate: "2024-03-09"},
	))
	if list := seeded.List(); list[0].ID != 2 || list[1].ID != 1 {
		t.Fatalf("expected live first after start, got %+v", list)
	}
}

func TestEditAndDelete(t *testing.T) {
	tr := NewTracker()
	h, _ := tr.AddHabit("Read")
	if _, err := tr.EditHabit(h.ID, ""); !errors.Is(err, ErrBlankName) {
		t.Fatalf("expected blank name, got %v", err)
	}
	renamed, err := tr.EditHabit(h.ID, "Read 20 pages")
	if err != nil || renamed.Name != "Read 20 pages" {
		t.Fatalf("rename: %+v %v", renamed, err)
	}
	if err := tr.DeleteHabit(h.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := tr.DeleteHabit(h.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := tr.MarkDone(h.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
