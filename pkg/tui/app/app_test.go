package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/aurora/pkg/habit"
	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/store"
)

func newTestModel(t *testing.T, entries ...journal.Entry) (Model, *journal.Repository) {
	t.Helper()
	ctx := context.Background()
	repo := journal.NewRepository(store.NewMemory())
	for _, e := range entries {
		if err := repo.Save(ctx, e); err != nil {
			t.Fatalf("seed %s: %v", e.Date, err)
		}
	}
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	tracker := habit.NewTracker(habit.WithClock(func() time.Time { return now }))

	m := New(ctx, Options{Repository: repo, Habits: tracker})
	m = send(t, m, m.reload()())
	return m, repo
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func seedEntries() []journal.Entry {
	return []journal.Entry{
		{Date: "2024-03-01", Title: "Beach day", Text: "sand"},
		{Date: "2024-03-02", Title: "Work", Text: "meetings"},
		{Date: "2024-03-03", Title: "Rest", Text: "nap"},
	}
}

func TestJournalListNewestFirst(t *testing.T) {
	m, _ := newTestModel(t, seedEntries()...)

	items := m.list.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if got := items[0].(entryItem).e.Date; got != "2024-03-03" {
		t.Fatalf("first item = %s, want 2024-03-03", got)
	}
}

func TestSearchFiltersList(t *testing.T) {
	m, _ := newTestModel(t, seedEntries()...)

	m = send(t, m, key("/"))
	if !m.searching {
		t.Fatalf("expected search mode")
	}
	m = typeText(t, m, "BEACH")
	if n := len(m.list.Items()); n != 1 {
		t.Fatalf("expected 1 match, got %d", n)
	}

	m = send(t, m, keyEsc)
	if m.searching || len(m.list.Items()) != 3 {
		t.Fatalf("esc should clear the filter, got %d items", len(m.list.Items()))
	}
}

func TestEditorDiscardLeavesStoreUntouched(t *testing.T) {
	m, repo := newTestModel(t, seedEntries()...)

	m = send(t, m, keyEnter)
	if m.screen != screenEditor {
		t.Fatalf("expected editor screen")
	}
	m = typeText(t, m, "!")
	if !m.editor.session.Dirty() {
		t.Fatalf("expected dirty session after typing")
	}

	m = send(t, m, keyEsc)
	if m.editor.mode != editorLeaving {
		t.Fatalf("expected leave prompt")
	}
	m = send(t, m, key("d"))
	if m.screen != screenJournal || m.editor != nil {
		t.Fatalf("discard should return to the journal")
	}

	e, _, err := repo.Load(context.Background(), "2024-03-03")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if e.Title != "Rest" {
		t.Fatalf("store changed after discard: %q", e.Title)
	}
}

func TestEditorSaveAndExit(t *testing.T) {
	m, repo := newTestModel(t, seedEntries()...)

	m = send(t, m, keyEnter)
	m = typeText(t, m, "!")
	m = send(t, m, keyEsc, key("s"))
	if m.screen != screenJournal {
		t.Fatalf("save and exit should return to the journal")
	}

	e, _, err := repo.Load(context.Background(), "2024-03-03")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(e.Title, "!") {
		t.Fatalf("expected saved title to contain edit, got %q", e.Title)
	}
	if !strings.HasPrefix(m.status, "Saved") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestEditorKeepEditing(t *testing.T) {
	m, _ := newTestModel(t, seedEntries()...)

	m = send(t, m, keyEnter)
	m = typeText(t, m, "!")
	m = send(t, m, keyEsc, keyEsc)
	if m.screen != screenEditor || m.editor.mode != editorEditing {
		t.Fatalf("keep editing should stay in the editor")
	}
	if !m.editor.session.Dirty() {
		t.Fatalf("draft should still be dirty")
	}
}

func TestEditorCleanBackNeedsNoPrompt(t *testing.T) {
	m, _ := newTestModel(t, seedEntries()...)

	m = send(t, m, keyEnter, keyEsc)
	if m.screen != screenJournal {
		t.Fatalf("clean editor should close without a prompt")
	}
}

func TestEditorSaveRejectsBlankTitle(t *testing.T) {
	m, repo := newTestModel(t)

	m = send(t, m, key("n"))
	if m.screen != screenEditor || !m.editor.isNew {
		t.Fatalf("expected a new entry editor")
	}
	m = send(t, m, keyTab)
	m = typeText(t, m, "a quiet day")
	m = send(t, m, keySave)

	if m.screen != screenEditor {
		t.Fatalf("failed save should keep the editor open")
	}
	if !m.statusErr {
		t.Fatalf("expected an error status, got %q", m.status)
	}
	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(all))
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, repo := newTestModel(t, seedEntries()...)

	m = send(t, m, key("x"), key("n"))
	if all, _ := repo.ListAll(context.Background()); len(all) != 3 {
		t.Fatalf("delete should be cancelled")
	}

	m = send(t, m, key("x"), key("y"))
	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries after delete, got %d", len(all))
	}
}

func TestStreaksMarkDoneAndUndo(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, key("s"), key("a"))
	m = typeText(t, m, "Read")
	m = send(t, m, keyEnter)

	habits := m.opts.Habits.List()
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Fatalf("unexpected habits: %+v", habits)
	}

	m = send(t, m, keyEnter)
	if got := m.opts.Habits.List()[0].Streak; got != 1 {
		t.Fatalf("streak = %d, want 1", got)
	}
	if !strings.Contains(m.status, "streak is 1") {
		t.Fatalf("status = %q", m.status)
	}

	m = send(t, m, keyEnter)
	if got := m.opts.Habits.List()[0].Streak; got != 1 {
		t.Fatalf("second mark on the same day changed streak to %d", got)
	}

	m = send(t, m, key("u"))
	if got := m.opts.Habits.List()[0].Streak; got != 0 {
		t.Fatalf("streak after undo = %d, want 0", got)
	}
}

func TestFlashExpires(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.flash("hello")
	if cmd == nil {
		t.Fatalf("expected a tick command")
	}
	stale := m.flashID
	_ = m.flash("newer")

	m = send(t, m, flashExpiredMsg{id: stale})
	if m.status != "newer" {
		t.Fatalf("stale expiry cleared status: %q", m.status)
	}
	m = send(t, m, flashExpiredMsg{id: m.flashID})
	if m.status != "" {
		t.Fatalf("expected status cleared, got %q", m.status)
	}
}

func TestStoreEventReloads(t *testing.T) {
	m, _ := newTestModel(t)

	events := make(chan store.Event)
	_, cmd := m.Update(storeEventMsg{ev: store.Event{Type: store.EventKeyChanged, Key: "journal-2024-03-01"}, events: events})
	if cmd == nil {
		t.Fatalf("expected reload and wait commands")
	}
}

func TestStreaksRename(t *testing.T) {
	m, _ := newTestModel(t)
	h, err := m.opts.Habits.AddHabit("Run")
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	m = send(t, m, key("s"), key("e"))
	m = typeText(t, m, "ning")
	m = send(t, m, keyEnter)

	got := m.opts.Habits.List()
	if len(got) != 1 || got[0].ID != h.ID || got[0].Name != "Running" {
		t.Fatalf("unexpected habits after rename: %+v", got)
	}
	if m.streaks.adding || m.streaks.renaming != 0 {
		t.Fatalf("rename input should be closed")
	}
}
