package edit

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/session"
	"tableflip.dev/aurora/pkg/store"
)

func seeded(t *testing.T) *journal.Repository {
	t.Helper()
	repo := journal.NewRepository(store.NewMemory())
	if err := repo.Save(context.Background(), journal.Entry{Date: "2024-03-01", Title: "Morning", Text: "A", Images: []string{"uri1"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func answer(choices ...session.Choice) (Confirm, *int) {
	calls := 0
	return func(options []session.Choice) (session.Choice, error) {
		c := choices[calls]
		calls++
		return c, nil
	}, &calls
}

func str(s string) *string { return &s }

func TestEditDiscardKeepsStore(t *testing.T) {
	repo := seeded(t)
	confirm, calls := answer(session.Discard)
	var out bytes.Buffer
	e := Edit{Date: "2024-03-01", Text: str("B"), Repository: repo, Confirm: confirm, Out: &out}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, _, _ := repo.Load(context.Background(), "2024-03-01")
	if got.Text != "A" || *calls != 1 {
		t.Fatalf("expected A kept after one prompt, got %q (%d prompts)", got.Text, *calls)
	}
	if !strings.Contains(out.String(), "discarded") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestEditSaveAndExit(t *testing.T) {
	repo := seeded(t)
	confirm, _ := answer(session.SaveAndExit)
	e := Edit{Date: "2024-03-01", Text: str("B"), RemoveImages: []int{0}, Repository: repo, Confirm: confirm}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, _, _ := repo.Load(context.Background(), "2024-03-01")
	if got.Text != "B" || len(got.Images) != 0 {
		t.Fatalf("expected saved edit, got %+v", got)
	}
}

func TestEditCleanLeavesWithoutPrompt(t *testing.T) {
	repo := seeded(t)
	confirm, calls := answer()
	e := Edit{Date: "2024-03-01", Text: str("A"), Repository: repo, Confirm: confirm}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if *calls != 0 {
		t.Fatalf("clean session should not prompt, got %d", *calls)
	}
}

func TestEditKeepEditingThenSave(t *testing.T) {
	repo := seeded(t)
	confirm, calls := answer(session.KeepEditing, session.SaveAndExit)
	editorRuns := 0
	editor := func(_ context.Context, date, title, text string) (string, string, error) {
		editorRuns++
		return title, text + "!", nil
	}
	e := Edit{Date: "2024-03-01", Repository: repo, Confirm: confirm, Editor: editor}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, _, _ := repo.Load(context.Background(), "2024-03-01")
	if got.Text != "A!!" || editorRuns != 2 || *calls != 2 {
		t.Fatalf("unexpected result %q, editor runs %d, prompts %d", got.Text, editorRuns, *calls)
	}
}

func TestEditValidationFailureWithoutEditor(t *testing.T) {
	repo := seeded(t)
	confirm, _ := answer(session.SaveAndExit)
	e := Edit{Date: "2024-03-01", Title: str(""), Repository: repo, Confirm: confirm}
	if err := e.Do(context.Background()); !journal.IsReason(err, journal.EmptyTitle) {
		t.Fatalf("expected EmptyTitle, got %v", err)
	}
	got, _, _ := repo.Load(context.Background(), "2024-03-01")
	if got.Title != "Morning" {
		t.Fatalf("store should be unchanged, got %+v", got)
	}
}
