package write

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/store"
)

func TestWriteWithImagesAndNext(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(img, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := journal.NewRepository(store.NewMemory())
	var out bytes.Buffer
	w := Write{
		Date:         "2024-03-01",
		Text:         "Felt good",
		ImagePaths:   []string{img},
		DefaultTitle: true,
		Next:         true,
		Repository:   repo,
		Assets:       filepath.Join(dir, "assets"),
		Out:          &out,
	}
	if err := w.Do(context.Background()); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok, _ := repo.Load(context.Background(), "2024-03-01")
	if !ok || got.Title != "Journal Entry - 2024-03-01" || len(got.Images) != 1 {
		t.Fatalf("unexpected entry %+v", got)
	}
	if !strings.Contains(out.String(), "--date 2024-03-02") {
		t.Fatalf("expected next page hint, got %q", out.String())
	}
}

func TestWriteRejectsBlankTitleBeforeImport(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "photo.png")
	_ = os.WriteFile(img, []byte("png"), 0o644)
	assets := filepath.Join(dir, "assets")
	w := Write{
		Date:       "2024-03-01",
		Text:       "x",
		ImagePaths: []string{img},
		Repository: journal.NewRepository(store.NewMemory()),
		Assets:     assets,
	}
	if err := w.Do(context.Background()); !journal.IsReason(err, journal.EmptyTitle) {
		t.Fatalf("expected EmptyTitle, got %v", err)
	}
	if _, err := os.Stat(assets); !os.IsNotExist(err) {
		t.Fatal("no asset should be copied when validation fails")
	}
}
