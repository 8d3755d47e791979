package images

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileProviderImports(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sunrise.JPG")
	if err := os.WriteFile(src, []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	assets := filepath.Join(dir, "assets")
	p := &FileProvider{Assets: assets, Choose: StaticChooser(src)}

	res, err := p.PickFromLibrary(context.Background())
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if res.Cancelled || !strings.HasPrefix(res.Ref, "file://") || !strings.HasSuffix(res.Ref, ".jpg") {
		t.Fatalf("unexpected result %+v", res)
	}
	files, _ := os.ReadDir(assets)
	if len(files) != 1 {
		t.Fatalf("expected one asset, got %d", len(files))
	}
}

func TestFileProviderCancel(t *testing.T) {
	p := &FileProvider{Assets: t.TempDir(), Choose: StaticChooser("  ")}
	res, err := p.PickFromLibrary(context.Background())
	if err != nil || !res.Cancelled {
		t.Fatalf("expected cancellation, got %+v %v", res, err)
	}
}

func TestFileProviderRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	_ = os.WriteFile(src, []byte("x"), 0o644)
	p := &FileProvider{Assets: dir, Choose: StaticChooser(src)}
	if _, err := p.PickFromLibrary(context.Background()); err == nil {
		t.Fatal("expected error for non image")
	}
}

type cameraless struct {
	FileProvider
	picked bool
}

func (c *cameraless) PickFromLibrary(ctx context.Context) (Result, error) {
	c.picked = true
	return Result{Ref: "file:///lib.png"}, nil
}

func TestPickWithFallback(t *testing.T) {
	c := &cameraless{}
	if _, err := c.CaptureFromCamera(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable camera, got %v", err)
	}
	res, err := PickWithFallback(context.Background(), c)
	if err != nil || res.Ref != "file:///lib.png" || !c.picked {
		t.Fatalf("expected library fallback, got %+v %v", res, err)
	}
}
