package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/aurora/pkg/logger"
)

// Chooser asks the user for a file path. An empty answer cancels the pick.
type Chooser func(ctx context.Context) (string, error)

// FileProvider picks images from the local filesystem and copies them into
// the assets directory so entries keep working if the original moves.
type FileProvider struct {
	Assets string
	Choose Chooser
}

var _ Provider = (*FileProvider)(nil)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".heic": true,
	".webp": true,
}

// StaticChooser always answers with path.
func StaticChooser(path string) Chooser {
	return func(context.Context) (string, error) {
		return path, nil
	}
}

func (p *FileProvider) PickFromLibrary(ctx context.Context) (Result, error) {
	if p.Choose == nil {
		return Result{}, ErrUnavailable
	}
	path, err := p.Choose(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Cancelled(), nil
		}
		return Result{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Cancelled(), nil
	}
	ref, err := p.Import(ctx, path)
	if err != nil {
		return Result{}, err
	}
	return Result{Ref: ref}, nil
}

// CaptureFromCamera always fails: a terminal has no camera.
func (p *FileProvider) CaptureFromCamera(context.Context) (Result, error) {
	return Result{}, ErrUnavailable
}

// Import copies the image at path into the assets directory and returns its
// file:// reference.
func (p *FileProvider) Import(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("images: %s is not a supported image", path)
	}
	src, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return "", fmt.Errorf("images: open %s: %w", path, err)
	}
	defer src.Close()

	if err := os.MkdirAll(p.Assets, 0o755); err != nil {
		return "", fmt.Errorf("images: ensure assets: %w", err)
	}
	target := filepath.Join(p.Assets, uuid.NewString()+ext)
	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("images: create %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("images: copy %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("images: close %s: %w", target, err)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	logger.Debug("imported image", "from", path, "to", abs)
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
