// Package images is the boundary to whatever supplies pictures for an entry.
package images

import (
	"context"
	"errors"
)

var (
	// ErrPermissionDenied means access to the image source was refused.
	ErrPermissionDenied = errors.New("images: permission denied")
	// ErrUnavailable means the source does not exist on this device.
	ErrUnavailable = errors.New("images: source unavailable")
)

// Result is the outcome of a pick or capture. A cancelled result carries no
// reference and is not an error.
type Result struct {
	Ref       string
	Cancelled bool
}

// Cancelled is the result of a dismissed picker.
func Cancelled() Result {
	return Result{Cancelled: true}
}

// Provider supplies image references.
type Provider interface {
	PickFromLibrary(ctx context.Context) (Result, error)
	CaptureFromCamera(ctx context.Context) (Result, error)
}

// PickWithFallback captures from the camera and falls back to the library
// when the camera is unavailable.
func PickWithFallback(ctx context.Context, p Provider) (Result, error) {
	res, err := p.CaptureFromCamera(ctx)
	if errors.Is(err, ErrUnavailable) {
		return p.PickFromLibrary(ctx)
	}
	return res, err
}
