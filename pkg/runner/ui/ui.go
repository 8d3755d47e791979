package ui

import (
	"context"
	"errors"

	"tableflip.dev/aurora/pkg/habit"
	"tableflip.dev/aurora/pkg/images"
	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/logger"
	"tableflip.dev/aurora/pkg/store"
	"tableflip.dev/aurora/pkg/tui/app"
)

// UI launches the interactive journal.
type UI struct {
	Repository *journal.Repository
	Habits     *habit.Tracker
	Watcher    store.Watcher
	Assets     string
}

func (u *UI) Do(ctx context.Context) error {
	if u.Repository == nil {
		return errors.New("can not start ui, no repository")
	}
	habits := u.Habits
	if habits == nil {
		habits = habit.NewTracker()
	}
	logger.Info("starting ui", "watch", u.Watcher != nil)
	return app.Run(ctx, app.Options{
		Repository: u.Repository,
		Habits:     habits,
		Watcher:    u.Watcher,
		Pick:       u.pick,
	})
}

func (u *UI) pick(path string) images.Provider {
	return &images.FileProvider{Assets: u.Assets, Choose: images.StaticChooser(path)}
}
