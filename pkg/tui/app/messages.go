package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/store"
)

// flashTTL is how long a status message stays on screen.
const flashTTL = 3 * time.Second

type errMsg struct{ err error }
type entriesLoadedMsg struct{ entries []journal.Entry }
type watchStartedMsg struct{ events <-chan store.Event }
type storeEventMsg struct {
	ev     store.Event
	events <-chan store.Event
}
type watchClosedMsg struct{}
type flashExpiredMsg struct{ id int }

// flash replaces the status line and schedules its removal.
func (m *Model) flash(text string) tea.Cmd {
	m.flashID++
	m.status = text
	m.statusErr = false
	id := m.flashID
	return tea.Tick(flashTTL, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}

func (m *Model) flashError(err error) tea.Cmd {
	cmd := m.flash(err.Error())
	m.statusErr = true
	return cmd
}

func (m *Model) reload() tea.Cmd {
	repo := m.opts.Repository
	ctx := m.ctx
	return func() tea.Msg {
		if repo == nil {
			return entriesLoadedMsg{}
		}
		entries, err := repo.ListAll(ctx)
		if err != nil {
			return errMsg{err}
		}
		return entriesLoadedMsg{entries: entries}
	}
}

func (m *Model) startWatch() tea.Cmd {
	w := m.opts.Watcher
	if w == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		events, err := w.Watch(ctx)
		if err != nil {
			return errMsg{err}
		}
		return watchStartedMsg{events: events}
	}
}

func waitForEvent(events <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return storeEventMsg{ev: ev, events: events}
	}
}
