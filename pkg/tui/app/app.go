// Package app hosts the Bubble Tea program for browsing, writing and
// tracking habits.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/aurora/pkg/habit"
	"tableflip.dev/aurora/pkg/images"
	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/logger"
	"tableflip.dev/aurora/pkg/store"
	"tableflip.dev/aurora/pkg/tui/theme"
)

type screen int

const (
	screenJournal screen = iota
	screenEditor
	screenStreaks
)

// Options wires the UI to its collaborators.
type Options struct {
	Repository *journal.Repository
	Habits     *habit.Tracker
	// Watcher, when set, refreshes the journal list on external writes.
	Watcher store.Watcher
	// Pick builds an image provider for a path typed into the editor.
	Pick func(path string) images.Provider
}

// Model contains UI state.
type Model struct {
	opts  Options
	ctx   context.Context
	theme theme.Theme

	screen screen

	entries []journal.Entry
	list    list.Model

	search    textinput.Model
	searching bool

	pendingDelete string

	editor  *editorModel
	streaks streaksModel

	status    string
	statusErr bool
	flashID   int

	termWidth  int
	termHeight int
}

// New creates a new UI model.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Habits == nil {
		opts.Habits = habit.NewTracker()
	}

	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	l := list.New([]list.Item{}, d, 80, 20)
	l.Title = "My Journals"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "Search by date or title"
	si.Prompt = "/ "
	si.CharLimit = 64

	return Model{
		opts:    opts,
		ctx:     ctx,
		theme:   theme.Default(),
		screen:  screenJournal,
		list:    l,
		search:  si,
		streaks: newStreaksModel(opts.Habits),
	}
}

// Init loads initial data.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.startWatch())
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
		return m, nil
	case errMsg:
		logger.Error("ui error", "err", msg.err)
		cmd := m.flashError(msg.err)
		return m, cmd
	case entriesLoadedMsg:
		m.entries = msg.entries
		m.applyFilter()
		return m, nil
	case watchStartedMsg:
		return m, waitForEvent(msg.events)
	case storeEventMsg:
		logger.Debug("store changed", "key", msg.ev.Key)
		return m, tea.Batch(m.reload(), waitForEvent(msg.events))
	case watchClosedMsg:
		return m, nil
	case flashExpiredMsg:
		if msg.id == m.flashID {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenEditor:
		return m.updateEditor(msg)
	case screenStreaks:
		return m.updateStreaks(msg)
	default:
		return m.updateJournal(msg)
	}
}

// View renders the active screen with the status footer.
func (m Model) View() string {
	var body, help string
	switch m.screen {
	case screenEditor:
		body, help = m.viewEditor()
	case screenStreaks:
		body, help = m.viewStreaks()
	default:
		body, help = m.viewJournal()
	}

	status := m.theme.Footer.Status.Render(m.status)
	if m.statusErr {
		status = m.theme.Footer.Error.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		"",
		status,
		m.theme.Footer.Help.Render(help),
	)
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

// applySizes recalculates component sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	// Leave room for search, status and help lines.
	height := m.termHeight - 5
	if height < 5 {
		height = 5
	}
	m.list.SetSize(m.termWidth, height)
	m.search.Width = m.termWidth - 4
	if m.editor != nil {
		m.editor.resize(m.termWidth, m.termHeight)
	}
}
