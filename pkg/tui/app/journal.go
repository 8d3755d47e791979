package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/printers"
)

// entryItem adapts a journal entry for the list component.
type entryItem struct{ e journal.Entry }

func (it entryItem) Title() string {
	return fmt.Sprintf("%s  %s", it.e.Date, it.e.Title)
}

func (it entryItem) Description() string {
	desc := printers.Preview(it.e.Text)
	if n := len(it.e.Images); n > 0 {
		desc = fmt.Sprintf("%s [%d photo%s]", desc, n, plural(n))
	}
	return desc
}

func (it entryItem) FilterValue() string { return it.e.Date + " " + it.e.Title }

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// applyFilter rebuilds the visible list from the loaded corpus and query.
func (m *Model) applyFilter() {
	found := journal.Search(m.search.Value(), m.entries)
	items := make([]list.Item, 0, len(found))
	for _, e := range found {
		items = append(items, entryItem{e: e})
	}
	m.list.SetItems(items)
	if q := strings.TrimSpace(m.search.Value()); q != "" {
		m.list.Title = fmt.Sprintf("My Journals (%d matching %q)", len(items), q)
	} else {
		m.list.Title = "My Journals"
	}
}

func (m *Model) selectedEntry() (journal.Entry, bool) {
	if len(m.list.Items()) == 0 {
		return journal.Entry{}, false
	}
	it, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return journal.Entry{}, false
	}
	return it.e, true
}

func (m Model) updateJournal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if m.pendingDelete != "" {
		date := m.pendingDelete
		m.pendingDelete = ""
		if key.String() != "y" {
			cmd := m.flash("Delete cancelled")
			return m, cmd
		}
		if err := m.opts.Repository.Delete(m.ctx, date); err != nil {
			cmd := m.flashError(err)
			return m, cmd
		}
		cmd := tea.Batch(m.flash("Deleted "+date), m.reload())
		return m, cmd
	}

	if m.searching {
		switch key.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.Reset()
			m.applyFilter()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case "esc":
		if m.search.Value() != "" {
			m.search.Reset()
			m.applyFilter()
		}
		return m, nil
	case "enter":
		if e, ok := m.selectedEntry(); ok {
			return m.openEditor(e.Date)
		}
		return m, nil
	case "n":
		return m.openEditor(journal.Today())
	case "x":
		if e, ok := m.selectedEntry(); ok {
			m.pendingDelete = e.Date
			m.status = fmt.Sprintf("Delete %s? (y/N)", e.Date)
			m.statusErr = false
		}
		return m, nil
	case "s":
		m.opts.Habits.Start()
		m.screen = screenStreaks
		m.streaks.clamp()
		return m, nil
	case "r":
		return m, m.reload()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) viewJournal() (string, string) {
	body := m.list.View()
	if m.searching || m.search.Value() != "" {
		body = m.search.View() + "\n" + body
	}
	if len(m.list.Items()) == 0 {
		empty := "No entries yet. Press n to write today's page."
		if m.search.Value() != "" {
			empty = "Nothing matches."
		}
		body += "\n" + m.theme.Panel.Dim.Render(empty)
	}
	help := "↑/↓ move • enter open • n write today • / search • x delete • s streaks • r refresh • q quit"
	if m.searching {
		help = "type to filter • enter keep • esc clear"
	}
	return body, help
}
