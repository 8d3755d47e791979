package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/aurora/pkg/habit"
)

type streaksModel struct {
	tracker  *habit.Tracker
	cursor   int
	adding   bool
	renaming int // id being renamed, 0 when adding
	input    textinput.Model
}

func newStreaksModel(t *habit.Tracker) streaksModel {
	ti := textinput.New()
	ti.Placeholder = "New habit"
	ti.Prompt = "+ "
	ti.CharLimit = 64
	return streaksModel{tracker: t, input: ti}
}

func (s *streaksModel) clamp() {
	n := len(s.tracker.List())
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *streaksModel) selected() (habit.Habit, bool) {
	habits := s.tracker.List()
	if s.cursor < 0 || s.cursor >= len(habits) {
		return habit.Habit{}, false
	}
	return habits[s.cursor], true
}

// follow moves the cursor onto id after the list was re-sorted.
func (s *streaksModel) follow(id int) {
	for i, h := range s.tracker.List() {
		if h.ID == id {
			s.cursor = i
			return
		}
	}
	s.clamp()
}

func (s *streaksModel) closeInput() {
	s.adding = false
	s.renaming = 0
	s.input.Blur()
	s.input.Reset()
}

func (m Model) updateStreaks(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}
	st := &m.streaks

	if st.adding {
		switch key.String() {
		case "esc":
			st.closeInput()
			return m, nil
		case "enter":
			if st.renaming != 0 {
				h, err := st.tracker.EditHabit(st.renaming, st.input.Value())
				if err != nil {
					cmd := m.flashError(err)
					return m, cmd
				}
				st.closeInput()
				cmd := m.flash(fmt.Sprintf("Renamed to %q", h.Name))
				return m, cmd
			}
			h, err := st.tracker.AddHabit(st.input.Value())
			if err != nil {
				cmd := m.flashError(err)
				return m, cmd
			}
			st.closeInput()
			st.follow(h.ID)
			cmd := m.flash(fmt.Sprintf("Tracking %q", h.Name))
			return m, cmd
		}
		var cmd tea.Cmd
		st.input, cmd = st.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "q", "esc", "b":
		m.screen = screenJournal
		return m, nil
	case "up", "k":
		if st.cursor > 0 {
			st.cursor--
		}
	case "down", "j":
		st.cursor++
		st.clamp()
	case "a":
		st.adding = true
		st.renaming = 0
		st.input.Placeholder = "New habit"
		cmd := st.input.Focus()
		return m, cmd
	case "e":
		h, ok := st.selected()
		if !ok {
			return m, nil
		}
		st.adding = true
		st.renaming = h.ID
		st.input.Placeholder = "Habit name"
		st.input.SetValue(h.Name)
		st.input.CursorEnd()
		cmd := st.input.Focus()
		return m, cmd
	case "enter", " ":
		h, ok := st.selected()
		if !ok {
			return m, nil
		}
		if h.CompletedOn(st.tracker.Today()) {
			cmd := m.flash(fmt.Sprintf("%s is already done today", h.Name))
			return m, cmd
		}
		done, err := st.tracker.MarkDone(h.ID)
		if err != nil {
			cmd := m.flashError(err)
			return m, cmd
		}
		st.follow(done.ID)
		cmd := m.flash(fmt.Sprintf("Nice! %s streak is %d %s", done.Name, done.Streak, days(done.Streak)))
		return m, cmd
	case "u":
		h, ok := st.selected()
		if !ok {
			return m, nil
		}
		if !h.CompletedOn(st.tracker.Today()) {
			cmd := m.flash(fmt.Sprintf("%s was not done today", h.Name))
			return m, cmd
		}
		undone, err := st.tracker.UndoDone(h.ID)
		if err != nil {
			cmd := m.flashError(err)
			return m, cmd
		}
		st.follow(undone.ID)
		cmd := m.flash(fmt.Sprintf("Undid today's %s", undone.Name))
		return m, cmd
	case "x":
		h, ok := st.selected()
		if !ok {
			return m, nil
		}
		if err := st.tracker.DeleteHabit(h.ID); err != nil {
			cmd := m.flashError(err)
			return m, cmd
		}
		st.clamp()
		cmd := m.flash(fmt.Sprintf("Stopped tracking %s", h.Name))
		return m, cmd
	}
	return m, nil
}

func (m Model) viewStreaks() (string, string) {
	st := m.streaks
	th := m.theme
	today := st.tracker.Today()

	var b strings.Builder
	b.WriteString(th.Panel.Title.Render("Streaks") + "\n\n")

	habits := st.tracker.List()
	if len(habits) == 0 {
		b.WriteString(th.Panel.Dim.Render("No habits yet. Press a to add one.") + "\n")
	}
	for i, h := range habits {
		cursor := "  "
		if i == st.cursor {
			cursor = th.Panel.Cursor.Render("> ")
		}
		mark := th.Streak.Open.Render("[ ]")
		if h.CompletedOn(today) {
			mark = th.Streak.Done.Render("[x]")
		}
		count := th.Streak.Count.Render(fmt.Sprintf("%d %s", h.Streak, days(h.Streak)))
		fmt.Fprintf(&b, "%s%s %s  %s\n", cursor, mark, h.Name, count)
	}
	if st.adding {
		b.WriteString("\n" + st.input.View() + "\n")
	}

	help := "↑/↓ move • enter done • u undo • a add • e rename • x delete • esc back"
	if st.adding {
		help = "enter add • esc cancel"
		if st.renaming != 0 {
			help = "enter rename • esc cancel"
		}
	}
	return b.String(), help
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
