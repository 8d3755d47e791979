package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/aurora/pkg/images"
	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/session"
)

type editorMode int

const (
	editorEditing editorMode = iota
	editorLeaving
	editorImagePath
)

const (
	focusTitle = iota
	focusBody
)

type editorModel struct {
	session *session.Session
	isNew   bool

	mode   editorMode
	focus  int
	choice int

	title textinput.Model
	body  textarea.Model
	path  textinput.Model
}

func newEditorModel(s *session.Session, isNew bool) *editorModel {
	draft := s.Draft()

	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.Prompt = ""
	ti.CharLimit = journal.MaxTitleLength
	ti.SetValue(draft.Title)
	ti.CursorEnd()

	ta := textarea.New()
	ta.Placeholder = "Write about your day"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetValue(draft.Text)

	pi := textinput.New()
	pi.Placeholder = "Path to an image file"
	pi.Prompt = "image: "

	return &editorModel{
		session: s,
		isNew:   isNew,
		title:   ti,
		body:    ta,
		path:    pi,
	}
}

func (e *editorModel) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.title.Width = width - 4
	e.path.Width = width - 12
	e.body.SetWidth(width - 2)
	h := height - 12
	if h < 3 {
		h = 3
	}
	e.body.SetHeight(h)
}

func (e *editorModel) focusCmd() tea.Cmd {
	if e.focus == focusTitle {
		e.body.Blur()
		return e.title.Focus()
	}
	e.title.Blur()
	return e.body.Focus()
}

// sync pushes the input values into the session draft.
func (e *editorModel) sync() error {
	if err := e.session.SetTitle(e.title.Value()); err != nil {
		return err
	}
	return e.session.SetText(e.body.Value())
}

func (m Model) openEditor(date string) (tea.Model, tea.Cmd) {
	e, ok, err := m.opts.Repository.Load(m.ctx, date)
	if err != nil {
		cmd := m.flashError(err)
		return m, cmd
	}
	if !ok {
		e = journal.Entry{Date: date, Images: []string{}}
	}
	m.editor = newEditorModel(session.New(m.opts.Repository, e), !ok)
	m.editor.resize(m.termWidth, m.termHeight)
	m.screen = screenEditor
	return m, m.editor.focusCmd()
}

// closeEditor finishes the session and returns to the journal list.
func (m *Model) closeEditor() tea.Cmd {
	if m.editor != nil {
		m.editor.session.Close()
	}
	m.editor = nil
	m.screen = screenJournal
	return m.reload()
}

func (m Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	ed := m.editor
	if ed == nil {
		m.screen = screenJournal
		return m, nil
	}
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		if ed.mode == editorEditing && ed.focus == focusBody {
			ed.body, cmd = ed.body.Update(msg)
		}
		return m, cmd
	}

	switch ed.mode {
	case editorLeaving:
		return m.updateLeavePrompt(key)
	case editorImagePath:
		return m.updateImagePath(key)
	}

	switch key.String() {
	case "esc":
		return m.leaveEditor()
	case "ctrl+s":
		return m.saveEditor()
	case "tab", "shift+tab":
		if ed.focus == focusTitle {
			ed.focus = focusBody
		} else {
			ed.focus = focusTitle
		}
		return m, ed.focusCmd()
	case "ctrl+o":
		ed.mode = editorImagePath
		ed.path.Reset()
		return m, ed.path.Focus()
	case "ctrl+x":
		n := len(ed.session.Draft().Images)
		if n == 0 {
			cmd := m.flash("No photos to remove")
			return m, cmd
		}
		if err := ed.session.RemoveImage(n - 1); err != nil {
			cmd := m.flashError(err)
			return m, cmd
		}
		cmd := m.flash("Removed last photo")
		return m, cmd
	}

	var cmd tea.Cmd
	if ed.focus == focusTitle {
		if key.String() == "enter" {
			ed.focus = focusBody
			return m, ed.focusCmd()
		}
		ed.title, cmd = ed.title.Update(msg)
	} else {
		ed.body, cmd = ed.body.Update(msg)
	}
	if err := ed.sync(); err != nil {
		batch := tea.Batch(cmd, m.flashError(err))
		return m, batch
	}
	return m, cmd
}

// leaveEditor runs the leave guard for every back trigger.
func (m Model) leaveEditor() (tea.Model, tea.Cmd) {
	ed := m.editor
	if d := ed.session.CanLeave(); d.NeedsConfirmation() {
		ed.mode = editorLeaving
		ed.choice = 0
		return m, nil
	}
	if _, err := ed.session.Back(m.ctx, session.ChoiceNone); err != nil {
		cmd := m.flashError(err)
		return m, cmd
	}
	cmd := m.closeEditor()
	return m, cmd
}

func (m Model) updateLeavePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.editor
	n := len(session.Options)
	choice := session.ChoiceNone
	switch key.String() {
	case "left", "h", "shift+tab", "up", "k":
		ed.choice = (ed.choice + n - 1) % n
		return m, nil
	case "right", "l", "tab", "down", "j":
		ed.choice = (ed.choice + 1) % n
		return m, nil
	case "esc":
		choice = session.KeepEditing
	case "d":
		choice = session.Discard
	case "s":
		choice = session.SaveAndExit
	case "enter":
		choice = session.Options[ed.choice]
	default:
		return m, nil
	}

	outcome, err := ed.session.Back(m.ctx, choice)
	ed.mode = editorEditing
	if err != nil {
		cmd := tea.Batch(ed.focusCmd(), m.flashError(err))
		return m, cmd
	}
	if outcome == session.Stay {
		return m, ed.focusCmd()
	}
	date := ed.session.Draft().Date
	closeCmd := m.closeEditor()
	if choice == session.SaveAndExit {
		cmd := tea.Batch(closeCmd, m.flash("Saved "+date))
		return m, cmd
	}
	if choice == session.Discard {
		cmd := tea.Batch(closeCmd, m.flash("Changes discarded"))
		return m, cmd
	}
	return m, closeCmd
}

func (m Model) saveEditor() (tea.Model, tea.Cmd) {
	ed := m.editor
	if err := ed.sync(); err != nil {
		cmd := m.flashError(err)
		return m, cmd
	}
	if err := ed.session.Save(m.ctx); err != nil {
		cmd := m.flashError(err)
		return m, cmd
	}
	date := ed.session.Draft().Date
	closeCmd := m.closeEditor()
	cmd := tea.Batch(closeCmd, m.flash("Saved "+date))
	return m, cmd
}

func (m Model) updateImagePath(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.editor
	switch key.String() {
	case "esc":
		ed.mode = editorEditing
		ed.path.Blur()
		return m, ed.focusCmd()
	case "enter":
		path := strings.TrimSpace(ed.path.Value())
		ed.mode = editorEditing
		ed.path.Blur()
		focus := ed.focusCmd()
		if m.opts.Pick == nil {
			cmd := tea.Batch(focus, m.flashError(images.ErrUnavailable))
			return m, cmd
		}
		res, err := images.PickWithFallback(m.ctx, m.opts.Pick(path))
		switch {
		case errors.Is(err, images.ErrPermissionDenied):
			cmd := tea.Batch(focus, m.flash("Permission to read that photo was denied"))
			return m, cmd
		case errors.Is(err, images.ErrUnavailable):
			cmd := tea.Batch(focus, m.flash("No photo source is available"))
			return m, cmd
		case err != nil:
			cmd := tea.Batch(focus, m.flashError(err))
			return m, cmd
		}
		if res.Cancelled {
			return m, focus
		}
		if err := ed.session.ApplyPick(res); err != nil {
			cmd := tea.Batch(focus, m.flashError(err))
			return m, cmd
		}
		cmd := tea.Batch(focus, m.flash("Photo added"))
		return m, cmd
	}
	var cmd tea.Cmd
	ed.path, cmd = ed.path.Update(key)
	return m, cmd
}

func (m Model) viewEditor() (string, string) {
	ed := m.editor
	if ed == nil {
		return "", ""
	}
	t := m.theme.Panel
	draft := ed.session.Draft()

	heading := "Edit " + draft.Date
	if ed.isNew {
		heading = "New entry " + draft.Date
	}
	header := t.Title.Render(heading)
	if ed.session.Dirty() {
		header += " " + t.Dirty.Render("(unsaved)")
	}

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(t.Label.Render("Title") + "\n")
	b.WriteString(ed.title.View() + "\n\n")
	b.WriteString(t.Label.Render("Text") + "\n")
	b.WriteString(ed.body.View() + "\n")

	if len(draft.Images) > 0 {
		b.WriteString("\n" + t.Label.Render("Photos") + "\n")
		for i, ref := range draft.Images {
			b.WriteString(t.Dim.Render(fmt.Sprintf("  %d. %s", i+1, ref)) + "\n")
		}
	}
	if ed.mode == editorImagePath {
		b.WriteString("\n" + ed.path.View() + "\n")
	}

	body := b.String()
	if ed.mode == editorLeaving {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.viewLeavePrompt())
	}

	help := "tab switch field • ctrl+s save • ctrl+o add photo • ctrl+x remove photo • esc back"
	switch ed.mode {
	case editorLeaving:
		help = "←/→ choose • enter confirm • d discard • s save & exit • esc keep editing"
	case editorImagePath:
		help = "enter add • esc cancel"
	}
	return body, help
}

func (m Model) viewLeavePrompt() string {
	mt := m.theme.Modal
	opts := make([]string, 0, len(session.Options))
	for i, c := range session.Options {
		style := mt.Option
		if i == m.editor.choice {
			style = mt.OptionSelected
		}
		opts = append(opts, style.Render(c.String()))
	}
	return mt.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		mt.Title.Render("Unsaved changes"),
		mt.Body.Render("You have unsaved changes. What would you like to do?"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, opts...),
	))
}
