// Package prompt holds the interactive terminal prompts used by the CLI.
package prompt

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/aurora/pkg/journal"
	"tableflip.dev/aurora/pkg/session"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

type leaveItem struct {
	Choice session.Choice
	Label  string
	Help   string
}

func describe(c session.Choice) string {
	switch c {
	case session.Discard:
		return "leave without saving"
	case session.SaveAndExit:
		return "save the entry, then leave"
	case session.KeepEditing:
		return "go back to the entry"
	}
	return ""
}

// Leave asks what to do with unsaved changes.
func Leave(in io.ReadCloser, out io.WriteCloser, options []session.Choice) (session.Choice, error) {
	items := make([]leaveItem, 0, len(options))
	for _, c := range options {
		items = append(items, leaveItem{Choice: c, Label: c.String(), Help: describe(c)})
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "➜  {{ .Label | bold }} {{ .Help | faint }}",
		Inactive: "   {{ .Label }} {{ .Help | faint }}",
		Selected: "{{ .Label | bold }}",
	}

	p := promptui.Select{
		HideHelp:  true,
		Label:     "Unsaved changes. Do you want to save your changes before leaving?",
		Items:     items,
		Templates: templates,
		Stdin:     in,
		Stdout:    out,
	}
	i, _, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return session.ChoiceNone, ErrAborted
		}
		return session.ChoiceNone, err
	}
	return items[i].Choice, nil
}

// ImagePath asks for the path of an image to attach. An empty answer cancels.
func ImagePath(in io.ReadCloser, out io.WriteCloser) (string, error) {
	p := promptui.Prompt{
		Label:  "Image path (empty to cancel)",
		Stdin:  in,
		Stdout: out,
	}
	path, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(path), nil
}

// Entry lets the user pick one of entries. Typing "/" filters the list the
// same way the journal search does.
func Entry(in io.ReadCloser, out io.WriteCloser, entries []journal.Entry) (journal.Entry, error) {
	if len(entries) == 0 {
		return journal.Entry{}, errors.New("prompt: no entries to choose from")
	}
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "➜  {{ .Date | bold }} {{ .Title }}",
		Inactive: "   {{ .Date }} {{ .Title | faint }}",
		Selected: "{{ .Date | bold }} {{ .Title }}",
	}

	p := promptui.Select{
		Label:     "Which entry?",
		Items:     entries,
		Templates: templates,
		Size:      10,
		Searcher: func(input string, index int) bool {
			return len(journal.Search(input, entries[index:index+1])) == 1
		},
		Stdin:  in,
		Stdout: out,
	}
	i, _, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return journal.Entry{}, ErrAborted
		}
		return journal.Entry{}, err
	}
	return entries[i], nil
}

// NopCloser wraps a writer for promptui, which wants an io.WriteCloser.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
