// Package editor round-trips an entry's title and text through the user's
// text editor.
package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	titleHeader = "--- title ---"
	textHeader  = "--- text ---"
)

// Fallbacks are tried in order when neither $VISUAL nor $EDITOR is set.
var Fallbacks = []string{"nano", "vim", "vi"}

// Open writes title and text to a temp file, runs the editor on it and
// parses the result.
func Open(ctx context.Context, date, title, text string) (string, string, error) {
	file, err := os.CreateTemp("", "aurora-"+date+"-*.md")
	if err != nil {
		return "", "", err
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.WriteString(Render(date, title, text)); err != nil {
		_ = file.Close()
		return "", "", err
	}
	if err := file.Close(); err != nil {
		return "", "", err
	}

	bin, args, err := lookup()
	if err != nil {
		return "", "", err
	}
	cmd := exec.CommandContext(ctx, bin, append(args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", "", fmt.Errorf("editor: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	newTitle, newText := Parse(string(data))
	return newTitle, newText, nil
}

func lookup() (string, []string, error) {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			bin, err := exec.LookPath(fields[0])
			if err == nil {
				return bin, fields[1:], nil
			}
		}
	}
	for _, e := range Fallbacks {
		if bin, err := exec.LookPath(e); err == nil {
			return bin, nil, nil
		}
	}
	return "", nil, fmt.Errorf("editor: no editor found, set $EDITOR")
}

// Render builds the editable template. Parse(Render(d, title, text))
// returns title and text unchanged.
func Render(date, title, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Journal for %s. Lines starting with // above the title are ignored.\n", date)
	b.WriteString("// Title is one line, at most 50 characters.\n\n")
	b.WriteString(titleHeader + "\n")
	b.WriteString(title + "\n")
	b.WriteString(textHeader + "\n")
	b.WriteString(text + "\n")
	return b.String()
}

// Parse reads a template back. Comment lines are only dropped before the
// title header; everything after the text header is kept as written, minus
// the final newline. Without headers the file after its leading comments is
// the text.
func Parse(content string) (string, string) {
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	titleIdx, textIdx := -1, -1
	for i, ln := range lines {
		if ln == titleHeader {
			titleIdx = i
			break
		}
		if ln == textHeader {
			break
		}
	}
	for i := titleIdx + 1; i < len(lines); i++ {
		if lines[i] == textHeader {
			textIdx = i
			break
		}
	}

	var title, text string
	switch {
	case textIdx != -1:
		if titleIdx != -1 {
			title = strings.Join(lines[titleIdx+1:textIdx], " ")
		}
		text = strings.Join(lines[textIdx+1:], "\n")
	default:
		start := 0
		for start < len(lines) && isPreamble(lines[start]) {
			start++
		}
		text = strings.Join(lines[start:], "\n")
	}
	return strings.TrimSpace(title), strings.TrimSuffix(text, "\n")
}

func isPreamble(line string) bool {
	ln := strings.TrimSpace(line)
	return ln == "" || strings.HasPrefix(ln, "//")
}
