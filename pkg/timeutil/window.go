package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is the fallback window used when none is provided.
	DefaultWindow = "1w"

	dayLayout = "2006-01-02"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	dayUnits      = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
	monthUnits = map[string]int{
		"mo":     1,
		"mon":    1,
		"month":  1,
		"months": 1,
		"y":      12,
		"yr":     12,
		"yrs":    12,
		"year":   12,
		"years":  12,
	}
)

// Window is a span of calendar days counted back from today. Months are kept
// apart from days so "1mo" follows the calendar.
type Window struct {
	Months int
	Days   int
}

// ParseWindow parses a human-friendly window (for example "1w", "3d", or
// "1mo2w") and returns it along with a canonical, compact representation.
// When the input is empty, the default window of one week is used.
func ParseWindow(input string) (Window, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultWindow
	}

	remaining := strings.ToLower(trimmed)
	var w Window
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Window{}, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		valueStr := matches[1]
		unitStr := matches[2]

		value, err := strconv.Atoi(valueStr)
		if err != nil {
			return Window{}, "", fmt.Errorf("invalid window value %q: %w", valueStr, err)
		}
		if days, ok := dayUnits[unitStr]; ok {
			w.Days += value * days
		} else if months, ok := monthUnits[unitStr]; ok {
			w.Months += value * months
		} else {
			return Window{}, "", fmt.Errorf("unsupported window unit %q", unitStr)
		}

		remaining = remaining[len(matches[0]):]
	}

	if w.Months <= 0 && w.Days <= 0 {
		return Window{}, "", fmt.Errorf("window must be greater than zero")
	}

	return w, FormatWindow(w), nil
}

// FormatWindow renders a window using year/month/week/day tokens.
func FormatWindow(w Window) string {
	var parts []string
	if y := w.Months / 12; y > 0 {
		parts = append(parts, fmt.Sprintf("%dy", y))
	}
	if mo := w.Months % 12; mo > 0 {
		parts = append(parts, fmt.Sprintf("%dmo", mo))
	}
	if wk := w.Days / 7; wk > 0 {
		parts = append(parts, fmt.Sprintf("%dw", wk))
	}
	if d := w.Days % 7; d > 0 {
		parts = append(parts, fmt.Sprintf("%dd", d))
	}
	if len(parts) == 0 {
		return "0d"
	}
	return strings.Join(parts, "")
}

// Since is the first YYYY-MM-DD date inside the window ending on now.
func (w Window) Since(now time.Time) string {
	return now.AddDate(0, -w.Months, -w.Days).Format(dayLayout)
}
