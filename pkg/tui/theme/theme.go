package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
	Modal  ModalTheme
	Streak StreakTheme
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Dim    lipgloss.Style
	Dirty  lipgloss.Style
	Label  lipgloss.Style
	Cursor lipgloss.Style
}

// ModalTheme styles centered modal overlays such as the leave prompt.
type ModalTheme struct {
	Frame          lipgloss.Style
	Title          lipgloss.Style
	Body           lipgloss.Style
	Option         lipgloss.Style
	OptionSelected lipgloss.Style
}

// StreakTheme styles the habit streak list.
type StreakTheme struct {
	Done  lipgloss.Style
	Open  lipgloss.Style
	Count lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	option := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true).
		Padding(0, 1)

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title:  lipgloss.NewStyle().Bold(true),
			Body:   lipgloss.NewStyle(),
			Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Dirty:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Cursor: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:          lipgloss.NewStyle().Bold(true),
			Body:           lipgloss.NewStyle(),
			Option:         option,
			OptionSelected: option.Reverse(true),
		},
		Streak: StreakTheme{
			Done:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
			Open:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Count: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
	}
}
