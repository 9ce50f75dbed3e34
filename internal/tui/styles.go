package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the text styles used for console output.
type Styles struct {
	Header  lipgloss.Style
	Rule    lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Notice  lipgloss.Style
}

// NewStyles returns the console styles. With color disabled every style
// renders its input unchanged.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Header:  plain,
			Rule:    plain,
			Label:   plain,
			Success: plain,
			Failure: plain,
			Notice:  plain,
		}
	}
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		Rule: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
		Label: lipgloss.NewStyle().
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		Failure: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"}),
	}
}
