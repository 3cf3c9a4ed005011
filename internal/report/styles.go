package report

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(16)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	// Spring colors: red while shorter than rest length, green otherwise.
	Compressed = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	Stretched  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
)

func SpringStyle(compressed bool) lipgloss.Style {
	if compressed {
		return Compressed
	}
	return Stretched
}
