package styles

import (
	"github.com/allbin/go-ports/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	// Status styles
	StatusIdleStyle = lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true)

	StatusEmptyStyle = lipgloss.NewStyle().
				Foreground(colors.Yellow).
				Bold(true)

	StatusScanningStyle = lipgloss.NewStyle().
				Foreground(colors.Yellow).
				Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colors.Red).
				Bold(true)

	// Content area styles
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	// Detail pane styles
	DetailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colors.Surface2).
				Padding(0, 1)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(colors.Subtext0)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(colors.Text)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red).
			Align(lipgloss.Center)

	// Info styles
	InfoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Align(lipgloss.Center)
)

type StatusType int

const (
	StatusIdle StatusType = iota
	StatusEmpty
	StatusScanning
	StatusError
)

func GetStatusStyle(status StatusType) lipgloss.Style {
	switch status {
	case StatusIdle:
		return StatusIdleStyle
	case StatusEmpty:
		return StatusEmptyStyle
	case StatusScanning:
		return StatusScanningStyle
	case StatusError:
		return StatusErrorStyle
	default:
		return StatusErrorStyle
	}
}
