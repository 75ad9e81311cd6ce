package components

import (
	"fmt"

	"github.com/allbin/go-ports/internal/tui/colors"
	"github.com/allbin/go-ports/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the single-line bar at the bottom of the browser with
// the scan state, the port count and the highlighted port.
type StatusBar struct {
	title     string
	status    styles.StatusType
	err       error
	portCount int
	width     int
	lastScan  string
}

func NewStatusBar(title string) *StatusBar {
	return &StatusBar{
		title:  title,
		status: styles.StatusScanning,
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetScanning() {
	sb.status = styles.StatusScanning
	sb.err = nil
}

func (sb *StatusBar) SetScanned(portCount int, scannedAt string) {
	sb.portCount = portCount
	sb.lastScan = scannedAt
	sb.err = nil
	if portCount == 0 {
		sb.status = styles.StatusEmpty
	} else {
		sb.status = styles.StatusIdle
	}
}

func (sb *StatusBar) SetError(err error) {
	sb.status = styles.StatusError
	sb.err = err
}

func (sb *StatusBar) statusText() string {
	switch sb.status {
	case styles.StatusScanning:
		return "Scanning..."
	case styles.StatusEmpty:
		return "No ports found"
	case styles.StatusError:
		return fmt.Sprintf("Scan failed: %v", sb.err)
	default:
		return fmt.Sprintf("%d port(s)", sb.portCount)
	}
}

// View renders the bar: title segment, status segment, highlighted port on
// the left, last scan time on the right.
func (sb *StatusBar) View(highlighted string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(colors.Base).
		Background(colors.Mauve).
		Bold(true).
		Padding(0, 1)
	title := titleStyle.Render(sb.title)

	statusStyle := styles.GetStatusStyle(sb.status).Padding(0, 1)
	status := statusStyle.Render(sb.statusText())

	dividerStyle := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1)
	divider := dividerStyle.Render("│")

	var leftSide string
	if highlighted != "" {
		portStyle := lipgloss.NewStyle().
			Foreground(colors.Peach).
			Bold(true).
			Padding(0, 1)
		leftSide = lipgloss.JoinHorizontal(lipgloss.Left,
			title, status, divider, portStyle.Render(highlighted))
	} else {
		leftSide = lipgloss.JoinHorizontal(lipgloss.Left, title, status)
	}

	var rightSide string
	if sb.lastScan != "" {
		timeStyle := lipgloss.NewStyle().
			Foreground(colors.Subtext1).
			Padding(0, 1)
		rightSide = timeStyle.Render("scanned " + sb.lastScan)
	}

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().
		Background(colors.Surface0).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide)
}
