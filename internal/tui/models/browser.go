package models

import (
	"strings"
	"time"

	"github.com/allbin/go-ports"
	"github.com/allbin/go-ports/internal/tui/components"
	"github.com/allbin/go-ports/internal/tui/keys"
	"github.com/allbin/go-ports/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ScanResultMsg delivers a completed port scan to the browser.
type ScanResultMsg struct {
	Ports []ports.PortInfo
	Err   error
	At    time.Time
}

// Browser is the interactive port browser: a table of enumerated ports
// with a filter, an optional detail pane and a status bar.
type Browser struct {
	table     *components.PortsTable
	statusBar *components.StatusBar
	detail    *components.Detail
	filter    textinput.Model
	keys      keys.BrowseKeys
	help      help.Model

	allPorts   []ports.PortInfo
	filtering  bool
	showDetail bool
	ready      bool
	width      int
	height     int
}

func NewBrowser() *Browser {
	filter := textinput.New()
	filter.Placeholder = "filter by name, serial or description"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	return &Browser{
		table:     components.NewPortsTable(80),
		statusBar: components.NewStatusBar("ports"),
		detail:    components.NewDetail(),
		filter:    filter,
		keys:      keys.NewBrowseKeys(),
		help:      help.New(),
	}
}

func (m *Browser) Init() tea.Cmd {
	return scanPorts
}

// scanPorts runs a full enumeration off the update loop. Records are
// cloned because they alias enumerator internals.
func scanPorts() tea.Msg {
	e, err := ports.NewEnumerator()
	if err != nil {
		return ScanResultMsg{Err: err, At: time.Now()}
	}
	defer e.Close()

	var infos []ports.PortInfo
	for e.Next() {
		infos = append(infos, *e.Port().Clone())
	}
	return ScanResultMsg{Ports: infos, Err: e.Err(), At: time.Now()}
}

func (m *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.table.SetSize(msg.Width, msg.Height-5)
		m.statusBar.SetWidth(msg.Width)
		m.detail.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case ScanResultMsg:
		if msg.Err != nil {
			m.statusBar.SetError(msg.Err)
			return m, nil
		}
		m.allPorts = msg.Ports
		m.applyFilter()
		m.statusBar.SetScanned(len(msg.Ports), msg.At.Format("15:04:05"))
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.statusBar.SetScanning()
			return m, scanPorts
		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, m.filter.Focus()
		case key.Matches(msg, m.keys.Escape):
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		case key.Matches(msg, m.keys.Detail):
			m.showDetail = !m.showDetail
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, m.table.Update(msg)
}

// updateFiltering handles keys while the filter input has focus. The table
// contents track the input live; enter keeps the filter, escape drops it.
func (m *Browser) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter narrows the table to ports matching the filter text by
// case-insensitive substring on name, serial and description.
func (m *Browser) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.table.SetPorts(m.allPorts)
		return
	}

	var filtered []ports.PortInfo
	for _, info := range m.allPorts {
		if strings.Contains(strings.ToLower(info.PortName), query) ||
			strings.Contains(strings.ToLower(info.SerialNumber), query) ||
			strings.Contains(strings.ToLower(info.Description), query) {
			filtered = append(filtered, info)
		}
	}
	m.table.SetPorts(filtered)
}

func (m *Browser) View() string {
	if !m.ready {
		return styles.InfoStyle.Render("Scanning for serial ports...")
	}

	sections := []string{m.table.View()}

	if m.filtering || m.filter.Value() != "" {
		sections = append(sections, m.filter.View())
	}

	highlighted := m.table.Highlighted()
	if m.showDetail && highlighted != nil {
		sections = append(sections, m.detail.View(highlighted))
	}

	highlightedName := ""
	if highlighted != nil {
		highlightedName = highlighted.PortName
	}
	sections = append(sections, m.statusBar.View(highlightedName))
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
