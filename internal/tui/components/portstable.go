package components

import (
	"fmt"

	"github.com/allbin/go-ports"
	"github.com/allbin/go-ports/internal/tui/colors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

const (
	columnKeyPort   = "port"
	columnKeyVID    = "vid"
	columnKeyPID    = "pid"
	columnKeySerial = "serial"
	columnKeyDesc   = "description"
)

// PortsTable displays enumerated ports in a scrollable table, keeping the
// full identity record of each row for the detail pane.
type PortsTable struct {
	table table.Model
	infos []ports.PortInfo
}

func NewPortsTable(width int) *PortsTable {
	if width < 80 {
		width = 80
	}

	columns := []table.Column{
		table.NewColumn(columnKeyPort, "Port", 18),
		table.NewColumn(columnKeyVID, "VID", 6),
		table.NewColumn(columnKeyPID, "PID", 6),
		table.NewColumn(columnKeySerial, "Serial", 16),
		table.NewFlexColumn(columnKeyDesc, "Description", 1),
	}

	t := table.New(columns).
		Focused(true).
		WithTargetWidth(width).
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(colors.Text).
			BorderForeground(colors.Surface1))

	return &PortsTable{table: t}
}

// SetPorts replaces the table contents. The slice is retained so the
// highlighted row can be resolved back to its full record.
func (pt *PortsTable) SetPorts(infos []ports.PortInfo) {
	pt.infos = infos

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		vid, pid := "-", "-"
		if info.VendorID != 0 || info.ProductID != 0 {
			vid = fmt.Sprintf("%04x", info.VendorID)
			pid = fmt.Sprintf("%04x", info.ProductID)
		}

		rows = append(rows, table.NewRow(table.RowData{
			columnKeyPort:   info.PortName,
			columnKeyVID:    vid,
			columnKeyPID:    pid,
			columnKeySerial: info.SerialNumber,
			columnKeyDesc:   info.Description,
		}))
	}
	pt.table = pt.table.WithRows(rows)
}

func (pt *PortsTable) SetSize(width, height int) {
	if width < 80 {
		width = 80
	}
	pt.table = pt.table.WithTargetWidth(width)
	if height > 3 {
		pt.table = pt.table.WithPageSize(height - 3)
	}
}

// Highlighted returns the full record behind the highlighted row, or nil
// when the table is empty.
func (pt *PortsTable) Highlighted() *ports.PortInfo {
	name, ok := pt.table.HighlightedRow().Data[columnKeyPort].(string)
	if !ok {
		return nil
	}
	for i := range pt.infos {
		if pt.infos[i].PortName == name {
			return &pt.infos[i]
		}
	}
	return nil
}

func (pt *PortsTable) Count() int {
	return len(pt.infos)
}

func (pt *PortsTable) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	pt.table, cmd = pt.table.Update(msg)
	return cmd
}

func (pt *PortsTable) View() string {
	return pt.table.View()
}
