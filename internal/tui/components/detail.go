package components

import (
	"fmt"
	"strings"

	"github.com/allbin/go-ports"
	"github.com/allbin/go-ports/internal/tui/styles"
)

// Detail renders the full identity record of a port as a bordered pane
// below the table.
type Detail struct {
	width int
}

func NewDetail() *Detail {
	return &Detail{}
}

func (d *Detail) SetWidth(width int) {
	d.width = width
}

func (d *Detail) View(info *ports.PortInfo) string {
	if info == nil {
		return ""
	}

	var b strings.Builder
	writeField(&b, "Location", info.SystemLocation)
	writeField(&b, "Friendly", info.FriendlyName)
	writeField(&b, "Description", info.Description)
	writeField(&b, "Manufacturer", info.Manufacturer)
	writeField(&b, "Serial", info.SerialNumber)

	if info.VendorID != 0 || info.ProductID != 0 {
		writeField(&b, "Vendor ID", fmt.Sprintf("%04x", info.VendorID))
		writeField(&b, "Product ID", fmt.Sprintf("%04x", info.ProductID))
	}
	if info.HardwareID != "" {
		writeField(&b, "Hardware ID", info.HardwareID)
	}
	if info.BusNumber != "" {
		writeField(&b, "USB Bus/Dev", info.BusNumber+"/"+info.DeviceNumber)
	}

	pane := styles.DetailBorderStyle
	if d.width > 4 {
		pane = pane.Width(d.width - 2)
	}
	return pane.Render(strings.TrimRight(b.String(), "\n"))
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(styles.DetailLabelStyle.Render(fmt.Sprintf("%-13s", label)))
	b.WriteString(styles.DetailValueStyle.Render(value))
	b.WriteString("\n")
}
