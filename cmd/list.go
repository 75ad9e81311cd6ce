/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"regexp"

	"github.com/allbin/go-ports"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all serial ports present on the system.

By default only the device paths are printed, one per line, which makes
the output easy to feed into scripts. Use --table for a styled listing
with driver names, or --usb to restrict the listing to ports whose full
metadata resolves to a USB device.

Examples:
  ports list
  ports list --table
  ports list --filter 'ttyUSB.*'
  ports list --usb`,
	Run: func(cmd *cobra.Command, args []string) {
		descriptors, err := ports.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		pattern, _ := cmd.Flags().GetString("filter")
		usbOnly, _ := cmd.Flags().GetBool("usb")
		tableFormat, _ := cmd.Flags().GetBool("table")

		descriptors, err = filterPorts(descriptors, pattern, usbOnly)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(descriptors) == 0 {
			fmt.Println("No serial ports found")
			return
		}

		if tableFormat {
			renderTable(descriptors)
		} else {
			renderSimple(descriptors)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("filter", "f", "", "Only show ports whose name matches this regular expression")
	listCmd.Flags().BoolP("usb", "u", false, "Only show ports backed by a USB device")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// filterPorts narrows the descriptor list by name pattern and, when
// requested, by resolvable USB identity.
func filterPorts(descriptors []ports.PortDescriptor, pattern string, usbOnly bool) ([]ports.PortDescriptor, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
	}

	var filtered []ports.PortDescriptor
	for _, d := range descriptors {
		if re != nil && !re.MatchString(d.Name) && !re.MatchString(d.Path) {
			continue
		}
		if usbOnly {
			info, err := ports.GetPortInfo(d.Path)
			if err != nil || info.VendorID == 0 {
				continue
			}
		}
		filtered = append(filtered, d)
	}
	return filtered, nil
}

// renderTable renders the port list in a styled static table format
func renderTable(descriptors []ports.PortDescriptor) {
	fmt.Printf("Found %d serial port(s):\n\n", len(descriptors))

	portWidth := 20
	driverWidth := 16
	descWidth := 36

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s",
		portWidth, "Port",
		driverWidth, "Driver",
		descWidth, "Description")
	fmt.Println(headerStyle.Render(header))

	for _, d := range descriptors {
		driver := d.Driver
		if driver == "" {
			driver = "-"
		}

		description := ports.ValueUnknown
		if info, err := ports.GetPortInfo(d.Path); err == nil {
			description = info.Description
		}

		row := fmt.Sprintf("%-*s %-*s %-*s",
			portWidth, d.Name,
			driverWidth, driver,
			descWidth, description)
		fmt.Println(cellStyle.Render(row))
	}
}

// renderSimple renders the port list in simple text format
func renderSimple(descriptors []ports.PortDescriptor) {
	for _, d := range descriptors {
		fmt.Println(d.Path)
	}
}
