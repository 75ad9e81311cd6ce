/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/allbin/go-ports"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <port>",
	Short: "Display detailed information about a serial port",
	Long: `Display detailed information about a serial port including USB metadata.

Examples:
  ports info /dev/ttyUSB0
  ports info COM3

For USB devices, this displays vendor/product IDs, the serial number,
manufacturer and the raw hardware identifier, resolved through the native
platform interface (sysfs, SetupAPI or the I/O Registry). Fields the
platform cannot resolve show N/A or Unknown.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		info, err := ports.GetPortInfo(portPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting port info: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Port Information: %s\n\n", info.SystemLocation)
		fmt.Printf("  Name:         %s\n", info.PortName)
		fmt.Printf("  Friendly:     %s\n", info.FriendlyName)
		fmt.Printf("  Description:  %s\n", info.Description)
		fmt.Printf("  Manufacturer: %s\n", info.Manufacturer)

		if info.VendorID != 0 || info.ProductID != 0 {
			fmt.Println("\nUSB Device Information:")
			fmt.Printf("  Vendor ID:    %04x\n", info.VendorID)
			fmt.Printf("  Product ID:   %04x\n", info.ProductID)
			fmt.Printf("  Serial:       %s\n", info.SerialNumber)
			if info.HardwareID != "" {
				fmt.Printf("  Hardware ID:  %s\n", info.HardwareID)
			}
			if info.BusNumber != "" {
				fmt.Printf("  Bus:          %s\n", info.BusNumber)
			}
			if info.DeviceNumber != "" {
				fmt.Printf("  Device:       %s\n", info.DeviceNumber)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
