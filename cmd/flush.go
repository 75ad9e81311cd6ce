/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/allbin/go-ports"
	"github.com/spf13/cobra"
)

// flushCmd represents the flush command
var flushCmd = &cobra.Command{
	Use:   "flush <port> [direction]",
	Short: "Discard buffered serial data",
	Long: `Discard data buffered by the driver for a serial port.

The direction selects which queue to flush: input discards received data
that has not been read, output discards written data that has not been
transmitted. Without a direction both queues are flushed.

Examples:
  ports flush /dev/ttyUSB0
  ports flush /dev/ttyUSB0 input
  ports flush COM3 output`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		dir := ports.FlushBoth
		if len(args) == 2 {
			switch strings.ToLower(args[1]) {
			case "input", "in", "rx":
				dir = ports.FlushInput
			case "output", "out", "tx":
				dir = ports.FlushOutput
			case "both", "all":
				dir = ports.FlushBoth
			default:
				fmt.Fprintf(os.Stderr, "Error: invalid direction: %s (valid: input, output, both)\n", args[1])
				os.Exit(1)
			}
		}

		port, err := ports.Open(portPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening port: %v\n", err)
			os.Exit(1)
		}
		defer port.Close()

		if err := port.Flush(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error flushing port: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Flushed %s queue on %s\n", dir, portPath)
	},
}

func init() {
	rootCmd.AddCommand(flushCmd)
}
