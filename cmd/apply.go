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

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply <port> [config]",
	Short: "Apply a line configuration to a serial port",
	Long: `Apply a line configuration (baud rate, framing, parity, flow control)
to a serial port.

The configuration can be given as a compact string in the form
<baud>@<databits><parity><stopbits>, optionally followed by RTS/CTS or
XON/XOFF, or assembled from individual flags. Settings from the config
file and PORTS_* environment variables are used for anything not given
explicitly.

Examples:
  ports apply /dev/ttyUSB0 9600@8N1
  ports apply /dev/ttyUSB0 '115200@8E2 RTS/CTS'
  ports apply COM3 --baud 19200 --parity even
  ports apply /dev/ttyACM0 --flow hardware`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		var config ports.Config
		var err error
		if len(args) == 2 {
			config, err = ports.ParseConfig(args[1])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing config %q: %v\n", args[1], err)
				os.Exit(1)
			}
		} else {
			config, err = lineConfig(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}

		port, err := ports.Open(portPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening port: %v\n", err)
			os.Exit(1)
		}
		defer port.Close()

		if err := port.ApplyConfig(config); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Applied %s to %s\n", config, portPath)
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	addLineFlags(applyCmd)
}
