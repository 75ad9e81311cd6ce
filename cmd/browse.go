/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/allbin/go-ports/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse serial ports",
	Long: `Open an interactive full-screen browser over the serial ports on the
system.

The browser shows each enumerated port with its USB identity and lets you
inspect the full metadata of the highlighted port. Press 'r' to rescan
after plugging or unplugging devices.

Key bindings:
  ↑/k, ↓/j   move selection
  enter      toggle the detail pane
  r          rescan ports
  /          filter ports
  esc        clear the filter
  ?          toggle help
  q          quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p := tea.NewProgram(models.NewBrowser(), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
