/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ports",
	Short: "Discover and configure serial ports",
	Long: `ports discovers the serial devices attached to a system and manages
their line configuration.

Enumeration resolves USB metadata (vendor/product IDs, serial number,
manufacturer) through the native platform interface: sysfs on Linux,
SetupAPI on Windows and the I/O Registry on macOS. Line settings are
applied through termios or the Windows DCB.

Run 'ports list' for a quick overview, 'ports browse' for an
interactive view, or 'ports info <port>' for full device metadata.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ports.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".ports" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ports")
	}

	viper.SetEnvPrefix("PORTS")
	viper.AutomaticEnv() // read in environment variables that match

	// Line setting defaults shared by every command that opens a port.
	viper.SetDefault("baud", 115200)
	viper.SetDefault("databits", 8)
	viper.SetDefault("stopbits", 1)
	viper.SetDefault("parity", "none")
	viper.SetDefault("flow", "none")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
