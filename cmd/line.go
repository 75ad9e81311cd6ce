/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/allbin/go-ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addLineFlags registers the line-setting flags shared by commands that
// apply a configuration. Defaults come from viper so a config file or
// PORTS_* environment variables can set them globally.
func addLineFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("baud", "b", 115200, "Baud rate")
	cmd.Flags().Int("databits", 8, "Data bits (5-8)")
	cmd.Flags().Int("stopbits", 1, "Stop bits (1 or 2)")
	cmd.Flags().String("parity", "none", "Parity: none, odd, even, mark, space")
	cmd.Flags().String("flow", "none", "Flow control: none, hardware, software")
}

// lineConfig assembles a configuration from viper settings overridden by
// any flags set on the command line.
func lineConfig(cmd *cobra.Command) (ports.Config, error) {
	config := ports.DefaultConfig()

	config.BaudRate = viper.GetInt("baud")
	config.DataBits = viper.GetInt("databits")
	config.StopBits = viper.GetInt("stopbits")

	parityName := viper.GetString("parity")
	flowName := viper.GetString("flow")

	if cmd.Flags().Changed("baud") {
		config.BaudRate, _ = cmd.Flags().GetInt("baud")
	}
	if cmd.Flags().Changed("databits") {
		config.DataBits, _ = cmd.Flags().GetInt("databits")
	}
	if cmd.Flags().Changed("stopbits") {
		config.StopBits, _ = cmd.Flags().GetInt("stopbits")
	}
	if cmd.Flags().Changed("parity") {
		parityName, _ = cmd.Flags().GetString("parity")
	}
	if cmd.Flags().Changed("flow") {
		flowName, _ = cmd.Flags().GetString("flow")
	}

	parity, err := parseParity(parityName)
	if err != nil {
		return config, err
	}
	config.Parity = parity

	flow, err := parseFlowControl(flowName)
	if err != nil {
		return config, err
	}
	config.FlowControl = flow

	return config, nil
}

func parseParity(name string) (ports.Parity, error) {
	switch strings.ToLower(name) {
	case "none", "n":
		return ports.ParityNone, nil
	case "odd", "o":
		return ports.ParityOdd, nil
	case "even", "e":
		return ports.ParityEven, nil
	case "mark", "m":
		return ports.ParityMark, nil
	case "space", "s":
		return ports.ParitySpace, nil
	default:
		return ports.ParityNone, fmt.Errorf("invalid parity: %s (valid: none, odd, even, mark, space)", name)
	}
}

func parseFlowControl(name string) (ports.FlowControl, error) {
	switch strings.ToLower(name) {
	case "none":
		return ports.FlowControlNone, nil
	case "hardware", "rtscts":
		return ports.FlowControlHardware, nil
	case "software", "xonxoff":
		return ports.FlowControlSoftware, nil
	default:
		return ports.FlowControlNone, fmt.Errorf("invalid flow control: %s (valid: none, hardware, software)", name)
	}
}
