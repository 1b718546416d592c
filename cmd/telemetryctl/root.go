package main

import (
	"github.com/spf13/cobra"
)

var (
	portName string
	baudRate int

	wsListenAddr string
)

var rootCmd = &cobra.Command{
	Use:   "telemetryctl",
	Short: "Telemetry device inspector",
	Long: `telemetryctl talks to a device running the telemetry package over a
serial port: it decodes header and data frames and can print them,
render a live table of variable values, or relay the raw byte stream to
a WebSocket listener for remote tooling.

Connection:
  --port /dev/ttyUSB0 [--baud 115200]

Settings not given on the command line fall back to ~/.telemetryctl.yaml.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate")

	rootCmd.AddCommand(monitorCmd, watchCmd, bridgeCmd)
	bridgeCmd.Flags().StringVar(&wsListenAddr, "listen", ":8080", "WebSocket listen address")
}

// Execute runs the root command.
func Execute() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyConfigDefaults(cfg)

	return rootCmd.Execute()
}
