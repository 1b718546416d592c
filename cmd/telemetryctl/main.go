// telemetryctl is a host-side companion for talking to a device running
// the telemetry package: it decodes frames off a serial port and can print
// them, render a live table, or relay raw bytes to a WebSocket listener.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
