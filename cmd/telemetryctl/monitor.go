package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ducky64/telemetry/hal/hostserial"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Decode and print frames from the serial port",
	Long: `monitor opens the configured serial port, decodes header and data
frames as they arrive, and prints them in human-readable form. Press
Ctrl+C to exit.`,
	RunE: runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if portName == "" {
		return fmt.Errorf("no serial port given (use --port or set it in ~/.telemetryctl.yaml)")
	}

	h, err := hostserial.Open(portName, baudRate)
	if err != nil {
		return fmt.Errorf("opening %s: %w", portName, err)
	}
	defer h.Close()

	fmt.Printf("telemetryctl monitor — %s @ %d baud\n\n", portName, baudRate)

	dec := &frameDecoder{}
	registry := map[uint8]*variableMeta{}

	for {
		if h.RxAvailable() == 0 {
			time.Sleep(2 * time.Millisecond)
			continue
		}
		b := h.ReceiveByte()
		f := dec.decodeByte(b)
		if f == nil {
			continue
		}
		printFrame(f, registry)
	}
}

func printFrame(f *frame, registry map[uint8]*variableMeta) {
	switch f.opcode {
	case opHeader:
		vars, err := parseHeader(f)
		if err != nil {
			fmt.Printf("[ERROR] header decode: %v\n", err)
			return
		}
		fmt.Printf("HEADER seq=%d, %d variable(s)\n", f.sequence, len(vars))
		for _, v := range vars {
			registry[v.id] = v
			kind := "scalar"
			if v.dataType == dataTypeNumericArray {
				kind = fmt.Sprintf("array[%d]", v.arrayCount)
			}
			fmt.Printf("  id=%d %s (%s) %s, %s\n", v.id, v.displayName, v.internalName, kind, v.units)
		}

	case opData:
		fmt.Print(formatData(f, registry))

	default:
		fmt.Printf("[ERROR] unknown opcode 0x%02X\n", f.opcode)
	}
}
