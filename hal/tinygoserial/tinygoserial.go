//go:build tinygo

// Package tinygoserial implements telemetry.HAL over a TinyGo machine.UART,
// the same peripheral the teacher's firmware configures for RC-receiver
// input (machine.DefaultUART / machine.UARTConfig in main.go) — repurposed
// here to carry outbound telemetry framing instead of inbound RC bytes.
package tinygoserial

import (
	"machine"
	"time"
)

var bootTime = time.Now()

// HAL wraps a configured machine.UART.
type HAL struct {
	uart *machine.UART
}

// New configures uart at baudRate and wraps it as a telemetry.HAL. Pin
// assignment is left to the caller before New is called, following the
// teacher's per-board UART setup pattern.
func New(uart *machine.UART, baudRate uint32) *HAL {
	uart.Configure(machine.UARTConfig{BaudRate: baudRate})
	return &HAL{uart: uart}
}

func (h *HAL) TransmitByte(b byte) {
	h.uart.WriteByte(b)
}

func (h *HAL) RxAvailable() int {
	return h.uart.Buffered()
}

func (h *HAL) ReceiveByte() byte {
	b, _ := h.uart.ReadByte()
	return b
}

func (h *HAL) DoError(message string) {
	println("telemetry error:", message)
}

func (h *HAL) GetTimeMS() uint32 {
	return uint32(time.Since(bootTime).Milliseconds())
}
