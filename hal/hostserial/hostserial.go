// Package hostserial implements telemetry.HAL over a host OS serial port,
// using the same library and Open/Mode pattern as Thermoquad-heliostat's
// CLI (go.bug.st/serial), for host-side tools that talk to a real device.
package hostserial

import (
	"log/slog"
	"sync"
	"time"

	"go.bug.st/serial"
)

// HAL wraps an open serial.Port. go.bug.st/serial exposes no
// bytes-buffered count, so a background goroutine polls the port with a
// short read timeout and feeds a local byte buffer that RxAvailable/
// ReceiveByte drain from, giving the same non-blocking-poll contract the
// telemetry.HAL interface expects.
type HAL struct {
	port serial.Port

	mu  sync.Mutex
	buf []byte

	epoch  time.Time
	logger *slog.Logger
}

// Open opens portName at baudRate and starts polling it for the returned
// HAL.
func Open(portName string, baudRate int) (*HAL, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(10 * time.Millisecond); err != nil {
		port.Close()
		return nil, err
	}

	h := &HAL{
		port:   port,
		epoch:  time.Now(),
		logger: slog.Default().With("port", portName),
	}
	go h.readLoop()
	return h, nil
}

func (h *HAL) readLoop() {
	chunk := make([]byte, 256)
	for {
		n, err := h.port.Read(chunk)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		h.mu.Lock()
		h.buf = append(h.buf, chunk[:n]...)
		h.mu.Unlock()
	}
}

func (h *HAL) TransmitByte(b byte) {
	if _, err := h.port.Write([]byte{b}); err != nil {
		h.logger.Error("serial write failed", "err", err)
	}
}

func (h *HAL) RxAvailable() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.buf)
}

func (h *HAL) ReceiveByte() byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.buf) == 0 {
		return 0
	}
	b := h.buf[0]
	h.buf = h.buf[1:]
	return b
}

func (h *HAL) DoError(message string) {
	h.logger.Warn(message)
}

func (h *HAL) GetTimeMS() uint32 {
	return uint32(time.Since(h.epoch).Milliseconds())
}

// Close releases the underlying serial port. The background read goroutine
// exits on its next Read call once the port is closed.
func (h *HAL) Close() error {
	return h.port.Close()
}
