// Package mock provides an in-memory telemetry.HAL for tests and local
// experimentation, generalizing the hand-rolled mockUART the teacher wires
// up per-test into a reusable type.
package mock

import "time"

// HAL is a telemetry.HAL backed by plain byte slices instead of real
// hardware. It is grounded on server-cpp's no-op DummyHal (telemetry-dummy-hal.h)
// for the empty-implementation shape, and on the teacher's own mockUART
// (firmware/tests/crsf_test.go) for the buffered-RX/append-only-TX style.
type HAL struct {
	TX []byte

	rx     []byte
	rxHead int

	Errors []string

	epoch time.Time
}

// New returns a HAL whose clock starts at zero and advances with the real
// wall clock.
func New() *HAL {
	return &HAL{epoch: time.Now()}
}

func (h *HAL) TransmitByte(b byte) {
	h.TX = append(h.TX, b)
}

func (h *HAL) RxAvailable() int {
	return len(h.rx) - h.rxHead
}

func (h *HAL) ReceiveByte() byte {
	if h.rxHead >= len(h.rx) {
		return 0
	}
	b := h.rx[h.rxHead]
	h.rxHead++
	return b
}

func (h *HAL) DoError(message string) {
	h.Errors = append(h.Errors, message)
}

func (h *HAL) GetTimeMS() uint32 {
	return uint32(time.Since(h.epoch).Milliseconds())
}

// Feed appends bytes to the RX side, as if they had just arrived from a
// simulated peer.
func (h *HAL) Feed(b ...byte) {
	h.rx = append(h.rx, b...)
}

// TakeTX drains and returns everything transmitted since the last call.
func (h *HAL) TakeTX() []byte {
	tx := h.TX
	h.TX = nil
	return tx
}
