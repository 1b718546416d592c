package telemetry

// testHAL is an in-memory HAL for exercising the Server without real
// hardware, in the shape of WingFC's mockUART: separate TX/RX byte slices
// plus an errors slice instead of a panic, and a settable clock.
type testHAL struct {
	tx     []byte
	rx     []byte
	rxHead int
	errs   []string
	nowMS  uint32
}

func (h *testHAL) TransmitByte(b byte) {
	h.tx = append(h.tx, b)
}

func (h *testHAL) RxAvailable() int {
	return len(h.rx) - h.rxHead
}

func (h *testHAL) ReceiveByte() byte {
	if h.rxHead >= len(h.rx) {
		return 0
	}
	b := h.rx[h.rxHead]
	h.rxHead++
	return b
}

func (h *testHAL) DoError(message string) {
	h.errs = append(h.errs, message)
}

func (h *testHAL) GetTimeMS() uint32 {
	return h.nowMS
}

// feed appends bytes to the RX side, as if they'd just arrived on the wire.
func (h *testHAL) feed(b ...byte) {
	h.rx = append(h.rx, b...)
}

// advance moves the mock clock forward by ms milliseconds.
func (h *testHAL) advance(ms uint32) {
	h.nowMS += ms
}
