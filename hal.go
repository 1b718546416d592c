package telemetry

// HAL is the hardware abstraction the telemetry Server is built on: raw byte
// TX/RX, a millisecond clock, and a diagnostic sink. Implementations live
// outside this package (see hal/mock, hal/tinygoserial, hal/hostserial) —
// the Server only ever depends on this interface.
//
// All operations are non-blocking at the contract level except
// TransmitByte, which may block if downstream buffers fill.
type HAL interface {
	// TransmitByte pushes one byte to the physical TX.
	TransmitByte(b byte)

	// RxAvailable returns the count of bytes ready to read.
	RxAvailable() int

	// ReceiveByte removes and returns one byte. Callers must guarantee
	// RxAvailable() > 0 before calling.
	ReceiveByte() byte

	// DoError is a non-fatal diagnostic sink. Implementations may write to
	// the same stream or a side channel.
	DoError(message string)

	// GetTimeMS returns a monotonic millisecond counter. It may wrap at any
	// time; callers must not assume monotonic non-wrapping behavior.
	GetTimeMS() uint32
}
