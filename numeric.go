package telemetry

import "sync/atomic"

// Numeric is a scalar telemetry variable, the Go generic counterpart of the
// original Numeric<T> template. The current value lives in a single
// atomic.Uint32 word so Set can be called from an interrupt-style producer
// without a lock, per spec §5's atomic dirty-flag handoff contract.
type Numeric[T Value] struct {
	baseVariable

	value  atomic.Uint32
	minVal T
	maxVal T
}

// NewNumeric constructs a scalar variable with the given metadata and
// initial value. Register it with a Server via AddData before calling
// TransmitHeader.
func NewNumeric[T Value](internalName, displayName, units string, initValue T) *Numeric[T] {
	n := &Numeric[T]{
		baseVariable: baseVariable{
			internalName: internalName,
			displayName:  displayName,
			units:        units,
		},
		minVal: initValue,
		maxVal: initValue,
	}
	n.value.Store(bitsOf(initValue))
	n.dirty.Store(true)
	return n
}

// SetLimits sets the advertised min/max range written into the header KVRs.
// It does not clamp Set or setFromPacket.
func (n *Numeric[T]) SetLimits(min, max T) *Numeric[T] {
	n.minVal = min
	n.maxVal = max
	return n
}

// Get returns the current value.
func (n *Numeric[T]) Get() T {
	return fromBits[T](n.value.Load())
}

// Set stores a new value and marks the variable dirty for the next DoIO.
func (n *Numeric[T]) Set(v T) {
	n.value.Store(bitsOf(v))
	n.markDirty()
}

func (n *Numeric[T]) dataType() uint8 { return dataTypeNumeric }

func (n *Numeric[T]) headerKVRLength() int {
	length := numericLengthOf[T]()
	return n.headerNameKVRLength() +
		2 + // subtype record
		2 + // length record
		1 + length + length // limits record
}

func (n *Numeric[T]) writeHeaderKVRs(p *transmitPacket) {
	n.writeHeaderNameKVRs(p)
	p.writeUint8(recordIDNumericSubtype)
	p.writeUint8(numericSubtypeOf[T]())
	p.writeUint8(recordIDNumericLength)
	p.writeUint8(uint8(numericLengthOf[T]()))
	p.writeUint8(recordIDNumericLimits)
	writeValue(p, n.minVal)
	writeValue(p, n.maxVal)
}

func (n *Numeric[T]) payloadLength() int { return numericLengthOf[T]() }

func (n *Numeric[T]) writePayload(p *transmitPacket) {
	writeValue(p, n.Get())
}

func (n *Numeric[T]) setFromPacket(b *receivePacketBuffer) {
	n.value.Store(bitsOf(readValue[T](b)))
	n.markDirty()
}
