package telemetry

import "sync"

// NumericArray is a fixed-length array telemetry variable, the counterpart
// of the original NumericArray<T,array_count> template. Go generics have no
// const array-length parameter, so the backing storage is a slice sized
// once at construction (configuration time, not the DoIO hot path) rather
// than a compile-time array — the one deliberate departure from a strict
// no-heap translation, and confined to setup.
type NumericArray[T Value] struct {
	baseVariable

	mu     sync.Mutex
	values []T
	minVal T
	maxVal T
}

// NewNumericArray constructs an array variable of the given length, with
// every element initialized to elemInitValue.
func NewNumericArray[T Value](internalName, displayName, units string, count int, elemInitValue T) *NumericArray[T] {
	values := make([]T, count)
	for i := range values {
		values[i] = elemInitValue
	}
	a := &NumericArray[T]{
		baseVariable: baseVariable{
			internalName: internalName,
			displayName:  displayName,
			units:        units,
		},
		values: values,
		minVal: elemInitValue,
		maxVal: elemInitValue,
	}
	a.dirty.Store(true)
	return a
}

// SetLimits sets the advertised per-element min/max range.
func (a *NumericArray[T]) SetLimits(min, max T) *NumericArray[T] {
	a.minVal = min
	a.maxVal = max
	return a
}

// Len returns the array's fixed element count.
func (a *NumericArray[T]) Len() int { return len(a.values) }

// Get returns the element at index.
func (a *NumericArray[T]) Get(index int) T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.values[index]
}

// Set stores an element and marks the whole array dirty — the wire format
// has no per-element dirty tracking, so any element write retransmits the
// full array on the next DoIO.
func (a *NumericArray[T]) Set(index int, v T) {
	a.mu.Lock()
	a.values[index] = v
	a.mu.Unlock()
	a.markDirty()
}

func (a *NumericArray[T]) dataType() uint8 { return dataTypeNumericArray }

func (a *NumericArray[T]) headerKVRLength() int {
	length := numericLengthOf[T]()
	return a.headerNameKVRLength() +
		2 + // subtype record
		2 + // length record
		1 + 4 + // array count record
		1 + length + length // limits record
}

func (a *NumericArray[T]) writeHeaderKVRs(p *transmitPacket) {
	a.writeHeaderNameKVRs(p)
	p.writeUint8(recordIDNumericSubtype)
	p.writeUint8(numericSubtypeOf[T]())
	p.writeUint8(recordIDNumericLength)
	p.writeUint8(uint8(numericLengthOf[T]()))
	p.writeUint8(recordIDArrayCount)
	p.writeUint32(uint32(len(a.values)))
	p.writeUint8(recordIDNumericLimits)
	writeValue(p, a.minVal)
	writeValue(p, a.maxVal)
}

func (a *NumericArray[T]) payloadLength() int {
	return numericLengthOf[T]() * len(a.values)
}

func (a *NumericArray[T]) writePayload(p *transmitPacket) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, v := range a.values {
		writeValue(p, v)
	}
}

func (a *NumericArray[T]) setFromPacket(b *receivePacketBuffer) {
	a.mu.Lock()
	for i := range a.values {
		a.values[i] = readValue[T](b)
	}
	a.mu.Unlock()
	a.markDirty()
}
