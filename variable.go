package telemetry

import (
	"math"
	"sync/atomic"
)

// Value is the set of primitive numeric types a telemetry variable may hold,
// matching the {u8, u16, u32, i8, i16, i32, f32} subtypes in spec §3.
type Value interface {
	~uint8 | ~uint16 | ~uint32 | ~int8 | ~int16 | ~int32 | ~float32
}

// Data is the capability set the registry dispatches through: the tagged
// alternative to virtual dispatch spec §9 recommends for a no-heap-friendly
// design. Only Numeric and NumericArray implement it — the method set is
// deliberately unexported so it can't be satisfied from outside this
// package.
type Data interface {
	id() uint8
	setID(id uint8)
	dataType() uint8
	headerKVRLength() int
	writeHeaderKVRs(p *transmitPacket)
	payloadLength() int
	writePayload(p *transmitPacket)
	setFromPacket(b *receivePacketBuffer)
	markDirty()
	snapshotAndClearDirty() bool
}

// baseVariable holds the fields and behavior shared by Numeric and
// NumericArray: name/display/units KVRs, the assigned data ID, and the
// dirty flag. Grounded on Data's constructor and get_header_kvrs_length /
// write_header_kvrs in telemetry.h / telemetry-data.cpp.
type baseVariable struct {
	internalName string
	displayName  string
	units        string

	dataID uint8
	dirty  atomic.Bool
}

func (v *baseVariable) id() uint8        { return v.dataID }
func (v *baseVariable) setID(id uint8)   { v.dataID = id }
func (v *baseVariable) markDirty()       { v.dirty.Store(true) }
func (v *baseVariable) snapshotAndClearDirty() bool {
	return v.dirty.Swap(false)
}

// ID returns the data ID assigned at registration, or 0 if the variable has
// not yet been added to a Server.
func (v *baseVariable) ID() uint8 { return v.dataID }

func (v *baseVariable) headerNameKVRLength() int {
	return 1 + len(v.internalName) + 1 +
		1 + len(v.displayName) + 1 +
		1 + len(v.units) + 1
}

func (v *baseVariable) writeHeaderNameKVRs(p *transmitPacket) {
	p.writeUint8(recordIDInternalName)
	p.writeString(v.internalName)
	p.writeUint8(recordIDDisplayName)
	p.writeString(v.displayName)
	p.writeUint8(recordIDUnits)
	p.writeString(v.units)
}

// numericSubtypeOf reports the wire subtype tag for T.
func numericSubtypeOf[T Value]() uint8 {
	var zero T
	switch any(zero).(type) {
	case uint8, uint16, uint32:
		return numericSubtypeUint
	case int8, int16, int32:
		return numericSubtypeSint
	case float32:
		return numericSubtypeFloat
	default:
		panic("telemetry: unsupported numeric type")
	}
}

// numericLengthOf reports sizeof(T) in bytes, as emitted in
// RECORDID_NUMERIC_LENGTH.
func numericLengthOf[T Value]() int {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		panic("telemetry: unsupported numeric type")
	}
}

// bitsOf reinterprets a Value as a uint32 for atomic storage.
func bitsOf[T Value](v T) uint32 {
	switch x := any(v).(type) {
	case uint8:
		return uint32(x)
	case uint16:
		return uint32(x)
	case uint32:
		return x
	case int8:
		return uint32(uint8(x))
	case int16:
		return uint32(uint16(x))
	case int32:
		return uint32(x)
	case float32:
		return math.Float32bits(x)
	default:
		panic("telemetry: unsupported numeric type")
	}
}

// fromBits is the inverse of bitsOf.
func fromBits[T Value](bits uint32) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return any(uint8(bits)).(T)
	case uint16:
		return any(uint16(bits)).(T)
	case uint32:
		return any(bits).(T)
	case int8:
		return any(int8(uint8(bits))).(T)
	case int16:
		return any(int16(uint16(bits))).(T)
	case int32:
		return any(int32(bits)).(T)
	case float32:
		return any(math.Float32frombits(bits)).(T)
	default:
		panic("telemetry: unsupported numeric type")
	}
}

// writeValue writes v to the packet in the wire's big-endian layout for T.
func writeValue[T Value](p *transmitPacket, v T) {
	switch x := any(v).(type) {
	case uint8:
		p.writeUint8(x)
	case uint16:
		p.writeUint16(x)
	case uint32:
		p.writeUint32(x)
	case int8:
		p.writeUint8(uint8(x))
	case int16:
		p.writeUint16(uint16(x))
	case int32:
		p.writeUint32(uint32(x))
	case float32:
		p.writeFloat32(x)
	}
}

// readValue reads a T from the packet's big-endian layout.
func readValue[T Value](b *receivePacketBuffer) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return any(b.readUint8()).(T)
	case uint16:
		return any(b.readUint16()).(T)
	case uint32:
		return any(b.readUint32()).(T)
	case int8:
		return any(int8(b.readUint8())).(T)
	case int16:
		return any(int16(b.readUint16())).(T)
	case int32:
		return any(int32(b.readUint32())).(T)
	case float32:
		return any(b.readFloat32()).(T)
	default:
		panic("telemetry: unsupported numeric type")
	}
}
