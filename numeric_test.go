package telemetry

import "testing"

func TestNumericSetGetRoundTrip(t *testing.T) {
	n := NewNumeric[uint16]("rpm", "RPM", "rpm", 0)
	n.Set(1337)
	if got := n.Get(); got != 1337 {
		t.Fatalf("Get() = %d, want 1337", got)
	}
}

func TestNumericDirtyFlagLifecycle(t *testing.T) {
	n := NewNumeric[int8]("t", "T", "C", 0)

	if !n.snapshotAndClearDirty() {
		t.Fatal("a freshly constructed variable should start dirty")
	}
	if n.snapshotAndClearDirty() {
		t.Fatal("dirty flag should have been cleared by the previous snapshot")
	}

	n.Set(-5)
	if !n.snapshotAndClearDirty() {
		t.Fatal("Set should mark the variable dirty again")
	}
}

func TestNumericHeaderKVREncoding(t *testing.T) {
	n := NewNumeric[uint16]("a", "A", "", 0).SetLimits(0, 100)
	n.setID(1)

	hal := &testHAL{}
	length := 1 + n.headerKVRLength()
	p := newTransmitPacket(hal, length)
	p.writeUint8(n.dataType())
	n.writeHeaderKVRs(p)
	p.finish()

	if len(hal.errs) != 0 {
		t.Fatalf("unexpected errors writing header KVRs: %v", hal.errs)
	}

	want := []byte{
		dataTypeNumeric,
		recordIDInternalName, 'a', 0x00,
		recordIDDisplayName, 'A', 0x00,
		recordIDUnits, 0x00,
		recordIDNumericSubtype, numericSubtypeUint,
		recordIDNumericLength, 0x02,
		recordIDNumericLimits, 0x00, 0x00, 0x00, 0x64,
	}
	got := hal.tx[4:] // skip SOF + length prefix
	if !bytesEqual(got, want) {
		t.Fatalf("header KVRs = % X, want % X", got, want)
	}
}

func TestNumericPayloadRoundTripThroughReceiveBuffer(t *testing.T) {
	hal := &testHAL{}
	n := NewNumeric[int32]("x", "X", "", 0)

	tp := newTransmitPacket(hal, n.payloadLength())
	n.Set(-123456)
	n.writePayload(tp)
	tp.finish()

	b := newReceivePacketBuffer(hal)
	b.newPacket()
	for _, v := range hal.tx[4:] {
		b.addByte(v)
	}

	other := NewNumeric[int32]("x", "X", "", 0)
	other.setFromPacket(b)
	if got := other.Get(); got != -123456 {
		t.Fatalf("Get() after setFromPacket = %d, want -123456", got)
	}
}

func TestNumericFloat32BitPattern(t *testing.T) {
	n := NewNumeric[float32]("f", "F", "", 0)
	n.Set(3.5)
	if got := n.Get(); got != 3.5 {
		t.Fatalf("Get() = %v, want 3.5", got)
	}
}
