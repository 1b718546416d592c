package telemetry

import "testing"

func TestNumericArraySetGet(t *testing.T) {
	a := NewNumericArray[float32]("acc", "Accel", "m/s^2", 3, 0)
	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}

	a.Set(0, 1.5)
	a.Set(1, -2.25)
	a.Set(2, 0)

	if got := a.Get(0); got != 1.5 {
		t.Fatalf("Get(0) = %v, want 1.5", got)
	}
	if got := a.Get(1); got != -2.25 {
		t.Fatalf("Get(1) = %v, want -2.25", got)
	}
}

func TestNumericArrayDirtyOnAnyElement(t *testing.T) {
	a := NewNumericArray[uint8]("b", "B", "", 4, 0)
	a.snapshotAndClearDirty()

	a.Set(3, 0xFF)
	if !a.snapshotAndClearDirty() {
		t.Fatal("writing any single element should dirty the whole array")
	}
}

func TestNumericArrayPayloadRoundTrip(t *testing.T) {
	hal := &testHAL{}
	a := NewNumericArray[uint16]("w", "W", "", 4, 0)
	for i := 0; i < 4; i++ {
		a.Set(i, uint16(1000+i))
	}

	tp := newTransmitPacket(hal, a.payloadLength())
	a.writePayload(tp)
	tp.finish()

	if len(hal.errs) != 0 {
		t.Fatalf("unexpected errors: %v", hal.errs)
	}

	b := newReceivePacketBuffer(hal)
	b.newPacket()
	for _, v := range hal.tx[4:] {
		b.addByte(v)
	}

	other := NewNumericArray[uint16]("w", "W", "", 4, 0)
	other.setFromPacket(b)
	for i := 0; i < 4; i++ {
		if got := other.Get(i); got != uint16(1000+i) {
			t.Fatalf("Get(%d) = %d, want %d", i, got, 1000+i)
		}
	}
}

func TestNumericArrayHeaderKVRIncludesCount(t *testing.T) {
	a := NewNumericArray[uint8]("q", "Q", "", 7, 0).SetLimits(0, 255)
	a.setID(1)

	hal := &testHAL{}
	length := a.headerKVRLength()
	p := newTransmitPacket(hal, length)
	a.writeHeaderKVRs(p)
	p.finish()

	if len(hal.errs) != 0 {
		t.Fatalf("unexpected errors: %v", hal.errs)
	}

	want := []byte{
		recordIDInternalName, 'q', 0x00,
		recordIDDisplayName, 'Q', 0x00,
		recordIDUnits, 0x00,
		recordIDNumericSubtype, numericSubtypeUint,
		recordIDNumericLength, 0x01,
		recordIDArrayCount, 0x00, 0x00, 0x00, 0x07,
		recordIDNumericLimits, 0x00, 0xFF,
	}
	got := hal.tx[4:]
	if !bytesEqual(got, want) {
		t.Fatalf("header KVRs = % X, want % X", got, want)
	}
}
