package telemetry

import "testing"

func TestTransmitPacketStuffsSOFByte(t *testing.T) {
	hal := &testHAL{}
	p := newTransmitPacket(hal, 3)
	p.writeUint8(0x05) // collides with sofSeq[0]
	p.writeUint8(0x39)
	p.writeUint8(0x10)
	p.finish()

	want := []byte{0x05, 0x39, 0x00, 0x03, 0x05, 0x00, 0x39, 0x10}
	if !bytesEqual(hal.tx, want) {
		t.Fatalf("tx = % X, want % X", hal.tx, want)
	}
	if len(hal.errs) != 0 {
		t.Fatalf("unexpected errors: %v", hal.errs)
	}
}

func TestTransmitPacketUnderLengthReportsError(t *testing.T) {
	hal := &testHAL{}
	p := newTransmitPacket(hal, 4)
	p.writeUint8(0x01)
	p.finish()

	if len(hal.errs) == 0 {
		t.Fatal("expected an error for a short packet")
	}
}

func TestTransmitPacketOverLengthReportsError(t *testing.T) {
	hal := &testHAL{}
	p := newTransmitPacket(hal, 1)
	p.writeUint8(0x01)
	p.writeUint8(0x02)

	if len(hal.errs) == 0 {
		t.Fatal("expected an error writing past the declared length")
	}
}

func TestTransmitPacketMultiByteBigEndian(t *testing.T) {
	hal := &testHAL{}
	p := newTransmitPacket(hal, 4+2)
	p.writeUint32(0x11223344)
	p.writeUint16(0xAABB)
	p.finish()

	want := []byte{0x05, 0x39, 0x00, 0x06, 0x11, 0x22, 0x33, 0x44, 0xAA, 0xBB}
	if !bytesEqual(hal.tx, want) {
		t.Fatalf("tx = % X, want % X", hal.tx, want)
	}
}

func TestReceivePacketBufferBoundsAndReads(t *testing.T) {
	hal := &testHAL{}
	b := newReceivePacketBuffer(hal)
	b.newPacket()

	for _, v := range []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06} {
		b.addByte(v)
	}

	if got := b.readUint16(); got != 0x0102 {
		t.Fatalf("readUint16 = %#x, want 0x0102", got)
	}
	if got := b.readUint32(); got != 0x03040506 {
		t.Fatalf("readUint32 = %#x, want 0x03040506", got)
	}
	if len(hal.errs) != 0 {
		t.Fatalf("unexpected errors during in-bounds reads: %v", hal.errs)
	}

	if got := b.readUint8(); got != 0 {
		t.Fatalf("read past end should return 0, got %d", got)
	}
	if len(hal.errs) == 0 {
		t.Fatal("expected an error reading past the filled length")
	}
}

func TestReceivePacketBufferOverLength(t *testing.T) {
	hal := &testHAL{}
	b := newReceivePacketBuffer(hal)
	b.newPacket()

	for i := 0; i < MaxReceivePacketLength; i++ {
		b.addByte(byte(i))
	}
	if len(hal.errs) != 0 {
		t.Fatalf("filling to MaxReceivePacketLength should not error: %v", hal.errs)
	}

	b.addByte(0xFF)
	if len(hal.errs) == 0 {
		t.Fatal("expected an error adding past MaxReceivePacketLength")
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
