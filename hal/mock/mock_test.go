package mock

import (
	"testing"
	"time"
)

func TestHALTransmitAndReceive(t *testing.T) {
	h := New()
	h.TransmitByte(0x01)
	h.TransmitByte(0x02)

	if tx := h.TakeTX(); len(tx) != 2 || tx[0] != 0x01 || tx[1] != 0x02 {
		t.Fatalf("TakeTX() = % X, want 01 02", tx)
	}
	if tx := h.TakeTX(); tx != nil {
		t.Fatalf("second TakeTX() should be empty, got % X", tx)
	}

	h.Feed(0xAA, 0xBB)
	if h.RxAvailable() != 2 {
		t.Fatalf("RxAvailable() = %d, want 2", h.RxAvailable())
	}
	if b := h.ReceiveByte(); b != 0xAA {
		t.Fatalf("ReceiveByte() = %#x, want 0xAA", b)
	}
	if h.RxAvailable() != 1 {
		t.Fatalf("RxAvailable() after one read = %d, want 1", h.RxAvailable())
	}
}

func TestHALDoErrorRecordsMessages(t *testing.T) {
	h := New()
	h.DoError("boom")
	if len(h.Errors) != 1 || h.Errors[0] != "boom" {
		t.Fatalf("Errors = %v, want [boom]", h.Errors)
	}
}

func TestHALGetTimeMSAdvances(t *testing.T) {
	h := New()
	first := h.GetTimeMS()
	time.Sleep(2 * time.Millisecond)
	if h.GetTimeMS() <= first {
		t.Fatalf("GetTimeMS() did not advance: first=%d, later=%d", first, h.GetTimeMS())
	}
}
