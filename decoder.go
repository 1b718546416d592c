package telemetry

// decoderState is the framing decoder's position within one frame, per
// spec §4.4 / the DecoderState enum in telemetry.h.
type decoderState int

const (
	decoderSOF decoderState = iota
	decoderLength
	decoderData
	decoderDataDestuff
	decoderDataDestuffEnd
)

// decoder is the byte-at-a-time framing state machine. It owns no I/O of
// its own; Server.processReceivedData drives it from the HAL's RX side.
type decoder struct {
	state         decoderState
	pos           int
	packetLength  int
	lastReceiveMS uint32
	lastReceived  bool
}

// processReceivedData drains everything currently available from the HAL,
// demuxing framed telemetry bytes from pass-through bytes and dispatching
// complete packets to processReceivedPacket. A stall mid-frame longer than
// DecoderTimeoutMS resyncs to SOF and reports an error, per spec §4.4.
func (s *Server) processReceivedData() {
	now := s.hal.GetTimeMS()

	if now >= s.dec.lastReceiveMS {
		inFrame := s.dec.state != decoderSOF || s.dec.pos != 0
		if !s.dec.lastReceived && inFrame && now-s.dec.lastReceiveMS > DecoderTimeoutMS {
			s.dec.state = decoderSOF
			s.dec.pos = 0
			s.dec.packetLength = 0
			s.hal.DoError("RX timeout")
		}
	} else {
		// The clock wrapped since the last received byte; restart the stall
		// window rather than resetting the decoder.
		s.dec.lastReceiveMS = now
	}
	s.dec.lastReceived = false

	for s.hal.RxAvailable() > 0 {
		s.dec.lastReceived = true
		s.dec.lastReceiveMS = now
		rxByte := s.hal.ReceiveByte()

		switch s.dec.state {
		case decoderSOF:
			if rxByte == sofSeq[s.dec.pos] {
				s.dec.pos++
				if s.dec.pos >= len(sofSeq) {
					s.dec.pos = 0
					s.dec.packetLength = 0
					s.dec.state = decoderLength
				}
			} else {
				for i := 0; i < s.dec.pos; i++ {
					s.passThrough.enqueue(sofSeq[i])
				}
				s.dec.pos = 0
				s.passThrough.enqueue(rxByte)
			}

		case decoderLength:
			s.dec.packetLength = (s.dec.packetLength << 8) | int(rxByte)
			s.dec.pos++
			if s.dec.pos >= lengthSize {
				s.dec.pos = 0
				s.dec.state = decoderData
				s.rxBuffer.newPacket()
			}

		case decoderData:
			s.rxBuffer.addByte(rxByte)
			s.dec.pos++
			if s.dec.pos >= s.dec.packetLength {
				s.processReceivedPacket()
				s.dec.pos = 0
				if rxByte == sofSeq[0] {
					s.dec.state = decoderDataDestuffEnd
				} else {
					s.dec.state = decoderSOF
				}
			} else if rxByte == sofSeq[0] {
				s.dec.state = decoderDataDestuff
			}

		case decoderDataDestuff:
			// rxByte is the stuff byte following an SOF[0]-valued payload
			// byte; it carries no data and is discarded here.
			s.dec.state = decoderData

		case decoderDataDestuffEnd:
			// Same discard, but for a stuffed byte that happened to land on
			// the very last byte of the frame.
			s.dec.state = decoderSOF
		}
	}
}

// processReceivedPacket dispatches one fully received frame by opcode. Only
// OPCODE_DATA is accepted inbound; a header frame or unknown opcode is
// reported and the frame is dropped.
func (s *Server) processReceivedPacket() {
	opcode := s.rxBuffer.readUint8()
	if opcode != opcodeData {
		s.hal.DoError("Unknown opcode")
		return
	}
	s.rxBuffer.readUint8() // sequence number, not currently checked

	for {
		dataID := s.rxBuffer.readUint8()
		if dataID == dataIDTerminator {
			return
		}
		if int(dataID) < 1 || int(dataID) > s.dataCount {
			s.hal.DoError("Unknown data ID")
			return
		}
		s.data[dataID-1].setFromPacket(&s.rxBuffer)
	}
}
