package telemetry

// serverState is the coordinator's lifecycle position, per spec §4.5:
// variables may only be registered while Configuring, and I/O only runs
// once Running.
type serverState int

const (
	stateConfiguring serverState = iota
	stateRunning
)

// Server is the telemetry coordinator: it owns the variable registry, the
// framing decoder, the pass-through queue, and drives one do_io tick at a
// time. It is the Go counterpart of the original Telemetry class, and the
// only exported entry point application code needs.
type Server struct {
	hal HAL

	data      [DataLimit]Data
	dataCount int

	rxBuffer    receivePacketBuffer
	passThrough ringQueue
	dec         decoder

	state             serverState
	headerTransmitted bool
	packetTxSequence  uint8
}

// NewServer creates a Server bound to hal. The Server starts in the
// Configuring state; register variables with AddData, then call
// TransmitHeader once before the first DoIO.
func NewServer(hal HAL) *Server {
	return &Server{
		hal:      hal,
		rxBuffer: receivePacketBuffer{hal: hal},
	}
}

// AddData registers v and returns its assigned data ID (1-based, dense).
// It is only valid before TransmitHeader has been called; calling it after
// or beyond DataLimit registrations reports an error and returns 0.
func (s *Server) AddData(v Data) uint8 {
	if s.headerTransmitted {
		s.hal.DoError("Cannot add new data after header transmitted.")
		return 0
	}
	if s.dataCount >= DataLimit {
		s.hal.DoError("MAX_DATA_PER_TELEMETRY limit reached.")
		return 0
	}
	id := uint8(s.dataCount + 1)
	v.setID(id)
	s.data[s.dataCount] = v
	s.dataCount++
	return id
}

// MarkDataUpdated marks the variable with the given ID dirty, so it is
// included in the next transmitData. Numeric.Set and NumericArray.Set
// already do this for the common case; this is for callers that mutate a
// variable's backing value some other way.
func (s *Server) MarkDataUpdated(id uint8) {
	if int(id) < 1 || int(id) > s.dataCount {
		return
	}
	s.data[id-1].markDirty()
}

// TransmitHeader sends the one-time header frame describing every
// registered variable, then transitions the Server to Running. It may only
// be called once.
func (s *Server) TransmitHeader() {
	if s.headerTransmitted {
		s.hal.DoError("Cannot retransmit header.")
		return
	}

	length := 2 // opcode + sequence
	for i := 0; i < s.dataCount; i++ {
		length += 2 // data ID + data type
		length += s.data[i].headerKVRLength()
		length++ // record terminator
	}
	length++ // data ID terminator

	p := newTransmitPacket(s.hal, length)
	p.writeUint8(opcodeHeader)
	p.writeUint8(s.packetTxSequence)
	for i := 0; i < s.dataCount; i++ {
		p.writeUint8(uint8(i + 1))
		p.writeUint8(s.data[i].dataType())
		s.data[i].writeHeaderKVRs(p)
		p.writeUint8(recordIDTerminator)
	}
	p.writeUint8(dataIDTerminator)
	p.finish()

	s.packetTxSequence++
	s.headerTransmitted = true
	s.state = stateRunning
}

// DoIO runs one cooperative tick: it transmits any variables dirtied since
// the last call, then drains and processes everything available from the
// HAL's receive side. It must not be called before TransmitHeader.
func (s *Server) DoIO() {
	if s.state != stateRunning {
		s.hal.DoError("do_io before transmit_header")
		return
	}
	s.transmitData()
	s.processReceivedData()
}

// transmitData snapshots and clears every variable's dirty flag, then
// writes one OPCODE_DATA frame carrying only the variables that were
// dirty at the snapshot. Per spec §5, the snapshot-then-clear step is what
// makes a Set() racing a concurrent DoIO safe: a value set after the
// snapshot is simply picked up on the following tick.
func (s *Server) transmitData() {
	var updated [DataLimit]bool
	length := 2 // opcode + sequence
	for i := 0; i < s.dataCount; i++ {
		updated[i] = s.data[i].snapshotAndClearDirty()
		if updated[i] {
			length += 1 + s.data[i].payloadLength()
		}
	}
	length++ // data ID terminator

	p := newTransmitPacket(s.hal, length)
	p.writeUint8(opcodeData)
	p.writeUint8(s.packetTxSequence)
	for i := 0; i < s.dataCount; i++ {
		if updated[i] {
			p.writeUint8(uint8(i + 1))
			s.data[i].writePayload(p)
		}
	}
	p.writeUint8(dataIDTerminator)
	p.finish()

	s.packetTxSequence++
}

// ReceiveAvailable reports whether any pass-through byte is queued.
func (s *Server) ReceiveAvailable() bool {
	return !s.passThrough.empty()
}

// ReadReceive dequeues one pass-through byte, or returns 255 if the queue
// is empty.
func (s *Server) ReadReceive() uint8 {
	if v, ok := s.passThrough.dequeue(); ok {
		return v
	}
	return 255
}
