package telemetry

// Wire protocol constants. Byte order on the wire is big-endian throughout.
//
// Frame layout on egress:
//
//	SOF(2) = 05 39 | LENGTH(2, BE) = L | PAYLOAD(L bytes, stuffed) | [CRC reserved]
//
// Every occurrence of SOF[0] (0x05) inside the payload is followed by one
// stuff byte (0x00), not counted in L. Stuffing applies in both directions.
var sofSeq = [2]byte{0x05, 0x39}

const (
	sofStuffByte = 0x00
	lengthSize   = 2

	opcodeHeader = 0x81
	opcodeData   = 0x01

	dataIDTerminator = 0x00

	dataTypeNumeric      = 0x01
	dataTypeNumericArray = 0x02

	recordIDTerminator   = 0x00
	recordIDInternalName = 0x01
	recordIDDisplayName  = 0x02
	recordIDUnits        = 0x03

	// RECORDID_OVERRIDE_CTL and RECORDID_OVERRIDE_DATA are reserved for a
	// host-initiated value-override mechanism described in spec §9. The
	// original source assigns both names the same numeric value, which is
	// flagged there as an open question rather than a typo to silently fix.
	// Neither constant is read or written by any encoder or decoder in this
	// package.
	recordIDOverrideCtl  = 0x08
	recordIDOverrideData = 0x08

	recordIDNumericSubtype = 0x40
	recordIDNumericLength  = 0x41
	recordIDNumericLimits  = 0x42
	recordIDArrayCount     = 0x50

	numericSubtypeUint  = 0x01
	numericSubtypeSint  = 0x02
	numericSubtypeFloat = 0x03
)

// DecoderTimeoutMS is the mid-frame stall duration after which the framing
// decoder discards a partial packet and resyncs to SOF.
const DecoderTimeoutMS = 100

// DataLimit is the maximum number of variables a Server can register.
const DataLimit = 16

// MaxReceivePacketLength is the maximum payload length of a single inbound
// packet.
const MaxReceivePacketLength = 255

// PassThroughQueueCapacity is the usable capacity of the pass-through SPSC
// byte queue (storage is one slot larger, see ringqueue.go).
const PassThroughQueueCapacity = 256
