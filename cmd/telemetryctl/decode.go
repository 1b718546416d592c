package main

import (
	"fmt"
	"math"
)

// Wire constants duplicated from the device-side telemetry package rather
// than imported, following Thermoquad-heliostat's own convention of
// keeping its CLI's protocol constants local to main.go instead of
// depending on pkg/helios_protocol for a read-only decode/print tool.
const (
	sof0      = 0x05
	sof1      = 0x39
	stuffByte = 0x00

	opHeader = 0x81
	opData   = 0x01

	idTerminator = 0x00

	dataTypeNumeric      = 0x01
	dataTypeNumericArray = 0x02

	recTerminator   = 0x00
	recInternalName = 0x01
	recDisplayName  = 0x02
	recUnits        = 0x03
	recSubtype      = 0x40
	recLength       = 0x41
	recLimits       = 0x42
	recArrayCount   = 0x50

	subtypeUint  = 0x01
	subtypeSint  = 0x02
	subtypeFloat = 0x03
)

// variableMeta is what the header frame taught us about one data ID; data
// frames only carry raw bytes, so decoding them requires having already
// seen the header.
type variableMeta struct {
	id           uint8
	internalName string
	displayName  string
	units        string
	dataType     uint8
	subtype      uint8
	length       uint8
	arrayCount   uint32
}

// frame is one fully reassembled, destuffed telemetry frame.
type frame struct {
	opcode   uint8
	sequence uint8
	payload  []byte
}

type frameState int

const (
	fsSOF frameState = iota
	fsLength
	fsData
	fsDataDestuff
	fsDataDestuffEnd
)

// frameDecoder mirrors the device-side framing state machine but only
// reassembles frames for inspection — it has no variable registry to
// dispatch into.
type frameDecoder struct {
	state        frameState
	pos          int
	packetLength int
	buf          []byte
}

func (d *frameDecoder) decodeByte(b byte) *frame {
	switch d.state {
	case fsSOF:
		want := byte(sof0)
		if d.pos == 1 {
			want = sof1
		}
		if b == want {
			d.pos++
			if d.pos >= 2 {
				d.pos = 0
				d.packetLength = 0
				d.state = fsLength
			}
		} else {
			d.pos = 0
		}
		return nil

	case fsLength:
		d.packetLength = (d.packetLength << 8) | int(b)
		d.pos++
		if d.pos >= 2 {
			d.pos = 0
			d.buf = d.buf[:0]
			d.state = fsData
		}
		return nil

	case fsData:
		d.buf = append(d.buf, b)
		d.pos++
		if d.pos >= d.packetLength {
			f := d.finish()
			d.pos = 0
			if b == sof0 {
				d.state = fsDataDestuffEnd
			} else {
				d.state = fsSOF
			}
			return f
		}
		if b == sof0 {
			d.state = fsDataDestuff
		}
		return nil

	case fsDataDestuff:
		d.state = fsData
		return nil

	case fsDataDestuffEnd:
		d.state = fsSOF
		return nil
	}
	return nil
}

func (d *frameDecoder) finish() *frame {
	if len(d.buf) < 2 {
		return nil
	}
	return &frame{opcode: d.buf[0], sequence: d.buf[1], payload: append([]byte(nil), d.buf[2:]...)}
}

// parseHeader walks a header frame's payload and returns the variable
// metadata it describes.
func parseHeader(f *frame) ([]*variableMeta, error) {
	p := f.payload
	i := 0

	readU8 := func() (uint8, error) {
		if i >= len(p) {
			return 0, fmt.Errorf("header truncated")
		}
		v := p[i]
		i++
		return v, nil
	}
	readU32 := func() (uint32, error) {
		if i+4 > len(p) {
			return 0, fmt.Errorf("header truncated")
		}
		v := uint32(p[i])<<24 | uint32(p[i+1])<<16 | uint32(p[i+2])<<8 | uint32(p[i+3])
		i += 4
		return v, nil
	}
	readString := func() (string, error) {
		start := i
		for i < len(p) && p[i] != 0 {
			i++
		}
		if i >= len(p) {
			return "", fmt.Errorf("unterminated string")
		}
		s := string(p[start:i])
		i++
		return s, nil
	}

	var vars []*variableMeta
	for {
		dataID, err := readU8()
		if err != nil {
			return nil, err
		}
		if dataID == idTerminator {
			break
		}
		dataType, err := readU8()
		if err != nil {
			return nil, err
		}
		v := &variableMeta{id: dataID, dataType: dataType}

		for {
			recID, err := readU8()
			if err != nil {
				return nil, err
			}
			if recID == recTerminator {
				break
			}
			switch recID {
			case recInternalName:
				v.internalName, err = readString()
			case recDisplayName:
				v.displayName, err = readString()
			case recUnits:
				v.units, err = readString()
			case recSubtype:
				v.subtype, err = readU8()
			case recLength:
				v.length, err = readU8()
			case recArrayCount:
				v.arrayCount, err = readU32()
			case recLimits:
				if i+int(v.length)*2 > len(p) {
					err = fmt.Errorf("header truncated in limits")
				}
				i += int(v.length) * 2
			default:
				err = fmt.Errorf("unknown record id 0x%02X", recID)
			}
			if err != nil {
				return nil, err
			}
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// formatData renders a data frame using metadata already learned from a
// prior header frame.
func formatData(f *frame, registry map[uint8]*variableMeta) string {
	p := f.payload
	i := 0
	result := fmt.Sprintf("DATA seq=%d\n", f.sequence)

	for i < len(p) {
		dataID := p[i]
		i++
		if dataID == idTerminator {
			break
		}
		meta, ok := registry[dataID]
		if !ok {
			result += fmt.Sprintf("  id=%d: unknown variable (no header seen yet)\n", dataID)
			break
		}

		if meta.dataType == dataTypeNumericArray {
			result += fmt.Sprintf("  %s = [", meta.displayName)
			for e := uint32(0); e < meta.arrayCount; e++ {
				v, n := decodeScalar(meta.subtype, meta.length, p[i:])
				i += n
				if e > 0 {
					result += ", "
				}
				result += v
			}
			result += fmt.Sprintf("] %s\n", meta.units)
		} else {
			v, n := decodeScalar(meta.subtype, meta.length, p[i:])
			i += n
			result += fmt.Sprintf("  %s = %s %s\n", meta.displayName, v, meta.units)
		}
	}
	return result
}

func decodeScalar(subtype, length uint8, p []byte) (string, int) {
	switch length {
	case 1:
		if len(p) < 1 {
			return "?", 1
		}
		if subtype == subtypeSint {
			return fmt.Sprintf("%d", int8(p[0])), 1
		}
		return fmt.Sprintf("%d", p[0]), 1

	case 2:
		if len(p) < 2 {
			return "?", 2
		}
		v := uint16(p[0])<<8 | uint16(p[1])
		if subtype == subtypeSint {
			return fmt.Sprintf("%d", int16(v)), 2
		}
		return fmt.Sprintf("%d", v), 2

	case 4:
		if len(p) < 4 {
			return "?", 4
		}
		v := uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
		switch subtype {
		case subtypeSint:
			return fmt.Sprintf("%d", int32(v)), 4
		case subtypeFloat:
			return fmt.Sprintf("%g", math.Float32frombits(v)), 4
		default:
			return fmt.Sprintf("%d", v), 4
		}
	}
	return "?", 0
}
