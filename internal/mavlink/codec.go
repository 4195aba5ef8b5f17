package mavlink

import (
	"fmt"
)

// Serialize always emits MAVLink v2 wire bytes, per the codec contract:
// v2 is the encoding this node produces, v1 is only ever decoded.
func Serialize(f *Frame) []byte {
	payload := f.Payload
	body := make([]byte, 0, 10+len(payload))
	body = append(body,
		byte(len(payload)),
		0, // incompatibility flags
		0, // compatibility flags
		f.Sequence,
		f.SystemID,
		f.ComponentID,
		byte(f.MessageID),
		byte(f.MessageID>>8),
		byte(f.MessageID>>16),
	)
	body = append(body, payload...)

	crc := crcAccumulate(0xFFFF, body...)
	crc = crcAccumulate(crc, crcExtra(f.MessageID))

	out := make([]byte, 0, 1+len(body)+2)
	out = append(out, magicV2)
	out = append(out, body...)
	out = append(out, byte(crc), byte(crc>>8))
	return out
}

// Deserialize attempts a v2 decode first; on failure it rewinds and
// attempts v1. A frame decoded off the v1 wire is tagged ProtocolVersion
// V2 on the way out — a known quirk preserved from the source this node
// was distilled from, not a bug to fix here.
func Deserialize(buf []byte) (*Frame, error) {
	if f, err := deserializeV2(buf); err == nil {
		return f, nil
	}
	if f, err := deserializeV1(buf); err == nil {
		f.ProtocolVersion = V2
		return f, nil
	}
	return nil, fmt.Errorf("mavlink: unrecognized frame bytes: % x", buf)
}

func deserializeV2(buf []byte) (*Frame, error) {
	const headerLen = 10 // magic + len + incompat + compat + seq + sysid + compid + 3-byte msgid
	if len(buf) < headerLen+2 {
		return nil, fmt.Errorf("mavlink v2: short buffer (%d bytes)", len(buf))
	}
	if buf[0] != magicV2 {
		return nil, fmt.Errorf("mavlink v2: bad magic 0x%02x", buf[0])
	}

	length := int(buf[1])
	if len(buf) < headerLen+length+2 {
		return nil, fmt.Errorf("mavlink v2: truncated payload (want %d, have %d)", length, len(buf)-headerLen-2)
	}

	seq := buf[4]
	sysID := buf[5]
	compID := buf[6]
	msgID := uint32(buf[7]) | uint32(buf[8])<<8 | uint32(buf[9])<<16

	crc := crcAccumulate(0xFFFF, buf[1:headerLen+length]...)
	crc = crcAccumulate(crc, crcExtra(msgID))
	wantLo, wantHi := buf[headerLen+length], buf[headerLen+length+1]
	if byte(crc) != wantLo || byte(crc>>8) != wantHi {
		return nil, fmt.Errorf("mavlink v2: CRC mismatch (want 0x%02x%02x, got 0x%04x)", wantHi, wantLo, crc)
	}

	payload := append([]byte(nil), buf[headerLen:headerLen+length]...)

	return &Frame{
		ProtocolVersion: V2,
		Sequence:        seq,
		SystemID:        sysID,
		ComponentID:     compID,
		MessageID:       msgID,
		Payload:         payload,
	}, nil
}

func deserializeV1(buf []byte) (*Frame, error) {
	const headerLen = 6 // magic + len + seq + sysid + compid + msgid
	if len(buf) < headerLen+2 {
		return nil, fmt.Errorf("mavlink v1: short buffer (%d bytes)", len(buf))
	}
	if buf[0] != magicV1 {
		return nil, fmt.Errorf("mavlink v1: bad magic 0x%02x", buf[0])
	}

	length := int(buf[1])
	if len(buf) < headerLen+length+2 {
		return nil, fmt.Errorf("mavlink v1: truncated payload (want %d, have %d)", length, len(buf)-headerLen-2)
	}

	seq := buf[2]
	sysID := buf[3]
	compID := buf[4]
	msgID := uint32(buf[5])

	crc := crcAccumulate(0xFFFF, buf[1:headerLen+length]...)
	crc = crcAccumulate(crc, crcExtra(msgID))
	wantLo, wantHi := buf[headerLen+length], buf[headerLen+length+1]
	if byte(crc) != wantLo || byte(crc>>8) != wantHi {
		return nil, fmt.Errorf("mavlink v1: CRC mismatch (want 0x%02x%02x, got 0x%04x)", wantHi, wantLo, crc)
	}

	payload := append([]byte(nil), buf[headerLen:headerLen+length]...)

	return &Frame{
		ProtocolVersion: V1,
		Sequence:        seq,
		SystemID:        sysID,
		ComponentID:     compID,
		MessageID:       msgID,
		Payload:         payload,
	}, nil
}

// serializeV1 exists only so tests can construct a v1-on-the-wire byte
// sequence without hand-assembling headers (mirrors S4 in spec.md §8).
func serializeV1(f *Frame) []byte {
	payload := f.Payload
	body := make([]byte, 0, 5+len(payload))
	body = append(body, byte(len(payload)), f.Sequence, f.SystemID, f.ComponentID, byte(f.MessageID))
	body = append(body, payload...)

	crc := crcAccumulate(0xFFFF, body...)
	crc = crcAccumulate(crc, crcExtra(f.MessageID))

	out := make([]byte, 0, 1+len(body)+2)
	out = append(out, magicV1)
	out = append(out, body...)
	out = append(out, byte(crc), byte(crc>>8))
	return out
}
