package mavlink

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/ardupilotmega"
)

// HeartbeatMessageID is the ArduPilotMega dialect HEARTBEAT message id.
const HeartbeatMessageID uint32 = 0

// HeaderFactory hands out sequenced MAVLink headers and HEARTBEAT frames
// for the process's current NodeRole. Each factory holds its own sequence
// counter, and it needs no lock: an atomically incrementing counter
// wrapping on uint8 overflow.
type HeaderFactory struct {
	seq atomic.Uint32
}

// NewHeaderFactory constructs a header factory starting at sequence 0.
func NewHeaderFactory() *HeaderFactory {
	return &HeaderFactory{}
}

// NextSequence returns the next 8-bit sequence number, wrapping mod 256.
func (f *HeaderFactory) NextSequence() byte {
	return byte(f.seq.Add(1) - 1)
}

// Heartbeat emits a freshly sequenced HEARTBEAT frame for the process's
// current role: type=QUADROTOR, autopilot=ARDUPILOTMEGA, base_mode=empty,
// system_status=STANDBY, mavlink_version=3.
func (f *HeaderFactory) Heartbeat() *Frame {
	role := CurrentRole()
	return &Frame{
		ProtocolVersion: V2,
		Sequence:        f.NextSequence(),
		SystemID:        role.SystemID(),
		ComponentID:     ComponentID,
		MessageID:       HeartbeatMessageID,
		Payload:         encodeHeartbeatPayload(),
	}
}

// encodeHeartbeatPayload lays out the HEARTBEAT message body in MAVLink
// wire order: the 4-byte field first, then the five 1-byte fields.
func encodeHeartbeatPayload() []byte {
	const customMode uint32 = 0
	payload := make([]byte, 9)
	binary.LittleEndian.PutUint32(payload[0:4], customMode)
	payload[4] = byte(ardupilotmega.MAV_TYPE_QUADROTOR)
	payload[5] = byte(ardupilotmega.MAV_AUTOPILOT_ARDUPILOTMEGA)
	payload[6] = 0 // base_mode: empty
	payload[7] = byte(ardupilotmega.MAV_STATE_STANDBY)
	payload[8] = 3 // mavlink_version
	return payload
}

// HeartbeatFields decodes the subset of a HEARTBEAT payload this node
// cares about, used by tests asserting on a decoded frame's content.
type HeartbeatFields struct {
	CustomMode     uint32
	Type           byte
	Autopilot      byte
	BaseMode       byte
	SystemStatus   byte
	MavlinkVersion byte
}

func DecodeHeartbeatPayload(payload []byte) (HeartbeatFields, bool) {
	if len(payload) < 9 {
		return HeartbeatFields{}, false
	}
	return HeartbeatFields{
		CustomMode:     binary.LittleEndian.Uint32(payload[0:4]),
		Type:           payload[4],
		Autopilot:      payload[5],
		BaseMode:       payload[6],
		SystemStatus:   payload[7],
		MavlinkVersion: payload[8],
	}, true
}
