// Package lorauart drives an E22-style SX1262 UART adapter, grounded on
// original_source/src/utils/lora_serial.rs's Sx1262UartE22: M0/M1 GPIO mode
// pins select normal vs. configuration mode, a fixed-shape config command
// is written and retried up to two times on a missing 0xC1 acknowledgement,
// and the wire frame prepends address/frequency-offset bytes ahead of the
// MAVLink payload.
package lorauart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"mavrelay/internal/driver"
	"mavrelay/internal/mavlink"
	"mavrelay/internal/netif"
	"mavrelay/internal/obslog"
)

const identity = "lora_sx1262_uart_driver"

// configAckByte is the leading byte of a successful config acknowledgement
// frame; cfgRetries is how many times the config command is retried before
// giving up, both straight from lora_serial.rs's set().
const configAckByte = 0xC1
const cfgRetries = 2

// readDelay is the fixed settle time lora_serial.rs sleeps after switching
// mode and after writing, preserved here rather than made configurable
// (spec.md §9(c)).
const readDelay = 300 * time.Millisecond

// Profile is this driver's construction-time configuration: addresses,
// air-speed, buffer size, power level, optional encryption key and
// RSSI/noise reporting, and the frequency this node's E22 module is tuned
// to (own_high/low + offset in the wire frame are derived from it).
type Profile struct {
	OwnAddress  uint16
	PeerAddress uint16
	FrequencyHz uint32
	AirSpeed    uint8
	BufferSize  uint8
	PowerLevel  uint8
	CryptKey    uint16
	ReportRSSI  bool
}

type pins struct {
	m0 gpio.PinOut
	m1 gpio.PinOut
}

// Driver wraps a UART connection to an E22/SX1262 adapter plus its M0/M1
// mode-select pins.
type Driver struct {
	mu sync.Mutex

	conn       conn.Conn
	pins       *pins
	ownAddress uint16
	startFreq  uint16
	offsetFreq uint16
	reportRSSI bool
	pending    []byte
}

// m0PinName / m1PinName are the E22 adapter's fixed mode-select pins, per
// lora_serial.rs's M0_PIN/M1_PIN constants.
const m0PinName = "GPIO22"
const m1PinName = "GPIO27"

// New opens the M0/M1 pins, runs the configuration command sequence and
// returns a ready Driver.
func New(c conn.Conn, profile Profile) (*Driver, error) {
	m0 := gpioreg.ByName(m0PinName)
	if m0 == nil {
		return nil, fmt.Errorf("lorauart: M0 pin not found: %s", m0PinName)
	}
	m1 := gpioreg.ByName(m1PinName)
	if m1 == nil {
		return nil, fmt.Errorf("lorauart: M1 pin not found: %s", m1PinName)
	}

	d := &Driver{
		conn:       c,
		pins:       &pins{m0: m0, m1: m1},
		ownAddress: profile.OwnAddress,
		reportRSSI: profile.ReportRSSI,
	}

	if err := d.configure(profile); err != nil {
		return nil, fmt.Errorf("lorauart: configuration failed: %w", err)
	}

	obslog.DriverCreated(identity)
	return d, nil
}

// setMode drives M0/M1 per lora_serial.rs's set_mode: (false,false) normal,
// (false,true) configuration.
func (d *Driver) setMode(m0, m1 gpio.Level) error {
	if err := d.pins.m0.Out(m0); err != nil {
		return fmt.Errorf("M0 pin: %w", err)
	}
	if err := d.pins.m1.Out(m1); err != nil {
		return fmt.Errorf("M1 pin: %w", err)
	}
	return nil
}

func frequencySplit(hz uint32) (startFreq, offset uint16) {
	mhz := uint16(hz / 1_000_000)
	if mhz > 850 {
		return 850, mhz - 850
	}
	return 410, mhz - 410
}

// configure writes the 12-byte config command, matching lora_serial.rs's
// set(): address, net id, air-speed/baud byte, buffer-size/power byte,
// frequency offset, RSSI-report bit, encryption key bytes.
func (d *Driver) configure(p Profile) error {
	if err := d.setMode(gpio.Low, gpio.High); err != nil {
		return err
	}
	time.Sleep(readDelay / 3)

	startFreq, offset := frequencySplit(p.FrequencyHz)
	d.startFreq = startFreq
	d.offsetFreq = offset

	rssiBit := byte(0x00)
	if p.ReportRSSI {
		rssiBit = 0x80
	}

	cmd := []byte{
		0xC2, 0x00, 0x09,
		byte(p.OwnAddress >> 8), byte(p.OwnAddress),
		0x00, // net id
		0x60 | p.AirSpeed,
		p.BufferSize | p.PowerLevel | 0x20,
		byte(offset),
		0x43 | rssiBit,
		byte(p.CryptKey >> 8), byte(p.CryptKey),
	}

	var ackErr error
	for attempt := 0; attempt <= cfgRetries; attempt++ {
		if err := d.write(cmd); err != nil {
			return err
		}
		time.Sleep(readDelay)

		resp, err := d.read()
		if err != nil {
			ackErr = err
			continue
		}
		if len(resp) > 0 && resp[0] == configAckByte {
			ackErr = nil
			break
		}
		ackErr = fmt.Errorf("no 0x%02X acknowledgement, got % x", configAckByte, resp)
		time.Sleep(readDelay / 3 * 2)
	}

	if err := d.setMode(gpio.Low, gpio.Low); err != nil {
		return err
	}
	time.Sleep(readDelay / 3)

	return ackErr
}

func (d *Driver) write(data []byte) error {
	return d.conn.Tx(data, nil)
}

func (d *Driver) read() ([]byte, error) {
	buf := make([]byte, 1024)
	if err := d.conn.Tx(nil, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (d *Driver) Identity() string         { return identity }
func (d *Driver) LinkRole() netif.LinkRole { return netif.HalfDuplex }

// PrepareToSend is a no-op: the module is already in normal mode and the
// wire frame itself (addresses + frequency offset) carries the routing
// this family needs per send.
func (d *Driver) PrepareToSend(ctx context.Context) error { return nil }

// PrepareToReceive is a no-op for the same reason: normal mode serves both
// directions on this adapter.
func (d *Driver) PrepareToReceive(ctx context.Context) error { return nil }

// ReadyToReceive blocks on the UART read itself (this adapter has no
// interrupt line to wait on separately, unlike the SPI variants) and
// stashes whatever comes back for the following Receive call.
func (d *Driver) ReadyToReceive(ctx context.Context) error {
	done := make(chan []byte, 1)
	go func() {
		raw, err := d.read()
		if err != nil {
			close(done)
			return
		}
		done <- raw
	}()

	select {
	case raw, ok := <-done:
		if !ok {
			return fmt.Errorf("lorauart: UART read failed")
		}
		d.mu.Lock()
		d.pending = raw
		d.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send prepends the peer address/own address/frequency-offset header bytes
// ahead of the serialized frame and writes it, matching lora_serial.rs's
// send().
func (d *Driver) Send(ctx context.Context, f *mavlink.Frame) {
	wire := mavlink.Serialize(f)

	// The destination address bytes are always zero; Profile.PeerAddress is
	// not written into the header.
	peerHigh := byte(0)
	peerLow := byte(0)

	header := []byte{
		peerHigh, peerLow, byte(d.offsetFreq),
		byte(d.ownAddress >> 8), byte(d.ownAddress), byte(d.offsetFreq),
	}
	frame := append(header, wire...)

	d.mu.Lock()
	err := d.write(frame)
	d.mu.Unlock()

	if err != nil {
		obslog.PacketSendFailed(identity, err)
		return
	}
	obslog.PacketSent(identity, f.MessageID, f.Sequence)
}

// Receive reads a frame off the UART, stripping the 3-byte address/
// frequency header, and when RSSI reporting is enabled, the trailing RSSI
// and noise bytes the adapter appends to that same read once its 0x20
// buffer-size config bit is set (see DESIGN.md Open Question 6 on why this
// is one UART transaction, not a second "read channel RSSI" command).
func (d *Driver) Receive(ctx context.Context) *mavlink.Frame {
	d.mu.Lock()
	raw := d.pending
	d.pending = nil
	d.mu.Unlock()

	if len(raw) < 3 {
		obslog.PacketReceiveDropped(identity, "short or missing UART read")
		return nil
	}

	payload := raw[3:]
	report := driver.RxReport{}

	if d.reportRSSI && len(payload) >= 2 {
		report.RSSI = int(int8(payload[len(payload)-2]))
		report.Noise = int(payload[len(payload)-1])
		payload = payload[:len(payload)-2]
	}

	frame, err := mavlink.Deserialize(payload)
	if err != nil {
		obslog.ParseError(identity, payload, err)
		return nil
	}
	report.Frame = frame

	obslog.RxSignal(identity, report.RSSI, float64(report.Noise))
	obslog.PacketReceived(identity, frame.MessageID, frame.Sequence)
	return report.Frame
}

// Close does nothing and returns nil: the E22 family has no dedicated sleep
// register reachable over this wire format, and the mode pins are left in
// their last-set state.
func (d *Driver) Close() error {
	return nil
}
