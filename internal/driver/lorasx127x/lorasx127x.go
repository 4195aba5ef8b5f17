// Package lorasx127x adapts internal/radio/sx127x's register-level layer
// into the half-duplex netif.Driver contract, mirroring lorasx126x's shape:
// a New() that runs the chip's bring-up sequence and a thin Driver wrapper
// around SetTx/SetRx-equivalent mode transitions.
package lorasx127x

import (
	"context"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/spi"

	"mavrelay/internal/driver"
	"mavrelay/internal/mavlink"
	"mavrelay/internal/netif"
	"mavrelay/internal/obslog"
	"mavrelay/internal/radio/sx127x"
)

const identity = "lora_sx1276_spi_driver"

// irqWaitPoll is how often ReadyToReceive re-checks DIO0 while racing
// context cancellation; WaitForIRQ itself takes a single timeout rather
// than a context, so the wait is chunked into short polls.
const irqWaitPoll = 20 * time.Millisecond

// Profile is the LoRa PHY configuration this driver is constructed with,
// the SX127x counterpart of lorasx126x.Profile.
type Profile struct {
	SpreadingFactor uint8
	BandwidthHz     uint32
	CodingRate      uint8
	FrequencyHz     uint32
	PreambleLength  uint16
	CRC             bool
	HeaderImplicit  bool
	SyncWord        uint8
	TxPowerDbm      int8
}

// Driver wraps an sx127x.Device with the Driver-contract methods. A mutex
// guards the mode-transition registers (RegOpMode, RegDioMapping1) since
// the bring-up, send, and receive paths all touch them.
type Driver struct {
	mu sync.Mutex

	dev *sx127x.Device
}

// New runs the SX127x bring-up sequence over conn using profile and returns
// a ready Driver.
func New(conn spi.Conn, profile Profile) (*Driver, error) {
	cfg := &sx127x.Config{
		Enable:          true,
		SpreadingFactor: profile.SpreadingFactor,
		Bandwidth:       profile.BandwidthHz,
		CodingRate:      profile.CodingRate,
		Frequency:       profile.FrequencyHz,
		PreambleLength:  profile.PreambleLength,
		HeaderImplicit:  profile.HeaderImplicit,
		CRC:             profile.CRC,
		SyncWord:        profile.SyncWord,
		TxPowerDbm:      profile.TxPowerDbm,
		Pins: &sx127x.Pins{
			Reset: "GPIO17",
			DIO0:  "GPIO4",
		},
	}

	dev, err := sx127x.New(conn, cfg)
	if err != nil {
		return nil, err
	}

	if err := dev.BringUp(); err != nil {
		return nil, fmt.Errorf("lorasx127x: bring-up failed: %w", err)
	}

	obslog.DriverCreated(identity)
	return &Driver{dev: dev}, nil
}

func (d *Driver) Identity() string         { return identity }
func (d *Driver) LinkRole() netif.LinkRole { return netif.HalfDuplex }

// PrepareToSend does nothing and returns nil: Send's Transmit call maps DIO0
// to TxDone and switches into TX itself, after loading the payload.
func (d *Driver) PrepareToSend(ctx context.Context) error {
	return nil
}

// PrepareToReceive arms RX continuous mode with DIO0 mapped to RxDone.
// Idempotent: re-issuing it with no intervening TX simply re-arms the same
// state (S6).
func (d *Driver) PrepareToReceive(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dev.EnterReceive()
}

// ReadyToReceive blocks until DIO0 rises or ctx is cancelled. WaitForEdge
// only accepts a duration, so the wait is polled in short slices to stay
// responsive to cancellation.
func (d *Driver) ReadyToReceive(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.dev.WaitForIRQ(irqWaitPoll) {
			return nil
		}
	}
}

// Send writes the serialized frame into the FIFO and switches into TX.
func (d *Driver) Send(ctx context.Context, f *mavlink.Frame) {
	wire := mavlink.Serialize(f)

	d.mu.Lock()
	err := d.dev.Transmit(wire)
	d.mu.Unlock()

	if err != nil {
		obslog.PacketSendFailed(identity, err)
		return
	}
	obslog.PacketSent(identity, f.MessageID, f.Sequence)
}

// Receive processes the IRQ event that ReadyToReceive just observed: on
// RxDone it drains the FIFO, attempts a frame parse, and logs RSSI/SNR.
func (d *Driver) Receive(ctx context.Context) *mavlink.Frame {
	d.mu.Lock()
	raw, status, err := d.dev.ReadPacket()
	d.mu.Unlock()

	if err != nil {
		obslog.PacketReceiveDropped(identity, err.Error())
		return nil
	}

	frame, err := mavlink.Deserialize(raw)
	if err != nil {
		obslog.ParseError(identity, raw, err)
		return nil
	}

	report := driver.RxReport{Frame: frame, RSSI: status.RSSI, SNR: status.SNR}
	obslog.RxSignal(identity, report.RSSI, report.SNR)
	obslog.PacketReceived(identity, frame.MessageID, frame.Sequence)
	return report.Frame
}

// Close puts the modem to sleep.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dev.WriteRegister(sx127x.RegOpMode, byte(sx127x.OpModeSleep))
}
