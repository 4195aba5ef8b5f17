// Package lorasx126x adapts internal/radio/sx126x's register/command layer
// into the half-duplex netif.Driver contract, following the bring-up
// sequence of apps/wbs/internal/lora/lora.go's Setup(): hard reset, standby,
// packet type, image calibration, RF frequency, TX params, buffer base
// addresses, modulation params, packet params, DIO IRQ mask, sync word,
// DIO2-as-RF-switch. RX continuous is armed afterwards by PrepareToReceive,
// not by the bring-up itself.
package lorasx126x

import (
	"context"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"mavrelay/internal/driver"
	"mavrelay/internal/mavlink"
	"mavrelay/internal/netif"
	"mavrelay/internal/obslog"
	"mavrelay/internal/radio/sx126x"
)

const identity = "lora_sx1262_spi_driver"

// irqMask is the fixed DIO IRQ mask this driver arms on bring-up: TX done,
// RX done, timeout, CRC error, header error.
const irqMask = sx126x.IrqTxDone | sx126x.IrqRxDone | sx126x.IrqTimeout | sx126x.IrqCrcErr | sx126x.IrqHeaderErr

// Profile is the LoRa PHY configuration this driver is constructed with,
// matching spec.md §3's ModulationProfile: immutable after construction,
// shared defaults with the SX127x variant.
type Profile struct {
	SpreadingFactor uint8
	BandwidthHz     uint64
	CodingRate      uint8
	FrequencyHz     uint64
	PreambleLength  uint16
	CRC             bool
	IQInverted      bool
	TxPowerDbm      int8
}

// Driver wraps an sx126x.Device with the Driver-contract methods. A mutex
// guards the mode-transition commands issued by PrepareToSend and
// PrepareToReceive (SetTx/SetRx); Send and Receive do not take it.
type Driver struct {
	mu sync.Mutex

	dev *sx126x.Device
}

// New runs the SX126x bring-up sequence over conn using profile and returns
// a ready Driver. Any failure here is a driver-configuration failure per
// spec §7: fatal, returned to the caller for process abort.
func New(conn spi.Conn, profile Profile) (*Driver, error) {
	cfg := &sx126x.Config{
		Enable:          true,
		Modem:           "lora",
		Bandwidth:       profile.BandwidthHz,
		SpreadingFactor: profile.SpreadingFactor,
		CodingRate:      profile.CodingRate,
		Frequency:       profile.FrequencyHz,
		PreambleLength:  profile.PreambleLength,
		PayloadLength:   mavlink.MaxPayloadLen,
		CRC:             profile.CRC,
		InvertedIQ:      profile.IQInverted,
		SyncWord:        0x1424,
		TransmitPower:   profile.TxPowerDbm,
		StandbyMode:     "rc",
		SleepMode:       "warm_start",
		FrequencyRange:  []uint16{863, 870},
		RampTime:        800,
		DIO2AsRfSwitch:  true,
		RxQueueSize:     16,
		TxQueueSize:     16,
		RxBufferAddress: 128,
		TxBufferAddress: 0,
		Pins: &sx126x.Pins{
			Reset: "GPIO18",
			Busy:  "GPIO20",
			DIO:   "GPIO16",
			TxEn:  "GPIO6",
		},
	}

	dev, err := sx126x.New(conn, cfg)
	if err != nil {
		return nil, err
	}

	if err := bringUp(dev, cfg); err != nil {
		return nil, fmt.Errorf("lorasx126x: bring-up failed: %w", err)
	}

	obslog.DriverCreated(identity)
	return &Driver{dev: dev}, nil
}

func bringUp(dev *sx126x.Device, cfg *sx126x.Config) error {
	if err := dev.HardReset(); err != nil {
		return err
	}
	if err := dev.SetStandby(sx126x.StandbyRc); err != nil {
		return err
	}
	if err := dev.SetPacketType(sx126x.PacketTypeLoRa); err != nil {
		return err
	}
	if err := dev.CalibrateImage(sx126x.CalImg863, sx126x.CalImg870); err != nil {
		return err
	}
	if err := dev.SetRfFrequency(physic.Frequency(cfg.Frequency) * physic.Hertz); err != nil {
		return err
	}
	if err := dev.SetTxParams(cfg.TransmitPower, sx126x.PaRamp800u); err != nil {
		return err
	}
	if err := dev.SetBufferBaseAddress(cfg.TxBufferAddress, cfg.RxBufferAddress); err != nil {
		return err
	}

	modulation := dev.ModulationConfigLoRa(cfg.SpreadingFactor, cfg.CodingRate, physic.Frequency(cfg.Bandwidth)*physic.Hertz, cfg.LDRO)
	if err := dev.SetModulationParams(modulation); err != nil {
		return err
	}

	crc := sx126x.CrcOff
	if cfg.CRC {
		crc = sx126x.CrcOn
	}
	iq := sx126x.IqStandard
	if cfg.InvertedIQ {
		iq = sx126x.IqInverted
	}
	packet := dev.PacketLoRaConfig(cfg.PreambleLength, sx126x.HeaderExplicit, cfg.PayloadLength, crc, iq)
	if err := dev.SetPacketParams(packet); err != nil {
		return err
	}

	if err := dev.SetDioIrqParams(irqMask); err != nil {
		return err
	}
	if _, err := dev.WriteRegister(uint16(sx126x.RegLoraSyncWordMsb), []uint8{uint8(cfg.SyncWord >> 8), uint8(cfg.SyncWord)}); err != nil {
		return err
	}
	if err := dev.SetDIO2AsRfSwitchCtrl(cfg.DIO2AsRfSwitch); err != nil {
		return err
	}

	return nil
}

func (d *Driver) Identity() string         { return identity }
func (d *Driver) LinkRole() netif.LinkRole { return netif.HalfDuplex }

// PrepareToSend arms TX mode with the configured power and packet params.
func (d *Driver) PrepareToSend(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dev.SetTx(0)
}

// PrepareToReceive arms RX continuous mode. Idempotent: called with no
// intervening TX it simply re-issues the same command (S6).
func (d *Driver) PrepareToReceive(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dev.SetRx(uint32(sx126x.RxContinuous))
}

// ReadyToReceive blocks until the DIO interrupt line signals RX-done (or
// another armed IRQ condition), or ctx is cancelled.
func (d *Driver) ReadyToReceive(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.dev.WaitForIRQ(0)
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send writes the serialized frame into the TX buffer and executes a TX.
func (d *Driver) Send(ctx context.Context, f *mavlink.Frame) {
	wire := mavlink.Serialize(f)
	if _, err := d.dev.WriteBuffer(d.dev.Config.TxBufferAddress, wire); err != nil {
		obslog.PacketSendFailed(identity, err)
		return
	}
	if err := d.dev.SetTx(0); err != nil {
		obslog.PacketSendFailed(identity, err)
		return
	}
	obslog.PacketSent(identity, f.MessageID, f.Sequence)
}

// Receive processes the IRQ event that ReadyToReceive just observed: on
// RxDone it copies the receive buffer, attempts a frame parse, and logs
// RSSI/SNR; on any other IRQ state it returns nil (spec §4.1).
func (d *Driver) Receive(ctx context.Context) *mavlink.Frame {
	status, err := d.dev.GetIrqStatus()
	if err != nil {
		obslog.PacketReceiveDropped(identity, "irq status read error")
		return nil
	}
	defer d.dev.ClearIrqStatus(irqMask)

	if sx126x.IrqMask(status)&sx126x.IrqRxDone == 0 {
		obslog.PacketReceiveDropped(identity, "irq asserted for a non-RxDone condition")
		return nil
	}

	buf, err := d.dev.GetRxBufferStatus()
	if err != nil {
		obslog.PacketReceiveDropped(identity, "rx buffer status read error")
		return nil
	}

	raw := make([]byte, buf.RXPayloadLength)
	if _, err := d.dev.ReadBuffer(buf.RXStartPointer, raw); err != nil {
		obslog.PacketReceiveDropped(identity, "rx buffer read error")
		return nil
	}

	frame, err := mavlink.Deserialize(raw)
	if err != nil {
		obslog.ParseError(identity, raw, err)
		return nil
	}

	report := driver.RxReport{Frame: frame}
	if packetStatus, err := d.dev.GetPacketStatus(); err == nil {
		report.RSSI = int(packetStatus.SignalStrength)
		report.SNR = float64(packetStatus.SnRRatio)
	}
	obslog.RxSignal(identity, report.RSSI, report.SNR)

	obslog.PacketReceived(identity, frame.MessageID, frame.Sequence)
	return report.Frame
}

// Close releases the underlying modem, per Close's preserved sleep-mode
// parameter.
func (d *Driver) Close() error {
	return d.dev.Close(sx126x.SleepWarmStart)
}
