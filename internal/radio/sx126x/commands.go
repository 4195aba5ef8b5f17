package sx126x

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/physic"
)

// # 13.1.1 SetSleep
func (d *Device) SetSleep(mode SleepConfig) error {
	log := slog.With("func", "Device.SetSleep()", "params", "(SleepConfig)", "return", "(error)", "lib", "sx126x")
	log.Debug("Set the device in SLEEP mode with the lowest current consumption possible", "mode", mode)

	commands := []uint8{uint8(CmdSetSleep), uint8(mode)}
	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set sleep mode %v to %v: %w", CmdSetSleep, mode, err)
	}

	log.Info("SX126x modem sleep mode set", "mode", mode)
	return nil
}

// # 13.1.2 SetStandby
func (d *Device) SetStandby(mode StandbyMode) error {
	log := slog.With("func", "Device.SetStandby()", "params", "(StandbyMode)", "return", "(error)", "lib", "sx126x")
	log.Debug("Set the device in a configuration mode which is at an intermediate level of consumption", "mode", mode)

	commands := []uint8{uint8(CmdSetStandby), uint8(mode)}
	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set standby mode %v to %v: %w", CmdSetStandby, mode, err)
	}

	log.Info("SX126x modem standby mode set", "mode", mode)
	return nil
}

// # 13.1.4 SetTx
func (d *Device) SetTx(timeout uint32) error {
	log := slog.With("func", "Device.SetTx()", "params", "(uint32)", "return", "(error)", "lib", "sx126x")
	log.Debug("Set device in transmit mode", "timeout", timeout)

	commands := []uint8{
		uint8(CmdSetTx),
		uint8(timeout >> 16),
		uint8(timeout >> 8),
		uint8(timeout),
	}

	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set device in transmit mode %v with timeout %v: %w", CmdSetTx, timeout, err)
	}

	log.Info("SX126x modem set in transit mode")
	return nil
}

// # 13.1.5 SetRx
func (d *Device) SetRx(timeout uint32) error {
	log := slog.With("func", "Device.SetRx()", "params", "(uint32)", "return", "(error)", "lib", "sx126x")
	log.Debug("Set device in receiver mode", "timeout", timeout)

	commands := []uint8{
		uint8(CmdSetRx),
		uint8(timeout >> 16),
		uint8(timeout >> 8),
		uint8(timeout),
	}

	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set device in receiver mode %v with timeout %v: %w", CmdSetRx, timeout, err)
	}

	log.Info("SX126x modem set in receiver mode")
	return nil
}

// # 13.1.13 CalibrateImage
func (d *Device) CalibrateImage(freq1, freq2 CalibrationImageFreq) error {
	log := slog.With("func", "Device.CalibrateImage()", "params", "(CalibrationImageFreq, CalibrationImageFreq)", "return", "(error)", "lib", "sx126x")
	log.Debug("Device operating frequency band")

	commands := []uint8{uint8(CmdCalibrateImage), uint8(freq1), uint8(freq2)}
	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set modem frequency band: %v - %v: %w", freq1, freq2, err)
	}

	log.Info("SX126x modem frequency band set", "freq1", freq1, "freq2", freq2)
	return nil
}

// # 13.3.1 SetDioIrqParams
//
// This driver only ever runs the modem in LoRa mode, so the FSK-only
// SyncWordValid bit is always rejected.
func (d *Device) SetDioIrqParams(irqMask IrqMask, dioIRQ ...IrqMask) error {
	log := slog.With("func", "Device.SetDioIrqParams()", "params", "(uint16, ...uint16)", "return", "(error)", "lib", "sx126x")
	log.Debug("Mask or unmask the IRQ which can be triggered by the device")

	if irqMask&IrqSyncWordValid != 0 {
		return fmt.Errorf("SyncWordValid IRQ available only in FSK mode")
	}

	irqs := make([]uint8, 8) // IRQ mask + DIO1 + DIO2 + DIO3
	irqs[0] = uint8(irqMask >> 8)
	irqs[1] = uint8(irqMask)

	if len(dioIRQ) == 0 {
		irqs[2] = irqs[0]
		irqs[3] = irqs[1]
	} else if len(dioIRQ) > 0 && len(dioIRQ) <= 3 {
		for i, v := range dioIRQ {
			idx := 2 + (i * 2)
			irqs[idx] = uint8(v >> 8)
			irqs[idx+1] = uint8(v)
		}
	} else {
		return fmt.Errorf("Could not set IRQ na DIO masks; invalid number of IRQ params: %v", len(dioIRQ))
	}

	commands := append([]uint8{uint8(CmdSetDioIrqParams)}, irqs...)
	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set IRQ and DIO masks: %w", err)
	}

	log.Info("SX126x modem IRQ and DIO masks set")
	return nil
}

// # 13.3.3 GetIrqStatus
func (d *Device) GetIrqStatus() (uint16, error) {
	log := slog.With("func", "Device.GetIrqStatus()", "params", "(-)", "return", "(uint16, error)", "lib", "sx126x")
	log.Debug("Returns value of the IRQ register")

	commands := []uint8{uint8(CmdGetIrqStatus), OpCodeNop, OpCodeNop, OpCodeNop}
	rx := make([]uint8, len(commands))

	if err := d.SPI.Tx(commands, rx); err != nil {
		return 0, fmt.Errorf("Could not get IRQ register status: %w", err)
	}
	status := uint16(rx[2])<<8 | uint16(rx[3])

	if status&uint16(IrqSyncWordValid) != 0 {
		// It's not possible for this bit to be set in LoRa mode
		return 0, fmt.Errorf("Modem is LoRa, but FSK-specific bit is set: [%#x]", status)
	}

	log.Info("SX126x modem IRQ register value", "status", status)
	return status, nil
}

// # 13.3.4 ClearIrqStatus
func (d *Device) ClearIrqStatus(mask IrqMask) error {
	log := slog.With("func", "Device.ClearIrqStatus()", "params", "(uint16)", "return", "(error)", "lib", "sx126x")
	log.Debug("Clear IRQ register mask")

	if mask&IrqSyncWordValid != 0 {
		return fmt.Errorf("SyncWordValid IRQ available only in FSK mode")
	}

	commands := []uint8{uint8(CmdClearIrqStatus), OpCodeNop, uint8(mask >> 8), uint8(mask)}
	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not clear IRQ register mask: %w", err)
	}

	log.Info("SX126x modem IRQ register mask cleared", "mask", mask)
	return nil
}

// # 13.3.5 SetDIO2AsRfSwitchCtrl
func (d *Device) SetDIO2AsRfSwitchCtrl(enable bool) error {
	log := slog.With("func", "Device.SetDIO2AsRfSwitchCtrl()", "params", "(bool)", "return", "(error)", "lib", "sx126x")
	log.Debug("Configure DIO2 so that it can be used to control an external RF switch")

	extSw := Dio2AsIrq
	if enable {
		extSw = Dio2AsRfSwitch
	}

	commands := []uint8{uint8(CmdSetDio2AsRfSwitchCtrl), uint8(extSw)}
	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set DIO2 as external RF switch: %w", err)
	}

	log.Info("SX126x modem DIO2 set as external DIO switch", "enable", enable)
	return nil
}

// # 13.4.1 SetRfFrequency
func (d *Device) SetRfFrequency(frequency physic.Frequency) error {
	log := slog.With("func", "Device.SetRfFrequency()", "params", "(physic.Frequency)", "return", "(error)", "lib", "sx126x")
	log.Debug("Set the frequency of the RF frequency mode")

	freqHz := uint64(frequency / physic.Hertz)
	freqRf := (freqHz * RfFrequencyNom) / RfFrequencyXtal // Freq(Hz) * 2^25 / 32 MHz

	commands := []uint8{
		uint8(CmdSetRfFrequency),
		uint8(freqRf >> 24),
		uint8(freqRf >> 16),
		uint8(freqRf >> 8),
		uint8(freqRf),
	}

	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set RF frequency [% X]: %w", commands, err)
	}

	log.Info("SX126x modem frequency set", "frequency", fmt.Sprintf("%d MHz", frequency/physic.MegaHertz))
	return nil
}

// # 13.4.2 SetPacketType
//
// Command SetPacketType(...) must be the first of the radio configuration sequence.
func (d *Device) SetPacketType(packet PacketType) error {
	log := slog.With("func", "Device.SetPacketType()", "params", "(PacketType)", "return", "(error)", "lib", "sx126x")
	log.Debug("Set the SX126x radio in LoRa or in FSK mode")

	commands := []uint8{uint8(CmdSetPacketType), uint8(packet)}
	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set packet type %v: %w", packet, err)
	}

	log.Info("SX126x modem packet type set", "packet", packet)
	return nil
}

// # 13.4.4 SetTxParams
func (d *Device) SetTxParams(dbm int8, rampTime RampTime) error {
	log := slog.With("func", "Device.SetTxParams()", "params", "(int8, RampTime)", "return", "(error)", "lib", "sx126x")
	log.Debug("Set TX output power")

	commands := []uint8{uint8(CmdSetTxParams), uint8(dbm), uint8(rampTime)}
	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set TX output power %v and ramp time %v: %w", dbm, rampTime, err)
	}

	log.Info("SX126x modem TX output power set", "dbm", dbm, "rampTime", rampTime)
	return nil
}

// # 13.4.5 SetModulationParams
//
// LoRa-only: this driver never puts the modem in FSK mode, so the
// modulation parameters are always read off the flat SpreadingFactor/
// Bandwidth/CodingRate/LDRO fields rather than a per-modem sub-config.
func (d *Device) SetModulationParams(opts ...OptionsModulation) error {
	log := slog.With("func", "Device.SetModulationParams()", "params", "(...OptionsModulation)", "return", "(error)", "lib", "sx126x")
	log.Debug("Configure modulation parameters of the radio")

	cfg := ConfigModulation{}

	bw, bwOk := loraBandwidth(physic.Frequency(d.Config.Bandwidth * uint64(physic.Hertz)))
	if !bwOk {
		bw = uint8(LoRaBW_125)
		log.Warn("Unsupported bandwidth in LoRa mode", "bw", d.Config.Bandwidth)
		log.Warn("Setting bandwidth to 125 kHz")
	}

	sf := d.Config.SpreadingFactor
	if sf < 5 || sf > 12 {
		sf = 7
		log.Warn("Unsupported Spreading Factor", "spreadingFactor", d.Config.SpreadingFactor)
		log.Warn("Setting Spreading Factor to 7")
	}

	cr, crOk := loraCodingRate(d.Config.CodingRate)
	if !crOk {
		cr = uint8(LoRaCR_4_5)
		log.Warn("Unsupported Coding Rate", "codingRate", d.Config.CodingRate)
		log.Warn("Setting Coding Rate to 4/5")
	}

	ld := uint8(LDRO_OFF)
	if d.Config.LDRO {
		ld = uint8(LDRO_ON)
	}

	cfg.SpreadingFactor = sf
	cfg.Bandwidth = bw
	cfg.CodingRate = cr
	cfg.LDRO = ld

	for _, opt := range opts {
		opt(&cfg)
	}

	commands := []uint8{
		uint8(CmdSetModulationParams),
		cfg.SpreadingFactor, cfg.Bandwidth,
		cfg.CodingRate, cfg.LDRO,
	}

	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set modulation params: %w", err)
	}

	log.Info("SX126x modem modulation params set")
	return nil
}

// # 13.4.6 SetPacketParams
//
// LoRa-only, for the same reason as SetModulationParams.
func (d *Device) SetPacketParams(opts ...OptionsPacket) error {
	log := slog.With("func", "Device.SetPacketParams()", "params", "(...OptionsParams)", "return", "(error)", "lib", "sx126x")
	log.Debug("Set parameters of the packet handling block")

	cfg := ConfigPacket{}

	headerType := uint8(HeaderExplicit)
	if d.Config.HeaderImplicit {
		headerType = uint8(HeaderImplicit)
	}

	crc := uint8(CrcOff)
	if d.Config.CRC {
		crc = uint8(CrcOn)
	}

	iq := uint8(IqStandard)
	if d.Config.InvertedIQ {
		iq = uint8(IqInverted)
	}

	cfg.PreambleLength = d.Config.PreambleLength
	cfg.HeaderType = headerType
	cfg.PayloadLength = d.Config.PayloadLength
	cfg.CRC = crc
	cfg.IQMode = iq

	for _, opt := range opts {
		opt(&cfg)
	}

	commands := []uint8{
		uint8(CmdSetPacketParams),
		uint8(cfg.PreambleLength >> 8),
		uint8(cfg.PreambleLength),
		cfg.HeaderType, cfg.PayloadLength,
		cfg.CRC, cfg.IQMode,
	}

	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set packet parameters: %w", err)
	}

	log.Info("SX126x modem parameters set")
	return nil
}

// # 13.4.8 SetBufferBaseAddress
func (d *Device) SetBufferBaseAddress(txBaseAddress, rxBaseAddress uint8) error {
	log := slog.With("func", "Device.SetBufferBaseAddress()", "params", "(uint8, uint8)", "return", "(error)", "lib", "sx126x")
	log.Debug("Set the base addresses in the data buffer in all modes of operations for the packet handing operation in TX and RX mode")

	commands := []uint8{uint8(CmdSetBufferBaseAddress), txBaseAddress, rxBaseAddress}
	if err := d.SPI.Tx(commands, nil); err != nil {
		return fmt.Errorf("Could not set TX and RX buffer base addresses: %w", err)
	}

	log.Info("TX and RX base addresses set", "tx", txBaseAddress, "rx", rxBaseAddress)
	return nil
}

// # 13.5.2 GetRxBufferStatus
func (d *Device) GetRxBufferStatus() (BufferStatus, error) {
	log := slog.With("func", "Device.GetRxBufferStatus()", "params", "(-)", "return", "(BufferStatus, error)", "lib", "sx126x")
	log.Debug("Return the length of the last received packet and the address of the first byte received")

	tx := []uint8{uint8(CmdGetBufferStatus), OpCodeNop, OpCodeNop, OpCodeNop}
	rx := make([]uint8, len(tx))

	if err := d.SPI.Tx(tx, rx); err != nil {
		return BufferStatus{}, fmt.Errorf("Could not get RX buffer status: %w", err)
	}

	d.Status.Buffer.RXPayloadLength = rx[2]
	d.Status.Buffer.RXStartPointer = rx[3]

	log.Info("SX126x modem RX buffer status")
	return d.Status.Buffer, nil
}

// # 13.5.3 GetPacketStatus
func (d *Device) GetPacketStatus() (PacketStatus, error) {
	log := slog.With("func", "Device.GetPacketStatus()", "params", "(-)", "return", "(PacketStatus, error)", "lib", "sx126x")
	log.Debug("Table 13-81: Status Bit")

	tx := []uint8{uint8(CmdGetPacketStatus), OpCodeNop, OpCodeNop, OpCodeNop, OpCodeNop}
	rx := make([]uint8, len(tx))

	if err := d.SPI.Tx(tx, rx); err != nil {
		return PacketStatus{}, fmt.Errorf("Could not get packet status: %w", err)
	}

	d.Status.Packet.SignalStrength = -int8(rx[2] / 2)         // dBm
	d.Status.Packet.SnRRatio = float32(int8(rx[3])) / 4.0     // dBm
	d.Status.Packet.DenoisedSignalStrength = -int8(rx[4] / 2) // dBm

	log.Info("SX126x modem packet status")
	return d.Status.Packet, nil
}
