package sx126x

import (
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

func (d *Device) BusyCheck(timeout <-chan time.Time, sleep ...time.Duration) error {
	log := slog.With("func", "Device.BusyCheck()", "params", "(<-chan time.Time, ...time.Duration)", "return", "(error)", "lib", "sx126x")
	log.Debug("Check SX126x module busy status")

	interval := 10 * time.Millisecond
	if len(sleep) > 0 {
		interval = sleep[0]
		log.Debug("Sleep interval changed", "interval", interval)
	}

	for {
		select {
		case <-timeout:
			return fmt.Errorf("Timeout!")
		default:
			if d.gpio.busy.Read() == gpio.Low {
				log.Debug("SX126x modem ready")
				return nil
			}
			time.Sleep(interval) // Avoids busy wait in loop
		}
	}
}

func (d *Device) HardReset(timeout ...<-chan time.Time) error {
	log := slog.With("func", "Device.HardReset()", "params", "(-)", "return", "(error)", "lib", "sx126x")
	log.Debug("SX126x hard reset")

	if d.gpio.cs != nil {
		if err := d.gpio.cs.Out(gpio.High); err != nil {
			return fmt.Errorf("Failed to set CS pin state to HIGH: %w", err)
		}
	}
	if err := d.gpio.reset.Out(gpio.Low); err != nil {
		return fmt.Errorf("Failed to set RESET pin state to LOW: %w", err)
	}
	time.Sleep(1 * time.Millisecond)
	if err := d.gpio.reset.Out(gpio.High); err != nil {
		return fmt.Errorf("Failed to set RESET pin state to HIGH: %w", err)
	}

	wait := time.After(5 * time.Second)
	if len(timeout) > 0 {
		wait = timeout[0]
	}

	if err := d.BusyCheck(wait); err != nil {
		return fmt.Errorf("Failed to reset SX126x modem: %w", err)
	}

	log.Info("SX126x modem hard reset success")
	return nil
}

// # 13.2.1 WriteRegister Function
func (d *Device) WriteRegister(address uint16, data []uint8) (uint8, error) {
	log := slog.With("func", "Device.WriteRegister()", "params", "(uint16, []uint8)", "return", "(uint8, error)", "lib", "sx126x")
	log.Debug("Allow writing a block of bytes in a data memory space starting at a specific address.")

	commands := append([]uint8{
		uint8(CmdWriteRegister),
		uint8(address >> 8),
		uint8(address),
	}, data...)
	status := make([]uint8, len(commands))

	if err := d.SPI.Tx(commands, status); err != nil {
		return 0, fmt.Errorf("Could not write data to register at address 0x%04X: %w", address, err)
	}

	log.Debug("Data write to register success", "address", fmt.Sprintf("0x%04X", address))
	return status[0], nil
}

// # 13.2.3 WriteBuffer Function
func (d *Device) WriteBuffer(offset uint8, data []uint8) (uint8, error) {
	log := slog.With("func", "Device.WriteBuffer()", "params", "(uint8, []uint8)", "return", "(uint8, error)", "lib", "sx126x")
	log.Debug("Store data payload to be transmitted.")

	commands := append([]uint8{uint8(CmdWriteBuffer), offset}, data...)
	status := make([]uint8, len(commands))

	if err := d.SPI.Tx(commands, status); err != nil {
		return 0, fmt.Errorf("Could not write data to buffer at offset 0x%02X: %w", offset, err)
	}

	log.Debug("Data write to register success", "address", fmt.Sprintf("0x%02X", offset))
	return status[0], nil
}

// # 13.2.4 ReadBuffer Function
func (d *Device) ReadBuffer(offset uint8, data []uint8) (uint8, error) {
	log := slog.With("func", "Device.ReadBuffer()", "params", "(uint8, []uint8)", "return", "(uint8, error)", "lib", "sx126x")
	log.Debug("Read bytes of payload received starting at offset")

	commands := make([]uint8, len(data)+3)
	commands[0] = uint8(CmdReadBuffer)
	commands[1] = offset

	rx := make([]uint8, len(commands))

	if err := d.SPI.Tx(commands, rx); err != nil {
		return 0, fmt.Errorf("Could not read data from bufferr at offset 0x%02X: %w", offset, err)
	}

	status := rx[0]
	copy(data, rx[3:])

	log.Debug("Data read from register success", "address", fmt.Sprintf("0x%02X", offset))
	return status, nil
}

// ConfigModulation holds the LoRa modulation parameters SetModulationParams
// writes to the chip. This package is LoRa-only, so there is no FSK
// bitrate/pulse-shape/deviation variant of this struct.
type ConfigModulation struct {
	Bandwidth       uint8
	SpreadingFactor uint8
	CodingRate      uint8
	LDRO            uint8
}

type OptionsModulation func(*ConfigModulation)

func loraCodingRate(codingRate uint8) (uint8, bool) {
	crToByte := map[uint8]uint8{
		5: uint8(LoRaCR_4_5),
		6: uint8(LoRaCR_4_6),
		7: uint8(LoRaCR_4_7),
		8: uint8(LoRaCR_4_8),
	}

	cr, ok := crToByte[codingRate]
	return cr, ok
}

func loraBandwidth(bandwidth physic.Frequency) (uint8, bool) {
	bwToByte := map[physic.Frequency]uint8{
		7800 * physic.Hertz:   uint8(LoRaBW_7_8),
		10400 * physic.Hertz:  uint8(LoRaBW_10_4),
		15600 * physic.Hertz:  uint8(LoRaBW_15_6),
		20800 * physic.Hertz:  uint8(LoRaBW_20_8),
		31250 * physic.Hertz:  uint8(LoRaBW_31_25),
		41700 * physic.Hertz:  uint8(LoRaBW_41_7),
		62500 * physic.Hertz:  uint8(LoRaBW_62_5),
		125000 * physic.Hertz: uint8(LoRaBW_125),
		250000 * physic.Hertz: uint8(LoRaBW_250),
		500000 * physic.Hertz: uint8(LoRaBW_500),
	}

	bw, ok := bwToByte[bandwidth]
	return bw, ok
}

// ModulationConfigLoRa builds the single OptionsModulation opt bringUp
// passes to SetModulationParams, clamping out-of-range inputs to safe
// defaults the way the datasheet-derived SetModulationParams body does.
func (d *Device) ModulationConfigLoRa(spreadingFactor, codingRate uint8, bandwidth physic.Frequency, ldro bool) OptionsModulation {
	log := slog.With("func", "Device.ModulationConfigLoRa()", "params", "(uint8, uint8, physic.Frequency, bool)", "return", "(OptionsModulation)", "lib", "sx126x")

	sf := spreadingFactor
	if sf < 5 || sf > 12 {
		sf = 7
		log.Warn("Unsupported Spreading Factor", "spreadingFactor", spreadingFactor)
		log.Warn("Setting Spreading Factor to 7")
	}

	ld := uint8(LDRO_OFF)
	if ldro {
		ld = uint8(LDRO_ON)
	}

	bw, ok := loraBandwidth(bandwidth)
	if !ok {
		bw = uint8(LoRaBW_125)
		log.Warn("Unsupported bandwidth", "bw", bandwidth)
		log.Warn("Setting bandwidth to 125 kHz")
	}

	cr, ok := loraCodingRate(codingRate)
	if !ok {
		cr = uint8(LoRaCR_4_5)
		log.Warn("Unsupported coding rate", "codingRate", codingRate)
		log.Warn("Setting Coding Rate to 4/5")
	}

	return func(cfg *ConfigModulation) {
		cfg.SpreadingFactor = sf
		cfg.Bandwidth = bw
		cfg.CodingRate = cr
		cfg.LDRO = ld
	}
}

// ConfigPacket holds the LoRa packet-handling parameters SetPacketParams
// writes to the chip.
type ConfigPacket struct {
	PreambleLength uint16
	HeaderType     uint8
	PayloadLength  uint8
	CRC            uint8
	IQMode         uint8
}

type OptionsPacket func(*ConfigPacket)

// PacketLoRaConfig builds the single OptionsPacket opt bringUp passes to
// SetPacketParams.
func (d *Device) PacketLoRaConfig(preambleLength uint16, headerType LoRaHeaderType, payloadLength uint8, crc LoRaCrcMode, iqMode LoRaIQMode) OptionsPacket {
	return func(cfg *ConfigPacket) {
		cfg.PreambleLength = preambleLength
		cfg.HeaderType = uint8(headerType)
		cfg.PayloadLength = payloadLength
		cfg.CRC = uint8(crc)
		cfg.IQMode = uint8(iqMode)
	}
}

// WaitForIRQ blocks on the DIO1 line until it edges or timeout elapses (0
// waits forever); ReadyToReceive races it against ctx cancellation.
func (d *Device) WaitForIRQ(timeout time.Duration) bool {
	return d.gpio.dio.WaitForEdge(timeout)
}
