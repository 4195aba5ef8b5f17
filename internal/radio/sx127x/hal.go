package sx127x

import (
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// WriteRegister writes a single byte to a register. Chip-select framing is
// the SPI port's own, same as internal/radio/sx126x's command layer.
func (d *Device) WriteRegister(reg Register, value byte) error {
	w := []byte{byte(reg) | writeBit, value}
	r := make([]byte, len(w))
	if err := d.SPI.Tx(w, r); err != nil {
		return fmt.Errorf("sx127x: write register 0x%02X: %w", reg, err)
	}
	return nil
}

// ReadRegister reads a single register byte.
func (d *Device) ReadRegister(reg Register) (byte, error) {
	w := []byte{byte(reg) &^ writeBit, 0x00}
	r := make([]byte, len(w))
	if err := d.SPI.Tx(w, r); err != nil {
		return 0, fmt.Errorf("sx127x: read register 0x%02X: %w", reg, err)
	}
	return r[1], nil
}

// WriteFifo writes payload bytes to the FIFO at whatever address
// RegFifoAddrPtr currently holds.
func (d *Device) WriteFifo(data []byte) error {
	w := append([]byte{byte(RegFifo) | writeBit}, data...)
	r := make([]byte, len(w))
	if err := d.SPI.Tx(w, r); err != nil {
		return fmt.Errorf("sx127x: write fifo: %w", err)
	}
	return nil
}

// ReadFifo reads n payload bytes from the FIFO at whatever address
// RegFifoAddrPtr currently holds.
func (d *Device) ReadFifo(n int) ([]byte, error) {
	w := make([]byte, n+1)
	w[0] = byte(RegFifo) &^ writeBit
	r := make([]byte, len(w))
	if err := d.SPI.Tx(w, r); err != nil {
		return nil, fmt.Errorf("sx127x: read fifo: %w", err)
	}
	return r[1:], nil
}

func (d *Device) setOpMode(mode OpMode) error {
	return d.WriteRegister(RegOpMode, longRangeModeBit|byte(mode))
}

func frf(hz uint32) (msb, mid, lsb byte) {
	v := uint32(float64(hz) / fstep)
	return byte(v >> 16), byte(v >> 8), byte(v)
}

func bandwidthField(hz uint32) Bandwidth {
	switch {
	case hz <= 7800:
		return Bandwidth7_8kHz
	case hz <= 10400:
		return Bandwidth10_4kHz
	case hz <= 15600:
		return Bandwidth15_6kHz
	case hz <= 20800:
		return Bandwidth20_8kHz
	case hz <= 31250:
		return Bandwidth31_25kHz
	case hz <= 41700:
		return Bandwidth41_7kHz
	case hz <= 62500:
		return Bandwidth62_5kHz
	case hz <= 125000:
		return Bandwidth125kHz
	case hz <= 250000:
		return Bandwidth250kHz
	default:
		return Bandwidth500kHz
	}
}

func codingRateField(denominator uint8) CodingRate {
	switch denominator {
	case 5:
		return CodingRate4_5
	case 6:
		return CodingRate4_6
	case 7:
		return CodingRate4_7
	default:
		return CodingRate4_8
	}
}

// BringUp runs the register-level setup sequence: hard reset, sleep, set the
// LoRa mode bit, program the frequency and modem configuration registers,
// and leave the modem in standby ready for PrepareToSend/PrepareToReceive.
func (d *Device) BringUp() error {
	log := slog.With("func", "Device.BringUp()", "lib", "sx1276")
	log.Info("Bringing up SX127x module")

	if err := d.gpio.reset.Out(gpio.Low); err != nil {
		return fmt.Errorf("sx127x: reset low: %w", err)
	}
	time.Sleep(1 * time.Millisecond)
	if err := d.gpio.reset.Out(gpio.High); err != nil {
		return fmt.Errorf("sx127x: reset high: %w", err)
	}
	time.Sleep(10 * time.Millisecond)

	if err := d.setOpMode(OpModeSleep); err != nil {
		return fmt.Errorf("sx127x: sleep: %w", err)
	}
	if err := d.setOpMode(OpModeStandby); err != nil {
		return fmt.Errorf("sx127x: standby: %w", err)
	}

	msb, mid, lsb := frf(d.Config.Frequency)
	for _, rv := range []struct {
		reg Register
		val byte
	}{
		{RegFrfMsb, msb},
		{RegFrfMid, mid},
		{RegFrfLsb, lsb},
	} {
		if err := d.WriteRegister(rv.reg, rv.val); err != nil {
			return fmt.Errorf("sx127x: frequency registers: %w", err)
		}
	}

	modemConfig1 := byte(bandwidthField(d.Config.Bandwidth)) | byte(codingRateField(d.Config.CodingRate))
	if d.Config.HeaderImplicit {
		modemConfig1 |= implicitHeaderBit
	}
	if err := d.WriteRegister(RegModemConfig1, modemConfig1); err != nil {
		return fmt.Errorf("sx127x: modem config 1: %w", err)
	}

	sf := d.Config.SpreadingFactor
	if sf < 6 || sf > 12 {
		sf = 7
	}
	modemConfig2 := sf << 4
	if d.Config.CRC {
		modemConfig2 |= crcOnBit
	}
	if err := d.WriteRegister(RegModemConfig2, modemConfig2); err != nil {
		return fmt.Errorf("sx127x: modem config 2: %w", err)
	}

	if err := d.WriteRegister(RegPreambleMsb, byte(d.Config.PreambleLength>>8)); err != nil {
		return fmt.Errorf("sx127x: preamble msb: %w", err)
	}
	if err := d.WriteRegister(RegPreambleLsb, byte(d.Config.PreambleLength)); err != nil {
		return fmt.Errorf("sx127x: preamble lsb: %w", err)
	}
	if err := d.WriteRegister(RegSyncWord, d.Config.SyncWord); err != nil {
		return fmt.Errorf("sx127x: sync word: %w", err)
	}
	if err := d.WriteRegister(RegPaConfig, paConfigByte(d.Config.TxPowerDbm)); err != nil {
		return fmt.Errorf("sx127x: pa config: %w", err)
	}

	if err := d.WriteRegister(RegFifoTxBaseAddr, 0x00); err != nil {
		return fmt.Errorf("sx127x: fifo tx base: %w", err)
	}
	if err := d.WriteRegister(RegFifoRxBaseAddr, 0x00); err != nil {
		return fmt.Errorf("sx127x: fifo rx base: %w", err)
	}

	log.Info("SX127x bring-up success")
	return nil
}

// paConfigByte sets PA_BOOST (bit 7) and clamps the output power field to
// its 4-bit range; this driver always drives the PA_BOOST pin.
func paConfigByte(dbm int8) byte {
	const paBoostBit = 0x80
	outputPower := dbm - 2
	if outputPower < 0 {
		outputPower = 0
	}
	if outputPower > 15 {
		outputPower = 15
	}
	return paBoostBit | byte(outputPower)
}

// Transmit writes the payload to the FIFO and switches into TX mode.
func (d *Device) Transmit(payload []byte) error {
	if err := d.WriteRegister(RegFifoAddrPtr, 0x00); err != nil {
		return fmt.Errorf("sx127x: fifo addr ptr: %w", err)
	}
	if err := d.WriteRegister(RegPayloadLength, byte(len(payload))); err != nil {
		return fmt.Errorf("sx127x: payload length: %w", err)
	}
	if err := d.WriteFifo(payload); err != nil {
		return err
	}
	if err := d.WriteRegister(RegDioMapping1, dioMappingTxDone); err != nil {
		return fmt.Errorf("sx127x: dio mapping (tx): %w", err)
	}
	return d.setOpMode(OpModeTx)
}

const dioMappingTxDone = 0x40 // DIO0 = TxDone
const dioMappingRxDone = 0x00 // DIO0 = RxDone

// EnterReceive switches the modem into continuous receive and arms DIO0 for
// RxDone.
func (d *Device) EnterReceive() error {
	if err := d.WriteRegister(RegDioMapping1, dioMappingRxDone); err != nil {
		return fmt.Errorf("sx127x: dio mapping (rx): %w", err)
	}
	return d.setOpMode(OpModeRxContinuous)
}

// WaitForIRQ blocks for a DIO0 rising edge (RxDone or TxDone depending on
// the last-armed mapping), or until timeout elapses.
func (d *Device) WaitForIRQ(timeout time.Duration) bool {
	return d.gpio.dio0.WaitForEdge(timeout)
}

// ReadPacket drains a received frame from the FIFO and reports its signal
// quality, matching spec.md S7's RSSI/SNR fields.
func (d *Device) ReadPacket() ([]byte, PacketStatus, error) {
	flags, err := d.ReadRegister(RegIrqFlags)
	if err != nil {
		return nil, PacketStatus{}, fmt.Errorf("sx127x: irq flags: %w", err)
	}
	defer d.WriteRegister(RegIrqFlags, 0xFF)

	if flags&IrqRxDone == 0 {
		return nil, PacketStatus{}, fmt.Errorf("sx127x: RxDone not asserted")
	}
	if flags&IrqPayloadCrcError != 0 {
		return nil, PacketStatus{}, fmt.Errorf("sx127x: payload CRC error")
	}

	currentAddr, err := d.ReadRegister(RegFifoRxCurrentAddr)
	if err != nil {
		return nil, PacketStatus{}, fmt.Errorf("sx127x: fifo rx current addr: %w", err)
	}
	n, err := d.ReadRegister(RegRxNbBytes)
	if err != nil {
		return nil, PacketStatus{}, fmt.Errorf("sx127x: rx nb bytes: %w", err)
	}
	if err := d.WriteRegister(RegFifoAddrPtr, currentAddr); err != nil {
		return nil, PacketStatus{}, fmt.Errorf("sx127x: fifo addr ptr: %w", err)
	}
	payload, err := d.ReadFifo(int(n))
	if err != nil {
		return nil, PacketStatus{}, err
	}

	rssiRaw, err := d.ReadRegister(RegPktRssiValue)
	if err != nil {
		return nil, PacketStatus{}, fmt.Errorf("sx127x: pkt rssi: %w", err)
	}
	snrRaw, err := d.ReadRegister(RegPktSnrValue)
	if err != nil {
		return nil, PacketStatus{}, fmt.Errorf("sx127x: pkt snr: %w", err)
	}

	return payload, PacketStatus{
		RSSI: -157 + int(rssiRaw),
		SNR:  float64(int8(snrRaw)) / 4,
	}, nil
}
