// Package sx127x is a from-scratch SX1276/77/78/79 register-level driver,
// built the way internal/radio/sx126x is structured (a typed register/
// opcode model plus a thin SPI command layer) but against this chip
// family's own, much smaller register map. Grounded on
// original_source/src/utils/lora_utils.rs for the bring-up sequence and
// PHY defaults (SF7, BW 250kHz, CR 4/5) that this family shares with
// SX126x; the register addresses themselves are the chip's public
// datasheet map, there being no example repo with a raw SX127x register
// driver in the retrieval pack (see DESIGN.md).
package sx127x

// Register is a single-byte SX127x register address.
type Register byte

const (
	RegFifo              Register = 0x00
	RegOpMode            Register = 0x01
	RegFrfMsb            Register = 0x06
	RegFrfMid            Register = 0x07
	RegFrfLsb            Register = 0x08
	RegPaConfig          Register = 0x09
	RegLna               Register = 0x0C
	RegFifoAddrPtr       Register = 0x0D
	RegFifoTxBaseAddr    Register = 0x0E
	RegFifoRxBaseAddr    Register = 0x0F
	RegFifoRxCurrentAddr Register = 0x10
	RegIrqFlagsMask      Register = 0x11
	RegIrqFlags          Register = 0x12
	RegRxNbBytes         Register = 0x13
	RegPktSnrValue       Register = 0x19
	RegPktRssiValue      Register = 0x1A
	RegModemConfig1      Register = 0x1D
	RegModemConfig2      Register = 0x1E
	RegSymbTimeoutLsb    Register = 0x1F
	RegPreambleMsb       Register = 0x20
	RegPreambleLsb       Register = 0x21
	RegPayloadLength     Register = 0x22
	RegModemConfig3      Register = 0x26
	RegDioMapping1       Register = 0x40
	RegVersion           Register = 0x42
	RegSyncWord          Register = 0x39
)

// writeBit is OR'd into a register address on the SPI command byte to select
// a write; reads send the address with this bit cleared.
const (
	writeBit byte = 0x80
)

// OpMode values occupy bits 2:0 of RegOpMode. LongRangeMode (bit 7) is
// always set by this driver: FSK/OOK mode is out of scope.
type OpMode byte

const (
	OpModeSleep        OpMode = 0x00
	OpModeStandby      OpMode = 0x01
	OpModeFSTx         OpMode = 0x02
	OpModeTx           OpMode = 0x03
	OpModeFSRx         OpMode = 0x04
	OpModeRxContinuous OpMode = 0x05
	OpModeRxSingle     OpMode = 0x06
	OpModeCAD          OpMode = 0x07
)

const longRangeModeBit byte = 0x80

// Bandwidth is the LoRa signal bandwidth field of RegModemConfig1 (bits 7:4).
type Bandwidth byte

const (
	Bandwidth7_8kHz   Bandwidth = 0x00
	Bandwidth10_4kHz  Bandwidth = 0x10
	Bandwidth15_6kHz  Bandwidth = 0x20
	Bandwidth20_8kHz  Bandwidth = 0x30
	Bandwidth31_25kHz Bandwidth = 0x40
	Bandwidth41_7kHz  Bandwidth = 0x50
	Bandwidth62_5kHz  Bandwidth = 0x60
	Bandwidth125kHz   Bandwidth = 0x70
	Bandwidth250kHz   Bandwidth = 0x80
	Bandwidth500kHz   Bandwidth = 0x90
)

// CodingRate is the error-coding rate field of RegModemConfig1 (bits 3:1).
type CodingRate byte

const (
	CodingRate4_5 CodingRate = 0x02
	CodingRate4_6 CodingRate = 0x04
	CodingRate4_7 CodingRate = 0x06
	CodingRate4_8 CodingRate = 0x08
)

// SpreadingFactor occupies bits 7:4 of RegModemConfig2.
type SpreadingFactor byte

const (
	SF6  SpreadingFactor = 6 << 4
	SF7  SpreadingFactor = 7 << 4
	SF8  SpreadingFactor = 8 << 4
	SF9  SpreadingFactor = 9 << 4
	SF10 SpreadingFactor = 10 << 4
	SF11 SpreadingFactor = 11 << 4
	SF12 SpreadingFactor = 12 << 4
)

const (
	crcOnBit        byte = 0x04 // RegModemConfig2 bit 2
	implicitHeaderBit byte = 0x01 // RegModemConfig1 bit 0
)

// IRQ flag bits of RegIrqFlags / RegIrqFlagsMask.
const (
	IrqCadDetected     byte = 0x01
	IrqFhssChangeChan  byte = 0x02
	IrqCadDone         byte = 0x04
	IrqTxDone          byte = 0x08
	IrqValidHeader     byte = 0x10
	IrqPayloadCrcError byte = 0x20
	IrqRxDone          byte = 0x40
	IrqRxTimeout       byte = 0x80
)

const fxtalHz = 32000000
const fstep float64 = float64(fxtalHz) / (1 << 19) // ~61.035 Hz per Frf LSB
