package sx127x

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// Config is this chip family's ModulationProfile plus the handful of
// register-level choices a bring-up needs, matching spec.md §3's
// ModulationProfile fields.
type Config struct {
	Enable          bool   `yaml:"enable" env:"SX127X_ENABLE" env-default:"false"`
	SpreadingFactor uint8  `yaml:"spreading_factor" env:"SX127X_SF" env-default:"7"`
	Bandwidth       uint32 `yaml:"bandwidth" env:"SX127X_BANDWIDTH" env-default:"250000"`
	CodingRate      uint8  `yaml:"coding_rate" env:"SX127X_CR" env-default:"5"`
	Frequency       uint32 `yaml:"frequency" env:"SX127X_FREQUENCY" env-default:"868100000"`
	PreambleLength  uint16 `yaml:"preamble_length" env:"SX127X_PREAMBLE_LEN" env-default:"4"`
	HeaderImplicit  bool   `yaml:"header_implicit" env:"SX127X_HEADER_IMPLICIT" env-default:"false"`
	CRC             bool   `yaml:"crc" env:"SX127X_CRC" env-default:"true"`
	SyncWord        uint8  `yaml:"sync_word" env:"SX127X_SYNC_WORD" env-default:"18"` // 0x12
	TxPowerDbm      int8   `yaml:"tx_power" env:"SX127X_TX_POWER" env-default:"14"`
	Pins            *Pins  `yaml:"pins"`
}

type Pins struct {
	Reset string `yaml:"reset" env:"SX127X_GPIO_RESET" env-default:"GPIO17"`
	DIO0  string `yaml:"dio0" env:"SX127X_GPIO_DIO0" env-default:"GPIO4"`
}

type pinsDirection struct {
	reset gpio.PinOut
	dio0  gpio.PinIn
}

// PacketStatus carries the RSSI/SNR pair this family exposes per receive,
// read from RegPktRssiValue/RegPktSnrValue (spec.md S7).
type PacketStatus struct {
	RSSI int
	SNR  float64
}

type Device struct {
	SPI    spi.Conn
	Config *Config
	gpio   *pinsDirection
}
