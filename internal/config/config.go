// Package config loads this node's runtime configuration, following the
// YAML-file-with-ENV-fallback pattern of
// apps/wbs/internal/config/config.go: cleanenv.ReadConfig when a file path
// is given and exists, cleanenv.ReadEnv otherwise.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Node   Node   `yaml:"node"`
	UDP    UDP    `yaml:"udp"`
	LoRa   LoRa   `yaml:"lora"`
	Bridge Bridge `yaml:"bridge"`
}

type Node struct {
	Role string `yaml:"role" env:"NODE_TYPE" env-default:"Drone"`
}

type UDP struct {
	LocalAddress string `yaml:"local_address" env:"UDP_LOCAL_ADDRESS" env-default:"0.0.0.0:0"`
	PeerAddress  string `yaml:"peer_address" env:"UDP_PEER_ADDRESS" env-default:"192.168.0.255:14540"`
	Broadcast    bool   `yaml:"broadcast" env:"UDP_BROADCAST" env-default:"true"`
}

type LoRa struct {
	Driver     string     `yaml:"driver" env:"LORA_DRIVER" env-default:"sx126x_spi"`
	SPIDevice  string     `yaml:"spi_device" env:"LORA_SPI_DEVICE" env-default:"0"`
	Modulation Modulation `yaml:"modulation"`
	UART       UARTLink   `yaml:"uart"`
}

type Modulation struct {
	SpreadingFactor int    `yaml:"spreading_factor" env:"LORA_SF" env-default:"7"`
	BandwidthHz     uint32 `yaml:"bandwidth_hz" env:"LORA_BANDWIDTH_HZ" env-default:"250000"`
	CodingRate      int    `yaml:"coding_rate" env:"LORA_CODING_RATE" env-default:"5"`
	FrequencyHz     uint32 `yaml:"frequency_hz" env:"LORA_FREQUENCY_HZ" env-default:"868100000"`
	PreambleLength  int    `yaml:"preamble_length" env:"LORA_PREAMBLE_LENGTH" env-default:"4"`
	CRC             bool   `yaml:"crc" env:"LORA_CRC" env-default:"true"`
	IQInverted      bool   `yaml:"iq_inverted" env:"LORA_IQ_INVERTED" env-default:"false"`
	TxPowerDbm      int    `yaml:"tx_power_dbm" env:"LORA_TX_POWER_DBM" env-default:"14"`
}

type UARTLink struct {
	Device       string `yaml:"device" env:"LORA_UART_DEVICE" env-default:"0"`
	Baud         uint64 `yaml:"baud" env:"LORA_UART_BAUD" env-default:"9600"`
	OwnAddress   uint16 `yaml:"own_address" env:"LORA_UART_OWN_ADDRESS" env-default:"0"`
	PeerAddress  uint16 `yaml:"peer_address" env:"LORA_UART_PEER_ADDRESS" env-default:"0"`
	AirSpeed     uint32 `yaml:"air_speed" env:"LORA_UART_AIR_SPEED" env-default:"2400"`
	BufferSize   uint8  `yaml:"buffer_size" env:"LORA_UART_BUFFER_SIZE" env-default:"0"`
	PowerLevel   uint8  `yaml:"power_level" env:"LORA_UART_POWER_LEVEL" env-default:"0"`
	CryptKey     uint16 `yaml:"crypt_key" env:"LORA_UART_CRYPT_KEY" env-default:"0"`
	ReportRSSI   bool   `yaml:"report_rssi" env:"LORA_UART_REPORT_RSSI" env-default:"true"`
	FrequencyHz  uint32 `yaml:"frequency_hz" env:"LORA_UART_FREQUENCY_HZ" env-default:"868100000"`
}

type Bridge struct {
	ChannelCapacity     int `yaml:"channel_capacity" env:"BRIDGE_CHANNEL_CAPACITY" env-default:"128"`
	HeartbeatIntervalMs int `yaml:"heartbeat_interval_ms" env:"BRIDGE_HEARTBEAT_INTERVAL_MS" env-default:"1000"`
}

func (b Bridge) HeartbeatInterval() time.Duration {
	return time.Duration(b.HeartbeatIntervalMs) * time.Millisecond
}

// Load reads the config from path if it exists, otherwise falls back to
// reading environment variables alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config file not found and failed to read ENV: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	return cfg, nil
}
