// Command mavrelay runs a dual-radio MAVLink relay node, bridging a UDP
// endpoint and a LoRa endpoint (SX126x-SPI, SX127x-SPI, or SX1262-UART).
// Sequencing: host init -> logger install -> flag parse -> config load ->
// driver bring-up -> component wiring -> block on signal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/conn/v3/physic"
	pspi "periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3"

	"mavrelay/internal/config"
	"mavrelay/internal/driver/lorasx126x"
	"mavrelay/internal/driver/lorasx127x"
	"mavrelay/internal/driver/lorauart"
	"mavrelay/internal/driver/udp"
	halspi "mavrelay/internal/hal/spi"
	haluart "mavrelay/internal/hal/uart"
	"mavrelay/internal/mavlink"
	"mavrelay/internal/netif"
)

func main() {
	if _, err := host.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "host init failed:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	roleArg := flag.Arg(0)
	if roleArg == "" {
		fmt.Fprintln(os.Stderr, "usage: mavrelay [-config path] <Drone|Gateway>")
		os.Exit(2)
	}
	role, err := mavlink.ParseNodeRole(roleArg)
	if err != nil {
		logger.Error("invalid node role", "error", err)
		os.Exit(2)
	}
	mavlink.SetRole(role)
	os.Setenv("NODE_TYPE", role.String())

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("critical error loading configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigCh; cancel() }()

	udpDriver, err := udp.New(cfg.UDP.LocalAddress, cfg.UDP.PeerAddress, cfg.UDP.Broadcast)
	if err != nil {
		logger.Error("critical UDP driver init failure", "error", err)
		os.Exit(1)
	}
	defer udpDriver.Close()

	loraDriver, loraClose, err := buildLoRaDriver(cfg)
	if err != nil {
		logger.Error("critical LoRa driver init failure", "error", err)
		os.Exit(1)
	}
	defer loraClose()

	bridge, ifUDP, ifLoRa := netif.NewBridge(udpDriver, loraDriver, cfg.Bridge.ChannelCapacity, cfg.Bridge.HeartbeatInterval())

	errCh := make(chan error, 3)
	go func() { errCh <- ifUDP.Run(ctx) }()
	go func() { errCh <- ifLoRa.Run(ctx) }()
	go func() { errCh <- bridge.Run(ctx) }()

	logger.Info("mavrelay running", "role", role.String(), "udp", ifUDP.Identity(), "lora", ifLoRa.Identity())

	select {
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			logger.Error("component task exited", "error", err)
			cancel()
		}
	case <-ctx.Done():
	}
}

// buildLoRaDriver dispatches on cfg.LoRa.Driver to construct the configured
// half-duplex LoRa link.
func buildLoRaDriver(cfg *config.Config) (netif.Driver, func(), error) {
	switch cfg.LoRa.Driver {
	case "sx126x_spi":
		return buildSX126x(cfg)
	case "sx127x_spi":
		return buildSX127x(cfg)
	case "sx1262_uart":
		return buildSX1262UART(cfg)
	default:
		return nil, func() {}, fmt.Errorf("unknown lora driver %q", cfg.LoRa.Driver)
	}
}

func buildSX126x(cfg *config.Config) (netif.Driver, func(), error) {
	conn, closeSPI, err := halspi.Setup(cfg.LoRa.SPIDevice, 8*physic.MegaHertz, pspi.Mode0, 8)
	if err != nil {
		return nil, func() {}, err
	}

	d, err := lorasx126x.New(conn, lorasx126x.Profile{
		SpreadingFactor: uint8(cfg.LoRa.Modulation.SpreadingFactor),
		BandwidthHz:     uint64(cfg.LoRa.Modulation.BandwidthHz),
		CodingRate:      uint8(cfg.LoRa.Modulation.CodingRate),
		FrequencyHz:     uint64(cfg.LoRa.Modulation.FrequencyHz),
		PreambleLength:  uint16(cfg.LoRa.Modulation.PreambleLength),
		CRC:             cfg.LoRa.Modulation.CRC,
		IQInverted:      cfg.LoRa.Modulation.IQInverted,
		TxPowerDbm:      int8(cfg.LoRa.Modulation.TxPowerDbm),
	})
	if err != nil {
		closeSPI()
		return nil, func() {}, err
	}

	return d, func() { d.Close(); closeSPI() }, nil
}

func buildSX127x(cfg *config.Config) (netif.Driver, func(), error) {
	conn, closeSPI, err := halspi.Setup(cfg.LoRa.SPIDevice, 8*physic.MegaHertz, pspi.Mode0, 8)
	if err != nil {
		return nil, func() {}, err
	}

	d, err := lorasx127x.New(conn, lorasx127x.Profile{
		SpreadingFactor: uint8(cfg.LoRa.Modulation.SpreadingFactor),
		BandwidthHz:     cfg.LoRa.Modulation.BandwidthHz,
		CodingRate:      uint8(cfg.LoRa.Modulation.CodingRate),
		FrequencyHz:     cfg.LoRa.Modulation.FrequencyHz,
		PreambleLength:  uint16(cfg.LoRa.Modulation.PreambleLength),
		CRC:             cfg.LoRa.Modulation.CRC,
		SyncWord:        0x12,
		TxPowerDbm:      int8(cfg.LoRa.Modulation.TxPowerDbm),
	})
	if err != nil {
		closeSPI()
		return nil, func() {}, err
	}

	return d, func() { d.Close(); closeSPI() }, nil
}

func buildSX1262UART(cfg *config.Config) (netif.Driver, func(), error) {
	conn, closeUART, err := haluart.Setup(cfg.LoRa.UART.Device, cfg.LoRa.UART.Baud)
	if err != nil {
		return nil, func() {}, err
	}

	d, err := lorauart.New(conn, lorauart.Profile{
		OwnAddress:  cfg.LoRa.UART.OwnAddress,
		PeerAddress: cfg.LoRa.UART.PeerAddress,
		FrequencyHz: cfg.LoRa.UART.FrequencyHz,
		AirSpeed:    uint8(cfg.LoRa.UART.AirSpeed),
		BufferSize:  cfg.LoRa.UART.BufferSize,
		PowerLevel:  cfg.LoRa.UART.PowerLevel,
		CryptKey:    cfg.LoRa.UART.CryptKey,
		ReportRSSI:  cfg.LoRa.UART.ReportRSSI,
	})
	if err != nil {
		closeUART()
		return nil, func() {}, err
	}

	return d, func() { d.Close(); closeUART() }, nil
}
