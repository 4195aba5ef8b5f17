// Package spi adapts apps/wbs/internal/hal/spi's bring-up pattern
// (host.Init -> spireg.Open -> Connect) to this repository's single-radio
// config shape: one SPI device per node instead of a named device map.
package spi

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Init(device string) (spi.PortCloser, error) {
	log := slog.With("func", "Init()", "params", "(string)", "return", "(spi.PortCloser, error)", "package", "spi")
	log.Info("Initializing SPI bus", "device", device)

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("SPI host init failed: %w", err)
	}

	bus, err := spireg.Open(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI bus %s: %w", device, err)
	}
	return bus, nil
}

// Setup opens device and connects at speed/mode/bits, returning the ready
// spi.Conn and a cleanup func that closes the underlying port.
func Setup(device string, speed physic.Frequency, mode spi.Mode, bits int) (spi.Conn, func(), error) {
	log := slog.With("func", "Setup()", "params", "(string, physic.Frequency, spi.Mode, int)", "return", "(spi.Conn, func(), error)", "package", "spi")
	log.Info("SPI bus setup", "device", device, "speed", speed, "mode", mode, "bits", bits)

	port, err := Init(device)
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() {
		slog.Debug("Closing SPI bus connection...", "device", device)
		_ = port.Close()
	}

	conn, err := port.Connect(speed, mode, bits)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to configure SPI %s: %w", device, err)
	}

	return conn, cleanup, nil
}
