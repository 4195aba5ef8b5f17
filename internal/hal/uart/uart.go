// Package uart adapts apps/wbs/internal/hal/uart's bring-up pattern to
// this repository's single LoRa-UART device shape.
package uart

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/uart"
	"periph.io/x/conn/v3/uart/uartreg"
	"periph.io/x/host/v3"
)

func Init(device string) (uart.PortCloser, error) {
	log := slog.With("func", "Init()", "params", "(string)", "return", "(uart.PortCloser, error)", "package", "uart")
	log.Info("Initializing UART bus", "device", device)

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("UART host init failed: %w", err)
	}

	bus, err := uartreg.Open(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open UART bus %s: %w", device, err)
	}
	return bus, nil
}

// Setup opens device and connects at baud with 8N1 framing and no flow
// control, the configuration the E22/SX1262-UART LoRa adapter expects.
func Setup(device string, baud uint64) (conn.Conn, func(), error) {
	log := slog.With("func", "Setup()", "params", "(string, uint64)", "return", "(uart.Conn, func(), error)", "package", "uart")
	log.Info("UART bus setup", "device", device, "baud", baud)

	port, err := Init(device)
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() {
		slog.Debug("Closing UART bus connection...", "device", device)
		_ = port.Close()
	}

	conn, err := port.Connect(physic.Frequency(baud)*physic.Hertz, uart.One, uart.NoParity, uart.NoFlow, 8)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to configure UART %s: %w", device, err)
	}

	return conn, cleanup, nil
}
