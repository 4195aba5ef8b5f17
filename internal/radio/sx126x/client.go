// Package sx126x drives a Semtech SX1262/SX1268 LoRa modem over SPI: the
// low-level opcode/register command layer consumed by
// mavrelay/internal/driver/lorasx126x, which wires it into the relay's
// half-duplex netif.Driver contract.
package sx126x

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
)

// pinSpec pairs a config field's pin name with the setter the client uses
// to populate the resolved pin.
type pinSpec struct {
	name string
	set  func(gpio.PinIO)
}

// New resolves the modem's GPIO pins, drives them into their idle states,
// and allocates the RX/TX queues. It does not talk to the chip over SPI;
// the caller runs the bring-up command sequence afterward.
func New(conn spi.Conn, cfg *Config) (*Device, error) {
	log := slog.With("func", "New()", "params", "(spi.Conn, *Config)", "return", "(*Device, error)", "lib", "sx1262")
	log.Info("Initializing SX126x module")

	if !cfg.Enable {
		return nil, fmt.Errorf("SX126x modem disabled in the config")
	}
	if conn == nil {
		return nil, fmt.Errorf("SPI bus connection state improper")
	}

	pins := &pinsDirection{}
	required := []pinSpec{
		{cfg.Pins.Reset, func(p gpio.PinIO) { pins.reset = p }},
		{cfg.Pins.Busy, func(p gpio.PinIO) { pins.busy = p }},
		{cfg.Pins.DIO, func(p gpio.PinIO) { pins.dio = p }},
		{cfg.Pins.TxEn, func(p gpio.PinIO) { pins.txEn = p }},
	}
	for _, spec := range required {
		p := gpioreg.ByName(spec.name)
		if p == nil {
			return nil, fmt.Errorf("Pin not found: %s", spec.name)
		}
		spec.set(p)
	}
	if cfg.Pins.CS != "" {
		p := gpioreg.ByName(cfg.Pins.CS)
		if p == nil {
			return nil, fmt.Errorf("Pin not found: %s", cfg.Pins.CS)
		}
		pins.cs = p
	}

	if err := pins.reset.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("Failed to set RESET pin state to HIGH: %w", err)
	}
	if err := pins.busy.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("Failed to set BUSY pin edge detection: %w", err)
	}
	if err := pins.dio.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return nil, fmt.Errorf("Failed to set DIO1 pin pull down and edge detection: %w", err)
	}
	if err := pins.txEn.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("Failed to set TxEn pin state to LOW: %w", err)
	}
	if pins.rxEn != nil {
		if err := pins.rxEn.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("Failed to set RxEn pin state to LOW: %w", err)
		}
	}
	if pins.cs != nil {
		if err := pins.cs.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("Failed to set CS pin state to HIGH: %w", err)
		}
	}

	const defaultQueueSize = 10
	if cfg.RxQueueSize <= 0 {
		cfg.RxQueueSize = defaultQueueSize
		log.Warn("RX queue size cannot be less than 1; resized to 10", "size", cfg.RxQueueSize)
	}
	if cfg.TxQueueSize <= 0 {
		cfg.TxQueueSize = defaultQueueSize
		log.Warn("TX queue size cannot be less than 1; resized to 10", "size", cfg.TxQueueSize)
	}

	return &Device{
		SPI: conn,
		Config: cfg,
		Queue: Queue{
			Rx: make(chan []uint8, cfg.RxQueueSize),
			Tx: make(chan []uint8, cfg.TxQueueSize),
		},
		gpio: pins,
	}, nil
}

// Close puts the modem to sleep, disables the TX-enable pin, and tears down
// the RX/TX queues. Called once by the owning driver's Close.
func (d *Device) Close(sleepMode SleepConfig) error {
	log := slog.With("func", "Device.Close()", "params", "(-)", "return", "(error)", "lib", "sx1262")
	log.Info("Closing SX126x module", "mode", sleepMode)

	err := d.SetSleep(sleepMode)
	if err != nil {
		log.Error("Could not set sleep mode", "mode", sleepMode, "error", err)
	}

	if d.gpio.txEn != nil {
		if pinErr := d.gpio.txEn.Out(gpio.Low); pinErr != nil {
			log.Error("Could not set TxEn pin to LOW", "error", pinErr)
			if err == nil {
				err = pinErr
			}
		}
	}

	close(d.Queue.Rx)
	close(d.Queue.Tx)

	return err
}
