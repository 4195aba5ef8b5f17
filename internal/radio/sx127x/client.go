package sx127x

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
)

// New loads this device's GPIO pins from the host's pin registry and
// returns an unconfigured Device; call BringUp to run the register-level
// setup sequence.
func New(conn spi.Conn, cfg *Config) (*Device, error) {
	log := slog.With("func", "New()", "params", "(spi.Conn, *Config)", "return", "(*Device, error)", "lib", "sx1276")
	log.Info("Initializing SX127x module")

	if !cfg.Enable {
		return nil, fmt.Errorf("SX127x modem disabled in the config")
	}
	if conn == nil {
		return nil, fmt.Errorf("SPI bus connection state improper")
	}

	loadPin := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("pin not found: %s", name)
		}
		return p, nil
	}

	pins := &pinsDirection{}
	var err error
	if pins.reset, err = loadPin(cfg.Pins.Reset); err != nil {
		return nil, err
	}
	if pins.dio0, err = loadPin(cfg.Pins.DIO0); err != nil {
		return nil, err
	}

	if err := pins.reset.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("failed to set RESET pin HIGH: %w", err)
	}
	if err := pins.dio0.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return nil, fmt.Errorf("failed to arm DIO0 edge detection: %w", err)
	}

	return &Device{SPI: conn, Config: cfg, gpio: pins}, nil
}
