package ssd1322

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Conn is the connection interface for communicating with the controller.
//
// Command transfers the opcode at the data/command line's command level and
// any parameter bytes at the data level. Data transfers bytes at the data
// level only; it is the uninterrupted path used for framebuffer bursts.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Command sends a command byte with optional parameter bytes.
	Command(cmd byte, args ...byte) error

	// Data sends data bytes.
	Data(data ...byte) error

	// Reset sets the reset line to the provided level.
	Reset(gpio.Level) error

	// Power sets the panel power enable line to the provided level.
	Power(gpio.Level) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Speed is the bus clock; the controller supports up to 20MHz.
	Speed physic.Frequency

	// BatchSize limits the size of a single bus write. Zero uses the
	// default.
	BatchSize int

	// DC is the data/command selector pin.
	DC gpio.PinOut

	// Reset pin.
	Reset gpio.PinOut

	// Power is the panel power enable pin, or nil if the panel power is
	// not software controlled.
	Power gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Speed:     10 * physic.MegaHertz,
	BatchSize: 4096,
}

type spiConn struct {
	port      spi.Port
	c         spi.Conn
	dc        gpio.PinOut
	dcLevel   gpio.Level
	reset     gpio.PinOut
	power     gpio.PinOut
	batchSize int
}

// OpenSPI connects to the controller on the given SPI port, Mode 0, 8 bits
// per word. The port owns chip select; the DC and Reset pins are required,
// Power is optional.
func OpenSPI(port spi.Port, config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}
	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}

	speed := config.Speed
	if speed == 0 {
		speed = DefaultSPIConfig.Speed
	}
	batchSize := config.BatchSize
	if batchSize == 0 {
		batchSize = DefaultSPIConfig.BatchSize
	}

	c, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	// Settle the data/command line so the cached level is known.
	if err = config.DC.Out(gpio.Low); err != nil {
		return nil, &TransportError{Op: "data/command select", Err: err}
	}

	return &spiConn{
		port:      port,
		c:         c,
		dc:        config.DC,
		dcLevel:   gpio.Low,
		reset:     config.Reset,
		power:     config.Power,
		batchSize: batchSize,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI %s", c.c)
}

func (c *spiConn) Close() error {
	if closer, ok := c.port.(spi.PortCloser); ok {
		return closer.Close()
	}
	return nil
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcLevel == level {
		return nil
	}
	if err := c.dc.Out(level); err != nil {
		return &TransportError{Op: "data/command select", Err: err}
	}
	c.dcLevel = level
	return nil
}

func (c *spiConn) Command(cmd byte, args ...byte) error {
	if err := c.updateDC(gpio.Low); err != nil {
		return err
	}
	if err := c.c.Tx([]byte{cmd}, nil); err != nil {
		return &TransportError{Op: "command write", Err: err}
	}
	if len(args) == 0 {
		return nil
	}

	// Parameters are data, not new commands.
	if err := c.updateDC(gpio.High); err != nil {
		return err
	}
	return c.write(args)
}

func (c *spiConn) Data(data ...byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := c.updateDC(gpio.High); err != nil {
		return err
	}
	return c.write(data)
}

func (c *spiConn) write(data []byte) error {
	for len(data) > c.batchSize {
		if err := c.c.Tx(data[:c.batchSize], nil); err != nil {
			return &TransportError{Op: "data write", Err: err}
		}
		data = data[c.batchSize:]
	}
	if err := c.c.Tx(data, nil); err != nil {
		return &TransportError{Op: "data write", Err: err}
	}
	return nil
}

func (c *spiConn) Reset(level gpio.Level) error {
	if err := c.reset.Out(level); err != nil {
		return &TransportError{Op: "reset", Err: err}
	}
	return nil
}

func (c *spiConn) Power(level gpio.Level) error {
	if c.power == nil {
		return nil
	}
	if err := c.power.Out(level); err != nil {
		return &TransportError{Op: "power enable", Err: err}
	}
	return nil
}
