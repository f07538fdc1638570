// Package hostbus connects the drivers to an I2C bus on a Linux host, through
// periph.io or through the kernel SMBus interface.
package hostbus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Periph implements drivers.I2C on top of a periph.io bus.
type Periph struct {
	bus    i2c.Bus
	closer i2c.BusCloser
}

// NewPeriph wraps an already opened bus. Closing the returned Periph does not
// close bus.
func NewPeriph(bus i2c.Bus) *Periph {
	return &Periph{bus: bus}
}

// Open initializes the host drivers and opens the named I2C bus, for example
// "/dev/i2c-1" or "I2C1". An empty name opens the first bus found.
func Open(name string) (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hostbus: could not initialize host: %w", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("hostbus: could not open i2c bus %q: %w", name, err)
	}
	return &Periph{bus: b, closer: b}, nil
}

// Close releases the bus if it was opened by Open.
func (p *Periph) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

func (p *Periph) Tx(addr uint16, w, r []byte) error {
	return p.bus.Tx(addr, w, r)
}

func (p *Periph) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return p.bus.Tx(uint16(addr), []byte{r}, buf)
}

func (p *Periph) WriteRegister(addr uint8, r uint8, buf []byte) error {
	w := make([]byte, 0, len(buf)+1)
	w = append(w, r)
	w = append(w, buf...)
	return p.bus.Tx(uint16(addr), w, nil)
}
