// Package tester contains fake buses and devices to test drivers without
// hardware.
package tester

import "errors"

// Failer is implemented by *testing.T and by quicktest's *C.
type Failer interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

// I2CDevice is a device attached to a fake I2C bus.
type I2CDevice interface {
	Addr() uint8
	ReadRegister(r uint8, buf []byte) error
	WriteRegister(r uint8, buf []byte) error
	Tx(w, r []byte) error
}

// I2CBus implements the drivers.I2C interface on top of fake devices.
type I2CBus struct {
	c       Failer
	devices []I2CDevice
}

// NewI2CBus returns an empty bus.
func NewI2CBus(c Failer) *I2CBus {
	return &I2CBus{c: c}
}

// AddDevice attaches d to the bus.
func (bus *I2CBus) AddDevice(d I2CDevice) {
	bus.devices = append(bus.devices, d)
}

// NewDevice attaches a new register-file device at addr and returns it.
func (bus *I2CBus) NewDevice(addr uint8) *I2CDevice8 {
	d := NewI2CDevice8(bus.c, addr)
	bus.AddDevice(d)
	return d
}

// FindDevice returns the device at addr, failing the test when there is none.
func (bus *I2CBus) FindDevice(addr uint8) I2CDevice {
	bus.c.Helper()
	for _, d := range bus.devices {
		if d.Addr() == addr {
			return d
		}
	}
	bus.c.Fatalf("invalid device addr %#x passed to i2c bus", addr)
	panic("unreachable")
}

func (bus *I2CBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return bus.FindDevice(addr).ReadRegister(r, buf)
}

func (bus *I2CBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return bus.FindDevice(addr).WriteRegister(r, buf)
}

func (bus *I2CBus) Tx(addr uint16, w, r []byte) error {
	return bus.FindDevice(uint8(addr)).Tx(w, r)
}

// ErrNoRegister is returned by a device for a transaction without a register
// pointer byte.
var ErrNoRegister = errors.New("tester: i2c transaction without register")

// I2CDevice8 is a device with 256 byte-wide registers and an auto-incrementing
// register pointer, like most I2C chips.
type I2CDevice8 struct {
	c    Failer
	addr uint8

	// Registers holds the register file.
	Registers [256]uint8

	// Reads and Writes count the transactions the device saw.
	Reads  int
	Writes int

	// LastWrite is the payload of the last write, register pointer included.
	LastWrite []byte

	// ReadErr and WriteErr, when set, fail the corresponding transactions
	// without touching the registers.
	ReadErr  error
	WriteErr error
}

// NewI2CDevice8 returns a device at addr with all registers zero.
func NewI2CDevice8(c Failer, addr uint8) *I2CDevice8 {
	return &I2CDevice8{
		c:    c,
		addr: addr,
	}
}

func (d *I2CDevice8) Addr() uint8 {
	return d.addr
}

func (d *I2CDevice8) ReadRegister(r uint8, buf []byte) error {
	d.Reads++
	if d.ReadErr != nil {
		return d.ReadErr
	}
	for i := range buf {
		buf[i] = d.Registers[r+uint8(i)]
	}
	return nil
}

func (d *I2CDevice8) WriteRegister(r uint8, buf []byte) error {
	d.Writes++
	if d.WriteErr != nil {
		return d.WriteErr
	}
	d.LastWrite = append([]byte{r}, buf...)
	for i, v := range buf {
		d.Registers[r+uint8(i)] = v
	}
	return nil
}

// Tx handles a write of the register pointer followed by data, or a write of
// the register pointer followed by a read.
func (d *I2CDevice8) Tx(w, r []byte) error {
	if len(w) == 0 {
		return ErrNoRegister
	}
	if len(r) == 0 {
		return d.WriteRegister(w[0], w[1:])
	}
	if len(w) != 1 {
		d.c.Helper()
		d.c.Fatalf("unexpected %d byte write before read", len(w))
	}
	return d.ReadRegister(w[0], r)
}
