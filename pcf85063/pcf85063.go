// Package pcf85063 implements a driver for the PCF85063A Real-Time Clock (RTC): date and time, the per-field alarm,
// the clock output, the offset register, the countdown timer and the single byte of battery-backed RAM.
//
// The driver keeps no state besides the bus and the address. Every call goes to the chip, and the flag setters are
// plain read-then-write sequences: another master on the same bus may slip in between the two halves.
//
// Datasheet: https://www.nxp.com/docs/en/data-sheet/PCF85063A.pdf
package pcf85063

import (
	"github.com/tinyrtc/drivers"
)

type Device struct {
	bus     drivers.I2C
	Address uint8
}

type Config struct {
	// Address defaults to the fixed chip address when zero.
	Address uint8
	// CapSel12pF selects the 12.5 pF quartz load capacitance instead of 7 pF.
	CapSel12pF bool
	// ClockOut is the frequency on the CLKOUT pin. The zero value keeps the
	// power-on default of 32768 Hz.
	ClockOut ClockOut
}

// New creates a new PCF85063 driver on the given bus. The bus must be configured already; the chip accepts up to
// 400 kHz.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
	}
}

// Configure applies the configuration. The chip is switched to 24-hour mode and its test mode is turned off, since
// the rest of the driver assumes both.
func (d *Device) Configure(c Config) error {
	if c.Address == 0 {
		c.Address = Address
	}
	d.Address = c.Address

	err := d.clearFlag(flag12h)
	if err != nil {
		return err
	}
	err = d.clearFlag(flagExternalTest)
	if err != nil {
		return err
	}
	if c.CapSel12pF {
		err = d.setFlag(flagCapSel)
	} else {
		err = d.clearFlag(flagCapSel)
	}
	if err != nil {
		return err
	}
	return d.SetClockOutput(c.ClockOut)
}

func (d *Device) readRegister(r Register) (uint8, error) {
	buf := [1]byte{}
	err := d.readRegisters(r, buf[:])
	return buf[0], err
}

func (d *Device) writeRegister(r Register, v uint8) error {
	buf := [2]byte{uint8(r), v}
	err := d.bus.Tx(uint16(d.Address), buf[:], nil)
	if err != nil {
		return &BusError{Register: r, Err: err}
	}
	return nil
}

// readRegisters reads len(buf) consecutive registers starting at r. The chip
// increments its register pointer after every byte.
func (d *Device) readRegisters(r Register, buf []byte) error {
	err := d.bus.Tx(uint16(d.Address), []byte{uint8(r)}, buf)
	if err != nil {
		return &BusError{Register: r, Err: err}
	}
	return nil
}

// writeRegisters writes data to consecutive registers starting at r, in a
// single transaction.
func (d *Device) writeRegisters(r Register, data []byte) error {
	payload := make([]byte, 0, len(data)+1)
	payload = append(payload, uint8(r))
	payload = append(payload, data...)
	err := d.bus.Tx(uint16(d.Address), payload, nil)
	if err != nil {
		return &BusError{Register: r, Err: err}
	}
	return nil
}

// testFlag reports whether any bit of f is set.
func (d *Device) testFlag(f Flag) (bool, error) {
	v, err := d.readRegister(f.Reg)
	if err != nil {
		return false, err
	}
	return v&f.Mask != 0, nil
}

// setFlag sets the bits of f, leaving the rest of the register alone. Nothing
// is written when they are all set already.
func (d *Device) setFlag(f Flag) error {
	v, err := d.readRegister(f.Reg)
	if err != nil {
		return err
	}
	if v&f.Mask == f.Mask {
		return nil
	}
	return d.writeRegister(f.Reg, v|f.Mask)
}

// clearFlag clears the bits of f, leaving the rest of the register alone.
// Nothing is written when they are all clear already.
func (d *Device) clearFlag(f Flag) error {
	v, err := d.readRegister(f.Reg)
	if err != nil {
		return err
	}
	if v&f.Mask == 0 {
		return nil
	}
	return d.writeRegister(f.Reg, v&^f.Mask)
}

// controlFlag sets f for On and clears it for Off.
func (d *Device) controlFlag(f Flag, c Control) error {
	if c == On {
		return d.setFlag(f)
	}
	return d.clearFlag(f)
}

// readField returns the bits of the multi-bit field f, shifted down to bit 0.
func (d *Device) readField(f Flag) (uint8, error) {
	v, err := d.readRegister(f.Reg)
	if err != nil {
		return 0, err
	}
	return (v & f.Mask) >> shift(f.Mask), nil
}

// writeField replaces the bits of the multi-bit field f with val. Bits outside
// the field are written back unchanged.
func (d *Device) writeField(f Flag, val uint8) error {
	v, err := d.readRegister(f.Reg)
	if err != nil {
		return err
	}
	v ^= v & f.Mask
	v |= (val << shift(f.Mask)) & f.Mask
	return d.writeRegister(f.Reg, v)
}

func shift(mask uint8) uint8 {
	var n uint8
	for mask != 0 && mask&1 == 0 {
		mask >>= 1
		n++
	}
	return n
}
