package pcf85063

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/tinyrtc/drivers/tester"
)

var errBus = errors.New("nack")

func newDevice(c *qt.C) (*Device, *tester.I2CDevice8) {
	bus := tester.NewI2CBus(c)
	chip := bus.NewDevice(Address)
	return New(bus), chip
}

func TestDefaultAddress(t *testing.T) {
	c := qt.New(t)
	d, _ := newDevice(c)
	c.Assert(d.Address, qt.Equals, uint8(0x51))
}

func TestConfigure(t *testing.T) {
	c := qt.New(t)
	d, chip := newDevice(c)
	chip.Registers[Control1] = 0b1000_0010 // EXT_TEST, 12 h mode
	chip.Registers[Control2] = 0b1000_0000 // AIE

	err := d.Configure(Config{CapSel12pF: true, ClockOut: ClockOut1Hz})
	c.Assert(err, qt.IsNil)
	c.Assert(chip.Registers[Control1], qt.Equals, uint8(0b0000_0001))
	c.Assert(chip.Registers[Control2], qt.Equals, uint8(0b1000_0110))
}

func TestConfigureAddress(t *testing.T) {
	c := qt.New(t)
	bus := tester.NewI2CBus(c)
	chip := bus.NewDevice(0x52)
	chip.Registers[Control1] = 0b0000_0001
	d := New(bus)

	err := d.Configure(Config{Address: 0x52})
	c.Assert(err, qt.IsNil)
	c.Assert(d.Address, qt.Equals, uint8(0x52))
	c.Assert(chip.Registers[Control1], qt.Equals, uint8(0))
}

func TestSetFlag(t *testing.T) {
	c := qt.New(t)
	d, chip := newDevice(c)
	chip.Registers[Control2] = 0b0000_0101

	err := d.setFlag(flagAlarmInterrupt)
	c.Assert(err, qt.IsNil)
	c.Assert(chip.Registers[Control2], qt.Equals, uint8(0b1000_0101))
	c.Assert(chip.Writes, qt.Equals, 1)

	// already set: read only
	err = d.setFlag(flagAlarmInterrupt)
	c.Assert(err, qt.IsNil)
	c.Assert(chip.Reads, qt.Equals, 2)
	c.Assert(chip.Writes, qt.Equals, 1)
}

func TestClearFlag(t *testing.T) {
	c := qt.New(t)
	d, chip := newDevice(c)
	chip.Registers[Control2] = 0b1100_0011

	err := d.clearFlag(flagAlarm)
	c.Assert(err, qt.IsNil)
	c.Assert(chip.Registers[Control2], qt.Equals, uint8(0b1000_0011))
	c.Assert(chip.Writes, qt.Equals, 1)

	err = d.clearFlag(flagAlarm)
	c.Assert(err, qt.IsNil)
	c.Assert(chip.Writes, qt.Equals, 1)
}

func TestTestFlag(t *testing.T) {
	c := qt.New(t)
	d, chip := newDevice(c)

	set, err := d.testFlag(flagTimer)
	c.Assert(err, qt.IsNil)
	c.Assert(set, qt.Equals, false)

	chip.Registers[Control2] = 0b0000_1000
	set, err = d.testFlag(flagTimer)
	c.Assert(err, qt.IsNil)
	c.Assert(set, qt.Equals, true)
	c.Assert(chip.Writes, qt.Equals, 0)
}

func TestFlagReadError(t *testing.T) {
	c := qt.New(t)
	for name, op := range map[string]func(*Device) error{
		"set":   func(d *Device) error { return d.setFlag(flagStop) },
		"clear": func(d *Device) error { return d.clearFlag(flagStop) },
	} {
		c.Run(name, func(c *qt.C) {
			d, chip := newDevice(c)
			chip.Registers[Control1] = 0b0010_0000
			chip.ReadErr = errBus

			err := op(d)
			c.Assert(errors.Is(err, errBus), qt.Equals, true)
			var busErr *BusError
			c.Assert(errors.As(err, &busErr), qt.Equals, true)
			c.Assert(busErr.Register, qt.Equals, Control1)
			c.Assert(chip.Reads, qt.Equals, 1)
			c.Assert(chip.Writes, qt.Equals, 0)
		})
	}
}

func TestWriteError(t *testing.T) {
	c := qt.New(t)
	d, chip := newDevice(c)
	chip.WriteErr = errBus

	err := d.WriteRAM(0x42)
	c.Assert(err, qt.ErrorMatches, `pcf85063: i2c transaction on register 0x03: nack`)
	c.Assert(errors.Unwrap(err), qt.Equals, errBus)
}

func TestField(t *testing.T) {
	c := qt.New(t)
	d, chip := newDevice(c)
	chip.Registers[TimerMode] = 0b0000_0111

	err := d.writeField(fieldTimerClock, 0b10)
	c.Assert(err, qt.IsNil)
	c.Assert(chip.Registers[TimerMode], qt.Equals, uint8(0b0001_0111))

	v, err := d.readField(fieldTimerClock)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint8(0b10))
}
