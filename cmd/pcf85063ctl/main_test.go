//go:build linux
// +build linux

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/tinyrtc/drivers/pcf85063"
	"github.com/tinyrtc/drivers/tester"
)

func newDevice(c *qt.C) (*pcf85063.Device, *tester.I2CDevice8) {
	bus := tester.NewI2CBus(c)
	chip := bus.NewDevice(pcf85063.Address)
	return pcf85063.New(bus), chip
}

func TestSetGet(t *testing.T) {
	c := qt.New(t)
	dev, chip := newDevice(c)
	c.Patch(&now, func() time.Time {
		return time.Date(2023, 6, 15, 12, 30, 45, 0, time.UTC)
	})

	out := new(bytes.Buffer)
	err := run(dev, []string{"set"}, out)
	c.Assert(err, qt.IsNil)
	c.Assert(out.String(), qt.Equals, "clock set to 2023-06-15T12:30:45Z\n")
	c.Assert(chip.Registers[pcf85063.Years], qt.Equals, uint8(0x23))

	out.Reset()
	err = run(dev, []string{"get"}, out)
	c.Assert(err, qt.IsNil)
	c.Assert(out.String(), qt.Equals, "2023-06-15T12:30:45Z Thursday\n")

	err = run(dev, []string{"set", "2024-02-29T23:59:58+01:00"}, out)
	c.Assert(err, qt.IsNil)
	c.Assert(chip.Registers[pcf85063.Days], qt.Equals, uint8(0x29))
	c.Assert(chip.Registers[pcf85063.Hours], qt.Equals, uint8(0x22))
}

func TestGetInvalidDate(t *testing.T) {
	c := qt.New(t)
	dev, _ := newDevice(c)

	out := new(bytes.Buffer)
	err := run(dev, []string{"get"}, out)
	c.Assert(err, qt.IsNil)
	c.Assert(strings.HasPrefix(out.String(), "invalid date: "), qt.Equals, true)
}

func TestTimeCommand(t *testing.T) {
	c := qt.New(t)
	dev, chip := newDevice(c)

	err := run(dev, []string{"time", "07:08:09"}, new(bytes.Buffer))
	c.Assert(err, qt.IsNil)
	c.Assert(chip.LastWrite, qt.DeepEquals, []byte{0x04, 0x09, 0x08, 0x07})

	err = run(dev, []string{"time", "25:00:00"}, new(bytes.Buffer))
	c.Assert(errors.Is(err, pcf85063.ErrInvalidInput), qt.Equals, true)
}

func TestAlarmCommands(t *testing.T) {
	c := qt.New(t)
	dev, chip := newDevice(c)
	for r := pcf85063.SecondAlarm; r <= pcf85063.WeekdayAlarm; r++ {
		chip.Registers[r] = 0x80
	}
	out := new(bytes.Buffer)

	for _, args := range [][]string{
		{"alarm", "at", "06:45:00"},
		{"alarm", "set", "weekday", "2"},
		{"alarm", "on", "time"},
		{"alarm", "on", "weekday"},
		{"alarm", "off", "seconds"},
		{"alarm", "irq", "on"},
	} {
		err := run(dev, args, out)
		c.Assert(err, qt.IsNil, qt.Commentf("%v", args))
	}
	c.Assert(out.String(), qt.Equals, "")

	err := run(dev, []string{"alarm"}, out)
	c.Assert(err, qt.IsNil)
	c.Assert(out.String(), qt.Equals, ""+
		"second    0 off\n"+
		"minute   45 on\n"+
		"hour      6 on\n"+
		"day       0 off\n"+
		"weekday   2 on\n",
	)
	c.Assert(chip.Registers[pcf85063.Control2], qt.Equals, uint8(0x80))

	err = run(dev, []string{"alarm", "off", "all"}, out)
	c.Assert(err, qt.IsNil)
	for r := pcf85063.SecondAlarm; r <= pcf85063.WeekdayAlarm; r++ {
		c.Assert(chip.Registers[r]&0x80, qt.Equals, uint8(0x80))
	}

	err = run(dev, []string{"alarm", "on", "century"}, out)
	c.Assert(err, qt.ErrorMatches, `alarm: invalid alarm field "century"`)
}

func TestStatus(t *testing.T) {
	c := qt.New(t)
	dev, chip := newDevice(c)
	chip.Registers[pcf85063.Seconds] = 0x80
	chip.Registers[pcf85063.Control2] = 0b0100_0110

	out := new(bytes.Buffer)
	err := run(dev, []string{"status"}, out)
	c.Assert(err, qt.IsNil)
	c.Assert(out.String(), qt.Equals, ""+
		"oscillator-stopped: true\n"+
		"running:            true\n"+
		"alarm-flag:         true\n"+
		"alarm-interrupt:    false\n"+
		"timer-flag:         false\n"+
		"clkout:             1\n",
	)
}

func TestAncillaryCommands(t *testing.T) {
	c := qt.New(t)
	dev, chip := newDevice(c)
	out := new(bytes.Buffer)

	c.Assert(run(dev, []string{"clkout", "1024Hz"}, out), qt.IsNil)
	c.Assert(chip.Registers[pcf85063.Control2], qt.Equals, uint8(5))
	c.Assert(run(dev, []string{"clkout"}, out), qt.IsNil)
	c.Assert(run(dev, []string{"clkout", "3Hz"}, out), qt.ErrorMatches, `clkout: invalid frequency "3Hz"`)

	c.Assert(run(dev, []string{"ram", "0xa5"}, out), qt.IsNil)
	c.Assert(chip.Registers[pcf85063.RAMByte], qt.Equals, uint8(0xA5))
	c.Assert(run(dev, []string{"ram"}, out), qt.IsNil)

	c.Assert(run(dev, []string{"offset", "-3", "coarse"}, out), qt.IsNil)
	c.Assert(chip.Registers[pcf85063.Offset], qt.Equals, uint8(0xFD))
	c.Assert(run(dev, []string{"offset"}, out), qt.IsNil)
	c.Assert(run(dev, []string{"offset", "5", "corse"}, out), qt.ErrorMatches, `offset: usage: offset \[VALUE \[normal\|coarse\]\]`)
	c.Assert(chip.Registers[pcf85063.Offset], qt.Equals, uint8(0xFD))

	c.Assert(run(dev, []string{"stop"}, out), qt.IsNil)
	c.Assert(chip.Registers[pcf85063.Control1], qt.Equals, uint8(0x20))
	c.Assert(run(dev, []string{"start"}, out), qt.IsNil)
	c.Assert(chip.Registers[pcf85063.Control1], qt.Equals, uint8(0))

	c.Assert(out.String(), qt.Equals, "1024\n0xa5\n-3 coarse\n")

	c.Assert(run(dev, []string{"frobnicate"}, out), qt.ErrorMatches, `unknown command "frobnicate"`)
}

func TestExecLine(t *testing.T) {
	c := qt.New(t)
	dev, chip := newDevice(c)
	out := new(bytes.Buffer)

	quit, err := execLine(dev, `ram "42"`, out)
	c.Assert(err, qt.IsNil)
	c.Assert(quit, qt.Equals, false)
	c.Assert(chip.Registers[pcf85063.RAMByte], qt.Equals, uint8(42))

	quit, err = execLine(dev, "   ", out)
	c.Assert(err, qt.IsNil)
	c.Assert(quit, qt.Equals, false)

	_, err = execLine(dev, "mqtt", out)
	c.Assert(err, qt.ErrorMatches, `mqtt is not available from the shell`)

	quit, err = execLine(dev, "quit", out)
	c.Assert(err, qt.IsNil)
	c.Assert(quit, qt.Equals, true)
}

func TestBridgePoll(t *testing.T) {
	c := qt.New(t)
	dev, chip := newDevice(c)
	c.Assert(dev.SetDateTime(pcf85063.DateTime{Year: 23, Month: 6, Day: 15, Weekday: pcf85063.Thursday, Hours: 12, Minutes: 30, Seconds: 45}), qt.IsNil)

	type msg struct {
		Topic    string
		Retained bool
		Payload  string
	}
	var msgs []msg
	b := &bridge{
		dev:   dev,
		topic: "rtc",
		publish: func(topic string, retained bool, payload string) error {
			msgs = append(msgs, msg{topic, retained, payload})
			return nil
		},
	}

	c.Assert(b.poll(), qt.IsNil)
	c.Assert(msgs, qt.DeepEquals, []msg{{"rtc/time", true, "2023-06-15T12:30:45Z"}})

	chip.Registers[pcf85063.Control2] = 0b0100_0000
	msgs = nil
	c.Assert(b.poll(), qt.IsNil)
	c.Assert(msgs, qt.DeepEquals, []msg{
		{"rtc/time", true, "2023-06-15T12:30:45Z"},
		{"rtc/alarm", false, "2023-06-15T12:30:45Z"},
	})
	c.Assert(chip.Registers[pcf85063.Control2], qt.Equals, uint8(0))

	c.Assert(b.apply("2024-01-01T00:00:00Z"), qt.IsNil)
	c.Assert(chip.Registers[pcf85063.Years], qt.Equals, uint8(0x24))
	c.Assert(b.apply("yesterday"), qt.ErrorMatches, `invalid time "yesterday": .*`)
}
