//go:build linux
// +build linux

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tinyrtc/drivers/pcf85063"
)

type command func(dev *pcf85063.Device, args []string, w io.Writer) error

var commands map[string]command

func init() {
	commands = map[string]command{
		"get":    cmdGet,
		"set":    cmdSet,
		"time":   cmdTime,
		"status": cmdStatus,
		"alarm":  cmdAlarm,
		"clkout": cmdClockOut,
		"ram":    cmdRAM,
		"offset": cmdOffset,
		"start":  func(dev *pcf85063.Device, _ []string, _ io.Writer) error { return dev.Start() },
		"stop":   func(dev *pcf85063.Device, _ []string, _ io.Writer) error { return dev.Stop() },
		"reset":  func(dev *pcf85063.Device, _ []string, _ io.Writer) error { return dev.Reset() },
	}
}

// now is replaced in tests.
var now = time.Now

func run(dev *pcf85063.Device, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing command")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	err := cmd(dev, args[1:], w)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

func cmdGet(dev *pcf85063.Device, args []string, w io.Writer) error {
	t, err := dev.Now()
	var rangeErr *pcf85063.RangeError
	switch {
	case errors.As(err, &rangeErr):
		// not a real date, show what the chip holds
		dt, err := dev.DateTime()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "invalid date: %+v (%v)\n", dt, rangeErr)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(w, "%s %s\n", t.Format(time.RFC3339), t.Weekday())
	return nil
}

func cmdSet(dev *pcf85063.Device, args []string, w io.Writer) error {
	t := now()
	if len(args) > 0 && args[0] != "now" {
		var err error
		t, err = time.Parse(time.RFC3339, args[0])
		if err != nil {
			return err
		}
	}
	err := dev.Set(t)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "clock set to %s\n", t.UTC().Format(time.RFC3339))
	return nil
}

func cmdTime(dev *pcf85063.Device, args []string, w io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: time HH:MM:SS")
	}
	t, err := parseClock(args[0])
	if err != nil {
		return err
	}
	return dev.SetTime(t)
}

func cmdStatus(dev *pcf85063.Device, args []string, w io.Writer) error {
	stopped, err := dev.OscillatorStopped()
	if err != nil {
		return err
	}
	running, err := dev.Running()
	if err != nil {
		return err
	}
	alarm, err := dev.AlarmFlag()
	if err != nil {
		return err
	}
	irq, err := dev.AlarmInterruptEnabled()
	if err != nil {
		return err
	}
	timer, err := dev.TimerFlag()
	if err != nil {
		return err
	}
	clk, err := dev.ClockOutput()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "oscillator-stopped: %v\n", stopped)
	fmt.Fprintf(w, "running:            %v\n", running)
	fmt.Fprintf(w, "alarm-flag:         %v\n", alarm)
	fmt.Fprintf(w, "alarm-interrupt:    %v\n", irq)
	fmt.Fprintf(w, "timer-flag:         %v\n", timer)
	fmt.Fprintf(w, "clkout:             %s\n", clockOutNames[clk])
	return nil
}

func cmdAlarm(dev *pcf85063.Device, args []string, w io.Writer) error {
	if len(args) == 0 {
		return showAlarm(dev, w)
	}
	switch args[0] {
	case "at":
		if len(args) != 2 {
			return errors.New("usage: alarm at HH:MM:SS")
		}
		t, err := parseClock(args[1])
		if err != nil {
			return err
		}
		return dev.SetAlarmTime(t)
	case "set":
		if len(args) != 3 {
			return errors.New("usage: alarm set FIELD VALUE")
		}
		f, err := parseField(args[1])
		if err != nil {
			return err
		}
		v, err := strconv.ParseUint(args[2], 10, 8)
		if err != nil {
			return err
		}
		return dev.SetAlarm(f, uint8(v))
	case "on", "off":
		c := pcf85063.Off
		if args[0] == "on" {
			c = pcf85063.On
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: alarm %s FIELD...", args[0])
		}
		for _, name := range args[1:] {
			var err error
			switch name {
			case "time":
				err = dev.ControlAlarmTime(c)
			case "all":
				if c == pcf85063.Off {
					err = dev.DisableAllAlarms()
					break
				}
				for f := pcf85063.AlarmSecond; f <= pcf85063.AlarmWeekday && err == nil; f++ {
					err = dev.ControlAlarm(f, c)
				}
			default:
				var f pcf85063.AlarmField
				f, err = parseField(name)
				if err == nil {
					err = dev.ControlAlarm(f, c)
				}
			}
			if err != nil {
				return err
			}
		}
		return nil
	case "clear":
		return dev.ClearAlarmFlag()
	case "irq":
		if len(args) != 2 {
			return errors.New("usage: alarm irq on|off")
		}
		c, err := parseControl(args[1])
		if err != nil {
			return err
		}
		return dev.ControlAlarmInterrupt(c)
	default:
		return fmt.Errorf("unknown alarm command %q", args[0])
	}
}

func showAlarm(dev *pcf85063.Device, w io.Writer) error {
	for f := pcf85063.AlarmSecond; f <= pcf85063.AlarmWeekday; f++ {
		v, err := dev.Alarm(f)
		if err != nil {
			return err
		}
		enabled, err := dev.AlarmEnabled(f)
		if err != nil {
			return err
		}
		state := "off"
		if enabled {
			state = "on"
		}
		fmt.Fprintf(w, "%-8s %2d %s\n", f, v, state)
	}
	return nil
}

var clockOutNames = map[pcf85063.ClockOut]string{
	pcf85063.ClockOut32768Hz: "32768",
	pcf85063.ClockOut16384Hz: "16384",
	pcf85063.ClockOut8192Hz:  "8192",
	pcf85063.ClockOut4096Hz:  "4096",
	pcf85063.ClockOut2048Hz:  "2048",
	pcf85063.ClockOut1024Hz:  "1024",
	pcf85063.ClockOut1Hz:     "1",
	pcf85063.ClockOutOff:     "off",
}

func cmdClockOut(dev *pcf85063.Device, args []string, w io.Writer) error {
	if len(args) == 0 {
		f, err := dev.ClockOutput()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, clockOutNames[f])
		return nil
	}
	for f, name := range clockOutNames {
		if name == strings.TrimSuffix(strings.ToLower(args[0]), "hz") {
			return dev.SetClockOutput(f)
		}
	}
	return fmt.Errorf("invalid frequency %q", args[0])
}

func cmdRAM(dev *pcf85063.Device, args []string, w io.Writer) error {
	if len(args) == 0 {
		v, err := dev.ReadRAM()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "0x%02x\n", v)
		return nil
	}
	v, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		return err
	}
	return dev.WriteRAM(uint8(v))
}

func cmdOffset(dev *pcf85063.Device, args []string, w io.Writer) error {
	if len(args) == 0 {
		coarse, v, err := dev.Offset()
		if err != nil {
			return err
		}
		mode := "normal"
		if coarse {
			mode = "coarse"
		}
		fmt.Fprintf(w, "%d %s\n", v, mode)
		return nil
	}
	v, err := strconv.ParseInt(args[0], 10, 8)
	if err != nil {
		return err
	}
	coarse := false
	switch {
	case len(args) == 1:
	case len(args) == 2 && args[1] == "coarse":
		coarse = true
	case len(args) == 2 && args[1] == "normal":
	default:
		return errors.New("usage: offset [VALUE [normal|coarse]]")
	}
	return dev.SetOffset(coarse, int8(v))
}

func parseClock(s string) (pcf85063.Time, error) {
	var t pcf85063.Time
	_, err := fmt.Sscanf(s, "%d:%d:%d", &t.Hours, &t.Minutes, &t.Seconds)
	if err != nil {
		return t, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t, nil
}

func parseField(s string) (pcf85063.AlarmField, error) {
	for f := pcf85063.AlarmSecond; f <= pcf85063.AlarmWeekday; f++ {
		if f.String() == s || f.String()+"s" == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("invalid alarm field %q", s)
}

func parseControl(s string) (pcf85063.Control, error) {
	switch s {
	case "on":
		return pcf85063.On, nil
	case "off":
		return pcf85063.Off, nil
	}
	return pcf85063.Off, fmt.Errorf("invalid state %q", s)
}
