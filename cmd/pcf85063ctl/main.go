//go:build linux
// +build linux

// Command pcf85063ctl reads and configures a PCF85063A real-time clock attached
// to the I2C bus of a Linux host.
//
// Usage:
//
//	pcf85063ctl [options] <command> [args...]
//
// Commands:
//
//	get                       print the date and time
//	set [now|RFC3339]         set the date and time (default: system time)
//	time HH:MM:SS             set the time of day only
//	status                    print the clock, alarm and timer flags
//	alarm                     print the alarm settings
//	alarm at HH:MM:SS         set the alarm time
//	alarm set FIELD VALUE     set one alarm field (second, minute, hour, day, weekday)
//	alarm on|off FIELD...     enable or disable fields ("time" and "all" select several)
//	alarm clear               clear the alarm flag
//	alarm irq on|off          enable or disable the alarm interrupt
//	clkout [FREQ]             print or set the CLKOUT frequency (32768 ... 1, off)
//	ram [VALUE]               print or write the RAM byte
//	offset [VALUE [MODE]]     print or set the offset register (MODE: normal, coarse)
//	start|stop|reset          control the oscillator, or reset the chip
//	shell                     run commands interactively
//	mqtt                      publish the time and alarm events to an MQTT broker
//
// Options:
//
//	-bus string     periph.io I2C bus name (default: first bus)
//	-smbus int      use /dev/i2c-N through SMBus instead of periph.io (default: -1)
//	-addr int       device address (default: 0x51)
package main // import "github.com/tinyrtc/drivers/cmd/pcf85063ctl"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tinyrtc/drivers"
	"github.com/tinyrtc/drivers/hostbus"
	"github.com/tinyrtc/drivers/pcf85063"
)

func main() {
	xmain(os.Args[1:])
}

func xmain(args []string) {
	log.SetPrefix("pcf85063ctl: ")
	log.SetFlags(0)

	fset := flag.NewFlagSet("pcf85063ctl", flag.ExitOnError)
	var (
		busName = fset.String("bus", "", "periph.io I2C bus name")
		smbusID = fset.Int("smbus", -1, "use /dev/i2c-N through SMBus instead of periph.io")
		addr    = fset.Int("addr", pcf85063.Address, "device address")
	)
	fset.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pcf85063ctl [options] <command> [args...]\n\nOptions:\n")
		fset.PrintDefaults()
	}
	_ = fset.Parse(args)

	if fset.NArg() == 0 {
		fset.Usage()
		os.Exit(2)
	}

	bus, closer, err := openBus(*busName, *smbusID, uint8(*addr))
	if err != nil {
		log.Fatalf("could not open i2c bus: %+v", err)
	}
	defer closer.Close()

	dev := pcf85063.New(bus)
	dev.Address = uint8(*addr)

	switch cmd := fset.Arg(0); cmd {
	case "shell":
		err = shell(dev, os.Stdout)
	case "mqtt":
		err = mqttBridge(dev, fset.Args()[1:])
	default:
		err = run(dev, fset.Args(), os.Stdout)
	}
	if err != nil {
		closer.Close()
		log.Fatalf("%+v", err)
	}
}

func openBus(name string, smbusID int, addr uint8) (drivers.I2C, io.Closer, error) {
	if smbusID >= 0 {
		bus, err := hostbus.OpenSMBus(smbusID, addr)
		if err != nil {
			return nil, nil, err
		}
		return bus, bus, nil
	}
	bus, err := hostbus.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return bus, bus, nil
}
