package pcf85063

// Control turns a feature on or off.
type Control uint8

const (
	Off Control = iota
	On
)

func (c Control) String() string {
	if c == On {
		return "on"
	}
	return "off"
}

// ClockOut is the frequency on the CLKOUT pin.
type ClockOut uint8

const (
	ClockOut32768Hz ClockOut = iota
	ClockOut16384Hz
	ClockOut8192Hz
	ClockOut4096Hz
	ClockOut2048Hz
	ClockOut1024Hz
	ClockOut1Hz
	ClockOutOff // CLKOUT held low
)

// SetClockOutput selects the CLKOUT frequency. The other Control_2 bits are
// written back as they were read.
func (d *Device) SetClockOutput(f ClockOut) error {
	if f > ClockOutOff {
		return ErrInvalidInput
	}
	return d.writeField(fieldClockOut, uint8(f))
}

// ClockOutput returns the current CLKOUT frequency.
func (d *Device) ClockOutput() (ClockOut, error) {
	v, err := d.readField(fieldClockOut)
	return ClockOut(v), err
}

// ReadRAM reads the free RAM byte.
func (d *Device) ReadRAM() (uint8, error) {
	return d.readRegister(RAMByte)
}

// WriteRAM writes the free RAM byte. It survives as long as the chip is powered,
// from the battery if there is one.
func (d *Device) WriteRAM(v uint8) error {
	return d.writeRegister(RAMByte, v)
}

// Start lets the clock run.
func (d *Device) Start() error {
	return d.clearFlag(flagStop)
}

// Stop freezes the time counters. The prescaler is reset, so the clock resumes
// exactly one second after Start.
func (d *Device) Stop() error {
	return d.setFlag(flagStop)
}

// Running reports whether the clock is counting.
func (d *Device) Running() (bool, error) {
	stopped, err := d.testFlag(flagStop)
	if err != nil {
		return false, err
	}
	return !stopped, nil
}

// Reset triggers a software reset. All registers go back to their power-on
// values, and the SR bit always reads back as 0.
func (d *Device) Reset() error {
	return d.setFlag(flagSoftwareReset)
}

// SetOffset programs the offset register used to correct the quartz frequency.
// value is in steps of 4.34 ppm (normal mode, corrected every two hours) or
// 4.069 ppm (coarse mode, corrected every minute) and must be in [-64, 63].
func (d *Device) SetOffset(coarse bool, value int8) error {
	if value < -64 || value > 63 {
		return ErrInvalidInput
	}
	v := uint8(value) &^ offsetModeMask
	if coarse {
		v |= offsetModeMask
	}
	return d.writeRegister(Offset, v)
}

// Offset returns the correction mode and the signed offset value.
func (d *Device) Offset() (coarse bool, value int8, err error) {
	v, err := d.readRegister(Offset)
	if err != nil {
		return false, 0, err
	}
	coarse = v&offsetModeMask != 0
	// sign extend from bit 6
	if v&0b0100_0000 != 0 {
		v |= 0b1000_0000
	} else {
		v &^= 0b1000_0000
	}
	return coarse, int8(v), nil
}

// ControlCorrectionInterrupt enables an interrupt pulse on every offset
// correction, to help calibrate.
func (d *Device) ControlCorrectionInterrupt(c Control) error {
	return d.controlFlag(flagCorrectionIE, c)
}

// ControlMinuteInterrupt enables the interrupt pin once a minute.
func (d *Device) ControlMinuteInterrupt(c Control) error {
	return d.controlFlag(flagMinuteInterrupt, c)
}

// ControlHalfMinuteInterrupt enables the interrupt pin every 30 seconds.
func (d *Device) ControlHalfMinuteInterrupt(c Control) error {
	return d.controlFlag(flagHalfMinuteInterrupt, c)
}
