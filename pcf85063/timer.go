package pcf85063

// TimerClock is the source clock of the countdown timer.
type TimerClock uint8

const (
	Timer4096Hz TimerClock = iota
	Timer64Hz
	Timer1Hz
	Timer1_60Hz // one tick per minute
)

// SetTimer loads the countdown timer with value ticks of clk. The timer is not
// started; use ControlTimer for that. The enable, interrupt and pulse bits of
// Timer_mode are left alone.
func (d *Device) SetTimer(clk TimerClock, value uint8) error {
	if clk > Timer1_60Hz {
		return ErrInvalidInput
	}
	err := d.writeField(fieldTimerClock, uint8(clk))
	if err != nil {
		return err
	}
	return d.writeRegister(TimerValue, value)
}

// TimerValue returns the remaining ticks of the countdown timer.
func (d *Device) TimerValue() (uint8, error) {
	return d.readRegister(TimerValue)
}

// ControlTimer starts (On) or stops (Off) the countdown timer.
func (d *Device) ControlTimer(c Control) error {
	return d.controlFlag(flagTimerEnable, c)
}

// ControlTimerInterrupt enables the interrupt pin for the countdown timer. With
// pulse set the pin produces a short pulse instead of following the TF flag.
func (d *Device) ControlTimerInterrupt(c Control, pulse bool) error {
	err := d.controlFlag(flagTimerPulse, controlOf(pulse))
	if err != nil {
		return err
	}
	return d.controlFlag(flagTimerInterrupt, c)
}

// TimerFlag reports whether the countdown timer reached zero.
func (d *Device) TimerFlag() (bool, error) {
	return d.testFlag(flagTimer)
}

func (d *Device) ClearTimerFlag() error {
	return d.clearFlag(flagTimer)
}

func controlOf(b bool) Control {
	if b {
		return On
	}
	return Off
}
