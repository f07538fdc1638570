package pcf85063

// AlarmField is one of the five registers taking part in the alarm match. Each
// has its own enable bit, and the alarm fires when all enabled fields match.
type AlarmField uint8

const (
	AlarmSecond AlarmField = iota
	AlarmMinute
	AlarmHour
	AlarmDay
	AlarmWeekday
)

var alarmFields = [...]struct {
	reg      Register
	min, max uint8
	name     string
}{
	AlarmSecond:  {SecondAlarm, 0, 59, "second"},
	AlarmMinute:  {MinuteAlarm, 0, 59, "minute"},
	AlarmHour:    {HourAlarm, 0, 23, "hour"},
	AlarmDay:     {DayAlarm, 1, 31, "day"},
	AlarmWeekday: {WeekdayAlarm, 0, 6, "weekday"},
}

func (f AlarmField) String() string {
	if int(f) >= len(alarmFields) {
		return "invalid"
	}
	return alarmFields[f].name
}

// enableFlag is the AE bit of the field's register.
func (f AlarmField) enableFlag() Flag {
	return Flag{alarmFields[f].reg, aeMask}
}

// SetAlarm sets the alarm value of a field. Whether the field is enabled does
// not change.
func (d *Device) SetAlarm(f AlarmField, v uint8) error {
	if int(f) >= len(alarmFields) {
		return ErrInvalidInput
	}
	field := alarmFields[f]
	if v < field.min || v > field.max {
		return ErrInvalidInput
	}
	data, err := d.readRegister(field.reg)
	if err != nil {
		return err
	}
	// keep the AE bit as is
	data &= aeMask
	data |= encodeBCD(v)
	return d.writeRegister(field.reg, data)
}

// Alarm reads the alarm value of a field.
func (d *Device) Alarm(f AlarmField) (uint8, error) {
	if int(f) >= len(alarmFields) {
		return 0, ErrInvalidInput
	}
	data, err := d.readRegister(alarmFields[f].reg)
	if err != nil {
		return 0, err
	}
	return decodeBCD(data &^ aeMask), nil
}

// ControlAlarm enables (On) or disables (Off) a field in the alarm match.
func (d *Device) ControlAlarm(f AlarmField, c Control) error {
	if int(f) >= len(alarmFields) {
		return ErrInvalidInput
	}
	// AE is active low
	if c == On {
		return d.clearFlag(f.enableFlag())
	}
	return d.setFlag(f.enableFlag())
}

// AlarmEnabled reports whether a field takes part in the alarm match.
func (d *Device) AlarmEnabled(f AlarmField) (bool, error) {
	if int(f) >= len(alarmFields) {
		return false, ErrInvalidInput
	}
	disabled, err := d.testFlag(f.enableFlag())
	if err != nil {
		return false, err
	}
	return !disabled, nil
}

// SetAlarmSeconds sets the alarm seconds [0-59], keeping the AE bit unchanged.
func (d *Device) SetAlarmSeconds(seconds uint8) error { return d.SetAlarm(AlarmSecond, seconds) }

// SetAlarmMinutes sets the alarm minutes [0-59], keeping the AE bit unchanged.
func (d *Device) SetAlarmMinutes(minutes uint8) error { return d.SetAlarm(AlarmMinute, minutes) }

// SetAlarmHours sets the alarm hours [0-23], keeping the AE bit unchanged.
func (d *Device) SetAlarmHours(hours uint8) error { return d.SetAlarm(AlarmHour, hours) }

// SetAlarmDay sets the alarm day of the month [1-31], keeping the AE bit unchanged.
func (d *Device) SetAlarmDay(day uint8) error { return d.SetAlarm(AlarmDay, day) }

// SetAlarmWeekday sets the alarm weekday [0-6], keeping the AE bit unchanged.
func (d *Device) SetAlarmWeekday(weekday Weekday) error {
	return d.SetAlarm(AlarmWeekday, uint8(weekday))
}

func (d *Device) AlarmSeconds() (uint8, error) { return d.Alarm(AlarmSecond) }
func (d *Device) AlarmMinutes() (uint8, error) { return d.Alarm(AlarmMinute) }
func (d *Device) AlarmHours() (uint8, error)   { return d.Alarm(AlarmHour) }
func (d *Device) AlarmDay() (uint8, error)     { return d.Alarm(AlarmDay) }

func (d *Device) AlarmWeekday() (Weekday, error) {
	v, err := d.Alarm(AlarmWeekday)
	return Weekday(v), err
}

func (d *Device) ControlAlarmSeconds(c Control) error { return d.ControlAlarm(AlarmSecond, c) }
func (d *Device) ControlAlarmMinutes(c Control) error { return d.ControlAlarm(AlarmMinute, c) }
func (d *Device) ControlAlarmHours(c Control) error   { return d.ControlAlarm(AlarmHour, c) }
func (d *Device) ControlAlarmDay(c Control) error     { return d.ControlAlarm(AlarmDay, c) }
func (d *Device) ControlAlarmWeekday(c Control) error { return d.ControlAlarm(AlarmWeekday, c) }

func (d *Device) AlarmSecondsEnabled() (bool, error) { return d.AlarmEnabled(AlarmSecond) }
func (d *Device) AlarmMinutesEnabled() (bool, error) { return d.AlarmEnabled(AlarmMinute) }
func (d *Device) AlarmHoursEnabled() (bool, error)   { return d.AlarmEnabled(AlarmHour) }
func (d *Device) AlarmDayEnabled() (bool, error)     { return d.AlarmEnabled(AlarmDay) }
func (d *Device) AlarmWeekdayEnabled() (bool, error) { return d.AlarmEnabled(AlarmWeekday) }

// SetAlarmTime sets the alarm hours, minutes and seconds. The whole time is
// checked before anything is written; a bus error part way leaves the fields
// written so far in place.
func (d *Device) SetAlarmTime(t Time) error {
	if !t.Valid() {
		return ErrInvalidInput
	}
	err := d.SetAlarmHours(t.Hours)
	if err != nil {
		return err
	}
	err = d.SetAlarmMinutes(t.Minutes)
	if err != nil {
		return err
	}
	return d.SetAlarmSeconds(t.Seconds)
}

// AlarmTime reads the alarm hours, minutes and seconds.
func (d *Device) AlarmTime() (Time, error) {
	var t Time
	var err error
	t.Hours, err = d.AlarmHours()
	if err != nil {
		return Time{}, err
	}
	t.Minutes, err = d.AlarmMinutes()
	if err != nil {
		return Time{}, err
	}
	t.Seconds, err = d.AlarmSeconds()
	if err != nil {
		return Time{}, err
	}
	return t, nil
}

// ControlAlarmTime enables or disables the seconds, minutes and hours fields in
// one go. It stops at the first error.
func (d *Device) ControlAlarmTime(c Control) error {
	for _, f := range []AlarmField{AlarmSecond, AlarmMinute, AlarmHour} {
		err := d.ControlAlarm(f, c)
		if err != nil {
			return err
		}
	}
	return nil
}

// DisableAllAlarms takes every field out of the alarm match. It stops at the
// first error.
func (d *Device) DisableAllAlarms() error {
	for f := AlarmSecond; f <= AlarmWeekday; f++ {
		err := d.ControlAlarm(f, Off)
		if err != nil {
			return err
		}
	}
	return nil
}

// AlarmFlag reports whether the alarm fired since the flag was last cleared.
func (d *Device) AlarmFlag() (bool, error) {
	return d.testFlag(flagAlarm)
}

// ClearAlarmFlag clears the alarm flag, which also releases the interrupt pin.
func (d *Device) ClearAlarmFlag() error {
	return d.clearFlag(flagAlarm)
}

// ControlAlarmInterrupt enables or disables the interrupt pin for the alarm.
func (d *Device) ControlAlarmInterrupt(c Control) error {
	return d.controlFlag(flagAlarmInterrupt, c)
}

func (d *Device) AlarmInterruptEnabled() (bool, error) {
	return d.testFlag(flagAlarmInterrupt)
}
