package pcf85063

import (
	"strconv"
	"time"
)

// Weekday is the value of the weekday register. The chip only counts it up
// modulo 7; this driver numbers the week from Monday.
type Weekday uint8

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DefaultWeekday is the weekday NewDateTime fills in.
const DefaultWeekday = Sunday

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (w Weekday) String() string {
	if w > Sunday {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}
	return weekdayNames[w]
}

// Time is a time of day in 24-hour format.
type Time struct {
	Hours   uint8 // 0-23
	Minutes uint8 // 0-59
	Seconds uint8 // 0-59
}

// Valid reports whether all fields are in range.
func (t Time) Valid() bool {
	return t.Hours <= 23 && t.Minutes <= 59 && t.Seconds <= 59
}

// DateTime holds the seven time and date registers, decoded. Year counts from
// the start of the century.
type DateTime struct {
	Year    uint8 // 0-99
	Month   uint8 // 1-12
	Day     uint8 // 1-31
	Weekday Weekday
	Hours   uint8 // 0-23
	Minutes uint8 // 0-59
	Seconds uint8 // 0-59
}

// NewDateTime returns a DateTime with the weekday set to DefaultWeekday.
func NewDateTime(year, month, day, hours, minutes, seconds uint8) DateTime {
	return DateTime{
		Year:    year,
		Month:   month,
		Day:     day,
		Weekday: DefaultWeekday,
		Hours:   hours,
		Minutes: minutes,
		Seconds: seconds,
	}
}

// Valid reports whether all fields are in range. The day is not checked against
// the month.
func (dt DateTime) Valid() bool {
	return dt.Year <= 99 &&
		dt.Month >= 1 && dt.Month <= 12 &&
		dt.Day >= 1 && dt.Day <= 31 &&
		dt.Weekday <= Sunday &&
		dt.Clock().Valid()
}

// Clock returns the time of day part.
func (dt DateTime) Clock() Time {
	return Time{Hours: dt.Hours, Minutes: dt.Minutes, Seconds: dt.Seconds}
}

// DateTime reads the date and time in one burst, so the fields are coherent.
func (d *Device) DateTime() (DateTime, error) {
	buf := [7]byte{}
	err := d.readRegisters(Seconds, buf[:])
	if err != nil {
		return DateTime{}, err
	}
	for i := range buf {
		buf[i] = decodeBCD(buf[i] & timeMasks[i])
	}
	return DateTime{
		Seconds: buf[0],
		Minutes: buf[1],
		Hours:   buf[2],
		Day:     buf[3],
		Weekday: Weekday(buf[4]),
		Month:   buf[5],
		Year:    buf[6],
	}, nil
}

// SetDateTime writes the date and time in one burst. The chip only guarantees a
// consistent counter when all of them are written in the same transaction, so
// there are no setters for single fields.
func (d *Device) SetDateTime(dt DateTime) error {
	if !dt.Valid() {
		return ErrInvalidInput
	}
	buf := []byte{
		encodeBCD(dt.Seconds),
		encodeBCD(dt.Minutes),
		encodeBCD(dt.Hours),
		encodeBCD(dt.Day),
		encodeBCD(uint8(dt.Weekday)),
		encodeBCD(dt.Month),
		encodeBCD(dt.Year),
	}
	return d.writeRegisters(Seconds, buf)
}

// Time reads the time of day, leaving out the date.
func (d *Device) Time() (Time, error) {
	buf := [3]byte{}
	err := d.readRegisters(Seconds, buf[:])
	if err != nil {
		return Time{}, err
	}
	return Time{
		Seconds: decodeBCD(buf[0] & timeMasks[0]),
		Minutes: decodeBCD(buf[1] & timeMasks[1]),
		Hours:   decodeBCD(buf[2] & timeMasks[2]),
	}, nil
}

// SetTime sets the time of day. The date registers are not touched.
func (d *Device) SetTime(t Time) error {
	if !t.Valid() {
		return ErrInvalidInput
	}
	buf := []byte{
		encodeBCD(t.Seconds),
		encodeBCD(t.Minutes),
		encodeBCD(t.Hours),
	}
	return d.writeRegisters(Seconds, buf)
}

// Now returns the current time as a UTC time.Time between 2000 and 2099. A
// *RangeError is returned if the registers do not hold a real date.
func (d *Device) Now() (time.Time, error) {
	dt, err := d.DateTime()
	if err != nil {
		return time.Time{}, err
	}
	switch {
	case dt.Year > 99:
		return time.Time{}, &RangeError{Field: "year", Value: int(dt.Year)}
	case dt.Month < 1 || dt.Month > 12:
		return time.Time{}, &RangeError{Field: "month", Value: int(dt.Month)}
	case dt.Hours > 23:
		return time.Time{}, &RangeError{Field: "hour", Value: int(dt.Hours)}
	case dt.Minutes > 59:
		return time.Time{}, &RangeError{Field: "minute", Value: int(dt.Minutes)}
	case dt.Seconds > 59:
		return time.Time{}, &RangeError{Field: "second", Value: int(dt.Seconds)}
	}
	year := 2000 + int(dt.Year)
	t := time.Date(year, time.Month(dt.Month), int(dt.Day), int(dt.Hours), int(dt.Minutes), int(dt.Seconds), 0, time.UTC)
	// time.Date normalizes 31 February into March
	if dt.Day < 1 || t.Day() != int(dt.Day) {
		return time.Time{}, &RangeError{Field: "day", Value: int(dt.Day)}
	}
	return t, nil
}

// Set sets the date and time from t, converted to UTC. The year must be between
// 2000 and 2099.
func (d *Device) Set(t time.Time) error {
	t = t.UTC()
	year := t.Year() - 2000
	if year < 0 || year > 99 {
		return ErrInvalidInput
	}
	return d.SetDateTime(DateTime{
		Year:    uint8(year),
		Month:   uint8(t.Month()),
		Day:     uint8(t.Day()),
		Weekday: weekdayOf(t.Weekday()),
		Hours:   uint8(t.Hour()),
		Minutes: uint8(t.Minute()),
		Seconds: uint8(t.Second()),
	})
}

// OscillatorStopped reports whether the clock integrity is no longer
// guaranteed, typically after a power loss. The flag stays set until cleared.
func (d *Device) OscillatorStopped() (bool, error) {
	return d.testFlag(flagOscillatorStop)
}

// ClearOscillatorStop clears the oscillator stop flag.
func (d *Device) ClearOscillatorStop() error {
	return d.clearFlag(flagOscillatorStop)
}

// weekdayOf maps a time.Weekday, which starts on Sunday, onto the chip
// numbering.
func weekdayOf(w time.Weekday) Weekday {
	return Weekday((int(w) + 6) % 7)
}
