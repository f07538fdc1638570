package pcf85063

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a value passed to the driver is out of range
// for its register. Nothing has been sent to the chip when it is returned.
var ErrInvalidInput = errors.New("pcf85063: invalid input data")

// BusError wraps an error returned by the I2C bus. Err is the bus error as is.
type BusError struct {
	Register Register
	Err      error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("pcf85063: i2c transaction on register 0x%02x: %v", uint8(e.Register), e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// RangeError is returned by Now when the chip holds a date that does not exist,
// usually because it was never set after power up.
type RangeError struct {
	Field string
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("pcf85063: %s %d out of range", e.Field, e.Value)
}
