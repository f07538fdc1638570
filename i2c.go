// Package drivers holds the interfaces shared by the device drivers in this
// repository. Each driver lives in its own package and talks to its chip through
// one of these interfaces, so the same driver runs on a microcontroller (TinyGo
// machine.I2C) and on a Linux host (see package hostbus).
package drivers

// I2C represents an I2C bus. It is notably implemented by the machine.I2C type
// and by the adapters in package hostbus.
type I2C interface {
	ReadRegister(addr uint8, r uint8, buf []byte) error
	WriteRegister(addr uint8, r uint8, buf []byte) error
	Tx(addr uint16, w, r []byte) error
}
