//go:build linux
// +build linux

package hostbus

import (
	"errors"

	"github.com/go-daq/smbus"
)

// ErrUnsupported is returned for a transaction SMBus cannot express.
var ErrUnsupported = errors.New("hostbus: transaction not supported over smbus")

// SMBus implements drivers.I2C on top of the kernel SMBus interface. Only
// register transactions are supported: a register pointer write followed by a
// data write, or by a read.
type SMBus struct {
	conn *smbus.Conn
}

// OpenSMBus opens /dev/i2c-<bus> and targets the device at addr.
func OpenSMBus(bus int, addr uint8) (*SMBus, error) {
	conn, err := smbus.Open(bus, addr)
	if err != nil {
		return nil, err
	}
	return &SMBus{conn: conn}, nil
}

// NewSMBus wraps an already opened connection.
func NewSMBus(conn *smbus.Conn) *SMBus {
	return &SMBus{conn: conn}
}

func (s *SMBus) Close() error {
	return s.conn.Close()
}

func (s *SMBus) Tx(addr uint16, w, r []byte) error {
	if len(w) == 0 {
		return ErrUnsupported
	}
	if len(r) == 0 {
		return s.WriteRegister(uint8(addr), w[0], w[1:])
	}
	if len(w) != 1 {
		return ErrUnsupported
	}
	return s.ReadRegister(uint8(addr), w[0], r)
}

func (s *SMBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	switch len(buf) {
	case 0:
		return nil
	case 1:
		v, err := s.conn.ReadReg(addr, r)
		if err != nil {
			return err
		}
		buf[0] = v
		return nil
	default:
		return s.conn.ReadBlockData(addr, r, buf)
	}
}

func (s *SMBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	switch len(buf) {
	case 0:
		return ErrUnsupported
	case 1:
		return s.conn.WriteReg(addr, r, buf[0])
	default:
		return s.conn.WriteBlockData(addr, r, buf)
	}
}
