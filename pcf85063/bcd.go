package pcf85063

// decodeBCD converts a BCD byte to its decimal value. Registers that keep a
// flag in bit 7 must be masked first; the year register uses all eight bits.
func decodeBCD(bcd uint8) uint8 {
	units := bcd & 0x0F
	tens := bcd >> 4
	return 10*tens + units
}

// encodeBCD converts a decimal value in [0, 99] to BCD.
func encodeBCD(dec uint8) uint8 {
	return (dec/10)<<4 | dec%10
}
