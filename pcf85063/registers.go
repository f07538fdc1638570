package pcf85063

// Address is the fixed 7-bit I2C address of the PCF85063A.
const Address = 0b1010001

// Register is the byte offset of one chip register.
type Register uint8

// control and status registers
const (
	Control1 Register = 0x00
	Control2 Register = 0x01
	Offset   Register = 0x02
	RAMByte  Register = 0x03
)

// time and date registers
const (
	Seconds  Register = 0x04
	Minutes  Register = 0x05
	Hours    Register = 0x06
	Days     Register = 0x07
	Weekdays Register = 0x08
	Months   Register = 0x09
	Years    Register = 0x0A
)

// alarm registers
const (
	SecondAlarm  Register = 0x0B
	MinuteAlarm  Register = 0x0C
	HourAlarm    Register = 0x0D
	DayAlarm     Register = 0x0E
	WeekdayAlarm Register = 0x0F
)

// timer registers
const (
	TimerValue Register = 0x10
	TimerMode  Register = 0x11
)

// Flag names one or more bits inside a specific register. Several masks share a
// bit position in different registers (AIE in Control_2, OS in Seconds and AE in
// every alarm register are all bit 7), so a mask is only ever used together with
// the register it belongs to.
type Flag struct {
	Reg  Register
	Mask uint8
}

// Control_1
var (
	flagCapSel        = Flag{Control1, 0b0000_0001} // 12.5 pF quartz load
	flag12h           = Flag{Control1, 0b0000_0010}
	flagCorrectionIE  = Flag{Control1, 0b0000_0100}
	flagSoftwareReset = Flag{Control1, 0b0001_0000}
	flagStop          = Flag{Control1, 0b0010_0000}
	flagExternalTest  = Flag{Control1, 0b1000_0000}
)

// Control_2
var (
	flagAlarmInterrupt      = Flag{Control2, 0b1000_0000} // AIE
	flagAlarm               = Flag{Control2, 0b0100_0000} // AF
	flagMinuteInterrupt     = Flag{Control2, 0b0010_0000}
	flagHalfMinuteInterrupt = Flag{Control2, 0b0001_0000}
	flagTimer               = Flag{Control2, 0b0000_1000} // TF
	fieldClockOut           = Flag{Control2, 0b0000_0111} // COF[2:0]
)

// oscillator stop, shares the seconds register
var flagOscillatorStop = Flag{Seconds, 0b1000_0000}

// Timer_mode
var (
	flagTimerPulse     = Flag{TimerMode, 0b0000_0001} // TI_TP
	flagTimerInterrupt = Flag{TimerMode, 0b0000_0010} // TIE
	flagTimerEnable    = Flag{TimerMode, 0b0000_0100} // TE
	fieldTimerClock    = Flag{TimerMode, 0b0001_1000} // TCF[1:0]
)

// aeMask is the alarm enable bit at the top of every alarm register. It is
// active low: 0 means the field takes part in the alarm match.
const aeMask = 0b1000_0000

// offsetModeMask selects the coarse (once per minute) offset correction mode.
const offsetModeMask = 0b1000_0000

// masks stripping the non-numeric bits of the time and date registers, in
// register order starting at Seconds
var timeMasks = [7]uint8{
	0b0111_1111, // seconds, OS flag in bit 7
	0b0111_1111, // minutes
	0b0011_1111, // hours (24 h mode)
	0b0011_1111, // days
	0b0000_0111, // weekdays
	0b0001_1111, // months
	0b1111_1111, // years
}
