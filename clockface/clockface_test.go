package clockface

import (
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/tinyrtc/drivers/pcf85063"
)

type fakeDisplay struct {
	w, h     int16
	pixels   map[[2]int16]color.RGBA
	flushed  int
	outOfBox int
}

func newFakeDisplay(w, h int16) *fakeDisplay {
	return &fakeDisplay{w: w, h: h, pixels: make(map[[2]int16]color.RGBA)}
}

func (d *fakeDisplay) Size() (x, y int16) { return d.w, d.h }

func (d *fakeDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		d.outOfBox++
		return
	}
	d.pixels[[2]int16{x, y}] = c
}

func (d *fakeDisplay) Display() error {
	d.flushed++
	return nil
}

func TestDraw(t *testing.T) {
	c := qt.New(t)
	display := newFakeDisplay(128, 32)
	face := New(display)

	dt := pcf85063.DateTime{Year: 24, Month: 3, Day: 9, Weekday: pcf85063.Saturday, Hours: 7, Minutes: 5, Seconds: 3}
	err := face.Draw(dt)
	c.Assert(err, qt.IsNil)
	c.Assert(display.flushed, qt.Equals, 1)
	c.Assert(display.outOfBox, qt.Equals, 0)
	c.Assert(len(display.pixels), qt.Equals, 128*32)

	lit := 0
	for _, p := range display.pixels {
		if p == face.Foreground {
			lit++
		}
	}
	c.Assert(lit > 0, qt.Equals, true)
}

func TestStrings(t *testing.T) {
	c := qt.New(t)
	dt := pcf85063.DateTime{Year: 24, Month: 3, Day: 9, Weekday: pcf85063.Saturday, Hours: 7, Minutes: 5, Seconds: 3}
	c.Assert(TimeString(dt.Clock()), qt.Equals, "07:05:03")
	c.Assert(DateString(dt), qt.Equals, "Sat 2024-03-09")
}
