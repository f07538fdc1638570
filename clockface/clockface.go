// Package clockface draws the date and time kept by an RTC on a small pixel
// display, such as a 128x32 OLED.
package clockface

import (
	"fmt"
	"image/color"

	"tinygo.org/x/tinyfont"

	"github.com/tinyrtc/drivers"
	"github.com/tinyrtc/drivers/pcf85063"
)

type Face struct {
	display    drivers.Displayer
	Font       *tinyfont.Font
	Foreground color.RGBA
	Background color.RGBA
}

// New returns a face drawing white TomThumb text on black.
func New(display drivers.Displayer) *Face {
	return &Face{
		display:    display,
		Font:       &tinyfont.TomThumb,
		Foreground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Background: color.RGBA{A: 255},
	}
}

// Draw clears the display, writes the time on one line and the date below it,
// both centered, and flushes the display.
func (f *Face) Draw(dt pcf85063.DateTime) error {
	w, h := f.display.Size()
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			f.display.SetPixel(x, y, f.Background)
		}
	}

	lh := int16(f.Font.YAdvance)
	y := (h-2*lh)/2 + lh
	f.line(TimeString(dt.Clock()), w, y)
	f.line(DateString(dt), w, y+lh)
	return f.display.Display()
}

func (f *Face) line(s string, w, y int16) {
	_, outer := tinyfont.LineWidth(f.Font, s)
	x := (w - int16(outer)) / 2
	if x < 0 {
		x = 0
	}
	tinyfont.WriteLine(f.display, f.Font, x, y, s, f.Foreground)
}

// TimeString formats t as HH:MM:SS.
func TimeString(t pcf85063.Time) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// DateString formats the date part of dt as "Mon 2024-01-02", taking the year
// in the 21st century.
func DateString(dt pcf85063.DateTime) string {
	wd := dt.Weekday.String()
	if len(wd) > 3 {
		wd = wd[:3]
	}
	return fmt.Sprintf("%s 20%02d-%02d-%02d", wd, dt.Year, dt.Month, dt.Day)
}
