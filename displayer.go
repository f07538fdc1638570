package drivers

import "image/color"

// Displayer is a pixel display that can be drawn on and then flushed.
type Displayer interface {
	// Size returns the current size of the display.
	Size() (x, y int16)

	// SetPixel modifies the internal buffer.
	SetPixel(x, y int16, c color.RGBA)

	// Display sends the buffer (if any) to the screen.
	Display() error
}
