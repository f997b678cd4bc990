// Package palette names the colors shared by the renderers and the built-in
// scenarios.
package palette

import "image/color"

var (
	// Red, Blue, Green and Yellow are the class colors of the built-in
	// scenarios, in the order classes take them.
	Red    = color.RGBA{224, 64, 64, 255}
	Blue   = color.RGBA{64, 96, 224, 255}
	Green  = color.RGBA{64, 192, 96, 255}
	Yellow = color.RGBA{213, 179, 42, 255}

	// Unclaimed is the color of a marker no agent holds.
	Unclaimed = color.RGBA{68, 68, 68, 255}

	// Asphalt is the window background.
	Asphalt = color.RGBA{29, 33, 48, 255}
)

var classes = []color.RGBA{Red, Blue, Green, Yellow}

// Class returns the i-th class color, cycling through Red, Blue, Green and
// Yellow.
func Class(i int) color.RGBA { return classes[i%len(classes)] }
