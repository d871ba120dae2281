package timeaxis

import "image/color"

// Theme holds the axis drawing colors.
type Theme struct {
	HeaderFill   color.RGBA
	HeaderBorder color.RGBA
	Tick         color.RGBA
	GridLine     color.RGBA
	WeekendFill  color.RGBA
	Label        color.RGBA
	WeekendLabel color.RGBA
	MonthLabel   color.RGBA
	Today        color.RGBA
}

// DefaultTheme is a light theme: white page, gray grid, red today marker.
func DefaultTheme() Theme {
	return Theme{
		HeaderFill:   color.RGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF},
		HeaderBorder: color.RGBA{R: 0xC8, G: 0xC8, B: 0xC8, A: 0xFF},
		Tick:         color.RGBA{R: 0x9A, G: 0x9A, B: 0x9A, A: 0xFF},
		GridLine:     color.RGBA{R: 0xE4, G: 0xE4, B: 0xE4, A: 0xFF},
		WeekendFill:  color.RGBA{R: 0xF2, G: 0xF2, B: 0xF2, A: 0xFF},
		Label:        color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF},
		WeekendLabel: color.RGBA{R: 0x98, G: 0x98, B: 0x98, A: 0xFF},
		MonthLabel:   color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF},
		Today:        color.RGBA{R: 0xD4, G: 0x3B, B: 0x2A, A: 0xFF},
	}
}
