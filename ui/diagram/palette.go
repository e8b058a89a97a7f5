package diagram

import "image/color"

// ---- Styles (palettes) ----

type Palette struct {
	Bg        color.RGBA
	Light     color.RGBA
	Dark      color.RGBA
	Mark      color.RGBA
	Check     color.RGBA
	Text      color.RGBA
	WhiteMan  color.RGBA
	BlackMan  color.RGBA
	ManStroke color.RGBA
}

var LightPalette = Palette{
	Bg:        color.RGBA{0xf7, 0xf7, 0xf7, 0xff},
	Light:     color.RGBA{0xf0, 0xd9, 0xb5, 0xff},
	Dark:      color.RGBA{0xb5, 0x88, 0x63, 0xff},
	Mark:      color.RGBA{0x22, 0x88, 0xcc, 0xaa},
	Check:     color.RGBA{0xd9, 0x30, 0x30, 0xcc},
	Text:      color.RGBA{0x22, 0x22, 0x22, 0xff},
	WhiteMan:  color.RGBA{0xff, 0xff, 0xff, 0xff},
	BlackMan:  color.RGBA{0x22, 0x22, 0x22, 0xff},
	ManStroke: color.RGBA{0x40, 0x40, 0x40, 0xff},
}

var DarkPalette = Palette{
	Bg:        color.RGBA{0x12, 0x12, 0x12, 0xff},
	Light:     color.RGBA{0x76, 0x96, 0x56, 0xff},
	Dark:      color.RGBA{0x3b, 0x4a, 0x2f, 0xff},
	Mark:      color.RGBA{0x2a, 0xa1, 0xd1, 0xaa},
	Check:     color.RGBA{0xe0, 0x40, 0x40, 0xcc},
	Text:      color.RGBA{0xee, 0xee, 0xee, 0xff},
	WhiteMan:  color.RGBA{0xee, 0xee, 0xee, 0xff},
	BlackMan:  color.RGBA{0x10, 0x10, 0x10, 0xff},
	ManStroke: color.RGBA{0x90, 0x90, 0x90, 0xff},
}

// PaletteByName returns DarkPalette for "dark" and LightPalette otherwise.
func PaletteByName(name string) Palette {
	if name == "dark" {
		return DarkPalette
	}
	return LightPalette
}
