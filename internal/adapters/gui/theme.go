package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// palette is the fixed style table for the converter window, keyed by the
// toolkit's named elements.
var palette = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:      color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff},
	theme.ColorNameForeground:      color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	theme.ColorNameButton:          color.NRGBA{R: 0x25, G: 0x25, B: 0x25, A: 0xff},
	theme.ColorNamePrimary:         color.NRGBA{R: 0x00, G: 0x78, B: 0xd4, A: 0xff},
	theme.ColorNameHover:           color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	theme.ColorNamePressed:         color.NRGBA{R: 0x00, G: 0x5a, B: 0x9e, A: 0xff},
	theme.ColorNameDisabled:        color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	theme.ColorNameInputBackground: color.NRGBA{R: 0x2d, G: 0x2d, B: 0x2d, A: 0xff},
	theme.ColorNamePlaceHolder:     color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
	theme.ColorNameSuccess:         color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
	theme.ColorNameError:           color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff},
}

type darkTheme struct{}

var _ fyne.Theme = (*darkTheme)(nil)

func (darkTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if c, ok := palette[name]; ok {
		return c
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (darkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (darkTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
