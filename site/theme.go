package site

import (
	"fmt"

	"github.com/phanxgames/nuclea"
)

// Palette.
var (
	ColorBackground    = nuclea.RGB(0x0B, 0x0D, 0x17)
	ColorSurface       = nuclea.RGB(0x0F, 0x12, 0x21)
	ColorSurfaceRaised = nuclea.RGB(0x15, 0x19, 0x29)
	ColorCard          = nuclea.RGB(0x1C, 0x20, 0x33).WithAlpha(0.6)
	ColorElectric      = nuclea.RGB(0x8B, 0x5C, 0xF6)
	ColorElectricLight = nuclea.RGB(0xA7, 0x8B, 0xFA)
	ColorElectricDark  = nuclea.RGB(0x7C, 0x3A, 0xED)
	ColorCyan          = nuclea.RGB(0x06, 0xB6, 0xD4)
	ColorCyanLight     = nuclea.RGB(0x22, 0xD3, 0xEE)
	ColorText          = nuclea.ColorWhite
	ColorMuted         = nuclea.RGB(0x94, 0xA3, 0xB8)
	ColorDim           = nuclea.RGB(0x64, 0x74, 0x8B)
	ColorError         = nuclea.RGB(0xF8, 0x71, 0x71)
)

// Accent selects the highlight color of cards, steps and badges.
type Accent string

const (
	AccentPurple   Accent = "purple"
	AccentCyan     Accent = "cyan"
	AccentGradient Accent = "gradient"
)

// Color returns the accent's solid color. Gradient accents use the lighter
// purple, the midpoint of the purple to cyan gradient.
func (a Accent) Color() nuclea.Color {
	switch a {
	case AccentCyan:
		return ColorCyan
	case AccentGradient:
		return ColorElectricLight
	default:
		return ColorElectric
	}
}

// Layout constants, in pixels.
const (
	HeaderHeight      = 80
	ContainerMaxWidth = 1200
	// BreakpointTablet and BreakpointDesktop are the md and lg widths.
	BreakpointTablet  = 768
	BreakpointDesktop = 1024

	sectionPadding = 128
	gridGap        = 24
)

// Fonts holds one face per text role.
type Fonts struct {
	Small   nuclea.Font
	Body    nuclea.Font
	Large   nuclea.Font
	Heading nuclea.Font
	Title   nuclea.Font
	Display nuclea.Font
}

// LoadFonts builds the page fonts from the bundled Go fonts.
func LoadFonts() (Fonts, error) {
	fam, err := nuclea.LoadGoFonts()
	if err != nil {
		return Fonts{}, fmt.Errorf("site: %w", err)
	}
	return Fonts{
		Small:   nuclea.NewTTFFont(fam.Regular, 14),
		Body:    nuclea.NewTTFFont(fam.Regular, 16),
		Large:   nuclea.NewTTFFont(fam.Regular, 20),
		Heading: nuclea.NewTTFFont(fam.Bold, 22),
		Title:   nuclea.NewTTFFont(fam.Bold, 44),
		Display: nuclea.NewTTFFont(fam.Bold, 60),
	}, nil
}

// Theme is the shared look of every section.
type Theme struct {
	Fonts Fonts
}

// containerWidth returns the content width for a viewport width, matching a
// centered max-width container with responsive side padding.
func containerWidth(w float64) float64 {
	pad := 16.0
	switch {
	case w >= BreakpointDesktop:
		pad = 32
	case w >= 640:
		pad = 24
	}
	return min(w-2*pad, ContainerMaxWidth)
}

// columns picks the grid column count for a content width.
func columns(viewportW float64, desktop int) int {
	switch {
	case viewportW >= BreakpointDesktop:
		return desktop
	case viewportW >= BreakpointTablet:
		return min(desktop, 2)
	default:
		return 1
	}
}
