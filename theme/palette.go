// Package theme holds the screen palettes and the tweens that animate
// between them. Nothing here touches task state.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the set of colors one theme paints with.
type Palette struct {
	Background  string
	Text        string
	Card        string
	CardText    string
	Input       string
	InputText   string
	Placeholder string
	Accent      string
	Important   string
	AddButton   string
}

// Light is the default palette.
func Light() Palette {
	return Palette{
		Background:  "#d9d9d9",
		Text:        "#000000",
		Card:        "#ffffff",
		CardText:    "#000000",
		Input:       "#ffffff",
		InputText:   "#000000",
		Placeholder: "#898888",
		Accent:      "#3770a4",
		Important:   "#c8971a",
		AddButton:   "#3770a4",
	}
}

// Dark is the palette used when dark mode is on.
func Dark() Palette {
	return Palette{
		Background:  "#000000",
		Text:        "#ffffff",
		Card:        "#303030",
		CardText:    "#ffffff",
		Input:       "#303030",
		InputText:   "#ffffff",
		Placeholder: "#b0b0b0",
		Accent:      "#61acf1",
		Important:   "#c8971a",
		AddButton:   "#3770a4",
	}
}

// For returns the palette for a dark-mode flag.
func For(dark bool) Palette {
	if dark {
		return Dark()
	}
	return Light()
}

// Lerp blends every color of p toward to. t is clamped to [0,1].
func (p Palette) Lerp(to Palette, t float64) Palette {
	return Palette{
		Background:  blendHex(p.Background, to.Background, t),
		Text:        blendHex(p.Text, to.Text, t),
		Card:        blendHex(p.Card, to.Card, t),
		CardText:    blendHex(p.CardText, to.CardText, t),
		Input:       blendHex(p.Input, to.Input, t),
		InputText:   blendHex(p.InputText, to.InputText, t),
		Placeholder: blendHex(p.Placeholder, to.Placeholder, t),
		Accent:      blendHex(p.Accent, to.Accent, t),
		Important:   blendHex(p.Important, to.Important, t),
		AddButton:   blendHex(p.AddButton, to.AddButton, t),
	}
}

// Blend interpolates two hex colors in RGB space.
func Blend(from, to string, t float64) lipgloss.Color {
	return lipgloss.Color(blendHex(from, to, t))
}

// Color converts a palette entry for lipgloss.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

func blendHex(from, to string, t float64) string {
	t = clamp01(t)
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	switch {
	case errA != nil && errB != nil:
		return from
	case errA != nil:
		return to
	case errB != nil:
		return from
	}
	if t == 0 {
		return a.Hex()
	}
	if t == 1 {
		return b.Hex()
	}
	return a.BlendRgb(b, t).Clamped().Hex()
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
