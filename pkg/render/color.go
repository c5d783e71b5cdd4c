// pkg/render/color.go
package render

import "image/color"

// SceneColors holds all the color definitions needed to render a flight.
type SceneColors struct {
	SkyColor        color.RGBA
	GroundColor     color.RGBA
	TrailColor      color.RGBA
	AirplaneColor   color.RGBA
	AirplaneStroke  color.RGBA
	SwingbyColor    color.RGBA
	SwingbyRayColor color.RGBA
	BirdColor       color.RGBA
	CrashColor      color.RGBA
	NightColor      color.RGBA
	MoonColor       color.RGBA
	StarColor       color.RGBA
	TextDarkColor   color.RGBA
	TextLightColor  color.RGBA
	StrokeWidth     float32
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// WithAlpha scales the alpha channel, keeping the color premultiplied.
func WithAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return color.RGBA{}
	}
	if alpha >= 1 {
		return c
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// Lerp blends from a to b, t in [0, 1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
