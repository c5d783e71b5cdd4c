// pkg/render/flight_renderer.go
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/system"
	"go-paper-airplane/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	orbitSegments = 48
	tickSpacing   = 10 // метки на земле через 10 м
	starCount     = 60
	followRight   = 0.7
	followLeft    = 0.2
)

// Camera scrolls the scene horizontally so long flights stay visible.
type Camera struct {
	OffsetX float64 // пиксели
}

// ToScreen maps logical metres (y up) to screen pixels (y down).
func (c Camera) ToScreen(x, y float64) (float32, float32) {
	sx := config.LaunchScreenX + x*config.PixelsPerUnit - c.OffsetX
	sy := config.ScreenHeight - config.GroundOffset - y*config.PixelsPerUnit
	return float32(sx), float32(sy)
}

// Follow keeps x between 20% and 70% of the screen width once it has left
// the initial view. The camera never scrolls left of the launch point.
func (c *Camera) Follow(x float64) {
	px := config.LaunchScreenX + x*config.PixelsPerUnit
	right := config.ScreenWidth * followRight
	left := config.ScreenWidth * followLeft
	switch {
	case px-c.OffsetX > right:
		c.OffsetX = px - right
	case px-c.OffsetX < left:
		c.OffsetX = math.Max(0, px-left)
	}
}

func (c *Camera) Reset() {
	c.OffsetX = 0
}

// AirplaneOutline returns the nose and the two tail corners in screen space.
// rotation is in the logical y-up convention, so it is negated here.
func AirplaneOutline(cx, cy float32, rotation float64) [3][2]float32 {
	local := [3][2]float64{{10, 0}, {-8, -5}, {-8, 5}}
	phi := -rotation
	sin, cos := math.Sincos(phi)
	var out [3][2]float32
	for i, p := range local {
		out[i][0] = cx + float32(p[0]*cos-p[1]*sin)
		out[i][1] = cy + float32(p[0]*sin+p[1]*cos)
	}
	return out
}

// FlightRenderer отвечает за отрисовку неба, зон, самолётика и оверлеев.
type FlightRenderer struct {
	Camera   Camera
	colors   *SceneColors
	fontFace font.Face
	stars    [][2]float32
	white    *ebiten.Image
}

// NewFlightRenderer creates a renderer; star positions are fixed per renderer.
func NewFlightRenderer(colors *SceneColors, face font.Face) *FlightRenderer {
	r := &FlightRenderer{colors: colors, fontFace: face}
	// Звёзды из простой LCG, чтобы небо не мерцало между кадрами
	seed := uint32(77)
	next := func() float32 {
		seed = seed*1664525 + 1013904223
		return float32(seed>>8) / float32(1<<24)
	}
	for i := 0; i < starCount; i++ {
		r.stars = append(r.stars, [2]float32{next() * config.ScreenWidth, next() * config.ScreenHeight})
	}
	return r
}

// Draw renders the whole scene for the current world snapshot.
func (r *FlightRenderer) Draw(screen *ebiten.Image, w *entity.World, zones []component.TurbulenceZone) {
	if w.Moon.Active || w.Moon.WaitingForReturn {
		r.drawMoon(screen, w)
		return
	}
	if a := w.Airplane; a != nil {
		r.Camera.Follow(a.X)
	} else {
		r.Camera.Reset()
	}

	screen.Fill(r.colors.SkyColor)
	r.drawGround(screen)
	r.drawZones(screen, zones)
	if w.Swingby != nil {
		r.drawSwingby(screen, w.Swingby)
	}
	if a := w.Airplane; a != nil {
		r.drawTrail(screen, a.Trail.Points())
		x, y := r.Camera.ToScreen(a.X, a.Y)
		r.drawAirplane(screen, x, y, a.Rotation)
	}
	if w.Bird.Active {
		r.drawBird(screen, &w.Bird)
	}
	if w.Crash.Active {
		r.drawCrash(screen, &w.Crash, w.Time)
	}
}

// DrawHUD prints live flight numbers in the top-left corner.
func (r *FlightRenderer) DrawHUD(screen *ebiten.Image, w *entity.World, phase component.Phase) {
	lines := []string{fmt.Sprintf("Phase: %s", phase)}
	if a := w.Airplane; a != nil && !w.Moon.Active {
		lines = append(lines,
			fmt.Sprintf("Distance: %dm", int(math.Round(math.Max(0, a.X)))),
			fmt.Sprintf("Height: %dm", int(math.Round(math.Max(0, a.Y)))),
			fmt.Sprintf("Heading: %.0f°", utils.RadToDeg(utils.NormalizeAngle(a.Rotation))),
			fmt.Sprintf("Time: %.1fs", w.FlightDuration()),
		)
	}
	clr := r.colors.TextDarkColor
	if w.Moon.Active {
		clr = r.colors.TextLightColor
	}
	for i, line := range lines {
		text.Draw(screen, line, r.fontFace, 10, 20+i*16, clr)
	}
}

func (r *FlightRenderer) drawGround(screen *ebiten.Image) {
	top := float32(config.ScreenHeight - config.GroundOffset)
	vector.DrawFilledRect(screen, 0, top, config.ScreenWidth, config.GroundOffset, r.colors.GroundColor, false)
	vector.StrokeLine(screen, 0, top, config.ScreenWidth, top, 1, DarkenColor(r.colors.GroundColor), false)

	first := int(math.Floor(r.Camera.OffsetX / config.PixelsPerUnit / tickSpacing))
	for m := first * tickSpacing; ; m += tickSpacing {
		x, _ := r.Camera.ToScreen(float64(m), 0)
		if x > config.ScreenWidth {
			break
		}
		if x < 0 {
			continue
		}
		vector.StrokeLine(screen, x, top, x, top+5, 1, r.colors.TextDarkColor, false)
		if m%(tickSpacing*5) == 0 {
			label := fmt.Sprintf("%dm", m)
			text.Draw(screen, label, r.fontFace, int(x)-len(label)*config.TextCharWidth/2, int(top)+16, r.colors.TextDarkColor)
		}
	}
}

func (r *FlightRenderer) drawZones(screen *ebiten.Image, zones []component.TurbulenceZone) {
	for _, z := range zones {
		cx, cy := r.Camera.ToScreen(z.CenterX, z.CenterY)
		radius := float32(z.Radius * config.PixelsPerUnit)
		vector.DrawFilledCircle(screen, cx, cy, radius, z.Tint, true)
		outline := DarkenColor(z.Tint)
		outline.A = 200
		vector.StrokeCircle(screen, cx, cy, radius, 1, outline, true)
		text.Draw(screen, z.Name, r.fontFace, int(cx)-config.TextCharWidth/2, int(cy)+config.TextOffsetY, r.colors.TextDarkColor)
	}
}

func (r *FlightRenderer) drawSwingby(screen *ebiten.Image, st *component.SwingbyState) {
	var prevX, prevY float32
	for i := 0; i <= orbitSegments; i++ {
		theta := float64(i) / orbitSegments * 2 * math.Pi
		x, y := r.Camera.ToScreen(system.OrbitPoint(st, theta))
		if i > 0 {
			vector.StrokeLine(screen, prevX, prevY, x, y, 2, r.colors.SwingbyColor, true)
		}
		prevX, prevY = x, y
	}

	// Лучи от центра, вращаются вместе с самолётиком
	cx, cy := r.Camera.ToScreen(st.CenterX, st.CenterY)
	for k := 0; k < 6; k++ {
		angle := st.CurrentAngle + float64(k)*math.Pi/3
		length := float32(st.RadiusY * config.PixelsPerUnit)
		ex := cx + length*float32(math.Cos(angle))
		ey := cy - length*float32(math.Sin(angle))
		vector.StrokeLine(screen, cx, cy, ex, ey, 1, r.colors.SwingbyRayColor, true)
	}
}

func (r *FlightRenderer) drawTrail(screen *ebiten.Image, points []component.Point) {
	for i := 1; i < len(points); i++ {
		x0, y0 := r.Camera.ToScreen(points[i-1].X, points[i-1].Y)
		x1, y1 := r.Camera.ToScreen(points[i].X, points[i].Y)
		alpha := float64(i) / float64(len(points))
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, WithAlpha(r.colors.TrailColor, alpha), true)
	}
}

func (r *FlightRenderer) drawAirplane(screen *ebiten.Image, x, y float32, rotation float64) {
	pts := AirplaneOutline(x, y, rotation)
	r.fillTriangle(screen, pts, r.colors.AirplaneColor)
	for i := range pts {
		j := (i + 1) % len(pts)
		vector.StrokeLine(screen, pts[i][0], pts[i][1], pts[j][0], pts[j][1], r.colors.StrokeWidth, r.colors.AirplaneStroke, true)
	}
	// сгиб по центру
	tailX := (pts[1][0] + pts[2][0]) / 2
	tailY := (pts[1][1] + pts[2][1]) / 2
	vector.StrokeLine(screen, pts[0][0], pts[0][1], tailX, tailY, 1, r.colors.AirplaneStroke, true)
}

func (r *FlightRenderer) drawBird(screen *ebiten.Image, b *component.BirdCarryEvent) {
	x, y := r.Camera.ToScreen(b.BirdX, b.BirdY)
	vector.DrawFilledCircle(screen, x, y, 6, r.colors.BirdColor, true)
	vector.DrawFilledCircle(screen, x+6, y-3, 3.5, r.colors.BirdColor, true)
	flap := float32(math.Sin(b.WingFlap)) * 8
	vector.StrokeLine(screen, x, y, x-14, y-flap, 3, r.colors.BirdColor, true)
	vector.StrokeLine(screen, x, y, x+12, y-flap, 3, r.colors.BirdColor, true)
	if b.CarryStarted {
		// лапки держат самолётик
		vector.StrokeLine(screen, x, y+5, x, y+float32(config.BirdHoverHeight*config.PixelsPerUnit)-4, 1, DarkenColor(r.colors.BirdColor), true)
	}
}

func (r *FlightRenderer) drawCrash(screen *ebiten.Image, c *component.PoopCrashEvent, now float64) {
	x, y := r.Camera.ToScreen(c.PoopX, c.PoopY)
	elapsed := now - c.StartTime
	splash := float32(8 + 6*math.Min(1, elapsed))
	vector.DrawFilledCircle(screen, x, y, splash, WithAlpha(r.colors.CrashColor, 0.6), true)
	vector.DrawFilledCircle(screen, x, y, 5, r.colors.CrashColor, true)
	text.Draw(screen, "SPLAT!", r.fontFace, int(x)-3*config.TextCharWidth, int(y)-int(splash)-4, r.colors.CrashColor)
}

func (r *FlightRenderer) drawMoon(screen *ebiten.Image, w *entity.World) {
	m := &w.Moon
	r.Camera.Reset()
	screen.Fill(r.colors.NightColor)
	for i, s := range r.stars {
		twinkle := 0.5 + 0.5*math.Sin(w.Time*2+float64(i))
		vector.DrawFilledRect(screen, s[0], s[1], 2, 2, WithAlpha(r.colors.StarColor, twinkle), false)
	}

	// Луна растёт по мере приближения
	moonR := float32(30 + 90*math.Min(1, m.Progress/config.MoonLandingShare))
	moonX := float32(config.ScreenWidth) * 0.7
	moonY := float32(config.ScreenHeight) * 0.45
	vector.DrawFilledCircle(screen, moonX, moonY, moonR, r.colors.MoonColor, true)
	crater := DarkenColor(r.colors.MoonColor)
	vector.DrawFilledCircle(screen, moonX-moonR*0.3, moonY-moonR*0.2, moonR*0.15, crater, true)
	vector.DrawFilledCircle(screen, moonX+moonR*0.35, moonY+moonR*0.25, moonR*0.1, crater, true)

	var px, py float32
	var rotation float64
	switch m.Phase {
	case component.MoonFlight:
		t := float32(m.Progress / config.MoonLandingShare)
		px = 60 + (moonX-moonR-80)*t
		py = float32(config.ScreenHeight)*0.8 - (float32(config.ScreenHeight)*0.35)*t
		rotation = math.Pi / 8
	case component.MoonLanding:
		t := float32((m.Progress - config.MoonLandingShare) / (config.MoonLandedShare - config.MoonLandingShare))
		startX, startY := moonX-moonR-20, float32(config.ScreenHeight)*0.45
		px = startX + 20*t
		py = startY - (moonR*0.8)*t
		rotation = -math.Pi / 8
	default:
		px, py = moonX-moonR*0.2, moonY-moonR-4
	}
	r.drawAirplane(screen, px, py, rotation)

	if m.Phase == component.MoonLanded {
		msg := "Landed on the moon! 384400km"
		text.Draw(screen, msg, r.fontFace, config.ScreenWidth/2-len(msg)*config.TextCharWidth/2, 40, r.colors.TextLightColor)
	}
}

func (r *FlightRenderer) fillTriangle(screen *ebiten.Image, pts [3][2]float32, clr color.RGBA) {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	var path vector.Path
	path.MoveTo(pts[0][0], pts[0][1])
	path.LineTo(pts[1][0], pts[1][1])
	path.LineTo(pts[2][0], pts[2][1])
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	screen.DrawTriangles(vs, is, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
