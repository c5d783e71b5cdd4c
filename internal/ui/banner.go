// internal/ui/banner.go
package ui

import (
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-paper-airplane/internal/config"
)

const (
	bannerMargin    = 8
	bannerLine      = 16
	bannerPadding   = 10
	animationSpeed  = 10.0
	bannerMaxHeight = 9*bannerLine + 2*bannerPadding
)

// MessageBanner выезжает сверху и показывает уведомление сессии.
type MessageBanner struct {
	Text     string
	Color    color.RGBA
	fontFace font.Face
	currentY float64
	targetY  float64
}

// NewMessageBanner creates a hidden banner.
func NewMessageBanner(face font.Face) *MessageBanner {
	return &MessageBanner{
		fontFace: face,
		currentY: -bannerMaxHeight,
		targetY:  -bannerMaxHeight,
	}
}

// Show slides the banner in. Re-showing the same text keeps it in place.
func (b *MessageBanner) Show(msg string, clr color.RGBA) {
	b.Text = msg
	b.Color = clr
	b.targetY = bannerMargin
}

func (b *MessageBanner) Hide() {
	b.targetY = -bannerMaxHeight
}

// Visible reports whether any part of the banner is on screen.
func (b *MessageBanner) Visible() bool {
	return b.currentY > -bannerMaxHeight
}

// Update двигает баннер к целевой позиции с постоянной скоростью.
func (b *MessageBanner) Update() {
	if b.currentY == b.targetY {
		return
	}
	diff := b.targetY - b.currentY
	if math.Abs(diff) < animationSpeed {
		b.currentY = b.targetY
	} else if diff > 0 {
		b.currentY += animationSpeed
	} else {
		b.currentY -= animationSpeed
	}
	if b.currentY <= -bannerMaxHeight {
		b.Text = ""
	}
}

// Draw отрисовывает баннер по центру верхней части экрана.
func (b *MessageBanner) Draw(screen *ebiten.Image) {
	if !b.Visible() || b.Text == "" {
		return
	}
	lines := strings.Split(b.Text, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l))*config.TextCharWidth)
	}
	w := float32(width + 2*bannerPadding)
	h := float32(len(lines)*bannerLine + 2*bannerPadding)
	x := (config.ScreenWidth - w) / 2
	y := float32(b.currentY)

	vector.DrawFilledRect(screen, x, y, w, h, b.Color, true)
	vector.StrokeRect(screen, x, y, w, h, 1, color.White, true)
	for i, l := range lines {
		text.Draw(screen, l, b.fontFace, int(x)+bannerPadding, int(y)+bannerPadding+(i+1)*bannerLine-4, config.TextLightColor)
	}
}
