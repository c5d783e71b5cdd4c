// internal/ui/button.go
package ui

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-paper-airplane/internal/config"
)

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect          image.Rectangle
	Text          string
	TextColor     color.Color
	BgColor       color.Color
	HoverColor    color.Color
	Visible       bool
	LastClickTime time.Time
	fontFace      font.Face
}

// NewButton создает новую кнопку.
func NewButton(rect image.Rectangle, label string, face font.Face) *Button {
	return &Button{
		Rect:       rect,
		Text:       label,
		TextColor:  config.TextLightColor,
		BgColor:    config.ButtonColor,
		HoverColor: config.ButtonHoverColor,
		Visible:    true,
		fontFace:   face,
	}
}

// Contains reports whether the point lies inside the button.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// IsClicked проверяет, был ли сделан клик по кнопке в этом кадре.
func (b *Button) IsClicked() bool {
	if !b.Visible || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	if !b.Contains(ebiten.CursorPosition()) {
		return false
	}
	b.LastClickTime = time.Now()
	return true
}

// Draw отрисовывает кнопку. После клика она коротко «пружинит».
func (b *Button) Draw(screen *ebiten.Image) {
	if !b.Visible {
		return
	}
	bg := b.BgColor
	if b.Contains(ebiten.CursorPosition()) {
		bg = b.HoverColor
	}

	elapsed := time.Since(b.LastClickTime).Seconds()
	grow := float32(4 * math.Exp(-elapsed*8))
	x := float32(b.Rect.Min.X) - grow
	y := float32(b.Rect.Min.Y) - grow
	w := float32(b.Rect.Dx()) + 2*grow
	h := float32(b.Rect.Dy()) + 2*grow

	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, 2, color.White, true)

	textX := b.Rect.Min.X + (b.Rect.Dx()-len([]rune(b.Text))*config.TextCharWidth)/2
	textY := b.Rect.Min.Y + b.Rect.Dy()/2 + config.TextOffsetY
	text.Draw(screen, b.Text, b.fontFace, textX, textY, b.TextColor)
}
