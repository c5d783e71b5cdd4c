// internal/ui/parameter_panel.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
)

const (
	barWidth    = 118
	barHeight   = 10
	rowHeight   = 22
	labelWidth  = 110
	borderWidth = 1
	panelWidth  = labelWidth + barWidth + 20
)

var (
	barColorFill   = color.RGBA{70, 100, 120, 220}
	balanceMarker  = color.RGBA{255, 215, 0, 255}
	barBorderColor = color.White
)

// ParameterPanel показывает угол, силу и баланс полосками.
type ParameterPanel struct {
	X, Y     float32
	fontFace font.Face
}

// NewParameterPanel создает панель параметров.
func NewParameterPanel(x, y float32, face font.Face) *ParameterPanel {
	return &ParameterPanel{X: x, Y: y, fontFace: face}
}

// Fill is the bar fill ratio of value within [lo, hi].
func Fill(value, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	r := (value - lo) / (hi - lo)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Rows returns the label of each parameter row, top to bottom.
func Rows(p component.FlightParameters) [3]string {
	return [3]string{
		fmt.Sprintf("Angle   %4.0f°", p.Angle),
		fmt.Sprintf("Power   %4.0f", p.Power),
		fmt.Sprintf("Balance %4.0f", p.Balance),
	}
}

// Draw отрисовывает панель. status: строка под полосками (цикл, этап).
func (p *ParameterPanel) Draw(screen *ebiten.Image, params component.FlightParameters, status string) {
	height := float32(3*rowHeight + 14)
	if status != "" {
		height += rowHeight
	}
	vector.DrawFilledRect(screen, p.X, p.Y, panelWidth, height, config.PanelColor, true)

	labels := Rows(params)
	fills := [3]float64{
		Fill(params.Angle, config.MinAngle, config.MaxAngle),
		Fill(params.Power, config.MinPower, config.MaxPower),
		Fill(params.Balance, config.MinBalance, config.MaxBalance),
	}
	for i := range labels {
		rowY := p.Y + 8 + float32(i*rowHeight)
		text.Draw(screen, labels[i], p.fontFace, int(p.X)+8, int(rowY)+barHeight, config.TextLightColor)

		barX := p.X + labelWidth
		vector.StrokeRect(screen, barX, rowY, barWidth, barHeight, borderWidth, barBorderColor, true)
		fillWidth := float32(float64(barWidth-borderWidth*2) * fills[i])
		if fillWidth > 0 {
			vector.DrawFilledRect(screen, barX+borderWidth, rowY+borderWidth, fillWidth, barHeight-borderWidth*2, barColorFill, true)
		}
		if i == 2 {
			// нейтральный баланс: отметка посередине шкалы
			mid := barX + float32(float64(barWidth)*Fill(config.NeutralBalance, config.MinBalance, config.MaxBalance))
			vector.StrokeLine(screen, mid, rowY-2, mid, rowY+barHeight+2, 2, balanceMarker, true)
		}
	}

	if status != "" {
		statusY := int(p.Y) + 8 + 3*rowHeight + barHeight
		text.Draw(screen, status, p.fontFace, int(p.X)+8, statusY, config.TextLightColor)
	}
}
