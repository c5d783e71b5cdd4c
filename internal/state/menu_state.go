// internal/state/menu_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"go-paper-airplane/internal/config"
)

// Controls is the key help shown on the menu screen.
var Controls = []string{
	"Left/Right  angle       Up/Down  power       A/D  balance",
	"Space  throw            R  reset             Enter  return to earth",
	"L  run a loop           S  stage mode        N  skip stage",
	"G  save trajectory      P/F9  pause          Esc  stop loop",
}

// MenuState — заставка с подсказкой по клавишам.
type MenuState struct {
	sm   *StateMachine
	deps Deps
}

func NewMenuState(sm *StateMachine, deps Deps) *MenuState {
	if deps.FontFace == nil {
		deps.FontFace = basicfont.Face7x13
	}
	return &MenuState{sm: sm, deps: deps}
}

func (m *MenuState) Enter() {
	// Ничего не делаем при входе
}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.sm.SetState(NewGameState(m.sm, m.deps))
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.NightColor)
	title := "Paper Airplane"
	text.Draw(screen, title, m.deps.FontFace, (config.ScreenWidth-len(title)*config.TextCharWidth)/2, 120, config.TextLightColor)
	for i, line := range Controls {
		text.Draw(screen, line, m.deps.FontFace, 140, 180+i*20, config.TextLightColor)
	}
	start := "Press Space to start"
	text.Draw(screen, start, m.deps.FontFace, (config.ScreenWidth-len(start)*config.TextCharWidth)/2, 300, config.MoonColor)
}

func (m *MenuState) Exit() {
	// Ничего не делаем при выходе
}
