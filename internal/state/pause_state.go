// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-paper-airplane/internal/config"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState замораживает предыдущий экран: его Update не вызывается,
// поэтому часы сессии стоят.
type PauseState struct {
	stateMachine  *StateMachine
	previousState State
	fontFace      font.Face
}

func NewPauseState(sm *StateMachine, prevState State, face font.Face) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
		fontFace:      face,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.Draw(screen)
	}
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)

	pauseText := "PAUSED"
	textWidth := len(pauseText) * config.TextCharWidth
	text.Draw(screen, pauseText, s.fontFace, (config.ScreenWidth-textWidth)/2, config.ScreenHeight/2, color.White)
	hint := "P / Esc / F9 to continue"
	text.Draw(screen, hint, s.fontFace, (config.ScreenWidth-len(hint)*config.TextCharWidth)/2, config.ScreenHeight/2+20, color.White)
}

func (s *PauseState) Exit() {}
