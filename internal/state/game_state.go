// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	game "go-paper-airplane/internal/app"
	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/flightlog"
	"go-paper-airplane/internal/loop"
	"go-paper-airplane/internal/stage"
	"go-paper-airplane/internal/trajectory"
	"go-paper-airplane/internal/ui"
	"go-paper-airplane/internal/utils"
	"go-paper-airplane/pkg/render"
)

const (
	freeLoopFlights    = 10
	stage3LoopFlights  = 10
	stage5LoopFlights  = 16
	stage2LoopDistance = 90
	messageSeconds     = 5.0
	loopMessageSeconds = 8.0
	keyRepeatDelay     = 20 // кадров до автоповтора
	keyRepeatInterval  = 4
)

// Deps — всё, что экран полёта получает снаружи.
type Deps struct {
	Logger   *slog.Logger
	Rng      utils.RandomSource
	Zones    []component.TurbulenceZone
	Store    *flightlog.Store // nil: результаты не сохраняются
	Loop     loop.Settings
	PlotDir  string
	Strict   bool
	FontFace font.Face
}

// GameState — экран полёта: ввод, шаг сессии, цикл и ступени.
type GameState struct {
	sm           *StateMachine
	deps         Deps
	log          *slog.Logger
	session      *game.Session
	runner       *loop.Runner
	stages       *stage.Evaluator
	recorder     *trajectory.Recorder
	renderer     *render.FlightRenderer
	panel        *ui.ParameterPanel
	banner       *ui.MessageBanner
	returnButton *ui.Button

	message      string
	messageColor color.RGBA
	messageUntil float64
	shownText    string
	plots        int
}

func NewGameState(sm *StateMachine, deps Deps) *GameState {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.FontFace == nil {
		deps.FontFace = basicfont.Face7x13
	}
	dispatcher := event.NewDispatcher()
	session := game.NewSession(game.Options{
		Rng:        deps.Rng,
		Logger:     deps.Logger,
		Zones:      deps.Zones,
		Dispatcher: dispatcher,
		Strict:     deps.Strict,
	})
	runner := loop.NewRunner(session, deps.Loop, deps.Logger, dispatcher)

	sceneColors := &render.SceneColors{
		SkyColor:        config.SkyColor,
		GroundColor:     config.GroundColor,
		TrailColor:      config.TrailColor,
		AirplaneColor:   config.AirplaneColor,
		AirplaneStroke:  config.AirplaneStroke,
		SwingbyColor:    config.SwingbyColor,
		SwingbyRayColor: config.SwingbyRayColor,
		BirdColor:       config.BirdColor,
		CrashColor:      config.CrashColor,
		NightColor:      config.NightColor,
		MoonColor:       config.MoonColor,
		StarColor:       config.StarColor,
		TextDarkColor:   config.TextDarkColor,
		TextLightColor:  config.TextLightColor,
		StrokeWidth:     float32(config.StrokeWidth),
	}

	buttonRect := image.Rect(config.ScreenWidth/2-80, config.ScreenHeight-70, config.ScreenWidth/2+80, config.ScreenHeight-40)
	gs := &GameState{
		sm:           sm,
		deps:         deps,
		log:          deps.Logger,
		session:      session,
		runner:       runner,
		stages:       stage.NewEvaluator(runner, deps.Logger, dispatcher),
		recorder:     trajectory.NewRecorder(dispatcher),
		renderer:     render.NewFlightRenderer(sceneColors, deps.FontFace),
		panel:        ui.NewParameterPanel(config.ScreenWidth-270, 10, deps.FontFace),
		banner:       ui.NewMessageBanner(deps.FontFace),
		returnButton: ui.NewButton(buttonRect, "Return to Earth", deps.FontFace),
	}
	gs.returnButton.Visible = false

	if deps.Store != nil {
		dispatcher.Subscribe(event.FlightLanded, deps.Store)
	}
	dispatcher.SubscribeAll(gs, event.LoopProgress, event.LoopFinished, event.StageCleared)
	return gs
}

func (g *GameState) Enter() {
	g.log.Info("flight screen entered")
}

func (g *GameState) Update(deltaTime float64) {
	g.handleInput()

	if g.deps.Store != nil {
		if g.runner.Looping() {
			g.deps.Store.SetLoopIndex(g.runner.Current())
		} else {
			g.deps.Store.SetLoopIndex(0)
		}
	}
	if err := g.session.Step(deltaTime); err != nil {
		g.log.Error("tick failed", "error", err)
	}
	g.runner.Update(deltaTime)

	g.returnButton.Visible = g.session.WaitingForReturn()
	if g.returnButton.IsClicked() {
		g.returnToEarth()
	}
	g.updateBanner()
}

func (g *GameState) Draw(screen *ebiten.Image) {
	w := g.session.World
	g.renderer.Draw(screen, w, g.session.Zones())
	g.renderer.DrawHUD(screen, w, g.session.Phase())
	if !w.Moon.Active {
		g.panel.Draw(screen, g.session.Params(), g.status())
	}
	g.returnButton.Draw(screen)
	g.banner.Draw(screen)
}

func (g *GameState) Exit() {}

// OnEvent turns loop and stage notifications into banner messages.
func (g *GameState) OnEvent(e event.Event) {
	switch e.Type {
	case event.LoopProgress:
		if data, ok := e.Data.(event.LoopProgressData); ok {
			g.show(fmt.Sprintf("Loop %d (%s): %s", data.Loop, data.Target, data.Result.DisplayDistance), config.PanelColor, messageSeconds)
		}
	case event.LoopFinished:
		if data, ok := e.Data.(event.LoopSummary); ok {
			g.show(loop.SummaryText(data), config.PanelColor, loopMessageSeconds)
		}
	case event.StageCleared:
		if data, ok := e.Data.(event.StageData); ok {
			g.show(data.Message, config.BannerColor, loopMessageSeconds)
		}
	}
}

func (g *GameState) show(msg string, clr color.RGBA, seconds float64) {
	g.message = msg
	g.messageColor = clr
	g.messageUntil = g.session.Time() + seconds
}

func (g *GameState) updateBanner() {
	msg, clr := "", config.PanelColor
	if g.message != "" && g.session.Time() <= g.messageUntil {
		msg, clr = g.message, g.messageColor
	} else if n, ok := g.session.Notice(); ok {
		msg, clr = n.Text, noticeColor(n.Level)
	}
	if msg == "" {
		g.banner.Hide()
	} else if msg != g.shownText {
		g.banner.Show(msg, clr)
	}
	g.shownText = msg
	g.banner.Update()
}

func noticeColor(level game.NoticeLevel) color.RGBA {
	switch level {
	case game.NoticeWarning:
		return config.BannerColor
	case game.NoticeEvent:
		return config.SwingbyColor
	}
	return config.PanelColor
}

func (g *GameState) status() string {
	switch {
	case g.runner.Looping():
		return fmt.Sprintf("Loop: flight %d", g.runner.Current())
	case g.stages.Active():
		return fmt.Sprintf("Stage %d/%d", g.stages.Current(), stage.Count)
	}
	return ""
}

func repeat(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= keyRepeatDelay && d%keyRepeatInterval == 0)
}

func (g *GameState) handleInput() {
	p := g.session.Params()
	switch {
	case repeat(ebiten.KeyLeft):
		g.session.SetAngle(p.Angle - 1)
	case repeat(ebiten.KeyRight):
		g.session.SetAngle(p.Angle + 1)
	case repeat(ebiten.KeyUp):
		g.session.SetPower(p.Power + 1)
	case repeat(ebiten.KeyDown):
		g.session.SetPower(p.Power - 1)
	case repeat(ebiten.KeyA):
		g.session.SetBalance(p.Balance - 1)
	case repeat(ebiten.KeyD):
		g.session.SetBalance(p.Balance + 1)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if g.runner.Looping() {
			return
		}
		if err := g.session.Throw(); err != nil {
			g.log.Debug("throw ignored", "error", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.session.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.returnToEarth()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.startLoop()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.toggleStages()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if msg, ok := g.stages.Skip(); ok {
			g.show(msg, config.BannerColor, messageSeconds)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.savePlot()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.runner.Looping():
		g.runner.Stop("stopped by the player")
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyF9):
		g.sm.SetState(NewPauseState(g.sm, g, g.deps.FontFace))
	}
}

func (g *GameState) returnToEarth() {
	if err := g.session.ReturnToEarth(); err != nil {
		g.log.Debug("return to earth ignored", "error", err)
	}
}

// startLoop picks the loop that fits the current stage; in free mode it
// repeats the current parameters.
func (g *GameState) startLoop() {
	var err error
	switch {
	case !g.stages.Active(), g.stages.Current() == 1:
		err = g.runner.Count(freeLoopFlights, g.session.Throw)
	case g.stages.Current() == 2:
		err = g.runner.UntilDistance(stage2LoopDistance, g.session.Throw)
	case g.stages.Current() == 3:
		err = g.runner.Count(stage3LoopFlights, g.session.Throw)
	case g.stages.Current() == 4:
		err = g.runner.UntilTrue(g.session.BirdEventCompleted, g.session.Throw)
	default:
		err = g.runner.Count(stage5LoopFlights, g.randomThrow)
	}
	if errors.Is(err, loop.ErrLoopActive) {
		g.show("A loop is already running", config.BannerColor, messageSeconds)
		return
	}
	if err != nil {
		g.log.Error("loop start failed", "error", err)
	}
}

// randomThrow varies every parameter for the next loop flight.
func (g *GameState) randomThrow() error {
	rng := g.session.Rng
	pick := func(lo, hi float64) float64 {
		return math.Round(lo + rng.Float64()*(hi-lo))
	}
	return g.session.ThrowWith(component.FlightParameters{
		Angle:   pick(config.MinAngle, config.MaxAngle),
		Power:   pick(config.MinPower, config.MaxPower),
		Balance: pick(config.MinBalance, config.MaxBalance),
	})
}

func (g *GameState) toggleStages() {
	if g.stages.Active() {
		g.stages.StopStages()
		g.show("Free mode", config.PanelColor, messageSeconds)
		return
	}
	g.show(g.stages.Start(), config.BannerColor, loopMessageSeconds)
}

func (g *GameState) savePlot() {
	points := g.recorder.Last()
	if g.deps.PlotDir == "" || len(points) == 0 {
		g.show("Nothing to plot yet", config.BannerColor, messageSeconds)
		return
	}
	g.plots++
	name := fmt.Sprintf("flight-%s-%d.png", time.Now().Format("20060102-150405"), g.plots)
	path := filepath.Join(g.deps.PlotDir, name)
	title := "Flight"
	if r, ok := g.session.Result(); ok {
		title = fmt.Sprintf("Flight %d: %s", r.Sequence, r.DisplayDistance)
	}
	if err := trajectory.Save(path, title, points, g.session.Zones()); err != nil {
		g.log.Error("failed to save trajectory plot", "path", path, "error", err)
		g.show("Could not save the plot", config.BannerColor, messageSeconds)
		return
	}
	g.log.Info("trajectory plot saved", "path", path)
	g.show("Saved "+name, config.PanelColor, messageSeconds)
}
