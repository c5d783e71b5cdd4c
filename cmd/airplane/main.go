// cmd/airplane/main.go
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/defs"
	"go-paper-airplane/internal/flightlog"
	"go-paper-airplane/internal/logging"
	"go-paper-airplane/internal/loop"
	"go-paper-airplane/internal/state"
	"go-paper-airplane/internal/utils"
)

const startFromGame = false // true: начинать с полёта, иначе с меню

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configDir := pflag.String("config", ".", "directory containing "+config.ConfigFileName)
	pflag.Int64("seed", 0, "random seed, 0 uses the current time")
	pflag.String("db", "", "sqlite file for the flight log (overrides results.path)")
	pflag.String("log-level", "", "debug, info, warn or error")
	pflag.Parse()

	if err := config.Load(*configDir); err != nil {
		return err
	}
	bindFlag("seed", "seed")
	bindFlag("results.path", "db")
	bindFlag("logLevel", "log-level")
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(config.GetString("logLevel"), config.GetString("logsDir"), config.GetBool("logConsole"))
	defer logger.Close()

	zones := defs.DefaultZones()
	if path := config.GetString("zones.path"); path != "" {
		loaded, err := defs.LoadZoneDefinitions(path)
		if err != nil {
			logger.Error("falling back to the default zones", "error", err)
		} else {
			zones = loaded
		}
	}

	store, err := flightlog.Open(config.GetString("results.path"), logger.Logger)
	if err != nil {
		logger.Error("flight log disabled", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	deps := state.Deps{
		Logger:  logger.Logger,
		Rng:     utils.NewPRNGService(config.GetInt64("seed")),
		Zones:   zones,
		Store:   store,
		PlotDir: config.GetString("plot.output"),
		Strict:  config.Debug,
		Loop: loop.Settings{
			MaxLoops:          config.GetInt("loop.maxLoops"),
			MaxConditionLoops: config.GetInt("loop.maxConditionLoops"),
			ThrowDelay:        config.GetFloat64("loop.throwDelay"),
			ResultDelay:       config.GetFloat64("loop.resultDelay"),
		},
	}

	sm := state.NewStateMachine() // Создаём машину состояний
	if startFromGame {
		sm.SetState(state.NewGameState(sm, deps))
	} else {
		sm.SetState(state.NewMenuState(sm, deps))
	}
	app := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	scale := config.GetInt("window.scale")
	ebiten.SetWindowSize(config.ScreenWidth*scale, config.ScreenHeight*scale)
	ebiten.SetWindowTitle("Paper Airplane")
	if err := ebiten.RunGame(app); err != nil {
		return fmt.Errorf("game stopped: %w", err)
	}
	return nil
}

// bindFlag lets an explicitly set flag override the config file.
func bindFlag(key, flag string) {
	if f := pflag.Lookup(flag); f != nil && f.Changed {
		if err := viper.BindPFlag(key, f); err != nil {
			log.Fatalf("failed to bind flag %s: %v", flag, err)
		}
	}
}
