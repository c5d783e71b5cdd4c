// cmd/flightsim/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/defs"
	"go-paper-airplane/internal/flightlog"
	"go-paper-airplane/internal/logging"
	"go-paper-airplane/internal/loop"
	"go-paper-airplane/internal/trajectory"
	"go-paper-airplane/internal/utils"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("flightsim", pflag.ContinueOnError)
	configDir := flags.String("config", ".", "directory containing "+config.ConfigFileName)
	angle := flags.Float64("angle", config.DefaultAngle, "throw angle in degrees [0, 90]")
	power := flags.Float64("power", config.DefaultPower, "throw power [1, 10]")
	balance := flags.Float64("balance", config.DefaultBalance, "balance, 1 front-heavy to 10 rear-heavy")
	flights := flags.Int("flights", 1, "number of flights, capped by loop.maxLoops")
	flags.Int64("seed", 0, "random seed, 0 uses the current time")
	flags.String("db", "", "sqlite file for the flight log (results.path)")
	flags.String("plot", "", "write the last trajectory to this PNG")
	flags.String("log-level", "info", "debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := config.Load(*configDir); err != nil {
		return err
	}
	for key, name := range map[string]string{
		"seed":         "seed",
		"results.path": "db",
		"plot.output":  "plot",
		"logLevel":     "log-level",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// stdout занят результатами, лог только в файл
	logger := logging.New(config.GetString("logLevel"), config.GetString("logsDir"), false)
	defer logger.Close()

	zones := defs.DefaultZones()
	if path := config.GetString("zones.path"); path != "" {
		loaded, err := defs.LoadZoneDefinitions(path)
		if err != nil {
			return err
		}
		zones = loaded
	}

	store, err := flightlog.Open(config.GetString("results.path"), logger.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := simulate(simOptions{
		Params:  component.FlightParameters{Angle: *angle, Power: *power, Balance: *balance},
		Flights: *flights,
		Rng:     utils.NewPRNGService(config.GetInt64("seed")),
		Zones:   zones,
		Store:   store,
		Logger:  logger.Logger,
		Loop: loop.Settings{
			MaxLoops:          config.GetInt("loop.maxLoops"),
			MaxConditionLoops: config.GetInt("loop.maxConditionLoops"),
		},
	}, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Println(loop.SummaryText(res.Summary))

	if stats, err := store.Stats(); err != nil {
		logger.Error("failed to read flight stats", "error", err)
	} else {
		fmt.Printf("Logged this session: %d flights, best %dm, mean %.1fm\n", stats.Count, stats.MaxDistance, stats.MeanDistance)
	}

	if path := config.GetString("plot.output"); path != "" {
		if err := trajectory.Save(path, res.Title, res.Last, res.Zones); err != nil {
			return err
		}
		fmt.Println("Trajectory saved to", path)
	}
	return nil
}
