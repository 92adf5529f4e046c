package main

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/aseag-nextbus/config"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "aseag-nextbus",
		Usage:       "next bus departures from the ASEAG prediction API",
		Description: "Polls ASEAG stop predictions and serves them as sensors, SIRI Stop Monitoring and GTFS-Realtime TripUpdates",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config.yml (default: config.yml, ./config/config.yml)",
				EnvVars: []string{"ASEAG_NEXTBUS_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			oneshotCommand(),
		},
	}
}

// loadConfig reads --config or the default paths. With optional set a
// missing file yields the built-in defaults.
func loadConfig(c *cli.Context, optional bool) (*config.AppConfig, error) {
	var paths []string
	if p := c.String("config"); p != "" {
		paths = append(paths, p)
	}
	cfg, err := config.Load(paths...)
	if err != nil && optional && errors.Is(err, fs.ErrNotExist) {
		return config.Parse(nil)
	}
	return cfg, err
}
