package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/aseag-nextbus/aseag"
	"github.com/theoremus-urban-solutions/aseag-nextbus/internal"
	"github.com/theoremus-urban-solutions/aseag-nextbus/sensor"
	"github.com/theoremus-urban-solutions/aseag-nextbus/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "poll all configured sensors and serve them over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "override server.port",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c, false)
			if err != nil {
				return err
			}
			if p := c.Int("port"); p > 0 {
				cfg.Server.Port = p
			}
			internal.InitLogging(cfg.Log)

			if len(cfg.Sensors) == 0 {
				return fmt.Errorf("no sensors configured")
			}

			client := aseag.NewClient(
				aseag.WithBaseURL(cfg.API.BaseURL),
				aseag.WithTimeout(cfg.API.Timeout()),
			)
			registry, err := sensor.NewRegistryFromConfig(cfg, client)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched := newScheduler(registry, cfg)
			sched.initialUpdate(ctx)

			srv := server.New(cfg.Server, registry, server.WithValidFor(sched.shortestInterval()))

			var wg conc.WaitGroup
			wg.Go(func() { sched.run(ctx) })

			log.Info().
				Int("sensors", registry.Len()).
				Int("port", cfg.Server.Port).
				Msg("Starting aseag-nextbus")

			err = srv.Run(ctx)
			stop()
			if recovered := wg.WaitAndRecover(); recovered != nil {
				return fmt.Errorf("scheduler panicked: %v", recovered.Value)
			}
			return err
		},
	}
}
