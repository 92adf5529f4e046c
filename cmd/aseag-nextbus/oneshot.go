package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/aseag-nextbus/aseag"
	"github.com/theoremus-urban-solutions/aseag-nextbus/config"
	"github.com/theoremus-urban-solutions/aseag-nextbus/formatter"
	"github.com/theoremus-urban-solutions/aseag-nextbus/internal"
	"github.com/theoremus-urban-solutions/aseag-nextbus/prediction"
	"github.com/theoremus-urban-solutions/aseag-nextbus/sensor"
)

const (
	formatJSON     = "json"
	formatSiriJSON = "siri-json"
	formatSiriXML  = "siri-xml"
	formatDump     = "dump"
)

func oneshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "oneshot",
		Usage: "run one update for a stop and print the result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sensor",
				Usage: "use a configured sensor instead of --stop/--track/--mode",
			},
			&cli.StringFlag{
				Name:  "stop",
				Usage: "ASEAG stop id",
			},
			&cli.StringFlag{
				Name:  "track",
				Usage: "platform filter, empty matches every track",
			},
			&cli.StringFlag{
				Name:  "mode",
				Value: "single",
				Usage: "single|list",
			},
			&cli.IntFlag{
				Name:  "max",
				Usage: "maximum predictions in list mode, 0 for all",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: formatJSON,
				Usage: "json|siri-json|siri-xml|dump",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "read a saved areainformation response instead of calling the API",
			},
		},
		Action: func(c *cli.Context) error {
			format, err := parseFormat(c.String("format"))
			if err != nil {
				return err
			}
			cfg, err := loadConfig(c, true)
			if err != nil {
				return err
			}
			internal.InitLogging(cfg.Log)

			name, stopID, opts, err := oneshotTarget(c, cfg)
			if err != nil {
				return err
			}

			var fetcher sensor.Fetcher
			if path := c.String("file"); path != "" {
				fetcher = newFileFetcher(path)
			} else {
				fetcher = aseag.NewClient(
					aseag.WithBaseURL(cfg.API.BaseURL),
					aseag.WithTimeout(cfg.API.Timeout()),
				)
			}

			s := sensor.New(name, stopID, opts, fetcher)
			if err := s.Update(c.Context); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			return render(c.App.Writer, s.Snapshot(), format, cfg.Server.ProducerRef, time.Now())
		},
	}
}

// oneshotTarget resolves the sensor to run from --sensor or the stop flags.
func oneshotTarget(c *cli.Context, cfg *config.AppConfig) (string, string, prediction.Options, error) {
	if name := c.String("sensor"); name != "" {
		sc, ok := cfg.FindSensor(name)
		if !ok {
			return "", "", prediction.Options{}, fmt.Errorf("unknown sensor %q", name)
		}
		opts, err := sc.Options()
		if err != nil {
			return "", "", prediction.Options{}, err
		}
		return sc.Name, sc.StopID, opts, nil
	}

	stopID := strings.TrimSpace(c.String("stop"))
	if stopID == "" {
		return "", "", prediction.Options{}, fmt.Errorf("either --sensor or --stop is required")
	}
	mode, err := prediction.ParseMode(c.String("mode"))
	if err != nil {
		return "", "", prediction.Options{}, err
	}
	if c.Int("max") < 0 {
		return "", "", prediction.Options{}, fmt.Errorf("--max must not be negative")
	}
	opts := prediction.Options{
		Track:          c.String("track"),
		Mode:           mode,
		MaxPredictions: c.Int("max"),
	}
	return "ASEAG", stopID, opts, nil
}

// parseFormat rejects unknown output formats before any fetch happens.
func parseFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case formatJSON, formatSiriJSON, formatSiriXML, formatDump:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected json, siri-json, siri-xml or dump)", format)
}

func render(w io.Writer, snap sensor.Snapshot, format, producerRef string, now time.Time) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(formatter.BuildSensorDocument(snap))
	case formatSiriJSON:
		res := formatter.BuildStopMonitoring(snap, now, formatter.StopMonitoringOptions{ProducerRef: producerRef})
		_, err := fmt.Fprintln(w, string(formatter.NewResponseBuilder().BuildJSON(res)))
		return err
	case formatSiriXML:
		res := formatter.BuildStopMonitoring(snap, now, formatter.StopMonitoringOptions{ProducerRef: producerRef})
		_, err := fmt.Fprintln(w, string(formatter.NewResponseBuilder().BuildXML(res)))
		return err
	case formatDump:
		_, err := pretty.Fprintf(w, "%# v\n", snap)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
