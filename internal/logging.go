package internal

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/aseag-nextbus/config"
)

// InitLogging configures the global zerolog logger. Unknown levels fall back
// to info.
func InitLogging(cfg config.LogConfig) {
	initLogging(os.Stdout, cfg)
}

func initLogging(out io.Writer, cfg config.LogConfig) {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
