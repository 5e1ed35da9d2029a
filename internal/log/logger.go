package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	config "github.com/thirdweb-dev/blockquery/configs"
)

const defaultLevel = zerolog.WarnLevel

// InitLogger replaces the zerolog global logger using the log section of
// the loaded config.
func InitLogger() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(ParseLevel(config.Cfg.Log.Level))
	log.Logger = NewLogger("blockquery", config.Cfg.Log, os.Stderr)
}

// ParseLevel falls back to warn for empty or unknown levels.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return defaultLevel
	}
	return lvl
}

// NewLogger builds a component logger writing to out. Call sites are only
// recorded at debug level and below.
func NewLogger(component string, cfg config.LogConfig, out io.Writer) zerolog.Logger {
	level := ParseLevel(cfg.Level)
	if cfg.Prettify {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp().Str("component", component)
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}
