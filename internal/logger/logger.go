package logger

import (
	"os"
	"strings"
	"time"

	"github.com/lshigami/Quorum/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init installs console logging at info level so that startup, including
// config loading, is logged before Configure runs.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	Configure(&config.Config{})
}

// Configure applies LOG_LEVEL and LOG_FORMAT from the loaded config.
// LOG_FORMAT=json switches off the console writer.
func Configure(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if strings.EqualFold(cfg.Log.Format, "json") {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
}
