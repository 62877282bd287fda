// Package log configures the process-wide zerolog logger.
package log

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger's level and writer. quiet silences
// everything below warning; verbose enables debug output; otherwise the
// level is info. quiet and verbose are mutually exclusive at the CLI flag
// level — Setup does not arbitrate between them, it just checks quiet
// first so quiet always wins if both are somehow set.
func Setup(quiet, verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
