package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitDiagnostics configures the global zerolog logger used for kubeguard's
// own diagnostics. Output stays on stderr so kubectl's stdout is untouched.
func InitDiagnostics(out io.Writer, debug bool) {
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Str("component", "kubeguard").
		Logger()
}
