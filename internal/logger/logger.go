// Package logger configures zerolog for the venus command-line tools.
package logger

import (
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

// useErrorStacks makes .Stack() on error events render a pkg/errors stack,
// attaching one to plain errors when they carry none.
func useErrorStacks() {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}
}

// New returns a JSON logger tagged with component.
func New(w io.Writer, component string) zerolog.Logger {
	useErrorStacks()
	return zerolog.New(w).With().
		Str("component", component).
		Timestamp().
		Logger()
}

// Output formats accepted by Init.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Init sets the global logger to format (console or json) on w and the
// global level to debug or info.
func Init(w io.Writer, format, component string, debug bool) error {
	switch format {
	case FormatConsole, "":
		InitConsole(w, debug)
	case FormatJSON:
		log.Logger = New(w, component)
		setLevel(debug)
	default:
		return fmt.Errorf("unsupported log format: %q", format)
	}
	return nil
}

// InitConsole points the global logger at a plain-text console writer and
// sets the global level (debug or info).
func InitConsole(w io.Writer, debug bool) {
	useErrorStacks()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	})
	setLevel(debug)
}

func setLevel(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
