// Package output provides utilities for creating termenv.Output with consistent
// color profile and TTY handling across the CLI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile returns the color profile to use for terminal output.
// It checks if NO_COLOR is set, returning Ascii if so.
// Otherwise, it detects the terminal's capabilities automatically.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output with the specific profile logic.
// Options passed by the caller are applied last and win over the defaults.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	defaults := []termenv.OutputOption{
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	}

	return termenv.NewOutput(w, append(defaults, opts...)...)
}

// Plain returns the options that disable colors regardless of the environment.
func Plain(enable bool) []termenv.OutputOption {
	if !enable {
		return nil
	}
	return []termenv.OutputOption{termenv.WithProfile(termenv.Ascii)}
}
