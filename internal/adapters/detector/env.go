// Package detector decides whether terminal output is styled or plain.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how logs and reports are rendered.
type OutputMode int

const (
	// ModeAuto defers to the detected environment.
	ModeAuto OutputMode = iota
	// ModeStyled renders colors and symbols for an interactive terminal.
	ModeStyled
	// ModePlain renders without colors for pipes, files and CI logs.
	ModePlain
)

// String returns the flag value selecting the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeStyled:
		return "styled"
	case ModePlain:
		return "plain"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the output mode for the current process.
// Logs go to stderr, so stderr decides whether a terminal is attached.
func DetectEnvironment() OutputMode {
	return Classify(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv("CI"))
}

// Classify maps a terminal check and the value of CI to an output mode.
func Classify(isTTY bool, ci string) OutputMode {
	isCI := ci == "true" || ci == "1"
	if !isTTY || isCI {
		return ModePlain
	}
	return ModeStyled
}

// ResolveMode applies the user flag to the detected mode.
// userFlag should be one of: "auto", "styled", "plain", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "styled":
		return ModeStyled
	case "plain", "ci":
		return ModePlain
	default:
		return autoDetected
	}
}
