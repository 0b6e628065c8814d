// Package detector picks the log format for the current environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogFormat selects how log records are rendered.
type LogFormat int

const (
	// FormatAuto detects the format from the environment.
	FormatAuto LogFormat = iota
	// FormatPretty renders colored human-readable lines.
	FormatPretty
	// FormatJSON renders one JSON object per record.
	FormatJSON
)

// Detect returns FormatPretty when standard error is a terminal outside CI
// and FormatJSON otherwise.
func Detect() LogFormat {
	return detect(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) LogFormat {
	if !isTTY || ci == "true" || ci == "1" {
		return FormatJSON
	}
	return FormatPretty
}

// Resolve applies the --log-format flag value on top of a detected format.
// Unknown values fall back to the detected format.
func Resolve(detected LogFormat, flag string) LogFormat {
	switch flag {
	case "pretty", "text":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return detected
	}
}
