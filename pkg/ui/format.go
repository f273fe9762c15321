package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/softsync/pkg/errors"
)

// Format selects a renderer.
type Format int

const (
	// FormatAuto picks terminal or text output based on the destination
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	FormatJSON
	FormatYAML
)

var formatNames = [...]string{"auto", "term", "text", "json", "yaml"}

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
	"yml":      FormatYAML,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Machine reports whether f is meant for other programs.
func (f Format) Machine() bool {
	return f == FormatJSON || f == FormatYAML
}

// FormatNames lists the canonical format names.
func FormatNames() []string {
	return append([]string(nil), formatNames[:]...)
}

// ParseFormat accepts canonical names and a few aliases, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown output format: %s (expected one of %s)",
		s, strings.Join(formatNames[:], ", "))
}

// DetectFormat chooses text for NO_COLOR, pipes and colorless terminals.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
