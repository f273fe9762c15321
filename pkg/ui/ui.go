// Package ui renders command results as terminal tables, plain text, JSON or YAML.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/ui/json"
	"github.com/arthur-debert/softsync/pkg/ui/terminal"
	"github.com/arthur-debert/softsync/pkg/ui/text"
	"github.com/arthur-debert/softsync/pkg/ui/yaml"
)

// Renderer is implemented by every output format.
type Renderer interface {
	// RenderResult renders a *types.CopyResult, *types.RepairResult or *types.ListResult
	RenderResult(result interface{}) error

	RenderError(err error) error

	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output
// when it is a file and falls back to plain text otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
