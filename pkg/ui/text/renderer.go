// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/softsync/pkg/softsync"
	"github.com/arthur-debert/softsync/pkg/types"
)

// DryRunPrefix marks actions that were planned but not performed.
const DryRunPrefix = "[dry-run] "

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) println(args ...interface{}) error {
	_, err := fmt.Fprintln(r.output, args...)
	return err
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.CopyResult:
		return r.renderCopy(v)
	case *types.RepairResult:
		return r.renderRepair(v)
	case *types.ListResult:
		return r.renderList(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderCopy(res *types.CopyResult) error {
	prefix := ""
	if res.DryRun {
		prefix = DryRunPrefix
	}
	for _, a := range res.Actions {
		line := a.Source + " => " + a.Dest
		if res.Mode == types.ModeDupe {
			line = a.Dest + " -> " + a.Link
		}
		if err := r.println(prefix + line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderRepair(res *types.RepairResult) error {
	if !res.Repaired() {
		return r.println("no repair needed")
	}
	corrupt := &softsync.CorruptError{Path: res.Path, Conflicts: res.Conflicts}
	if err := r.println(corrupt.Error()); err != nil {
		return err
	}
	msg := "...repaired"
	if res.DryRun {
		msg = DryRunPrefix + msg
	}
	return r.println("\n" + msg)
}

func (r *Renderer) renderList(res *types.ListResult) error {
	for _, e := range res.Entries {
		line := e.Name
		if e.Kind == types.KindSoft {
			line += " -> " + e.Link
		}
		if err := r.println(line); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	return r.println(err.Error())
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(msg)
}
