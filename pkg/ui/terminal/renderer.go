// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/softsync/pkg/style"
	"github.com/arthur-debert/softsync/pkg/types"
)

// Renderer draws results as pterm tables styled with lipgloss.
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders any result type with rich terminal formatting
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

func (r *Renderer) title(s string, dryRun bool) error {
	line := style.TitleStyle.Render(s)
	if dryRun {
		line += " " + style.WarningStyle.Render("(dry run)")
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

func (r *Renderer) table(data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, out)
	return err
}

func (r *Renderer) renderCopy(res *types.CopyResult) error {
	if err := r.title(res.Mode, res.DryRun); err != nil {
		return err
	}
	if len(res.Actions) == 0 {
		_, err := fmt.Fprintln(r.output, style.MutedStyle.Render("no files matched"))
		return err
	}

	data := pterm.TableData{{"Source", "Destination"}}
	for _, a := range res.Actions {
		dest := style.PathStyle.Render(a.Dest)
		if a.Link != "" {
			dest = style.Arrow(a.Dest, a.Link)
		}
		data = append(data, []string{a.Source, dest})
	}
	return r.table(data)
}

func (r *Renderer) renderRepair(res *types.RepairResult) error {
	if !res.Repaired() {
		_, err := fmt.Fprintln(r.output, style.SuccessStyle.Render("no repair needed"))
		return err
	}
	if err := r.title("repair "+res.Path, res.DryRun); err != nil {
		return err
	}

	data := pterm.TableData{{"Dropped entry", "Link"}}
	for _, c := range res.Conflicts {
		data = append(data, []string{style.ErrorStyle.Render(c.Name), c.Link})
	}
	if err := r.table(data); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.output, style.SuccessStyle.Render("...repaired"))
	return err
}

func (r *Renderer) renderList(res *types.ListResult) error {
	if err := r.title(res.Root+" "+res.Path, false); err != nil {
		return err
	}
	if len(res.Entries) == 0 {
		_, err := fmt.Fprintln(r.output, style.MutedStyle.Render("empty"))
		return err
	}

	data := pterm.TableData{{"Name", "Kind", "Link"}}
	for _, e := range res.Entries {
		data = append(data, []string{e.Name, style.KindStyle(e.Kind).Sprint(e.Kind), e.Link})
	}
	return r.table(data)
}

// RenderError renders an error in the error style.
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, style.ErrorStyle.Render(err.Error()))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
