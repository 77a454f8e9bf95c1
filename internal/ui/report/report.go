// Package report renders the persisted federation state for the terminal.
package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/ui/output"
	"go.trai.ch/federate/internal/ui/style"
)

// Printer writes styled reports to a terminal.
type Printer struct {
	w       io.Writer
	header  lipgloss.Style
	name    lipgloss.Style
	muted   lipgloss.Style
	good    lipgloss.Style
	pending lipgloss.Style
}

// New creates a Printer writing to w.
// opts are applied after the detected profile, see output.Plain.
func New(w io.Writer, opts ...termenv.OutputOption) *Printer {
	r := lipgloss.NewRenderer(w, append([]termenv.OutputOption{termenv.WithProfile(output.ColorProfile())}, opts...)...)
	return &Printer{
		w:       w,
		header:  r.NewStyle().Bold(true).Foreground(style.Iris),
		name:    r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(style.Slate),
		good:    r.NewStyle().Foreground(style.Green),
		pending: r.NewStyle().Foreground(style.Yellow),
	}
}

// Cache prints every shared external version and every known remote.
func (p *Printer) Cache(shared domain.SharedExternals, remotes domain.RemoteInfos) error {
	var b strings.Builder

	b.WriteString(p.header.Render("Shared externals") + "\n")
	if len(shared) == 0 {
		b.WriteString("  " + p.muted.Render("none") + "\n")
	}
	for _, name := range shared.Names() {
		b.WriteString("  " + p.name.Render(name) + "\n")
		rows := make([][]string, 0, len(shared[name].Versions))
		for _, v := range shared[name].Versions {
			rows = append(rows, []string{p.mark(v.Dirty), v.Version, v.Range(), flags(v), v.URL})
		}
		p.table(&b, "    ", rows)
	}

	b.WriteString("\n" + p.header.Render("Remotes") + "\n")
	if len(remotes) == 0 {
		b.WriteString("  " + p.muted.Render("none") + "\n")
	}
	rows := make([][]string, 0, len(remotes))
	for _, name := range slices.Sorted(maps.Keys(remotes)) {
		info := remotes[name]
		rows = append(rows, []string{
			p.name.Render(name),
			info.ScopeURL,
			p.muted.Render(fmt.Sprintf("%d exposed", len(info.Exposes))),
		})
	}
	p.table(&b, "  ", rows)

	_, err := io.WriteString(p.w, b.String())
	return err
}

// Summary prints a one line description of an import map.
func (p *Printer) Summary(m *domain.ImportMap) error {
	_, err := fmt.Fprintf(p.w, "%s %d imports, %d scopes\n",
		p.good.Render(style.Check), len(m.Imports), len(m.Scopes))
	return err
}

func (p *Printer) mark(dirty bool) string {
	if dirty {
		return p.pending.Render(style.Circle)
	}
	return p.good.Render(style.Check)
}

// table writes rows with columns padded to their widest cell.
func (p *Printer) table(b *strings.Builder, indent string, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	for _, row := range rows {
		b.WriteString(indent)
		for i, cell := range row {
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
			}
		}
		b.WriteString("\n")
	}
}

func flags(v domain.SharedVersion) string {
	var parts []string
	if v.Singleton {
		parts = append(parts, "singleton")
	}
	if v.StrictVersion {
		parts = append(parts, "strict")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
