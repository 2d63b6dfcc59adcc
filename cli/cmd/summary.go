package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/calcrst/render"
)

// summarize writes a short account of a render to w, one line per
// diagnostic. Styles follow the color profile of w.
func summarize(w io.Writer, output string, r *render.Report) {
	re := lipgloss.NewRenderer(w)

	var (
		okStyle   = re.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
		warnStyle = re.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
		hintStyle = re.NewStyle().Foreground(lipgloss.Color("8"))
	)

	var b strings.Builder

	head := fmt.Sprintf("✔ %d entries rendered to %s", r.Entries, output)
	if !r.OK() {
		head = warnStyle.Render(fmt.Sprintf("⚠ %d entries rendered to %s, %d degraded",
			r.Entries, output, len(r.Diagnostics)))
	} else {
		head = okStyle.Render(head)
	}

	b.WriteString(head)

	if r.Skipped > 0 {
		b.WriteString(hintStyle.Render(fmt.Sprintf(" (%d unknown skipped)", r.Skipped)))
	}

	b.WriteString("\n")

	for _, d := range r.Diagnostics {
		fmt.Fprintf(&b, "  %s %s\n",
			warnStyle.Render(fmt.Sprintf("entry %d (%s) %s:", d.Index, d.Kind, d.Class)),
			hintStyle.Render(d.Err.Error()),
		)
	}

	_, _ = io.WriteString(w, b.String())
}
