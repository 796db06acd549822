// Package summary renders the end-of-run report table.
package summary

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/docsa/moodle-migrate/internal/models"
	"github.com/docsa/moodle-migrate/internal/organize"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

const (
	nameWidth  = 16
	dirWidth   = 26
	countWidth = 6
)

type styles struct {
	header lipgloss.Style
	name   lipgloss.Style
	dir    lipgloss.Style
	count  lipgloss.Style
	zero   lipgloss.Style
	total  lipgloss.Style
	warn   lipgloss.Style
}

func newStyles(styled bool) styles {
	base := lipgloss.NewStyle()
	s := styles{
		header: base.Width(nameWidth + dirWidth + countWidth),
		name:   base.Width(nameWidth),
		dir:    base.Width(dirWidth),
		count:  base.Width(countWidth).Align(lipgloss.Right),
		total:  base,
		warn:   base,
	}
	s.zero = s.count
	if styled {
		s.header = s.header.Bold(true).Foreground(lipgloss.Color("#BD93F9"))
		s.dir = s.dir.Foreground(lipgloss.Color("#6272A4"))
		s.count = s.count.Foreground(lipgloss.Color("#50FA7B"))
		s.zero = s.zero.Faint(true)
		s.total = s.total.Bold(true)
		s.warn = s.warn.Foreground(lipgloss.Color("#FFB86C"))
	}
	return s
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec
}

// Render formats report as a per-category table followed by totals.
// Colors are only applied when styled is set.
func Render(report *organize.Report, styled bool) string {
	s := newStyles(styled)
	var b strings.Builder

	b.WriteString(s.header.Render("Migration summary") + "\n")
	for _, cat := range models.Categories() {
		n := report.PerCategory[cat]
		count := s.count
		if n == 0 {
			count = s.zero
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			s.name.Render(cat.String()),
			s.dir.Render(cat.Dir()),
			count.Render(fmt.Sprint(n)),
		)
		b.WriteString(row + "\n")
	}

	b.WriteString(s.total.Render(fmt.Sprintf("Copied %d files (%s)", report.Copied, humanize.Bytes(uint64(report.Bytes)))) + "\n") //nolint:gosec
	if report.Skipped > 0 {
		b.WriteString(s.warn.Render(fmt.Sprintf("Skipped %d entries without a source file", report.Skipped)) + "\n")
	}
	if report.PrunedBlobs > 0 || report.PrunedShards > 0 {
		b.WriteString(fmt.Sprintf("Pruned %d source files and %d shard directories\n", report.PrunedBlobs, report.PrunedShards))
	}
	if len(report.Indexes) > 0 {
		b.WriteString(fmt.Sprintf("Wrote %d index documents\n", len(report.Indexes)))
	}
	return b.String()
}
