package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	m "seq2many.dev/pkg/seq2many/internal/model"
)

// InvalidModeMessage is printed when the mode selector is not recognized.
const InvalidModeMessage = "Invalid mode was specified"

type paint func(string) string

func plain(s string) string { return s }

type palette struct {
	title   paint
	added   paint
	removed paint
	faint   paint
}

var plainPalette = palette{title: plain, added: plain, removed: plain, faint: plain}

func styledPalette() palette {
	return palette{
		title:   render(lipgloss.NewStyle().Bold(true)),
		added:   render(lipgloss.NewStyle().Foreground(lipgloss.Color("10"))),
		removed: render(lipgloss.NewStyle().Foreground(lipgloss.Color("9"))),
		faint:   render(lipgloss.NewStyle().Faint(true)),
	}
}

func render(style lipgloss.Style) paint {
	return func(s string) string {
		return style.Render(s)
	}
}

// SimpleUI implements UI by printing to the cobra command's output.
type SimpleUI struct {
	cmd    *cobra.Command
	colors palette
}

// NewSimpleUI creates a SimpleUI without styling.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, colors: plainPalette}
}

// NewStyledUI creates a SimpleUI that styles headings and diffs with lipgloss.
func NewStyledUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, colors: styledPalette()}
}

// DisplayReference prints the reference path and length.
func (s *SimpleUI) DisplayReference(ctx context.Context, path m.Path, ref m.Sequence) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s %s (%d residues)\n", s.colors.title("Reference:"), path, ref.Len())
}

// DisplayMutant prints the residues that differ between ref and mutant and
// the files written for it.
func (s *SimpleUI) DisplayMutant(ctx context.Context, mode m.Mode, ref, mutant m.Sequence, written []m.Path) {
	if ctx.Err() != nil {
		return
	}

	changed := countChanges(ref, mutant)
	s.printf("%s %s mutant, %d residue(s) changed\n", s.colors.title("Generated:"), mode, changed)

	if changed > 0 {
		s.printf("%s", s.renderDiff(ref, mutant))
	}

	for _, path := range written {
		s.printf("  %s %s\n", s.colors.faint("wrote"), path)
	}
}

// DisplayScan prints one table row per scanned region.
func (s *SimpleUI) DisplayScan(ctx context.Context, summaries []m.ScanSummary) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\n%s\n%s", s.colors.title("Deep mutational scanning"), renderScanTable(summaries))
}

// DisplayDistance prints the Hamming distance between two sequence files.
func (s *SimpleUI) DisplayDistance(ctx context.Context, a, b m.Path, distance int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s %s %s: %d\n", s.colors.title("Hamming distance"), a, b, distance)
}

// DisplayInvalidMode reports an unrecognized mode selector.
func (s *SimpleUI) DisplayInvalidMode(ctx context.Context, mode string) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s: %q\n", InvalidModeMessage, mode)
}

func (s *SimpleUI) renderDiff(ref, mutant m.Sequence) string {
	diff := difflib.UnifiedDiff{
		A:        indexLines(ref),
		B:        indexLines(mutant),
		FromFile: "reference",
		ToFile:   "mutant",
		Context:  0,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}

	var b strings.Builder

	for _, line := range difflib.SplitLines(text) {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			b.WriteString(s.colors.faint(strings.TrimSuffix(line, "\n")))
		case strings.HasPrefix(line, "+"):
			b.WriteString(s.colors.added(strings.TrimSuffix(line, "\n")))
		case strings.HasPrefix(line, "-"):
			b.WriteString(s.colors.removed(strings.TrimSuffix(line, "\n")))
		default:
			b.WriteString(strings.TrimSuffix(line, "\n"))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func indexLines(seq m.Sequence) []string {
	lines := make([]string, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		lines = append(lines, fmt.Sprintf("%d %c\n", i, seq[i]))
	}

	return lines
}

func countChanges(ref, mutant m.Sequence) int {
	n := min(ref.Len(), mutant.Len())
	changed := max(ref.Len(), mutant.Len()) - n

	for i := 0; i < n; i++ {
		if ref[i] != mutant[i] {
			changed++
		}
	}

	return changed
}

func renderScanTable(summaries []m.ScanSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Region", "Mutants", "Output"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	total := 0

	for _, summary := range summaries {
		table.Append([]string{
			fmt.Sprintf("[%d, %d)", summary.Region.Begin, summary.Region.End),
			fmt.Sprintf("%d", summary.Mutants),
			string(summary.Dir),
		})

		total += summary.Mutants
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Regions %d", len(summaries)),
		fmt.Sprintf("%d", total),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
