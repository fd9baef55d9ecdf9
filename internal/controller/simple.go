package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode

	mu sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = newStartConfig(options...).Mode()

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayRunInfo prints the number of files and the concurrency settings.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", runInfoLine(s.mode, info))
}

// DisplayReport prints the outcome of one file.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	lines := append([]string{reportLine(report)}, reportDetails(report)...)
	s.printf("%s\n", strings.Join(lines, "\n"))
}

// DisplaySummary prints the per-status table and the totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderSummaryTable(summary))
	s.printf("%s\n", totalsLine(summary))
}

// DisplayReports prints stored reports as a table followed by the
// diagnostics of rejected and failed files.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("no reports found\n")
		return nil
	}

	s.printf("%s", renderReportsTable(reports))

	for _, r := range reports {
		if r.Diagnostic == nil {
			continue
		}

		s.printf("\n%s\n", reportLine(r))

		for _, line := range reportDetails(r) {
			s.printf("%s\n", line)
		}
	}

	s.printf("\n%s\n", totalsLine(m.Summarize(reports)))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func runInfoLine(mode StartMode, info RunInfo) string {
	verb := "Hoisting"
	if mode == ModeCheck {
		verb = "Checking"
	}

	line := fmt.Sprintf("%s %d file(s) with %d worker(s)", verb, info.Files, info.Threads)

	if info.ShardCount > 1 {
		line += fmt.Sprintf(" (Shard %d/%d)", info.ShardIndex, info.ShardCount)
	}

	if info.Cached > 0 {
		line += fmt.Sprintf(", %d cached", info.Cached)
	}

	return line
}

func sourcePath(r m.Report) string {
	if r.Source.Origin == nil {
		return "<unknown>"
	}

	if r.Source.Origin.ShortPath != "" {
		return string(r.Source.Origin.ShortPath)
	}

	return string(r.Source.Origin.FullPath)
}

func reportLine(r m.Report) string {
	line := fmt.Sprintf("%-11s %s", r.Status, sourcePath(r))

	switch r.Status {
	case m.StatusTransformed:
		line += fmt.Sprintf(" (%d rewritten, %d hoisted call(s), %d hoisted var(s))", r.Rewritten, r.HoistedCalls, r.HoistedVars)
		if r.Written {
			line += " written"
		}
	case m.StatusRejected, m.StatusFailed:
		if d := r.Diagnostic; d != nil {
			line += ": " + d.Kind
			if d.Line > 0 {
				line += fmt.Sprintf(" at %d:%d", d.Line, d.Column)
			}
		}
	case m.StatusUnchanged:
	}

	return line
}

// reportDetails returns the indented diagnostic, frame and diff of r.
func reportDetails(r m.Report) []string {
	var lines []string

	if d := r.Diagnostic; d != nil {
		lines = append(lines, indent(d.Message)...)
		if d.Frame != "" {
			lines = append(lines, indent(strings.TrimRight(d.Frame, "\n"))...)
		}
	}

	if r.Diff != "" {
		lines = append(lines, strings.Split(strings.TrimRight(r.Diff, "\n"), "\n")...)
	}

	return lines
}

func indent(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}

	return lines
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Status", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, status := range m.Statuses {
		table.Append([]string{status.String(), fmt.Sprintf("%d", summary.ByStatus[status])})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.Files)})
	table.Render()

	return tableBuffer.String()
}

func renderReportsTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Status", "Rewritten", "Calls", "Vars"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	summary := m.Summarize(reports)

	for _, r := range reports {
		table.Append([]string{
			sourcePath(r),
			r.Status.String(),
			fmt.Sprintf("%d", r.Rewritten),
			fmt.Sprintf("%d", r.HoistedCalls),
			fmt.Sprintf("%d", r.HoistedVars),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", summary.Files),
		"",
		fmt.Sprintf("%d", summary.Rewritten),
		fmt.Sprintf("%d", summary.HoistedCalls),
		fmt.Sprintf("%d", summary.HoistedVars),
	})
	table.Render()

	return tableBuffer.String()
}

func totalsLine(summary m.Summary) string {
	return fmt.Sprintf("Rewrote %d call(s), hoisted %d statement(s) and %d declaration(s) in %d file(s)",
		summary.Rewritten, summary.HoistedCalls, summary.HoistedVars, summary.ByStatus[m.StatusTransformed])
}
