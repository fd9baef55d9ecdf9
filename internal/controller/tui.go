package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	faintStyle = lipgloss.NewStyle().Faint(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusStyles = map[m.Status]lipgloss.Style{
		m.StatusTransformed: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		m.StatusUnchanged:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		m.StatusRejected:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		m.StatusFailed:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	}
)

const title = "mockhoist"

// TUI implements UI with styled output, paging long report lists with
// Bubble Tea.
type TUI struct {
	output io.Writer
	mode   StartMode

	mu sync.Mutex
}

// NewTUI creates a new TUI writing to the command output.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{output: cmd.OutOrStdout()}
}

// Start prints the header of the selected mode.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mode = newStartConfig(options...).Mode()

	if p.mode == ModeView {
		return nil
	}

	_, err := fmt.Fprintln(p.output, titleStyle.Render(title))

	return err
}

// Close finalizes the UI.
func (p *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait returns at once: the pager blocks inside DisplayReports.
func (p *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayRunInfo prints the number of files and the concurrency settings.
func (p *TUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.println(faintStyle.Render(runInfoLine(p.mode, info)))
}

// DisplayReport prints the outcome of one file with a colored status.
func (p *TUI) DisplayReport(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.println(strings.Join(styledReport(report), "\n"))
}

// DisplaySummary prints the per-status counts and the totals.
func (p *TUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.println("")

	for _, line := range styledSummary(summary) {
		p.println(line)
	}
}

// DisplayReports shows stored reports, in a pager when they do not fit the
// terminal.
func (p *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newReportsModel(reports)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.resize(width, height)
		}
	}

	// If list is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func (p *TUI) println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintln(p.output, line)
}

func styleStatus(s m.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return s.String()
	}

	return style.Render(fmt.Sprintf("%-11s", s))
}

func styledReport(r m.Report) []string {
	line := reportLine(r)
	// reportLine pads the status to 11 columns
	lines := []string{styleStatus(r.Status) + " " + strings.TrimLeft(line[min(len(line), 11):], " ")}

	for _, detail := range reportDetails(r) {
		switch {
		case strings.HasPrefix(detail, "+") && !strings.HasPrefix(detail, "+++"):
			detail = statusStyles[m.StatusTransformed].UnsetBold().Render(detail)
		case strings.HasPrefix(detail, "-") && !strings.HasPrefix(detail, "---"):
			detail = statusStyles[m.StatusRejected].UnsetBold().Render(detail)
		}

		lines = append(lines, detail)
	}

	return lines
}

func styledSummary(summary m.Summary) []string {
	parts := make([]string, 0, len(m.Statuses))
	for _, status := range m.Statuses {
		parts = append(parts, fmt.Sprintf("%s %d", styleStatus(status), summary.ByStatus[status]))
	}

	return []string{
		strings.Join(parts, "  "),
		fmt.Sprintf("%s (%d file(s) total)", totalsLine(summary), summary.Files),
	}
}

// reportsModel is the Bubble Tea model paging stored reports.
type reportsModel struct {
	lines    []string
	viewport viewport.Model
	height   int
	width    int
	quitting bool
}

// reservedLines holds the title box, the summary and the help footer.
const reservedLines = 8

func newReportsModel(reports []m.Report) reportsModel {
	var lines []string

	for _, r := range reports {
		lines = append(lines, styledReport(r)...)
	}

	if len(reports) > 0 {
		lines = append(lines, "")
		lines = append(lines, styledSummary(m.Summarize(reports))...)
	}

	mdl := reportsModel{
		lines:    lines,
		viewport: viewport.New(0, 0),
	}
	mdl.viewport.SetContent(strings.Join(lines, "\n"))

	return mdl
}

func (rm reportsModel) resize(width, height int) reportsModel {
	rm.width = width
	rm.height = height
	rm.viewport.Width = width
	rm.viewport.Height = max(height-reservedLines, 1)

	return rm
}

func (rm reportsModel) Init() tea.Cmd {
	return nil
}

func (rm reportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return rm.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

func (rm reportsModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // We only handle specific navigation keys
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		rm.quitting = true
		return rm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		rm.quitting = true
		return rm, tea.Quit

	case "g", "home":
		rm.viewport.GotoTop()
		return rm, nil

	case "G", "end":
		rm.viewport.GotoBottom()
		return rm, nil
	}

	var cmd tea.Cmd
	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

// needsPagination returns true if the lines do not fit on screen.
func (rm reportsModel) needsPagination() bool {
	if len(rm.lines) == 0 || rm.height == 0 {
		return false
	}

	return len(rm.lines) > rm.height-reservedLines
}

func (rm reportsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title + " reports"))
	b.WriteString("\n\n")

	if len(rm.lines) == 0 {
		b.WriteString("  No reports found\n")
		return b.String()
	}

	if !rm.needsPagination() {
		b.WriteString(strings.Join(rm.lines, "\n"))
		b.WriteString("\n")

		return b.String()
	}

	b.WriteString(rm.viewport.View())
	b.WriteString("\n\n")

	first := rm.viewport.YOffset + 1
	last := min(rm.viewport.YOffset+rm.viewport.Height, len(rm.lines))
	fmt.Fprintf(&b, "  Lines %d-%d of %d\n", first, last, len(rm.lines))
	b.WriteString(helpStyle.Render("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit"))
	b.WriteString("\n")

	return b.String()
}
