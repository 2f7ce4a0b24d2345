package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "winnow.dev/pkg/winnow/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true)

	killStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output      io.Writer
	progressBar progress.Model
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{
		output:      output,
		progressBar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Start initializes the UI.
func (t *TUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (t *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (the concise view blocks on its own
// program, so Wait is a no-op).
func (t *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayEstimation prints the base-set estimation or error.
func (t *TUI) DisplayEstimation(ctx context.Context, est Estimation, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err != nil {
		_, _ = fmt.Fprintf(t.output, "estimation error: %v\n", err)
		return err
	}

	_, _ = fmt.Fprintf(t.output, "\n%s\n%s",
		titleStyle.Render(fmt.Sprintf("Base test set for %s", est.FuncName)),
		renderEstimationTable(est))

	return nil
}

// DisplayEvaluationStart shows the size of the evaluation about to run.
func (t *TUI) DisplayEvaluationStart(ctx context.Context, cases, candidates, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	_, _ = fmt.Fprintf(t.output, "%s\n",
		titleStyle.Render(fmt.Sprintf("Evaluating %d case(s) x %d candidate(s), %d worker(s)", cases, candidates, threads)))
}

// DisplayCaseProgress renders an in-place progress bar.
func (t *TUI) DisplayCaseProgress(ctx context.Context, completed, total, kills int) {
	if err := ctx.Err(); err != nil {
		return
	}

	percent := 0.0
	if total > 0 {
		percent = float64(completed) / float64(total)
	}

	line := fmt.Sprintf("\r%s %s", t.progressBar.ViewAs(percent),
		dimStyle.Render(fmt.Sprintf("%d/%d", completed, total)))

	if completed == total {
		line += "\n"
	}

	_, _ = fmt.Fprint(t.output, line)
}

// DisplayRefFailures warns about test cases lost to reference failures.
func (t *TUI) DisplayRefFailures(ctx context.Context, failures int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if failures > 0 {
		_, _ = fmt.Fprintf(t.output, "%s\n",
			warnStyle.Render(fmt.Sprintf("reference failed on %d test case(s); excluded", failures)))
	}
}

// DisplayConcise shows the concise test set, paginating through a Bubble
// Tea program when the set does not fit the terminal.
func (t *TUI) DisplayConcise(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newConciseModel(report)

	// Get initial terminal size
	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	// If the set is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// conciseModel is the Bubble Tea model paging through the concise set.
type conciseModel struct {
	report   m.RunReport
	width    int
	height   int
	offset   int
	quitting bool
}

func newConciseModel(report m.RunReport) conciseModel {
	return conciseModel{report: report}
}

func (cm conciseModel) Init() tea.Cmd {
	return nil
}

func (cm conciseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.width = msg.Width
		cm.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			cm.quitting = true
			return cm, tea.Quit
		case "up", "k":
			if cm.offset > 0 {
				cm.offset--
			}
		case "down", "j":
			if cm.offset < len(cm.report.ConciseCases)-cm.visibleRows() {
				cm.offset++
			}
		}
	}

	return cm, nil
}

func (cm conciseModel) View() string {
	if cm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Concise test set for %s", cm.report.FuncName)))
	b.WriteString("\n\n")

	rows := cm.report.ConciseCases
	end := len(rows)

	if cm.needsPagination() {
		end = cm.offset + cm.visibleRows()
		if end > len(rows) {
			end = len(rows)
		}

		rows = rows[cm.offset:end]
	}

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s -> %s  %s\n",
			row.Args,
			row.Expected,
			killStyle.Render(fmt.Sprintf("kills %s", strings.Join(row.Kills, ", ")))))
	}

	if len(cm.report.Unreachable) > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("\nUnreachable candidates: %s\n", strings.Join(cm.report.Unreachable, ", "))))
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("\n%d case(s), %d candidate(s)", len(cm.report.ConciseCases), len(cm.report.Candidates))))

	if cm.needsPagination() {
		b.WriteString(dimStyle.Render("  (j/k scroll, q quit)"))
	}

	b.WriteString("\n")

	return b.String()
}

// visibleRows is the number of case rows that fit beside the chrome.
func (cm conciseModel) visibleRows() int {
	rows := cm.height - 7
	if rows < 1 {
		rows = 1
	}

	return rows
}

func (cm conciseModel) needsPagination() bool {
	return cm.height > 0 && len(cm.report.ConciseCases) > cm.visibleRows()
}
