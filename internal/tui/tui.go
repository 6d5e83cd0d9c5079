package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/models"
)

// TUI prints plans and reports and asks for per-root confirmation.
type TUI struct {
	in          io.Reader
	out         io.Writer
	interactive bool

	logger *logger.Logger
}

// New creates a TUI over in and out. Confirmation is only possible when in
// is a terminal.
func New(in io.Reader, out io.Writer, logger *logger.Logger) *TUI {
	return &TUI{
		in:          in,
		out:         out,
		interactive: isTerminal(in),
		logger:      logger,
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Interactive reports whether Confirm can ask the user.
func (t *TUI) Interactive() bool {
	return t.interactive
}

func (t *TUI) ShowPlan(p models.RootPlan) {
	fmt.Fprint(t.out, RenderPlan(p))
}

func (t *TUI) ShowReport(r models.RootReport) {
	fmt.Fprint(t.out, RenderReport(r))
}

func (t *TUI) ShowRun(report models.PullReport, dryRun bool) {
	fmt.Fprint(t.out, RenderRun(report, dryRun))
}

func (t *TUI) ShowBuildInfo(info models.AppBuildInfo) {
	fmt.Fprintln(t.out, RenderBuildInfo(info))
}

// Confirm asks "Apply changes to <key>?" and reports whether the user
// accepted. It returns ErrNotInteractive without asking when stdin is not a
// terminal.
func (t *TUI) Confirm(ctx context.Context, key string) (bool, error) {
	if !t.interactive {
		return false, ErrNotInteractive
	}

	program := tea.NewProgram(
		newConfirmModel(fmt.Sprintf("Apply changes to %s?", key)),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("confirm %s: %w", key, err)
	}

	m, ok := final.(confirmModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	t.logger.Debug().Str("root", key).Bool("accepted", m.accepted).Msg("confirmation answered")
	return m.accepted, nil
}
