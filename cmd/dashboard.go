package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/krisk248/IITM-reap-project/internal/shared"
	"github.com/krisk248/IITM-reap-project/internal/ui"
	"github.com/urfave/cli/v3"
)

// Dashboard launches the interactive duration dashboard over an hours
// report CSV.
func (r *Runner) Dashboard(ctx context.Context, cmd *cli.Command) error {
	report := cmd.StringArg("report")
	if report == "" {
		return fmt.Errorf("%w: report CSV path", shared.ErrMissingArgument)
	}

	rows, err := ui.LoadReport(report)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s has no course rows", shared.ErrInvalidInput, report)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/reap-dashboard.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.logger = fileLogger

	model := ui.NewModel(cmd.String("title"), rows)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}

	return nil
}
