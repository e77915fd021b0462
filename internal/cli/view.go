package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dashbuild/dashbuild/internal/dashboard"
	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/dashbuild/dashbuild/internal/logger"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse the dashboard interactively",
	Long: `Open a full-screen dashboard of metric cards.

Cards flow into one to three columns depending on the terminal width.
Press enter on a card for a detailed chart, r to reload the config and
history from disk, ? for all keys, q to quit.

Examples:
  dashbuild view
  dashbuild view --config team/dashbuild.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return viewCommand(globalWorkspaceOptions())
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func viewCommand(opts WorkspaceOptions) error {
	if machineMode {
		return errors.New(errors.ErrInput,
			"The dashboard is interactive and has no JSON output",
			"Use 'dashbuild render --json' or 'dashbuild chart <key> --json'")
	}
	if !stdoutIsTerminal() {
		return errors.New(errors.ErrInput,
			"The dashboard needs a terminal",
			"Use 'dashbuild render' to print cards instead")
	}

	// Fail fast on a broken config before taking over the screen.
	ws, err := loadWorkspace(opts)
	if err != nil {
		return err
	}

	model := dashboard.NewModel(dashboardLoader(opts), dashboard.Options{
		Title:   ws.cfg.Title,
		Palette: ws.palette(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender, "Dashboard exited with an error", "")
	}
	return nil
}

// dashboardLoader re-reads config and history on every call. It logs
// nothing: the dashboard owns the screen and shows load errors itself.
func dashboardLoader(opts WorkspaceOptions) dashboard.Loader {
	opts.Log = logger.Noop()
	return func() ([]dashboard.Widget, error) {
		ws, err := loadWorkspace(opts)
		if err != nil {
			return nil, err
		}
		return ws.dashboardWidgets()
	}
}
