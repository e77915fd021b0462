package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/chart"
	"github.com/dashbuild/dashbuild/internal/render"
	"github.com/dashbuild/dashbuild/internal/ui"
	"github.com/spf13/cobra"
)

// fallbackWidth is used when stdout is not a terminal and no width is set.
const fallbackWidth = 80

// RenderOptions control the render command.
type RenderOptions struct {
	Keys []string
	// Width is the total output width; 0 uses output.width, then the terminal.
	Width int
	// CardWidth is the width of each card; 0 uses render.DefaultCardWidth.
	CardWidth int
}

var (
	renderWidth     int
	renderCardWidth int
)

var renderCmd = &cobra.Command{
	Use:   "render [keys...]",
	Short: "Print metric cards to the terminal",
	Long: `Print a card per widget: title, latest value, trend badge and sparkline.

Without keys every configured widget is printed, or every metric in the
history when no widgets are configured. Cards flow into as many columns as
the width allows.

Examples:
  dashbuild render
  dashbuild render coverage defects
  dashbuild render --width 120 --card-width 40`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderCommand(cmd.OutOrStdout(), globalWorkspaceOptions(), RenderOptions{
			Keys:      args,
			Width:     renderWidth,
			CardWidth: renderCardWidth,
		})
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 0, "total output width (default: terminal width)")
	renderCmd.Flags().IntVar(&renderCardWidth, "card-width", 0, fmt.Sprintf("width of each card (default %d)", render.DefaultCardWidth))
}

func renderCommand(w io.Writer, opts WorkspaceOptions, ro RenderOptions) error {
	ws, err := loadWorkspace(opts)
	if err != nil {
		return err
	}
	widgets, err := ws.widgets(ro.Keys)
	if err != nil {
		return err
	}

	descs := make([]chart.Descriptor, 0, len(widgets))
	for _, wc := range widgets {
		desc, err := ws.describe(wc)
		if err != nil {
			return err
		}
		descs = append(descs, desc)
	}

	if machineMode {
		summaries := make([]chart.Summary, len(descs))
		for i, d := range descs {
			summaries[i] = d.Summary()
		}
		return WriteJSONSuccess(w, summaries)
	}

	if len(descs) == 0 {
		fmt.Fprintln(w, ui.MutedStyle().Render("Nothing to render: no widgets and no metrics in "+ws.historyPath))
		return nil
	}

	width := ro.Width
	if width <= 0 {
		width = ws.cfg.Output.Width
	}
	if width <= 0 {
		width = terminalWidth(fallbackWidth)
	}
	cardWidth := ro.CardWidth
	if cardWidth <= 0 {
		cardWidth = render.DefaultCardWidth
	}
	cardWidth = min(cardWidth, width)

	cards := make([]string, len(descs))
	for i, d := range descs {
		cards[i] = render.Card(d, render.CardOptions{Width: cardWidth, Palette: ws.palette()})
	}
	fmt.Fprintln(w, layoutRows(cards, max(1, width/cardWidth)))
	return nil
}

// layoutRows joins cards left to right, perRow at a time.
func layoutRows(cards []string, perRow int) string {
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return strings.Join(rows, "\n")
}
