package cli

import (
	"fmt"
	"io"

	"github.com/dashbuild/dashbuild/internal/render"
	"github.com/dashbuild/dashbuild/internal/trend"
	"github.com/dashbuild/dashbuild/internal/ui"
	"github.com/spf13/cobra"
)

// TrendResult is the --json shape of the trend command.
type TrendResult struct {
	Key   string           `json:"key"`
	Trend trend.Descriptor `json:"trend"`
}

var trendFlags widgetFlags

var trendCmd = &cobra.Command{
	Use:   "trend <key>",
	Short: "Show how a metric moved since the previous sample",
	Long: `Compare the latest value of a metric with the second-to-last history entry.

The badge colour follows the widget's polarity: by default an increase is
good. --inverse makes a decrease good, --neutral never colours the change.
Both flags override the widget's config.

Examples:
  dashbuild trend coverage
  dashbuild trend defects --inverse
  dashbuild trend build_time --neutral --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return trendCommand(cmd.OutOrStdout(), globalWorkspaceOptions(), args[0], trendFlags.overrides(cmd))
	},
}

func init() {
	rootCmd.AddCommand(trendCmd)
	addPolarityFlags(trendCmd, &trendFlags)
}

func trendCommand(w io.Writer, opts WorkspaceOptions, key string, o WidgetOverrides) error {
	ws, err := loadWorkspace(opts)
	if err != nil {
		return err
	}
	wc, err := ws.resolve(key, o)
	if err != nil {
		return err
	}

	d := trend.Compute(ws.data.History, ws.data.Latest, key, trend.Options{
		Inverse: wc.Inverse,
		Neutral: wc.Neutral,
	})

	if machineMode {
		return WriteJSONSuccess(w, TrendResult{Key: key, Trend: d})
	}

	if d.IsNone() {
		fmt.Fprintf(w, "%s %s\n", wc.Label(), ui.MutedStyle().Render("no trend (needs two samples)"))
		return nil
	}
	fmt.Fprintf(w, "%s %s %s\n", wc.Label(), render.TrendBadge(d, ws.palette()),
		ui.MutedStyle().Render("("+meaning(d.Semantic)+")"))
	return nil
}

// meaning names a semantic the way people read it.
func meaning(s trend.Semantic) string {
	switch s {
	case trend.SemanticUp:
		return "good"
	case trend.SemanticDown:
		return "bad"
	}
	return "neutral"
}
