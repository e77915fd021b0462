package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dashbuild/dashbuild/internal/chart"
	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/dashbuild/dashbuild/internal/render"
	"github.com/dashbuild/dashbuild/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for the chart command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	chartFlags  widgetFlags
	chartFormat string
)

var chartCmd = &cobra.Command{
	Use:   "chart <key>",
	Short: "Describe the chart for a metric",
	Long: `Print everything a renderer needs to draw a metric: layout, headline,
trend, axis domains, plotted points, ticks and marks.

Settings come from the widget in dashbuild.yaml; flags override them for
this run, so a metric can be tried out before it gets a widget.

Examples:
  dashbuild chart coverage
  dashbuild chart rating --y-domain 1,5 --reverse --format yaml
  dashbuild chart build_time --suffix s --value-format fixed:1 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return chartCommand(cmd.OutOrStdout(), globalWorkspaceOptions(), args[0], chartFlags.overrides(cmd), chartFormat)
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	addWidgetFlags(chartCmd, &chartFlags)
	chartCmd.Flags().StringVarP(&chartFormat, "format", "f", FormatText, "output format: text, json, yaml")
}

func chartCommand(w io.Writer, opts WorkspaceOptions, key string, o WidgetOverrides, format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return errors.New(errors.ErrInput,
			fmt.Sprintf("Unknown format '%s'", format),
			"Use --format text, json or yaml")
	}

	ws, err := loadWorkspace(opts)
	if err != nil {
		return err
	}
	wc, err := ws.resolve(key, o)
	if err != nil {
		return err
	}
	desc, err := ws.describe(wc)
	if err != nil {
		return err
	}
	summary := desc.Summary()

	if machineMode {
		return WriteJSONSuccess(w, summary)
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return errors.WrapWithCode(err, errors.ErrRender, "Failed to encode chart as YAML", "")
		}
		return enc.Close()
	}

	writeChartText(w, desc, ws.palette(), ws.cfg.Output.DateLayout)
	return nil
}

// writeChartText prints a descriptor for people.
func writeChartText(w io.Writer, desc chart.Descriptor, p render.Palette, dateLayout string) {
	label := ui.MutedStyle().Render
	fmt.Fprintf(w, "%s %s\n", ui.HeadingStyle().Render(desc.Title), label("("+string(desc.Layout)+")"))

	if desc.HasHeadline {
		fmt.Fprintf(w, "  %s %s\n", label("latest:"), desc.Headline)
	}
	if badge := render.TrendBadge(desc.Trend, p); badge != "" {
		fmt.Fprintf(w, "  %s  %s\n", label("trend:"), badge)
	}
	if desc.Layout == chart.LayoutNoData {
		fmt.Fprintf(w, "  %s\n", label("no data to plot"))
		return
	}

	if dateLayout == "" {
		dateLayout = chart.DefaultDateLayout
	}
	fmt.Fprintf(w, "  %s      %s %s %s\n", label("x:"),
		desc.X.Start.Format(dateLayout), ui.SymbolArrow, desc.X.End.Format(dateLayout))

	ext := desc.YExtent()
	yLine := fmt.Sprintf("%s %s %s", desc.Y.TickFormat(ext.Min), ui.SymbolArrow, desc.Y.TickFormat(ext.Max))
	if desc.Reversed {
		yLine += " " + label("(reversed)")
	}
	fmt.Fprintf(w, "  %s      %s\n", label("y:"), yLine)

	ticks := desc.Ticks(chart.DefaultTickCount)
	tickLabels := make([]string, len(ticks))
	for i, t := range ticks {
		tickLabels[i] = t.Label
	}
	fmt.Fprintf(w, "  %s  %s\n", label("ticks:"), strings.Join(tickLabels, "  "))

	rows := make([][]string, len(desc.Points))
	for i, pt := range desc.Points {
		rows[i] = []string{pt.Date.Format(dateLayout), chart.FormatNumber(pt.Value), desc.DisplayValue(pt.Value)}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "Date"}, {Title: "Plotted"}, {Title: "Value"},
	}, rows))
}
