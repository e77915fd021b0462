package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dashbuild/dashbuild/internal/render"
	"github.com/dashbuild/dashbuild/internal/trend"
	"github.com/dashbuild/dashbuild/internal/ui"
	"github.com/spf13/cobra"
)

// ListEntry is one metric in list output.
type ListEntry struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	Configured bool   `json:"configured"`
	Latest     string `json:"latest,omitempty"`
	Trend      string `json:"trend,omitempty"`
	Direction  string `json:"direction"`
	Points     int    `json:"points"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List metrics with their latest value and trend",
	Long: `List every metric found in the history file and every configured widget.

Metrics without a widget use default formatting. Widgets whose metric is
missing from the history show no value.

Examples:
  dashbuild list
  dashbuild list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listCommand(cmd.OutOrStdout(), globalWorkspaceOptions())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listCommand(w io.Writer, opts WorkspaceOptions) error {
	ws, err := loadWorkspace(opts)
	if err != nil {
		return err
	}

	entries, err := listEntries(ws)
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, ui.MutedStyle().Render("No metrics in "+ws.historyPath))
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		latest := e.Latest
		if latest == "" {
			latest = "n/a"
		}
		trendText := ""
		if e.Trend != "" {
			trendText = render.Glyph(trend.Direction(e.Direction)) + " " + e.Trend
		}
		key := e.Key
		if !e.Configured {
			key += " *"
		}
		rows = append(rows, []string{key, e.Title, latest, trendText, strconv.Itoa(e.Points)})
	}

	fmt.Fprintln(w, ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "Key"}, {Title: "Title"}, {Title: "Latest"}, {Title: "Trend"}, {Title: "Points"},
	}, rows))
	if len(ws.cfg.Widgets) < len(entries) {
		fmt.Fprintln(w, ui.MutedStyle().Render("* no widget configured; add one with 'dashbuild add <key>'"))
	}
	return nil
}

// listEntries merges configured widgets (in config order) with the
// remaining history keys (sorted).
func listEntries(ws *workspace) ([]ListEntry, error) {
	entries := []ListEntry{}
	seen := make(map[string]bool)

	add := func(key string, configured bool) error {
		wc, err := ws.widget(key)
		if err != nil {
			return err
		}
		desc, err := ws.describe(wc)
		if err != nil {
			return err
		}
		entries = append(entries, ListEntry{
			Key:        key,
			Title:      desc.Title,
			Configured: configured,
			Latest:     desc.Headline,
			Trend:      desc.Trend.DisplayText,
			Direction:  string(desc.Trend.Direction),
			Points:     len(desc.Points),
		})
		seen[key] = true
		return nil
	}

	for _, wc := range ws.cfg.Widgets {
		if err := add(wc.Key, true); err != nil {
			return nil, err
		}
	}
	for _, key := range ws.keys() {
		if seen[key] {
			continue
		}
		if err := add(key, false); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
