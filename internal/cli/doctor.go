package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/doctor"
	"github.com/dashbuild/dashbuild/internal/ui"
	"github.com/dashbuild/dashbuild/internal/util"
	"github.com/spf13/cobra"
)

// DoctorOutput is the --json shape of the doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the config and history for problems",
	Long: `Run diagnostic checks on the dashboard workspace.

Checks:
  - The config file is found, parses, and validates
  - The history file is readable and in date order
  - No sample is NaN or infinite
  - Every metric has enough samples for a trend
  - Every widget names a metric that exists in the history
  - Sampled values stay inside each widget's y_domain

Examples:
  dashbuild doctor
  dashbuild doctor --history nightly.yaml
  dashbuild doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.OutOrStdout(), cfgFile, historyFile)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func doctorCommand(w io.Writer, configPath, historyPath string) error {
	checks := doctor.NewChecks(doctor.Inspect(configPath, historyPath))
	results := doctor.RunAll(checks)

	if machineMode {
		return WriteJSONSuccess(w, buildDoctorOutput(checks, results))
	}
	writeDoctorText(w, checks, results)
	return nil
}

// groupResults pairs results with their check's category, keeping the
// order categories first appear in.
func groupResults(checks []doctor.Check, results []doctor.CheckResult) []CategoryOutput {
	var groups []CategoryOutput
	index := make(map[string]int)
	for i, check := range checks {
		cat := check.Category()
		pos, ok := index[cat]
		if !ok {
			pos = len(groups)
			index[cat] = pos
			groups = append(groups, CategoryOutput{Name: cat})
		}
		groups[pos].Results = append(groups[pos].Results, results[i])
	}
	return groups
}

func buildDoctorOutput(checks []doctor.Check, results []doctor.CheckResult) DoctorOutput {
	counts := doctor.CountByStatus(results)
	return DoctorOutput{
		Categories: groupResults(checks, results),
		Summary: SummaryOutput{
			Pass:     counts[doctor.StatusPass],
			Warn:     counts[doctor.StatusWarn],
			Fail:     counts[doctor.StatusFail],
			AllClear: !doctor.HasIssues(results),
		},
	}
}

func writeDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	heading := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w, ui.HeadingStyle().Render("dashbuild diagnostic report"))
	fmt.Fprintln(w)

	for _, group := range groupResults(checks, results) {
		fmt.Fprintln(w, heading.Render(group.Name))
		for _, r := range group.Results {
			writeCheckResult(w, r)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 48))
	counts := doctor.CountByStatus(results)
	switch {
	case !doctor.HasIssues(results):
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
	case counts[doctor.StatusFail] == 0:
		fmt.Fprintf(w, "%s %s\n", ui.WarningStyle().Render(ui.SymbolWarning), doctor.Summary(results))
	default:
		fmt.Fprintf(w, "%s %s (%d %s)\n", ui.ErrorStyle().Render(ui.SymbolFail), doctor.Summary(results),
			counts[doctor.StatusFail], util.Pluralize(counts[doctor.StatusFail], "failure", "failures"))
	}
}

func writeCheckResult(w io.Writer, r doctor.CheckResult) {
	var symbol string
	var style lipgloss.Style
	switch r.Status {
	case doctor.StatusPass:
		symbol, style = ui.SymbolSuccess, ui.SuccessStyle()
	case doctor.StatusWarn:
		symbol, style = ui.SymbolWarning, ui.WarningStyle()
	default:
		symbol, style = ui.SymbolFail, ui.ErrorStyle()
	}

	fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), r.Message)
	if r.Suggestion == "" || r.Status == doctor.StatusPass {
		return
	}
	for _, line := range strings.Split(r.Suggestion, "\n") {
		fmt.Fprintf(w, "    %s\n", ui.MutedStyle().Render(line))
	}
}
