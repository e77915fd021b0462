package doctor

import (
	"fmt"
	"path/filepath"

	"github.com/dashbuild/dashbuild/internal/metric"
	"github.com/dashbuild/dashbuild/internal/trend"
	"github.com/dashbuild/dashbuild/internal/util"
)

// HistoryFileCheck verifies the history file can be read and parsed.
type HistoryFileCheck struct {
	Env *Env
}

func (c *HistoryFileCheck) Name() string     { return "history_file" }
func (c *HistoryFileCheck) Category() string { return "HISTORY" }

func (c *HistoryFileCheck) Run() CheckResult {
	if !c.Env.configUsable() {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: "Cannot check history: config did not load",
		}
	}
	if c.Env.HistoryErr != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    messageOf(c.Env.HistoryErr),
			Suggestion: suggestionOf(c.Env.HistoryErr, "Check the 'history' path in your dashbuild.yaml"),
		}
	}

	snaps := len(c.Env.Data.History)
	keys := len(c.Env.Data.History.Keys(c.Env.Data.Latest))
	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("History file: %s (%d %s, %d %s)",
			filepath.Base(c.Env.HistoryPath),
			snaps, util.Pluralize(snaps, "snapshot", "snapshots"),
			keys, util.Pluralize(keys, "metric", "metrics")),
	}
}

// HistoryOrderCheck warns when snapshot dates go backwards. Charts and
// trends trust the file order, so an out-of-order file draws a zigzag and
// compares the wrong pair.
type HistoryOrderCheck struct {
	Env *Env
}

func (c *HistoryOrderCheck) Name() string     { return "history_order" }
func (c *HistoryOrderCheck) Category() string { return "HISTORY" }

func (c *HistoryOrderCheck) Run() CheckResult {
	if !c.Env.historyUsable() {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No history to check",
		}
	}

	h := c.Env.Data.History
	for i := 1; i < len(h); i++ {
		if h[i].Date.Before(h[i-1].Date) {
			return CheckResult{
				Name:   c.Name(),
				Status: StatusWarn,
				Message: fmt.Sprintf("Snapshot %d (%s) is older than the one before it",
					i, h[i].Date.Format("2006-01-02")),
				Suggestion: "Keep history entries oldest first; they are used in file order",
			}
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Snapshots are in date order",
	}
}

// HistoryValuesCheck warns about NaN and infinite samples. They read as
// "not sampled", so the metric silently loses those points.
type HistoryValuesCheck struct {
	Env *Env
}

func (c *HistoryValuesCheck) Name() string     { return "history_values" }
func (c *HistoryValuesCheck) Category() string { return "HISTORY" }

func (c *HistoryValuesCheck) Run() CheckResult {
	if !c.Env.historyUsable() {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No history to check",
		}
	}

	bad := make(map[string]bool)
	for _, snap := range c.Env.Data.History {
		collectNonFinite(snap.Metrics, bad)
	}
	collectNonFinite(c.Env.Data.Latest, bad)

	if len(bad) > 0 {
		keys := make([]string, 0, len(bad))
		for _, k := range c.Env.Data.History.Keys(c.Env.Data.Latest) {
			if bad[k] {
				keys = append(keys, k)
			}
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("NaN or infinite values for: %s", util.JoinOrNone(keys)),
			Suggestion: "These samples are skipped; write null for a missing reading",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "All values are finite",
	}
}

func collectNonFinite(values map[string]*float64, into map[string]bool) {
	for k, v := range values {
		if v != nil && !metric.IsFinite(*v) {
			into[k] = true
		}
	}
}

// HistoryTrendCheck lists metrics that can't show a trend yet: the
// second-to-last snapshot or the latest block has no value for them.
type HistoryTrendCheck struct {
	Env *Env
}

func (c *HistoryTrendCheck) Name() string     { return "history_trends" }
func (c *HistoryTrendCheck) Category() string { return "HISTORY" }

func (c *HistoryTrendCheck) Run() CheckResult {
	if !c.Env.historyUsable() {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No history to check",
		}
	}

	data := c.Env.Data
	keys := data.History.Keys(data.Latest)
	var missing []string
	for _, key := range keys {
		if trend.Compute(data.History, data.Latest, key, trend.Options{}).IsNone() {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("No trend yet for: %s", util.JoinOrNone(missing)),
			Suggestion: "A trend compares the second-to-last snapshot with the latest value; both need a sample",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Every metric has a trend (%d)", len(keys)),
	}
}
