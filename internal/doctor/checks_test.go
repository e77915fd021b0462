package doctor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dashbuild/dashbuild/internal/config"
	"github.com/dashbuild/dashbuild/internal/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(d int, metrics map[string]*float64) metric.Snapshot {
	return metric.Snapshot{Date: time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC), Metrics: metrics}
}

// memEnv builds an Env in memory, as if Inspect had loaded it.
func memEnv(widgets []config.WidgetConfig, h metric.History) *Env {
	cfg := config.DefaultConfig()
	cfg.Widgets = widgets
	return &Env{
		ConfigPath: "dashbuild.yaml",
		Config:     cfg,
		Data:       &metric.Dataset{History: h, Latest: metric.LatestOf(h)},
	}
}

var f = metric.Float

func TestHistoryOrderCheck(t *testing.T) {
	tests := []struct {
		name    string
		history metric.History
		status  CheckStatus
		message string
	}{
		{
			name:    "ascending",
			history: metric.History{snapshot(1, nil), snapshot(2, nil), snapshot(5, nil)},
			status:  StatusPass,
			message: "Snapshots are in date order",
		},
		{
			name:    "same day twice",
			history: metric.History{snapshot(3, nil), snapshot(3, nil)},
			status:  StatusPass,
			message: "Snapshots are in date order",
		},
		{
			name:    "goes backwards",
			history: metric.History{snapshot(1, nil), snapshot(9, nil), snapshot(4, nil)},
			status:  StatusWarn,
			message: "Snapshot 2 (2026-02-04) is older than the one before it",
		},
		{
			name:    "empty",
			history: metric.History{},
			status:  StatusPass,
			message: "Snapshots are in date order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := (&HistoryOrderCheck{memEnv(nil, tt.history)}).Run()
			assert.Equal(t, tt.status, r.Status)
			assert.Equal(t, tt.message, r.Message)
		})
	}
}

func TestWidgetKeysCheck(t *testing.T) {
	h := metric.History{snapshot(1, map[string]*float64{"latency": f(120), "errors": f(3)})}

	tests := []struct {
		name       string
		widgets    []config.WidgetConfig
		status     CheckStatus
		message    string
		suggestion string
	}{
		{
			name:    "no widgets",
			status:  StatusPass,
			message: "No widgets configured, every metric is shown",
		},
		{
			name:    "all present",
			widgets: []config.WidgetConfig{{Key: "latency"}},
			status:  StatusPass,
			message: "1 widget, all found in history",
		},
		{
			name:       "typo gets a hint",
			widgets:    []config.WidgetConfig{{Key: "latency"}, {Key: "erors"}},
			status:     StatusWarn,
			message:    "Not in history: erors",
			suggestion: "'erors': did you mean 'errors'?",
		},
		{
			name:       "nothing close",
			widgets:    []config.WidgetConfig{{Key: "throughput"}},
			status:     StatusWarn,
			message:    "Not in history: throughput",
			suggestion: "Check the widget keys against 'dashbuild list'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := (&WidgetKeysCheck{memEnv(tt.widgets, h)}).Run()
			assert.Equal(t, tt.status, r.Status)
			assert.Equal(t, tt.message, r.Message)
			assert.Equal(t, tt.suggestion, r.Suggestion)
		})
	}
}

func TestWidgetDomainCheck(t *testing.T) {
	h := metric.History{
		snapshot(1, map[string]*float64{"rating": f(1), "uptime": f(99.9)}),
		snapshot(2, map[string]*float64{"rating": f(6), "uptime": f(100)}),
		snapshot(3, map[string]*float64{"rating": f(0), "uptime": nil}),
	}

	tests := []struct {
		name       string
		widgets    []config.WidgetConfig
		status     CheckStatus
		message    string
		suggestion string
	}{
		{
			name:    "no domains",
			widgets: []config.WidgetConfig{{Key: "rating"}},
			status:  StatusPass,
			message: "No widget sets y_domain",
		},
		{
			name:    "bounds are inclusive",
			widgets: []config.WidgetConfig{{Key: "uptime", YDomain: []float64{99.9, 100}}},
			status:  StatusPass,
			message: "All values inside y_domain (1 widget)",
		},
		{
			name: "values outside",
			widgets: []config.WidgetConfig{
				{Key: "rating", YDomain: []float64{1, 5}, Reverse: true},
				{Key: "uptime", YDomain: []float64{0, 100}},
			},
			status:     StatusWarn,
			message:    "Values outside y_domain for 1 widget",
			suggestion: "'rating': 2 values outside [1, 5]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := (&WidgetDomainCheck{memEnv(tt.widgets, h)}).Run()
			assert.Equal(t, tt.status, r.Status)
			assert.Equal(t, tt.message, r.Message)
			assert.Equal(t, tt.suggestion, r.Suggestion)
		})
	}
}

func TestHistoryValuesCheck(t *testing.T) {
	ds, err := metric.Parse([]byte(`history:
  - date: 2026-02-01
    metrics: {latency: 120, errors: .nan}
  - date: 2026-02-02
    metrics: {latency: .inf, errors: 2}
`))
	require.NoError(t, err)

	env := memEnv(nil, ds.History)
	r := (&HistoryValuesCheck{env}).Run()
	assert.Equal(t, StatusWarn, r.Status)
	assert.Equal(t, "NaN or infinite values for: errors, latency", r.Message)

	// skipped samples mean no trend, never a crash
	assert.Equal(t, "No trend yet for: errors, latency", (&HistoryTrendCheck{env}).Run().Message)

	clean := memEnv(nil, metric.History{snapshot(1, map[string]*float64{"latency": f(120)})})
	assert.Equal(t, StatusPass, (&HistoryValuesCheck{clean}).Run().Status)
}

func TestSummaryHelpers(t *testing.T) {
	healthy := memEnv(
		[]config.WidgetConfig{{Key: "latency"}},
		metric.History{
			snapshot(1, map[string]*float64{"latency": f(120)}),
			snapshot(2, map[string]*float64{"latency": f(110)}),
		},
	)
	results := RunAll(NewChecks(healthy))
	require.Len(t, results, 8)
	assert.False(t, HasIssues(results))
	assert.False(t, HasFailures(results))
	assert.Equal(t, "Everything looks good", Summary(results))

	broken := memEnv(
		[]config.WidgetConfig{{Key: "latency"}, {Key: "missing"}},
		metric.History{snapshot(2, map[string]*float64{"latency": f(1)}), snapshot(1, nil)},
	)
	results = RunAll(NewChecks(broken))
	counts := CountByStatus(results)
	// out of order, no trend for latency, unknown widget key
	assert.Equal(t, 3, counts[StatusWarn])
	assert.Equal(t, 0, counts[StatusFail])
	assert.True(t, HasIssues(results))
	assert.False(t, HasFailures(results))
	assert.Equal(t, "3 issues found", Summary(results))

	results = append(results, CheckResult{Status: StatusFail})
	assert.True(t, HasFailures(results))
	assert.Equal(t, "4 issues found", Summary(results))
	assert.Equal(t, "1 issue found", Summary([]CheckResult{{Status: StatusWarn}}))
}

func TestCheckStatus_Text(t *testing.T) {
	for _, s := range []CheckStatus{StatusPass, StatusWarn, StatusFail} {
		data, err := json.Marshal(CheckResult{Name: "history_order", Status: s})
		require.NoError(t, err)

		var back CheckResult
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, s, back.Status)
		assert.Contains(t, string(data), `"status":"`+s.String()+`"`)
	}

	assert.Equal(t, "unknown", CheckStatus(42).String())

	var r CheckResult
	assert.Error(t, json.Unmarshal([]byte(`{"status":"maybe"}`), &r))
}
