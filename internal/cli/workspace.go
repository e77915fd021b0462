package cli

import (
	"fmt"

	"github.com/dashbuild/dashbuild/internal/chart"
	"github.com/dashbuild/dashbuild/internal/config"
	"github.com/dashbuild/dashbuild/internal/dashboard"
	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/dashbuild/dashbuild/internal/logger"
	"github.com/dashbuild/dashbuild/internal/metric"
	"github.com/dashbuild/dashbuild/internal/render"
	"github.com/dashbuild/dashbuild/internal/util"
)

// WorkspaceOptions locate the config and history files.
type WorkspaceOptions struct {
	ConfigPath  string // explicit config; empty searches
	HistoryPath string // overrides the config's history
	Log         logger.Logger
}

// workspace is a loaded config plus the history it points at.
type workspace struct {
	cfg         *config.Config
	data        *metric.Dataset
	historyPath string
	log         logger.Logger
}

// globalWorkspaceOptions builds options from the root flags.
func globalWorkspaceOptions() WorkspaceOptions {
	return WorkspaceOptions{ConfigPath: cfgFile, HistoryPath: historyFile, Log: cliLog}
}

// loadWorkspace loads and validates the config, then reads the history file.
// Validation warnings are logged, not returned.
func loadWorkspace(opts WorkspaceOptions) (*workspace, error) {
	log := opts.Log
	if log == nil {
		log = logger.Noop()
	}

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	warnings, err := config.Validate(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn("%s", w)
	}

	applyColorMode(cfg.Output.Color)

	path := cfg.HistoryPath(opts.HistoryPath)
	log.Debug("reading history from %s", path)
	data, err := metric.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return &workspace{cfg: cfg, data: data, historyPath: path, log: log}, nil
}

// keys lists every metric in the history, sorted.
func (ws *workspace) keys() []string {
	return ws.data.History.Keys(ws.data.Latest)
}

func (ws *workspace) hasMetric(key string) bool {
	for _, k := range ws.keys() {
		if k == key {
			return true
		}
	}
	return false
}

// widget resolves key to its configured widget, or a plain widget when the
// metric exists in the history but has no config.
func (ws *workspace) widget(key string) (config.WidgetConfig, error) {
	if w, ok := ws.cfg.Widget(key); ok {
		return w, nil
	}
	if ws.hasMetric(key) {
		return config.WidgetConfig{Key: key}, nil
	}
	suggestion := fmt.Sprintf("Run 'dashbuild list' to see the metrics in %s", ws.historyPath)
	if similar := util.SuggestSimilar(key, ws.knownKeys(), 3); len(similar) > 0 {
		suggestion = "Did you mean: " + util.JoinOrNone(similar) + "?"
	}
	return config.WidgetConfig{}, errors.New(errors.ErrInput,
		fmt.Sprintf("Metric '%s' not found", key), suggestion)
}

// knownKeys is every configured widget key plus every history key.
func (ws *workspace) knownKeys() []string {
	keys := ws.keys()
	for _, w := range ws.cfg.Widgets {
		if !ws.hasMetric(w.Key) {
			keys = append(keys, w.Key)
		}
	}
	return keys
}

// resolve is widget with per-invocation overrides applied and checked.
func (ws *workspace) resolve(key string, o WidgetOverrides) (config.WidgetConfig, error) {
	w, err := ws.widget(key)
	if err != nil {
		return config.WidgetConfig{}, err
	}
	w = o.Apply(w)

	warnings, err := config.ValidateWidget(w)
	if err != nil {
		return config.WidgetConfig{}, errors.New(errors.ErrInput, err.Error(),
			"Check the widget flags; run with --help for accepted values")
	}
	for _, warn := range warnings {
		ws.log.Warn("%s", warn)
	}
	return w, nil
}

// widgets resolves keys, or returns the configured widgets when keys is
// empty. With no widgets configured every metric in the history is shown.
func (ws *workspace) widgets(keys []string) ([]config.WidgetConfig, error) {
	if len(keys) == 0 {
		if len(ws.cfg.Widgets) > 0 {
			return ws.cfg.Widgets, nil
		}
		keys = ws.keys()
	}

	out := make([]config.WidgetConfig, 0, len(keys))
	for _, k := range keys {
		w, err := ws.widget(k)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (ws *workspace) describe(w config.WidgetConfig) (chart.Descriptor, error) {
	opts, err := w.Options(ws.cfg.Output.DateLayout)
	if err != nil {
		return chart.Descriptor{}, err
	}
	return chart.Build(ws.data.History, ws.data.Latest, w.Key, opts), nil
}

// dashboardWidgets describes every widget for the viewer.
func (ws *workspace) dashboardWidgets() ([]dashboard.Widget, error) {
	configured, err := ws.widgets(nil)
	if err != nil {
		return nil, err
	}
	out := make([]dashboard.Widget, 0, len(configured))
	for _, w := range configured {
		desc, err := ws.describe(w)
		if err != nil {
			return nil, err
		}
		out = append(out, dashboard.Widget{Name: w.Key, Descriptor: desc})
	}
	return out, nil
}

func (ws *workspace) palette() render.Palette {
	return ws.cfg.Theme.Palette()
}
