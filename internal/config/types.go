package config

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dashbuild/dashbuild/internal/chart"
	"github.com/dashbuild/dashbuild/internal/render"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// DefaultHistoryFile is the history path used when the config names none.
const DefaultHistoryFile = "metrics.yaml"

// Config represents the complete dashbuild.yaml configuration file.
type Config struct {
	Version int    `yaml:"version" mapstructure:"version"`
	Title   string `yaml:"title,omitempty" mapstructure:"title"`

	// History is the metrics history file. Relative paths resolve against
	// the config file's directory.
	History string `yaml:"history" mapstructure:"history"`

	Theme   ThemeConfig    `yaml:"theme" mapstructure:"theme"`
	Output  OutputConfig   `yaml:"output" mapstructure:"output"`
	Widgets []WidgetConfig `yaml:"widgets" mapstructure:"widgets"`

	// Dir is the directory the config was loaded from; empty for defaults.
	Dir string `yaml:"-" mapstructure:"-"`
}

// ThemeConfig overrides the trend and accent colours. Empty fields keep the
// built-in palette.
type ThemeConfig struct {
	Up     string `yaml:"up,omitempty" mapstructure:"up"`
	Down   string `yaml:"down,omitempty" mapstructure:"down"`
	Flat   string `yaml:"flat,omitempty" mapstructure:"flat"`
	Accent string `yaml:"accent,omitempty" mapstructure:"accent"`
	Muted  string `yaml:"muted,omitempty" mapstructure:"muted"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`

	// Width of rendered output in cells. 0 uses the terminal width.
	Width int `yaml:"width" mapstructure:"width"`

	// DateLayout formats tooltip dates, as a Go time layout.
	DateLayout string `yaml:"date_layout" mapstructure:"date_layout"`
}

// WidgetConfig declares one chart on the dashboard.
type WidgetConfig struct {
	// Key is the metric key in the history file.
	Key   string `json:"key" yaml:"key" mapstructure:"key"`
	Title string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" mapstructure:"color"`

	// Suffix is appended to displayed values, e.g. "%" or "ms".
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty" mapstructure:"suffix"`

	// YDomain fixes the vertical axis as [min, max].
	YDomain []float64 `json:"y_domain,omitempty" yaml:"y_domain,omitempty,flow" mapstructure:"y_domain"`

	// Inverse treats increases as bad; Neutral colours every change flat.
	Inverse bool `json:"inverse,omitempty" yaml:"inverse,omitempty" mapstructure:"inverse"`
	Neutral bool `json:"neutral,omitempty" yaml:"neutral,omitempty" mapstructure:"neutral"`

	// Reverse draws low values high. Needs YDomain.
	Reverse bool `json:"reverse,omitempty" yaml:"reverse,omitempty" mapstructure:"reverse"`

	// TickFormat and ValueFormat name a formatter: int, percent, comma,
	// si, or fixed:N.
	TickFormat  string `json:"tick_format,omitempty" yaml:"tick_format,omitempty" mapstructure:"tick_format"`
	ValueFormat string `json:"value_format,omitempty" yaml:"value_format,omitempty" mapstructure:"value_format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		History: DefaultHistoryFile,
		Output: OutputConfig{
			Color:      "auto",
			Width:      0,
			DateLayout: chart.DefaultDateLayout,
		},
		Widgets: []WidgetConfig{},
	}
}

// Widget returns the widget configured for key.
func (c *Config) Widget(key string) (WidgetConfig, bool) {
	for _, w := range c.Widgets {
		if w.Key == key {
			return w, true
		}
	}
	return WidgetConfig{}, false
}

// Palette merges the theme over the built-in colours.
func (t ThemeConfig) Palette() render.Palette {
	return render.Palette{
		Up:     lipgloss.Color(t.Up),
		Down:   lipgloss.Color(t.Down),
		Flat:   lipgloss.Color(t.Flat),
		Accent: lipgloss.Color(t.Accent),
		Muted:  lipgloss.Color(t.Muted),
	}.Merge()
}

// Label is the widget's display title, falling back to its key.
func (w WidgetConfig) Label() string {
	if w.Title != "" {
		return w.Title
	}
	return w.Key
}

// Options converts the widget to chart options. Format names that don't
// parse are a config error.
func (w WidgetConfig) Options(dateLayout string) (chart.Options, error) {
	opts := chart.Options{
		Title:      w.Label(),
		Color:      w.Color,
		Suffix:     w.Suffix,
		Inverse:    w.Inverse,
		Neutral:    w.Neutral,
		Reverse:    w.Reverse,
		DateLayout: dateLayout,
	}
	if len(w.YDomain) == 2 {
		opts.YDomain = &chart.Domain{Min: w.YDomain[0], Max: w.YDomain[1]}
	}

	var err error
	if opts.TickFormat, err = chart.ParseFormat(w.TickFormat); err != nil {
		return chart.Options{}, err
	}
	if opts.ValueFormat, err = chart.ParseFormat(w.ValueFormat); err != nil {
		return chart.Options{}, err
	}
	return opts, nil
}
