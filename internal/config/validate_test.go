package config

import (
	"testing"

	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = ThemeConfig{Up: "#39FF14", Down: "196"}
	cfg.Widgets = []WidgetConfig{
		{Key: "coverage", Suffix: "%", TickFormat: "int"},
		{Key: "rating", YDomain: []float64{1, 5}, Reverse: true, ValueFormat: "fixed:1", Color: "#FFAA00"},
	}

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "future version",
			mutate:  func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			wantMsg: "from the future",
		},
		{
			name:    "bad color mode",
			mutate:  func(c *Config) { c.Output.Color = "sometimes" },
			wantMsg: "output.color",
		},
		{
			name:    "negative width",
			mutate:  func(c *Config) { c.Output.Width = -1 },
			wantMsg: "output.width",
		},
		{
			name:    "bad theme colour",
			mutate:  func(c *Config) { c.Theme.Accent = "cyan" },
			wantMsg: "theme.accent",
		},
		{
			name:    "missing key",
			mutate:  func(c *Config) { c.Widgets = []WidgetConfig{{Title: "No key"}} },
			wantMsg: "Widget #1 has no key",
		},
		{
			name:    "duplicate key",
			mutate:  func(c *Config) { c.Widgets = []WidgetConfig{{Key: "a"}, {Key: "a"}} },
			wantMsg: "defined twice",
		},
		{
			name:    "y_domain wrong length",
			mutate:  func(c *Config) { c.Widgets = []WidgetConfig{{Key: "a", YDomain: []float64{1}}} },
			wantMsg: "exactly two values",
		},
		{
			name:    "y_domain inverted",
			mutate:  func(c *Config) { c.Widgets = []WidgetConfig{{Key: "a", YDomain: []float64{5, 1}}} },
			wantMsg: "must be below max",
		},
		{
			name:    "bad tick format",
			mutate:  func(c *Config) { c.Widgets = []WidgetConfig{{Key: "a", TickFormat: "roman"}} },
			wantMsg: "tick_format 'roman'",
		},
		{
			name:    "bad value format",
			mutate:  func(c *Config) { c.Widgets = []WidgetConfig{{Key: "a", ValueFormat: "fixed:12"}} },
			wantMsg: "value_format 'fixed:12'",
		},
		{
			name:    "bad widget color",
			mutate:  func(c *Config) { c.Widgets = []WidgetConfig{{Key: "a", Color: "#12"}} },
			wantMsg: "color '#12'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			_, err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Widgets = []WidgetConfig{
		{Key: "rating", Reverse: true},
		{Key: "churn", Inverse: true, Neutral: true},
	}

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "reverse has no effect without y_domain")
	assert.Contains(t, warnings[1], "neutral overrides inverse")
}
