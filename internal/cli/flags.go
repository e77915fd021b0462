package cli

import (
	"github.com/dashbuild/dashbuild/internal/chart"
	"github.com/dashbuild/dashbuild/internal/config"
	"github.com/dashbuild/dashbuild/internal/util"
	"github.com/spf13/cobra"
)

// WidgetOverrides replace widget settings for a single invocation. Nil and
// empty fields leave the configured value alone.
type WidgetOverrides struct {
	Title       *string
	Suffix      *string
	Color       *string
	TickFormat  *string
	ValueFormat *string
	YDomain     []float64
	Inverse     *bool
	Neutral     *bool
	Reverse     *bool
}

// Apply returns w with the overrides applied.
func (o WidgetOverrides) Apply(w config.WidgetConfig) config.WidgetConfig {
	setString(&w.Title, o.Title)
	setString(&w.Suffix, o.Suffix)
	setString(&w.Color, o.Color)
	setString(&w.TickFormat, o.TickFormat)
	setString(&w.ValueFormat, o.ValueFormat)
	if o.YDomain != nil {
		w.YDomain = o.YDomain
	}
	setBool(&w.Inverse, o.Inverse)
	setBool(&w.Neutral, o.Neutral)
	setBool(&w.Reverse, o.Reverse)
	return w
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// widgetFlags hold the raw values of the per-widget flags.
type widgetFlags struct {
	title       string
	suffix      string
	color       string
	tickFormat  string
	valueFormat string
	yDomain     []float64
	inverse     bool
	neutral     bool
	reverse     bool
}

// addPolarityFlags adds --inverse and --neutral.
func addPolarityFlags(cmd *cobra.Command, f *widgetFlags) {
	cmd.Flags().BoolVar(&f.inverse, "inverse", false, "treat a decrease as the good direction")
	cmd.Flags().BoolVar(&f.neutral, "neutral", false, "never colour the trend as good or bad")
}

// addWidgetFlags adds every widget setting as a flag.
func addWidgetFlags(cmd *cobra.Command, f *widgetFlags) {
	addPolarityFlags(cmd, f)
	cmd.Flags().StringVar(&f.title, "title", "", "chart title")
	cmd.Flags().StringVar(&f.suffix, "suffix", "", "unit appended to values (e.g. %)")
	cmd.Flags().StringVar(&f.color, "color-mark", "", "mark colour as #rrggbb or ANSI number")
	cmd.Flags().StringVar(&f.tickFormat, "tick-format", "", "axis tick format: "+formatNames())
	cmd.Flags().StringVar(&f.valueFormat, "value-format", "", "headline and tooltip format: "+formatNames())
	cmd.Flags().Float64SliceVar(&f.yDomain, "y-domain", nil, "fixed vertical axis as min,max")
	cmd.Flags().BoolVar(&f.reverse, "reverse", false, "draw low values high (needs --y-domain)")
}

// overrides collects the flags the user actually set on cmd.
func (f *widgetFlags) overrides(cmd *cobra.Command) WidgetOverrides {
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}

	var o WidgetOverrides
	if changed("title") {
		o.Title = &f.title
	}
	if changed("suffix") {
		o.Suffix = &f.suffix
	}
	if changed("color-mark") {
		o.Color = &f.color
	}
	if changed("tick-format") {
		o.TickFormat = &f.tickFormat
	}
	if changed("value-format") {
		o.ValueFormat = &f.valueFormat
	}
	if changed("y-domain") {
		o.YDomain = f.yDomain
	}
	if changed("inverse") {
		o.Inverse = &f.inverse
	}
	if changed("neutral") {
		o.Neutral = &f.neutral
	}
	if changed("reverse") {
		o.Reverse = &f.reverse
	}
	return o
}

func formatNames() string {
	return util.JoinOrDefault(chart.FormatNames, "none")
}
