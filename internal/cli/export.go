package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dashbuild/dashbuild/internal/errors"
	"github.com/dashbuild/dashbuild/internal/render"
	"github.com/dashbuild/dashbuild/internal/ui"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// ExportOptions control the export command.
type ExportOptions struct {
	Key    string
	Output string
	SVG    bool // force SVG; otherwise inferred from the Output extension
	Width  int
	Height int
}

// ExportResult is the --json shape of the export command.
type ExportResult struct {
	Key    string `json:"key"`
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bytes  int64  `json:"bytes"`
}

var (
	exportFlags  widgetFlags
	exportOutput string
	exportSVG    bool
	exportWidth  int
	exportHeight int
)

var exportCmd = &cobra.Command{
	Use:   "export <key>",
	Short: "Write a metric chart as a PNG or SVG image",
	Long: `Draw a metric chart (area, line, dots, or a rule for a single sample)
and write it as an image. The format follows the output extension unless
--svg is given.

Examples:
  dashbuild export coverage -o coverage.png
  dashbuild export rating -o rating.svg --width 1200 --height 400
  dashbuild export defects -o defects.img --svg --inverse`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportCommand(cmd.OutOrStdout(), globalWorkspaceOptions(), ExportOptions{
			Key:    args[0],
			Output: exportOutput,
			SVG:    exportSVG,
			Width:  exportWidth,
			Height: exportHeight,
		}, exportFlags.overrides(cmd))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addWidgetFlags(exportCmd, &exportFlags)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "image file to write (required)")
	exportCmd.Flags().BoolVar(&exportSVG, "svg", false, "write SVG regardless of the file extension")
	exportCmd.Flags().IntVar(&exportWidth, "width", render.DefaultExportWidth, "image width in pixels")
	exportCmd.Flags().IntVar(&exportHeight, "height", render.DefaultExportHeight, "image height in pixels")
	_ = exportCmd.MarkFlagRequired("output")
}

// exportFormat picks SVG when forced or when the path ends in .svg.
func exportFormat(path string, forceSVG bool) render.ExportFormat {
	if forceSVG || strings.EqualFold(filepath.Ext(path), ".svg") {
		return render.FormatSVG
	}
	return render.FormatPNG
}

func exportCommand(w io.Writer, opts WorkspaceOptions, eo ExportOptions, o WidgetOverrides) error {
	if eo.Output == "" {
		return errors.New(errors.ErrInput, "No output file given", "Pass -o <file>.png or -o <file>.svg")
	}
	if eo.Width <= 0 || eo.Height <= 0 {
		return errors.New(errors.ErrInput,
			fmt.Sprintf("Image size %dx%d isn't valid", eo.Width, eo.Height),
			"Use a positive --width and --height")
	}

	ws, err := loadWorkspace(opts)
	if err != nil {
		return err
	}
	wc, err := ws.resolve(eo.Key, o)
	if err != nil {
		return err
	}
	desc, err := ws.describe(wc)
	if err != nil {
		return err
	}

	format := exportFormat(eo.Output, eo.SVG)
	f, err := os.Create(eo.Output)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Cannot create "+eo.Output,
			"Check the directory exists and is writable")
	}

	err = render.Export(f, desc, render.ExportOptions{
		Format:     format,
		Width:      eo.Width,
		Height:     eo.Height,
		Palette:    ws.palette(),
		DateLayout: ws.cfg.Output.DateLayout,
	})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(eo.Output)
		return err
	}

	var size int64
	if info, statErr := os.Stat(eo.Output); statErr == nil {
		size = info.Size()
	}

	if machineMode {
		return WriteJSONSuccess(w, ExportResult{
			Key:    eo.Key,
			Path:   eo.Output,
			Format: string(format),
			Width:  eo.Width,
			Height: eo.Height,
			Bytes:  size,
		})
	}

	ws.log.Debug("exported %s as %s", eo.Key, format)
	fmt.Fprintf(w, "%s Wrote %s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), eo.Output,
		ui.MutedStyle().Render(fmt.Sprintf("(%s, %dx%d, %s)", strings.ToUpper(string(format)), eo.Width, eo.Height, humanize.Bytes(uint64(size)))))
	return nil
}
