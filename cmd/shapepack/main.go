// ShapePack: 2D sheet packing comparison
//
// Reads a list of rectangles, circles, triangles and polygons, packs them
// onto one sheet with the shelf, greedy and maximal-rectangles strategies,
// and writes a comparison plus per-algorithm placements and renderings.
//
// Build:
//   go build -o shapepack ./cmd/shapepack
//
// Usage:
//   shapepack [flags] input.txt|input.csv|input.xlsx|input.dxf

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/ShapePack/internal/engine"
	"github.com/piwi3910/ShapePack/internal/export"
	"github.com/piwi3910/ShapePack/internal/importer"
	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/piwi3910/ShapePack/internal/project"
	"github.com/piwi3910/ShapePack/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "shapepack:", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath string
	outDir     string
	algorithms string
	width      float64
	height     float64
	padding    float64
	png        bool
	pdf        bool
	labels     bool
	xlsx       bool
	logLevel   string
	input      string
	set        map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("shapepack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", project.DefaultConfigPath(), "path to the config file")
	fs.StringVar(&o.outDir, "out", "", "output directory (default from config)")
	fs.StringVar(&o.algorithms, "algo", "", "comma separated algorithms to compare: shelf,greedy,maxrects")
	fs.Float64Var(&o.width, "width", 0, "sheet width, overrides the input")
	fs.Float64Var(&o.height, "height", 0, "sheet height, overrides the input")
	fs.Float64Var(&o.padding, "padding", 0, "padding, overrides the input")
	fs.BoolVar(&o.png, "png", false, "write layout_<algo>.png")
	fs.BoolVar(&o.pdf, "pdf", false, "write report.pdf")
	fs.BoolVar(&o.labels, "labels", false, "write QR labels for the best run")
	fs.BoolVar(&o.xlsx, "xlsx", false, "write comparison.xlsx")
	fs.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: shapepack [flags] input")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return o, fmt.Errorf("expected exactly one input file, got %d", fs.NArg())
	}
	o.input = fs.Arg(0)

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// applyFlags overrides config values with the flags given on the command line.
func applyFlags(cfg *model.AppConfig, o options) error {
	if o.set["out"] {
		cfg.OutputDir = o.outDir
	}
	if o.set["algo"] {
		algos, err := parseAlgorithms(o.algorithms)
		if err != nil {
			return err
		}
		cfg.Algorithms = algos
	}
	if o.set["png"] {
		cfg.WritePNG = o.png
	}
	if o.set["pdf"] {
		cfg.WritePDF = o.pdf
	}
	if o.set["labels"] {
		cfg.WriteLabels = o.labels
	}
	if o.set["xlsx"] {
		cfg.WriteExcel = o.xlsx
	}
	if o.set["log-level"] {
		cfg.LogLevel = o.logLevel
	}
	return nil
}

func parseAlgorithms(s string) ([]model.Algorithm, error) {
	var algos []model.Algorithm
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		a, err := model.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		algos = append(algos, a)
	}
	if len(algos) == 0 {
		return nil, fmt.Errorf("no algorithms selected")
	}
	return model.UniqueAlgorithms(algos), nil
}

// resolveSheet picks the sheet: the input's declaration, else the config
// default, with explicit flags winning over both.
func resolveSheet(declared *model.Sheet, cfg model.AppConfig, o options) model.Sheet {
	sheet := cfg.DefaultSheet()
	if declared != nil {
		sheet = *declared
	}
	if o.set["width"] {
		sheet.Width = o.width
	}
	if o.set["height"] {
		sheet.Height = o.height
	}
	if o.set["padding"] {
		sheet.Padding = o.padding
	}
	return sheet
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	stored, err := project.LoadAppConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := stored
	if err := applyFlags(&cfg, o); err != nil {
		return err
	}

	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	engine.SetLogger(logger)
	defer engine.SetLogger(nil)

	imported, err := importer.Import(o.input)
	if err != nil {
		return err
	}
	for _, w := range imported.Warnings {
		logger.Warn("import", "file", o.input, "detail", w)
	}
	if err := imported.Err(); err != nil {
		return fmt.Errorf("import %s: %w", o.input, err)
	}

	sheet := resolveSheet(imported.Sheet, cfg, o)
	logger.Info("input loaded", "file", o.input, "shapes", len(imported.Shapes),
		"width", sheet.Width, "height", sheet.Height, "padding", sheet.Padding)

	results, err := engine.Compare(sheet, imported.Shapes, cfg.Algorithms)
	if err != nil {
		return err
	}
	comparison := report.NewComparison(sheet, results)

	if err := comparison.FormatTable(stdout); err != nil {
		return err
	}
	if best, ok := comparison.Best(); ok {
		fmt.Fprintf(stdout, "\nBest: %s (%d/%d placed, %.2f%%)\n", best.Name, best.Placed, best.Total, best.Percent)
	}

	if err := writeOutputs(cfg, comparison, logger); err != nil {
		return err
	}

	if cfg.WriteLabels {
		labels, err := labelRun(cfg, comparison, sheet, imported.Shapes)
		if err != nil {
			return err
		}
		if err := writeLabels(cfg, labels, logger); err != nil {
			return err
		}
	}

	if abs, err := filepath.Abs(o.input); err == nil {
		stored.AddRecentInput(abs)
		if err := project.SaveAppConfig(o.configPath, stored); err != nil {
			logger.Warn("could not update recent inputs", "config", o.configPath, "error", err)
		}
	}
	return nil
}

// writeOutputs writes the comparison and the requested per-run files.
func writeOutputs(cfg model.AppConfig, comparison *report.Comparison, logger *slog.Logger) error {
	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, "comparison_results.json")
	if err := comparison.WriteJSON(path); err != nil {
		return err
	}
	logger.Info("wrote comparison", "path", path, "run", comparison.RunID)

	packResults := make([]model.PackResult, 0, len(comparison.Entries))
	for _, e := range comparison.Entries {
		packResults = append(packResults, e.Result)

		path := filepath.Join(dir, fmt.Sprintf("output_%s.json", e.Algorithm))
		if err := export.WritePlacementsJSON(path, e.Result); err != nil {
			return err
		}

		if cfg.WritePNG {
			path := filepath.Join(dir, fmt.Sprintf("layout_%s.png", e.Algorithm))
			opts := export.PNGOptions{Scale: cfg.PNGScale, ShowPadding: cfg.ShowPadding}
			if err := export.RenderPNG(path, e.Result, opts); err != nil {
				return err
			}
		}
	}

	if cfg.WritePDF {
		if err := export.ExportPDF(filepath.Join(dir, "report.pdf"), packResults); err != nil {
			return err
		}
	}

	if cfg.WriteExcel {
		if err := comparison.WriteExcel(filepath.Join(dir, "comparison.xlsx")); err != nil {
			return err
		}
	}

	return nil
}

// labelRun returns the run whose shapes get QR labels: the configured default
// algorithm, packed on its own when the comparison did not include it, or the
// best run of the comparison when no default is configured.
func labelRun(cfg model.AppConfig, comparison *report.Comparison, sheet model.Sheet, shapes []model.Shape) (model.PackResult, error) {
	if cfg.DefaultAlgorithm == "" {
		best, _ := comparison.Best()
		return best.Result, nil
	}

	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)
	for _, e := range comparison.Entries {
		if e.Algorithm == settings.Algorithm {
			return e.Result, nil
		}
	}
	return engine.New(settings).Pack(sheet, shapes)
}

func writeLabels(cfg model.AppConfig, result model.PackResult, logger *slog.Logger) error {
	if len(result.Placements) == 0 {
		logger.Warn("no placed shapes, skipping labels")
		return nil
	}
	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("labels_%s.pdf", result.Algorithm))
	if err := export.ExportLabels(path, result); err != nil {
		return err
	}
	logger.Info("wrote labels", "path", path, "algorithm", result.Algorithm)
	return nil
}
