package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rpgo/swp-projector/internal/calculation"
	"github.com/rpgo/swp-projector/internal/chart"
	"github.com/rpgo/swp-projector/internal/config"
	"github.com/rpgo/swp-projector/internal/domain"
	"github.com/rpgo/swp-projector/internal/log"
	"github.com/rpgo/swp-projector/internal/output"
)

// app carries state shared by every subcommand
type app struct {
	verbose  bool
	envFiles []string

	settings config.Settings
	logger   *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "swp",
		Short: "Systematic investment and withdrawal projector",
		Long: "Project a monthly investment plan (SIP) that later switches to a " +
			"systematic withdrawal plan (SWP), in nominal and inflation-adjusted terms.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "Environment files to load (default .env)")

	root.AddCommand(
		newRunCmd(a),
		newCompareCmd(a),
		newInteractiveCmd(a),
		newServeCmd(a),
		newExampleCmd(a),
		newValidateCmd(a),
	)
	return root
}

func (a *app) setup(stderr io.Writer) error {
	settings, err := config.LoadSettings(a.envFiles...)
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	a.settings = settings
	a.logger = log.New(log.Config{Level: level, Component: log.ComponentCLI, Output: stderr})
	return nil
}

func (a *app) engine() *calculation.Engine {
	e := calculation.NewEngine()
	e.SetLogger(log.NewCalcLogger(a.logger))
	return e
}

// reportOptions are the flags shared by run, compare and interactive
type reportOptions struct {
	format    string
	outputDir string
	chart     string
}

func (o *reportOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "console", "Report format (see --help for names)")
	cmd.Flags().StringVarP(&o.outputDir, "output", "o", "", "Write a timestamped report file into this directory instead of stdout")
	cmd.Flags().StringVar(&o.chart, "chart", "terminal", "Chart output: terminal or none")
}

func (o reportOptions) validate() error {
	if _, err := output.LookupFormatter(o.format); err != nil && output.NormalizeFormatName(o.format) != "all" {
		return err
	}
	switch o.chart {
	case "terminal", "none":
		return nil
	}
	return fmt.Errorf("unsupported chart mode %q: use terminal or none", o.chart)
}

// emit writes the report and, for console output on stdout, the terminal
// charts of every scenario.
func (a *app) emit(cmd *cobra.Command, res *domain.ScenarioComparison, o reportOptions) error {
	logger := a.logger.With(log.FieldFormat, output.NormalizeFormatName(o.format))

	if o.outputDir != "" {
		files, err := output.GenerateReportFiles(res, o.format, o.outputDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			logger.Debug("report written", log.FieldFile, f)
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
		}
		return nil
	}

	if err := output.WriteReport(cmd.OutOrStdout(), res, o.format); err != nil {
		return err
	}

	if o.chart != "terminal" || output.ExtensionFor(o.format) != "txt" {
		return nil
	}
	return drawTerminalCharts(cmd.OutOrStdout(), res)
}

// drawTerminalCharts draws each scenario in turn on one renderer, so only
// the latest chart is live at any time.
func drawTerminalCharts(w io.Writer, res *domain.ScenarioComparison) (err error) {
	renderer := chart.NewRenderer(chart.NewTerminalCanvas(w))
	defer func() {
		if cerr := renderer.Close(); err == nil {
			err = cerr
		}
	}()

	for _, sc := range res.Scenarios {
		fmt.Fprintf(w, "\n%s\n", sc.Name)
		if _, err := renderer.Replace(chart.BuildSeries(sc.Projection, res.Currency)); err != nil {
			return err
		}
	}
	return nil
}
