package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/config"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/logger"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/pipeline"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	var configFile, output, logLevel string

	root := &cobra.Command{
		Use:   "nbaprep",
		Short: "Prepare the NBA 2K salary dataset for modeling",
		Long: `nbaprep downloads the NBA 2K player dataset once, cleans it, derives age,
experience and BMI, drops one multicollinear feature, standardizes numeric columns and
one-hot encodes categorical ones. It prints the shape of the feature matrix and target.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), configFile, output, logLevel)
		},
	}

	root.Flags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file (optional)")
	root.Flags().StringVarP(&output, "output", "o", "text", "Summary format: text or json")
	root.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nbaprep v%s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	})

	return root
}

func run(ctx context.Context, out io.Writer, configFile, output, logLevel string) error {
	if output != "text" && output != "json" {
		return errors.Newf(errors.ErrorTypeConfig, "invalid output format %q, must be text or json", output)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if err := logger.Init(cfg.Log.Logger()); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to initialize logger")
	}
	defer func() { _ = logger.Sync() }()

	log := logger.With(zap.String("component", "nbaprep"))
	log.Info("starting pipeline",
		zap.String("data", cfg.DataPath()),
		zap.String("target", cfg.Target),
		zap.Int("high_cardinality", cfg.HighCardinality),
		zap.Float64("high_correlation", cfg.HighCorrelation))

	result, err := pipeline.Run(ctx, cfg, log)
	if err != nil {
		return err
	}

	summary := pipeline.Summarize(result)
	log.Info("pipeline completed", zap.Int("rows", summary.Rows), zap.Int("features", summary.Columns))

	return writeSummary(out, summary, output)
}

func writeSummary(w io.Writer, s pipeline.Summary, format string) error {
	if format == "json" {
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	_, err := fmt.Fprintf(w, "(%d, %d) (%d,)\n", s.Rows, s.Columns, s.TargetLength)
	return err
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Get().Error("pipeline aborted", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		var e *errors.Error
		if errors.As(err, &e) {
			fmt.Fprint(os.Stderr, e.StackTrace())
		}
		os.Exit(1)
	}
}
