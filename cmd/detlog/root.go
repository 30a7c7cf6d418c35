package main

import (
	"fmt"
	"io"
	"time"

	"github.com/katalvlaran/detlog/config"
	"github.com/katalvlaran/detlog/csvmatrix"
	"github.com/katalvlaran/detlog/logdet"
	"github.com/katalvlaran/detlog/logging"
	"github.com/katalvlaran/detlog/lu"
	"github.com/katalvlaran/detlog/scinote"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the resolved settings shared by every subcommand.
type app struct {
	cfg *config.Config
	log *logging.Logger
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg, log: logging.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "detlog <matrix.csv>",
		Short:         "Sign and log-magnitude of a matrix determinant",
		Long:          "Reads a square matrix from a delimited text file, factorizes it with pivoted LU and prints sign(det), log|det| and the determinant in scientific notation without overflow.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			l, err := logging.New(loggerConfig(a.cfg))
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			a.log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDeterminant(cmd.OutOrStdout(), args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&a.cfg.Precision, "precision", "p", cfg.Precision, "mantissa digits after the decimal point (0-17)")
	flags.IntVar(&a.cfg.MaxDim, "max-dim", cfg.MaxDim, "reject matrices larger than this (0 = no limit)")
	flags.BoolVar(&a.cfg.Verify, "verify", cfg.Verify, "cross-check the result against gonum's LU")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&a.cfg.Delimiter, "delimiter", "d", cfg.Delimiter, "field separator")
	persistent.StringVar(&a.cfg.Level, "log-level", cfg.Level, "log level: debug, info, warn, error (default warn, debug with --log-dev)")
	persistent.BoolVar(&a.cfg.Development, "log-dev", cfg.Development, "human-readable console logs")

	rootCmd.AddCommand(newGenerateCmd(a))

	return rootCmd
}

// loggerConfig picks the production or development preset and lets an
// explicit level (flag or DETLOG_LOG_LEVEL) override the preset's own.
func loggerConfig(cfg *config.Config) logging.Config {
	logCfg := logging.DefaultConfig()
	if cfg.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Level != "" {
		logCfg.Level = cfg.Level
	}

	return logCfg
}

// runDeterminant is the load → factorize → accumulate → format pipeline.
// The factorization is kept so that --verify can measure its backward error.
func (a *app) runDeterminant(out io.Writer, path string) error {
	overall := time.Now()
	fmt.Fprintf(out, "Reading matrix from %s ...\n", path)

	m, err := csvmatrix.LoadFile(path,
		csvmatrix.WithDelimiter(a.cfg.DelimiterRune()),
		csvmatrix.WithMaxDim(a.cfg.MaxDim))
	if err != nil {
		return err
	}
	n := m.Rows()
	a.log.Stage("load", time.Since(overall).Seconds(), zap.Int("n", n))
	fmt.Fprintf(out, "Matrix size: %d x %d\n", n, n)

	// The factorization consumes m, so the reference copy is taken first.
	var ref *gonumRef
	if a.cfg.Verify {
		if ref, err = newGonumRef(m); err != nil {
			return err
		}
	}

	start := time.Now()
	f, err := lu.Factorize(m)
	if err != nil {
		return err
	}
	lf := logdet.FromFactorization(f)
	detSeconds := time.Since(start).Seconds()
	a.log.Stage("logdet", detSeconds, zap.Int("sign", lf.Sign), zap.Float64("log_abs", lf.LogAbs))

	fmt.Fprintf(out, "\nSign(det)   = %d\n", lf.Sign)
	fmt.Fprintf(out, "log|det|    = %.17g\n", lf.LogAbs)
	fmt.Fprintf(out, "time (s)    = %.6f\n", detSeconds)

	fmt.Fprintf(out, "\napprox determinant = %s\n", scinote.Format(lf, scinote.WithPrecision(a.cfg.Precision)))

	if ref != nil {
		if err := ref.report(out, lf, f); err != nil {
			a.log.Warn("verification failed", zap.Error(err))
			return err
		}
	}

	fmt.Fprintf(out, "overall (s) = %.6f\n", time.Since(overall).Seconds())

	return nil
}
