package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/decisionlab/benders/config"
	"github.com/decisionlab/benders/core/benders"
	coremetrics "github.com/decisionlab/benders/core/metrics"
	"github.com/decisionlab/benders/infra/logger"
	"github.com/decisionlab/benders/infra/metrics"
	"github.com/decisionlab/benders/infra/solver"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "benders",
	Short: "Benders decomposition solver for budget allocation",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.NewWithLevel("benders", cfg.Logging.Level)

	var sink coremetrics.Sink = coremetrics.NopSink{}
	if cfg.Metrics.PrometheusEnabled {
		promSink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return fmt.Errorf("prom sink: %w", err)
		}
		sink = promSink
		go func() {
			if err := metrics.StartPromServer(ctx, cfg.Metrics.PrometheusAddr, logg); err != nil {
				logg.Errorf("metrics server: %v", err)
			}
		}()
	}

	ctrl, err := benders.NewController(cfg.Problem.ToProblem(), solver.NewSimplex(), logg, sink)
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	res, err := ctrl.Run(ctx)
	if err != nil {
		return fmt.Errorf("decomposition run: %w", err)
	}
	logg.Infof("optimal savings amount %v with objective %v after %d iterations", res.Decision, res.UpperBound, res.Iterations)
	return nil
}
