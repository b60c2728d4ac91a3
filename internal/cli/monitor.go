package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkarpov/claimsift/internal/intake"
	"github.com/spf13/cobra"
)

var (
	pollInterval time.Duration
	spoolDir     string
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the intake monitor loop",
	Long: `Monitor polls the intake spool for new legal case submissions and
processes each exactly once: filter, extract, analyze, report, deliver.

Items are processed strictly sequentially. A failing item is reported
to the recipient as an error notice and never retried; only fatal
configuration errors stop the loop.

Example:
  claimsift monitor
  claimsift monitor --spool /var/spool/claimsift --poll 2m`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().DurationVar(&pollInterval, "poll", 0, "poll interval (overrides config)")
	monitorCmd.Flags().StringVar(&spoolDir, "spool", "", "spool directory (overrides config)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if pollInterval > 0 {
		cfg.Pipeline.PollInterval = pollInterval
	}
	if spoolDir != "" {
		cfg.Mail.SpoolDir = spoolDir
	}

	pipeline, err := intake.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("wiring failed: %w", err)
	}
	defer func() { _ = pipeline.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pipeline.Monitor.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
