package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkarpov/claimsift/internal/intake"
	"github.com/pkarpov/claimsift/internal/model"
	"github.com/spf13/cobra"
)

var processTimeout time.Duration

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <item.json>",
	Short: "Process a single spooled item and exit",
	Long: `Process runs one spooled item through the full intake pipeline:
filter, extraction, police report analysis, enrichment, report
assembly and delivery. Useful for testing a submission without
running the monitor loop.

Example:
  claimsift process spool/msg-001.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().DurationVar(&processTimeout, "timeout", 5*time.Minute, "overall processing timeout")
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read item: %w", err)
	}

	var item model.InboundItem
	if err := json.Unmarshal(data, &item); err != nil {
		return fmt.Errorf("decode item: %w", err)
	}
	if item.ID == "" {
		item.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	pipeline, err := intake.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("wiring failed: %w", err)
	}
	defer func() { _ = pipeline.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	disposition, err := pipeline.Controller.Process(ctx, item)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}
	if disposition == "" {
		fmt.Printf("item %s was already processed\n", item.ID)
		return nil
	}

	fmt.Printf("item %s processed: %s\n", item.ID, disposition)
	return nil
}
