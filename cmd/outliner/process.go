package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/outliner/internal/config"
	"github.com/dgallion1/outliner/internal/pipeline"
)

var (
	processInput   string
	processOutput  string
	processLogs    string
	processWorkers int
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process every supported document in a directory",
	Long: `Reads all supported documents from the input directory and writes one
outline JSON per document to the output directory, plus a per-file
processing log to the logs directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg := config.Load()

		input := cfg.InputDir
		if processInput != "" {
			input = processInput
		}
		output := cfg.OutputDir
		if processOutput != "" {
			output = processOutput
		}
		logs := cfg.LogsDir
		if processLogs != "" {
			logs = processLogs
		}
		workers := cfg.WorkerCount
		if processWorkers > 0 {
			workers = processWorkers
		}

		stats, err := pipeline.RunBatch(cmd.Context(), input, output, logs, workers, log)
		if err != nil {
			return err
		}
		if stats.Failed > 0 {
			return fmt.Errorf("%d of %d documents failed", stats.Failed, stats.Processed)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().StringVarP(&processInput, "input", "i", "", "input directory (default $INPUT_DIR or ./input)")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "output directory (default $OUTPUT_DIR or ./output)")
	processCmd.Flags().StringVar(&processLogs, "logs", "", "logs directory (default $LOGS_DIR or ./logs)")
	processCmd.Flags().IntVarP(&processWorkers, "workers", "w", 0, "worker count (default $WORKER_COUNT or CPUs-1)")
}
