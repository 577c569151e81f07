package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "outliner",
	Short: "Extract document outlines from PDF, DOCX, Markdown and HTML files",
	Long: `outliner turns documents without native outline metadata into a
structured table of contents: a title plus heading entries with levels
and page numbers. PDFs are classified from font and layout statistics;
formats that carry their own heading structure are read directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI with the given context.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		newLogger().Error("command failed", "error", err)
	}
	return err
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func init() {
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
