// Package main provides the CLI entry point for labelstruct-go.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/labelstruct-go/internal/config"
	"github.com/ukaji3/labelstruct-go/internal/logger"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct"
)

var (
	outputPath string
	pretty     bool
	logLevel   string

	cfg *config.Config
	log *slog.Logger

	timeNow = time.Now
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "labelstruct",
		Short: "Generate inventory labels from cutting plans workbooks",
		Long: `labelstruct-go reads the cutting plans sheet of an Excel workbook,
expands its rows into sequentially numbered labels, and renders them for printing.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			level := cfg.LogLevel
			if logLevel != "" {
				level = logLevel
			}
			log = logger.New(logger.Config{
				Format:      cfg.LogFormat,
				Environment: cfg.Environment,
				Level:       logger.ParseLevel(level),
			})
			slog.SetDefault(log)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newExtractCmd(), newGenerateCmd(), newServeCmd())
	return rootCmd
}

// extractOptions builds extraction options from configuration.
func extractOptions() labelstruct.Options {
	opts := labelstruct.DefaultOptions()
	if len(cfg.SheetMarkers) > 0 {
		opts.SheetMarkers = cfg.SheetMarkers
	}
	opts.Logger = log
	return opts
}

// writeOutput passes --output, or stdout, to write.
func writeOutput(write func(io.Writer) error) error {
	if outputPath == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
