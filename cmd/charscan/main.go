// Package main provides the CLI entry point for charscan.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"charscan/pkg/charscan"
	"charscan/pkg/charscan/classify"
	"charscan/pkg/charscan/clean"
	"charscan/pkg/charscan/config"
	"charscan/pkg/charscan/models"
	"charscan/pkg/charscan/output"
	"charscan/pkg/charscan/report"
	"charscan/pkg/charscan/workbook"
)

var (
	chars       string
	interactive bool
	bulk        string
	replacement string
	outputDir   string
	noReport    bool
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "charscan [input.xlsx]",
		Short: "Scan spreadsheets for problematic characters",
		Long: `charscan scans workbook cells for problematic characters (by default
the extended-ASCII range 0x80-0xFF), reports each occurrence with its exact
location and context, and can clean them interactively or in bulk.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&chars, "chars", "c", "", `Scan only these characters (comma-separated, e.g. "\x81,\x82")`)
	rootCmd.Flags().BoolVar(&interactive, "clean", false, "Clean findings interactively after scanning")
	rootCmd.Flags().StringVar(&bulk, "bulk", "", "Non-interactive cleaning: delete-all or replace-all")
	rootCmd.Flags().StringVar(&replacement, "replacement", "", "Replacement text for --bulk replace-all")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for report artifacts (default: next to input)")
	rootCmd.Flags().BoolVar(&noReport, "no-report", false, "Skip writing the results CSV and findings report")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	cfg := config.Load()
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	target, err := classify.ParseSet(chars)
	if err != nil {
		return err
	}
	opts := charscan.Options{TargetChars: target, Logger: logger}

	wb, err := workbook.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer wb.Close()

	result := charscan.ScanWorkbook(wb, opts)
	consoleText, rows := report.Build(result)
	fmt.Print(consoleText)

	if len(result.Findings) == 0 {
		return nil
	}

	sink := output.NewSink(inputPath, outputDir, logger)
	if !noReport {
		csvPath, err := sink.WriteResultsCSV(rows)
		if err != nil {
			return err
		}
		fmt.Printf("Results saved to %s\n", csvPath)

		reportPath, err := sink.WriteFindingsReport(consoleText)
		if err != nil {
			return err
		}
		fmt.Printf("Detailed findings report saved to: %s\n", reportPath)
	}

	source, err := decisionSource(cmd)
	if err != nil {
		return err
	}
	if source == nil {
		return nil
	}

	entries, cleanErr := charscan.Clean(context.Background(), wb, result.Findings, source, opts)
	if len(entries) == 0 {
		if cleanErr != nil {
			return cleanErr
		}
		fmt.Println("No changes were made.")
		return nil
	}

	// Persist the log even when cleaning or saving fails part-way, so
	// applied edits are never silently lost.
	cleanedPath := sink.CleanedPath()
	saveErr := wb.Save(cleanedPath)
	if logPath, err := sink.WriteCleaningLog(entries); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write cleaning log: %v\n", err)
	} else {
		fmt.Printf("Cleaning log saved as: %s\n", logPath)
	}
	if saveErr != nil {
		return fmt.Errorf("cleaned workbook not saved (%d edits held in cleaning log): %w", len(entries), saveErr)
	}
	fmt.Printf("Cleaned %d cells.\nSaved cleaned file as: %s\n", len(entries), cleanedPath)
	return cleanErr
}

// decisionSource builds the configured decision source, or nil when no
// cleaning was requested.
func decisionSource(cmd *cobra.Command) (clean.DecisionSource, error) {
	switch {
	case interactive && bulk != "":
		return nil, errors.New("--clean and --bulk are mutually exclusive")
	case interactive:
		if !confirmClean(cmd) {
			fmt.Println("No cleaning performed. You can manually edit the file using the scan results.")
			return nil, nil
		}
		return clean.NewPrompt(cmd.InOrStdin(), cmd.OutOrStdout()), nil
	case bulk == "delete-all":
		return clean.NewDirective(models.CleaningDecision{
			Scope:     models.ScopeAllEverywhere,
			Operation: models.OpDelete,
		})
	case bulk == "replace-all":
		if !cmd.Flags().Changed("replacement") {
			return nil, fmt.Errorf("--bulk replace-all requires --replacement: %w", models.ErrInvalidDecision)
		}
		return clean.NewDirective(models.CleaningDecision{
			Scope:       models.ScopeAllEverywhere,
			Operation:   models.OpReplace,
			Replacement: &replacement,
		})
	case bulk != "":
		return nil, fmt.Errorf("invalid --bulk mode: %s (must be delete-all or replace-all)", bulk)
	default:
		return nil, nil
	}
}

func confirmClean(cmd *cobra.Command) bool {
	fmt.Println("\nWould you like to clean the problematic characters?")
	fmt.Println("This will create a new copy of the file with the problematic characters handled.")
	fmt.Print("Clean the file? (y/n): ")
	var answer string
	fmt.Fscanln(cmd.InOrStdin(), &answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.WarnLevel
	if verbose {
		lvl = zapcore.DebugLevel
	} else if level != "" {
		if err := lvl.Set(level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
