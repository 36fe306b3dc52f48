package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/krisk248/IITM-reap-project/internal/formatter"
	"github.com/krisk248/IITM-reap-project/internal/library"
	"github.com/krisk248/IITM-reap-project/internal/media"
	"github.com/krisk248/IITM-reap-project/internal/repositories"
	"github.com/krisk248/IITM-reap-project/internal/shared"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// scanner builds a library Scanner from the current config. The probe cache
// is skipped when noCache is set or the database cannot be opened.
func (r *Runner) scanner(noCache bool) *library.Scanner {
	var cache library.Cache
	if !noCache {
		if db, err := r.database(); err != nil {
			r.logger.Warn("probe cache unavailable", "error", err)
		} else {
			cache = repositories.NewProbeCache(db)
		}
	}

	return library.NewScanner(library.ScannerOpts{
		Prober:     media.NewProber(r.config.Media.FFprobePath),
		Cache:      cache,
		Extensions: r.config.Media.Extensions,
		Workers:    r.config.Library.Workers,
		Logger:     r.logger,
	})
}

// newScanBar returns a progress bar counting probed files.
func newScanBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// LibraryHours aggregates video durations per course folder and writes a CSV
// report plus a plain text log next to the scanned directory.
func (r *Runner) LibraryHours(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	dir := cmd.StringArg("dir")
	if dir == "" {
		return fmt.Errorf("%w: directory", shared.ErrMissingArgument)
	}

	scanner := r.scanner(cmd.Bool("no-cache"))

	bar := newScanBar(-1, "Probing videos")
	result, err := scanner.Hours(ctx, dir, func(path string) {
		bar.Add(1)
	})
	bar.Finish()
	r.writePlain("\n")
	if err != nil {
		return err
	}

	rootName := filepath.Base(filepath.Clean(dir))

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = filepath.Clean(dir)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	csvData, err := formatter.HoursCSV(result.Totals, rootName)
	if err != nil {
		return err
	}
	csvPath := filepath.Join(outputDir, rootName+"_duration.csv")
	if err := os.WriteFile(csvPath, csvData, 0644); err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}

	logData := formatter.HoursLog(result.Totals, rootName, result.FileCount, result.Failures)
	logPath := filepath.Join(outputDir, rootName+"_duration.log")
	if err := os.WriteFile(logPath, logData, 0644); err != nil {
		return fmt.Errorf("failed to write log report: %w", err)
	}

	r.writePlainHeader("Duration Scan Complete")
	r.writePlain("Videos probed:  %d\n", result.FileCount)
	r.writePlain("Total duration: %s\n", shared.FormatSeconds(result.TotalSeconds))
	if len(result.Failures) > 0 {
		r.writePlain("Probe failures: %d (counted as zero)\n", len(result.Failures))
	}
	r.writePlain("CSV report:     %s\n", csvPath)
	r.writePlain("Log report:     %s\n", logPath)
	return nil
}

// LibraryDuplicates hashes every video under a directory and reports groups
// of files with identical contents.
func (r *Runner) LibraryDuplicates(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	dir := cmd.StringArg("dir")
	if dir == "" {
		return fmt.Errorf("%w: directory", shared.ErrMissingArgument)
	}

	scanner := r.scanner(true)

	bar := newScanBar(-1, "Hashing videos")
	groups, err := scanner.Duplicates(ctx, dir, func(path string) {
		bar.Add(1)
	})
	bar.Finish()
	r.writePlain("\n")
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(groups, true)
	}

	report := formatter.DuplicatesReport(groups)

	if outputPath := cmd.String("output"); outputPath != "" {
		if err := os.WriteFile(outputPath, report, 0644); err != nil {
			return fmt.Errorf("failed to write duplicates report: %w", err)
		}
		r.writePlain("Report written to %s\n", outputPath)
	}

	return r.writePlain("%s", report)
}
