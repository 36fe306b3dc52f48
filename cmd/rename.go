package main

import (
	"context"
	"fmt"

	"github.com/krisk248/IITM-reap-project/internal/tasks"
	"github.com/urfave/cli/v3"
)

// RenamePlan loads a manifest and prints the renames it would perform
// without touching any files.
func (r *Runner) RenamePlan(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	dir := cmd.String("dir")
	manifest := cmd.String("manifest")

	engine := tasks.NewRenameEngine(r.logger)
	entries, err := engine.LoadManifest(manifest)
	if err != nil {
		return err
	}

	actions := engine.Plan(dir, entries)

	r.writePlainHeader("Rename Plan")
	ok := 0
	for _, action := range actions {
		if action.Err != nil {
			r.writePlain("✗ %s: %v\n", action.From, action.Err)
			continue
		}
		r.writePlain("  %s -> %s\n", action.From, action.To)
		ok++
	}
	r.writePlainln("%d of %d renames would apply", ok, len(actions))
	return nil
}

// RenameApply performs the renames from a manifest and appends each
// completed rename to the log file.
func (r *Runner) RenameApply(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	dir := cmd.String("dir")
	manifest := cmd.String("manifest")
	logPath := cmd.String("log")

	engine := tasks.NewRenameEngine(r.logger)
	entries, err := engine.LoadManifest(manifest)
	if err != nil {
		return err
	}

	result, err := engine.Apply(dir, entries, logPath)
	if err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}

	r.writePlainHeader("Rename Complete")
	r.writePlain("Renamed: %d\n", result.Renamed)
	if len(result.Failed) > 0 {
		r.writePlain("Skipped: %d\n", len(result.Failed))
		for _, name := range result.Failed {
			r.writePlain("  ✗ %s\n", name)
		}
	}
	if logPath != "" {
		r.writePlain("Log:     %s\n", logPath)
	}
	return nil
}
