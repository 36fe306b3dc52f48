package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/krisk248/IITM-reap-project/internal/formatter"
	"github.com/krisk248/IITM-reap-project/internal/services"
	"github.com/krisk248/IITM-reap-project/internal/shared"
	"github.com/urfave/cli/v3"
)

// ReportExcel writes an Excel workbook of a playlist's videos in chapter
// order. With --playlist-file it writes one workbook per listed playlist,
// each named from the playlist's description.
func (r *Runner) ReportExcel(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	playlistID := cmd.String("playlist-id")
	playlistFile := cmd.String("playlist-file")
	output := cmd.String("output")

	if playlistID == "" && playlistFile == "" {
		return fmt.Errorf("%w: either --playlist-id or --playlist-file", shared.ErrMissingArgument)
	}
	if playlistID != "" && playlistFile != "" {
		return fmt.Errorf("%w: cannot specify both --playlist-id and --playlist-file", shared.ErrInvalidArgument)
	}

	service, err := r.channelService(ctx, false)
	if err != nil {
		return err
	}

	if playlistID != "" {
		path, err := r.writeWorkbook(ctx, service, playlistID, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Workbook written to %s\n", path)
		return nil
	}

	ids, err := readPlaylistIDs(playlistFile)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: no playlist IDs in %s", shared.ErrInvalidInput, playlistFile)
	}

	r.writePlain("Generating %d workbooks\n\n", len(ids))
	written := 0
	for _, id := range ids {
		path, err := r.writeWorkbook(ctx, service, id, output)
		if err != nil {
			r.logger.Error("workbook failed", "playlist", id, "error", err)
			r.writePlain("✗ %s: %v\n", id, err)
			continue
		}
		r.writePlain("✓ %s -> %s\n", id, path)
		written++
	}
	r.writePlainln("%d of %d workbooks written", written, len(ids))
	return nil
}

// writeWorkbook fetches one playlist and writes its report workbook. When
// output is a directory the file is named from the playlist description,
// falling back to the title.
func (r *Runner) writeWorkbook(ctx context.Context, service services.ChannelService, playlistID, output string) (string, error) {
	playlist, err := service.Playlist(ctx, playlistID)
	if err != nil {
		return "", err
	}

	videos, err := service.PlaylistVideos(ctx, playlistID)
	if err != nil {
		return "", err
	}

	rows := formatter.BuildReportRows(videos)

	path := output
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		label := playlist.Description
		if label == "" {
			label = playlist.Title
		}
		path = filepath.Join(output, formatter.WorkbookName(label))
	}

	if err := formatter.WriteExcel(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// readPlaylistIDs reads playlist IDs from a file, one per line. Blank lines
// and lines starting with # are skipped.
func readPlaylistIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrFileNotFound, err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist file: %w", err)
	}
	return ids, nil
}

// ReportCSV writes a translation-task CSV for a playlist.
func (r *Runner) ReportCSV(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	playlistID := cmd.String("playlist-id")
	output := cmd.String("output")

	service, err := r.channelService(ctx, false)
	if err != nil {
		return err
	}

	videos, err := service.PlaylistVideos(ctx, playlistID)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return fmt.Errorf("%w: playlist %s has no videos", shared.ErrInvalidInput, playlistID)
	}

	data, err := formatter.TranslationCSV(formatter.TranslationOpts{
		ProjectID:      cmd.String("project-id"),
		TargetLanguage: cmd.String("target-language"),
		Assignee:       cmd.String("assignee"),
		Gender:         cmd.String("gender"),
	}, videos)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	r.writePlain("✓ %d rows written to %s\n", len(videos), output)
	return nil
}
