package main

import (
	"context"
	"fmt"

	"github.com/krisk248/IITM-reap-project/internal/shared"
	"github.com/krisk248/IITM-reap-project/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistList lists the channel's playlists.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	service, err := r.channelService(ctx, false)
	if err != nil {
		return err
	}

	playlists, err := service.Playlists(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists found\n")
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(playlists)))
	for _, playlist := range playlists {
		r.writePlain("%s  %-9s %3d videos  %s\n",
			playlist.ID, playlist.Privacy, playlist.ItemCount, playlist.Title)
	}
	return nil
}

// PlaylistVideos lists the videos in a playlist, in playlist order.
func (r *Runner) PlaylistVideos(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}

	service, err := r.channelService(ctx, false)
	if err != nil {
		return err
	}

	videos, err := service.PlaylistVideos(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}

	if len(videos) == 0 {
		return r.writePlain("Playlist is empty\n")
	}

	r.writePlainHeader(fmt.Sprintf("Videos (%d)", len(videos)))
	for i, video := range videos {
		r.writePlain("%3d. %s\n     %s\n", i+1, video.Title, video.URL())
	}
	return nil
}

// PlaylistEdit updates a playlist's title, description, or privacy. Fields
// left unset keep their current values.
func (r *Runner) PlaylistEdit(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}

	title := cmd.String("title")
	description := cmd.String("description")
	privacy := cmd.String("privacy")
	if title == "" && description == "" && privacy == "" {
		return fmt.Errorf("%w: provide at least one of --title, --description, --privacy", shared.ErrMissingArgument)
	}

	service, err := r.channelService(ctx, true)
	if err != nil {
		return err
	}

	current, err := service.Playlist(ctx, id)
	if err != nil {
		return err
	}
	if title == "" {
		title = current.Title
	}
	if description == "" {
		description = current.Description
	}
	if privacy == "" {
		privacy = current.Privacy
	}

	if err := service.UpdatePlaylist(ctx, id, title, description, privacy); err != nil {
		return err
	}

	r.logger.Info("playlist updated", "id", id)
	r.writePlain("✓ Updated playlist %s\n", id)
	r.writePlain("Title:   %s\n", title)
	r.writePlain("Privacy: %s\n", privacy)
	return nil
}

// PlaylistRename normalizes a playlist's video titles to "Chapter N - Topic"
// in chapter order. Without --yes it only prints the proposed changes; with
// --yes it rewrites the videos through the API.
func (r *Runner) PlaylistRename(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}

	apply := cmd.Bool("yes")

	service, err := r.channelService(ctx, apply)
	if err != nil {
		return err
	}

	videos, err := service.PlaylistVideos(ctx, id)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return r.writePlain("Playlist is empty\n")
	}

	plan := tasks.PlanVideoRenames(videos)

	changed := 0
	for _, entry := range plan {
		if entry.Changed {
			changed++
			r.writePlain("  %s -> %s\n", entry.OldTitle, entry.NewTitle)
		} else {
			r.writePlain("  = %s\n", entry.OldTitle)
		}
	}

	if !apply {
		r.writePlainln("%d of %d titles would change. Re-run with --yes to apply.", changed, len(plan))
		return nil
	}
	if changed == 0 {
		return r.writePlain("\nEvery title already matches the scheme\n")
	}

	r.writePlain("\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.RenameVideo:
				r.writePlain("✏  %s\n", update.Message)
			}
		}
	}()

	result, err := tasks.RenameVideos(ctx, service, r.logger, plan, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Rename Complete")
	r.writePlain("Updated: %d\n", result.Updated)
	r.writePlain("Skipped: %d (already correct)\n", result.Skipped)
	if len(result.Failed) > 0 {
		r.writePlain("Failed:  %d\n", len(result.Failed))
		for _, title := range result.Failed {
			r.writePlain("  ✗ %s\n", title)
		}
	}
	return nil
}

// PlaylistDelete deletes a playlist. The videos in it stay on the channel.
// Destructive, so it requires --yes to run.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}

	if !cmd.Bool("yes") {
		r.writePlain("This will delete playlist %s. Re-run with --yes to confirm.\n", id)
		return nil
	}

	service, err := r.channelService(ctx, true)
	if err != nil {
		return err
	}

	if err := service.DeletePlaylist(ctx, id); err != nil {
		return err
	}

	r.logger.Info("playlist deleted", "id", id)
	r.writePlain("✓ Deleted playlist %s\n", id)
	return nil
}

// PlaylistPurge removes every entry from a playlist, optionally deleting the
// underlying videos and the playlist itself. Destructive, so it requires
// --yes to run.
func (r *Runner) PlaylistPurge(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}

	deleteVideos := cmd.Bool("delete-videos")
	deletePlaylist := cmd.Bool("delete-playlist")

	if !cmd.Bool("yes") {
		r.writePlain("This will remove every entry from playlist %s", id)
		if deleteVideos {
			r.writePlain(" and DELETE the videos from the channel")
		}
		if deletePlaylist {
			r.writePlain(" and DELETE the playlist")
		}
		r.writePlain(".\nRe-run with --yes to confirm.\n")
		return nil
	}

	service, err := r.channelService(ctx, true)
	if err != nil {
		return err
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.PurgeItem:
				r.writePlain("🗑  %s\n", update.Message)
			case tasks.DeleteVideo:
				r.writePlain("🗑  %s\n", update.Message)
			}
		}
	}()

	result, err := tasks.PurgePlaylist(ctx, service, r.logger, id, deleteVideos, deletePlaylist, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Purge Complete")
	r.writePlain("Entries removed: %d\n", result.Removed)
	if deleteVideos {
		r.writePlain("Videos deleted:  %d\n", result.Deleted)
	}
	if len(result.Failed) > 0 {
		r.writePlain("Failed:          %d\n", len(result.Failed))
		for _, title := range result.Failed {
			r.writePlain("  ✗ %s\n", title)
		}
	}
	if result.PlaylistGone {
		r.writePlain("Playlist deleted\n")
	}
	return nil
}
