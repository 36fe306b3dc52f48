package main

import (
	"context"
	"fmt"

	"github.com/krisk248/IITM-reap-project/internal/repositories"
	"github.com/krisk248/IITM-reap-project/internal/tasks"
	"github.com/urfave/cli/v3"
)

// UploadRun validates a course folder and uploads its videos to a playlist,
// resuming from the persisted index of any prior run for the same course.
func (r *Runner) UploadRun(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	dir := cmd.String("dir")
	playlistID := cmd.String("playlist-id")
	privacy := cmd.String("privacy")
	if privacy == "" {
		privacy = config.Upload.Privacy
	}

	service, err := r.channelService(ctx, true)
	if err != nil {
		return err
	}
	db, err := r.database()
	if err != nil {
		return err
	}

	engine := tasks.NewUploadEngine(tasks.UploadEngineOpts{
		Service:      service,
		Jobs:         repositories.NewUploadJobRepository(db),
		Extensions:   config.Media.Extensions,
		Privacy:      privacy,
		DailyQuota:   config.Upload.DailyQuota,
		CostPerVideo: config.Upload.CostPerVideo,
		Logger:       r.logger,
	})

	r.logger.Info("starting upload run", "dir", dir, "playlist", playlistID, "privacy", privacy)
	r.writePlain("Uploading course folder: %s\n", dir)
	r.writePlain("Target playlist: %s\n\n", playlistID)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ValidateCourse:
				r.writePlain("🔍 %s\n\n", update.Message)
			case tasks.UploadVideo:
				r.writePlain("📤 %s\n", update.Message)
			case tasks.InsertPlaylistItem:
				r.writePlain("📝 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, dir, playlistID, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Upload Run Complete")
	r.writePlain("Course:    %s\n", result.Job.CourseName())
	r.writePlain("Uploaded:  %d this run (%d/%d total)\n",
		result.Uploaded, result.Job.UploadedCount(), result.Job.TotalVideos())
	if result.Resumed > 0 {
		r.writePlain("Resumed:   %d videos were already uploaded by a prior run\n", result.Resumed)
	}
	if result.QuotaPaused {
		r.writePlain("Paused:    daily quota budget reached, %d videos remaining\n", result.Remaining)
		r.writePlain("Re-run the same command tomorrow to continue from video %d\n", result.Job.ResumeIndex()+1)
	} else {
		r.writePlain("Status:    %s\n", result.Job.Status())
	}
	return nil
}

// UploadVerify compares a course folder's expected titles against the
// playlist's actual contents.
func (r *Runner) UploadVerify(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	dir := cmd.String("dir")
	playlistID := cmd.String("playlist-id")

	service, err := r.channelService(ctx, false)
	if err != nil {
		return err
	}

	result, err := tasks.VerifyUploads(ctx, service, dir, playlistID, config.Media.Extensions)
	if err != nil {
		return err
	}

	r.writePlainHeader("Verification Results")
	r.writePlain("Matched: %d videos\n", result.Matched)
	r.writePlain("Missing from playlist: %d\n", len(result.Missing))
	r.writePlain("Extra in playlist: %d\n", len(result.Extra))

	if len(result.Missing) > 0 {
		r.writePlain("\nMissing from playlist:\n")
		for _, title := range result.Missing {
			r.writePlain("  ✗ %s\n", title)
		}
	}
	if len(result.Extra) > 0 {
		r.writePlain("\nExtra in playlist:\n")
		for _, title := range result.Extra {
			r.writePlain("  ? %s\n", title)
		}
	}
	if result.Complete() {
		r.writePlain("\n✓ Every local video is in the playlist\n")
	}
	return nil
}

// UploadJobs lists persisted upload jobs in creation order.
func (r *Runner) UploadJobs(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	db, err := r.database()
	if err != nil {
		return err
	}

	jobs, err := repositories.NewUploadJobRepository(db).List(nil)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	if cmd.Bool("json") {
		type jobView struct {
			ID         string `json:"id"`
			Course     string `json:"course"`
			PlaylistID string `json:"playlist_id"`
			Status     string `json:"status"`
			Uploaded   int    `json:"uploaded"`
			Total      int    `json:"total"`
			Error      string `json:"error,omitempty"`
		}
		views := make([]jobView, 0, len(jobs))
		for _, job := range jobs {
			views = append(views, jobView{
				ID:         job.ID(),
				Course:     job.CourseName(),
				PlaylistID: job.PlaylistID(),
				Status:     job.Status(),
				Uploaded:   job.UploadedCount(),
				Total:      job.TotalVideos(),
				Error:      job.ErrorMessage(),
			})
		}
		return r.writeJSON(views, true)
	}

	if len(jobs) == 0 {
		return r.writePlain("No upload jobs recorded\n")
	}

	r.writePlainHeader("Upload Jobs")
	for _, job := range jobs {
		r.writePlain("%s  %-10s %d/%d  %s\n",
			job.ID(), job.Status(), job.UploadedCount(), job.TotalVideos(), job.CourseName())
		if job.ErrorMessage() != "" {
			r.writePlain("  note: %s\n", job.ErrorMessage())
		}
	}
	return nil
}
