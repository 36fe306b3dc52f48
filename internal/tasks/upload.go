package tasks

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/krisk248/IITM-reap-project/internal/media"
	"github.com/krisk248/IITM-reap-project/internal/models"
	"github.com/krisk248/IITM-reap-project/internal/repositories"
	"github.com/krisk248/IITM-reap-project/internal/services"
	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// UploadRunResult contains all data from an upload run.
type UploadRunResult struct {
	Job         *models.UploadJob // Persisted job record
	VideoIDs    []string          // IDs of videos uploaded in this run
	Uploaded    int               // Videos uploaded in this run
	Resumed     int               // Videos skipped because a prior run uploaded them
	Remaining   int               // Videos left when the run stopped
	QuotaPaused bool              // True when the daily quota guard stopped the run
}

// UploadEngineOpts configures an [UploadEngine].
type UploadEngineOpts struct {
	Service       services.ChannelService
	Jobs          *repositories.UploadJobRepository
	Extensions    []string
	Privacy       string
	DailyQuota    int
	CostPerVideo  int
	Logger        *log.Logger
	PauseInterval time.Duration
}

// UploadEngine performs sequential resumable course uploads.
//
// A run validates the course folder, loads (or creates) the persisted job for
// it, and uploads from the job's resume index. The index advances only after
// a video is both uploaded and inserted into the playlist, so an interrupted
// run never skips or repeats a video. Pause and Cancel are cooperative: the
// loop checks the flags before each video.
type UploadEngine struct {
	service       services.ChannelService
	jobs          *repositories.UploadJobRepository
	extensions    map[string]struct{}
	privacy       string
	dailyQuota    int
	costPerVideo  int
	logger        *log.Logger
	pauseInterval time.Duration

	paused    atomic.Bool
	cancelled atomic.Bool
}

// NewUploadEngine creates an UploadEngine with the provided dependencies.
func NewUploadEngine(opts UploadEngineOpts) *UploadEngine {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = media.DefaultExtensions
	}
	privacy := opts.Privacy
	if privacy == "" {
		privacy = "unlisted"
	}
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	pauseInterval := opts.PauseInterval
	if pauseInterval == 0 {
		pauseInterval = time.Second
	}

	return &UploadEngine{
		service:       opts.Service,
		jobs:          opts.Jobs,
		extensions:    media.ExtensionSet(extensions),
		privacy:       privacy,
		dailyQuota:    opts.DailyQuota,
		costPerVideo:  opts.CostPerVideo,
		logger:        logger,
		pauseInterval: pauseInterval,
	}
}

// Pause suspends the run before the next video.
func (e *UploadEngine) Pause() { e.paused.Store(true) }

// Resume clears a pause.
func (e *UploadEngine) Resume() { e.paused.Store(false) }

// Cancel stops the run before the next video.
func (e *UploadEngine) Cancel() { e.cancelled.Store(true) }

// Run validates the course folder and uploads its videos to the playlist in
// natural order, resuming from the persisted index of any prior run.
func (e *UploadEngine) Run(ctx context.Context, courseDir, playlistID string, progress chan<- ProgressUpdate) (*UploadRunResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: channel service not initialized", shared.ErrNotAuthenticated)
	}

	sendProgress(progress, validateCourseUpdate(courseDir))

	plan, err := ValidateCourseDir(courseDir, e.extensions)
	if err != nil {
		return nil, err
	}

	job, err := e.loadOrCreateJob(plan, playlistID)
	if err != nil {
		return nil, err
	}

	result := &UploadRunResult{
		Job:     job,
		Resumed: job.ResumeIndex(),
	}

	job.MarkStarted()
	if err := e.updateJob(job); err != nil {
		return nil, err
	}

	total := len(plan.Videos)
	spent := 0

	for i := job.ResumeIndex(); i < total; i++ {
		if err := e.waitIfPaused(ctx); err != nil {
			job.MarkCancelled()
			e.updateJob(job)
			result.Remaining = total - i
			return result, err
		}
		if e.cancelled.Load() {
			job.MarkCancelled()
			e.updateJob(job)
			result.Remaining = total - i
			return result, fmt.Errorf("%w: stopped at video %d of %d", shared.ErrUploadCancelled, i+1, total)
		}
		if e.dailyQuota > 0 && spent+e.costPerVideo > e.dailyQuota {
			e.logger.Warn("daily quota budget reached, pausing run",
				"spent", spent, "budget", e.dailyQuota, "remaining", total-i)
			job.MarkPaused("daily quota budget reached")
			e.updateJob(job)
			result.QuotaPaused = true
			result.Remaining = total - i
			return result, nil
		}

		video := plan.Videos[i]
		sendProgress(progress, uploadStartUpdate(i+1, total, video.Title))

		videoID, err := e.service.UploadVideo(ctx, services.VideoUpload{
			File:        video.Path,
			Title:       shared.SanitizeTitle(video.Title),
			Description: video.Description,
			Privacy:     e.privacy,
		}, nil)
		if err != nil {
			job.MarkFailed(err.Error())
			e.updateJob(job)
			result.Remaining = total - i
			return result, fmt.Errorf("upload failed for %s: %w", video.Title, err)
		}

		sendProgress(progress, insertItemUpdate(i+1, total, video.Title))

		if _, err := e.service.AddToPlaylist(ctx, videoID, playlistID); err != nil {
			job.MarkFailed(err.Error())
			e.updateJob(job)
			result.Remaining = total - i
			return result, fmt.Errorf("playlist insert failed for %s: %w", video.Title, err)
		}

		job.Advance(i + 1)
		if err := e.updateJob(job); err != nil {
			return result, err
		}

		spent += e.costPerVideo
		result.Uploaded++
		result.VideoIDs = append(result.VideoIDs, videoID)
		sendProgress(progress, uploadDoneUpdate(i+1, total, video.Title, videoID))
		e.logger.Info("uploaded video", "title", video.Title, "id", videoID, "index", i+1, "total", total)
	}

	job.MarkCompleted()
	if err := e.updateJob(job); err != nil {
		return result, err
	}

	return result, nil
}

// loadOrCreateJob resumes the latest unfinished job for the course, or
// creates a fresh one.
func (e *UploadEngine) loadOrCreateJob(plan *CoursePlan, playlistID string) (*models.UploadJob, error) {
	if e.jobs == nil {
		return models.NewUploadJob(plan.CourseName, plan.Dir, playlistID, len(plan.Videos)), nil
	}

	job, err := e.jobs.GetLatestForCourse(plan.CourseName)
	if err == nil && job != nil && resumable(job) && job.PlaylistID() == playlistID {
		e.logger.Info("resuming upload job", "job", job.ID(), "index", job.ResumeIndex(), "total", job.TotalVideos())
		return job, nil
	}

	job = models.NewUploadJob(plan.CourseName, plan.Dir, playlistID, len(plan.Videos))
	if err := e.jobs.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

// resumable reports whether a prior job still has videos to upload. Every
// non-completed outcome resumes, including cancelled runs: the videos before
// the stop point are already on the channel.
func resumable(job *models.UploadJob) bool {
	switch job.Status() {
	case models.JobPending, models.JobRunning, models.JobPaused, models.JobFailed, models.JobCancelled:
		return job.ResumeIndex() < job.TotalVideos()
	default:
		return false
	}
}

func (e *UploadEngine) updateJob(job *models.UploadJob) error {
	if e.jobs == nil {
		return nil
	}
	if err := e.jobs.Update(job); err != nil {
		return fmt.Errorf("failed to persist upload job: %w", err)
	}
	return nil
}

// waitIfPaused blocks while the engine is paused, re-checking on an interval.
func (e *UploadEngine) waitIfPaused(ctx context.Context) error {
	for e.paused.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.pauseInterval):
		}
		if e.cancelled.Load() {
			return fmt.Errorf("%w: cancelled while paused", shared.ErrUploadCancelled)
		}
	}
	return nil
}
