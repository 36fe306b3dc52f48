package models

import (
	"fmt"
	"time"
)

// Upload job status values.
const (
	JobPending   = "pending"
	JobRunning   = "running"
	JobPaused    = "paused"
	JobCompleted = "completed"
	JobFailed    = "failed"
	JobCancelled = "cancelled"
)

// UploadJob tracks one bulk upload run for a course folder.
//
// The resume index points at the next video to upload; it is advanced only
// after a video has been uploaded and inserted into the playlist, so an
// interrupted job restarts exactly where it stopped.
type UploadJob struct {
	id            string
	courseName    string
	videoFolder   string
	playlistID    string
	status        string
	totalVideos   int
	uploadedCount int
	resumeIndex   int
	errorMessage  string
	startedAt     *time.Time
	completedAt   *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewUploadJob creates a pending upload job for a course folder and target playlist.
func NewUploadJob(courseName, videoFolder, playlistID string, totalVideos int) *UploadJob {
	now := time.Now().UTC()
	return &UploadJob{
		courseName:  courseName,
		videoFolder: videoFolder,
		playlistID:  playlistID,
		status:      JobPending,
		totalVideos: totalVideos,
		createdAt:   now,
		updatedAt:   now,
	}
}

// RestoreUploadJob reconstructs an UploadJob from persisted fields.
func RestoreUploadJob(id, courseName, videoFolder, playlistID, status, errorMessage string,
	totalVideos, uploadedCount, resumeIndex int,
	startedAt, completedAt *time.Time, createdAt, updatedAt time.Time) *UploadJob {
	return &UploadJob{
		id:            id,
		courseName:    courseName,
		videoFolder:   videoFolder,
		playlistID:    playlistID,
		status:        status,
		totalVideos:   totalVideos,
		uploadedCount: uploadedCount,
		resumeIndex:   resumeIndex,
		errorMessage:  errorMessage,
		startedAt:     startedAt,
		completedAt:   completedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (j *UploadJob) ID() string             { return j.id }
func (j *UploadJob) CourseName() string     { return j.courseName }
func (j *UploadJob) VideoFolder() string    { return j.videoFolder }
func (j *UploadJob) PlaylistID() string     { return j.playlistID }
func (j *UploadJob) Status() string         { return j.status }
func (j *UploadJob) TotalVideos() int       { return j.totalVideos }
func (j *UploadJob) UploadedCount() int     { return j.uploadedCount }
func (j *UploadJob) ResumeIndex() int       { return j.resumeIndex }
func (j *UploadJob) ErrorMessage() string   { return j.errorMessage }
func (j *UploadJob) StartedAt() *time.Time  { return j.startedAt }
func (j *UploadJob) CompletedAt() *time.Time { return j.completedAt }
func (j *UploadJob) CreatedAt() time.Time   { return j.createdAt }
func (j *UploadJob) UpdatedAt() time.Time   { return j.updatedAt }

// SetID assigns the unique identifier, normally done by the repository on Create.
func (j *UploadJob) SetID(id string) { j.id = id }

// Validate checks that required fields are present and the status is known.
func (j *UploadJob) Validate() error {
	if j.courseName == "" {
		return fmt.Errorf("course name is required")
	}
	if j.videoFolder == "" {
		return fmt.Errorf("video folder is required")
	}
	if j.playlistID == "" {
		return fmt.Errorf("playlist ID is required")
	}
	switch j.status {
	case JobPending, JobRunning, JobPaused, JobCompleted, JobFailed, JobCancelled:
	default:
		return fmt.Errorf("unknown status %q", j.status)
	}
	if j.resumeIndex < 0 || j.resumeIndex > j.totalVideos {
		return fmt.Errorf("resume index %d out of range", j.resumeIndex)
	}
	return nil
}

// MarkStarted transitions the job to running and records the start time.
func (j *UploadJob) MarkStarted() {
	now := time.Now().UTC()
	j.status = JobRunning
	j.startedAt = &now
	j.updatedAt = now
}

// MarkCompleted transitions the job to completed and records the finish time.
func (j *UploadJob) MarkCompleted() {
	now := time.Now().UTC()
	j.status = JobCompleted
	j.completedAt = &now
	j.updatedAt = now
}

// MarkFailed transitions the job to failed with the given message.
func (j *UploadJob) MarkFailed(message string) {
	now := time.Now().UTC()
	j.status = JobFailed
	j.errorMessage = message
	j.updatedAt = now
}

// MarkPaused transitions the job to paused with an optional reason.
func (j *UploadJob) MarkPaused(message string) {
	j.status = JobPaused
	j.errorMessage = message
	j.updatedAt = time.Now().UTC()
}

// MarkCancelled transitions the job to cancelled.
func (j *UploadJob) MarkCancelled() {
	j.status = JobCancelled
	j.updatedAt = time.Now().UTC()
}

// Advance records one successful upload: the resume index moves past the
// uploaded video and the uploaded count grows by one.
func (j *UploadJob) Advance(nextIndex int) {
	j.resumeIndex = nextIndex
	j.uploadedCount++
	j.updatedAt = time.Now().UTC()
}
