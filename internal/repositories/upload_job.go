package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/krisk248/IITM-reap-project/internal/models"
	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// UploadJobRepository implements models.Repository[*models.UploadJob].
//
// Handles upload job CRUD operations with soft delete support and status-based queries.
type UploadJobRepository struct {
	db *sql.DB
}

// NewUploadJobRepository creates a new UploadJobRepository with the given database connection
func NewUploadJobRepository(db *sql.DB) *UploadJobRepository {
	return &UploadJobRepository{db: db}
}

// Create inserts a new upload job into the database with generated ID and sequence
func (r *UploadJobRepository) Create(job *models.UploadJob) error {
	sequence, err := NextSequence(r.db, "upload_jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	job.SetID(id)

	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO upload_jobs (
			id, sequence, course_name, video_folder, playlist_id, status,
			total_videos, uploaded_count, resume_index, error_message,
			started_at, completed_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var errorMessage any = job.ErrorMessage()
	if errorMessage == "" {
		errorMessage = nil
	}

	_, err = r.db.Exec(query,
		id,
		sequence,
		job.CourseName(),
		job.VideoFolder(),
		job.PlaylistID(),
		job.Status(),
		job.TotalVideos(),
		job.UploadedCount(),
		job.ResumeIndex(),
		errorMessage,
		job.StartedAt(),
		job.CompletedAt(),
		job.CreatedAt(),
		job.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert upload job: %w", err)
	}

	return nil
}

// Get retrieves an upload job by ID, excluding soft-deleted records
func (r *UploadJobRepository) Get(id string) (*models.UploadJob, error) {
	query := `
		SELECT id, course_name, video_folder, playlist_id, status,
		       total_videos, uploaded_count, resume_index, error_message,
		       started_at, completed_at, created_at, updated_at
		FROM upload_jobs
		WHERE id = ? AND deleted_at IS NULL
	`
	return r.scanJob(r.db.QueryRow(query, id))
}

// GetLatestForCourse retrieves the most recent non-deleted job for a course name.
//
// Used to resume an interrupted upload run without an explicit job ID.
func (r *UploadJobRepository) GetLatestForCourse(courseName string) (*models.UploadJob, error) {
	query := `
		SELECT id, course_name, video_folder, playlist_id, status,
		       total_videos, uploaded_count, resume_index, error_message,
		       started_at, completed_at, created_at, updated_at
		FROM upload_jobs
		WHERE course_name = ? AND deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT 1
	`
	return r.scanJob(r.db.QueryRow(query, courseName))
}

// Update persists the mutable fields of an upload job
func (r *UploadJobRepository) Update(job *models.UploadJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE upload_jobs
		SET status = ?, total_videos = ?, uploaded_count = ?, resume_index = ?,
		    error_message = ?, started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	var errorMessage any = job.ErrorMessage()
	if errorMessage == "" {
		errorMessage = nil
	}

	result, err := r.db.Exec(query,
		job.Status(),
		job.TotalVideos(),
		job.UploadedCount(),
		job.ResumeIndex(),
		errorMessage,
		job.StartedAt(),
		job.CompletedAt(),
		job.UpdatedAt(),
		job.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update upload job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("upload job %s not found", job.ID())
	}

	return nil
}

// Delete soft-deletes an upload job by setting deleted_at
func (r *UploadJobRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE upload_jobs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete upload job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("upload job %s not found", id)
	}

	return nil
}

// List retrieves upload jobs matching the given criteria, ordered by sequence.
//
// Supported criteria keys: "status", "course_name".
func (r *UploadJobRepository) List(criteria map[string]any) ([]*models.UploadJob, error) {
	query := `
		SELECT id, course_name, video_folder, playlist_id, status,
		       total_videos, uploaded_count, resume_index, error_message,
		       started_at, completed_at, created_at, updated_at
		FROM upload_jobs
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if status, ok := criteria["status"]; ok {
		query += " AND status = ?"
		args = append(args, status)
	}
	if course, ok := criteria["course_name"]; ok {
		query += " AND course_name = ?"
		args = append(args, course)
	}

	query += " ORDER BY sequence"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.UploadJob
	for rows.Next() {
		job, err := r.scanJobRow(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UploadJobRepository) scanJob(row *sql.Row) (*models.UploadJob, error) {
	job, err := scanUploadJob(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("upload job not found")
	}
	return job, err
}

func (r *UploadJobRepository) scanJobRow(rows *sql.Rows) (*models.UploadJob, error) {
	return scanUploadJob(rows)
}

func scanUploadJob(s rowScanner) (*models.UploadJob, error) {
	var (
		id, courseName, videoFolder, playlistID, status string
		totalVideos, uploadedCount, resumeIndex         int
		errorMessage                                    sql.NullString
		startedAt, completedAt                          sql.NullTime
		createdAt, updatedAt                            time.Time
	)

	err := s.Scan(&id, &courseName, &videoFolder, &playlistID, &status,
		&totalVideos, &uploadedCount, &resumeIndex, &errorMessage,
		&startedAt, &completedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var started, completed *time.Time
	if startedAt.Valid {
		started = &startedAt.Time
	}
	if completedAt.Valid {
		completed = &completedAt.Time
	}

	return models.RestoreUploadJob(id, courseName, videoFolder, playlistID, status,
		errorMessage.String, totalVideos, uploadedCount, resumeIndex,
		started, completed, createdAt, updatedAt), nil
}
