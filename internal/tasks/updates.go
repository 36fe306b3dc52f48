package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Operation phase enumeration
type Phase int

const (
	ValidateCourse Phase = iota
	UploadVideo
	InsertPlaylistItem
	ConvertFile
	PurgeItem
	DeleteVideo
	RenameVideo
)

func (p Phase) String() string {
	switch p {
	case ValidateCourse:
		return "validate_course"
	case UploadVideo:
		return "upload_video"
	case InsertPlaylistItem:
		return "insert_playlist_item"
	case ConvertFile:
		return "convert_file"
	case PurgeItem:
		return "purge_item"
	case DeleteVideo:
		return "delete_video"
	case RenameVideo:
		return "rename_video"
	default:
		return ""
	}
}

func validateCourseUpdate(dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateCourse,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Validating course folder: %s", dir),
	}
}

func uploadStartUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Uploading: %s", step, total, title),
	}
}

func uploadDoneUpdate(step, total int, title, videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (ID: %s)", step, total, title, videoID),
		Data:    videoID,
	}
}

func insertItemUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertPlaylistItem,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Adding to playlist: %s", step, total, title),
	}
}

func convertUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ConvertFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Converting: %s", step, total, path),
	}
}

func convertFailedUpdate(step, total int, path string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ConvertFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, path, err),
	}
}

func purgeItemUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PurgeItem,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Removing: %s", step, total, title),
	}
}

func renameVideoUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenameVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Renaming to: %s", step, total, title),
	}
}

func deleteVideoUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DeleteVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Deleting video: %s", step, total, title),
	}
}
