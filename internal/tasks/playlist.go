package tasks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/krisk248/IITM-reap-project/internal/formatter"
	"github.com/krisk248/IITM-reap-project/internal/models"
	"github.com/krisk248/IITM-reap-project/internal/services"
	"github.com/krisk248/IITM-reap-project/internal/shared"
)

var chapterTitlePattern = regexp.MustCompile(`(?i)^(Chapter\s+\d+[A-Za-z]?)\s*[-–—]?\s*(.*)$`)

// VideoRename is one proposed title and description change for a playlist
// video.
type VideoRename struct {
	VideoID     string
	OldTitle    string
	NewTitle    string
	Description string
	Changed     bool
}

// PlanVideoRenames orders a playlist's videos by chapter label and proposes a
// normalized "Chapter N - Topic" title for each, with the topic as the
// description. Introductions and titles without a chapter label are left
// unchanged with the title itself as description.
func PlanVideoRenames(videos []models.PlaylistVideo) []VideoRename {
	ordered := make([]models.PlaylistVideo, len(videos))
	copy(ordered, videos)
	formatter.SortByChapter(ordered)

	plan := make([]VideoRename, 0, len(ordered))
	for _, video := range ordered {
		entry := VideoRename{
			VideoID:     video.VideoID,
			OldTitle:    video.Title,
			NewTitle:    video.Title,
			Description: video.Title,
		}

		if !strings.Contains(strings.ToLower(video.Title), "course introduction") {
			if m := chapterTitlePattern.FindStringSubmatch(video.Title); m != nil {
				chapter := strings.TrimSpace(m[1])
				topic := strings.TrimSpace(m[2])
				if topic != "" {
					entry.NewTitle = chapter + " - " + topic
					entry.Description = topic
				} else {
					entry.NewTitle = chapter
				}
			}
		}

		entry.Changed = entry.NewTitle != entry.OldTitle
		plan = append(plan, entry)
	}
	return plan
}

// RenameVideosResult contains the outcome of applying a rename plan.
type RenameVideosResult struct {
	Updated int      // Videos whose metadata was rewritten
	Skipped int      // Plan entries with no title change
	Failed  []string // Titles whose update failed
}

// RenameVideos applies a rename plan through the videos.update API. Entries
// whose title is already correct are skipped, and per-video failures are
// logged and the loop continues.
func RenameVideos(ctx context.Context, service services.ChannelService, logger *log.Logger,
	plan []VideoRename, progress chan<- ProgressUpdate) (*RenameVideosResult, error) {
	if service == nil {
		return nil, fmt.Errorf("%w: channel service not initialized", shared.ErrNotAuthenticated)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	result := &RenameVideosResult{}
	total := len(plan)

	for i, entry := range plan {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !entry.Changed {
			result.Skipped++
			continue
		}

		sendProgress(progress, renameVideoUpdate(i+1, total, entry.NewTitle))

		if err := service.UpdateVideo(ctx, entry.VideoID, entry.NewTitle, entry.Description); err != nil {
			logger.Error("failed to update video", "title", entry.OldTitle, "id", entry.VideoID, "error", err)
			result.Failed = append(result.Failed, entry.OldTitle)
			continue
		}
		result.Updated++
	}

	return result, nil
}

// PurgeResult contains the outcome of a playlist purge.
type PurgeResult struct {
	Removed      int      // Playlist entries removed
	Deleted      int      // Videos deleted from the channel
	Failed       []string // Titles whose removal or deletion failed
	PlaylistGone bool     // True when the playlist itself was deleted
}

// PurgePlaylist removes every entry from a playlist, optionally deleting the
// underlying videos from the channel, and optionally deleting the playlist
// itself afterwards. Per-item failures are logged and the loop continues.
func PurgePlaylist(ctx context.Context, service services.ChannelService, logger *log.Logger,
	playlistID string, deleteVideos, deletePlaylist bool, progress chan<- ProgressUpdate) (*PurgeResult, error) {
	if service == nil {
		return nil, fmt.Errorf("%w: channel service not initialized", shared.ErrNotAuthenticated)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	videos, err := service.PlaylistVideos(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	result := &PurgeResult{}
	total := len(videos)

	for i, video := range videos {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		sendProgress(progress, purgeItemUpdate(i+1, total, video.Title))

		if err := service.RemovePlaylistItem(ctx, video.ItemID); err != nil {
			logger.Error("failed to remove playlist item", "title", video.Title, "error", err)
			result.Failed = append(result.Failed, video.Title)
			continue
		}
		result.Removed++

		if !deleteVideos {
			continue
		}

		sendProgress(progress, deleteVideoUpdate(i+1, total, video.Title))

		if err := service.DeleteVideo(ctx, video.VideoID); err != nil {
			logger.Error("failed to delete video", "title", video.Title, "id", video.VideoID, "error", err)
			result.Failed = append(result.Failed, video.Title)
			continue
		}
		result.Deleted++
	}

	if deletePlaylist {
		if err := service.DeletePlaylist(ctx, playlistID); err != nil {
			logger.Error("failed to delete playlist", "id", playlistID, "error", err)
			return result, err
		}
		result.PlaylistGone = true
	}

	return result, nil
}
