// Package services defines the [ChannelService] interface for the video
// hosting platform and implements it on the YouTube Data API v3.
//
// All remote operations are sequential, paginated where the API pages, and
// paced through a shared rate limiter. Long-running engines in the tasks
// package depend only on the interface so tests can substitute doubles.
package services

import (
	"context"

	"github.com/krisk248/IITM-reap-project/internal/models"
)

// UploadProgress reports resumable upload progress in bytes.
type UploadProgress func(current, total int64)

// VideoUpload describes one video to insert.
type VideoUpload struct {
	File        string
	Title       string
	Description string
	Privacy     string
}

// ChannelService is the set of remote operations used by the upload,
// playlist, and report commands.
type ChannelService interface {
	// Playlists returns every playlist owned by the authenticated channel.
	Playlists(ctx context.Context) ([]models.Playlist, error)

	// Playlist returns a single playlist by ID.
	Playlist(ctx context.Context, id string) (*models.Playlist, error)

	// PlaylistVideos returns every video entry in a playlist, in playlist order.
	PlaylistVideos(ctx context.Context, playlistID string) ([]models.PlaylistVideo, error)

	// UpdatePlaylist rewrites a playlist's title, description, and privacy status.
	UpdatePlaylist(ctx context.Context, id, title, description, privacy string) error

	// DeletePlaylist removes a playlist. Videos in it are not deleted.
	DeletePlaylist(ctx context.Context, id string) error

	// UploadVideo performs a resumable video insert and returns the new video ID.
	UploadVideo(ctx context.Context, upload VideoUpload, progress UploadProgress) (string, error)

	// UpdateVideo rewrites a video's title and description.
	UpdateVideo(ctx context.Context, videoID, title, description string) error

	// DeleteVideo removes a video from the channel.
	DeleteVideo(ctx context.Context, videoID string) error

	// AddToPlaylist appends a video to a playlist and returns the item ID.
	AddToPlaylist(ctx context.Context, videoID, playlistID string) (string, error)

	// RemovePlaylistItem removes one entry from a playlist by item ID.
	RemovePlaylistItem(ctx context.Context, itemID string) error

	// Name returns the service name for logging.
	Name() string
}
