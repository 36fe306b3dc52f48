package services

import (
	"context"
	"fmt"
	"os"

	"github.com/krisk248/IITM-reap-project/internal/models"
	"github.com/krisk248/IITM-reap-project/internal/shared"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	pageSize        = 50
	uploadChunkSize = 8 * 1024 * 1024

	// Education category; video updates must carry a category ID.
	defaultCategoryID = "27"
)

// YouTubeService implements ChannelService on the YouTube Data API v3.
type YouTubeService struct {
	api     *youtube.Service
	limiter *rate.Limiter
}

// NewYouTubeService creates an authenticated service from client options
// (a token source for write operations, or an API key for read-only use).
func NewYouTubeService(ctx context.Context, opts ...option.ClientOption) (*YouTubeService, error) {
	api, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &YouTubeService{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(8), 1),
	}, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

func (y *YouTubeService) wait(ctx context.Context) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
	}
	return nil
}

// Playlists returns every playlist owned by the authenticated channel,
// following page tokens until the listing is exhausted.
func (y *YouTubeService) Playlists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist

	pageToken := ""
	for {
		if err := y.wait(ctx); err != nil {
			return nil, err
		}

		resp, err := y.api.Playlists.List([]string{"snippet", "status", "contentDetails"}).
			Mine(true).
			MaxResults(pageSize).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("%w: playlists.list: %v", shared.ErrAPIRequest, err)
		}

		for _, item := range resp.Items {
			playlists = append(playlists, convertPlaylist(item))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return playlists, nil
}

// Playlist returns a single playlist by ID.
func (y *YouTubeService) Playlist(ctx context.Context, id string) (*models.Playlist, error) {
	if err := y.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := y.api.Playlists.List([]string{"snippet", "status", "contentDetails"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: playlists.list: %v", shared.ErrAPIRequest, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	playlist := convertPlaylist(resp.Items[0])
	return &playlist, nil
}

// PlaylistVideos returns every entry in a playlist, following page tokens.
func (y *YouTubeService) PlaylistVideos(ctx context.Context, playlistID string) ([]models.PlaylistVideo, error) {
	var videos []models.PlaylistVideo

	pageToken := ""
	for {
		if err := y.wait(ctx); err != nil {
			return nil, err
		}

		resp, err := y.api.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(playlistID).
			MaxResults(pageSize).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("%w: playlistItems.list: %v", shared.ErrAPIRequest, err)
		}

		for _, item := range resp.Items {
			video := models.PlaylistVideo{
				ItemID: item.Id,
			}
			if item.Snippet != nil {
				video.Title = item.Snippet.Title
				video.Position = item.Snippet.Position
				if item.Snippet.ResourceId != nil {
					video.VideoID = item.Snippet.ResourceId.VideoId
				}
			}
			videos = append(videos, video)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return videos, nil
}

// UpdatePlaylist rewrites a playlist's snippet and privacy status.
func (y *YouTubeService) UpdatePlaylist(ctx context.Context, id, title, description, privacy string) error {
	if err := y.wait(ctx); err != nil {
		return err
	}

	playlist := &youtube.Playlist{
		Id: id,
		Snippet: &youtube.PlaylistSnippet{
			Title:       title,
			Description: description,
		},
	}
	parts := []string{"snippet"}
	if privacy != "" {
		playlist.Status = &youtube.PlaylistStatus{PrivacyStatus: privacy}
		parts = append(parts, "status")
	}

	_, err := y.api.Playlists.Update(parts, playlist).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: playlists.update: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

// DeletePlaylist removes a playlist from the channel.
func (y *YouTubeService) DeletePlaylist(ctx context.Context, id string) error {
	if err := y.wait(ctx); err != nil {
		return err
	}

	if err := y.api.Playlists.Delete(id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: playlists.delete: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

// UploadVideo performs a resumable insert of a local file and returns the
// new video ID. Chunked upload progress is reported through the callback.
func (y *YouTubeService) UploadVideo(ctx context.Context, upload VideoUpload, progress UploadProgress) (string, error) {
	if err := y.wait(ctx); err != nil {
		return "", err
	}

	f, err := os.Open(upload.File)
	if err != nil {
		return "", fmt.Errorf("%w: %s", shared.ErrFileNotFound, upload.File)
	}
	defer f.Close()

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       upload.Title,
			Description: upload.Description,
		},
		Status: &youtube.VideoStatus{PrivacyStatus: upload.Privacy},
	}

	call := y.api.Videos.Insert([]string{"snippet", "status"}, video).
		Media(f, googleapi.ChunkSize(uploadChunkSize)).
		Context(ctx)
	if progress != nil {
		call = call.ProgressUpdater(googleapi.ProgressUpdater(progress))
	}

	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("%w: videos.insert: %v", shared.ErrAPIRequest, err)
	}

	return resp.Id, nil
}

// UpdateVideo rewrites a video's title and description.
func (y *YouTubeService) UpdateVideo(ctx context.Context, videoID, title, description string) error {
	if err := y.wait(ctx); err != nil {
		return err
	}

	video := &youtube.Video{
		Id: videoID,
		Snippet: &youtube.VideoSnippet{
			Title:       title,
			Description: description,
			CategoryId:  defaultCategoryID,
		},
	}

	_, err := y.api.Videos.Update([]string{"snippet"}, video).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: videos.update: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

// DeleteVideo removes a video from the channel.
func (y *YouTubeService) DeleteVideo(ctx context.Context, videoID string) error {
	if err := y.wait(ctx); err != nil {
		return err
	}

	if err := y.api.Videos.Delete(videoID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: videos.delete: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

// AddToPlaylist appends a video to a playlist and returns the new item ID.
func (y *YouTubeService) AddToPlaylist(ctx context.Context, videoID, playlistID string) (string, error) {
	if err := y.wait(ctx); err != nil {
		return "", err
	}

	item := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &youtube.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}

	resp, err := y.api.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: playlistItems.insert: %v", shared.ErrAPIRequest, err)
	}

	return resp.Id, nil
}

// RemovePlaylistItem removes one playlist entry by item ID.
func (y *YouTubeService) RemovePlaylistItem(ctx context.Context, itemID string) error {
	if err := y.wait(ctx); err != nil {
		return err
	}

	if err := y.api.PlaylistItems.Delete(itemID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: playlistItems.delete: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

func convertPlaylist(item *youtube.Playlist) models.Playlist {
	playlist := models.Playlist{ID: item.Id}
	if item.Snippet != nil {
		playlist.Title = item.Snippet.Title
		playlist.Description = item.Snippet.Description
	}
	if item.Status != nil {
		playlist.Privacy = item.Status.PrivacyStatus
	}
	if item.ContentDetails != nil {
		playlist.ItemCount = item.ContentDetails.ItemCount
	}
	return playlist
}
