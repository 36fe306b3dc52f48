// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/krisk248/IITM-reap-project/internal/models"
	"github.com/krisk248/IITM-reap-project/internal/services"
)

// MockService is a configurable test double for [services.ChannelService].
// Zero-value methods succeed with empty results; set the function fields to
// control behavior, and inspect the call records after the fact.
type MockService struct {
	PlaylistsFunc      func(ctx context.Context) ([]models.Playlist, error)
	PlaylistVideosFunc func(ctx context.Context, playlistID string) ([]models.PlaylistVideo, error)
	UploadVideoFunc    func(ctx context.Context, upload services.VideoUpload) (string, error)

	Uploads      []services.VideoUpload // Every upload passed to UploadVideo
	Inserted     []string               // Video IDs passed to AddToPlaylist
	Removed      []string               // Item IDs passed to RemovePlaylistItem
	DeletedVideo []string               // Video IDs passed to DeleteVideo
	Updated      []VideoUpdate          // Every update passed to UpdateVideo

	UpdatePlaylistErr error
	DeletePlaylistErr error
	AddToPlaylistErr  error
	RemoveItemErr     error
	DeleteVideoErr    error
	UpdateVideoErr    error

	DeletedPlaylists []string
}

func (m *MockService) Playlists(ctx context.Context) ([]models.Playlist, error) {
	if m.PlaylistsFunc != nil {
		return m.PlaylistsFunc(ctx)
	}
	return []models.Playlist{}, nil
}

func (m *MockService) Playlist(ctx context.Context, id string) (*models.Playlist, error) {
	return &models.Playlist{ID: id}, nil
}

func (m *MockService) PlaylistVideos(ctx context.Context, playlistID string) ([]models.PlaylistVideo, error) {
	if m.PlaylistVideosFunc != nil {
		return m.PlaylistVideosFunc(ctx, playlistID)
	}
	return []models.PlaylistVideo{}, nil
}

func (m *MockService) UpdatePlaylist(ctx context.Context, id, title, description, privacy string) error {
	return m.UpdatePlaylistErr
}

func (m *MockService) DeletePlaylist(ctx context.Context, id string) error {
	if m.DeletePlaylistErr != nil {
		return m.DeletePlaylistErr
	}
	m.DeletedPlaylists = append(m.DeletedPlaylists, id)
	return nil
}

func (m *MockService) UploadVideo(ctx context.Context, upload services.VideoUpload, progress services.UploadProgress) (string, error) {
	var id string
	var err error
	if m.UploadVideoFunc != nil {
		id, err = m.UploadVideoFunc(ctx, upload)
	} else {
		id = "video-" + upload.Title
	}
	if err != nil {
		return "", err
	}
	m.Uploads = append(m.Uploads, upload)
	return id, nil
}

// VideoUpdate records one UpdateVideo call.
type VideoUpdate struct {
	VideoID     string
	Title       string
	Description string
}

func (m *MockService) UpdateVideo(ctx context.Context, videoID, title, description string) error {
	if m.UpdateVideoErr != nil {
		return m.UpdateVideoErr
	}
	m.Updated = append(m.Updated, VideoUpdate{VideoID: videoID, Title: title, Description: description})
	return nil
}

func (m *MockService) DeleteVideo(ctx context.Context, videoID string) error {
	if m.DeleteVideoErr != nil {
		return m.DeleteVideoErr
	}
	m.DeletedVideo = append(m.DeletedVideo, videoID)
	return nil
}

func (m *MockService) AddToPlaylist(ctx context.Context, videoID, playlistID string) (string, error) {
	if m.AddToPlaylistErr != nil {
		return "", m.AddToPlaylistErr
	}
	m.Inserted = append(m.Inserted, videoID)
	return "item-" + videoID, nil
}

func (m *MockService) RemovePlaylistItem(ctx context.Context, itemID string) error {
	if m.RemoveItemErr != nil {
		return m.RemoveItemErr
	}
	m.Removed = append(m.Removed, itemID)
	return nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error { return nil }

var _ io.ReadCloser = (*FCloser)(nil)

// TempFile creates a file with contents under a test temp dir.
func TempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := t.TempDir() + string(os.PathSeparator) + name
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}
