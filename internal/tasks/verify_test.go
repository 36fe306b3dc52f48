package tasks

import (
	"context"
	"testing"

	"github.com/krisk248/IITM-reap-project/internal/models"
	itesting "github.com/krisk248/IITM-reap-project/internal/testing"
)

func TestVerifyUploads(t *testing.T) {
	dir := buildCourse(t,
		"Course Introduction.mp4",
		"Chapter 1 - Getting Started.mp4",
		"Chapter 2 - Variables.mp4",
	)

	t.Run("reports missing and extra titles", func(t *testing.T) {
		svc := &itesting.MockService{
			PlaylistVideosFunc: func(ctx context.Context, playlistID string) ([]models.PlaylistVideo, error) {
				return []models.PlaylistVideo{
					{VideoID: "v1", ItemID: "i1", Title: "Course Introduction"},
					{VideoID: "v2", ItemID: "i2", Title: "Chapter 1 - Getting Started"},
					{VideoID: "v3", ItemID: "i3", Title: "Chapter 9 - Stray Upload"},
				}, nil
			},
		}

		result, err := VerifyUploads(context.Background(), svc, dir, "PL100", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Matched != 2 {
			t.Errorf("expected 2 matches, got %d", result.Matched)
		}
		if len(result.Missing) != 1 || result.Missing[0] != "Chapter 2 - Variables" {
			t.Errorf("unexpected missing set: %v", result.Missing)
		}
		if len(result.Extra) != 1 || result.Extra[0] != "Chapter 9 - Stray Upload" {
			t.Errorf("unexpected extra set: %v", result.Extra)
		}
		if result.Complete() {
			t.Error("expected incomplete result")
		}
	})

	t.Run("complete when sets match", func(t *testing.T) {
		svc := &itesting.MockService{
			PlaylistVideosFunc: func(ctx context.Context, playlistID string) ([]models.PlaylistVideo, error) {
				return []models.PlaylistVideo{
					{Title: "Course Introduction"},
					{Title: "Chapter 1 - Getting Started"},
					{Title: "Chapter 2 - Variables"},
				}, nil
			},
		}

		result, err := VerifyUploads(context.Background(), svc, dir, "PL100", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !result.Complete() {
			t.Errorf("expected complete result, got %+v", result)
		}
	})

	t.Run("fails for missing folder", func(t *testing.T) {
		if _, err := VerifyUploads(context.Background(), &itesting.MockService{}, "/nonexistent", "PL100", nil); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestPurgePlaylist(t *testing.T) {
	videos := []models.PlaylistVideo{
		{VideoID: "v1", ItemID: "i1", Title: "Course Introduction"},
		{VideoID: "v2", ItemID: "i2", Title: "Chapter 1 - Getting Started"},
		{VideoID: "v3", ItemID: "i3", Title: "Chapter 2 - Variables"},
	}
	withVideos := func(svc *itesting.MockService) *itesting.MockService {
		svc.PlaylistVideosFunc = func(ctx context.Context, playlistID string) ([]models.PlaylistVideo, error) {
			return videos, nil
		}
		return svc
	}

	t.Run("removes every item", func(t *testing.T) {
		svc := withVideos(&itesting.MockService{})

		result, err := PurgePlaylist(context.Background(), svc, nil, "PL100", false, false, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Removed != 3 {
			t.Errorf("expected 3 removals, got %d", result.Removed)
		}
		if result.Deleted != 0 || len(svc.DeletedVideo) != 0 {
			t.Error("expected no video deletions")
		}
		if result.PlaylistGone {
			t.Error("expected playlist to survive")
		}
	})

	t.Run("deletes videos and playlist when asked", func(t *testing.T) {
		svc := withVideos(&itesting.MockService{})

		result, err := PurgePlaylist(context.Background(), svc, nil, "PL100", true, true, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Deleted != 3 {
			t.Errorf("expected 3 deletions, got %d", result.Deleted)
		}
		if !result.PlaylistGone {
			t.Error("expected playlist deletion")
		}
		if len(svc.DeletedPlaylists) != 1 || svc.DeletedPlaylists[0] != "PL100" {
			t.Errorf("unexpected deleted playlists: %v", svc.DeletedPlaylists)
		}
	})

	t.Run("continues past per-item failures", func(t *testing.T) {
		svc := withVideos(&itesting.MockService{})
		svc.DeleteVideoErr = context.DeadlineExceeded

		result, err := PurgePlaylist(context.Background(), svc, nil, "PL100", true, false, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Removed != 3 {
			t.Errorf("expected all items removed, got %d", result.Removed)
		}
		if result.Deleted != 0 {
			t.Errorf("expected no deletions, got %d", result.Deleted)
		}
		if len(result.Failed) != 3 {
			t.Errorf("expected 3 recorded failures, got %d", len(result.Failed))
		}
	})
}
