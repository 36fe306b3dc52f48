package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/krisk248/IITM-reap-project/internal/media"
	"github.com/krisk248/IITM-reap-project/internal/services"
	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// VerifyResult compares a local course folder against a playlist.
type VerifyResult struct {
	Matched int      // Titles present both locally and in the playlist
	Missing []string // Local titles absent from the playlist
	Extra   []string // Playlist titles with no local file
}

// Complete reports whether every local video is in the playlist and vice versa.
func (v *VerifyResult) Complete() bool {
	return len(v.Missing) == 0 && len(v.Extra) == 0
}

// VerifyUploads compares the video file titles in a local folder against the
// titles in a playlist. Titles are matched after sanitization, since upload
// strips characters the platform rejects.
func VerifyUploads(ctx context.Context, service services.ChannelService, dir, playlistID string, extensions []string) (*VerifyResult, error) {
	if service == nil {
		return nil, fmt.Errorf("%w: channel service not initialized", shared.ErrNotAuthenticated)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrFileNotFound, dir)
	}

	if len(extensions) == 0 {
		extensions = media.DefaultExtensions
	}
	extSet := media.ExtensionSet(extensions)

	local := make(map[string]bool)
	var localTitles []string
	for _, entry := range entries {
		if entry.IsDir() || !media.IsVideo(entry.Name(), extSet) {
			continue
		}
		title := shared.SanitizeTitle(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		local[title] = true
		localTitles = append(localTitles, title)
	}
	shared.SortNatural(localTitles)

	videos, err := service.PlaylistVideos(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	remote := make(map[string]bool, len(videos))
	for _, video := range videos {
		remote[video.Title] = true
	}

	result := &VerifyResult{}
	for _, title := range localTitles {
		if remote[title] {
			result.Matched++
		} else {
			result.Missing = append(result.Missing, title)
		}
	}
	for _, video := range videos {
		if !local[video.Title] {
			result.Extra = append(result.Extra, video.Title)
		}
	}

	return result, nil
}
