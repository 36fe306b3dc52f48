package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// Mixer lays a looped background music track under a video's audio.
type Mixer struct {
	ffmpegPath string
}

// NewMixer creates a Mixer using the given ffmpeg binary.
func NewMixer(path string) *Mixer {
	if path == "" {
		path = "ffmpeg"
	}
	return &Mixer{ffmpegPath: path}
}

// buildArgs assembles the amix filter graph: the music input loops forever,
// is attenuated to the requested volume, and is mixed with the original
// audio for the length of the video. Video is stream-copied untouched.
func (m *Mixer) buildArgs(video, music, output string, volume float64) []string {
	filter := fmt.Sprintf("[1:a]volume=%.2f[a1]; [0:a][a1]amix=inputs=2:duration=first[a]", volume)
	return []string{
		"-y",
		"-i", video,
		"-stream_loop", "-1",
		"-i", music,
		"-filter_complex", filter,
		"-map", "0:v",
		"-map", "[a]",
		"-c:v", "copy",
		"-shortest",
		output,
	}
}

// Mix writes a copy of video with music mixed under its audio at the given
// volume (0 < volume <= 1).
func (m *Mixer) Mix(ctx context.Context, video, music, output string, volume float64) error {
	if volume <= 0 || volume > 1 {
		return fmt.Errorf("%w: volume %.2f must be in (0, 1]", shared.ErrInvalidArgument, volume)
	}

	cmd := exec.CommandContext(ctx, m.ffmpegPath, m.buildArgs(video, music, output, volume)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s: %v: %s", shared.ErrEncodeFailed, video, err, stderr.String())
	}

	return nil
}
