package media

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/krisk248/IITM-reap-project/internal/shared"
)

const probeTimeout = 15 * time.Second

// Prober reads container metadata through ffprobe.
type Prober struct {
	path string
}

// NewProber creates a Prober using the given ffprobe binary.
// An empty path falls back to "ffprobe" on PATH.
func NewProber(path string) *Prober {
	if path == "" {
		path = "ffprobe"
	}
	return &Prober{path: path}
}

// Duration returns the container duration of a video file in seconds.
func (p *Prober) Duration(ctx context.Context, file string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.path,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		file)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", shared.ErrProbeFailed, file, err)
	}

	raw := strings.TrimSpace(string(out))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s: empty duration", shared.ErrProbeFailed, file)
	}

	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", shared.ErrProbeFailed, file, err)
	}

	return seconds, nil
}
