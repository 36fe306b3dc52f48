package media

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// ListVideos returns the video files in dir in natural order, so part_2
// comes before part_10. With recurse set the whole tree is walked.
func ListVideos(dir string, exts map[string]struct{}, recurse bool) ([]string, error) {
	var videos []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recurse && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if IsVideo(path, exts) {
			videos = append(videos, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	shared.SortNatural(videos)
	return videos, nil
}

// Combiner joins videos into one file with the concat demuxer, stream-copying
// so nothing is re-encoded. The inputs must share codecs and parameters;
// mismatched sources need a conversion pass first.
type Combiner struct {
	ffmpegPath string
}

// NewCombiner creates a Combiner using the given ffmpeg binary.
func NewCombiner(path string) *Combiner {
	if path == "" {
		path = "ffmpeg"
	}
	return &Combiner{ffmpegPath: path}
}

// WriteConcatList writes the demuxer input list: one "file 'path'" line per
// video, absolute paths, single quotes escaped.
func WriteConcatList(path string, videos []string) error {
	var b strings.Builder
	for _, video := range videos {
		abs, err := filepath.Abs(video)
		if err != nil {
			return err
		}
		abs = filepath.ToSlash(abs)
		b.WriteString("file '" + strings.ReplaceAll(abs, "'", `'\''`) + "'\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

func (c *Combiner) buildArgs(listPath, output string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		output,
	}
}

// Combine stream-copies the listed videos, in order, into one output file.
// The concat list is written to a temp file and removed afterwards.
func (c *Combiner) Combine(ctx context.Context, videos []string, output string) error {
	if len(videos) == 0 {
		return fmt.Errorf("%w: no videos to combine", shared.ErrInvalidInput)
	}

	list, err := os.CreateTemp("", "concat-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create concat list: %w", err)
	}
	list.Close()
	defer os.Remove(list.Name())

	if err := WriteConcatList(list.Name(), videos); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath, c.buildArgs(list.Name(), output)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s: %v: %s", shared.ErrEncodeFailed, output, err, stderr.String())
	}

	return nil
}
