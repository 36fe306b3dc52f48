package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// Converter re-encodes videos to 720p H.264/AAC mp4 through ffmpeg.
type Converter struct {
	ffmpegPath   string
	preset       string
	audioBitrate string
	useCUDA      bool
}

// ConverterOpts configures a Converter. Zero values use the defaults
// that match the encoder settings the course pipeline expects.
type ConverterOpts struct {
	FFmpegPath   string
	Preset       string
	AudioBitrate string
	UseCUDA      bool
}

// NewConverter creates a Converter from the given options.
func NewConverter(opts ConverterOpts) *Converter {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.Preset == "" {
		opts.Preset = "fast"
	}
	if opts.AudioBitrate == "" {
		opts.AudioBitrate = "320k"
	}
	return &Converter{
		ffmpegPath:   opts.FFmpegPath,
		preset:       opts.Preset,
		audioBitrate: opts.AudioBitrate,
		useCUDA:      opts.UseCUDA,
	}
}

// buildArgs assembles the ffmpeg argument list for one conversion.
// CUDA encoding swaps libx264 for h264_nvenc and enables hwaccel decode.
func (c *Converter) buildArgs(input, output string) []string {
	args := []string{"-y"}
	if c.useCUDA {
		args = append(args, "-hwaccel", "cuda")
	}
	args = append(args, "-i", input, "-vf", "scale=-2:720")
	if c.useCUDA {
		args = append(args, "-c:v", "h264_nvenc")
	} else {
		args = append(args, "-c:v", "libx264")
	}
	args = append(args,
		"-preset", c.preset,
		"-c:a", "aac",
		"-b:a", c.audioBitrate,
		output)
	return args
}

// Convert re-encodes input to output. On a non-zero ffmpeg exit the captured
// stderr is written to a .log file next to the intended output and an error
// wrapping [shared.ErrEncodeFailed] is returned.
func (c *Converter) Convert(ctx context.Context, input, output string) error {
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath, c.buildArgs(input, output)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if logErr := writeErrorLog(output, input, stderr.String()); logErr == nil {
			return fmt.Errorf("%w: %s (see %s)", shared.ErrEncodeFailed, input, errorLogPath(output))
		}
		return fmt.Errorf("%w: %s: %v", shared.ErrEncodeFailed, input, err)
	}

	return nil
}

func errorLogPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".log"
}

func writeErrorLog(output, input, encoderOutput string) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	content := fmt.Sprintf("[%s] Error converting file: %s\n%s", timestamp, input, encoderOutput)
	return os.WriteFile(errorLogPath(output), []byte(content), 0644)
}
