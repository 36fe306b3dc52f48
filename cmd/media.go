package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/krisk248/IITM-reap-project/internal/media"
	"github.com/krisk248/IITM-reap-project/internal/shared"
	"github.com/krisk248/IITM-reap-project/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ConvertRun mirrors an input tree into an output root, re-encoding every
// video to mp4. Existing outputs are skipped so the run can be repeated.
func (r *Runner) ConvertRun(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	inputRoot := cmd.String("input")
	outputRoot := cmd.String("output")
	useCUDA := cmd.Bool("cuda") || config.Media.UseCUDA

	converter := media.NewConverter(media.ConverterOpts{
		FFmpegPath:   config.Media.FFmpegPath,
		UseCUDA:      useCUDA,
		AudioBitrate: config.Media.AudioBitrate,
		Preset:       config.Media.Preset,
	})

	engine := tasks.NewConvertEngine(tasks.ConvertEngineOpts{
		Converter:  converter,
		Extensions: config.Media.Extensions,
		Logger:     r.logger,
	})

	r.logger.Info("starting conversion", "input", inputRoot, "output", outputRoot, "cuda", useCUDA)
	r.writePlain("Converting %s -> %s\n\n", inputRoot, outputRoot)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ConvertFile:
				r.writePlain("🎞  %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, inputRoot, outputRoot, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Conversion Complete")
	r.writePlain("Converted: %d\n", len(result.Converted))
	r.writePlain("Skipped:   %d (output already existed)\n", len(result.Skipped))
	if len(result.Failed) > 0 {
		r.writePlain("Failed:    %d (error logs written next to outputs)\n", len(result.Failed))
		for _, input := range result.Failed {
			r.writePlain("  ✗ %s\n", input)
		}
	}
	return nil
}

// ConvertStitch joins a folder's videos into one file with the concat
// demuxer, in natural order. Streams are copied, not re-encoded, so the
// inputs must already share codecs; run convert first when they don't.
func (r *Runner) ConvertStitch(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	inputDir := cmd.String("input")
	output := cmd.String("output")
	recurse := cmd.Bool("recursive")

	exts := media.ExtensionSet(config.Media.Extensions)
	videos, err := media.ListVideos(inputDir, exts, recurse)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return fmt.Errorf("%w: no video files in %s", shared.ErrInvalidInput, inputDir)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	r.logger.Info("stitching videos", "input", inputDir, "count", len(videos), "output", output)
	r.writePlain("Stitching %d videos into %s\n", len(videos), output)
	for i, video := range videos {
		r.writePlain("  %d. %s\n", i+1, filepath.Base(video))
	}

	combiner := media.NewCombiner(config.Media.FFmpegPath)
	if err := combiner.Combine(ctx, videos, output); err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Stitch Complete")
	r.writePlain("Combined: %d videos\n", len(videos))
	r.writePlain("Output:   %s\n", output)
	return nil
}

// BGMMix loops a background track under every video in a folder, writing
// mixed copies to the output directory in natural order.
func (r *Runner) BGMMix(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	dir := cmd.String("dir")
	music := cmd.String("music")
	outputDir := cmd.String("output")
	volume := cmd.Float64("volume")

	if _, err := shared.VerifyAndReadFile(music); err != nil {
		return fmt.Errorf("%w: music file: %v", shared.ErrFileNotFound, err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	exts := media.ExtensionSet(config.Media.Extensions)
	var videos []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if media.IsVideo(entry.Name(), exts) {
			videos = append(videos, entry.Name())
		}
	}
	shared.SortNatural(videos)

	if len(videos) == 0 {
		return fmt.Errorf("%w: no video files in %s", shared.ErrInvalidInput, dir)
	}

	mixer := media.NewMixer(config.Media.FFmpegPath)

	r.logger.Info("mixing background track", "dir", dir, "music", music, "volume", volume)
	r.writePlain("Mixing %s under %d videos at volume %.2f\n\n", filepath.Base(music), len(videos), volume)

	mixed := 0
	var failed []string
	for i, name := range videos {
		if err := ctx.Err(); err != nil {
			return err
		}

		output := filepath.Join(outputDir, name)
		if _, err := os.Stat(output); err == nil {
			r.writePlain("[%d/%d] Skipping %s (output exists)\n", i+1, len(videos), name)
			continue
		}

		r.writePlain("[%d/%d] Mixing: %s\n", i+1, len(videos), name)
		if err := mixer.Mix(ctx, filepath.Join(dir, name), music, output, volume); err != nil {
			r.logger.Error("mix failed", "file", name, "error", err)
			r.writePlain("[%d/%d] ✗ %s: %v\n", i+1, len(videos), name, err)
			failed = append(failed, name)
			continue
		}
		mixed++
	}

	r.writePlain("\n")
	r.writePlainHeader("Mix Complete")
	r.writePlain("Mixed:  %d\n", mixed)
	if len(failed) > 0 {
		r.writePlain("Failed: %d\n", len(failed))
	}
	r.writePlain("Output: %s\n", outputDir)
	return nil
}
