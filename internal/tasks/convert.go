package tasks

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/krisk248/IITM-reap-project/internal/media"
	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// FileConverter re-encodes one video file. Implemented by [media.Converter].
type FileConverter interface {
	Convert(ctx context.Context, input, output string) error
}

// ConvertResult contains the outcome of a tree conversion run.
type ConvertResult struct {
	Converted []string // Output paths written in this run
	Skipped   []string // Outputs that already existed
	Failed    []string // Inputs whose encode failed (error log written next to the output)
}

// ConvertEngineOpts configures a [ConvertEngine].
type ConvertEngineOpts struct {
	Converter  FileConverter
	Extensions []string
	Logger     *log.Logger
}

// ConvertEngine mirrors an input tree into an output root, re-encoding every
// video file to mp4. Existing outputs are skipped so interrupted runs can be
// repeated, and a failed encode is recorded and the walk continues.
type ConvertEngine struct {
	converter  FileConverter
	extensions map[string]struct{}
	logger     *log.Logger
}

// NewConvertEngine creates a ConvertEngine with the provided dependencies.
func NewConvertEngine(opts ConvertEngineOpts) *ConvertEngine {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = media.DefaultExtensions
	}
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &ConvertEngine{
		converter:  opts.Converter,
		extensions: media.ExtensionSet(extensions),
		logger:     logger,
	}
}

// Run walks inputRoot and re-encodes every video file into the mirrored
// location under outputRoot, with the extension replaced by .mp4.
func (e *ConvertEngine) Run(ctx context.Context, inputRoot, outputRoot string, progress chan<- ProgressUpdate) (*ConvertResult, error) {
	if e.converter == nil {
		return nil, fmt.Errorf("%w: converter not initialized", shared.ErrEncodeFailed)
	}

	info, err := os.Stat(inputRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", shared.ErrFileNotFound, inputRoot)
	}

	inputs, err := e.collectInputs(inputRoot)
	if err != nil {
		return nil, err
	}

	result := &ConvertResult{}
	total := len(inputs)

	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rel, err := filepath.Rel(inputRoot, input)
		if err != nil {
			return result, err
		}
		output := filepath.Join(outputRoot, replaceExt(rel, ".mp4"))

		if _, err := os.Stat(output); err == nil {
			e.logger.Debug("output exists, skipping", "path", output)
			result.Skipped = append(result.Skipped, output)
			continue
		}

		sendProgress(progress, convertUpdate(i+1, total, rel))

		if err := e.converter.Convert(ctx, input, output); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			e.logger.Error("encode failed", "input", input, "error", err)
			sendProgress(progress, convertFailedUpdate(i+1, total, rel, err))
			result.Failed = append(result.Failed, input)
			continue
		}

		result.Converted = append(result.Converted, output)
	}

	return result, nil
}

// collectInputs gathers every video file under root in walk order.
func (e *ConvertEngine) collectInputs(root string) ([]string, error) {
	var inputs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !media.IsVideo(path, e.extensions) {
			return nil
		}
		inputs = append(inputs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inputs, nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
