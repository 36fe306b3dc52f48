package library

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/krisk248/IITM-reap-project/internal/media"
	"github.com/krisk248/IITM-reap-project/internal/models"
)

// Scanner walks course trees and computes folder duration totals.
type Scanner struct {
	prober  DurationProber
	cache   Cache
	exts    map[string]struct{}
	workers int
	logger  *log.Logger
}

// ScannerOpts configures a Scanner.
type ScannerOpts struct {
	Prober     DurationProber
	Cache      Cache
	Extensions []string
	Workers    int
	Logger     *log.Logger
}

// NewScanner creates a Scanner. A nil cache disables caching; worker count
// defaults to 8.
func NewScanner(opts ScannerOpts) *Scanner {
	cache := opts.Cache
	if cache == nil {
		cache = noopCache{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 8
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Scanner{
		prober:  opts.Prober,
		cache:   cache,
		exts:    media.ExtensionSet(opts.Extensions),
		workers: workers,
		logger:  logger,
	}
}

// HoursResult holds the outcome of a duration aggregation scan.
type HoursResult struct {
	Totals       []models.FolderTotal // one entry per folder, sorted by relative path
	TotalSeconds float64              // root total, equal to Totals entry for ""
	FileCount    int                  // number of video files probed or read from cache
	Failures     []string             // paths whose probe failed (counted as zero)
}

// folderScan is one folder's direct video files, before rollup.
type folderScan struct {
	dir   string
	files []string
}

// Hours walks root, probes every video's duration, and folds folder totals
// bottom-up: each folder's total is the sum of its own direct videos plus
// the already-computed totals of its immediate subfolders.
//
// Leaf folder probing runs across a worker pool; the rollup itself is a
// deterministic depth-ordered reduction. onFile, when non-nil, is invoked
// once per probed file for progress reporting.
func (s *Scanner) Hours(ctx context.Context, root string, onFile func(path string)) (*HoursResult, error) {
	root = filepath.Clean(root)
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("failed to stat root: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	folders, fileCount, err := collectFolders(root, s.exts)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(folders))
	var failures []string
	var mu sync.Mutex

	// Phase one: per-folder totals, computed independently in parallel.
	jobs := make(chan folderScan)
	var wg sync.WaitGroup
	for range s.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				sum, failed := s.folderDuration(ctx, job.files, onFile)
				mu.Lock()
				totals[job.dir] = sum
				failures = append(failures, failed...)
				mu.Unlock()
			}
		}()
	}

	for _, folder := range folders {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- folder:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase two: deepest folders first, fold each total into its parent.
	dirs := make([]string, 0, len(totals))
	for dir := range totals {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(os.PathSeparator)) > strings.Count(dirs[j], string(os.PathSeparator))
	})
	for _, dir := range dirs {
		if dir == root {
			continue
		}
		parent := filepath.Dir(dir)
		if _, ok := totals[parent]; ok {
			totals[parent] += totals[dir]
		}
	}

	result := &HoursResult{
		TotalSeconds: totals[root],
		FileCount:    fileCount,
		Failures:     failures,
	}
	for _, dir := range dirs {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			rel = dir
		}
		if rel == "." {
			rel = ""
		}
		result.Totals = append(result.Totals, models.FolderTotal{Path: rel, Seconds: totals[dir]})
	}
	sort.Slice(result.Totals, func(i, j int) bool {
		return result.Totals[i].Path < result.Totals[j].Path
	})

	return result, nil
}

// folderDuration sums the durations of one folder's direct video files.
func (s *Scanner) folderDuration(ctx context.Context, files []string, onFile func(string)) (float64, []string) {
	var sum float64
	var failed []string
	for _, file := range files {
		seconds, err := s.fileDuration(ctx, file)
		if err != nil {
			s.logger.Warn("probe failed", "file", file, "err", err)
			failed = append(failed, file)
		}
		sum += seconds
		if onFile != nil {
			onFile(file)
		}
	}
	return sum, failed
}

func (s *Scanner) fileDuration(ctx context.Context, file string) (float64, error) {
	info, err := os.Stat(file)
	if err != nil {
		return 0, err
	}
	if seconds, ok := s.cache.Lookup(file, info); ok {
		return seconds, nil
	}

	seconds, err := s.prober.Duration(ctx, file)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Record(file, info, seconds); err != nil {
		s.logger.Warn("cache record failed", "file", file, "err", err)
	}
	return seconds, nil
}

// collectFolders walks root and returns every directory with its direct
// video files, plus the total video file count.
func collectFolders(root string, exts map[string]struct{}) ([]folderScan, int, error) {
	byDir := make(map[string][]string)
	count := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, ok := byDir[path]; !ok {
				byDir[path] = nil
			}
			return nil
		}
		if media.IsVideo(path, exts) {
			dir := filepath.Dir(path)
			byDir[dir] = append(byDir[dir], path)
			count++
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	folders := make([]folderScan, 0, len(byDir))
	for dir, files := range byDir {
		sort.Strings(files)
		folders = append(folders, folderScan{dir: dir, files: files})
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].dir < folders[j].dir })

	return folders, count, nil
}
